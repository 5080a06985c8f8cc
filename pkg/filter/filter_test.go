// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package filter

import (
	"testing"

	"github.com/consensys/go-gridrows/pkg/frame"
	"github.com/consensys/go-gridrows/pkg/rows"
	"github.com/google/go-cmp/cmp"
)

// Frame used by most tests:
//
//	idx:   0    1    2    3    4    5
//	a:     x    x    y    y    z    x
//	b:     1    2    1    2    1    1
func testFrame() *frame.Frame {
	return frame.NewFrame("f",
		frame.NewColumn("a", frame.STRING, "x", "x", "y", "y", "z", "x"),
		frame.NewColumn("b", frame.NUMBER, 1.0, 2.0, 1.0, 2.0, 1.0, 1.0))
}

// ===================================================================
// State
// ===================================================================

func Test_State_00(t *testing.T) {
	var state = NewState().Set("a", NewFilter("x")).Set("b", NewFilter("1"))
	// Update keeps position
	next := state.Set("a", NewFilter("y"))
	//
	check_Strings(t, next.Columns(), "a", "b")
	// Clearing removes
	check_Strings(t, next.Clear("a").Columns(), "b")
	// Re-adding appends
	check_Strings(t, next.Clear("a").Set("a", NewFilter("x")).Columns(), "b", "a")
	// Original untouched
	if f, _ := state.Get("a"); !f.Allows("x") || f.Allows("y") {
		t.Errorf("original state modified")
	}
}

func Test_State_01(t *testing.T) {
	var state State
	// Zero value usable
	state = state.Set("a", NewFilter("x"))
	//
	if state.Len() != 1 || state.Position("a") != 0 || state.Position("b") != -1 {
		t.Errorf("unexpected state %v", state.Columns())
	} else if !state.Clear("b").Clear("a").IsEmpty() {
		t.Errorf("expected empty state")
	}
}

// ===================================================================
// Apply
// ===================================================================

func Test_Apply_00(t *testing.T) {
	var (
		f      = testFrame()
		input  = rows.Materialize(f)
		result = Apply(input, NewState(), f)
	)
	// Empty state is identity
	check_Indices(t, result.Rows, 0, 1, 2, 3, 4, 5)
	//
	if len(result.CrossColumns()) != 0 {
		t.Errorf("expected empty cross-filter map")
	}
}

func Test_Apply_01(t *testing.T) {
	var f = testFrame()
	//
	check_Apply(t, f, NewState().Set("a", NewFilter("x")), 0, 1, 5)
	check_Apply(t, f, NewState().Set("a", NewFilter("x", "z")), 0, 1, 4, 5)
	check_Apply(t, f, NewState().Set("a", NewFilter("x")).Set("b", NewFilter("1")), 0, 5)
	check_Apply(t, f, NewState().Set("b", NewFilter("2")).Set("a", NewFilter("y")), 3)
	// Inactive (empty) filter is skipped
	check_Apply(t, f, NewState().Set("a", NewFilter()), 0, 1, 2, 3, 4, 5)
	// Missing column keeps nothing
	check_Apply(t, f, NewState().Set("missing", NewFilter("x")))
}

func Test_Apply_02(t *testing.T) {
	var (
		f      = testFrame()
		state  = NewState().Set("a", NewFilter("x", "y")).Set("b", NewFilter("1"))
		result = Apply(rows.Materialize(f), state, f)
	)
	// Rows filtered before "a": none, hence everything.
	check_Indices(t, result.CandidateRows("a"), 0, 1, 2, 3, 4, 5)
	// Rows filtered before "b": by "a" only.
	check_Indices(t, result.CandidateRows("b"), 0, 1, 2, 3, 5)
	// Unfiltered column sees the result of all filters
	check_Indices(t, result.CandidateRows("c"), 0, 2, 5)
	check_Indices(t, result.Rows, 0, 2, 5)
	// Candidate values
	check_Strings(t, result.CandidateValues("b", f), "1", "2")
	check_Strings(t, result.CandidateValues("a", f), "x", "y", "z")
	check_Strings(t, result.CandidateValues("missing", f))
}

func Test_Apply_03(t *testing.T) {
	var (
		f = testFrame()
		// Reverse insertion order
		state  = NewState().Set("b", NewFilter("1")).Set("a", NewFilter("x", "y"))
		result = Apply(rows.Materialize(f), state, f)
	)
	//
	check_Indices(t, result.CandidateRows("b"), 0, 1, 2, 3, 4, 5)
	check_Indices(t, result.CandidateRows("a"), 0, 2, 4, 5)
	check_Strings(t, result.CandidateValues("a", f), "x", "y", "z")
	check_Strings(t, result.CandidateValues("b", f), "1", "2")
	check_Strings(t, result.CrossColumns(), "b", "a")
}

func Test_Apply_04(t *testing.T) {
	var (
		child = frame.NewFrame("child", frame.NewColumn("a", frame.STRING, "zzz"))
		kids  = []*frame.Frame{child}
		f     = frame.NewFrame("f",
			frame.NewColumn("a", frame.STRING, "x", "y", "x"),
			frame.NewColumn("nested", frame.NESTED_FRAMES, kids, kids, nil))
		result = Apply(rows.Materialize(f), NewState().Set("a", NewFilter("x")), f)
	)
	// Nested rows follow their parents, and are never tested themselves.
	check_Keys(t, result.Rows, rows.Key{Depth: 0, Index: 0}, rows.Key{Depth: 1, Index: 0},
		rows.Key{Depth: 0, Index: 2})
}

func Test_Apply_05(t *testing.T) {
	var (
		f = frame.NewFrame("f", frame.NewColumn("v", frame.NUMBER, 1.0, 2.5, nil).WithConfig(frame.ColumnConfig{
			Formatter: func(v any) string { return frame.DefaultDisplay(v.(float64)*2) + "%" },
		}))
		result = Apply(rows.Materialize(f), NewState().Set("v", NewFilter("5%", "")), f)
	)
	// Matching uses display values, and nil falls back to ""
	check_Indices(t, result.Rows, 1, 2)
}

// ===================================================================
// Search
// ===================================================================

func Test_Nested_00(t *testing.T) {
	var (
		child = testFrame()
		f     = frame.NewFrame("f",
			frame.NewColumn("a", frame.STRING, "x"),
			frame.NewColumn("c", frame.STRING, "p"),
			frame.NewColumn("nested", frame.NESTED_FRAMES, []*frame.Frame{child}))
		row   = rows.Materialize(f)[1]
		state = NewState().Set("c", NewFilter("p")).Set("a", NewFilter("x"))
	)
	// Filter on "c" is dropped, since the child has no such column
	if columns := state.Restrict(child).Columns(); len(columns) != 1 || columns[0] != "a" {
		t.Errorf("unexpected restricted filters %v", columns)
	}
	//
	tables := ApplyNested(row, state)
	//
	if len(tables) != 1 {
		t.Fatalf("expected one table, got %d", len(tables))
	}
	//
	check_Indices(t, tables[0], 0, 1, 5)
	// No filters leaves the child untouched
	check_Indices(t, ApplyNested(row, NewState())[0], 0, 1, 2, 3, 4, 5)
}

func Test_Search_00(t *testing.T) {
	var candidates = []string{"1", "2", "10", "apple", "Banana"}
	//
	check_Search(t, candidates, "2", EQUALS, "2")
	check_Search(t, candidates, "2", NOT_EQUALS, "1", "10", "Banana", "apple")
	check_Search(t, candidates, "AN", CONTAINS, "Banana")
	check_Search(t, candidates, "2", GREATER, "10", "Banana", "apple")
	check_Search(t, candidates, "2", LESS_EQUALS, "1", "2")
	check_Search(t, candidates, "2", Operator("~"))
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_Apply(t *testing.T, f *frame.Frame, state State, indices ...uint) {
	t.Helper()
	//
	input := rows.Materialize(f)
	result := Apply(input, state, f)
	// Subset law
	for _, row := range result.Rows {
		if row.Index() >= uint(len(input)) {
			t.Errorf("unexpected row %v", row)
		}
	}
	//
	check_Indices(t, result.Rows, indices...)
}

func check_Search(t *testing.T, candidates []string, search string, op Operator, expected ...string) {
	t.Helper()
	//
	f := NewSearchFilter(candidates, search, op)
	//
	check_Strings(t, f.Values(), expected...)
	//
	if f.SearchText != search || f.Operator != op {
		t.Errorf("search text or operator not recorded")
	}
}

func check_Indices(t *testing.T, actual []rows.Row, indices ...uint) {
	t.Helper()
	//
	var got = []uint{}
	//
	for _, row := range actual {
		got = append(got, row.Index())
	}
	//
	if indices == nil {
		indices = []uint{}
	}
	//
	if diff := cmp.Diff(indices, got); diff != "" {
		t.Errorf("unexpected rows (-want +got):\n%s", diff)
	}
}

func check_Keys(t *testing.T, actual []rows.Row, expected ...rows.Key) {
	t.Helper()
	//
	var keys []rows.Key
	//
	for _, row := range actual {
		keys = append(keys, row.Key())
	}
	//
	if diff := cmp.Diff(expected, keys); diff != "" {
		t.Errorf("unexpected rows (-want +got):\n%s", diff)
	}
}

func check_Strings(t *testing.T, actual []string, expected ...string) {
	t.Helper()
	//
	if len(actual) == 0 && len(expected) == 0 {
		return
	} else if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("unexpected strings (-want +got):\n%s", diff)
	}
}
