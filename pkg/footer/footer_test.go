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
package footer

import (
	"testing"

	"github.com/consensys/go-gridrows/pkg/frame"
	"github.com/consensys/go-gridrows/pkg/rows"
	"github.com/consensys/go-gridrows/pkg/sorting"
	"github.com/consensys/go-gridrows/pkg/util"
	"github.com/google/go-cmp/cmp"
)

func footerConfig(reducers []string, fields ...string) frame.ColumnConfig {
	return frame.ColumnConfig{Footer: util.Some(frame.FooterOptions{Reducers: reducers, Fields: fields})}
}

func testFrame(reducers ...string) *frame.Frame {
	return frame.NewFrame("f",
		frame.NewColumn("n", frame.NUMBER, 4.0, 1.0, nil, 3.0, 1.0).WithConfig(footerConfig(reducers)),
		frame.NewColumn("s", frame.STRING, "b", "a", "b", nil, "c").WithConfig(footerConfig(reducers)),
		frame.NewColumn("plain", frame.STRING, "x", "y", "z", "w", "v"))
}

// ===================================================================
// Reducers
// ===================================================================

func Test_Reducers_00(t *testing.T) {
	var f = testFrame(SUM, MEAN, MIN, MAX, RANGE, DIFF, MEDIAN, ALL_IS_ZERO)
	// Math reducers apply only to numbers
	check_Footer(t, f, 0, "9", "2.25", "1", "4", "3", "-3", "2", "false")
	check_Footer(t, f, 1, "", "", "", "", "", "", "", "")
	// No configuration, no values
	check_Footer(t, f, 2)
}

func Test_Reducers_01(t *testing.T) {
	var f = testFrame(COUNT, COUNT_ALL, DISTINCT_COUNT, CHANGE_COUNT, FIRST, FIRST_NOT_NULL, LAST, LAST_NOT_NULL)
	// Non-math reducers apply to every type, including count on numbers.
	check_Footer(t, f, 0, "4", "5", "4", "4", "4", "4", "1", "1")
	check_Footer(t, f, 1, "4", "5", "4", "4", "b", "b", "c", "c")
}

func Test_Reducers_02(t *testing.T) {
	var f = testFrame(ALL_VALUES, UNIQUE_VALUES, ALL_IS_NULL, VARIANCE, STD_DEV)
	//
	check_Footer(t, f, 0, "4, 1, , 3, 1", "4, 1, , 3", "false", "1.6875", "1.299038105676658")
	check_Footer(t, f, 1, "b, a, b, , c", "b, a, , c", "false", "", "")
}

func Test_Reducers_03(t *testing.T) {
	// Nothing numeric to reduce, or unknown reducer
	var f = frame.NewFrame("f",
		frame.NewColumn("n", frame.NUMBER, nil, nil).WithConfig(footerConfig([]string{SUM, "bogus", COUNT, ALL_IS_NULL})))
	//
	check_Footer(t, f, 0, "", "", "0", "true")
}

func Test_Reducers_04(t *testing.T) {
	var formatter frame.Formatter = func(v any) string { return frame.DefaultDisplay(v) + " ms" }
	// Typed results use the column's formatter, counts do not.
	var f = frame.NewFrame("f", frame.NewColumn("n", frame.NUMBER, 2.0, 3.0).WithConfig(frame.ColumnConfig{
		Formatter: formatter,
		Footer:    util.Some(frame.FooterOptions{Reducers: []string{SUM, COUNT}}),
	}))
	//
	check_Footer(t, f, 0, "5 ms", "2")
}

func Test_Reducers_05(t *testing.T) {
	var ids = Reducers()
	//
	for _, id := range ids {
		if r, ok := Lookup(id); !ok || r.Id != id {
			t.Errorf("failed looking up reducer %s", id)
		}
	}
	//
	if _, ok := Lookup("bogus"); ok {
		t.Errorf("unexpected reducer")
	}
}

// ===================================================================
// Fields
// ===================================================================

func Test_Fields_00(t *testing.T) {
	var (
		reducers = []string{COUNT, SUM}
		f        = frame.NewFrame("f",
			frame.NewColumn("a", frame.NUMBER, 1.0, 2.0).WithConfig(footerConfig(reducers, "a")),
			frame.NewColumn("b", frame.NUMBER, 1.0, 2.0).WithConfig(footerConfig(reducers, "a")),
			frame.NewColumn("c", frame.NUMBER, 1.0, 2.0).WithConfig(frame.ColumnConfig{
				DisplayName: "Cee",
				Footer:      util.Some(frame.FooterOptions{Reducers: reducers, Fields: []string{"Cee"}}),
			}))
	)
	// Excluded columns keep empty cells for alignment
	check_Footer(t, f, 0, "2", "3")
	check_Footer(t, f, 1, "", "")
	check_Footer(t, f, 2, "2", "3")
}

// ===================================================================
// Cache
// ===================================================================

func Test_Cache_00(t *testing.T) {
	var (
		f          = testFrame(SUM, LAST)
		cache      = NewCache()
		aggregator = NewAggregator(cache)
		input      = rows.Materialize(f)
	)
	//
	first := aggregator.Compute(f, input)
	// Same rows, so cached (two configured columns)
	second := aggregator.Compute(f, input)
	//
	if hits, misses := cache.Stats(); hits != 2 || misses != 2 {
		t.Errorf("expected 2 hits and 2 misses, got %d and %d", hits, misses)
	} else if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("cached footer differs:\n%s", diff)
	}
	// Reordering invalidates (since LAST depends on order)
	sorted := sorting.Sort(input, sorting.Keys{{Column: "n", Direction: sorting.ASC}}, f.Types())
	third := aggregator.Compute(f, sorted)
	//
	if _, misses := cache.Stats(); misses != 4 {
		t.Errorf("expected 4 misses, got %d", misses)
	} else if third[0][0] != "9" || third[0][1] != "4" {
		t.Errorf("unexpected footer %v", third[0])
	}
	// Fewer rows invalidates
	fourth := aggregator.Compute(f, sorted[:2])
	//
	if fourth[0][0] != "1" {
		t.Errorf("unexpected footer %v", fourth[0])
	}
	// Reset forgets everything
	cache.Reset()
	aggregator.Compute(f, input)
	//
	if _, misses := cache.Stats(); misses != 8 {
		t.Errorf("expected 8 misses, got %d", misses)
	}
}

func Test_KeyOf_00(t *testing.T) {
	var input = rows.Materialize(testFrame())
	//
	if KeyOf(input) == KeyOf(input[1:]) || KeyOf(input[:2]) == KeyOf([]rows.Row{input[1], input[0]}) {
		t.Errorf("expected distinct keys")
	} else if KeyOf(input) != KeyOf(rows.Materialize(testFrame())) {
		t.Errorf("expected equal keys")
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_Footer(t *testing.T, f *frame.Frame, column int, expected ...string) {
	t.Helper()
	//
	var footer = NewAggregator(NewCache()).Compute(f, rows.Materialize(f))
	//
	if len(expected) == 0 && len(footer[column]) == 0 {
		return
	} else if diff := cmp.Diff(expected, footer[column]); diff != "" {
		t.Errorf("column %d (-want +got):\n%s", column, diff)
	}
}
