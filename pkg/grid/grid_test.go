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
package grid

import (
	"testing"

	"github.com/consensys/go-gridrows/pkg/filter"
	"github.com/consensys/go-gridrows/pkg/frame"
	"github.com/consensys/go-gridrows/pkg/height"
	"github.com/consensys/go-gridrows/pkg/page"
	"github.com/consensys/go-gridrows/pkg/rows"
	"github.com/consensys/go-gridrows/pkg/sorting"
	"github.com/consensys/go-gridrows/pkg/util"
	"github.com/google/go-cmp/cmp"
)

// ===================================================================
// Sorting
// ===================================================================

func Test_Sort_00(t *testing.T) {
	var (
		f = frame.NewFrame("f",
			frame.NewColumn("id", frame.NUMBER, 3.0, 1.0, 2.0),
			frame.NewColumn("name", frame.STRING, "c", "a", "b"))
		grid = NewBuilder().Build(f)
	)
	//
	snapshot := grid.ApplySort("id", sorting.ASC, false)
	check_Values(t, snapshot, "id", 1.0, 2.0, 3.0)
	check_Values(t, snapshot, "name", "a", "b", "c")
	// Single-sort replaces existing keys
	snapshot = grid.ApplySort("name", sorting.ASC, false)
	check_Values(t, snapshot, "id", 1.0, 2.0, 3.0)
	check_Keys(t, snapshot.SortKeys, sorting.Key{Column: "name", Direction: sorting.ASC})
}

func Test_Sort_01(t *testing.T) {
	var (
		f    = frame.NewFrame("f", frame.NewColumn("id", frame.NUMBER, 3.0, 1.0, 2.0))
		grid = NewBuilder().Build(f)
	)
	// Cycles through ascending, descending and unsorted.
	check_Values(t, grid.ApplySort("id", sorting.ASC, false), "id", 1.0, 2.0, 3.0)
	check_Values(t, grid.ApplySort("id", sorting.DESC, false), "id", 3.0, 2.0, 1.0)
	//
	snapshot := grid.ApplySort("id", sorting.ASC, false)
	check_Values(t, snapshot, "id", 3.0, 1.0, 2.0)
	check_Keys(t, snapshot.SortKeys)
}

func Test_Sort_02(t *testing.T) {
	var (
		f = frame.NewFrame("f",
			frame.NewColumn("g", frame.STRING, "x", "y", "x", "y"),
			frame.NewColumn("n", frame.NUMBER, 1.0, 2.0, 3.0, 4.0))
		grid = NewBuilder().Build(f)
	)
	//
	grid.ApplySort("g", sorting.ASC, true)
	snapshot := grid.ApplySort("n", sorting.DESC, true)
	//
	check_Values(t, snapshot, "n", 3.0, 1.0, 4.0, 2.0)
	check_Keys(t, snapshot.SortKeys, sorting.Key{Column: "g", Direction: sorting.ASC},
		sorting.Key{Column: "n", Direction: sorting.DESC})
	//
	if snapshot.Columns[1].Sort != util.Some(sorting.DESC) {
		t.Errorf("expected column n sorted descending")
	}
}

// ===================================================================
// Filtering
// ===================================================================

func Test_Filter_00(t *testing.T) {
	var (
		f = frame.NewFrame("f",
			frame.NewColumn("a", frame.STRING, "p", "p", "q", "q", "r"),
			frame.NewColumn("b", frame.STRING, "x", "y", "x", "y", "x"))
		grid = NewBuilder().Build(f)
	)
	//
	grid.SetFilter("a", "p", "q")
	snapshot := grid.SetFilter("b", "x")
	//
	check_Values(t, snapshot, "a", "p", "q")
	// Candidates for b reflect the filter on a only
	check_Candidates(t, snapshot, "b", "x", "y")
	// Candidates for a reflect no filters at all
	check_Candidates(t, snapshot, "a", "p", "q", "r")
	//
	if !snapshot.Columns[0].Filtered || !snapshot.Columns[1].Filtered {
		t.Errorf("expected filtered columns")
	}
	// Clearing a restores the rows it removed
	snapshot = grid.ClearFilter("a")
	check_Values(t, snapshot, "a", "p", "q", "r")
	check_Candidates(t, snapshot, "a", "p", "q", "r")
}

func Test_Filter_01(t *testing.T) {
	var (
		f    = frame.NewFrame("f", frame.NewColumn("a", frame.STRING, "apple", "banana", "cherry", "grape"))
		grid = NewBuilder().Build(f)
	)
	//
	snapshot := grid.SetSearchFilter("a", "ap", filter.CONTAINS)
	check_Values(t, snapshot, "a", "apple", "grape")
	// Filtering on an unknown column removes everything
	snapshot = grid.SetFilter("missing", "x")
	check_Values(t, snapshot, "a")
}

// ===================================================================
// Pagination
// ===================================================================

func Test_Page_00(t *testing.T) {
	var (
		f    = frame.NewFrame("f", frame.NewColumn("n", frame.NUMBER, 1.0, 2.0, 3.0, 4.0, 5.0))
		grid = pagedBuilder(2).Build(f)
	)
	//
	snapshot := grid.SetPage(2)
	check_Values(t, snapshot, "n", 5.0)
	check_Page(t, snapshot.Page, 2, 5, 5, 3)
	// Fewer rows clamps to the last page
	snapshot = grid.SetFilter("n", "1", "2", "3")
	check_Values(t, snapshot, "n", 3.0)
	check_Page(t, snapshot.Page, 1, 3, 3, 2)
	// Out of range
	snapshot = grid.SetPage(-5)
	check_Page(t, snapshot.Page, 0, 1, 2, 2)
}

func Test_Page_01(t *testing.T) {
	var (
		f    = frame.NewFrame("f", frame.NewColumn("n", frame.NUMBER, 1.0, 2.0, 3.0, 4.0, 5.0))
		grid = pagedBuilder(2).Build(f)
	)
	// Viewport height determines rows per page
	snapshot := grid.SetViewportSize(1000, 30)
	check_Values(t, snapshot, "n", 1.0, 2.0, 3.0)
	check_Page(t, snapshot.Page, 0, 1, 3, 2)
}

func Test_Footer_00(t *testing.T) {
	var (
		values = []any{5.0, 3.0, 8.0, 1.0, 9.0, 2.0, 10.0, 4.0, 7.0, 6.0}
		config = frame.ColumnConfig{Footer: util.Some(frame.FooterOptions{Reducers: []string{"sum", "count"}})}
		f      = frame.NewFrame("f", frame.NewColumn("n", frame.NUMBER, values...).WithConfig(config))
		paged  = pagedBuilder(3).Build(f)
		all    = NewBuilder().Build(f)
	)
	// Footers do not depend on paging
	for n := 0; n < 4; n++ {
		snapshot := paged.SetPage(n)
		//
		if diff := cmp.Diff([][]string{{"55", "10"}}, snapshot.Footer); diff != "" {
			t.Errorf("page %d footer (-want +got):\n%s", n, diff)
		}
	}
	//
	snapshot := all.Snapshot()
	//
	if diff := cmp.Diff([][]string{{"55", "10"}}, snapshot.Footer); diff != "" {
		t.Errorf("unpaged footer (-want +got):\n%s", diff)
	}
	// But do depend on filtering
	snapshot = all.SetFilter("n", "1", "2")
	//
	if diff := cmp.Diff([][]string{{"3", "2"}}, snapshot.Footer); diff != "" {
		t.Errorf("filtered footer (-want +got):\n%s", diff)
	}
}

func Test_Footer_01(t *testing.T) {
	var (
		config = frame.ColumnConfig{Footer: util.Some(frame.FooterOptions{Reducers: []string{"sum"}})}
		before = frame.NewFrame("f", frame.NewColumn("n", frame.NUMBER, 1.0, 2.0, 3.0).WithConfig(config))
		after  = frame.NewFrame("f", frame.NewColumn("n", frame.NUMBER, 10.0, 20.0, 30.0).WithConfig(config))
		grid   = NewBuilder().Build(before)
	)
	//
	snapshot := grid.Snapshot()
	//
	if diff := cmp.Diff([][]string{{"6"}}, snapshot.Footer); diff != "" {
		t.Errorf("initial footer (-want +got):\n%s", diff)
	}
	// Same rows, different values
	snapshot = grid.SetFrame(after)
	//
	if diff := cmp.Diff([][]string{{"60"}}, snapshot.Footer); diff != "" {
		t.Errorf("refreshed footer (-want +got):\n%s", diff)
	}
}

// ===================================================================
// Nesting
// ===================================================================

func Test_Nested_00(t *testing.T) {
	var (
		f    = nestedFrame()
		grid = NewBuilder().Build(f)
	)
	//
	grid.ApplySort("id", sorting.DESC, false)
	grid.SetNestedSort(0, sorting.Keys{{Column: "v", Direction: sorting.DESC}})
	sorted := grid.Stats().Sorted
	//
	snapshot := grid.SetNestedSort(2, sorting.Keys{{Column: "v", Direction: sorting.ASC}})
	// Top-level untouched
	check_Keys(t, snapshot.SortKeys, sorting.Key{Column: "id", Direction: sorting.DESC})
	check_Keys(t, grid.NestedSorts().Get(0), sorting.Key{Column: "v", Direction: sorting.DESC})
	//
	if grid.Stats().Sorted != sorted {
		t.Errorf("top-level rows resorted")
	}
	//
	view, ok := grid.Nested(2)
	//
	if !ok || len(view.Tables) != 1 {
		t.Fatalf("expected one nested table")
	}
	//
	check_RowValues(t, view.Tables[0], "v", 1.0, 2.0, 3.0)
	// Nested row follows its parent
	check_Values(t, snapshot, "id", 2.0, nil, 1.0, 0.0)
}

func Test_Nested_01(t *testing.T) {
	var grid = NewBuilder().Build(nestedFrame())
	//
	if _, ok := grid.Nested(1); ok {
		t.Errorf("unexpected nested table")
	}
	//
	view, _ := grid.Nested(2)
	check_RowValues(t, view.Tables[0], "v", 3.0, 1.0, 2.0)
	// Memoised
	grid.Nested(2)
	//
	if grid.Stats().Nested != 1 {
		t.Errorf("expected nested tables sorted once, got %d", grid.Stats().Nested)
	}
	// Resorted on change
	grid.ApplyNestedSort(2, "v", sorting.DESC, false)
	view, _ = grid.Nested(2)
	check_RowValues(t, view.Tables[0], "v", 3.0, 2.0, 1.0)
	//
	if grid.Stats().Nested != 2 {
		t.Errorf("expected nested tables sorted twice, got %d", grid.Stats().Nested)
	}
}

func Test_Nested_02(t *testing.T) {
	var (
		child = frame.NewFrame("child",
			frame.NewColumn("name", frame.STRING, "a", "b", "a"),
			frame.NewColumn("v", frame.NUMBER, 3.0, 1.0, 2.0))
		f = frame.NewFrame("f",
			frame.NewColumn("id", frame.NUMBER, 0.0, 1.0),
			frame.NewColumn("name", frame.STRING, "a", "b"),
			frame.NewColumn("nested", frame.NESTED_FRAMES, []*frame.Frame{child}, nil))
		grid = NewBuilder().Build(f)
	)
	// Filter applies to the child table as well
	snapshot := grid.SetFilter("name", "a")
	check_Values(t, snapshot, "id", 0.0, nil)
	//
	view, _ := grid.Nested(0)
	check_RowValues(t, view.Tables[0], "v", 3.0, 2.0)
	// Sorting retains the child's filter
	grid.ApplyNestedSort(0, "v", sorting.ASC, false)
	view, _ = grid.Nested(0)
	check_RowValues(t, view.Tables[0], "v", 2.0, 3.0)
	// Filter on a column the child lacks leaves it alone
	grid.SetFilter("id", "0")
	view, _ = grid.Nested(0)
	check_RowValues(t, view.Tables[0], "v", 2.0, 3.0)
	// Clearing the filter restores the child
	grid.ClearFilter("name")
	view, _ = grid.Nested(0)
	check_RowValues(t, view.Tables[0], "v", 1.0, 2.0, 3.0)
	//
	if grid.Stats().Nested != 4 {
		t.Errorf("expected nested tables computed 4 times, got %d", grid.Stats().Nested)
	}
}

// ===================================================================
// Memoisation
// ===================================================================

func Test_Memo_00(t *testing.T) {
	var (
		f    = frame.NewFrame("f", frame.NewColumn("n", frame.NUMBER, 1.0, 2.0, 3.0, 4.0, 5.0))
		grid = pagedBuilder(2).Build(f)
	)
	//
	grid.Snapshot()
	grid.SetPage(1)
	grid.SetPage(2)
	check_Stats(t, grid, Stats{1, 1, 1, 1, 0})
	// Viewport affects only heights
	grid.SetViewportSize(500, 100)
	check_Stats(t, grid, Stats{1, 1, 1, 2, 0})
	// Sorting does not refilter
	grid.ApplySort("n", sorting.DESC, false)
	check_Stats(t, grid, Stats{1, 1, 2, 2, 0})
	// Filtering resorts
	grid.SetFilter("n", "1")
	check_Stats(t, grid, Stats{1, 2, 3, 2, 0})
	// New frame reruns everything
	grid.SetFrame(f)
	check_Stats(t, grid, Stats{2, 3, 4, 3, 0})
}

func Test_Memo_01(t *testing.T) {
	var (
		before = frame.NewFrame("f", frame.NewColumn("s", frame.STRING, "ab", "abc"))
		after  = frame.NewFrame("f", frame.NewColumn("s", frame.STRING, "wxyz", "q"))
		grid   = NewBuilder().Build(before)
	)
	//
	if snapshot := grid.Snapshot(); snapshot.Columns[0].Longest != "abc" {
		t.Errorf("expected longest \"abc\", got \"%s\"", snapshot.Columns[0].Longest)
	}
	// Same shape, different content
	if snapshot := grid.SetFrame(after); snapshot.Columns[0].Longest != "wxyz" {
		t.Errorf("expected longest \"wxyz\", got \"%s\"", snapshot.Columns[0].Longest)
	}
}

func Test_Heights_00(t *testing.T) {
	var (
		f = frame.NewFrame("f",
			frame.NewColumn("s", frame.STRING, "short", "a rather long piece of text").
				WithConfig(frame.ColumnConfig{Width: 70, Wrap: true}))
		config = height.Config{LineHeight: 10, Padding: 4, DefaultHeight: 20, AvgCharWidth: 7}
		grid   = NewBuilder().WithHeightConfig(config).Build(f)
	)
	// Heights are aligned with the sorted rows
	snapshot := grid.ApplySort("s", sorting.DESC, false)
	//
	if diff := cmp.Diff([]float64{20, 3*10 + 4}, snapshot.Heights); diff != "" {
		t.Errorf("unexpected heights (-want +got):\n%s", diff)
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

// Construct a builder for a paginated grid showing a given number of rows per
// page.
func pagedBuilder(perPage int) Builder {
	return NewBuilder().
		WithPagination(true).
		WithRowHeight(10).
		WithHeaderHeight(0).
		WithFooterHeight(0).
		WithBarHeight(0).
		WithViewport(1000, perPage*10)
}

// Frame with three rows, where the last has a nested table.
func nestedFrame() *frame.Frame {
	var child = frame.NewFrame("child", frame.NewColumn("v", frame.NUMBER, 3.0, 1.0, 2.0))
	//
	return frame.NewFrame("f",
		frame.NewColumn("id", frame.NUMBER, 0.0, 1.0, 2.0),
		frame.NewColumn("nested", frame.NESTED_FRAMES, nil, nil, []*frame.Frame{child}))
}

func check_Values(t *testing.T, snapshot Snapshot, column string, expected ...any) {
	t.Helper()
	check_RowValues(t, snapshot.Rows(), column, expected...)
}

func check_RowValues(t *testing.T, rs []rows.Row, column string, expected ...any) {
	t.Helper()
	//
	var actual = make([]any, len(rs))
	//
	for i, row := range rs {
		actual[i], _ = row.Value(column)
	}
	//
	if len(expected) == 0 && len(actual) == 0 {
		return
	} else if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("column %s (-want +got):\n%s", column, diff)
	}
}

func check_Keys(t *testing.T, actual sorting.Keys, expected ...sorting.Key) {
	t.Helper()
	//
	if len(expected) == 0 && len(actual) == 0 {
		return
	} else if diff := cmp.Diff(sorting.Keys(expected), actual); diff != "" {
		t.Errorf("sort keys (-want +got):\n%s", diff)
	}
}

func check_Candidates(t *testing.T, snapshot Snapshot, column string, expected ...string) {
	t.Helper()
	//
	if diff := cmp.Diff(expected, snapshot.Candidates(column)); diff != "" {
		t.Errorf("candidates for %s (-want +got):\n%s", column, diff)
	}
}

func check_Page(t *testing.T, actual page.Page, pg int, start int, end int, numPages int) {
	t.Helper()
	//
	if actual.Page != pg || actual.RangeStart != start || actual.RangeEnd != end || actual.NumPages != numPages {
		t.Errorf("expected page %d (%d-%d of %d pages), got page %d (%d-%d of %d pages)",
			pg, start, end, numPages, actual.Page, actual.RangeStart, actual.RangeEnd, actual.NumPages)
	}
}

func check_Stats(t *testing.T, grid *Grid, expected Stats) {
	t.Helper()
	//
	if diff := cmp.Diff(expected, grid.Stats()); diff != "" {
		t.Errorf("unexpected stage counts (-want +got):\n%s", diff)
	}
}
