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
	"slices"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/go-gridrows/pkg/frame"
	"github.com/consensys/go-gridrows/pkg/rows"
	"github.com/consensys/go-gridrows/pkg/sorting"
)

// Result captures the outcome of applying a filter state to a set of rows.
type Result struct {
	// Rows which passed every active filter (plus their nested rows).
	Rows []rows.Row
	// Input rows (i.e. prior to filtering).
	input []rows.Row
	// Filter order used.
	order []string
	// Cross-filter rows, which maps each filtered column to those rows which
	// passed every filter before it (in filter order).
	cross map[string][]rows.Row
}

// Apply a filter state to a set of materialised rows.  Filters are tested in
// filter order, and a row survives only if its display value for every
// filtered column is allowed.  Before a row is tested against the filter of
// some column, it is recorded as a cross-filter row for that column.  Nested
// rows are never tested; instead they survive exactly when their parent does.
// A filter on a column which does not exist in the frame rejects every row.
func Apply(input []rows.Row, state State, f *frame.Frame) Result {
	var (
		cross   = make(map[string][]rows.Row)
		order   = state.Columns()
		columns = make([]*frame.Column, len(order))
		filters = make([]Filter, len(order))
	)
	//
	if state.IsEmpty() {
		return Result{input, input, nil, cross}
	}
	// Resolve columns and filters upfront
	for i, name := range order {
		columns[i], _ = f.Column(name)
		filters[i], _ = state.Get(name)
	}
	//
	accept := func(row rows.Row) bool {
		for i, name := range order {
			// Record row before testing this column's own filter.
			cross[name] = append(cross[name], row)
			//
			if !filters[i].IsActive() {
				continue
			} else if columns[i] == nil {
				return false
			}
			//
			val, _ := row.Value(name)
			//
			if !filters[i].Allows(columns[i].Display(val)) {
				return false
			}
		}
		//
		return true
	}
	//
	filtered := rows.ProcessNested(input, func(parents []rows.Row) []rows.Row {
		var survivors = bitset.New(uint(len(parents)))
		//
		for i, row := range parents {
			if accept(row) {
				survivors.Set(uint(i))
			}
		}
		//
		kept := make([]rows.Row, 0, survivors.Count())
		//
		for i, ok := survivors.NextSet(0); ok; i, ok = survivors.NextSet(i + 1) {
			kept = append(kept, parents[i])
		}
		//
		return kept
	})
	//
	return Result{filtered, input, order, cross}
}

// ApplyNested expands a nested row, and filters the rows of each child frame
// independently.  Only those filters on columns which the child frame actually
// has are applied, so a child table is never emptied by a filter on one of the
// parent's columns.
func ApplyNested(row rows.Row, state State) [][]rows.Row {
	var tables = rows.Expand(row)
	//
	for i, child := range row.Children() {
		tables[i] = Apply(tables[i], state.Restrict(child), child).Rows
	}
	//
	return tables
}

// CrossRows returns the rows recorded for a given column whilst filtering.
// That is, those rows which passed every filter before the given column.
func (p Result) CrossRows(column string) []rows.Row {
	return p.cross[column]
}

// CrossColumns returns the columns for which cross-filter rows were recorded.
func (p Result) CrossColumns() []string {
	var columns []string
	//
	for _, c := range p.order {
		if _, ok := p.cross[c]; ok {
			columns = append(columns, c)
		}
	}
	//
	return columns
}

// CandidateRows returns the rows from which the filter popup for a given column
// should draw its values.  For a column which is already filtered, these are
// the rows which passed every filter applied before it.  For any other column,
// these are the rows which passed every filter.
func (p Result) CandidateRows(column string) []rows.Row {
	if slices.Contains(p.order, column) {
		return p.cross[column]
	}
	// Not filtered yet, hence depends on all filters applied.
	var parents, _ = rows.SplitNested(p.Rows)
	//
	return parents
}

// CandidateValues returns the distinct display values which the filter popup
// for a given column should offer, in sorted order.  A column which does not
// exist in the frame has no candidates.
func (p Result) CandidateValues(column string, f *frame.Frame) []string {
	var (
		col, ok = f.Column(column)
		seen    = make(map[string]bool)
		values  []string
	)
	//
	if !ok {
		return nil
	}
	//
	for _, row := range p.CandidateRows(column) {
		val, _ := row.Value(column)
		text := col.Display(val)
		//
		if !seen[text] {
			seen[text] = true
			values = append(values, text)
		}
	}
	//
	cmp := sorting.NewStringComparator()
	slices.SortFunc(values, func(l, r string) int { return cmp.Compare(l, r) })
	//
	return values
}
