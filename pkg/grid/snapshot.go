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
	"github.com/consensys/go-gridrows/pkg/filter"
	"github.com/consensys/go-gridrows/pkg/frame"
	"github.com/consensys/go-gridrows/pkg/page"
	"github.com/consensys/go-gridrows/pkg/rows"
	"github.com/consensys/go-gridrows/pkg/sorting"
	"github.com/consensys/go-gridrows/pkg/util"
)

// Column describes a column as it should be rendered.
type Column struct {
	Name        string
	DisplayName string
	Type        frame.Type
	// Width in pixels
	Width float64
	// Longest formatted value, as used for alignment.
	Longest string
	// Sort direction, if this column is sorted.
	Sort util.Option[sorting.Direction]
	// Filtered indicates whether this column has a filter.
	Filtered bool
}

// Snapshot is the derived state of a grid at some point.  Snapshots are never
// updated, hence remain valid after the grid changes.
type Snapshot struct {
	// Columns in display order.
	Columns []Column
	// Page holds the rows to display along with paging metadata.
	Page page.Page
	// Heights of the rows on the current page (in pixels).
	Heights []float64
	// Footer holds the formatted footer values for each column (or nil when no
	// column has a footer).
	Footer [][]string
	// SortKeys of the top-level table.
	SortKeys sorting.Keys
	// Filters currently applied.
	Filters filter.State
	//
	frame    *frame.Frame
	filtered filter.Result
}

// Rows returns the rows on the current page.
func (p *Snapshot) Rows() []rows.Row {
	return p.Page.Rows
}

// Candidates returns the values which the filter popup for a given column
// should offer.  For a filtered column, these are drawn from the rows which
// passed every filter applied before it.
func (p *Snapshot) Candidates(column string) []string {
	return p.filtered.CandidateValues(column, p.frame)
}

// Total returns the number of rows which passed all filters, including nested
// rows.
func (p *Snapshot) Total() int {
	return len(p.filtered.Rows)
}
