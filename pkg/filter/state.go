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

	"github.com/consensys/go-gridrows/pkg/frame"
)

// State is an ordered mapping from column names to filters.  The order in which
// columns were first filtered is significant, since it determines the
// cross-filter dependency chain.  States are never modified in place; every
// update produces a new state.
type State struct {
	order   []string
	filters map[string]Filter
}

// NewState constructs an empty filter state.
func NewState() State {
	return State{nil, make(map[string]Filter)}
}

// Set the filter for a given column.  Updating an existing filter keeps its
// position in the order, whilst a new filter is placed last.
func (p State) Set(column string, filter Filter) State {
	var q = p.clone()
	//
	if _, ok := q.filters[column]; !ok {
		q.order = append(q.order, column)
	}
	//
	q.filters[column] = filter
	//
	return q
}

// Clear the filter for a given column (if it exists).
func (p State) Clear(column string) State {
	if _, ok := p.filters[column]; !ok {
		return p
	}
	//
	var q = p.clone()
	//
	delete(q.filters, column)
	q.order = slices.DeleteFunc(q.order, func(c string) bool { return c == column })
	//
	return q
}

// Get the filter for a given column (if it exists).
func (p State) Get(column string) (Filter, bool) {
	f, ok := p.filters[column]
	return f, ok
}

// Columns returns the filtered columns in filter order.
func (p State) Columns() []string {
	return slices.Clone(p.order)
}

// Len returns the number of filtered columns.
func (p State) Len() int {
	return len(p.order)
}

// IsEmpty determines whether any column is filtered.
func (p State) IsEmpty() bool {
	return len(p.order) == 0
}

// Position returns the position of a column in the filter order, or -1 if the
// column is not filtered.
func (p State) Position(column string) int {
	return slices.Index(p.order, column)
}

// Restrict this state to those filters whose columns exist in a given frame,
// retaining their order.  This is how filters apply to the child frames of
// nested rows, which generally have different columns.
func (p State) Restrict(f *frame.Frame) State {
	var q = NewState()
	//
	for _, column := range p.order {
		if _, ok := f.Column(column); ok {
			q.order = append(q.order, column)
			q.filters[column] = p.filters[column]
		}
	}
	//
	return q
}

func (p State) clone() State {
	var filters = make(map[string]Filter, len(p.filters)+1)
	//
	for k, v := range p.filters {
		filters[k] = v
	}
	//
	return State{slices.Clone(p.order), filters}
}
