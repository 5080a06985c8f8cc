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
	"slices"

	"github.com/consensys/go-gridrows/pkg/filter"
	"github.com/consensys/go-gridrows/pkg/frame"
	"github.com/consensys/go-gridrows/pkg/rows"
	"github.com/consensys/go-gridrows/pkg/sorting"
	log "github.com/sirupsen/logrus"
)

// NestedView holds the (sorted) child tables beneath a given parent row.
type NestedView struct {
	// Index of the parent row.
	Parent uint
	// Keys used to sort each child table.
	Keys sorting.Keys
	// Frames holds the child frames.
	Frames []*frame.Frame
	// Tables holds the filtered and sorted rows of each child frame.
	Tables [][]rows.Row
}

type nestedEntry struct {
	frame  uint
	filter uint
	keys   sorting.Keys
	view  NestedView
}

// Nested expands the nested row beneath a given parent row, returning false if
// there is no such row.  The rows of each child table are filtered by those
// filters which apply to its columns, and then sorted.  Child tables are only
// recomputed when the sort keys for this parent, the filters or the frame have
// changed, and the top-level table is never resorted.
func (p *Grid) Nested(parent uint) (NestedView, bool) {
	var (
		keys  = p.nested.Get(parent)
		input = p.materialisedRows()
	)
	//
	if e, ok := p.nestedAt[parent]; ok && e.frame == p.gen.frame && e.filter == p.gen.filter &&
		slices.Equal(e.keys, keys) {
		return e.view, true
	}
	//
	i := slices.IndexFunc(input, func(r rows.Row) bool { return r.IsNested() && r.Index() == parent })
	//
	if i < 0 {
		return NestedView{}, false
	}
	//
	p.stats.Nested++
	log.Debugf("filtering and sorting nested tables under row %d using %d keys", parent, len(keys))
	//
	tables := filter.ApplyNested(input[i], p.filters)
	view := NestedView{parent, keys, input[i].Children(), sorting.SortNested(input[i], tables, p.nested)}
	p.nestedAt[parent] = nestedEntry{p.gen.frame, p.gen.filter, keys, view}
	//
	return view, true
}
