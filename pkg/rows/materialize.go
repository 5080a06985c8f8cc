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
package rows

import (
	"github.com/consensys/go-gridrows/pkg/frame"
)

// Materialize converts a frame into a flat array of rows.  For each index i, a
// top-level row is emitted followed, if the frame has a nestedFrames column
// holding a non-empty list at i, by a nested row with the same index.  The rows
// of child frames are not materialised here; see Expand.
func Materialize(f *frame.Frame) []Row {
	var (
		n      = f.Len()
		nested = f.NestedColumn()
		rows   = make([]Row, 0, n)
	)
	//
	for i := uint(0); i < n; i++ {
		values := make(map[string]any, f.Width())
		//
		for j := range f.Columns {
			col := &f.Columns[j]
			values[col.Name] = col.Get(i)
		}
		//
		rows = append(rows, NewRow(i, values))
		//
		if nested.HasValue() {
			if children := frame.NestedFrames(nested.Unwrap().Get(i)); len(children) > 0 {
				rows = append(rows, NewNestedRow(i, children))
			}
		}
	}
	//
	return rows
}

// Expand materialises the rows of each child frame held by a nested row.  This
// happens lazily, when a nested row is actually expanded for display.  Expanding
// a top-level row yields nothing.
func Expand(row Row) [][]Row {
	var tables [][]Row
	//
	for _, child := range row.Children() {
		tables = append(tables, Materialize(child))
	}
	//
	return tables
}

// SplitNested separates top-level rows from nested rows, with the latter
// indexed by their parent's index.
func SplitNested(rows []Row) (parents []Row, children map[uint]Row) {
	children = make(map[uint]Row)
	//
	for _, row := range rows {
		if row.IsNested() {
			children[row.Index()] = row
		} else {
			parents = append(parents, row)
		}
	}
	//
	return parents, children
}

// JoinNested reattaches nested rows immediately below their parents.  This is
// the inverse of SplitNested, and allows parents to be processed (e.g. filtered
// or sorted) without ever comparing rows across depths.
func JoinNested(parents []Row, children map[uint]Row) []Row {
	if len(children) == 0 {
		return parents
	}
	//
	var rows = make([]Row, 0, len(parents)+len(children))
	//
	for _, row := range parents {
		rows = append(rows, row)
		//
		if child, ok := children[row.Index()]; ok {
			rows = append(rows, child)
		}
	}
	//
	return rows
}

// ProcessNested applies a transformation to the top-level rows only, keeping
// each nested row attached to its parent.
func ProcessNested(rows []Row, fn func([]Row) []Row) []Row {
	parents, children := SplitNested(rows)
	//
	return JoinNested(fn(parents), children)
}
