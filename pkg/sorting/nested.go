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
package sorting

import (
	"maps"
	"slices"

	"github.com/consensys/go-gridrows/pkg/rows"
)

// Nested holds the sort keys for every nested table, indexed by the index of
// the parent row.  The sort state of a nested table is entirely independent of
// both the top-level table and any other nested table.  As with filter state,
// a Nested value is never modified in place.
type Nested struct {
	keys map[uint]Keys
}

// NewNested constructs an empty nested sort state.
func NewNested() Nested {
	return Nested{make(map[uint]Keys)}
}

// Get the sort keys for the nested table under a given parent row.
func (p Nested) Get(parent uint) Keys {
	return p.keys[parent]
}

// With returns a new nested sort state where the nested table under the given
// parent row uses the given keys.  Using an empty list of keys removes the
// entry altogether.
func (p Nested) With(parent uint, keys Keys) Nested {
	var nkeys = make(map[uint]Keys, len(p.keys)+1)
	//
	maps.Copy(nkeys, p.keys)
	//
	if len(keys) == 0 {
		delete(nkeys, parent)
	} else {
		nkeys[parent] = slices.Clone(keys)
	}
	//
	return Nested{nkeys}
}

// Toggle applies a column-header sort request to the nested table under a given
// parent row.
func (p Nested) Toggle(parent uint, column string, direction Direction, multi bool) Nested {
	return p.With(parent, Toggle(p.Get(parent), column, direction, multi))
}

// Parents returns the indices of all parent rows whose nested tables are
// sorted, in increasing order.
func (p Nested) Parents() []uint {
	var parents []uint
	for k := range p.keys {
		parents = append(parents, k)
	}
	//
	slices.Sort(parents)
	//
	return parents
}

// SortNested sorts the child tables beneath a nested row using the keys held
// for its parent.  Tables are aligned with the row's child frames, and each is
// sorted using the column types of its own frame.
func SortNested(row rows.Row, tables [][]rows.Row, state Nested) [][]rows.Row {
	var (
		keys   = state.Get(row.Index())
		sorted = make([][]rows.Row, len(tables))
	)
	//
	for i, child := range row.Children() {
		sorted[i] = Sort(tables[i], keys, child.Types())
	}
	//
	return sorted
}

