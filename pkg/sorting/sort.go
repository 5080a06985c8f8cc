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
	"slices"

	"github.com/consensys/go-gridrows/pkg/frame"
	"github.com/consensys/go-gridrows/pkg/rows"
)

// Sort a set of rows according to a list of sort keys, producing a new
// permutation of them.  Keys are compared in order with the first non-zero
// comparison deciding, and rows which compare equal on every key retain their
// relative order.  Keys naming columns which are not in the type map contribute
// no ordering.  Nested rows remain immediately below their parents.  When no
// key contributes any ordering, the input is returned unchanged.
func Sort(input []rows.Row, keys Keys, types frame.TypeMap) []rows.Row {
	var cmp = rowComparator(keys, types)
	//
	if cmp == nil {
		return input
	}
	//
	return rows.ProcessNested(input, func(parents []rows.Row) []rows.Row {
		var sorted = slices.Clone(parents)
		//
		slices.SortStableFunc(sorted, cmp)
		//
		return sorted
	})
}

// Construct a comparator for rows from a given set of sort keys.  This returns
// nil if there is nothing to compare.
func rowComparator(keys Keys, types frame.TypeMap) func(l, r rows.Row) int {
	var (
		strings     = NewStringComparator()
		columns     []string
		directions  []Direction
		comparators []Comparator
	)
	//
	for _, key := range keys {
		if kind, ok := types[key.Column]; ok {
			columns = append(columns, key.Column)
			directions = append(directions, key.Direction)
			comparators = append(comparators, ComparatorFor(kind, strings))
		}
	}
	//
	if len(columns) == 0 {
		return nil
	}
	//
	return func(l, r rows.Row) int {
		for i, column := range columns {
			lv, _ := l.Value(column)
			rv, _ := r.Value(column)
			//
			if c := comparators[i](lv, rv); c != 0 && directions[i] == DESC {
				return -c
			} else if c != 0 {
				return c
			}
		}
		//
		return 0
	}
}
