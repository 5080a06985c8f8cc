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
	"fmt"
	"slices"
	"strings"
)

// Direction determines whether a column is sorted in ascending or descending
// order.
type Direction uint8

// ASC indicates ascending order.
const ASC = Direction(0)

// DESC indicates descending order.
const DESC = Direction(1)

// ParseDirection parses a direction name (ignoring case).
func ParseDirection(name string) (Direction, bool) {
	switch strings.ToUpper(name) {
	case "ASC":
		return ASC, true
	case "DESC":
		return DESC, true
	}
	//
	return ASC, false
}

func (d Direction) String() string {
	if d == DESC {
		return "DESC"
	}
	//
	return "ASC"
}

// Key identifies a column to sort on, and in which direction.
type Key struct {
	Column    string
	Direction Direction
}

func (p Key) String() string {
	return fmt.Sprintf("%s %s", p.Column, p.Direction)
}

// Keys is an ordered list of sort keys, where the first key is the primary key
// and subsequent keys only break ties.
type Keys []Key

// Find returns the position of the key for a given column, or -1 if the column
// is not sorted.
func (p Keys) Find(column string) int {
	return slices.IndexFunc(p, func(k Key) bool { return k.Column == column })
}

// Toggle applies a column-header sort request to a list of sort keys, producing
// a new list.  A column not yet sorted is added (replacing all other keys,
// unless in multi-sort mode).  A column currently sorted in descending order is
// removed, thus completing the cycle ASC -> DESC -> unsorted.  Otherwise, the
// column's direction is updated in place, preserving its position amongst the
// other keys (in single-sort mode, it becomes the only key).
func Toggle(keys Keys, column string, direction Direction, multi bool) Keys {
	var (
		index = keys.Find(column)
		key   = Key{column, direction}
	)
	//
	switch {
	case index >= 0 && keys[index].Direction == DESC:
		return slices.Delete(slices.Clone(keys), index, index+1)
	case !multi:
		return Keys{key}
	case index < 0:
		return append(slices.Clone(keys), key)
	default:
		nkeys := slices.Clone(keys)
		nkeys[index] = key
		//
		return nkeys
	}
}

// NextDirection determines the direction which a header click on a given
// column requests.  An unsorted column requests ascending order, and an
// ascending column requests descending order.  A descending column requests
// descending order again, which Toggle interprets as a request to remove it.
func NextDirection(keys Keys, column string) Direction {
	if index := keys.Find(column); index >= 0 {
		return DESC
	}
	//
	return ASC
}
