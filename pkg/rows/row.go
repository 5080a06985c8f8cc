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
	"fmt"

	"github.com/consensys/go-gridrows/pkg/frame"
)

// TOP_LEVEL identifies a row holding the values of a frame row.
const TOP_LEVEL = uint8(0)

// NESTED identifies a row holding the child frames of its parent row.  Such a
// row always immediately follows its parent, and shares its index.
const NESTED = uint8(1)

// Key identifies a row within the arena of materialised rows.  Indices are
// unique only within a given depth.
type Key struct {
	Depth uint
	Index uint
}

func (p Key) String() string {
	return fmt.Sprintf("%d:%d", p.Depth, p.Index)
}

// Row is a single materialised row.  This is either a top-level row, which
// holds the values of the frame row at a given index, or a nested row, which
// holds the child frames of the top-level row with the same index.
type Row struct {
	kind uint8
	// Original position in the (unsorted, unfiltered) frame.
	index uint
	// Values for top-level rows, indexed by column name.
	values map[string]any
	// Child frames for nested rows.
	children []*frame.Frame
}

// NewRow constructs a top-level row.
func NewRow(index uint, values map[string]any) Row {
	return Row{TOP_LEVEL, index, values, nil}
}

// NewNestedRow constructs a nested row for the parent at a given index.
func NewNestedRow(parent uint, children []*frame.Frame) Row {
	return Row{NESTED, parent, nil, children}
}

// Depth returns 0 for a top-level row, and 1 for a nested row.
func (p Row) Depth() uint {
	return uint(p.kind)
}

// Index returns the original (unsorted, unfiltered) position of this row.  For
// a nested row, this is the index of its parent.
func (p Row) Index() uint {
	return p.index
}

// Key returns the arena key for this row.
func (p Row) Key() Key {
	return Key{p.Depth(), p.index}
}

// IsNested determines whether this is a nested row.
func (p Row) IsNested() bool {
	return p.kind == NESTED
}

// Value returns the value of a given column in this row.  Nested rows have no
// column values.
func (p Row) Value(column string) (any, bool) {
	val, ok := p.values[column]
	return val, ok
}

// Children returns the child frames of a nested row.
func (p Row) Children() []*frame.Frame {
	return p.children
}

// ChildRows returns the total number of rows across all child frames of a
// nested row.
func (p Row) ChildRows() uint {
	var n uint
	//
	for _, child := range p.children {
		n += child.Len()
	}
	//
	return n
}

func (p Row) String() string {
	if p.IsNested() {
		return fmt.Sprintf("nested(%d, %d frames)", p.index, len(p.children))
	}
	//
	return fmt.Sprintf("row(%d, %v)", p.index, p.values)
}
