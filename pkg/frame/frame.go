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
package frame

import (
	"fmt"

	"github.com/consensys/go-gridrows/pkg/util"
)

// Frame is a columnar table, consisting of zero or more named columns of equal
// length.  A frame is supplied fresh for each render cycle and is never
// modified by the pipeline.
type Frame struct {
	// Name of this frame (optional).
	Name string
	// Columns making up this frame.
	Columns []Column
}

// NewFrame constructs a frame from a given set of columns.
func NewFrame(name string, columns ...Column) *Frame {
	return &Frame{name, columns}
}

// Len returns the number of rows in this frame.  This is the length of the
// longest column, with values missing from shorter columns read as nil.
func (p *Frame) Len() uint {
	var n uint
	//
	for i := range p.Columns {
		n = max(n, p.Columns[i].Len())
	}
	//
	return n
}

// Width returns the number of columns in this frame.
func (p *Frame) Width() uint {
	return uint(len(p.Columns))
}

// Column returns the column with the given name, if it exists.
func (p *Frame) Column(name string) (*Column, bool) {
	for i := range p.Columns {
		if p.Columns[i].Name == name {
			return &p.Columns[i], true
		}
	}
	//
	return nil, false
}

// NestedColumn returns the first column holding nested frames (if any).  Only
// this column is used when materialising nested rows.
func (p *Frame) NestedColumn() util.Option[*Column] {
	for i := range p.Columns {
		if p.Columns[i].Type == NESTED_FRAMES {
			return util.Some(&p.Columns[i])
		}
	}
	//
	return util.None[*Column]()
}

// Types returns the mapping from column names to column types for this frame.
func (p *Frame) Types() TypeMap {
	var types = make(TypeMap, len(p.Columns))
	//
	for _, c := range p.Columns {
		types[c.Name] = c.Type
	}
	//
	return types
}

// Validate checks that all columns have the same length, and that column names
// are unique.
func (p *Frame) Validate() error {
	var seen = make(map[string]bool)
	//
	for i, c := range p.Columns {
		if seen[c.Name] {
			return fmt.Errorf("duplicate column \"%s\"", c.Name)
		} else if c.Len() != p.Columns[0].Len() {
			return fmt.Errorf("column \"%s\" has length %d (expected %d)", c.Name, c.Len(), p.Columns[0].Len())
		}
		//
		seen[c.Name] = true
		// Check nested frames as well
		if c.Type == NESTED_FRAMES {
			for row, v := range c.Values {
				if err := validateNested(v); err != nil {
					return fmt.Errorf("column \"%s\" row %d: %w", p.Columns[i].Name, row, err)
				}
			}
		}
	}
	//
	return nil
}

func validateNested(val any) error {
	var children, ok = val.([]*Frame)
	//
	if val != nil && !ok {
		return fmt.Errorf("expected nested frames, found %T", val)
	}
	//
	for _, child := range children {
		if child == nil {
			continue
		} else if err := child.Validate(); err != nil {
			return err
		}
	}
	//
	return nil
}

// NestedFrames extracts the list of child frames from a value of a
// NESTED_FRAMES column.  Any other kind of value yields no frames.
func NestedFrames(val any) []*Frame {
	var (
		children, _ = val.([]*Frame)
		result      []*Frame
	)
	//
	for _, child := range children {
		if child != nil {
			result = append(result, child)
		}
	}
	//
	return result
}
