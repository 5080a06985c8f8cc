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
	"github.com/consensys/go-gridrows/pkg/util"
)

// Formatter converts a raw cell value into the string displayed for it.  This
// is supplied by the cell-rendering layer and may misbehave (e.g. panic) for
// values it does not expect.
type Formatter func(any) string

// FooterOptions determines which reducers are shown in the footer for a column.
type FooterOptions struct {
	// Reducers to compute, in display order.
	Reducers []string
	// Optional allow-list of columns (by raw or display name).  When non-empty,
	// columns not listed show empty footer cells.
	Fields []string
}

// ColumnConfig holds the display configuration for a column.
type ColumnConfig struct {
	// DisplayName overrides the column name in headers and footers.
	DisplayName string
	// Width in pixels, where zero means the width is determined automatically.
	Width uint
	// Wrap enables text wrapping, which affects row heights.
	Wrap bool
	// Formatter used to render values of this column.
	Formatter Formatter
	// Footer configuration (if any).
	Footer util.Option[FooterOptions]
}

// Column is a named, typed sequence of values.  A column is immutable for the
// duration of a pipeline invocation.
type Column struct {
	// Name of this column, which is also the key of its values in each row.
	Name string
	// Type of values held in this column.
	Type Type
	// Values held in this column.
	Values []any
	// Config for displaying this column.
	Config ColumnConfig
}

// NewColumn constructs a column with default display configuration.
func NewColumn(name string, kind Type, values ...any) Column {
	return Column{Name: name, Type: kind, Values: values}
}

// Len returns the number of values in this column.
func (p *Column) Len() uint {
	return uint(len(p.Values))
}

// Get returns the value at the given index.  An index beyond the end of the
// column yields nil rather than a failure, so that one bad column cannot
// prevent the remaining cells of a row from being read.
func (p *Column) Get(index uint) any {
	if index >= uint(len(p.Values)) {
		return nil
	}
	//
	return p.Values[index]
}

// DisplayName returns the name shown for this column.
func (p *Column) DisplayName() string {
	if p.Config.DisplayName != "" {
		return p.Config.DisplayName
	}
	//
	return p.Name
}

// Display renders a given value of this column as a string.
func (p *Column) Display(val any) string {
	return Display(p.Config.Formatter, val)
}

// WithConfig returns a copy of this column using the given configuration.
func (p Column) WithConfig(config ColumnConfig) Column {
	p.Config = config
	return p
}
