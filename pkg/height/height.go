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
package height

import (
	"math"
	"unicode/utf8"

	"github.com/consensys/go-gridrows/pkg/frame"
	"github.com/consensys/go-gridrows/pkg/rows"
)

// LineCounter determines exactly how many lines a given text occupies when
// wrapped within a given pixel width.  This is assumed to be expensive.
type LineCounter func(text string, width float64) int

// Config captures the row geometry used when estimating heights.  All values
// are in pixels.
type Config struct {
	// LineHeight is the height of a single line of wrapped text.
	LineHeight float64
	// Padding is the vertical padding added to every wrapped row.
	Padding float64
	// DefaultHeight is the fixed height of an unwrapped row, and the minimum
	// height of any row.
	DefaultHeight float64
	// AvgCharWidth is the average width of a character in the active font.
	AvgCharWidth float64
	// NestedHeaderHeight is the height of the header above a nested table.
	NestedHeaderHeight float64
}

// DefaultConfig returns the geometry used when nothing else is known.
func DefaultConfig() Config {
	return Config{
		LineHeight:         22,
		Padding:            8,
		DefaultHeight:      36,
		AvgCharWidth:       7,
		NestedHeaderHeight: 36,
	}
}

// Column identifies a column whose width (and wrap setting) affects row
// heights.
type Column struct {
	Name string
	// Width of the column in pixels.
	Width float64
	// Wrap determines whether text in this column wraps.
	Wrap bool
	// Formatter used to obtain the displayed text (optional).
	Formatter frame.Formatter
}

// ColumnsOf extracts the height-relevant configuration of a frame's columns,
// given their pixel widths.
func ColumnsOf(f *frame.Frame, widths []float64) []Column {
	var columns = make([]Column, len(f.Columns))
	//
	for i := range f.Columns {
		col := &f.Columns[i]
		columns[i] = Column{col.Name, widths[i], col.Config.Wrap, col.Config.Formatter}
	}
	//
	return columns
}

// Estimate the height of each row, producing an array aligned with the given
// rows.  For each row, the number of wrapped lines in each wrapping column is
// first estimated from its length alone.  Then, only the text of the column
// with the largest estimate is measured exactly using the line counter.  When
// no column wraps, every row has the default height and neither pass is
// performed.  Nested rows are sized to fit their child tables.
func Estimate(input []rows.Row, columns []Column, config Config, counter LineCounter) []float64 {
	var (
		heights = make([]float64, len(input))
		wrapped []Column
	)
	//
	for _, col := range columns {
		if col.Wrap && col.Width > 0 {
			wrapped = append(wrapped, col)
		}
	}
	//
	for i, row := range input {
		switch {
		case row.IsNested():
			heights[i] = nestedHeight(row, config)
		case len(wrapped) == 0:
			heights[i] = config.DefaultHeight
		default:
			heights[i] = rowHeight(row, wrapped, config, counter)
		}
	}
	//
	return heights
}

func rowHeight(row rows.Row, wrapped []Column, config Config, counter LineCounter) float64 {
	var (
		best     = -1
		bestText string
		bestCol  *Column
	)
	// Cheap pass
	for i := range wrapped {
		col := &wrapped[i]
		val, _ := row.Value(col.Name)
		text := frame.Display(col.Formatter, val)
		//
		if lines := EstimateLines(text, col.Width, config.AvgCharWidth); lines > best {
			best, bestText, bestCol = lines, text, col
		}
	}
	// Exact pass
	lines := counter(bestText, bestCol.Width)
	//
	return math.Max(float64(lines)*config.LineHeight+config.Padding, config.DefaultHeight)
}

func nestedHeight(row rows.Row, config Config) float64 {
	var children = config.NestedHeaderHeight + float64(row.ChildRows())*config.DefaultHeight
	//
	return math.Max(config.DefaultHeight, children)
}

// EstimateLines cheaply estimates the number of lines some text occupies when
// wrapped within a given pixel width, assuming every character has the average
// width.  That is, ceil(length / (width / avgCharWidth)) where a non-positive
// width fits one character per line.
func EstimateLines(text string, width float64, avgCharWidth float64) int {
	var length = float64(utf8.RuneCountInString(text))
	//
	switch {
	case length == 0:
		return 0
	case width <= 0:
		return int(length)
	case avgCharWidth <= 0:
		return 1
	}
	//
	return int(math.Ceil(length * avgCharWidth / width))
}
