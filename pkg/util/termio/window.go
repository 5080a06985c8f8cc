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
package termio

import (
	"bytes"
	"math"
	"slices"
)

// Canvas represents a surface on which widgets can draw.
type Canvas interface {
	// Get the dimensions of this canvas.
	GetDimensions() (uint, uint)
	// Write a chunk of text to the canvas at a given position.
	Write(x, y uint, text FormattedText)
}

// Widget is an abstract entity which can be displayed upon a terminal window.
type Widget interface {
	// Get height of this widget, where MaxUint indicates widget expands to take
	// as much as it can.
	GetHeight() uint
	// Render this widget on the given canvas.
	Render(canvas Canvas)
}

// Layout determines the height given to each widget when stacked vertically
// within a window of the given height.  Fixed heights are honoured first, and
// whatever remains is shared equally between the flexible (MaxUint) widgets.
func Layout(widgets []Widget, height uint) []uint {
	var (
		heights = make([]uint, len(widgets))
		taken   uint
		nFlex   uint
	)
	//
	for i, w := range widgets {
		if heights[i] = w.GetHeight(); heights[i] != math.MaxUint {
			taken += heights[i]
		} else {
			nFlex++
		}
	}
	//
	for i, h := range heights {
		if h != math.MaxUint {
			continue
		} else if taken < height {
			heights[i] = (height - taken) / nFlex
		} else {
			heights[i] = 0
		}
	}
	//
	return heights
}

// Canvas which buffers chunks of text per line, and renders each line in one
// go once the widget has finished drawing.
type bufferCanvas struct {
	width uint
	lines [][]chunk
}

// A chunk of text positioned at a given column.
type chunk struct {
	xpos uint
	text FormattedText
}

func newBufferCanvas(width, height uint) *bufferCanvas {
	return &bufferCanvas{width, make([][]chunk, height)}
}

func (p *bufferCanvas) GetDimensions() (uint, uint) {
	return p.width, uint(len(p.lines))
}

func (p *bufferCanvas) Write(x, y uint, text FormattedText) {
	// Ignore anything off the canvas
	if y >= uint(len(p.lines)) || x >= p.width {
		return
	}
	// Clip anything overhanging the right edge
	text.Clip(0, p.width-x)
	p.lines[y] = append(p.lines[y], chunk{x, text})
}

// Render a given line of this canvas, padding it out to the full width.  Where
// chunks overlap, the later chunk loses its overlapping prefix.
func (p *bufferCanvas) renderLine(line uint) []byte {
	var (
		xpos   uint
		chunks = slices.Clone(p.lines[line])
		buffer bytes.Buffer
	)
	//
	slices.SortStableFunc(chunks, func(l chunk, r chunk) int {
		return int(l.xpos) - int(r.xpos)
	})
	//
	for _, c := range chunks {
		var text = c.text
		//
		if c.xpos < xpos {
			text.Clip(xpos-c.xpos, math.MaxUint)
		} else {
			buffer.Write(blanks(c.xpos - xpos))
			xpos = c.xpos
		}
		//
		buffer.Write(text.Bytes())
		xpos += text.Len()
	}
	//
	if xpos < p.width {
		buffer.Write(blanks(p.width - xpos))
	}
	//
	return buffer.Bytes()
}

func blanks(n uint) []byte {
	return bytes.Repeat([]byte{' '}, int(n))
}
