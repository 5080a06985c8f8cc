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
package widget

import "github.com/consensys/go-gridrows/pkg/util/termio"

// TextLine displays a line of formatted text, where some chunks are aligned to
// the left and others to the right.
type TextLine struct {
	left  []termio.FormattedText
	right []termio.FormattedText
}

// NewText constructs a new text widget which is initially empty.
func NewText() *TextLine {
	return &TextLine{nil, nil}
}

// GetHeight of this widget, where MaxUint indicates widget expands to take as
// much as it can.
func (p *TextLine) GetHeight() uint {
	return 1
}

// Clear contents of this text line.
func (p *TextLine) Clear() {
	p.left = nil
	p.right = nil
}

// Add a new chunk of formatted text on the left.
func (p *TextLine) Add(txt termio.FormattedText) {
	p.left = append(p.left, txt)
}

// AddRight adds a new chunk of formatted text on the right.
func (p *TextLine) AddRight(txt termio.FormattedText) {
	p.right = append(p.right, txt)
}

// Render the text to a given canvas.
func (p *TextLine) Render(canvas termio.Canvas) {
	var (
		width, _ = canvas.GetDimensions()
		xpos     = uint(0)
		rlen     = uint(0)
	)
	//
	for _, txt := range p.left {
		canvas.Write(xpos, 0, txt)
		xpos += txt.Len()
	}
	//
	for _, txt := range p.right {
		rlen += txt.Len()
	}
	//
	if rlen <= width {
		xpos = width - rlen
		//
		for _, txt := range p.right {
			canvas.Write(xpos, 0, txt)
			xpos += txt.Len()
		}
	}
}
