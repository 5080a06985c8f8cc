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

import (
	"strings"

	"github.com/consensys/go-gridrows/pkg/util/termio"
	runewidth "github.com/mattn/go-runewidth"
)

// Rule is a horizontal line drawn using a given character, with an optional
// label centred upon it.
type Rule struct {
	char  string
	label string
}

// NewRule constructs a rule drawn with a given character, which should occupy
// a single cell.
func NewRule(char string) *Rule {
	return &Rule{char, ""}
}

// SetLabel sets the text centred on this rule.  An empty label gives a plain
// rule.
func (p *Rule) SetLabel(label string) {
	p.label = label
}

// GetHeight of this widget, which is always one line.
func (p *Rule) GetHeight() uint {
	return 1
}

// Render this widget on the given canvas.  A label which does not fit is
// dropped.
func (p *Rule) Render(canvas termio.Canvas) {
	var (
		w, _  = canvas.GetDimensions()
		label = p.label
	)
	//
	if label != "" {
		label = " " + label + " "
	}
	//
	n := uint(runewidth.StringWidth(label))
	//
	if n == 0 || n > w {
		canvas.Write(0, 0, termio.NewText(strings.Repeat(p.char, int(w))))
		return
	}
	//
	left := (w - n) / 2
	text := termio.NewText(label)
	text.Format(termio.BoldAnsiEscape())
	//
	canvas.Write(0, 0, termio.NewText(strings.Repeat(p.char, int(left))))
	canvas.Write(left, 0, text)
	canvas.Write(left+n, 0, termio.NewText(strings.Repeat(p.char, int(w-left-n))))
}
