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
	"github.com/consensys/go-gridrows/pkg/util"
	runewidth "github.com/mattn/go-runewidth"
)

// FormattedText is a chunk of text with an optional ANSI escape applied to it
// as a whole.  Lengths are measured in terminal cells, rather than bytes.
type FormattedText struct {
	text   string
	format util.Option[AnsiEscape]
}

// NewText constructs a chunk of unformatted text.
func NewText(text string) FormattedText {
	return FormattedText{text, util.None[AnsiEscape]()}
}

// NewColouredText constructs a chunk of text in a given foreground colour.
func NewColouredText(text string, colour uint) FormattedText {
	return NewFormattedText(text, NewAnsiEscape().FgColour(colour))
}

// NewFormattedText constructs a chunk of text with a given escape.
func NewFormattedText(text string, escape AnsiEscape) FormattedText {
	return FormattedText{text, util.Some(escape)}
}

// Format applies a given escape to this text, replacing any existing one.
func (p *FormattedText) Format(escape AnsiEscape) {
	p.format = util.Some(escape)
}

// Len returns the width of this text in terminal cells.
func (p *FormattedText) Len() uint {
	return uint(runewidth.StringWidth(p.text))
}

// Clip this text to the cells in the range [start, end).
func (p *FormattedText) Clip(start uint, end uint) {
	var width = p.Len()
	//
	end = min(end, width)
	start = min(start, end)
	//
	p.text = runewidth.TruncateLeft(runewidth.Truncate(p.text, int(end), ""), int(start), "")
}

// String returns the raw text (i.e. without any escapes).
func (p *FormattedText) String() string {
	return p.text
}

// Bytes returns the text including its escapes, as written to a terminal.
func (p *FormattedText) Bytes() []byte {
	if p.format.IsEmpty() {
		return []byte(p.text)
	}
	//
	var escaped = p.format.Unwrap().Build() + p.text + ResetAnsiEscape().Build()
	//
	return []byte(escaped)
}
