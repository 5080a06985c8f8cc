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
package browse

import (
	"strconv"
	"strings"

	"github.com/consensys/go-gridrows/pkg/util"
	"github.com/consensys/go-gridrows/pkg/util/termio"
)

// InputMode is where the user is entering some information (e.g. the values
// to filter a column by).
type InputMode[T any] struct {
	// prompt to show user
	prompt termio.FormattedText
	// input text being accumulated whilst in input mode.
	input []byte
	// current cursor position
	cursor uint
	// parser responsible for checking whether input is valid (or not).
	handler InputHandler[T]
}

// InputHandler provides a generic way of handling input, including a mechanism
// for checking that input is well formed.
type InputHandler[T any] interface {
	// Convert attempts to convert the input string into a valid value.
	Convert(string) (T, bool)
	// Apply the given input, which will activate some kind of callback.
	Apply(T)
}

func newInputMode[T any](prompt termio.FormattedText, handler InputHandler[T]) *InputMode[T] {
	return &InputMode[T]{prompt, nil, 0, handler}
}

// Activate input mode by showing the prompt and the input so far.
func (p *InputMode[T]) Activate(parent *Browser) {
	parent.cmdBar.Clear()
	parent.cmdBar.Add(p.prompt)
	// Add current input
	colour := termio.TERM_GREEN
	input := string(p.input)
	//
	if _, ok := p.handler.Convert(input); !ok {
		colour = termio.TERM_RED
	}
	// construct cursor escape code
	escape := termio.NewAnsiEscape().FgColour(termio.TERM_BLACK).BgColour(termio.TERM_YELLOW)
	// handle cursor
	if p.cursor < uint(len(p.input)) {
		// cursor behind text
		parent.cmdBar.Add(termio.NewColouredText(input[:p.cursor], colour))
		parent.cmdBar.Add(termio.NewFormattedText(input[p.cursor:p.cursor+1], escape))
		parent.cmdBar.Add(termio.NewColouredText(input[p.cursor+1:], colour))
	} else {
		// cursor leading text
		parent.cmdBar.Add(termio.NewColouredText(input, colour))
		parent.cmdBar.Add(termio.NewFormattedText(" ", escape))
	}
}

// KeyPressed in input mode simply updates the input, or exits the mode if
// either "ESC" or enter are pressed.
func (p *InputMode[T]) KeyPressed(parent *Browser, key uint16) bool {
	switch {
	case key == termio.ESC:
		return true
	case key == termio.BACKSPACE || key == termio.DEL:
		p.deleteCharacterAtCursor()
	case key == termio.CARRIAGE_RETURN:
		// Attempt conversion
		if val, ok := p.handler.Convert(string(p.input)); ok {
			p.handler.Apply(val)
		}
		//
		return true
	case key == termio.CURSOR_LEFT:
		if p.cursor > 0 {
			p.cursor--
		}
	case key == termio.CURSOR_RIGHT:
		if p.cursor < uint(len(p.input)) {
			p.cursor++
		}
	case key >= 32 && key <= 126:
		p.insertCharacterAtCursor(byte(key))
	}
	// Update displayed text
	p.Activate(parent)
	//
	return false
}

// Delete character before cursor position
func (p *InputMode[T]) deleteCharacterAtCursor() {
	if p.cursor > 0 {
		p.cursor--
		p.input = util.RemoveAt(p.input, p.cursor)
	}
}

// Insert character at cursor position
func (p *InputMode[T]) insertCharacterAtCursor(char byte) {
	p.input = util.InsertAt(p.input, char, p.cursor)
	// advance cursor
	p.cursor++
}

// ==================================================================
// UintHandler
// ==================================================================

type uintHandler struct {
	callback func(uint) bool
}

func newUintHandler(callback func(uint) bool) InputHandler[uint] {
	return &uintHandler{callback}
}

func (p *uintHandler) Convert(input string) (uint, bool) {
	val, err := strconv.Atoi(input)
	//
	if val < 0 || err != nil {
		return 0, false
	}
	//
	return uint(val), true
}

func (p *uintHandler) Apply(value uint) {
	p.callback(value)
}

// ==================================================================
// ValuesHandler
// ==================================================================

type valuesHandler struct {
	callback func([]string) bool
}

func newValuesHandler(callback func([]string) bool) InputHandler[[]string] {
	return &valuesHandler{callback}
}

func (p *valuesHandler) Convert(input string) ([]string, bool) {
	if input == "" {
		return nil, false
	}
	//
	return strings.Split(input, "|"), true
}

func (p *valuesHandler) Apply(values []string) {
	p.callback(values)
}

// ==================================================================
// TextHandler
// ==================================================================

type textHandler struct {
	callback func(string) bool
}

func newTextHandler(callback func(string) bool) InputHandler[string] {
	return &textHandler{callback}
}

func (p *textHandler) Convert(input string) (string, bool) {
	return input, input != ""
}

func (p *textHandler) Apply(text string) {
	p.callback(text)
}
