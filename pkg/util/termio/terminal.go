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
	"errors"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// GetSize returns the dimensions of the terminal attached to a given file
// descriptor, or an error if there is no such terminal.
func GetSize(fd int) (uint, uint, error) {
	if !term.IsTerminal(fd) {
		return 0, 0, errors.New("not a terminal")
	}
	//
	w, h, err := term.GetSize(fd)
	//
	return uint(w), uint(h), err
}

// Terminal is a full-screen window made up of widgets stacked vertically.  The
// terminal is held in raw mode until it is restored.
type Terminal struct {
	// file descriptor for output.
	fd int
	// Underlying terminal
	xterm *term.Terminal
	// Stores original state of terminal so this can be restored.
	state *term.State
	// Last known dimensions
	width, height uint
	// List of widgets to display
	widgets []Widget
}

// NewTerminal puts the controlling terminal into raw mode and constructs a
// window over it.
func NewTerminal() (*Terminal, error) {
	var fd = int(os.Stdout.Fd())
	//
	width, height, err := GetSize(fd)
	if err != nil {
		return nil, err
	}
	//
	state, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return nil, err
	}
	//
	screen := struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}
	//
	return &Terminal{fd, term.NewTerminal(screen, ""), state, width, height, nil}, nil
}

// ReadKey blocks until a key is pressed, and returns its code.  This is
// either an ASCII character, or one of the extended codes.
func (t *Terminal) ReadKey() (uint16, error) {
	var key [3]byte
	//
	n, err := os.Stdin.Read(key[:])
	if err != nil {
		return 0, err
	}
	//
	return DecodeKey(key[:n]), nil
}

// GetSize returns the dimensions of the terminal.  Should these be
// unavailable, then the last known dimensions are returned.
func (t *Terminal) GetSize() (uint, uint) {
	if w, h, err := term.GetSize(t.fd); err != nil {
		log.Debugf("terminal size unavailable: %v", err)
	} else {
		t.width, t.height = uint(w), uint(h)
	}
	//
	return t.width, t.height
}

// Add a new widget to this window.  Widgets will be laid out vertically in
// the order they are added.
func (t *Terminal) Add(w Widget) {
	t.widgets = append(t.widgets, w)
}

// Render all widgets to the terminal, blanking any lines left over at the
// bottom.
func (t *Terminal) Render() error {
	var (
		width, height = t.GetSize()
		heights       = Layout(t.widgets, height)
		used          uint
	)
	//
	for i, w := range t.widgets {
		canvas := newBufferCanvas(width, heights[i])
		w.Render(canvas)
		//
		for line, n := uint(0), heights[i]; line < n; line++ {
			if _, err := t.xterm.Write(canvas.renderLine(line)); err != nil {
				return err
			}
		}
		//
		used += heights[i]
	}
	//
	for ; used < height; used++ {
		if _, err := t.xterm.Write(blanks(width)); err != nil {
			return err
		}
	}
	//
	return nil
}

// Restore terminal to its original state.
func (t *Terminal) Restore() error {
	return term.Restore(int(os.Stdin.Fd()), t.state)
}
