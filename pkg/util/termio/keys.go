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

// ESC is the escape code.
const ESC uint16 = 0x1b

// TAB indicates the horizontal tab
const TAB uint16 = 0x09

// CARRIAGE_RETURN indicates "enter"
const CARRIAGE_RETURN uint16 = 0x0D

// BACKSPACE is the backspace
const BACKSPACE uint16 = 0x08

// DEL is the delete key
const DEL uint16 = 0x7f

// BACKTAB indicates shift + tab
const BACKTAB uint16 = 0x5b5a

// CURSOR_UP (up arrow)
const CURSOR_UP uint16 = 0x5b41

// CURSOR_DOWN (down arrow)
const CURSOR_DOWN uint16 = 0x5b42

// CURSOR_RIGHT (right arrow)
const CURSOR_RIGHT uint16 = 0x5b43

// CURSOR_LEFT (left arrow)
const CURSOR_LEFT uint16 = 0x5b44

// UNKNOWN is a fall-back for unknown escape sequences
const UNKNOWN uint16 = 0x5bff

// Final bytes of the CSI sequences we recognise (e.g. "ESC [ A").
var csiKeys = map[byte]uint16{
	'A': CURSOR_UP,
	'B': CURSOR_DOWN,
	'C': CURSOR_RIGHT,
	'D': CURSOR_LEFT,
	'Z': BACKTAB,
}

// DecodeKey turns the bytes of a single read from the keyboard into a key
// code.  A single byte is returned as is, whilst a three byte CSI sequence is
// mapped to one of the extended codes above.  Anything else is UNKNOWN.
func DecodeKey(bytes []byte) uint16 {
	switch {
	case len(bytes) == 1:
		return uint16(bytes[0])
	case len(bytes) != 3 || bytes[0] != byte(ESC) || bytes[1] != '[':
		return UNKNOWN
	}
	//
	if key, ok := csiKeys[bytes[2]]; ok {
		return key
	}
	//
	return UNKNOWN
}
