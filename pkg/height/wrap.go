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
	"strings"

	runewidth "github.com/mattn/go-runewidth"
)

// WrapCounter constructs a line counter which greedily wraps words, assuming
// every terminal cell has a given pixel width.  Words which are too wide for a
// line are broken across lines.  Explicit newlines always start a new line.
func WrapCounter(avgCharWidth float64) LineCounter {
	return func(text string, width float64) int {
		var (
			cells = max(1, int(width/avgCharWidth))
			lines int
		)
		//
		for _, paragraph := range strings.Split(text, "\n") {
			lines += wrapParagraph(paragraph, cells)
		}
		//
		return lines
	}
}

// Count the lines in a single paragraph wrapped at a given number of cells.
// An empty paragraph still occupies one line.
func wrapParagraph(paragraph string, cells int) int {
	var (
		lines = 1
		used  = 0
	)
	//
	for _, word := range strings.Fields(paragraph) {
		w := runewidth.StringWidth(word)
		//
		switch {
		case used == 0 && w <= cells:
			used = w
		case used > 0 && used+1+w <= cells:
			used += 1 + w
		default:
			if used > 0 {
				lines++
			}
			// Break overly wide words
			for w > cells {
				lines++
				w -= cells
			}
			//
			used = w
		}
	}
	//
	return lines
}
