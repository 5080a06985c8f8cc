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
package layout

import (
	"math"

	"github.com/consensys/go-gridrows/pkg/frame"
)

// MinColumnWidth is the minimum width (in pixels) of an automatically sized
// column.
const MinColumnWidth = 150.0

// Widths determines the pixel width of every column in a frame.  A configured
// width is always honoured.  The remaining viewport width is then shared
// equally amongst the automatically sized columns, though none is made
// narrower than a given minimum.
func Widths(columns []frame.Column, viewportWidth float64, minWidth float64) []float64 {
	var (
		widths    = make([]float64, len(columns))
		remaining = viewportWidth
		auto      = 0
	)
	//
	for i := range columns {
		if w := columns[i].Config.Width; w > 0 {
			widths[i] = float64(w)
			remaining -= widths[i]
		} else {
			auto++
		}
	}
	//
	if auto == 0 {
		return widths
	}
	//
	share := math.Max(minWidth, math.Floor(remaining/float64(auto)))
	//
	for i := range columns {
		if columns[i].Config.Width == 0 {
			widths[i] = share
		}
	}
	//
	return widths
}
