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
package grid

import (
	"github.com/consensys/go-gridrows/pkg/filter"
	"github.com/consensys/go-gridrows/pkg/footer"
	"github.com/consensys/go-gridrows/pkg/frame"
	"github.com/consensys/go-gridrows/pkg/height"
	"github.com/consensys/go-gridrows/pkg/layout"
	"github.com/consensys/go-gridrows/pkg/sorting"
	"github.com/consensys/go-gridrows/pkg/util"
)

// Builder is responsible for configuring and constructing a grid.  Builders are
// values, such that each With method returns an updated copy.
type Builder struct {
	// Whether or not to paginate rows
	pagination bool
	// Fixed height of a row (in pixels), as used for pagination.
	rowHeight int
	// Height of the column header row
	headerHeight int
	// Height of the footer row, when one is shown
	footerHeight int
	// Height of the pagination bar
	barHeight int
	// Initial viewport size
	viewportWidth, viewportHeight int
	// Minimum width of automatically sized columns
	minColumnWidth float64
	// Geometry for estimating row heights
	heights height.Config
	// Exact line counter for wrapped text (optional)
	counter util.Option[height.LineCounter]
	// Initial sort keys
	keys sorting.Keys
}

// NewBuilder constructs a default builder.
func NewBuilder() Builder {
	return Builder{
		pagination:     false,
		rowHeight:      36,
		headerHeight:   36,
		footerHeight:   36,
		barHeight:      32,
		viewportWidth:  1000,
		viewportHeight: 600,
		minColumnWidth: layout.MinColumnWidth,
		heights:        height.DefaultConfig(),
		counter:        util.None[height.LineCounter](),
	}
}

// WithPagination determines whether or not rows are paginated.
func (p Builder) WithPagination(enabled bool) Builder {
	var builder = p
	//
	builder.pagination = enabled
	//
	return builder
}

// WithRowHeight sets the fixed height of a row, which also becomes the default
// height used when estimating row heights.
func (p Builder) WithRowHeight(rowHeight int) Builder {
	var builder = p
	//
	builder.rowHeight = rowHeight
	builder.heights.DefaultHeight = float64(rowHeight)
	//
	return builder
}

// WithHeaderHeight sets the height of the column header row.
func (p Builder) WithHeaderHeight(headerHeight int) Builder {
	var builder = p
	//
	builder.headerHeight = headerHeight
	//
	return builder
}

// WithFooterHeight sets the height of the footer row.  This only takes up
// space when some column has a footer configured.
func (p Builder) WithFooterHeight(footerHeight int) Builder {
	var builder = p
	//
	builder.footerHeight = footerHeight
	//
	return builder
}

// WithBarHeight sets the height of the pagination bar.
func (p Builder) WithBarHeight(barHeight int) Builder {
	var builder = p
	//
	builder.barHeight = barHeight
	//
	return builder
}

// WithViewport sets the initial viewport size (in pixels).
func (p Builder) WithViewport(width int, height int) Builder {
	var builder = p
	//
	builder.viewportWidth = width
	builder.viewportHeight = height
	//
	return builder
}

// WithMinColumnWidth sets the minimum width of an automatically sized column.
func (p Builder) WithMinColumnWidth(width float64) Builder {
	var builder = p
	//
	builder.minColumnWidth = width
	//
	return builder
}

// WithHeightConfig sets the geometry used for estimating row heights.
func (p Builder) WithHeightConfig(config height.Config) Builder {
	var builder = p
	//
	builder.heights = config
	//
	return builder
}

// WithLineCounter sets the exact line counter used when estimating the heights
// of rows with wrapped text.  By default, a greedy word wrap is used.
func (p Builder) WithLineCounter(counter height.LineCounter) Builder {
	var builder = p
	//
	builder.counter = util.Some(counter)
	//
	return builder
}

// WithSort sets the initial sort keys.
func (p Builder) WithSort(keys ...sorting.Key) Builder {
	var builder = p
	//
	builder.keys = keys
	//
	return builder
}

// Build a grid over a given frame.
func (p Builder) Build(f *frame.Frame) *Grid {
	var counter = p.counter.UnwrapOr(height.WrapCounter(p.heights.AvgCharWidth))
	//
	return &Grid{
		config:   p,
		counter:  counter,
		frame:    f,
		types:    f.Types(),
		filters:  filter.NewState(),
		keys:     p.keys,
		nested:   sorting.NewNested(),
		width:    p.viewportWidth,
		height:   p.viewportHeight,
		footers:  footer.NewAggregator(footer.NewCache()),
		longest:  layout.NewLongestCache(),
		nestedAt: make(map[uint]nestedEntry),
	}
}
