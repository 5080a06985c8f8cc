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
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/consensys/go-gridrows/pkg/frame"
	"github.com/consensys/go-gridrows/pkg/grid"
	"github.com/consensys/go-gridrows/pkg/height"
	"github.com/consensys/go-gridrows/pkg/sorting"
	"github.com/consensys/go-gridrows/pkg/util"
	"github.com/consensys/go-gridrows/pkg/util/termio"
	"github.com/spf13/cobra"
)

// Default terminal dimensions, used when output is not a terminal.
const (
	defaultTermWidth  = 120
	defaultTermHeight = 40
)

// GridOptions captures the command-line flags which determine the state of a
// grid.  Dimensions are in terminal cells rather than pixels.
type GridOptions struct {
	// Sort keys in order, as "column[:asc|desc]".
	Sorts []string
	// Filters in order, as "column=value1|value2".
	Filters []string
	// Footer reducers applied to every column.
	Reducers []string
	// Footer fields allow-list.
	Fields []string
	// Columns whose text wraps.
	Wraps []string
	// Requested page (zero-based).
	Page int
	// Rows per page (zero means derive from the terminal).
	RowsPerPage uint
	// Paginate or not
	Paginate bool
	// Viewport dimensions
	Width, Height uint
}

func addGridFlags(cmd *cobra.Command) {
	cmd.Flags().StringArray("sort", nil, "sort by column[:asc|desc] (repeatable, more than one implies multi-sort)")
	cmd.Flags().StringArray("filter", nil, "filter column=value1|value2 (repeatable, applied in order)")
	cmd.Flags().StringSlice("footer", nil, "footer reducers to apply to every column (e.g. sum,count)")
	cmd.Flags().StringSlice("footer-fields", nil, "restrict footer reducers to these columns")
	cmd.Flags().StringArray("wrap", nil, "wrap text in column (repeatable)")
	cmd.Flags().Int("page", 0, "page to show (starting from 0)")
	cmd.Flags().Uint("rows-per-page", 0, "number of rows per page (default derived from terminal height)")
	cmd.Flags().Bool("no-pagination", false, "show all rows on one page")
	cmd.Flags().Uint("width", 0, "viewport width (default terminal width)")
	cmd.Flags().Uint("height", 0, "viewport height (default terminal height)")
}

func readGridOptions(cmd *cobra.Command) GridOptions {
	reducers, err := cmd.Flags().GetStringSlice("footer")
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	fields, err := cmd.Flags().GetStringSlice("footer-fields")
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return GridOptions{
		Sorts:       GetStringArray(cmd, "sort"),
		Filters:     GetStringArray(cmd, "filter"),
		Reducers:    reducers,
		Fields:      fields,
		Wraps:       GetStringArray(cmd, "wrap"),
		Page:        GetInt(cmd, "page"),
		RowsPerPage: GetUint(cmd, "rows-per-page"),
		Paginate:    !GetFlag(cmd, "no-pagination"),
		Width:       GetUint(cmd, "width"),
		Height:      GetUint(cmd, "height"),
	}
}

// ParseSortKey parses a sort key of the form "column" or "column:direction".
func ParseSortKey(arg string) (sorting.Key, error) {
	var (
		column, dir, found = strings.Cut(arg, ":")
		direction          = sorting.ASC
	)
	//
	if column == "" {
		return sorting.Key{}, fmt.Errorf("invalid sort key \"%s\"", arg)
	} else if found {
		var ok bool
		//
		if direction, ok = sorting.ParseDirection(dir); !ok {
			return sorting.Key{}, fmt.Errorf("invalid sort direction \"%s\"", dir)
		}
	}
	//
	return sorting.Key{Column: column, Direction: direction}, nil
}

// ParseFilter parses a filter of the form "column=value1|value2".
func ParseFilter(arg string) (string, []string, error) {
	var column, values, found = strings.Cut(arg, "=")
	//
	if !found || column == "" {
		return "", nil, fmt.Errorf("invalid filter \"%s\"", arg)
	}
	//
	return column, strings.Split(values, "|"), nil
}

// Apply the display configuration given by these options to the columns of a
// frame.
func (p *GridOptions) configureFrame(f *frame.Frame) {
	for i := range f.Columns {
		col := &f.Columns[i]
		//
		if len(p.Reducers) > 0 {
			col.Config.Footer = util.Some(frame.FooterOptions{Reducers: p.Reducers, Fields: p.Fields})
		}
		//
		for _, w := range p.Wraps {
			if w == col.Name {
				col.Config.Wrap = true
			}
		}
	}
}

// Determine the viewport, in terminal cells.
func (p *GridOptions) viewport(footerLines int) (int, int) {
	var width, height = p.Width, p.Height
	//
	if width == 0 || height == 0 {
		w, h, err := termio.GetSize(int(os.Stdout.Fd()))
		//
		if err != nil {
			w, h = defaultTermWidth, defaultTermHeight
		}
		//
		width, height = max(width, w), max(height, h)
	}
	// Header, footer and pagination bar
	if p.RowsPerPage > 0 {
		height = p.RowsPerPage + 2 + uint(footerLines)
	}
	//
	return int(width), int(height)
}

// BuildGrid constructs a grid over a given frame, and applies the filters and
// sort keys of these options in order.
func (p *GridOptions) BuildGrid(f *frame.Frame) (*grid.Grid, grid.Snapshot, error) {
	var footerLines = len(p.Reducers)
	//
	p.configureFrame(f)
	//
	if err := f.Validate(); err != nil {
		return nil, grid.Snapshot{}, err
	}
	//
	w, h := p.viewport(footerLines)
	g := cellBuilder(p.Paginate, footerLines).WithViewport(w, h).Build(f)
	// Apply filters in order
	for _, arg := range p.Filters {
		column, values, err := ParseFilter(arg)
		if err != nil {
			return nil, grid.Snapshot{}, err
		}
		//
		g.SetFilter(column, values...)
	}
	// Apply sorts in order
	for _, arg := range p.Sorts {
		key, err := ParseSortKey(arg)
		if err != nil {
			return nil, grid.Snapshot{}, err
		} else if g.SortKeys().Find(key.Column) >= 0 {
			return nil, grid.Snapshot{}, errors.New("column sorted more than once: " + key.Column)
		}
		//
		g.ApplySort(key.Column, key.Direction, len(p.Sorts) > 1)
	}
	//
	return g, g.SetPage(p.Page), nil
}

// Construct a grid builder whose geometry is measured in terminal cells.
func cellBuilder(paginate bool, footerLines int) grid.Builder {
	return grid.NewBuilder().
		WithPagination(paginate).
		WithRowHeight(1).
		WithHeaderHeight(1).
		WithFooterHeight(footerLines).
		WithBarHeight(1).
		WithMinColumnWidth(8).
		WithHeightConfig(height.Config{
			LineHeight:         1,
			Padding:            0,
			DefaultHeight:      1,
			AvgCharWidth:       1,
			NestedHeaderHeight: 1,
		})
}
