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
	"github.com/consensys/go-gridrows/pkg/page"
	"github.com/consensys/go-gridrows/pkg/rows"
	"github.com/consensys/go-gridrows/pkg/sorting"
	"github.com/consensys/go-gridrows/pkg/util"
	log "github.com/sirupsen/logrus"
)

// Grid owns the state of an interactive table (i.e. its frame, filters, sort
// keys, current page and viewport) and derives the rows to display from it.
// Every operation produces a fresh snapshot, but stages of the row pipeline are
// only rerun when their inputs have changed.  For example, changing page only
// reruns pagination, whilst sorting a nested table never resorts the top-level
// rows.  A Grid is not safe for concurrent use.
type Grid struct {
	config  Builder
	counter height.LineCounter
	// Current state
	frame   *frame.Frame
	types   frame.TypeMap
	filters filter.State
	keys    sorting.Keys
	nested  sorting.Nested
	page    int
	width   int
	height  int
	// Caches which outlive any particular frame
	footers *footer.Aggregator
	longest *layout.LongestCache
	// Generation of each piece of state
	gen stamp
	// Memoised stages
	materialised memo[[]rows.Row]
	filtered     memo[filter.Result]
	sorted       memo[[]rows.Row]
	heights      memo[map[rows.Key]float64]
	longestAt    memo[[]string]
	nestedAt     map[uint]nestedEntry
	// Number of times each stage was computed
	stats Stats
}

// Stats records how many times each (memoised) stage of the pipeline has been
// computed.
type Stats struct {
	Materialised uint
	Filtered     uint
	Sorted       uint
	Measured     uint
	Nested       uint
}

// stamp identifies the inputs from which a stage was computed, where each field
// is a generation counter (or a size).
type stamp struct {
	frame  uint
	filter uint
	sort   uint
	width  int
}

type memo[T any] struct {
	at    stamp
	valid bool
	value T
}

// get returns the memoised value if it was computed from the given inputs, and
// otherwise recomputes it.
func (p *memo[T]) get(at stamp, fn func() T) T {
	if !p.valid || p.at != at {
		p.value, p.at, p.valid = fn(), at, true
	}
	//
	return p.value
}

// ===================================================================
// Operations
// ===================================================================

// SetFrame replaces the frame being displayed.  Filters and sort keys are
// retained, even if they refer to columns which no longer exist.
func (p *Grid) SetFrame(f *frame.Frame) Snapshot {
	p.frame = f
	p.types = f.Types()
	p.gen.frame++
	p.footers.Reset()
	//
	return p.Snapshot()
}

// SetFilter restricts a column to the given display values.  Filtering a column
// for the first time places its filter after all existing filters.
func (p *Grid) SetFilter(column string, allowed ...string) Snapshot {
	return p.setFilter(column, filter.NewFilter(allowed...))
}

// SetSearchFilter restricts a column to those of its current candidate values
// which match some search text under a given operator.
func (p *Grid) SetSearchFilter(column string, search string, op filter.Operator) Snapshot {
	var candidates = p.filteredResult().CandidateValues(column, p.frame)
	//
	return p.setFilter(column, filter.NewSearchFilter(candidates, search, op))
}

func (p *Grid) setFilter(column string, f filter.Filter) Snapshot {
	p.filters = p.filters.Set(column, f)
	p.gen.filter++
	//
	return p.Snapshot()
}

// ClearFilter removes the filter (if any) on a given column.
func (p *Grid) ClearFilter(column string) Snapshot {
	if _, ok := p.filters.Get(column); ok {
		p.filters = p.filters.Clear(column)
		p.gen.filter++
	}
	//
	return p.Snapshot()
}

// ApplySort applies a column-header sort request to the top-level table.
func (p *Grid) ApplySort(column string, direction sorting.Direction, multi bool) Snapshot {
	p.keys = sorting.Toggle(p.keys, column, direction, multi)
	p.gen.sort++
	//
	return p.Snapshot()
}

// SetNestedSort sets the sort keys for the nested table under a given parent
// row.  This affects neither the top-level table nor any other nested table.
func (p *Grid) SetNestedSort(parent uint, keys sorting.Keys) Snapshot {
	p.nested = p.nested.With(parent, keys)
	//
	return p.Snapshot()
}

// ApplyNestedSort applies a column-header sort request to the nested table under
// a given parent row.
func (p *Grid) ApplyNestedSort(parent uint, column string, direction sorting.Direction, multi bool) Snapshot {
	return p.SetNestedSort(parent, sorting.Toggle(p.nested.Get(parent), column, direction, multi))
}

// SetPage selects the current page.  This is clamped to the valid range of
// pages.
func (p *Grid) SetPage(n int) Snapshot {
	p.page = n
	//
	return p.Snapshot()
}

// SetViewportSize updates the viewport size (in pixels), which determines both
// column widths and the number of rows per page.
func (p *Grid) SetViewportSize(width int, height int) Snapshot {
	p.width, p.height = width, height
	//
	return p.Snapshot()
}

// ===================================================================
// Accessors
// ===================================================================

// Frame returns the frame being displayed.
func (p *Grid) Frame() *frame.Frame {
	return p.frame
}

// Filters returns the current filter state.
func (p *Grid) Filters() filter.State {
	return p.filters
}

// SortKeys returns the sort keys of the top-level table.
func (p *Grid) SortKeys() sorting.Keys {
	return p.keys
}

// NestedSorts returns the sort keys of every nested table.
func (p *Grid) NestedSorts() sorting.Nested {
	return p.nested
}

// Stats returns the number of times each stage has been computed.
func (p *Grid) Stats() Stats {
	return p.stats
}

// ===================================================================
// Stages
// ===================================================================

// Snapshot derives the current view of this grid.
func (p *Grid) Snapshot() Snapshot {
	var (
		sorted    = p.sortedRows()
		hasFooter = hasFooters(p.frame)
		config    = p.pageConfig(hasFooter)
		widths    = layout.Widths(p.frame.Columns, float64(p.width), p.config.minColumnWidth)
		current   = page.Paginate(sorted, config, p.page)
		heights   = p.rowHeights(widths)
		footers   [][]string
	)
	// Remember clamping
	if config.Enabled {
		p.page = current.Page
	}
	//
	if hasFooter {
		footers = p.footers.Compute(p.frame, sorted)
	}
	//
	return Snapshot{
		Columns:  p.describeColumns(widths),
		Page:     current,
		Heights:  pageHeights(current.Rows, heights),
		Footer:   footers,
		SortKeys: p.keys,
		Filters:  p.filters,
		frame:    p.frame,
		filtered: p.filteredResult(),
	}
}

func (p *Grid) materialisedRows() []rows.Row {
	return p.materialised.get(stamp{frame: p.gen.frame}, func() []rows.Row {
		p.stats.Materialised++
		//
		result := rows.Materialize(p.frame)
		log.Debugf("materialised %d rows from frame %s", len(result), p.frame.Name)
		//
		return result
	})
}

func (p *Grid) filteredResult() filter.Result {
	var input = p.materialisedRows()
	//
	return p.filtered.get(stamp{frame: p.gen.frame, filter: p.gen.filter}, func() filter.Result {
		var stats = util.NewPerfStats()
		//
		p.stats.Filtered++
		result := filter.Apply(input, p.filters, p.frame)
		log.Debugf("filtered %d of %d rows using %d filters", len(result.Rows), len(input), p.filters.Len())
		stats.Log("Filtering")
		//
		return result
	})
}

func (p *Grid) sortedRows() []rows.Row {
	var input = p.filteredResult().Rows
	//
	return p.sorted.get(stamp{frame: p.gen.frame, filter: p.gen.filter, sort: p.gen.sort}, func() []rows.Row {
		var stats = util.NewPerfStats()
		//
		p.stats.Sorted++
		result := sorting.Sort(input, p.keys, p.types)
		log.Debugf("sorted %d rows using %d keys", len(result), len(p.keys))
		stats.Log("Sorting")
		//
		return result
	})
}

// Row heights are estimated over all materialised rows (rather than just those
// on the current page), and are therefore indexed by row key.
func (p *Grid) rowHeights(widths []float64) map[rows.Key]float64 {
	var input = p.materialisedRows()
	//
	return p.heights.get(stamp{frame: p.gen.frame, width: p.width}, func() map[rows.Key]float64 {
		var (
			columns = height.ColumnsOf(p.frame, widths)
			heights = height.Estimate(input, columns, p.config.heights, p.counter)
			result  = make(map[rows.Key]float64, len(heights))
		)
		//
		p.stats.Measured++
		//
		for i, row := range input {
			result[row.Key()] = heights[i]
		}
		//
		return result
	})
}

func (p *Grid) longestValues() []string {
	return p.longestAt.get(stamp{frame: p.gen.frame}, func() []string {
		var longest = make([]string, len(p.frame.Columns))
		//
		for i := range p.frame.Columns {
			longest[i] = p.longest.Longest(&p.frame.Columns[i])
		}
		//
		return longest
	})
}

func (p *Grid) pageConfig(hasFooter bool) page.Config {
	var config = page.Config{
		Enabled:        p.config.pagination,
		ViewportHeight: p.height,
		RowHeight:      p.config.rowHeight,
		HeaderHeight:   p.config.headerHeight,
		BarHeight:      p.config.barHeight,
	}
	//
	if hasFooter {
		config.FooterHeight = p.config.footerHeight
	}
	//
	return config
}

func (p *Grid) describeColumns(widths []float64) []Column {
	var (
		longest = p.longestValues()
		columns = make([]Column, len(p.frame.Columns))
	)
	//
	for i := range p.frame.Columns {
		col := &p.frame.Columns[i]
		_, filtered := p.filters.Get(col.Name)
		direction := util.None[sorting.Direction]()
		//
		if j := p.keys.Find(col.Name); j >= 0 {
			direction = util.Some(p.keys[j].Direction)
		}
		//
		columns[i] = Column{
			Name:        col.Name,
			DisplayName: col.DisplayName(),
			Type:        col.Type,
			Width:       widths[i],
			Longest:     longest[i],
			Sort:        direction,
			Filtered:    filtered,
		}
	}
	//
	return columns
}

func hasFooters(f *frame.Frame) bool {
	for i := range f.Columns {
		if f.Columns[i].Config.Footer.HasValue() {
			return true
		}
	}
	//
	return false
}

func pageHeights(current []rows.Row, heights map[rows.Key]float64) []float64 {
	var result = make([]float64, len(current))
	//
	for i, row := range current {
		result[i] = heights[row.Key()]
	}
	//
	return result
}
