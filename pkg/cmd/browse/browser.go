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
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/consensys/go-gridrows/pkg/filter"
	"github.com/consensys/go-gridrows/pkg/frame"
	"github.com/consensys/go-gridrows/pkg/grid"
	"github.com/consensys/go-gridrows/pkg/sorting"
	"github.com/consensys/go-gridrows/pkg/util/termio"
	"github.com/consensys/go-gridrows/pkg/util/termio/widget"
	runewidth "github.com/mattn/go-runewidth"
)

// ==================================================================
// Browser
// ==================================================================

// Number of terminal lines taken by everything except the table itself.
const chromeHeight = 5

// Width of the row index column.
const indexWidth = 6

// Browser provides an interactive (terminal-based) view of a grid, where the
// user can page through rows, and sort or filter columns.
type Browser struct {
	width  uint
	height uint
	//
	term Screen
	grid *grid.Grid
	// Most recent snapshot of the grid
	snapshot grid.Snapshot
	// Columns of the frame which are shown
	visible []int
	// Widgets
	tabs      *widget.Tabs
	table     *widget.Table
	cmdBar    *widget.TextLine
	statusBar *widget.TextLine
	summary   *widget.Rule
	statusClk uint
	// The stack of "modes" in which the browser is operating.  When the root
	// mode is terminated, the browser closes.
	modes []Mode
	// Serialises key presses and clock ticks
	mux sync.Mutex
}

// Mode identifies a mode in which the browser is operating.  The default mode
// is for navigating the grid, but other modes are available for receiving input
// from the user.
type Mode interface {
	// Activate is called when this mode becomes active.  This happens when the
	// mode is first entered, but can also happen subsequently when a child mode
	// exits and results in this mode being reactivated.
	Activate(*Browser)
	// KeyPressed in the browser and received by this mode.
	KeyPressed(*Browser, uint16) bool
}

// Screen is the surface on which a browser is displayed, and from which it
// reads key presses.  This is normally a raw-mode termio.Terminal.
type Screen interface {
	// Add a widget, stacked below those already added.
	Add(termio.Widget)
	// GetSize returns the width and height of the screen.
	GetSize() (uint, uint)
	// ReadKey blocks until the next key press.
	ReadKey() (uint16, error)
	// Render all widgets to the screen.
	Render() error
	// Restore the screen to its original state.
	Restore() error
}

// NewBrowser constructs a new browser for a given grid on a given screen.
func NewBrowser(term Screen, g *grid.Grid) *Browser {
	var (
		table     = widget.NewTable(nil)
		cmdBar    = widget.NewText()
		statusBar = widget.NewText()
		tabs      = widget.NewTabs()
		summary   = widget.NewRule("⎯")
	)
	//
	term.Add(tabs)
	term.Add(widget.NewRule("⎯"))
	term.Add(table)
	term.Add(summary)
	term.Add(cmdBar)
	term.Add(statusBar)
	//
	browser := &Browser{term: term, grid: g, visible: visibleColumns(g.Frame()), tabs: tabs, table: table,
		summary: summary, cmdBar: cmdBar, statusBar: statusBar}
	table.SetSource(browser)
	browser.resize()
	// Put the browser into default mode.
	browser.EnterMode(&NavigationMode{})
	//
	return browser
}

// Clock the browser, which clears expired status messages and handles resizing
// of the terminal.
func (p *Browser) Clock() error {
	p.mux.Lock()
	defer p.mux.Unlock()
	//
	dirty := false
	//
	if p.statusClk != 0 {
		p.statusClk--
		// Clear status when clock expired
		if p.statusClk == 0 {
			p.statusBar.Clear()
			dirty = true
		}
	}
	// Only force rerender if something changed.
	if p.resize() || dirty {
		return p.term.Render()
	}
	//
	return nil
}

// Update the viewport of the grid if the terminal dimensions have changed.
func (p *Browser) resize() bool {
	var nWidth, nHeight = p.term.GetSize()
	//
	if nWidth == p.width && nHeight == p.height {
		return false
	}
	//
	p.width, p.height = nWidth, nHeight
	p.update(p.grid.SetViewportSize(int(nWidth), int(max(nHeight, chromeHeight))-chromeHeight+1))
	//
	return true
}

// EnterMode pushes a new mode onto the mode stack.
func (p *Browser) EnterMode(mode Mode) {
	p.modes = append(p.modes, mode)
	mode.Activate(p)
}

// KeyPressed allows the browser to react to a key being pressed by the user.
func (p *Browser) KeyPressed(key uint16) bool {
	var n = len(p.modes) - 1
	//
	if p.modes[n].KeyPressed(p, key) {
		p.modes = p.modes[0:n]
		//
		if n > 0 {
			// Reactivate mode
			p.modes[n-1].Activate(p)
		}
	}
	// Exit when the mode stack is empty.
	return len(p.modes) == 0
}

// SetStatus puts a message on the status bar.  Messages remain visible for some
// number of clock cycles.
func (p *Browser) SetStatus(msg termio.FormattedText) {
	p.statusBar.Clear()
	p.statusBar.Add(msg)
	p.statusClk = 5
}

// SelectedColumn returns the name of the currently selected column.
func (p *Browser) SelectedColumn() string {
	if len(p.visible) == 0 {
		return ""
	}
	//
	return p.grid.Frame().Columns[p.visible[p.tabs.Selected()]].Name
}

// Record a new snapshot of the grid.
func (p *Browser) update(snapshot grid.Snapshot) {
	var titles = make([]string, len(p.visible))
	//
	p.snapshot = snapshot
	//
	for i, c := range p.visible {
		titles[i] = columnTitle(snapshot.Columns[c])
	}
	//
	p.tabs.SetTitles(titles...)
	p.summary.SetLabel(stateSummary(snapshot))
	//
	if n := len(p.modes); n > 0 {
		p.modes[n-1].Activate(p)
	}
}

// ==================================================================
// Actions
// ==================================================================

func (p *Browser) sort(direction sorting.Direction, multi bool) {
	var column = p.SelectedColumn()
	//
	p.update(p.grid.ApplySort(column, direction, multi))
	p.SetStatus(termio.NewColouredText(fmt.Sprintf("Sorting by %v", p.grid.SortKeys()), termio.TERM_GREEN))
}

func (p *Browser) gotoPage(delta int) {
	p.update(p.grid.SetPage(p.snapshot.Page.Page + delta))
}

// Page numbers entered by the user count from 1.
func (p *Browser) gotoPageNumber(n uint) bool {
	p.update(p.grid.SetPage(max(int(n), 1) - 1))
	p.SetStatus(termio.NewColouredText(fmt.Sprintf("At page %d", p.snapshot.Page.Page+1), termio.TERM_GREEN))
	//
	return true
}

func (p *Browser) filterValues(values []string) bool {
	p.update(p.grid.SetFilter(p.SelectedColumn(), values...))
	p.reportTotal()
	//
	return true
}

func (p *Browser) filterSearch(search string) bool {
	p.update(p.grid.SetSearchFilter(p.SelectedColumn(), search, filter.CONTAINS))
	p.reportTotal()
	//
	return true
}

func (p *Browser) clearFilter() {
	p.update(p.grid.ClearFilter(p.SelectedColumn()))
	p.reportTotal()
}

func (p *Browser) reportTotal() {
	p.SetStatus(termio.NewColouredText(fmt.Sprintf("%d matching rows", p.snapshot.Total()), termio.TERM_GREEN))
}

// ==================================================================
// TableSource
// ==================================================================

// Columns returns the number of columns in the main table of the browser,
// including the row index column.
func (p *Browser) Columns() uint {
	return uint(len(p.visible)) + 1
}

// ColumnWidth gets the width of a given column in the main table of the
// browser.  This is wide enough for the longest value in the column, but no
// wider than the column's layout width.
func (p *Browser) ColumnWidth(col uint) uint {
	if col == 0 {
		return indexWidth
	}
	//
	var (
		column  = p.snapshot.Columns[p.visible[col-1]]
		longest = max(runewidth.StringWidth(column.Longest), runewidth.StringWidth(columnTitle(column)))
	)
	//
	return min(uint(longest), uint(column.Width))
}

// CellAt returns the contents of a given cell in the main table of the
// browser.  The first row holds column titles, followed by the rows of the
// current page and then the footer.
func (p *Browser) CellAt(col, row uint) termio.FormattedText {
	var (
		rows   = p.snapshot.Rows()
		nrows  = uint(len(rows))
		footer = p.snapshot.Footer
	)
	//
	switch {
	case row == 0 && col == 0:
		return termio.NewFormattedText("#", termio.BoldAnsiEscape())
	case row == 0:
		text := termio.NewText(columnTitle(p.snapshot.Columns[p.visible[col-1]]))
		text.Format(termio.BoldAnsiEscape())
		//
		return text
	case row <= nrows && rows[row-1].IsNested() && col == 0:
		return termio.NewColouredText("↳", termio.TERM_BLUE)
	case row <= nrows && rows[row-1].IsNested() && col == 1:
		return termio.NewColouredText(fmt.Sprintf("%d nested rows", rows[row-1].ChildRows()), termio.TERM_BLUE)
	case row <= nrows && rows[row-1].IsNested():
		return termio.NewText("")
	case row <= nrows && col == 0:
		return termio.NewColouredText(strconv.Itoa(int(rows[row-1].Index())), termio.TERM_WHITE)
	case row <= nrows:
		c := &p.grid.Frame().Columns[p.visible[col-1]]
		val, _ := rows[row-1].Value(c.Name)
		//
		return termio.NewText(c.Display(val))
	case col > 0 && len(footer) > 0:
		values := footer[p.visible[col-1]]
		//
		if k := row - nrows - 1; k < uint(len(values)) {
			return termio.NewColouredText(values[k], termio.TERM_YELLOW)
		}
	}
	//
	return termio.NewText("")
}

// Start provides a read / update / render loop.
func (p *Browser) Start() []error {
	var errors []error
	// Start clock timer
	clk := time.NewTicker(500 * time.Millisecond)
	defer clk.Stop()
	//
	go func() {
		for range clk.C {
			//nolint:errcheck
			p.Clock()
		}
	}()
	//
	if err := p.render(); err != nil {
		errors = append(errors, err)
	}
	//
	for len(errors) == 0 {
		if key, err := p.term.ReadKey(); err != nil {
			errors = append(errors, err)
		} else if exit := p.keyPressed(key); exit {
			break
		} else if err := p.render(); err != nil {
			errors = append(errors, err)
		}
	}
	// Attempt to restore terminal state
	if err := p.term.Restore(); err != nil {
		errors = append(errors, err)
	}
	// Done
	return errors
}

func (p *Browser) keyPressed(key uint16) bool {
	p.mux.Lock()
	defer p.mux.Unlock()
	//
	return p.KeyPressed(key)
}

func (p *Browser) render() error {
	p.mux.Lock()
	defer p.mux.Unlock()
	//
	return p.term.Render()
}

// ==================================================================
// Helpers
// ==================================================================

func visibleColumns(f *frame.Frame) []int {
	var visible []int
	//
	for i := range f.Columns {
		if f.Columns[i].Type != frame.NESTED_FRAMES {
			visible = append(visible, i)
		}
	}
	//
	return visible
}

func columnTitle(col grid.Column) string {
	var title = col.DisplayName
	//
	if col.Filtered {
		title += "*"
	}
	//
	if col.Sort.HasValue() {
		title += " " + arrow(col.Sort.Unwrap())
	}
	//
	return title
}

// Summarise the sort keys and filtered columns of a snapshot, such as "sort
// id ▲, name ▼ :: filter name".
func stateSummary(snapshot grid.Snapshot) string {
	var parts []string
	//
	if len(snapshot.SortKeys) > 0 {
		keys := make([]string, len(snapshot.SortKeys))
		//
		for i, k := range snapshot.SortKeys {
			keys[i] = fmt.Sprintf("%s %s", k.Column, arrow(k.Direction))
		}
		//
		parts = append(parts, "sort "+strings.Join(keys, ", "))
	}
	//
	if !snapshot.Filters.IsEmpty() {
		parts = append(parts, "filter "+strings.Join(snapshot.Filters.Columns(), ", "))
	}
	//
	return strings.Join(parts, " :: ")
}

func arrow(direction sorting.Direction) string {
	if direction == sorting.DESC {
		return "▼"
	}
	//
	return "▲"
}
