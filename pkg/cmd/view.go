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
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/consensys/go-gridrows/pkg/frame"
	"github.com/consensys/go-gridrows/pkg/grid"
	"github.com/consensys/go-gridrows/pkg/page"
	"github.com/consensys/go-gridrows/pkg/rows"
	"github.com/consensys/go-gridrows/pkg/sorting"
	"github.com/consensys/go-gridrows/pkg/util"
	"github.com/consensys/go-gridrows/pkg/util/termio"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view [flags] frame_file",
	Short: "View the rows of a frame.",
	Long: `View the current page of rows of a frame, after applying any filters and sort
keys given, along with the footer and a page summary.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			options = readGridOptions(cmd)
			printer = ViewPrinter{
				Ansi:    GetFlag(cmd, "ansi"),
				Expand:  GetFlag(cmd, "expand"),
				Heights: GetFlag(cmd, "heights"),
			}
			stats = util.NewPerfStats()
		)
		//
		g, snapshot, err := options.BuildGrid(readFrameFile(args[0]))
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		printer.Print(os.Stdout, g, snapshot)
		stats.Log("Viewing frame")
	},
}

// ViewPrinter is responsible for printing a snapshot of a grid as text.
type ViewPrinter struct {
	// Use ANSI escapes for highlighting
	Ansi bool
	// Print nested tables beneath the main table
	Expand bool
	// Show estimated row heights
	Heights bool
}

// Print a given snapshot of a grid.
func (p *ViewPrinter) Print(out io.Writer, g *grid.Grid, snapshot grid.Snapshot) {
	var (
		f       = g.Frame()
		visible = visibleColumns(f)
		current = snapshot.Page
	)
	// Determine table dimensions
	width := uint(len(visible)) + 1
	height := uint(len(current.Rows)) + 1
	//
	if p.Heights {
		width++
	}
	//
	if len(snapshot.Footer) > 0 {
		height += uint(footerLines(snapshot.Footer))
	}
	//
	table := termio.NewTablePrinter(width, height)
	table.AnsiEscapes(p.Ansi)
	// Header
	table.Set(0, 0, "#")
	//
	for i, c := range visible {
		col := snapshot.Columns[c]
		table.Set(uint(i+1), 0, columnTitle(col))
		table.SetEscape(uint(i+1), 0, titleEscape(col))
		table.SetMaxWidth(uint(i+1), max(uint(col.Width), uint(len(columnTitle(col)))))
	}
	//
	if p.Heights {
		table.Set(width-1, 0, "h")
	}
	// Rows
	for r, row := range current.Rows {
		p.setRow(table, uint(r+1), f, visible, row)
		//
		if p.Heights {
			table.Set(width-1, uint(r+1), strconv.FormatFloat(snapshot.Heights[r], 'f', -1, 64))
		}
	}
	// Footers
	for k, n := 0, footerLines(snapshot.Footer); k < n; k++ {
		r := uint(len(current.Rows) + 1 + k)
		table.Set(0, r, "Σ")
		//
		for i, c := range visible {
			if k < len(snapshot.Footer[c]) {
				table.Set(uint(i+1), r, snapshot.Footer[c][k])
				table.SetEscape(uint(i+1), r, termio.NewAnsiEscape().FgColour(termio.TERM_YELLOW).Build())
			}
		}
	}
	//
	table.Print(out)
	fmt.Fprintln(out, pageSummary(current, snapshot.Total()))
	//
	if p.Expand {
		p.printNested(out, g, current.Rows)
	}
}

func (p *ViewPrinter) setRow(table *termio.TablePrinter, r uint, f *frame.Frame, visible []int, row rows.Row) {
	if row.IsNested() {
		table.Set(0, r, "↳")
		//
		if len(visible) > 0 {
			table.Set(1, r, fmt.Sprintf("%d nested rows", row.ChildRows()))
		}
		//
		return
	}
	//
	table.Set(0, r, strconv.Itoa(int(row.Index())))
	//
	for i, c := range visible {
		col := &f.Columns[c]
		val, _ := row.Value(col.Name)
		table.Set(uint(i+1), r, col.Display(val))
	}
}

// Print the nested tables beneath any nested rows.
func (p *ViewPrinter) printNested(out io.Writer, g *grid.Grid, current []rows.Row) {
	for _, row := range current {
		if !row.IsNested() {
			continue
		}
		//
		view, _ := g.Nested(row.Index())
		//
		for i, child := range view.Frames {
			fmt.Fprintf(out, "\nrow %d, nested table %d (%s):\n", row.Index(), i, child.Name)
			printFrameRows(out, child, view.Tables[i], view.Keys, p.Ansi)
		}
	}
}

// Print some rows of a frame without any further processing.
func printFrameRows(out io.Writer, f *frame.Frame, rs []rows.Row, keys sorting.Keys, ansi bool) {
	var (
		visible = visibleColumns(f)
		table   = termio.NewTablePrinter(uint(len(visible)), uint(len(rs))+1)
	)
	//
	table.AnsiEscapes(ansi)
	//
	for i, c := range visible {
		col := grid.Column{Name: f.Columns[c].Name, DisplayName: f.Columns[c].DisplayName()}
		//
		if j := keys.Find(col.Name); j >= 0 {
			col.Sort = util.Some(keys[j].Direction)
		}
		//
		table.Set(uint(i), 0, columnTitle(col))
		table.SetEscape(uint(i), 0, titleEscape(col))
	}
	//
	for r, row := range rs {
		for i, c := range visible {
			col := &f.Columns[c]
			val, _ := row.Value(col.Name)
			table.Set(uint(i), uint(r+1), col.Display(val))
		}
	}
	//
	table.Print(out)
}

// Determine the columns to show, which excludes those holding nested frames.
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
		title = title + "*"
	}
	//
	if col.Sort.HasValue() && col.Sort.Unwrap() == sorting.DESC {
		return title + " ▼"
	} else if col.Sort.HasValue() {
		return title + " ▲"
	}
	//
	return title
}

func titleEscape(col grid.Column) string {
	var escape = termio.BoldAnsiEscape()
	//
	if col.Sort.HasValue() || col.Filtered {
		escape = escape.FgColour(termio.TERM_CYAN)
	}
	//
	return escape.Build()
}

func footerLines(footer [][]string) int {
	var n int
	//
	for _, values := range footer {
		n = max(n, len(values))
	}
	//
	return n
}

func pageSummary(current page.Page, total int) string {
	if current.Page == page.DISABLED {
		return fmt.Sprintf("%d rows", total)
	} else if current.NumPages == 0 {
		return "no rows"
	}
	//
	return fmt.Sprintf("page %d of %d (rows %d-%d of %d)", current.Page+1, current.NumPages,
		current.RangeStart, current.RangeEnd, total)
}

func init() {
	rootCmd.AddCommand(viewCmd)
	addGridFlags(viewCmd)
	viewCmd.Flags().Bool("ansi", false, "highlight output using ANSI escapes")
	viewCmd.Flags().Bool("expand", false, "print nested tables beneath the page")
	viewCmd.Flags().Bool("heights", false, "show estimated row heights")
}
