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
package page

import (
	"github.com/consensys/go-gridrows/pkg/rows"
)

// DISABLED is the page number reported when pagination is disabled.
const DISABLED = -1

// Config captures the geometry from which the number of rows per page is
// derived.  All heights are in pixels.
type Config struct {
	// Enabled determines whether pagination is applied at all.
	Enabled bool
	// ViewportHeight is the total height available to the table.
	ViewportHeight int
	// RowHeight is the fixed height of a single row.
	RowHeight int
	// HeaderHeight is the height of the column header row.
	HeaderHeight int
	// FooterHeight is the height of the footer row (zero if not shown).
	FooterHeight int
	// BarHeight is the height of the pagination bar.
	BarHeight int
}

// RowsPerPage determines how many rows fit on a page, which is always at least
// one.
func (p Config) RowsPerPage() int {
	var available = p.ViewportHeight - p.HeaderHeight - p.FooterHeight - p.BarHeight
	//
	if p.RowHeight <= 0 || available < p.RowHeight {
		return 1
	}
	//
	return available / p.RowHeight
}

// Page describes the current page of a paginated set of rows.
type Page struct {
	// Page is the (zero-based) current page, or DISABLED.
	Page int
	// RowsPerPage is the maximum number of rows on any page.
	RowsPerPage int
	// RangeStart is the (one-based) position of the first row on this page.
	RangeStart int
	// RangeEnd is the (one-based) position of the last row on this page.
	RangeEnd int
	// NumPages is the total number of pages.
	NumPages int
	// Rows on this page.
	Rows []rows.Row
}

// Paginate selects the rows of a given page.  A page beyond the last page is
// clamped to the last page, and a negative page to the first, so that a change
// which reduces the number of rows never results in an empty page.  When
// pagination is disabled, all rows form the current page.
func Paginate(sorted []rows.Row, config Config, page int) Page {
	var total = len(sorted)
	//
	if !config.Enabled {
		return Page{DISABLED, total, min(1, total), total, 1, sorted}
	}
	//
	var (
		perPage  = config.RowsPerPage()
		numPages = (total + perPage - 1) / perPage
	)
	//
	if total == 0 {
		return Page{0, perPage, 0, 0, 0, sorted}
	}
	//
	page = Clamp(page, numPages)
	start := page*perPage + 1
	end := min(start+perPage-1, total)
	//
	return Page{page, perPage, start, end, numPages, sorted[start-1 : end]}
}

// Clamp a page number into the range of valid pages.
func Clamp(page int, numPages int) int {
	switch {
	case numPages <= 0 || page < 0:
		return 0
	case page >= numPages:
		return numPages - 1
	}
	//
	return page
}
