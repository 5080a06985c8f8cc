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

	"github.com/consensys/go-gridrows/pkg/sorting"
	"github.com/consensys/go-gridrows/pkg/util/termio"
)

// NavigationMode is the default mode of the browser.  In this mode, the user
// is paging through rows and selecting columns to sort or filter.
type NavigationMode struct {
}

// Activate navigation mode by setting the command bar to show the navigation
// commands.
func (p *NavigationMode) Activate(parent *Browser) {
	parent.cmdBar.Clear()
	parent.cmdBar.Add(termio.NewColouredText("[a]", termio.TERM_YELLOW))
	parent.cmdBar.Add(termio.NewText("sc/"))
	parent.cmdBar.Add(termio.NewColouredText("[d]", termio.TERM_YELLOW))
	parent.cmdBar.Add(termio.NewText("esc (shift for multi) :: "))
	parent.cmdBar.Add(termio.NewColouredText("[f]", termio.TERM_YELLOW))
	parent.cmdBar.Add(termio.NewText("ilter :: "))
	parent.cmdBar.Add(termio.NewColouredText("[/]", termio.TERM_YELLOW))
	parent.cmdBar.Add(termio.NewText("search :: "))
	parent.cmdBar.Add(termio.NewColouredText("[#]", termio.TERM_YELLOW))
	parent.cmdBar.Add(termio.NewText("clear filter :: "))
	parent.cmdBar.Add(termio.NewColouredText("[g]", termio.TERM_YELLOW))
	parent.cmdBar.Add(termio.NewText("oto page :: "))
	parent.cmdBar.Add(termio.NewColouredText("[q]", termio.TERM_RED))
	parent.cmdBar.Add(termio.NewText("uit"))
	parent.cmdBar.AddRight(termio.NewText(pageSummary(parent)))
}

// KeyPressed in navigation mode, which either moves around the grid or fires
// off some command.
func (p *NavigationMode) KeyPressed(parent *Browser, key uint16) bool {
	switch key {
	case termio.TAB, termio.CURSOR_RIGHT:
		parent.tabs.Select(1)
	case termio.BACKTAB, termio.CURSOR_LEFT:
		parent.tabs.Select(-1)
	case termio.CURSOR_UP:
		parent.gotoPage(-1)
	case termio.CURSOR_DOWN:
		parent.gotoPage(1)
	// quit
	case 'q':
		return true
	case 'a':
		parent.sort(sorting.ASC, false)
	case 'd':
		parent.sort(sorting.DESC, false)
	case 'A':
		parent.sort(sorting.ASC, true)
	case 'D':
		parent.sort(sorting.DESC, true)
	case 'f':
		parent.EnterMode(p.filterInputMode(parent))
	case '/':
		parent.EnterMode(p.searchInputMode(parent))
	case '#':
		parent.clearFilter()
	case 'g':
		parent.EnterMode(p.gotoInputMode(parent))
	}
	//
	return false
}

func (p *NavigationMode) filterInputMode(parent *Browser) Mode {
	var prompt = fmt.Sprintf("%s values (separated by |)? ", parent.SelectedColumn())
	//
	return newInputMode(termio.NewColouredText(prompt, termio.TERM_YELLOW), newValuesHandler(parent.filterValues))
}

func (p *NavigationMode) searchInputMode(parent *Browser) Mode {
	var prompt = fmt.Sprintf("%s contains? ", parent.SelectedColumn())
	//
	return newInputMode(termio.NewColouredText(prompt, termio.TERM_YELLOW), newTextHandler(parent.filterSearch))
}

func (p *NavigationMode) gotoInputMode(parent *Browser) Mode {
	var prompt = termio.NewColouredText("page? ", termio.TERM_YELLOW)
	//
	return newInputMode(prompt, newUintHandler(parent.gotoPageNumber))
}

func pageSummary(parent *Browser) string {
	var current = parent.snapshot.Page
	//
	if current.NumPages == 0 {
		return "no rows "
	} else if current.Page < 0 {
		return fmt.Sprintf("%d rows ", parent.snapshot.Total())
	}
	//
	return fmt.Sprintf("page %d/%d, rows %d-%d of %d ", current.Page+1, current.NumPages,
		current.RangeStart, current.RangeEnd, parent.snapshot.Total())
}
