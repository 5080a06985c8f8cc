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
package filter

import (
	"slices"
	"strconv"
	"strings"
)

// Operator determines how the search text of a filter popup is matched against
// candidate values when building an allowed set.
type Operator string

// EQUALS selects values equal to the search text.
const EQUALS = Operator("=")

// NOT_EQUALS selects values not equal to the search text.
const NOT_EQUALS = Operator("!=")

// CONTAINS selects values containing the search text (ignoring case).
const CONTAINS = Operator("contains")

// GREATER selects values greater than the search text.
const GREATER = Operator(">")

// GREATER_EQUALS selects values greater than or equal to the search text.
const GREATER_EQUALS = Operator(">=")

// LESS selects values less than the search text.
const LESS = Operator("<")

// LESS_EQUALS selects values less than or equal to the search text.
const LESS_EQUALS = Operator("<=")

// Filter describes the filter applied to a single column.  A row passes the
// filter when the display string of its value for the column is in the allowed
// set.  A filter with an empty allowed set is inactive.
type Filter struct {
	// Allowed display values.
	Allowed map[string]struct{}
	// Raw selections made by the user (e.g. checked items), kept for the
	// benefit of the popup which created this filter.
	Raw []any
	// Search text entered by the user (if any).
	SearchText string
	// Operator used with the search text.
	Operator Operator
}

// NewFilter constructs a filter allowing the given display values.
func NewFilter(values ...string) Filter {
	var allowed = make(map[string]struct{}, len(values))
	//
	for _, v := range values {
		allowed[v] = struct{}{}
	}
	//
	return Filter{Allowed: allowed, Operator: EQUALS}
}

// NewSearchFilter constructs a filter from a set of candidate values, allowing
// those which match the search text under the given operator.
func NewSearchFilter(candidates []string, search string, op Operator) Filter {
	var selected []string
	//
	for _, c := range candidates {
		if Matches(c, search, op) {
			selected = append(selected, c)
		}
	}
	//
	f := NewFilter(selected...)
	f.SearchText = search
	f.Operator = op
	//
	return f
}

// IsActive determines whether this filter constrains anything.
func (p Filter) IsActive() bool {
	return len(p.Allowed) > 0
}

// Allows determines whether a given display value passes this filter.
func (p Filter) Allows(value string) bool {
	_, ok := p.Allowed[value]
	return ok
}

// Values returns the allowed values in sorted order.
func (p Filter) Values() []string {
	var values = make([]string, 0, len(p.Allowed))
	//
	for v := range p.Allowed {
		values = append(values, v)
	}
	//
	slices.Sort(values)
	//
	return values
}

// Matches determines whether a value matches some search text under a given
// operator.  Ordering operators compare numerically when both sides are
// numbers, and lexically otherwise.
func Matches(value string, search string, op Operator) bool {
	switch op {
	case EQUALS:
		return value == search
	case NOT_EQUALS:
		return value != search
	case CONTAINS:
		return strings.Contains(strings.ToLower(value), strings.ToLower(search))
	}
	//
	c := compareValues(value, search)
	//
	switch op {
	case GREATER:
		return c > 0
	case GREATER_EQUALS:
		return c >= 0
	case LESS:
		return c < 0
	case LESS_EQUALS:
		return c <= 0
	}
	// Unknown operator matches nothing
	return false
}

func compareValues(lhs, rhs string) int {
	l, lerr := strconv.ParseFloat(strings.TrimSpace(lhs), 64)
	r, rerr := strconv.ParseFloat(strings.TrimSpace(rhs), 64)
	//
	if lerr == nil && rerr == nil {
		switch {
		case l < r:
			return -1
		case l > r:
			return 1
		}
		//
		return 0
	}
	//
	return strings.Compare(lhs, rhs)
}
