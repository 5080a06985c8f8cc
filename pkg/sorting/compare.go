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
package sorting

import (
	"github.com/consensys/go-gridrows/pkg/frame"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparator compares two raw cell values, returning a negative number when
// the first is smaller, zero when they are equal and a positive number
// otherwise.
type Comparator func(lhs, rhs any) int

// ComparatorFor selects the comparator for values of a given column type.
// Numbers, booleans and timestamps compare numerically, whilst everything else
// (including types not known here) uses the string comparator.
func ComparatorFor(kind frame.Type, strings *StringComparator) Comparator {
	switch kind {
	case frame.NUMBER, frame.BOOLEAN, frame.TIME:
		return CompareNumeric
	default:
		return strings.Compare
	}
}

// CompareNumeric compares two values numerically.  A missing (or non-numeric)
// value is less than any numeric value, and two missing values are equal.
func CompareNumeric(lhs, rhs any) int {
	var (
		l, lok = frame.ToFloat(lhs)
		r, rok = frame.ToFloat(rhs)
	)
	//
	switch {
	case !lok && !rok:
		return 0
	case !lok:
		return -1
	case !rok:
		return 1
	case l < r:
		return -1
	case l > r:
		return 1
	}
	//
	return 0
}

// StringComparator compares values by their string coercion in a locale-aware,
// case-insensitive fashion where runs of digits compare as numbers (e.g.
// "file2" < "file10").  A StringComparator is not safe for concurrent use.
type StringComparator struct {
	collator *collate.Collator
}

// NewStringComparator constructs a fresh string comparator.
func NewStringComparator() *StringComparator {
	var collator = collate.New(language.Und, collate.IgnoreCase, collate.IgnoreDiacritics, collate.Numeric)
	//
	return &StringComparator{collator}
}

// Compare two values by their string coercion.  Missing values coerce to the
// empty string.
func (p *StringComparator) Compare(lhs, rhs any) int {
	return p.collator.CompareString(frame.DefaultDisplay(lhs), frame.DefaultDisplay(rhs))
}
