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
package footer

import (
	"slices"
	"strings"

	"github.com/consensys/go-gridrows/pkg/frame"
	"github.com/consensys/go-gridrows/pkg/rows"
	log "github.com/sirupsen/logrus"
)

// Aggregator computes the footer values for the columns of a frame.  Values
// are always computed over the sorted (but not paginated) rows, so they do not
// change when moving between pages.
type Aggregator struct {
	cache *Cache
}

// NewAggregator constructs an aggregator backed by a given cache.
func NewAggregator(cache *Cache) *Aggregator {
	return &Aggregator{cache}
}

// Reset discards all cached footer values.  The cache cannot tell one frame
// from another with the same row indices, so this must happen whenever the
// frame is replaced.
func (p *Aggregator) Reset() {
	p.cache.Reset()
}

// Compute the footer values for every column of a given frame, producing one
// formatted value per configured reducer per column.  Columns without footer
// configuration have no values.
func (p *Aggregator) Compute(f *frame.Frame, sorted []rows.Row) [][]string {
	var (
		key    = KeyOf(sorted)
		footer = make([][]string, len(f.Columns))
	)
	//
	for i := range f.Columns {
		col := &f.Columns[i]
		//
		if col.Config.Footer.IsEmpty() {
			continue
		}
		//
		options := col.Config.Footer.Unwrap()
		signature := signatureOf(options.Reducers, options.Fields)
		//
		if values, ok := p.cache.Lookup(col.Name, key, signature); ok {
			footer[i] = values
			continue
		}
		//
		log.Debugf("computing footer for column %s over %d rows", col.Name, key.Count)
		footer[i] = Column(col, options, sorted)
		p.cache.Store(col.Name, key, signature, footer[i])
	}
	//
	return footer
}

// Column computes the footer values for a single column.  A column excluded by
// the fields allow-list, or a reducer which is not eligible for the column's
// type (or which has nothing to reduce), yields an empty string.  This ensures
// footer cells remain aligned with their columns.
func Column(col *frame.Column, options frame.FooterOptions, sorted []rows.Row) []string {
	var (
		values   = make([]string, len(options.Reducers))
		included = len(options.Fields) == 0 ||
			slices.Contains(options.Fields, col.Name) ||
			slices.Contains(options.Fields, col.DisplayName())
	)
	//
	if !included {
		return values
	}
	//
	data := columnValues(col, sorted)
	//
	for i, id := range options.Reducers {
		reducer, ok := Lookup(id)
		//
		if !ok || !reducer.IsEligible(col.Type) {
			continue
		}
		//
		if result := reducer.Reduce(data); result.HasValue() {
			values[i] = format(col, reducer, result.Unwrap())
		}
	}
	//
	return values
}

// Extract the values of a given column from a set of rows.  Nested rows have no
// values, and are therefore ignored.
func columnValues(col *frame.Column, sorted []rows.Row) []any {
	var values = make([]any, 0, len(sorted))
	//
	for _, row := range sorted {
		if !row.IsNested() {
			val, _ := row.Value(col.Name)
			values = append(values, val)
		}
	}
	//
	return values
}

// Format a reduced value for display.
func format(col *frame.Column, reducer *Reducer, val any) string {
	var display = frame.DefaultDisplay
	//
	if reducer.Typed {
		display = col.Display
	}
	//
	if vals, ok := val.([]any); ok {
		var parts = make([]string, len(vals))
		//
		for i, v := range vals {
			parts[i] = display(v)
		}
		//
		return strings.Join(parts, ", ")
	}
	//
	return display(val)
}
