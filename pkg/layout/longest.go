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
package layout

import (
	"github.com/cespare/xxhash/v2"
	"github.com/consensys/go-gridrows/pkg/frame"
	runewidth "github.com/mattn/go-runewidth"
)

// LongestCache records the longest formatted value of each column, as used for
// aligning cells.  Entries are keyed by column name and a hash of the column's
// formatted content, such that an entry is recomputed exactly when the content
// of its column changes.
type LongestCache struct {
	entries map[string]longestEntry
	// Statistics
	hits, misses uint
}

type longestEntry struct {
	hash    uint64
	longest string
}

// NewLongestCache constructs an empty cache.
func NewLongestCache() *LongestCache {
	return &LongestCache{make(map[string]longestEntry), 0, 0}
}

// Longest returns the longest formatted value of a given column, where length
// is measured in terminal cells.  Ties go to the earliest value.
func (p *LongestCache) Longest(col *frame.Column) string {
	var (
		digest = xxhash.New()
		texts  = make([]string, col.Len())
	)
	//
	for i, n := uint(0), col.Len(); i < n; i++ {
		texts[i] = col.Display(col.Get(i))
		//nolint:errcheck
		digest.WriteString(texts[i])
		//nolint:errcheck
		digest.Write([]byte{0})
	}
	//
	hash := digest.Sum64()
	//
	if e, ok := p.entries[col.Name]; ok && e.hash == hash {
		p.hits++
		return e.longest
	}
	//
	p.misses++
	longest := longestOf(texts)
	p.entries[col.Name] = longestEntry{hash, longest}
	//
	return longest
}

// Reset discards all entries.
func (p *LongestCache) Reset() {
	clear(p.entries)
}

// Stats returns the number of cache hits and misses so far.
func (p *LongestCache) Stats() (hits uint, misses uint) {
	return p.hits, p.misses
}

func longestOf(texts []string) string {
	var (
		longest string
		width   = -1
	)
	//
	for _, text := range texts {
		if w := runewidth.StringWidth(text); w > width {
			longest, width = text, w
		}
	}
	//
	return longest
}
