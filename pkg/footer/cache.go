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
	"encoding/binary"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/consensys/go-gridrows/pkg/rows"
)

// Cache holds the most recently computed footer values for each column.  An
// entry is only reused when the rows it was computed from have the same count
// and the same identity (i.e. the same row indices in the same order), and the
// footer configuration is unchanged.  Otherwise, it is recomputed and replaced.
type Cache struct {
	entries map[string]cacheEntry
	// Statistics
	hits, misses uint
}

type cacheEntry struct {
	count     int
	hash      uint64
	signature string
	values    []string
}

// NewCache constructs an empty footer cache.
func NewCache() *Cache {
	return &Cache{make(map[string]cacheEntry), 0, 0}
}

// Lookup the cached footer values for a given column, if they remain valid.
func (p *Cache) Lookup(column string, key RowsKey, signature string) ([]string, bool) {
	if e, ok := p.entries[column]; ok && e.count == key.Count && e.hash == key.Hash && e.signature == signature {
		p.hits++
		return e.values, true
	}
	//
	p.misses++
	//
	return nil, false
}

// Store footer values for a given column, replacing whatever was there before.
func (p *Cache) Store(column string, key RowsKey, signature string, values []string) {
	p.entries[column] = cacheEntry{key.Count, key.Hash, signature, values}
}

// Reset discards all entries, as necessary when the underlying frame changes.
func (p *Cache) Reset() {
	clear(p.entries)
}

// Stats returns the number of cache hits and misses so far.
func (p *Cache) Stats() (hits uint, misses uint) {
	return p.hits, p.misses
}

// RowsKey identifies a set of (sorted) rows by their count and a hash of their
// indices.
type RowsKey struct {
	Count int
	Hash  uint64
}

// KeyOf computes the key for a given set of rows.
func KeyOf(sorted []rows.Row) RowsKey {
	var (
		digest = xxhash.New()
		buf    [8]byte
	)
	//
	for _, row := range sorted {
		binary.LittleEndian.PutUint64(buf[:], uint64(row.Key().Depth)<<63|uint64(row.Index()))
		//nolint:errcheck
		digest.Write(buf[:])
	}
	//
	return RowsKey{len(sorted), digest.Sum64()}
}

func signatureOf(reducers []string, fields []string) string {
	return strings.Join(reducers, ",") + "|" + strings.Join(fields, ",")
}
