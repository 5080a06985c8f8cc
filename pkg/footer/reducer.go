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
	"fmt"
	"math"
	"slices"

	"github.com/consensys/go-gridrows/pkg/frame"
	"github.com/consensys/go-gridrows/pkg/util"
)

// SUM of all numeric values.
const SUM = "sum"

// MEAN of all numeric values.
const MEAN = "mean"

// MIN is the smallest numeric value.
const MIN = "min"

// MAX is the largest numeric value.
const MAX = "max"

// RANGE is the difference between the largest and smallest numeric values.
const RANGE = "range"

// DIFF is the difference between the last and first numeric values.
const DIFF = "diff"

// VARIANCE is the (population) variance of all numeric values.
const VARIANCE = "variance"

// STD_DEV is the (population) standard deviation of all numeric values.
const STD_DEV = "stdDev"

// MEDIAN of all numeric values.
const MEDIAN = "median"

// ALL_IS_ZERO holds when every numeric value is zero.
const ALL_IS_ZERO = "allIsZero"

// COUNT is the number of non-null values.
const COUNT = "count"

// COUNT_ALL is the number of values, including nulls.
const COUNT_ALL = "countAll"

// DISTINCT_COUNT is the number of distinct values.
const DISTINCT_COUNT = "distinctCount"

// CHANGE_COUNT is the number of times consecutive values differ.
const CHANGE_COUNT = "changeCount"

// FIRST value (which may be null).
const FIRST = "first"

// FIRST_NOT_NULL is the first non-null value.
const FIRST_NOT_NULL = "firstNotNull"

// LAST value (which may be null).
const LAST = "last"

// LAST_NOT_NULL is the last non-null value.
const LAST_NOT_NULL = "lastNotNull"

// ALL_VALUES lists every value.
const ALL_VALUES = "allValues"

// UNIQUE_VALUES lists every distinct value, in order of first occurrence.
const UNIQUE_VALUES = "uniqueValues"

// ALL_IS_NULL holds when every value is null.
const ALL_IS_NULL = "allIsNull"

// Reducer aggregates the values of a column into a single value.
type Reducer struct {
	// Id of this reducer
	Id string
	// Math indicates a reducer which only applies to numeric columns.
	Math bool
	// Typed indicates the result has the same type as the column's values,
	// and should therefore be rendered with the column's formatter.
	Typed bool
	// Reduce a given set of values, producing nothing when there is no
	// sensible result.
	Reduce func([]any) util.Option[any]
}

var reducers = []Reducer{
	{SUM, true, true, numeric(reduceSum)},
	{MEAN, true, true, numeric(reduceMean)},
	{MIN, true, true, numeric(func(vs []float64) float64 { return slices.Min(vs) })},
	{MAX, true, true, numeric(func(vs []float64) float64 { return slices.Max(vs) })},
	{RANGE, true, true, numeric(func(vs []float64) float64 { return slices.Max(vs) - slices.Min(vs) })},
	{DIFF, true, true, numeric(func(vs []float64) float64 { return vs[len(vs)-1] - vs[0] })},
	{VARIANCE, true, false, numeric(reduceVariance)},
	{STD_DEV, true, true, numeric(func(vs []float64) float64 { return math.Sqrt(reduceVariance(vs)) })},
	{MEDIAN, true, true, numeric(reduceMedian)},
	{ALL_IS_ZERO, true, false, reduceAllIsZero},
	{COUNT, false, false, reduceCount},
	{COUNT_ALL, false, false, func(vs []any) util.Option[any] { return util.Some[any](len(vs)) }},
	{DISTINCT_COUNT, false, false, reduceDistinctCount},
	{CHANGE_COUNT, false, false, reduceChangeCount},
	{FIRST, false, true, reduceFirst},
	{FIRST_NOT_NULL, false, true, reduceFirstNotNull},
	{LAST, false, true, reduceLast},
	{LAST_NOT_NULL, false, true, reduceLastNotNull},
	{ALL_VALUES, false, true, func(vs []any) util.Option[any] { return util.Some[any](slices.Clone(vs)) }},
	{UNIQUE_VALUES, false, true, reduceUniqueValues},
	{ALL_IS_NULL, false, false, reduceAllIsNull},
}

// Lookup a reducer by its identifier.
func Lookup(id string) (*Reducer, bool) {
	for i := range reducers {
		if reducers[i].Id == id {
			return &reducers[i], true
		}
	}
	//
	return nil, false
}

// Reducers returns the identifiers of all known reducers.
func Reducers() []string {
	var ids = make([]string, len(reducers))
	//
	for i, r := range reducers {
		ids[i] = r.Id
	}
	//
	return ids
}

// IsEligible determines whether this reducer applies to a column of the given
// type.  Non-math reducers apply to every type, whilst math reducers only
// apply to numbers.
func (p *Reducer) IsEligible(kind frame.Type) bool {
	return !p.Math || kind == frame.NUMBER
}

// ============================================================================
// Math reducers
// ============================================================================

// Lift a reducer over non-empty sets of numbers into a reducer over arbitrary
// values, where non-numeric values are ignored.
func numeric(fn func([]float64) float64) func([]any) util.Option[any] {
	return func(vals []any) util.Option[any] {
		var nums = numbers(vals)
		//
		if len(nums) == 0 {
			return util.None[any]()
		}
		//
		return util.Some[any](fn(nums))
	}
}

func numbers(vals []any) []float64 {
	var nums []float64
	//
	for _, v := range vals {
		if f, ok := frame.ToFloat(v); ok {
			nums = append(nums, f)
		}
	}
	//
	return nums
}

func reduceSum(vals []float64) float64 {
	var sum float64
	//
	for _, v := range vals {
		sum += v
	}
	//
	return sum
}

func reduceMean(vals []float64) float64 {
	return reduceSum(vals) / float64(len(vals))
}

func reduceVariance(vals []float64) float64 {
	var (
		mean = reduceMean(vals)
		acc  float64
	)
	//
	for _, v := range vals {
		acc += (v - mean) * (v - mean)
	}
	//
	return acc / float64(len(vals))
}

func reduceMedian(vals []float64) float64 {
	var (
		sorted = append([]float64(nil), vals...)
		mid    = len(sorted) / 2
	)
	//
	slices.Sort(sorted)
	//
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	//
	return (sorted[mid-1] + sorted[mid]) / 2
}

func reduceAllIsZero(vals []any) util.Option[any] {
	var nums = numbers(vals)
	//
	if len(nums) == 0 {
		return util.None[any]()
	}
	//
	return util.Some[any](!slices.ContainsFunc(nums, func(f float64) bool { return f != 0 }))
}

// ============================================================================
// Non-math reducers
// ============================================================================

func reduceCount(vals []any) util.Option[any] {
	var count int
	//
	for _, v := range vals {
		if v != nil {
			count++
		}
	}
	//
	return util.Some[any](count)
}

func reduceDistinctCount(vals []any) util.Option[any] {
	var seen = make(map[string]bool)
	//
	for _, v := range vals {
		seen[valueKey(v)] = true
	}
	//
	return util.Some[any](len(seen))
}

func reduceChangeCount(vals []any) util.Option[any] {
	var count int
	//
	for i := 1; i < len(vals); i++ {
		if valueKey(vals[i-1]) != valueKey(vals[i]) {
			count++
		}
	}
	//
	return util.Some[any](count)
}

func reduceFirst(vals []any) util.Option[any] {
	if len(vals) == 0 {
		return util.None[any]()
	}
	//
	return util.Some(vals[0])
}

func reduceLast(vals []any) util.Option[any] {
	if len(vals) == 0 {
		return util.None[any]()
	}
	//
	return util.Some(vals[len(vals)-1])
}

func reduceFirstNotNull(vals []any) util.Option[any] {
	for _, v := range vals {
		if v != nil {
			return util.Some(v)
		}
	}
	//
	return util.None[any]()
}

func reduceLastNotNull(vals []any) util.Option[any] {
	for i := len(vals) - 1; i >= 0; i-- {
		if vals[i] != nil {
			return util.Some(vals[i])
		}
	}
	//
	return util.None[any]()
}

func reduceUniqueValues(vals []any) util.Option[any] {
	var (
		seen   = make(map[string]bool)
		unique []any
	)
	//
	for _, v := range vals {
		if key := valueKey(v); !seen[key] {
			seen[key] = true
			unique = append(unique, v)
		}
	}
	//
	return util.Some[any](unique)
}

func reduceAllIsNull(vals []any) util.Option[any] {
	return util.Some[any](!slices.ContainsFunc(vals, func(v any) bool { return v != nil }))
}

// Determine a key identifying a value, such that distinct values have distinct
// keys.  Values are not necessarily comparable (e.g. nested frames), hence this
// relies on their rendering.
func valueKey(val any) string {
	if val == nil {
		return "nil"
	}
	//
	return fmt.Sprintf("%T:%s", val, frame.DefaultDisplay(val))
}
