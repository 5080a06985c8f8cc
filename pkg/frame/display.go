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
package frame

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// TIME_LAYOUT is the layout used when displaying timestamps without a formatter.
const TIME_LAYOUT = "2006-01-02 15:04:05"

// Display renders a raw value as a string using the given formatter (if any).
// A formatter which panics degrades to the default rendering of the value,
// rather than aborting the row (or the pipeline).
func Display(formatter Formatter, val any) (text string) {
	if formatter == nil {
		return DefaultDisplay(val)
	}
	//
	defer func() {
		if recover() != nil {
			text = DefaultDisplay(val)
		}
	}()
	//
	return formatter(val)
}

// DefaultDisplay renders a raw value using its natural string coercion.
func DefaultDisplay(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return formatFloat(v)
	case float32:
		return formatFloat(float64(v))
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(TIME_LAYOUT)
	case []*Frame:
		return fmt.Sprintf("[%d nested]", len(v))
	case *Frame:
		return fmt.Sprintf("[frame %s]", v.Name)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	//
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ToFloat attempts to interpret a raw value as a number.  Booleans map to 0 or
// 1, and timestamps to milliseconds since the epoch.  Anything else (including
// nil) is not numeric.
func ToFloat(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case bool:
		if v {
			return 1, true
		}
		//
		return 0, true
	case time.Time:
		return float64(v.UnixMilli()), true
	}
	//
	return 0, false
}
