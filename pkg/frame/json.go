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
	"strconv"
	"time"

	"github.com/consensys/go-gridrows/pkg/util"
	"github.com/segmentio/encoding/json"
)

type jsonFrame struct {
	Name    string       `json:"name"`
	Columns []jsonColumn `json:"columns"`
}

type jsonColumn struct {
	Name   string            `json:"name"`
	Type   string            `json:"type"`
	Values []json.RawMessage `json:"values"`
	Config jsonConfig        `json:"config"`
}

type jsonConfig struct {
	DisplayName string      `json:"displayName"`
	Width       uint        `json:"width"`
	Wrap        bool        `json:"wrap"`
	Footer      *jsonFooter `json:"footer"`
}

type jsonFooter struct {
	Reducers []string `json:"reducers"`
	Fields   []string `json:"fields"`
}

// ParseJsonFrame parses a frame from a JSON document of the form
// {"name":..., "columns":[{"name":..., "type":..., "values":[...]}]}.  Values
// of nestedFrames columns are arrays of (recursively) encoded frames, whilst
// time values are either RFC3339 strings or milliseconds since the epoch.
func ParseJsonFrame(bytes []byte) (*Frame, error) {
	var raw jsonFrame
	//
	if err := json.Unmarshal(bytes, &raw); err != nil {
		return nil, fmt.Errorf("invalid frame: %w", err)
	}
	//
	frame, err := decodeFrame(&raw)
	if err != nil {
		return nil, err
	} else if err = frame.Validate(); err != nil {
		return nil, fmt.Errorf("invalid frame: %w", err)
	}
	//
	return frame, nil
}

func decodeFrame(raw *jsonFrame) (*Frame, error) {
	var columns = make([]Column, len(raw.Columns))
	//
	for i, c := range raw.Columns {
		var (
			kind   = ParseType(c.Type)
			values = make([]any, len(c.Values))
		)
		//
		for j, v := range c.Values {
			val, err := decodeValue(kind, v)
			if err != nil {
				return nil, fmt.Errorf("column \"%s\" row %d: %w", c.Name, j, err)
			}
			//
			values[j] = val
		}
		//
		columns[i] = Column{c.Name, kind, values, decodeConfig(c.Config)}
	}
	//
	return NewFrame(raw.Name, columns...), nil
}

func decodeConfig(raw jsonConfig) ColumnConfig {
	var config = ColumnConfig{
		DisplayName: raw.DisplayName,
		Width:       raw.Width,
		Wrap:        raw.Wrap,
		Footer:      util.None[FooterOptions](),
	}
	//
	if raw.Footer != nil {
		config.Footer = util.Some(FooterOptions{raw.Footer.Reducers, raw.Footer.Fields})
	}
	//
	return config
}

func decodeValue(kind Type, bytes json.RawMessage) (any, error) {
	var val any
	//
	if err := json.Unmarshal(bytes, &val); err != nil {
		return nil, err
	} else if val == nil {
		return nil, nil
	}
	//
	switch kind {
	case NUMBER:
		return decodeNumber(val)
	case TIME:
		return decodeTime(val)
	case NESTED_FRAMES:
		var (
			raw      []jsonFrame
			children []*Frame
		)
		//
		if err := json.Unmarshal(bytes, &raw); err != nil {
			return nil, err
		}
		//
		for i := range raw {
			child, err := decodeFrame(&raw[i])
			if err != nil {
				return nil, err
			}
			//
			children = append(children, child)
		}
		//
		return children, nil
	case FRAME:
		var raw jsonFrame
		//
		if err := json.Unmarshal(bytes, &raw); err != nil {
			return nil, err
		}
		//
		return decodeFrame(&raw)
	}
	// Everything else is left as decoded
	return val, nil
}

func decodeNumber(val any) (any, error) {
	switch v := val.(type) {
	case float64:
		return v, nil
	case string:
		// Permit "NaN", "+Inf", etc.
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, nil
		}
	}
	//
	return nil, fmt.Errorf("expected number, found %v", val)
}

func decodeTime(val any) (any, error) {
	switch v := val.(type) {
	case float64:
		return time.UnixMilli(int64(v)).UTC(), nil
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, err
		}
		//
		return t, nil
	}
	//
	return nil, fmt.Errorf("expected time, found %v", val)
}
