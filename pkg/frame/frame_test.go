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
	"os"
	"path/filepath"
	"testing"
	"time"
)

func Test_Frame_00(t *testing.T) {
	var f = NewFrame("f", NewColumn("id", NUMBER, 3.0, 1.0), NewColumn("name", STRING, "c"))
	// Short column reads as nil
	name, _ := f.Column("name")
	//
	if f.Len() != 2 {
		t.Errorf("expected length 2, got %d", f.Len())
	} else if name.Get(1) != nil {
		t.Errorf("expected nil, got %v", name.Get(1))
	} else if f.Validate() == nil {
		t.Errorf("expected validation failure for unequal columns")
	}
}

func Test_Frame_01(t *testing.T) {
	var f = NewFrame("f", NewColumn("id", NUMBER, 1.0), NewColumn("id", STRING, "c"))
	//
	if f.Validate() == nil {
		t.Errorf("expected validation failure for duplicate columns")
	}
}

func Test_Frame_02(t *testing.T) {
	var f = NewFrame("f", NewColumn("id", NUMBER), NewColumn("t", TIME))
	//
	types := f.Types()
	//
	if types.TypeOf("id") != NUMBER || types.TypeOf("t") != TIME || types.TypeOf("missing") != OTHER {
		t.Errorf("unexpected type map %v", types)
	}
}

func Test_Type_00(t *testing.T) {
	for _, name := range []string{"string", "NUMBER", "Boolean", "time", "enum", "frame", "nestedframes", "other"} {
		if ParseType(name).String() == "other" && name != "other" {
			t.Errorf("failed parsing type %s", name)
		}
	}
	//
	if ParseType("blob") != OTHER {
		t.Errorf("unknown types should be OTHER")
	}
}

// ===================================================================
// Display
// ===================================================================

func Test_Display_00(t *testing.T) {
	check_Display(t, nil, nil, "")
	check_Display(t, nil, 1.5, "1.5")
	check_Display(t, nil, 10.0, "10")
	check_Display(t, nil, true, "true")
	check_Display(t, nil, "abc", "abc")
	check_Display(t, nil, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), "2024-01-02 03:04:05")
}

func Test_Display_01(t *testing.T) {
	var upper Formatter = func(v any) string { return "<" + DefaultDisplay(v) + ">" }
	//
	check_Display(t, upper, 2.0, "<2>")
}

func Test_Display_02(t *testing.T) {
	// Panicking formatter degrades to string coercion
	var broken Formatter = func(v any) string { return v.(string) }
	//
	check_Display(t, broken, 2.0, "2")
	check_Display(t, broken, "x", "x")
}

func Test_ToFloat_00(t *testing.T) {
	if v, ok := ToFloat(true); !ok || v != 1 {
		t.Errorf("expected 1 for true")
	} else if _, ok := ToFloat("1"); ok {
		t.Errorf("strings should not be numeric")
	} else if _, ok := ToFloat(nil); ok {
		t.Errorf("nil should not be numeric")
	} else if v, ok := ToFloat(int64(7)); !ok || v != 7 {
		t.Errorf("expected 7")
	}
}

// ===================================================================
// JSON
// ===================================================================

const jsonFrame00 = `{
  "name": "hosts",
  "columns": [
    {"name": "id", "type": "number", "values": [3, 1, null],
     "config": {"footer": {"reducers": ["sum"]}}},
    {"name": "seen", "type": "time", "values": ["2024-01-02T03:04:05Z", 0, null]},
    {"name": "up", "type": "boolean", "values": [true, false, true]},
    {"name": "nested", "type": "nestedFrames", "values": [
       [{"name": "child", "columns": [{"name": "x", "type": "string", "values": ["a", "b"]}]}],
       [],
       null
    ]}
  ]
}`

func Test_Json_00(t *testing.T) {
	f, err := ParseJsonFrame([]byte(jsonFrame00))
	//
	if err != nil {
		t.Fatal(err)
	} else if f.Len() != 3 || f.Width() != 4 {
		t.Fatalf("unexpected dimensions %dx%d", f.Width(), f.Len())
	}
	//
	id, _ := f.Column("id")
	seen, _ := f.Column("seen")
	nested, _ := f.Column("nested")
	//
	if id.Get(0) != 3.0 || id.Get(2) != nil {
		t.Errorf("unexpected id values %v", id.Values)
	} else if !id.Config.Footer.HasValue() || id.Config.Footer.Unwrap().Reducers[0] != "sum" {
		t.Errorf("missing footer config")
	} else if seen.Get(1).(time.Time).UnixMilli() != 0 {
		t.Errorf("unexpected time %v", seen.Get(1))
	} else if children := NestedFrames(nested.Get(0)); len(children) != 1 || children[0].Len() != 2 {
		t.Errorf("unexpected nested frames %v", nested.Get(0))
	} else if len(NestedFrames(nested.Get(1))) != 0 || len(NestedFrames(nested.Get(2))) != 0 {
		t.Errorf("expected no nested frames")
	}
}

func Test_Json_01(t *testing.T) {
	var inputs = []string{
		`{"columns": [{"name": "a", "type": "number", "values": [1]}, {"name": "b", "values": []}]}`,
		`{"columns": [{"name": "a", "type": "number", "values": [true]}]}`,
		`{"columns": [{"name": "a", "type": "time", "values": ["yesterday"]}]}`,
		`{"columns": `,
	}
	//
	for _, input := range inputs {
		if _, err := ParseJsonFrame([]byte(input)); err == nil {
			t.Errorf("expected error for %s", input)
		}
	}
}

func Test_Json_02(t *testing.T) {
	check_JsonFile(t, "people.json", 8, 7)
	check_JsonFile(t, "nested.json", 3, 3)
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_Display(t *testing.T, formatter Formatter, val any, expected string) {
	if actual := Display(formatter, val); actual != expected {
		t.Errorf("display %v: expected \"%s\", got \"%s\"", val, expected, actual)
	}
}

// Directory holding the sample frames.
const framesDir = "../../testdata/frames"

func check_JsonFile(t *testing.T, name string, length uint, width uint) {
	bytes, err := os.ReadFile(filepath.Join(framesDir, name))
	if err != nil {
		t.Fatal(err)
	}
	//
	f, err := ParseJsonFrame(bytes)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	} else if f.Len() != length || f.Width() != width {
		t.Errorf("%s: expected %dx%d, got %dx%d", name, width, length, f.Width(), f.Len())
	}
}
