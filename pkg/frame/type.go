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

import "strings"

// Type identifies the kind of values held in a column.  This determines which
// comparator is used when sorting, and which footer reducers are eligible.
type Type uint8

// STRING identifies a column of text values.
const STRING = Type(0)

// NUMBER identifies a column of numeric values.
const NUMBER = Type(1)

// BOOLEAN identifies a column of boolean values.
const BOOLEAN = Type(2)

// TIME identifies a column of timestamps.
const TIME = Type(3)

// ENUM identifies a column of enumerated (i.e. labelled) values.
const ENUM = Type(4)

// FRAME identifies a column whose values are themselves frames.
const FRAME = Type(5)

// NESTED_FRAMES identifies a column whose values are lists of child frames.
// Rows holding a non-empty list can be expanded into a nested table.
const NESTED_FRAMES = Type(6)

// OTHER identifies a column of any other kind of value.
const OTHER = Type(7)

var typeNames = []string{"string", "number", "boolean", "time", "enum", "frame", "nestedFrames", "other"}

// ParseType converts a type name into a type.  Names are matched without
// regard to case, and anything unrecognised is treated as OTHER.
func ParseType(name string) Type {
	for i, n := range typeNames {
		if strings.EqualFold(n, name) {
			return Type(i)
		}
	}
	//
	return OTHER
}

// IsNumeric determines whether values of this type are compared numerically.
func (t Type) IsNumeric() bool {
	return t == NUMBER || t == BOOLEAN || t == TIME
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	//
	return "other"
}

// TypeMap maps column names to their types.  This is derived once per frame and
// shared between sorting and height estimation.
type TypeMap map[string]Type

// TypeOf returns the type of the given column, or OTHER if the column is not
// known.
func (p TypeMap) TypeOf(column string) Type {
	if t, ok := p[column]; ok {
		return t
	}
	//
	return OTHER
}
