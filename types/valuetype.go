// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package types implements value coercion for n-cube axes: promoting a
// loosely-typed caller value to an axis's declared value-type, and parsing
// the textual column specs (ranges, sets, points) used when cubes are
// authored by hand.
package types

// ValueType is the declared type of values an axis accepts.
type ValueType int

const (
	// STRING axes compare by string equality/ordering.
	STRING ValueType = iota
	// LONG axes hold 64-bit integers.
	LONG
	// BIG_DECIMAL axes hold arbitrary-precision decimals.
	BIG_DECIMAL
	// DOUBLE axes hold 64-bit floats.
	DOUBLE
	// DATE axes hold timestamps.
	DATE
	// COMPARABLE axes hold any value implementing a type-specific
	// ordering/distance (points, lat/lon, custom domain types).
	COMPARABLE
	// EXPRESSION axes hold condition expressions (RULE axis columns).
	EXPRESSION
)

// String implements fmt.Stringer.
func (t ValueType) String() string {
	switch t {
	case STRING:
		return "STRING"
	case LONG:
		return "LONG"
	case BIG_DECIMAL:
		return "BIG_DECIMAL"
	case DOUBLE:
		return "DOUBLE"
	case DATE:
		return "DATE"
	case COMPARABLE:
		return "COMPARABLE"
	case EXPRESSION:
		return "EXPRESSION"
	default:
		return "UNKNOWN"
	}
}

// ParseValueType maps a wire-format type name (§6) to a ValueType.
func ParseValueType(name string) (ValueType, bool) {
	switch name {
	case "STRING":
		return STRING, true
	case "LONG":
		return LONG, true
	case "BIG_DECIMAL":
		return BIG_DECIMAL, true
	case "DOUBLE":
		return DOUBLE, true
	case "DATE":
		return DATE, true
	case "COMPARABLE":
		return COMPARABLE, true
	case "EXPRESSION":
		return EXPRESSION, true
	default:
		return 0, false
	}
}
