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

package types

import (
	"fmt"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// ExpressionDescriptor is the canonical representation of an EXPRESSION
// value: source text plus an optional resource URL and cache flag (§3
// Cell / §4.1 EXPRESSION coercion).
type ExpressionDescriptor struct {
	Source string
	URL    string
	Cache  bool
}

// Coerce promotes v to the canonical representation for valueType, or
// fails with ErrUnsupported/ErrConversionFailed-shaped errors (the caller
// in package ncube wraps these with the axis name).
func Coerce(v interface{}, valueType ValueType) (Comparable, error) {
	switch valueType {
	case LONG:
		return coerceLong(v)
	case BIG_DECIMAL:
		return coerceBigDecimal(v)
	case DOUBLE:
		return coerceDouble(v)
	case DATE:
		return coerceDate(v)
	case STRING:
		return coerceString(v)
	case COMPARABLE:
		return coerceComparable(v)
	case EXPRESSION:
		return coerceExpression(v)
	default:
		return nil, fmt.Errorf("unknown value type %v", valueType)
	}
}

// coerceLong accepts integer widths, numeric strings, and big.Int/
// decimal.Decimal values with a zero fraction. It fails on non-integer
// textual numbers, time.Time, and arbitrary objects (§4.1).
func coerceLong(v interface{}) (int64, error) {
	switch t := v.(type) {
	case time.Time:
		return 0, fmt.Errorf("cannot convert a date to LONG")
	case big.Int:
		if !t.IsInt64() {
			return 0, fmt.Errorf("big integer %s does not fit in a LONG", t.String())
		}
		return t.Int64(), nil
	case *big.Int:
		if !t.IsInt64() {
			return 0, fmt.Errorf("big integer %s does not fit in a LONG", t.String())
		}
		return t.Int64(), nil
	case decimal.Decimal:
		if !t.Equal(t.Truncate(0)) {
			return 0, fmt.Errorf("decimal %s has a fractional part, cannot convert to LONG", t.String())
		}
		return t.IntPart(), nil
	case string:
		n, err := cast.ToInt64E(t)
		if err != nil {
			return 0, fmt.Errorf("%q is not an integer: %w", t, err)
		}
		return n, nil
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return 0, fmt.Errorf("cannot convert %v (%T) to LONG: %w", v, v, err)
	}
	return n, nil
}

// coerceBigDecimal accepts any numeric or numeric-string value.
func coerceBigDecimal(v interface{}) (decimal.Decimal, error) {
	switch t := v.(type) {
	case decimal.Decimal:
		return t, nil
	case string:
		d, err := decimal.NewFromString(t)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("%q is not a decimal: %w", t, err)
		}
		return d, nil
	case *big.Int:
		return decimal.NewFromBigInt(t, 0), nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("cannot convert %v (%T) to BIG_DECIMAL: %w", v, v, err)
	}
	return decimal.NewFromFloat(f), nil
}

// coerceDouble accepts any numeric or numeric-string value.
func coerceDouble(v interface{}) (float64, error) {
	if d, ok := v.(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f, nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("cannot convert %v (%T) to DOUBLE: %w", v, v, err)
	}
	return f, nil
}

// coerceDate accepts time.Time, epoch millis (LONG), and common textual
// date formats (§4.1).
func coerceDate(v interface{}) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case int64:
		return ParseEpochMillis(t), nil
	case int:
		return ParseEpochMillis(int64(t)), nil
	case string:
		if ms, ok := looksLikeEpochMillis(t); ok {
			return ParseEpochMillis(ms), nil
		}
		return ParseDate(t)
	default:
		return time.Time{}, fmt.Errorf("cannot convert %v (%T) to DATE", v, v)
	}
}

// coerceString accepts anything with a stable textual representation.
func coerceString(v interface{}) (string, error) {
	return cast.ToStringE(v)
}

// coerceComparable accepts any non-nil value (numbers, strings, Point2D/
// Point3D/LatLon, a caller-defined domain type) and returns it unchanged;
// only nil is rejected.
func coerceComparable(v interface{}) (Comparable, error) {
	if v == nil {
		return nil, fmt.Errorf("nil is not a valid COMPARABLE value")
	}
	return v, nil
}

// coerceExpression accepts an expression descriptor: either already an
// ExpressionDescriptor, or a bare source string.
func coerceExpression(v interface{}) (ExpressionDescriptor, error) {
	switch t := v.(type) {
	case ExpressionDescriptor:
		return t, nil
	case string:
		return ExpressionDescriptor{Source: t}, nil
	default:
		return ExpressionDescriptor{}, fmt.Errorf("cannot convert %v (%T) to EXPRESSION", v, v)
	}
}
