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
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CompareForType returns the CompareFunc appropriate for a value-type's
// canonical representation, used for sorted column insertion and
// RANGE/SET overlap detection.
func CompareForType(valueType ValueType) CompareFunc {
	switch valueType {
	case LONG:
		return func(a, b Comparable) int {
			x, y := a.(int64), b.(int64)
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			default:
				return 0
			}
		}
	case BIG_DECIMAL:
		return func(a, b Comparable) int {
			return a.(decimal.Decimal).Cmp(b.(decimal.Decimal))
		}
	case DOUBLE:
		return func(a, b Comparable) int {
			x, y := a.(float64), b.(float64)
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			default:
				return 0
			}
		}
	case DATE:
		return func(a, b Comparable) int {
			x, y := a.(time.Time), b.(time.Time)
			switch {
			case x.Before(y):
				return -1
			case x.After(y):
				return 1
			default:
				return 0
			}
		}
	case STRING:
		return func(a, b Comparable) int {
			return strings.Compare(a.(string), b.(string))
		}
	default:
		return genericCompare
	}
}

// genericCompare handles COMPARABLE columns whose underlying type
// implements a Less(Comparable) bool method, or else falls back to
// formatted-string comparison so ordering is at least deterministic.
func genericCompare(a, b Comparable) int {
	type lesser interface{ Less(Comparable) bool }
	if la, ok := a.(lesser); ok {
		if la.Less(b) {
			return -1
		}
		if lb, ok := b.(lesser); ok && lb.Less(a) {
			return 1
		}
		return 0
	}
	as, bs := fmt.Sprintf("%v", a), fmt.Sprintf("%v", b)
	return strings.Compare(as, bs)
}
