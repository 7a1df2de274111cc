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
)

// Range is a half-open interval [Low, High) used by RANGE axis columns.
// Low must be strictly less than High (§3 invariant 3 requires no
// zero-width or inverted ranges).
type Range struct {
	Low, High Comparable
}

// Comparable is any value type an axis can hold: the promoted
// representations produced by the coercion functions in this package.
type Comparable interface{}

// Contains reports whether v falls in [Low, High).
func (r Range) Contains(v Comparable, cmp CompareFunc) bool {
	return cmp(v, r.Low) >= 0 && cmp(v, r.High) < 0
}

// Overlaps reports whether two ranges share any point.
func (r Range) Overlaps(o Range, cmp CompareFunc) bool {
	return cmp(r.Low, o.High) < 0 && cmp(o.Low, r.High) < 0
}

func (r Range) String() string {
	return fmt.Sprintf("[%v, %v)", r.Low, r.High)
}

// CompareFunc orders two promoted values of the same ValueType. Negative
// means a < b, zero means equal, positive means a > b.
type CompareFunc func(a, b Comparable) int

// ParseRange parses the textual column spec "lo,hi" or "[lo,hi]",
// whitespace-tolerant, with quoted strings respected (§4.1). promote
// converts each half to the axis's value-type.
func ParseRange(s string, promote func(string) (Comparable, error)) (Range, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")

	parts, err := splitQuoted(s, ',')
	if err != nil {
		return Range{}, err
	}
	if len(parts) != 2 {
		return Range{}, fmt.Errorf("range %q must have exactly two comma-separated bounds", s)
	}

	low, err := promote(strings.TrimSpace(parts[0]))
	if err != nil {
		return Range{}, fmt.Errorf("range low bound: %w", err)
	}
	high, err := promote(strings.TrimSpace(parts[1]))
	if err != nil {
		return Range{}, fmt.Errorf("range high bound: %w", err)
	}

	return Range{Low: low, High: high}, nil
}

// splitQuoted splits s on sep, treating double-quoted substrings as atomic.
func splitQuoted(s string, sep rune) ([]string, error) {
	var parts []string
	var cur strings.Builder
	inQuotes := false

	for _, r := range s {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == sep && !inQuotes:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if inQuotes {
		return nil, fmt.Errorf("unterminated quote in %q", s)
	}
	parts = append(parts, cur.String())
	return parts, nil
}
