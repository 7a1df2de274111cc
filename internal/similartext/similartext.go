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

// Package similartext builds the "maybe you mean X?" suggestion appended
// to CoordinateNotFound errors when a coordinate value doesn't match any
// known column name. MissingScope errors carry no suggestion.
package similartext

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ncube-engine/ncube/internal/textdistance"
)

// maxSuggestDistance bounds how different a candidate may be from target
// before it's considered too unrelated to suggest.
const maxSuggestDistance = 4

// Find returns ", maybe you mean X?" (or "X or Y?" on ties) for the
// closest names to target, or "" if target is empty or nothing is close
// enough to suggest.
func Find(names []string, target string) string {
	if target == "" || len(names) == 0 {
		return ""
	}

	best := bestMatches(names, target)
	if len(best) == 0 {
		return ""
	}
	return fmt.Sprintf(", maybe you mean %s?", strings.Join(best, " or "))
}

// FindFromMap is Find over a map's keys.
func FindFromMap(names map[string]int, target string) string {
	if len(names) == 0 {
		return ""
	}
	keys := make([]string, 0, len(names))
	for k := range names {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return Find(keys, target)
}

func bestMatches(names []string, target string) []string {
	bestDist := -1
	var best []string
	for _, n := range names {
		d := textdistance.Levenshtein(strings.ToLower(n), strings.ToLower(target))
		switch {
		case bestDist == -1 || d < bestDist:
			bestDist = d
			best = []string{n}
		case d == bestDist:
			best = append(best, n)
		}
	}
	if bestDist > maxSuggestDistance {
		return nil
	}
	return best
}
