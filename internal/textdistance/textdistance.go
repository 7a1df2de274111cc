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

// Package textdistance provides Levenshtein edit distance and the nearest-
// match search used by NEAREST STRING axes and by the "did you mean"
// diagnostics in package ncube's CoordinateNotFound errors.
package textdistance

// Levenshtein returns the edit distance between a and b: the minimum
// number of single-character insertions, deletions, or substitutions
// needed to turn a into b.
func Levenshtein(a, b string) int {
	ar, br := []rune(a), []rune(b)
	if len(ar) == 0 {
		return len(br)
	}
	if len(br) == 0 {
		return len(ar)
	}

	prev := make([]int, len(br)+1)
	curr := make([]int, len(br)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ar); i++ {
		curr[0] = i
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(br)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// FindNearest returns the candidate in names with the smallest Levenshtein
// distance to target, and that distance. It returns ("", -1) for an empty
// candidate list. Ties are broken by the first candidate encountered, so
// callers iterating a stable-ordered slice get deterministic results.
func FindNearest(names []string, target string) (string, int) {
	if len(names) == 0 {
		return "", -1
	}
	best := names[0]
	bestDist := Levenshtein(best, target)
	for _, n := range names[1:] {
		if d := Levenshtein(n, target); d < bestDist {
			best, bestDist = n, d
		}
	}
	return best, bestDist
}
