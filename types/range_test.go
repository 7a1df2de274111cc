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
	"testing"

	"github.com/stretchr/testify/require"
)

func longPromote(s string) (Comparable, error) { return coerceLong(s) }

func TestRangeContainsHalfOpen(t *testing.T) {
	r := Range{Low: int64(0), High: int64(10)}
	cmp := CompareForType(LONG)

	require.True(t, r.Contains(int64(0), cmp))
	require.True(t, r.Contains(int64(9), cmp))
	require.False(t, r.Contains(int64(10), cmp))
}

func TestRangeOverlaps(t *testing.T) {
	cmp := CompareForType(LONG)
	a := Range{Low: int64(0), High: int64(10)}
	b := Range{Low: int64(5), High: int64(15)}
	c := Range{Low: int64(10), High: int64(20)}

	require.True(t, a.Overlaps(b, cmp))
	require.False(t, a.Overlaps(c, cmp))
}

func TestParseRangeBracketed(t *testing.T) {
	r, err := ParseRange("[0, 10]", longPromote)
	require.NoError(t, err)
	require.Equal(t, int64(0), r.Low)
	require.Equal(t, int64(10), r.High)
}

func TestParseRangeRejectsWrongArity(t *testing.T) {
	_, err := ParseRange("0,10,20", longPromote)
	require.Error(t, err)
}

func TestParseRangeQuotedStringBounds(t *testing.T) {
	r, err := ParseRange(`"a","z"`, func(s string) (Comparable, error) { return s, nil })
	require.NoError(t, err)
	require.Equal(t, "a", r.Low)
	require.Equal(t, "z", r.High)
}
