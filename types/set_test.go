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

func TestParseSetDiscretesAndRanges(t *testing.T) {
	s, err := ParseSet(`OH,TX,[0,10]`, func(v string) (Comparable, error) { return v, nil })
	require.NoError(t, err)
	require.Len(t, s.Discretes, 2)
	require.Len(t, s.Ranges, 1)
}

func TestParseSetRejectsNullMember(t *testing.T) {
	_, err := ParseSet("OH,null", func(v string) (Comparable, error) { return v, nil })
	require.Error(t, err)
}

func TestParseSetRejectsEmpty(t *testing.T) {
	_, err := ParseSet("", func(v string) (Comparable, error) { return v, nil })
	require.Error(t, err)
}

func TestSetEmpty(t *testing.T) {
	var s Set
	require.True(t, s.Empty())
	s.Discretes = append(s.Discretes, "x")
	require.False(t, s.Empty())
}

func TestSetAnyMatch(t *testing.T) {
	cmp := CompareForType(STRING)
	s := Set{Discretes: []Comparable{"OH", "TX"}}
	require.True(t, s.AnyMatch("TX", cmp))
	require.False(t, s.AnyMatch("CA", cmp))
}

func TestSetOverlapsByRangeContainment(t *testing.T) {
	cmp := CompareForType(LONG)
	a := Set{Ranges: []Range{{Low: int64(0), High: int64(10)}}}
	b := Set{Discretes: []Comparable{int64(5)}}
	require.True(t, a.Overlaps(b, cmp))

	c := Set{Discretes: []Comparable{int64(50)}}
	require.False(t, a.Overlaps(c, cmp))
}

func TestParseSetMalformedBracket(t *testing.T) {
	_, err := ParseSet("[0,10", func(v string) (Comparable, error) { return v, nil })
	require.Error(t, err)
}
