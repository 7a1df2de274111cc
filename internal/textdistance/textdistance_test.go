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

package textdistance

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevenshtein(t *testing.T) {
	require.Equal(t, 0, Levenshtein("abc", "abc"))
	require.Equal(t, 3, Levenshtein("", "abc"))
	require.Equal(t, 3, Levenshtein("abc", ""))
	require.Equal(t, 1, Levenshtein("kitten", "kitten "))
	require.Equal(t, 3, Levenshtein("kitten", "sitting"))
}

func TestFindNearest(t *testing.T) {
	name, dist := FindNearest(nil, "anything")
	require.Equal(t, "", name)
	require.Equal(t, -1, dist)

	names := []string{"Gender", "Age", "State"}
	name, dist = FindNearest(names, "gneder")
	require.Equal(t, "Gender", name)
	require.True(t, dist > 0)

	name, _ = FindNearest(names, "Age")
	require.Equal(t, "Age", name)
}
