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

package ncube

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCellMapSetGetRemove(t *testing.T) {
	m := NewCellMap()
	ids := []ColumnID{NewColumnID(1, 1), NewColumnID(2, 1)}

	m.Set(ids, NewScalarCell("x"))
	cell, ok := m.Get(ids)
	require.True(t, ok)
	require.Equal(t, "x", cell.Scalar)

	require.True(t, m.Remove(ids))
	_, ok = m.Get(ids)
	require.False(t, ok)
}

func TestCellMapKeyIgnoresIDOrder(t *testing.T) {
	m := NewCellMap()
	a, b := NewColumnID(1, 1), NewColumnID(2, 1)

	m.Set([]ColumnID{a, b}, NewScalarCell("x"))
	cell, ok := m.Get([]ColumnID{b, a})
	require.True(t, ok)
	require.Equal(t, "x", cell.Scalar)
}

func TestCellMapRemoveReferencing(t *testing.T) {
	m := NewCellMap()
	a, b := NewColumnID(1, 1), NewColumnID(2, 1)
	m.Set([]ColumnID{a, b}, NewScalarCell("x"))
	m.Set([]ColumnID{a}, NewScalarCell("y"))

	n := m.RemoveReferencing(a)
	require.Equal(t, 2, n)
	require.Equal(t, 0, m.Len())
}
