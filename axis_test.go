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

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/ncube-engine/ncube/metrics"
	"github.com/ncube-engine/ncube/types"
)

func counterValue(t *testing.T, c interface {
	Write(*dto.Metric) error
}) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, c.Write(m))
	return m.GetCounter().GetValue()
}

func TestAxisDiscreteAddAndFind(t *testing.T) {
	axis, coerced := NewAxis(1, "State", DISCRETE, types.STRING, false, SORTED)
	require.False(t, coerced)

	_, err := axis.AddColumn("OH")
	require.NoError(t, err)
	_, err = axis.AddColumn("TX")
	require.NoError(t, err)

	col, err := axis.FindColumn("TX")
	require.NoError(t, err)
	require.Equal(t, "TX", col.Value)

	_, err = axis.FindColumn("CA")
	require.Error(t, err)
}

func TestAxisDiscreteRejectsDuplicate(t *testing.T) {
	axis, _ := NewAxis(1, "State", DISCRETE, types.STRING, false, SORTED)
	_, err := axis.AddColumn("OH")
	require.NoError(t, err)
	_, err = axis.AddColumn("OH")
	require.Error(t, err)
}

func TestAxisRangeOverlapRejected(t *testing.T) {
	axis, _ := NewAxis(1, "Age", RANGE, types.LONG, false, SORTED)
	_, err := axis.AddColumn([2]interface{}{0, 18})
	require.NoError(t, err)

	before := counterValue(t, metrics.AxisOverlapRejections)
	_, err = axis.AddColumn([2]interface{}{10, 25})
	require.Error(t, err)
	require.Equal(t, before+1, counterValue(t, metrics.AxisOverlapRejections))

	_, err = axis.AddColumn([2]interface{}{18, 30})
	require.NoError(t, err)
}

func TestAxisRangeContainsHalfOpen(t *testing.T) {
	axis, _ := NewAxis(1, "Age", RANGE, types.LONG, false, SORTED)
	_, err := axis.AddColumn([2]interface{}{0, 18})
	require.NoError(t, err)

	col, err := axis.FindColumn(17)
	require.NoError(t, err)
	require.NotNil(t, col)

	_, err = axis.FindColumn(18)
	require.Error(t, err)
}

func TestAxisNearestCoercesAwayDefault(t *testing.T) {
	axis, coerced := NewAxis(1, "Dist", NEAREST, types.DOUBLE, true, SORTED)
	require.True(t, coerced)
	require.False(t, axis.HasDefault())
}

func TestAxisNearestPicksClosestBreakingTiesByID(t *testing.T) {
	axis, _ := NewAxis(1, "Dist", NEAREST, types.LONG, false, SORTED)
	c1, err := axis.AddColumn(10)
	require.NoError(t, err)
	c2, err := axis.AddColumn(20)
	require.NoError(t, err)

	col, err := axis.FindColumn(15)
	require.NoError(t, err)
	require.Equal(t, c1.ID, col.ID) // tie broken toward the lower id

	col, err = axis.FindColumn(19)
	require.NoError(t, err)
	require.Equal(t, c2.ID, col.ID)
}

func TestAxisDefaultColumnSortsLast(t *testing.T) {
	axis, _ := NewAxis(1, "State", DISCRETE, types.STRING, true, SORTED)
	_, err := axis.AddColumn("OH")
	require.NoError(t, err)

	cols := axis.Columns()
	require.Len(t, cols, 2)
	require.True(t, cols[len(cols)-1].Default)
}

func TestAxisDeleteColumn(t *testing.T) {
	axis, _ := NewAxis(1, "State", DISCRETE, types.STRING, false, SORTED)
	col, err := axis.AddColumn("OH")
	require.NoError(t, err)

	removed, ok := axis.DeleteColumn(col.ID)
	require.True(t, ok)
	require.Equal(t, col.ID, removed.ID)

	_, ok = axis.ColumnByID(col.ID)
	require.False(t, ok)
}

func TestAxisEqualIgnoresMeta(t *testing.T) {
	a, _ := NewAxis(1, "State", DISCRETE, types.STRING, false, SORTED)
	b, _ := NewAxis(2, "state", DISCRETE, types.STRING, false, SORTED)
	b.Meta.Set("description", "US states")
	require.True(t, a.Equal(b))
}
