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

package delta

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ncube-engine/ncube"
	"github.com/ncube-engine/ncube/types"
)

func TestComputeNoDifferencesIsEmpty(t *testing.T) {
	a := buildPricingCube(t)
	b := buildPricingCube(t)

	d := Compute(a, b)
	require.True(t, d.IsEmpty())
	require.Equal(t, "<no differences>", d.String())
}

func TestComputeDetectsNameChange(t *testing.T) {
	a := buildPricingCube(t)
	b := buildPricingCube(t)
	b.Name = "Renamed"

	d := Compute(a, b)
	require.True(t, d.NameChanged)
	require.Equal(t, "Pricing", d.OldName)
	require.Equal(t, "Renamed", d.NewName)
}

func TestComputeDetectsMetaChange(t *testing.T) {
	a := buildPricingCube(t)
	b := buildPricingCube(t)
	a.Meta.Set("owner", "team-a")
	b.Meta.Set("owner", "team-b")

	d := Compute(a, b)
	require.Len(t, d.MetaChanges, 1)
	require.Equal(t, "owner", d.MetaChanges[0].Key)
	require.Equal(t, "team-a", d.MetaChanges[0].Old)
	require.Equal(t, "team-b", d.MetaChanges[0].New)
}

func TestComputeDetectsMetaAddedAndRemoved(t *testing.T) {
	a := buildPricingCube(t)
	b := buildPricingCube(t)
	a.Meta.Set("legacy", "yes")
	b.Meta.Set("fresh", "yes")

	d := Compute(a, b)
	require.Len(t, d.MetaChanges, 2)
	byKey := make(map[string]MetaChange)
	for _, m := range d.MetaChanges {
		byKey[m.Key] = m
	}
	require.True(t, byKey["legacy"].Removed)
	require.True(t, byKey["fresh"].Added)
}

func TestComputeDetectsAxisAddedAndRemoved(t *testing.T) {
	a := buildPricingCube(t)
	b := ncube.NewCube("Pricing")
	axis, _, err := b.AddAxis("Region", ncube.DISCRETE, types.STRING, false, ncube.SORTED)
	require.NoError(t, err)
	_, err = axis.AddColumn("Midwest")
	require.NoError(t, err)

	d := Compute(a, b)
	require.Contains(t, d.AxesRemoved, "State")
	require.Contains(t, d.AxesAdded, "Region")
}

func TestComputeDetectsAxisPropertyChange(t *testing.T) {
	a := buildPricingCube(t)
	b := buildPricingCube(t)
	bAxis, _ := b.Axis("State")
	bAxis.ColumnOrder = ncube.DISPLAY

	d := Compute(a, b)
	require.Len(t, d.AxisChanges, 1)
	require.Equal(t, "State", d.AxisChanges[0].Name)
	require.Equal(t, ncube.SORTED, d.AxisChanges[0].OldOrder)
	require.Equal(t, ncube.DISPLAY, d.AxisChanges[0].NewOrder)
}

func TestComputeDetectsColumnAddedAndRemoved(t *testing.T) {
	a := buildPricingCube(t)
	b := buildPricingCube(t)
	bAxis, _ := b.Axis("State")
	_, err := bAxis.AddColumn("TX")
	require.NoError(t, err)

	aAxis, _ := a.Axis("State")
	_, err = aAxis.AddColumn("NY")
	require.NoError(t, err)

	d := Compute(a, b)
	var added, removed bool
	for _, c := range d.ColumnChanges {
		if c.Added && c.NewValue == "TX" {
			added = true
		}
		if c.Removed && c.OldValue == "NY" {
			removed = true
		}
	}
	require.True(t, added)
	require.True(t, removed)
}

func TestComputeDetectsCellAddedRemovedChanged(t *testing.T) {
	a := ncube.NewCube("Pricing")
	axis, _, err := a.AddAxis("State", ncube.DISCRETE, types.STRING, false, ncube.SORTED)
	require.NoError(t, err)
	_, err = axis.AddColumn("OH")
	require.NoError(t, err)
	_, err = axis.AddColumn("NY")
	require.NoError(t, err)
	require.NoError(t, a.SetCell(ncube.NewCoordinate(map[string]interface{}{"State": "OH"}), ncube.NewScalarCell(1)))
	require.NoError(t, a.SetCell(ncube.NewCoordinate(map[string]interface{}{"State": "NY"}), ncube.NewScalarCell(2)))

	b := ncube.NewCube("Pricing")
	bAxis, _, err := b.AddAxis("State", ncube.DISCRETE, types.STRING, false, ncube.SORTED)
	require.NoError(t, err)
	_, err = bAxis.AddColumn("OH")
	require.NoError(t, err)
	_, err = bAxis.AddColumn("TX")
	require.NoError(t, err)
	require.NoError(t, b.SetCell(ncube.NewCoordinate(map[string]interface{}{"State": "OH"}), ncube.NewScalarCell(100)))
	require.NoError(t, b.SetCell(ncube.NewCoordinate(map[string]interface{}{"State": "TX"}), ncube.NewScalarCell(3)))

	d := Compute(a, b)
	require.Len(t, d.CellChanges, 3)

	var changedOH, removedNY, addedTX bool
	for _, cc := range d.CellChanges {
		switch {
		case cc.OldValue != nil && cc.NewValue != nil:
			changedOH = true
		case cc.OldValue != nil && cc.NewValue == nil:
			removedNY = true
		case cc.OldValue == nil && cc.NewValue != nil:
			addedTX = true
		}
	}
	require.True(t, changedOH)
	require.True(t, removedNY)
	require.True(t, addedTX)
}

func TestDeltaStringIncludesEachChangeKind(t *testing.T) {
	a := buildPricingCube(t)
	b := buildPricingCube(t)
	b.Name = "Renamed"
	require.NoError(t, b.SetCell(ncube.NewCoordinate(map[string]interface{}{"State": "OH"}), ncube.NewScalarCell(999)))

	d := Compute(a, b)
	s := d.String()
	require.Contains(t, s, "name:")
	require.Contains(t, s, "cell changed at")
}
