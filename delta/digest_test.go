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
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ncube-engine/ncube"
	"github.com/ncube-engine/ncube/types"
)

func buildPricingCube(t *testing.T) *ncube.Cube {
	t.Helper()
	cube := ncube.NewCube("Pricing")
	axis, _, err := cube.AddAxis("State", ncube.DISCRETE, types.STRING, false, ncube.SORTED)
	require.NoError(t, err)
	_, err = axis.AddColumn("OH")
	require.NoError(t, err)
	coord := ncube.NewCoordinate(map[string]interface{}{"State": "OH"})
	require.NoError(t, cube.SetCell(coord, ncube.NewScalarCell(42)))
	return cube
}

func TestDigestDeterministic(t *testing.T) {
	a := buildPricingCube(t)
	b := buildPricingCube(t)
	require.True(t, bytes.Equal(Digest(a), Digest(b)))
}

func TestDigestChangesWhenCellValueChanges(t *testing.T) {
	a := buildPricingCube(t)
	b := buildPricingCube(t)
	coord := ncube.NewCoordinate(map[string]interface{}{"State": "OH"})
	require.NoError(t, b.SetCell(coord, ncube.NewScalarCell(99)))

	require.False(t, bytes.Equal(Digest(a), Digest(b)))
}

func TestDigestIgnoresColumnIDOrdinalDetails(t *testing.T) {
	a := buildPricingCube(t)
	b := ncube.NewCube("Pricing")
	axis, _, err := b.AddAxis("State", ncube.DISCRETE, types.STRING, false, ncube.SORTED)
	require.NoError(t, err)
	_, err = axis.AddColumn("TX") // different ordinal assignment order
	require.NoError(t, err)
	_, ok := axis.DeleteColumn("TX")
	require.True(t, ok)
	_, err = axis.AddColumn("OH")
	require.NoError(t, err)
	coord := ncube.NewCoordinate(map[string]interface{}{"State": "OH"})
	require.NoError(t, b.SetCell(coord, ncube.NewScalarCell(42)))

	require.True(t, bytes.Equal(Digest(a), Digest(b)))
}

func TestShapeDigestExcludesCellValues(t *testing.T) {
	a := buildPricingCube(t)
	b := buildPricingCube(t)
	coord := ncube.NewCoordinate(map[string]interface{}{"State": "OH"})
	require.NoError(t, b.SetCell(coord, ncube.NewScalarCell(999)))

	require.True(t, bytes.Equal(ShapeDigest(a), ShapeDigest(b)))
	require.False(t, bytes.Equal(Digest(a), Digest(b)))
}

func TestShapeDigestDiffersOnDifferentAxisShape(t *testing.T) {
	a := buildPricingCube(t)
	b := ncube.NewCube("Pricing")
	axis, _, err := b.AddAxis("Region", ncube.DISCRETE, types.STRING, false, ncube.SORTED)
	require.NoError(t, err)
	_, err = axis.AddColumn("OH")
	require.NoError(t, err)

	require.False(t, bytes.Equal(ShapeDigest(a), ShapeDigest(b)))
}

func TestQuickEqualTrueForStructurallyIdenticalCubes(t *testing.T) {
	a := buildPricingCube(t)
	b := buildPricingCube(t)
	require.True(t, QuickEqual(a, b))
}

func TestQuickEqualFalseForDifferentColumnCount(t *testing.T) {
	a := buildPricingCube(t)
	b := buildPricingCube(t)
	axis, _ := b.Axis("State")
	_, err := axis.AddColumn("TX")
	require.NoError(t, err)

	require.False(t, QuickEqual(a, b))
}
