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

func TestDistanceForNumeric(t *testing.T) {
	fn, err := DistanceFor(LONG)
	require.NoError(t, err)
	d, err := fn(int64(10), int64(4))
	require.NoError(t, err)
	require.Equal(t, 6.0, d)
}

func TestDistanceForStringUsesLevenshtein(t *testing.T) {
	fn, err := DistanceFor(STRING)
	require.NoError(t, err)
	d, err := fn("kitten", "sitting")
	require.NoError(t, err)
	require.Equal(t, 3.0, d)
}

func TestDistanceForComparableGeometric(t *testing.T) {
	fn, err := DistanceFor(COMPARABLE)
	require.NoError(t, err)
	d, err := fn(Point2D{X: 0, Y: 0}, Point2D{X: 3, Y: 4})
	require.NoError(t, err)
	require.Equal(t, 5.0, d)
}

func TestDistanceForUnregisteredType(t *testing.T) {
	_, err := DistanceFor(DATE)
	require.Error(t, err)
}

func TestGeometricDistanceMismatchedTypes(t *testing.T) {
	fn, _ := DistanceFor(COMPARABLE)
	_, err := fn(Point2D{X: 0, Y: 0}, LatLon{Lat: 1, Lon: 1})
	require.Error(t, err)
}

func TestRegisterDistanceOverridesBuiltin(t *testing.T) {
	defer RegisterDistance(DOUBLE, numericDistance)

	RegisterDistance(DOUBLE, func(candidate, query Comparable) (float64, error) {
		return 42, nil
	})
	fn, err := DistanceFor(DOUBLE)
	require.NoError(t, err)
	d, err := fn(1.0, 2.0)
	require.NoError(t, err)
	require.Equal(t, 42.0, d)
}
