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
	"fmt"
	"math"

	"github.com/ncube-engine/ncube/internal/textdistance"
)

// DistanceFunc returns a non-negative distance between a candidate column
// value and the query value; lower is closer. NEAREST axis lookup picks
// the column minimizing this, breaking ties by lowest column id (§4.2).
type DistanceFunc func(candidate, query Comparable) (float64, error)

// Builtin distance metrics for NEAREST axes (SPEC_FULL §12.3): numeric,
// Levenshtein-ish string, 2-D/3-D Euclidean, and geodesic lat/lon.
var builtinDistance = map[ValueType]DistanceFunc{
	LONG:    numericDistance,
	DOUBLE:  numericDistance,
	STRING:  stringDistance,
	COMPARABLE: geometricDistance,
}

// DistanceFor returns the distance metric registered for valueType, or an
// error if none is registered (callers on COMPARABLE axes holding a
// custom domain type should use RegisterDistance).
func DistanceFor(valueType ValueType) (DistanceFunc, error) {
	if fn, ok := builtinDistance[valueType]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("no NEAREST distance metric registered for %s", valueType)
}

// RegisterDistance installs a custom distance metric, overriding any
// builtin for that value-type. Intended for COMPARABLE axes wrapping a
// caller-defined domain type.
func RegisterDistance(valueType ValueType, fn DistanceFunc) {
	builtinDistance[valueType] = fn
}

func numericDistance(candidate, query Comparable) (float64, error) {
	c, err := coerceDouble(candidate)
	if err != nil {
		return 0, err
	}
	q, err := coerceDouble(query)
	if err != nil {
		return 0, err
	}
	return math.Abs(c - q), nil
}

func stringDistance(candidate, query Comparable) (float64, error) {
	cs, err := coerceString(candidate)
	if err != nil {
		return 0, err
	}
	qs, err := coerceString(query)
	if err != nil {
		return 0, err
	}
	return float64(textdistance.Levenshtein(cs, qs)), nil
}

// geometricDistance dispatches Point2D/Point3D/LatLon (or any type
// implementing Distance(Comparable) (float64, error)) by matching
// concrete types.
func geometricDistance(candidate, query Comparable) (float64, error) {
	switch c := candidate.(type) {
	case Point2D:
		q, ok := query.(Point2D)
		if !ok {
			return 0, fmt.Errorf("query value %v is not a Point2D", query)
		}
		return c.Distance(q), nil
	case Point3D:
		q, ok := query.(Point3D)
		if !ok {
			return 0, fmt.Errorf("query value %v is not a Point3D", query)
		}
		return c.Distance(q), nil
	case LatLon:
		q, ok := query.(LatLon)
		if !ok {
			return 0, fmt.Errorf("query value %v is not a LatLon", query)
		}
		return c.Distance(q), nil
	default:
		type distancer interface{ Distance(Comparable) (float64, error) }
		if d, ok := candidate.(distancer); ok {
			return d.Distance(query)
		}
		return 0, fmt.Errorf("no distance metric for COMPARABLE type %T; call RegisterDistance", candidate)
	}
}
