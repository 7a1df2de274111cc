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
	"github.com/ncube-engine/ncube/types"
)

// Binding pairs an axis with the column a coordinate resolved to on it.
type Binding struct {
	Axis   *Axis
	Column *Column
}

// Bind computes, for every non-RULE axis in cube, the column the
// coordinate resolves to (§4.4). RULE axes are excluded: they are driven
// by the Rule Engine (§4.6), not by a single coordinate lookup.
//
// Missing keys without a default fail with ErrMissingScope. Values that
// match no column on an axis lacking a default fail with
// ErrCoordinateNotFound (via Axis.FindColumn).
func Bind(axes []*Axis, coord Coordinate) (map[string]*Binding, error) {
	out := make(map[string]*Binding, len(axes))
	for _, axis := range axes {
		if axis.Kind == RULE {
			continue
		}

		v, present := coord.Get(axis.Name())
		if !present {
			if axis.HasDefault() {
				out[axis.Name()] = &Binding{Axis: axis, Column: axis.DefaultColumn()}
				continue
			}
			return nil, ErrMissingScope.New(axis.Name())
		}

		col, err := axis.FindColumn(v)
		if err != nil {
			return nil, err
		}
		out[axis.Name()] = &Binding{Axis: axis, Column: col}
	}
	return out, nil
}

// BindWildcard computes every combination produced by Bind, expanded for
// any DISCRETE axis whose coordinate value is a types.Set: that axis's
// bindings become every matching column (the "wildcard" lookup used by
// getMap(), §4.4). With no Set-valued coordinate entries this returns a
// single-element slice equivalent to Bind.
func BindWildcard(axes []*Axis, coord Coordinate) ([]map[string]*Binding, error) {
	base := make(map[string]*Binding, len(axes))
	wildcards := make(map[string]*wildcardAxis)

	for _, axis := range axes {
		if axis.Kind == RULE {
			continue
		}

		v, present := coord.Get(axis.Name())
		if !present {
			if axis.HasDefault() {
				base[axis.Name()] = &Binding{Axis: axis, Column: axis.DefaultColumn()}
				continue
			}
			return nil, ErrMissingScope.New(axis.Name())
		}

		if axis.Kind == DISCRETE {
			if set, ok := v.(types.Set); ok {
				cols, err := matchingDiscreteColumns(axis, set)
				if err != nil {
					return nil, err
				}
				wildcards[axis.Name()] = &wildcardAxis{axis: axis, columns: cols}
				continue
			}
		}

		col, err := axis.FindColumn(v)
		if err != nil {
			return nil, err
		}
		base[axis.Name()] = &Binding{Axis: axis, Column: col}
	}

	if len(wildcards) == 0 {
		return []map[string]*Binding{base}, nil
	}
	return expandWildcards(base, wildcards), nil
}

type wildcardAxis struct {
	axis    *Axis
	columns []*Column
}

func matchingDiscreteColumns(axis *Axis, set types.Set) ([]*Column, error) {
	cmp := types.CompareForType(axis.ValueType)
	var matched []*Column
	for _, c := range axis.Columns() {
		if c.Default {
			continue
		}
		if set.AnyMatch(c.Value, cmp) {
			matched = append(matched, c)
		}
	}
	if len(matched) == 0 {
		return nil, ErrCoordinateNotFound.New(axis.Name(), set, "")
	}
	return matched, nil
}

// expandWildcards computes the Cartesian product of every wildcard axis's
// matched columns, layered on top of the non-wildcard base bindings.
func expandWildcards(base map[string]*Binding, wildcards map[string]*wildcardAxis) []map[string]*Binding {
	axisNames := make([]string, 0, len(wildcards))
	for name := range wildcards {
		axisNames = append(axisNames, name)
	}

	results := []map[string]*Binding{cloneBindings(base)}
	for _, name := range axisNames {
		wc := wildcards[name]
		var next []map[string]*Binding
		for _, r := range results {
			for _, col := range wc.columns {
				clone := cloneBindings(r)
				clone[name] = &Binding{Axis: wc.axis, Column: col}
				next = append(next, clone)
			}
		}
		results = next
	}
	return results
}

func cloneBindings(m map[string]*Binding) map[string]*Binding {
	out := make(map[string]*Binding, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
