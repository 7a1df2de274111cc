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
	"fmt"
	"sort"
	"strings"

	"github.com/ncube-engine/ncube"
)

// MetaChange is one meta-property addition, removal, or value change.
type MetaChange struct {
	Key      string
	Old      interface{} // nil for an addition
	New      interface{} // nil for a removal
	Removed  bool
	Added    bool
}

// AxisChange describes one axis-level property difference between two
// otherwise-identically-named axes.
type AxisChange struct {
	Name string
	Old  ncube.AxisKind
	New  ncube.AxisKind

	OldValueType, NewValueType string
	OldHasDefault, NewHasDefault bool
	OldOrder, NewOrder ncube.ColumnOrder

	Meta []MetaChange
}

// ColumnChange describes one column added, removed, or updated on an
// axis common to both cubes.
type ColumnChange struct {
	AxisName string
	OldValue interface{} // nil for an addition
	NewValue interface{} // nil for a removal
	Added    bool
	Removed  bool
	Meta     []MetaChange
}

// CellChange describes one cell added, removed, or changed, addressed by
// its axis-name-to-column-value coordinate (§4.7).
type CellChange struct {
	Coord    ncube.CellCoordinate
	OldValue *ncube.Cell // nil for an addition
	NewValue *ncube.Cell // nil for a removal
}

// Delta is the full structural difference between two cubes (§4.7).
type Delta struct {
	NameChanged    bool
	OldName        string
	NewName        string
	MetaChanges    []MetaChange
	AxesAdded      []string
	AxesRemoved    []string
	AxisChanges    []AxisChange
	ColumnChanges  []ColumnChange
	CellChanges    []CellChange
}

// IsEmpty reports whether the delta carries no differences at all.
func (d *Delta) IsEmpty() bool {
	return !d.NameChanged &&
		len(d.MetaChanges) == 0 &&
		len(d.AxesAdded) == 0 &&
		len(d.AxesRemoved) == 0 &&
		len(d.AxisChanges) == 0 &&
		len(d.ColumnChanges) == 0 &&
		len(d.CellChanges) == 0
}

func (d *Delta) String() string {
	if d.IsEmpty() {
		return "<no differences>"
	}
	var b strings.Builder
	if d.NameChanged {
		fmt.Fprintf(&b, "name: %q -> %q\n", d.OldName, d.NewName)
	}
	for _, m := range d.MetaChanges {
		fmt.Fprintf(&b, "meta %s: %s\n", m.Key, metaChangeLabel(m))
	}
	for _, n := range d.AxesAdded {
		fmt.Fprintf(&b, "axis added: %s\n", n)
	}
	for _, n := range d.AxesRemoved {
		fmt.Fprintf(&b, "axis removed: %s\n", n)
	}
	for _, a := range d.AxisChanges {
		fmt.Fprintf(&b, "axis %s changed\n", a.Name)
	}
	for _, c := range d.ColumnChanges {
		switch {
		case c.Added:
			fmt.Fprintf(&b, "column added on %s: %v\n", c.AxisName, c.NewValue)
		case c.Removed:
			fmt.Fprintf(&b, "column removed on %s: %v\n", c.AxisName, c.OldValue)
		default:
			fmt.Fprintf(&b, "column updated on %s: %v -> %v\n", c.AxisName, c.OldValue, c.NewValue)
		}
	}
	for _, cc := range d.CellChanges {
		switch {
		case cc.OldValue == nil:
			fmt.Fprintf(&b, "cell added at %s\n", cellCoordKey(cc.Coord))
		case cc.NewValue == nil:
			fmt.Fprintf(&b, "cell removed at %s\n", cellCoordKey(cc.Coord))
		default:
			fmt.Fprintf(&b, "cell changed at %s: %s -> %s\n", cellCoordKey(cc.Coord), cellValueKey(*cc.OldValue), cellValueKey(*cc.NewValue))
		}
	}
	return b.String()
}

func metaChangeLabel(m MetaChange) string {
	switch {
	case m.Added:
		return fmt.Sprintf("added (%v)", m.New)
	case m.Removed:
		return fmt.Sprintf("removed (was %v)", m.Old)
	default:
		return fmt.Sprintf("%v -> %v", m.Old, m.New)
	}
}

// Compute returns the Delta from "from" to "to" (§4.7). It always compares
// both cubes in full; it does not consult QuickEqual.
func Compute(from, to *ncube.Cube) *Delta {
	d := &Delta{OldName: from.Name, NewName: to.Name}
	if !strings.EqualFold(from.Name, to.Name) {
		d.NameChanged = true
	}
	d.MetaChanges = diffMeta(from.Meta, to.Meta)
	diffAxes(from, to, d)
	diffCells(from, to, d)
	return d
}

func diffMeta(a, b *ncube.MetaProperties) []MetaChange {
	var out []MetaChange
	seen := make(map[string]bool)

	for _, k := range a.Keys() {
		seen[strings.ToLower(k)] = true
		av, _ := a.Get(k)
		if bv, ok := b.Get(k); ok {
			if fmt.Sprintf("%v", av) != fmt.Sprintf("%v", bv) {
				out = append(out, MetaChange{Key: k, Old: av, New: bv})
			}
		} else {
			out = append(out, MetaChange{Key: k, Old: av, Removed: true})
		}
	}
	for _, k := range b.Keys() {
		if seen[strings.ToLower(k)] {
			continue
		}
		bv, _ := b.Get(k)
		out = append(out, MetaChange{Key: k, New: bv, Added: true})
	}

	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Key) < strings.ToLower(out[j].Key) })
	return out
}

func diffAxes(from, to *ncube.Cube, d *Delta) {
	toAxes := make(map[string]*ncube.Axis)
	for _, a := range to.Axes() {
		toAxes[strings.ToLower(a.Name())] = a
	}
	fromAxes := make(map[string]*ncube.Axis)
	for _, a := range from.Axes() {
		fromAxes[strings.ToLower(a.Name())] = a
	}

	for _, a := range from.Axes() {
		key := strings.ToLower(a.Name())
		other, ok := toAxes[key]
		if !ok {
			d.AxesRemoved = append(d.AxesRemoved, a.Name())
			continue
		}
		diffOneAxis(a, other, d)
	}
	for _, a := range to.Axes() {
		if _, ok := fromAxes[strings.ToLower(a.Name())]; !ok {
			d.AxesAdded = append(d.AxesAdded, a.Name())
		}
	}
}

func diffOneAxis(from, to *ncube.Axis, d *Delta) {
	if !from.Equal(to) {
		d.AxisChanges = append(d.AxisChanges, AxisChange{
			Name:          from.Name(),
			Old:           from.Kind,
			New:           to.Kind,
			OldValueType:  from.ValueType.String(),
			NewValueType:  to.ValueType.String(),
			OldHasDefault: from.HasDefault(),
			NewHasDefault: to.HasDefault(),
			OldOrder:      from.ColumnOrder,
			NewOrder:      to.ColumnOrder,
			Meta:          diffMeta(from.Meta, to.Meta),
		})
	}

	toCols := make(map[string]*ncube.Column)
	for _, c := range to.Columns() {
		if !c.Default {
			toCols[fmt.Sprintf("%v", c.Value)] = c
		}
	}
	fromCols := make(map[string]*ncube.Column)
	for _, c := range from.Columns() {
		if !c.Default {
			fromCols[fmt.Sprintf("%v", c.Value)] = c
		}
	}

	for key, c := range fromCols {
		other, ok := toCols[key]
		if !ok {
			d.ColumnChanges = append(d.ColumnChanges, ColumnChange{AxisName: from.Name(), OldValue: c.Value, Removed: true})
			continue
		}
		if metaChanges := diffMeta(c.Meta, other.Meta); len(metaChanges) > 0 {
			d.ColumnChanges = append(d.ColumnChanges, ColumnChange{AxisName: from.Name(), OldValue: c.Value, NewValue: other.Value, Meta: metaChanges})
		}
	}
	for key, c := range toCols {
		if _, ok := fromCols[key]; !ok {
			d.ColumnChanges = append(d.ColumnChanges, ColumnChange{AxisName: to.Name(), NewValue: c.Value, Added: true})
		}
	}
}

func diffCells(from, to *ncube.Cube, d *Delta) {
	toCells := make(map[string]ncube.CellEntry)
	for _, e := range to.CellEntries() {
		toCells[cellCoordKey(e.Coord)] = e
	}
	fromCells := make(map[string]ncube.CellEntry)
	for _, e := range from.CellEntries() {
		fromCells[cellCoordKey(e.Coord)] = e
	}

	var keys []string
	for k := range fromCells {
		keys = append(keys, k)
	}
	for k := range toCells {
		if _, ok := fromCells[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		fe, fok := fromCells[k]
		te, tok := toCells[k]
		switch {
		case fok && !tok:
			v := fe.Value
			d.CellChanges = append(d.CellChanges, CellChange{Coord: fe.Coord, OldValue: &v})
		case !fok && tok:
			v := te.Value
			d.CellChanges = append(d.CellChanges, CellChange{Coord: te.Coord, NewValue: &v})
		case fok && tok:
			if cellValueKey(fe.Value) != cellValueKey(te.Value) {
				ov, nv := fe.Value, te.Value
				d.CellChanges = append(d.CellChanges, CellChange{Coord: fe.Coord, OldValue: &ov, NewValue: &nv})
			}
		}
	}
}
