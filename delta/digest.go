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

// Package delta computes a cube's content-addressed identity digest and
// the structural difference between two cubes (§4.7).
package delta

import (
	"crypto/sha1"
	"fmt"
	"hash"
	"sort"
	"strings"

	"github.com/mitchellh/hashstructure"

	"github.com/ncube-engine/ncube"
)

// Digest computes the SHA-1 identity digest of cube: its name,
// case-folded axis names, each axis's kind/value-type/hasDefault/
// columnOrder and columns (in value, display-order, meta-property
// order), its cells keyed by (axis-name -> column-value) pairs with
// column ids excluded, its default cell value, and its meta-properties
// (§4.7). Two cubes with the same digest are content-identical.
func Digest(cube *ncube.Cube) []byte {
	h := sha1.New()
	writeDigest(h, cube)
	return h.Sum(nil)
}

func writeDigest(h hash.Hash, cube *ncube.Cube) {
	fmt.Fprintf(h, "name:%s\n", strings.ToLower(cube.Name))
	writeMeta(h, cube.Meta)

	for _, axis := range cube.Axes() {
		fmt.Fprintf(h, "axis:%s kind:%v type:%v hasDefault:%v order:%v\n",
			strings.ToLower(axis.Name()), axis.Kind, axis.ValueType, axis.HasDefault(), axis.ColumnOrder)
		for _, col := range axis.Columns() {
			fmt.Fprintf(h, "  col:%v display:%d\n", col.Value, col.DisplayOrder)
			writeMeta(h, col.Meta)
		}
	}

	entries := cube.CellEntries()
	sort.Slice(entries, func(i, j int) bool {
		return cellCoordKey(entries[i].Coord) < cellCoordKey(entries[j].Coord)
	})
	for _, e := range entries {
		fmt.Fprintf(h, "cell:%s = %s\n", cellCoordKey(e.Coord), cellValueKey(e.Value))
	}

	fmt.Fprintf(h, "hasDefaultCell:%v defaultCell:%s\n", cube.HasDefaultCell, cellValueKey(cube.DefaultCellVal))
}

func writeMeta(h hash.Hash, meta *ncube.MetaProperties) {
	if meta == nil {
		return
	}
	for _, k := range meta.Keys() {
		v, _ := meta.Get(k)
		fmt.Fprintf(h, "  meta:%s=%v\n", strings.ToLower(k), v)
	}
}

// cellCoordKey renders a CellCoordinate as a canonical, sorted string for
// digesting and for diff ordering.
func cellCoordKey(coord ncube.CellCoordinate) string {
	names := make([]string, 0, len(coord))
	for n := range coord {
		names = append(names, n)
	}
	sort.Strings(names)
	var b strings.Builder
	for i, n := range names {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%s=%v", strings.ToLower(n), coord[n])
	}
	return b.String()
}

func cellValueKey(cell ncube.Cell) string {
	switch cell.Kind {
	case ncube.ScalarCell:
		return fmt.Sprintf("scalar:%v", cell.Scalar)
	case ncube.ExpressionCell:
		return fmt.Sprintf("expr:%s|%s|%v", cell.Source, cell.URL, cell.Cache)
	case ncube.TemplateCell:
		return fmt.Sprintf("template:%s", cell.Source)
	case ncube.MethodCell:
		return fmt.Sprintf("method:%s|%s", cell.Source, cell.Method)
	case ncube.CrossCubeCell:
		return fmt.Sprintf("crosscube:%s|%s", cell.CrossCubeName, cell.CrossCubeCoord.String())
	default:
		return "unknown"
	}
}

// ShapeDigest hashes only cube's dimensional shape -- its axes' names,
// kinds, value-types, hasDefault, columnOrder, and column values -- with
// cell contents excluded. Two cubes with different shape digests can
// never produce compatible change-sets, since a coordinate valid on one
// may not even parse on the other (§4.7).
func ShapeDigest(cube *ncube.Cube) []byte {
	h := sha1.New()
	for _, axis := range cube.Axes() {
		fmt.Fprintf(h, "axis:%s kind:%v type:%v hasDefault:%v order:%v\n",
			strings.ToLower(axis.Name()), axis.Kind, axis.ValueType, axis.HasDefault(), axis.ColumnOrder)
		for _, col := range axis.Columns() {
			fmt.Fprintf(h, "  col:%v\n", col.Value)
		}
	}
	return h.Sum(nil)
}

// QuickEqual is a cheap pre-check ahead of a full Digest comparison: it
// hashes a lightweight structural summary of each cube with
// hashstructure and reports whether they match. A true result does not
// guarantee equality (hashstructure collisions are possible, however
// unlikely); a false result proves inequality without computing the
// full SHA-1 digest.
func QuickEqual(a, b *ncube.Cube) bool {
	ha, err := hashstructure.Hash(summarize(a), nil)
	if err != nil {
		return false
	}
	hb, err := hashstructure.Hash(summarize(b), nil)
	if err != nil {
		return false
	}
	return ha == hb
}

type axisSummary struct {
	Name       string
	Kind       string
	ValueType  string
	HasDefault bool
	NumColumns int
}

type cubeSummary struct {
	Name     string
	Axes     []axisSummary
	NumCells int
}

func summarize(cube *ncube.Cube) cubeSummary {
	s := cubeSummary{Name: strings.ToLower(cube.Name), NumCells: cube.CellCount()}
	for _, a := range cube.Axes() {
		s.Axes = append(s.Axes, axisSummary{
			Name:       strings.ToLower(a.Name()),
			Kind:       a.Kind.String(),
			ValueType:  a.ValueType.String(),
			HasDefault: a.HasDefault(),
			NumColumns: len(a.Columns()),
		})
	}
	return s
}
