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

	"github.com/ncube-engine/ncube"
)

// tombstone marks a coordinate for removal in a ChangeSet.
type tombstone struct{}

// Tombstone is the sentinel ChangeSet entry value meaning "remove the
// cell at this coordinate" rather than "set it to a new value".
var Tombstone interface{} = tombstone{}

// ChangeSet is a proposed set of cell writes, keyed by coordinate (§4.7).
// A value of Tombstone removes the cell; any other value sets it.
type ChangeSet struct {
	CubeName    string
	ShapeDigest []byte // from ShapeDigest(sourceCube); nil skips the shape check
	Entries     map[string]changeEntry
}

type changeEntry struct {
	Coord ncube.Coordinate
	Value interface{}
}

// NewChangeSet returns an empty change-set targeting the named cube,
// recording sourceCube's dimensional shape so a later Merge against a
// change-set from a differently-shaped cube is refused (§4.7).
func NewChangeSet(cubeName string, sourceCube *ncube.Cube) *ChangeSet {
	cs := &ChangeSet{CubeName: cubeName, Entries: make(map[string]changeEntry)}
	if sourceCube != nil {
		cs.ShapeDigest = ShapeDigest(sourceCube)
	}
	return cs
}

// Set records a write (or, with Tombstone, a removal) at coord.
func (cs *ChangeSet) Set(coord ncube.Coordinate, value interface{}) {
	cs.Entries[coord.String()] = changeEntry{Coord: coord, Value: value}
}

// Compatible reports whether cs and other never write different values
// to the same coordinate (§4.7). Two tombstones at the same coordinate
// are compatible; a tombstone and a non-tombstone write are not.
func (cs *ChangeSet) Compatible(other *ChangeSet) bool {
	if cs.ShapeDigest != nil && other.ShapeDigest != nil && !bytes.Equal(cs.ShapeDigest, other.ShapeDigest) {
		return false
	}
	for key, e := range cs.Entries {
		if oe, ok := other.Entries[key]; ok {
			if !valuesEqual(e.Value, oe.Value) {
				return false
			}
		}
	}
	return true
}

func valuesEqual(a, b interface{}) bool {
	_, aTomb := a.(tombstone)
	_, bTomb := b.(tombstone)
	if aTomb || bTomb {
		return aTomb == bTomb
	}
	ac, aok := a.(ncube.Cell)
	bc, bok := b.(ncube.Cell)
	if aok && bok {
		return cellValueKey(ac) == cellValueKey(bc)
	}
	return a == b
}

// Merge applies every entry of both change-sets to cube, in this
// change-set's entries first, then other's, honoring tombstones.
// IncompatibleMerge is returned if the two change-sets disagree on any
// coordinate, or target cubes with different dimensions (§4.7,
// mergeCellChangeSet).
func (cs *ChangeSet) Merge(other *ChangeSet, cube *ncube.Cube) error {
	if !cs.Compatible(other) {
		return ncube.ErrIncompatibleMerge.New("change-sets disagree on the value written to the same coordinate")
	}

	apply := func(e changeEntry) error {
		if _, ok := e.Value.(tombstone); ok {
			_, err := cube.RemoveCell(e.Coord)
			return err
		}
		cell, ok := e.Value.(ncube.Cell)
		if !ok {
			cell = ncube.NewScalarCell(e.Value)
		}
		return cube.SetCell(e.Coord, cell)
	}

	for _, e := range cs.Entries {
		if err := apply(e); err != nil {
			return err
		}
	}
	for _, e := range other.Entries {
		if err := apply(e); err != nil {
			return err
		}
	}
	return nil
}
