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
	"strings"
	"sync"

	"github.com/ncube-engine/ncube/types"
)

// ApplicationID identifies the tenant/app/version/status/branch a cube
// belongs to (§3). The core treats it as an opaque label; branching and
// tenancy are external collaborators (§1).
type ApplicationID struct {
	Tenant  string
	App     string
	Version string
	Status  string
	Branch  string
}

// Cube is a named container of axes and cells (§3).
type Cube struct {
	mu sync.RWMutex

	Name           string
	AppID          ApplicationID
	DefaultCellVal Cell
	HasDefaultCell bool
	Meta           *MetaProperties

	axes       []*Axis // insertion order; first added is outermost for rule nesting (§4.6)
	axesByName map[string]*Axis
	cells      *CellMap
	nextAxisID uint64

	digestMu    sync.Mutex
	digestCache []byte
	digestDirty bool
}

// NewCube creates an empty cube.
func NewCube(name string) *Cube {
	return &Cube{
		Name:        name,
		Meta:        NewMetaProperties(),
		axesByName:  make(map[string]*Axis),
		cells:       NewCellMap(),
		digestDirty: true,
	}
}

func (c *Cube) invalidateDigest() {
	c.digestMu.Lock()
	c.digestDirty = true
	c.digestMu.Unlock()
}

// Axes returns the cube's axes in the order they were added. The first
// added axis is the outermost loop when more than one is a RULE axis
// (§4.6; see "Open question decisions" in DESIGN.md).
func (c *Cube) Axes() []*Axis {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Axis, len(c.axes))
	copy(out, c.axes)
	return out
}

// Axis looks up an axis by name, case-insensitively.
func (c *Cube) Axis(name string) (*Axis, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.axesByName[strings.ToLower(name)]
	return a, ok
}

// AddAxis appends a new axis. It fails with ErrInvalidArgument if the name
// (case-insensitively) already exists on the cube (§3 invariant 1). The
// second return value reports whether a NEAREST-with-default request was
// silently coerced to no default (§3 invariant 4).
func (c *Cube) AddAxis(name string, kind AxisKind, valueType types.ValueType, hasDefault bool, order ColumnOrder) (*Axis, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lower := strings.ToLower(name)
	if _, exists := c.axesByName[lower]; exists {
		return nil, false, ErrInvalidArgument.New("axis name \"" + name + "\" already exists on cube \"" + c.Name + "\"")
	}

	c.nextAxisID++
	axis, coerced := NewAxis(c.nextAxisID, name, kind, valueType, hasDefault, order)

	c.axes = append(c.axes, axis)
	c.axesByName[lower] = axis
	c.invalidateDigest()

	return axis, coerced, nil
}

// RenameAxis changes an axis's name, failing if newName already exists on
// the cube (case-insensitively), per §4.2.
func (c *Cube) RenameAxis(oldName, newName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	oldLower := strings.ToLower(oldName)
	axis, ok := c.axesByName[oldLower]
	if !ok {
		return ErrInvalidArgument.New("unknown axis \"" + oldName + "\"")
	}

	newLower := strings.ToLower(newName)
	if newLower != oldLower {
		if _, exists := c.axesByName[newLower]; exists {
			return ErrInvalidArgument.New("axis name \"" + newName + "\" already exists on cube \"" + c.Name + "\"")
		}
	}

	axis.renameTo(newName)
	delete(c.axesByName, oldLower)
	c.axesByName[newLower] = axis
	c.invalidateDigest()
	return nil
}

// DeleteAxis removes an axis and every cell that referenced it (§3
// Lifecycle), reporting whether an axis was found.
func (c *Cube) DeleteAxis(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	lower := strings.ToLower(name)
	axis, ok := c.axesByName[lower]
	if !ok {
		return false
	}

	delete(c.axesByName, lower)
	for i, a := range c.axes {
		if a == axis {
			c.axes = append(c.axes[:i], c.axes[i+1:]...)
			break
		}
	}
	c.cells.RemoveAll()
	c.invalidateDigest()
	return true
}

// DeleteColumn removes value from the named axis and clears every cell
// that referenced it (§3 Lifecycle invariant: "deleting a column clears
// all cells referencing it"), reporting the removed column and whether
// anything was found.
func (c *Cube) DeleteColumn(axisName string, value interface{}) (*Column, bool) {
	c.mu.RLock()
	axis, ok := c.axesByName[strings.ToLower(axisName)]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	removed, ok := axis.DeleteColumn(value)
	if !ok {
		return nil, false
	}

	c.cells.RemoveReferencing(removed.ID)
	c.invalidateDigest()
	return removed, true
}

// bindingIDs converts a Bind() result to the id-set CellMap uses,
// omitting axes bound to their default column (§4.3).
func bindingIDs(bindings map[string]*Binding) []ColumnID {
	ids := make([]ColumnID, 0, len(bindings))
	for _, b := range bindings {
		if b.Column != nil && !b.Column.Default {
			ids = append(ids, b.Column.ID)
		}
	}
	return ids
}

// SetCell binds coord against every non-RULE axis and stores value at the
// resulting cell.
func (c *Cube) SetCell(coord Coordinate, value Cell) error {
	c.mu.RLock()
	axes := append([]*Axis(nil), c.axes...)
	c.mu.RUnlock()

	bindings, err := Bind(axes, coord)
	if err != nil {
		return err
	}
	c.cells.Set(bindingIDs(bindings), value)
	c.invalidateDigest()
	return nil
}

// CellCount returns the number of explicitly populated cells.
func (c *Cube) CellCount() int {
	return c.cells.Len()
}

// CellAt returns the cell stored at an explicit column-id set, falling
// back to the cube's default cell value if present. Used by the Rule
// Engine, which resolves RULE-axis columns itself rather than through
// Bind (§4.6).
func (c *Cube) CellAt(ids []ColumnID) (Cell, bool) {
	if cell, ok := c.cells.Get(ids); ok {
		return cell, true
	}
	if c.HasDefaultCell {
		return c.DefaultCellVal, true
	}
	return Cell{}, false
}

// SetCellByIDs stores value directly at an explicit id-set, bypassing
// coordinate binding (used when loading from the wire format, §6, where
// cells may carry an explicit "id" array).
func (c *Cube) SetCellByIDs(ids []ColumnID, value Cell) {
	c.cells.Set(ids, value)
	c.invalidateDigest()
}

// GetCellNoExecute binds coord and returns the stored cell verbatim,
// without dispatching through the Executor. Returns the cube's default
// cell value if no cell is explicitly stored and the cube has one.
func (c *Cube) GetCellNoExecute(coord Coordinate) (Cell, bool, error) {
	c.mu.RLock()
	axes := append([]*Axis(nil), c.axes...)
	c.mu.RUnlock()

	bindings, err := Bind(axes, coord)
	if err != nil {
		return Cell{}, false, err
	}
	cell, ok := c.cells.Get(bindingIDs(bindings))
	if ok {
		return cell, true, nil
	}
	if c.HasDefaultCell {
		return c.DefaultCellVal, true, nil
	}
	return Cell{}, false, nil
}

// ContainsCell reports whether coord has an explicitly stored cell.
// orDefault, when true, also returns true if the coordinate binds cleanly
// and the cube has a default cell value (§4.3).
func (c *Cube) ContainsCell(coord Coordinate, orDefault bool) (bool, error) {
	c.mu.RLock()
	axes := append([]*Axis(nil), c.axes...)
	c.mu.RUnlock()

	bindings, err := Bind(axes, coord)
	if err != nil {
		return false, err
	}
	if _, ok := c.cells.Get(bindingIDs(bindings)); ok {
		return true, nil
	}
	return orDefault && c.HasDefaultCell, nil
}

// RemoveCell deletes the cell bound by coord, reporting whether one was
// present. Absence differs from "resolves to default" (§4.3).
func (c *Cube) RemoveCell(coord Coordinate) (bool, error) {
	c.mu.RLock()
	axes := append([]*Axis(nil), c.axes...)
	c.mu.RUnlock()

	bindings, err := Bind(axes, coord)
	if err != nil {
		return false, err
	}
	removed := c.cells.Remove(bindingIDs(bindings))
	if removed {
		c.invalidateDigest()
	}
	return removed, nil
}

// CellCoordinate is one populated cell's column coordinate: axis name to
// column value (default-bound axes omitted), used by CellsAsCoordinates
// and by delta computation (§4.7).
type CellCoordinate map[string]types.Comparable

// CellsAsCoordinates enumerates every populated cell's column coordinate
// (§4.3).
func (c *Cube) CellsAsCoordinates() []CellCoordinate {
	entries := c.CellEntries()
	out := make([]CellCoordinate, len(entries))
	for i, e := range entries {
		out[i] = e.Coord
	}
	return out
}

// CellEntry pairs one populated cell's column coordinate with its stored
// value, used by delta/identity computation (§4.7).
type CellEntry struct {
	Coord CellCoordinate
	Value Cell
}

// CellEntries enumerates every populated cell's column coordinate
// alongside its stored value.
func (c *Cube) CellEntries() []CellEntry {
	c.mu.RLock()
	byID := make(map[ColumnID]*Binding, 0)
	for _, axis := range c.axes {
		for _, col := range axis.Columns() {
			byID[col.ID] = &Binding{Axis: axis, Column: col}
		}
	}
	c.mu.RUnlock()

	var out []CellEntry
	c.cells.Each(func(ids []ColumnID, value Cell) {
		coord := make(CellCoordinate)
		for _, id := range ids {
			if b, ok := byID[id]; ok {
				coord[b.Axis.Name()] = b.Column.Value
			}
		}
		out = append(out, CellEntry{Coord: coord, Value: value})
	})
	return out
}
