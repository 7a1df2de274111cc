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
	"sort"
	"strconv"
	"strings"
	"sync"
)

// CellMap is the mapping from a column-id set (one id per non-default
// axis that binds) to a cell value (§4.3). Case-insensitivity lives at
// the coordinate/axis-name level (§3 invariant 7); CellMap itself keys
// purely by column id and is therefore stable over axis/column renames.
type CellMap struct {
	mu    sync.RWMutex
	cells map[string]storedCell
}

type storedCell struct {
	ids   []ColumnID // sorted, default-bound axes omitted
	value Cell
}

// NewCellMap returns an empty cell map.
func NewCellMap() *CellMap {
	return &CellMap{cells: make(map[string]storedCell)}
}

// idSetKey returns a canonical map key for a set of column ids: sorted,
// then joined, so insertion order of the id slice never matters.
func idSetKey(ids []ColumnID) string {
	sorted := make([]ColumnID, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var b strings.Builder
	for i, id := range sorted {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	return b.String()
}

// Set stores value at the cell identified by ids. Axes bound to their
// default column must be omitted from ids by the caller (Cube.SetCell),
// per §4.3.
func (m *CellMap) Set(ids []ColumnID, value Cell) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cells[idSetKey(ids)] = storedCell{ids: append([]ColumnID(nil), ids...), value: value}
}

// Get returns the cell stored at ids, and whether it was present.
func (m *CellMap) Get(ids []ColumnID) (Cell, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sc, ok := m.cells[idSetKey(ids)]
	return sc.value, ok
}

// Remove deletes the cell at ids, reporting whether anything was removed.
// Absence differs from "resolves to default" (§4.3).
func (m *CellMap) Remove(ids []ColumnID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := idSetKey(ids)
	if _, ok := m.cells[key]; !ok {
		return false
	}
	delete(m.cells, key)
	return true
}

// RemoveReferencing deletes every cell whose id-set includes id (used
// when a column is deleted, §3 Lifecycle: "deleting a column clears all
// cells referencing it").
func (m *CellMap) RemoveReferencing(id ColumnID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for key, sc := range m.cells {
		for _, cid := range sc.ids {
			if cid == id {
				delete(m.cells, key)
				n++
				break
			}
		}
	}
	return n
}

// RemoveAll clears every cell (used when an axis is deleted).
func (m *CellMap) RemoveAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cells = make(map[string]storedCell)
}

// Len returns the number of explicitly populated cells.
func (m *CellMap) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.cells)
}

// Each calls fn for every populated cell's id-set and value, in no
// particular order.
func (m *CellMap) Each(fn func(ids []ColumnID, value Cell)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, sc := range m.cells {
		fn(sc.ids, sc.value)
	}
}
