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

// ColumnID is a unique 64-bit column identifier. The low 48 bits encode an
// ordinal assigned when the column was created; the upper 16 bits encode
// the owning axis's id (§3 invariant 2).
type ColumnID uint64

const columnOrdinalBits = 48
const columnOrdinalMask = (uint64(1) << columnOrdinalBits) - 1

// NewColumnID packs an axis id and a per-axis ordinal into a ColumnID.
func NewColumnID(axisID uint64, ordinal uint64) ColumnID {
	return ColumnID((axisID << columnOrdinalBits) | (ordinal & columnOrdinalMask))
}

// AxisID extracts the owning axis id from a column id.
func (c ColumnID) AxisID() uint64 { return uint64(c) >> columnOrdinalBits }

// Ordinal extracts the per-axis ordinal from a column id.
func (c ColumnID) Ordinal() uint64 { return uint64(c) & columnOrdinalMask }

// Column is one value (or range/set/condition) along an axis. Its id is
// stable for the axis's lifetime; no id is ever reused (§3 Lifecycle).
type Column struct {
	ID           ColumnID
	Value        types.Comparable // nil for the default column
	DisplayOrder int
	Default      bool
	Meta         *MetaProperties
}

// Name returns the column's "name" meta-property (used by RULE axes to
// match a condition column by name), and whether it was set.
func (c *Column) Name() (string, bool) {
	if c.Meta == nil {
		return "", false
	}
	return c.Meta.GetString("name")
}

// SetName sets the column's "name" meta-property.
func (c *Column) SetName(name string) {
	if c.Meta == nil {
		c.Meta = NewMetaProperties()
	}
	c.Meta.Set("name", name)
}
