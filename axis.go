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
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ncube-engine/ncube/internal/similartext"
	"github.com/ncube-engine/ncube/metrics"
	"github.com/ncube-engine/ncube/types"
)

// AxisKind is one of the five dimension kinds an axis can be (§3).
type AxisKind int

const (
	DISCRETE AxisKind = iota
	RANGE
	SET
	NEAREST
	RULE
)

func (k AxisKind) String() string {
	switch k {
	case DISCRETE:
		return "DISCRETE"
	case RANGE:
		return "RANGE"
	case SET:
		return "SET"
	case NEAREST:
		return "NEAREST"
	case RULE:
		return "RULE"
	default:
		return "UNKNOWN"
	}
}

// ColumnOrder controls iteration/display order of non-default columns.
type ColumnOrder int

const (
	// SORTED keeps columns ordered by value, per the axis's CompareFunc.
	SORTED ColumnOrder = iota
	// DISPLAY preserves insertion order.
	DISPLAY
)

// Axis is one dimension of a cube: a kind, a value-type, and an ordered
// list of columns, plus the default column if any (§3).
type Axis struct {
	mu sync.RWMutex

	ID          uint64
	name        string
	Kind        AxisKind
	ValueType   types.ValueType
	ColumnOrder ColumnOrder
	FireAll     bool // RULE axes only
	Meta        *MetaProperties

	columns      []*Column // non-default, in ColumnOrder
	byID         map[ColumnID]*Column
	defaultCol   *Column
	nextOrdinal  uint64
	cmp          types.CompareFunc
	coerced      bool // not read; cmp is set by NewAxis
}

// NewAxis constructs an axis. A NEAREST axis constructed with
// hasDefault=true is silently coerced to no default (§3 invariant 4); the
// second return value reports whether that coercion happened.
func NewAxis(id uint64, name string, kind AxisKind, valueType types.ValueType, hasDefault bool, order ColumnOrder) (*Axis, bool) {
	coerced := false
	if kind == NEAREST && hasDefault {
		hasDefault = false
		coerced = true
	}

	a := &Axis{
		ID:          id,
		name:        name,
		Kind:        kind,
		ValueType:   valueType,
		ColumnOrder: order,
		Meta:        NewMetaProperties(),
		byID:        make(map[ColumnID]*Column),
		cmp:         types.CompareForType(valueType),
	}

	if hasDefault {
		a.defaultCol = &Column{
			ID:      NewColumnID(id, 0),
			Default: true,
			Meta:    NewMetaProperties(),
		}
		a.byID[a.defaultCol.ID] = a.defaultCol
		a.nextOrdinal = 1
	}

	return a, coerced
}

// Name returns the axis name.
func (a *Axis) Name() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.name
}

// HasDefault reports whether the axis carries a default column.
func (a *Axis) HasDefault() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.defaultCol != nil
}

// DefaultColumn returns the axis's default column, or nil.
func (a *Axis) DefaultColumn() *Column {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.defaultCol
}

// RenameAxis changes the axis's name. The cube-level uniqueness check
// (§4.2, "fails if target name already exists on the cube") is performed
// by Cube.RenameAxis, which holds the cube-wide lock; this method assumes
// that check already passed.
func (a *Axis) renameTo(newName string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.name = newName
}

// Columns returns the non-default columns in iteration order, followed by
// the default column if present (§3 invariant 5: "the default column, if
// present, always sorts last").
func (a *Axis) Columns() []*Column {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]*Column, len(a.columns), len(a.columns)+1)
	copy(out, a.columns)
	if a.defaultCol != nil {
		out = append(out, a.defaultCol)
	}
	return out
}

// AddColumn normalizes value via package types, checks for duplicates
// (DISCRETE) or overlap (RANGE/SET), assigns the next id, and inserts in
// sorted (SORTED) or appended (DISPLAY) position.
func (a *Axis) AddColumn(value interface{}) (*Column, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.addColumnLocked(value, nil)
}

func (a *Axis) addColumnLocked(value interface{}, forceID *ColumnID) (*Column, error) {
	normalized, err := a.normalizeColumnValue(value)
	if err != nil {
		return nil, err
	}

	if err := a.checkOverlapLocked(normalized, nil); err != nil {
		return nil, err
	}

	var id ColumnID
	if forceID != nil {
		id = *forceID
	} else {
		id = NewColumnID(a.ID, a.nextOrdinal)
		a.nextOrdinal++
	}

	col := &Column{ID: id, Value: normalized, Meta: NewMetaProperties()}
	a.insertLocked(col)
	return col, nil
}

// normalizeColumnValue promotes a raw column spec to the representation
// appropriate for the axis's Kind and ValueType.
func (a *Axis) normalizeColumnValue(value interface{}) (types.Comparable, error) {
	promote := func(s string) (types.Comparable, error) { return types.Coerce(s, a.ValueType) }

	switch a.Kind {
	case DISCRETE:
		if s, ok := value.(string); ok && a.ValueType != types.STRING {
			return types.Coerce(s, a.ValueType)
		}
		return types.Coerce(value, a.ValueType)

	case RANGE:
		switch v := value.(type) {
		case types.Range:
			return v, nil
		case string:
			return types.ParseRange(v, promote)
		case [2]interface{}:
			lo, err := types.Coerce(v[0], a.ValueType)
			if err != nil {
				return nil, err
			}
			hi, err := types.Coerce(v[1], a.ValueType)
			if err != nil {
				return nil, err
			}
			return mkRange(lo, hi)
		default:
			return nil, ErrUnsupported.New(value, a.name, "RANGE axes require a [low, high) pair")
		}

	case SET:
		switch v := value.(type) {
		case types.Set:
			return v, nil
		case string:
			return types.ParseSet(v, promote)
		default:
			return nil, ErrUnsupported.New(value, a.name, "SET axes require a collection of discretes/ranges")
		}

	case NEAREST:
		return types.Coerce(value, a.ValueType)

	case RULE:
		return types.Coerce(value, types.EXPRESSION)

	default:
		return nil, fmt.Errorf("unknown axis kind %v", a.Kind)
	}
}

func mkRange(lo, hi types.Comparable) (types.Range, error) {
	return types.Range{Low: lo, High: hi}, nil
}

// checkOverlapLocked enforces §3 invariant 3 (no two non-default RANGE/SET
// columns may overlap) and DISCRETE duplicate rejection. excludeID lets
// UpdateColumns re-check overlap while ignoring the column being replaced.
func (a *Axis) checkOverlapLocked(value types.Comparable, excludeID *ColumnID) error {
	switch a.Kind {
	case DISCRETE, NEAREST:
		if a.Kind == NEAREST {
			return nil // NEAREST never rejects on overlap; it's a proximity axis.
		}
		for _, c := range a.columns {
			if excludeID != nil && c.ID == *excludeID {
				continue
			}
			if a.cmp(c.Value, value) == 0 {
				metrics.AxisOverlapRejections.Inc()
				return ErrAxisOverlap.New(value, a.name)
			}
		}
		return nil

	case RANGE:
		rv, ok := value.(types.Range)
		if !ok {
			return ErrUnsupported.New(value, a.name, "RANGE axis")
		}
		if a.cmp(rv.Low, rv.High) >= 0 {
			return fmt.Errorf("range %v: low must be strictly less than high", rv)
		}
		for _, c := range a.columns {
			if excludeID != nil && c.ID == *excludeID {
				continue
			}
			if cv, ok := c.Value.(types.Range); ok && cv.Overlaps(rv, a.cmp) {
				metrics.AxisOverlapRejections.Inc()
				return ErrAxisOverlap.New(value, a.name)
			}
		}
		return nil

	case SET:
		sv, ok := value.(types.Set)
		if !ok {
			return ErrUnsupported.New(value, a.name, "SET axis")
		}
		if sv.Empty() {
			return fmt.Errorf("set column must have at least one member")
		}
		for _, r := range sv.Ranges {
			if a.cmp(r.Low, r.High) >= 0 {
				return fmt.Errorf("set member range %v: low must be strictly less than high", r)
			}
		}
		for _, c := range a.columns {
			if excludeID != nil && c.ID == *excludeID {
				continue
			}
			if cv, ok := c.Value.(types.Set); ok && cv.Overlaps(sv, a.cmp) {
				metrics.AxisOverlapRejections.Inc()
				return ErrAxisOverlap.New(value, a.name)
			}
		}
		return nil

	default:
		return nil
	}
}

// insertLocked places col in sorted position (SORTED) or at the end
// (DISPLAY), and registers it by id.
func (a *Axis) insertLocked(col *Column) {
	a.byID[col.ID] = col

	if a.ColumnOrder == DISPLAY || a.Kind == RULE || a.Kind == NEAREST {
		col.DisplayOrder = len(a.columns)
		a.columns = append(a.columns, col)
		return
	}

	sortKey := sortValue(col.Value)
	idx := sort.Search(len(a.columns), func(i int) bool {
		return a.cmp(sortValue(a.columns[i].Value), sortKey) >= 0
	})
	a.columns = append(a.columns, nil)
	copy(a.columns[idx+1:], a.columns[idx:])
	a.columns[idx] = col
	for i, c := range a.columns {
		c.DisplayOrder = i
	}
}

// sortValue picks the value used to order RANGE/SET columns: a range
// sorts by its low bound, a set by its lowest discrete/range-low.
func sortValue(v types.Comparable) types.Comparable {
	switch t := v.(type) {
	case types.Range:
		return t.Low
	case types.Set:
		if len(t.Ranges) > 0 {
			return t.Ranges[0].Low
		}
		if len(t.Discretes) > 0 {
			return t.Discretes[0]
		}
	}
	return v
}

// FindColumn normalizes input and locates the matching column per the
// axis's kind, falling back to the default if present (§4.2).
func (a *Axis) FindColumn(input interface{}) (*Column, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	switch a.Kind {
	case RULE:
		return a.findRuleColumnLocked(input)
	case NEAREST:
		return a.findNearestColumnLocked(input)
	}

	value, err := types.Coerce(input, a.ValueType)
	if err != nil {
		return nil, ErrConversionFailed.New(input, a.ValueType, err.Error())
	}

	for _, c := range a.columns {
		switch a.Kind {
		case DISCRETE:
			if a.cmp(c.Value, value) == 0 {
				return c, nil
			}
		case RANGE:
			if c.Value.(types.Range).Contains(value, a.cmp) {
				return c, nil
			}
		case SET:
			if c.Value.(types.Set).AnyMatch(value, a.cmp) {
				return c, nil
			}
		}
	}

	if a.defaultCol != nil {
		return a.defaultCol, nil
	}
	return nil, a.notFoundLocked(input)
}

func (a *Axis) notFoundLocked(input interface{}) error {
	names := make([]string, 0, len(a.columns))
	for _, c := range a.columns {
		names = append(names, fmt.Sprintf("%v", c.Value))
	}
	suggestion := similartext.Find(names, fmt.Sprintf("%v", input))
	return ErrCoordinateNotFound.New(a.name, input, suggestion)
}

// findRuleColumnLocked matches a RULE axis column by its "name"
// meta-property, case-insensitively (§4.2).
func (a *Axis) findRuleColumnLocked(input interface{}) (*Column, error) {
	target, err := types.Coerce(input, types.STRING)
	if err != nil {
		return nil, ErrConversionFailed.New(input, "STRING", err.Error())
	}
	ts := strings.ToLower(target.(string))
	for _, c := range a.columns {
		if name, ok := c.Name(); ok && strings.ToLower(name) == ts {
			return c, nil
		}
	}
	if a.defaultCol != nil {
		return a.defaultCol, nil
	}
	return nil, fmt.Errorf("rule axis %q has no condition column named %q", a.name, target)
}

// findNearestColumnLocked picks the column minimizing the distance metric
// to input, breaking ties by lowest column id (§4.2, §8 property 2).
func (a *Axis) findNearestColumnLocked(input interface{}) (*Column, error) {
	if len(a.columns) == 0 {
		return nil, ErrCoordinateNotFound.New(a.name, input, "")
	}

	distFn, err := types.DistanceFor(a.ValueType)
	if err != nil {
		return nil, err
	}

	query, err := types.Coerce(input, a.ValueType)
	if err != nil {
		return nil, ErrConversionFailed.New(input, a.ValueType, err.Error())
	}

	var best *Column
	var bestDist float64
	for _, c := range a.columns {
		d, err := distFn(c.Value, query)
		if err != nil {
			return nil, err
		}
		if best == nil || d < bestDist || (d == bestDist && c.ID < best.ID) {
			best, bestDist = c, d
		}
	}
	return best, nil
}

// DeleteColumn removes the column matching value (or, if value is a
// ColumnID, by id), reporting whether anything was removed. The caller
// (Cube) is responsible for clearing cells that referenced it.
func (a *Axis) DeleteColumn(value interface{}) (*Column, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var target *Column
	if id, ok := value.(ColumnID); ok {
		target = a.byID[id]
	} else {
		norm, err := a.normalizeColumnValue(value)
		if err == nil {
			for _, c := range a.columns {
				if a.cmp(c.Value, norm) == 0 {
					target = c
					break
				}
			}
		}
	}
	if target == nil || target.Default {
		return nil, false
	}

	for i, c := range a.columns {
		if c.ID == target.ID {
			a.columns = append(a.columns[:i], a.columns[i+1:]...)
			break
		}
	}
	delete(a.byID, target.ID)
	for i, c := range a.columns {
		c.DisplayOrder = i
	}
	return target, true
}

// ColumnByID returns the column with the given id, if present.
func (a *Axis) ColumnByID(id ColumnID) (*Column, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	c, ok := a.byID[id]
	return c, ok
}

// UpdateColumns reconciles this axis with a proposed set of column specs
// of the same name/kind/value-type (§4.2): columns with a negative
// ordinal-like marker are additions (callers pass them via
// proposed.Additions), ids present in both are updates, ids omitted from
// proposed are deletions. Overlap is re-checked after applying.
func (a *Axis) UpdateColumns(proposed ProposedColumns) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	keep := make(map[ColumnID]bool, len(proposed.Updates))
	for id, spec := range proposed.Updates {
		col, ok := a.byID[id]
		if !ok || col.Default {
			return ErrInvalidArgument.New(fmt.Sprintf("unknown column id %v on axis %q", id, a.name))
		}
		keep[id] = true

		norm, err := a.normalizeColumnValue(spec.Value)
		if err != nil {
			return err
		}
		col.Value = norm
		if spec.Meta != nil {
			col.Meta = spec.Meta
		}
	}

	// Deletions: any existing non-default column not named in Updates and
	// not in Additions is removed.
	var survivors []*Column
	for _, c := range a.columns {
		if keep[c.ID] {
			survivors = append(survivors, c)
			continue
		}
		delete(a.byID, c.ID)
	}
	a.columns = survivors

	for _, c := range a.columns {
		id := c.ID
		if err := a.checkOverlapLocked(c.Value, &id); err != nil {
			return err
		}
	}

	for _, spec := range proposed.Additions {
		if _, err := a.addColumnLocked(spec.Value, nil); err != nil {
			return err
		}
	}

	for i, c := range a.columns {
		c.DisplayOrder = i
	}
	return nil
}

// ColumnSpec is one column's proposed value/meta, used by UpdateColumns.
type ColumnSpec struct {
	Value interface{}
	Meta  *MetaProperties
}

// ProposedColumns is the reconciliation input for UpdateColumns: ids
// present in Updates are kept (with new value/meta), ids existing but
// absent from Updates are deleted, and Additions are appended.
type ProposedColumns struct {
	Updates   map[ColumnID]ColumnSpec
	Additions []ColumnSpec
}

// Equal reports axis-property equality (§4.2): name, kind, value-type,
// hasDefault, and columnOrder, excluding meta-properties.
func (a *Axis) Equal(o *Axis) bool {
	a.mu.RLock()
	o.mu.RLock()
	defer a.mu.RUnlock()
	defer o.mu.RUnlock()

	return strings.EqualFold(a.name, o.name) &&
		a.Kind == o.Kind &&
		a.ValueType == o.ValueType &&
		(a.defaultCol != nil) == (o.defaultCol != nil) &&
		a.ColumnOrder == o.ColumnOrder
}
