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

package rowexec

import (
	"reflect"
	"strings"

	"github.com/spf13/cast"

	"github.com/ncube-engine/ncube"
	"github.com/ncube-engine/ncube/metrics"
	"github.com/ncube-engine/ncube/types"
)

// evaluateRules drives the rule-axis state machine (§4.6): the outermost
// loop is the first rule axis added to the cube, and every nested
// combination of true-firing conditions is evaluated unless an axis has
// fireAll=false, in which case that axis's loop stops at its first true
// match.
func (e *Executor) evaluateRules(ctx *ncube.Context, cube *ncube.Cube, coord ncube.Coordinate) (interface{}, error) {
	var ruleAxes []*ncube.Axis
	for _, a := range cube.Axes() {
		if a.Kind == ncube.RULE {
			ruleAxes = append(ruleAxes, a)
		}
	}

	nonRuleBindings, err := ncube.Bind(cube.Axes(), coord)
	if err != nil {
		return nil, err
	}

	selections := make([]*ncube.Column, len(ruleAxes))
	result, _, err := e.runRuleAxis(ctx, cube, coord, ruleAxes, 0, nonRuleBindings, selections)
	return result, err
}

// runRuleAxis evaluates ruleAxes[depth]'s columns in order, recursing
// into the next rule axis (or firing the resolved cell, at the last
// depth) for every column whose condition evaluates truthy.
func (e *Executor) runRuleAxis(ctx *ncube.Context, cube *ncube.Cube, coord ncube.Coordinate, ruleAxes []*ncube.Axis, depth int, nonRuleBindings map[string]*ncube.Binding, selections []*ncube.Column) (interface{}, bool, error) {
	axis := ruleAxes[depth]

	var columns []*ncube.Column
	for _, c := range axis.Columns() {
		if !c.Default {
			columns = append(columns, c)
		}
	}

	var lastResult interface{}
	fired := false

	i := jumpStartIndex(ctx.Input, coord, axis, columns)
	lastTarget, hasTarget := ruleJumpTarget(ctx.Input, coord, axis, columns)
	visited := make(map[int]bool, len(columns))

	for i >= 0 && i < len(columns) {
		if visited[i] {
			break // jump cycle guard
		}
		visited[i] = true
		col := columns[i]

		truthy, err := e.evaluateRuleCondition(ctx, cube, coord, col)
		if err == ncube.ErrRuleStop {
			ctx.Rule.RuleStopThrown = true
			return lastResult, fired, nil
		}
		if err != nil {
			return nil, fired, err
		}

		if truthy {
			fired = true
			metrics.RulesFired.Inc()
			selections[depth] = col

			var res interface{}
			var err error
			if depth == len(ruleAxes)-1 {
				res, err = e.fireCombination(ctx, cube, nonRuleBindings, ruleAxes, selections)
			} else {
				res, _, err = e.runRuleAxis(ctx, cube, coord, ruleAxes, depth+1, nonRuleBindings, selections)
			}
			if err == ncube.ErrRuleStop {
				ctx.Rule.RuleStopThrown = true
				return res, true, nil
			}
			if err != nil {
				return nil, fired, err
			}
			lastResult = res

			if !axis.FireAll {
				break
			}
		}

		// Only a jump target that changed since the last check restarts the
		// loop; an unchanged one (e.g. the jump-start key) is already applied.
		if target, ok := ruleJumpTarget(ctx.Input, coord, axis, columns); ok && (!hasTarget || target != lastTarget) {
			lastTarget, hasTarget = target, true
			i = target
			continue
		}
		i++
	}

	if !fired {
		if axis.HasDefault() {
			selections[depth] = axis.DefaultColumn()
			if depth == len(ruleAxes)-1 {
				res, err := e.fireCombination(ctx, cube, nonRuleBindings, ruleAxes, selections)
				return res, true, err
			}
			return e.runRuleAxis(ctx, cube, coord, ruleAxes, depth+1, nonRuleBindings, selections)
		}
		return nil, false, ncube.ErrRuleDidNotFire.New(axis.Name())
	}

	return lastResult, fired, nil
}

// fireCombination resolves the cell bound by the non-rule axis bindings
// plus the currently-selected column on every rule axis, dispatches it,
// and tallies the firing into ctx.Rule (§4.5 "_rule").
func (e *Executor) fireCombination(ctx *ncube.Context, cube *ncube.Cube, nonRuleBindings map[string]*ncube.Binding, ruleAxes []*ncube.Axis, selections []*ncube.Column) (interface{}, error) {
	var ids []ncube.ColumnID
	var trace []ncube.AxisBinding

	for name, b := range nonRuleBindings {
		if b.Column != nil && !b.Column.Default {
			ids = append(ids, b.Column.ID)
		}
		if b.Column != nil {
			cv, _ := b.Column.Name()
			trace = append(trace, ncube.AxisBinding{AxisName: name, ColumnName: cv, ColumnID: b.Column.ID})
		}
	}
	for depth, axis := range ruleAxes {
		col := selections[depth]
		if col == nil {
			continue
		}
		if !col.Default {
			ids = append(ids, col.ID)
		}
		name, _ := col.Name()
		trace = append(trace, ncube.AxisBinding{AxisName: axis.Name(), ColumnName: name, ColumnID: col.ID})
	}

	cell, ok := cube.CellAt(ids)
	if !ok {
		return nil, ncube.ErrInvalidArgument.New("rule combination fired but no cell is bound at the resolved coordinate")
	}

	value, err := e.dispatchCell(ctx, cube, ctx.Input, cell)
	if err == ncube.ErrRuleStop {
		ctx.Rule.RecordFired(trace, value)
		return value, ncube.ErrRuleStop
	}
	if err != nil {
		return nil, err
	}

	ctx.Rule.RecordFired(trace, value)
	return value, nil
}

// evaluateRuleCondition compiles and invokes a RULE-axis column's
// condition expression, returning its truthiness (§4.6 Evaluate).
func (e *Executor) evaluateRuleCondition(ctx *ncube.Context, cube *ncube.Cube, coord ncube.Coordinate, col *ncube.Column) (bool, error) {
	desc, ok := col.Value.(types.ExpressionDescriptor)
	if !ok {
		return false, ncube.ErrInvalidArgument.New("rule axis condition column does not hold an expression")
	}

	cell := ncube.NewExpressionCell(desc.Source, desc.URL, desc.Cache)
	v, err := e.dispatchCell(ctx, cube, coord, cell)
	if err != nil {
		return false, err
	}
	return Truthy(v), nil
}

// Truthy implements the Rule Engine's truthiness rule (§4.6): nil,
// false, a numeric zero, an empty string, or an empty collection/
// iterator is false; everything else is true.
func Truthy(v interface{}) bool {
	if v == nil {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != ""
	}
	if n, err := cast.ToFloat64E(v); err == nil {
		return n != 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return rv.Len() != 0
	case reflect.Ptr, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

// jumpStartIndex implements "jump-start" (§4.6 Start): if input/coord
// names a column via the "rule" key or the axis's own name, position
// there; otherwise start at index 0.
func jumpStartIndex(input, coord ncube.Coordinate, axis *ncube.Axis, columns []*ncube.Column) int {
	if idx, ok := ruleJumpTarget(input, coord, axis, columns); ok {
		return idx
	}
	return 0
}

// ruleJumpTarget looks up a named-column jump target from input["rule"]
// or input[axis.Name()], case-insensitively, returning its index among
// columns.
func ruleJumpTarget(input, coord ncube.Coordinate, axis *ncube.Axis, columns []*ncube.Column) (int, bool) {
	var target string
	if v, ok := input.Get("rule"); ok {
		if s, err := cast.ToStringE(v); err == nil {
			target = s
		}
	}
	if target == "" {
		if v, ok := input.Get(axis.Name()); ok {
			if s, err := cast.ToStringE(v); err == nil {
				target = s
			}
		}
	}
	if target == "" {
		if v, ok := coord.Get(axis.Name()); ok {
			if s, err := cast.ToStringE(v); err == nil {
				target = s
			}
		}
	}
	if target == "" {
		return 0, false
	}
	target = strings.ToLower(target)
	for i, c := range columns {
		if name, ok := c.Name(); ok && strings.ToLower(name) == target {
			return i, true
		}
	}
	return 0, false
}
