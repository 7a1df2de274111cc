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
	"bytes"
	gocontext "context"

	"github.com/sirupsen/logrus"
	uuid "github.com/satori/go.uuid"
)

// AxisBinding records one fired rule's axis->column trace entry (§4.5,
// §8 property 9/10).
type AxisBinding struct {
	AxisName   string
	ColumnName string
	ColumnID   ColumnID
}

// RuleInfo is the per-call accumulator of rule-execution telemetry (§4.5,
// GLOSSARY). SPEC_FULL §12.1 promotes it to a first-class type rather
// than a loose entry under output["_rule"].
type RuleInfo struct {
	NumberOfRulesExecuted int
	RuleStopThrown        bool
	LastStatementValue    interface{}
	AxisBindings          []AxisBinding
	SystemOut             bytes.Buffer
	SystemErr             bytes.Buffer
}

// RecordFired appends a fired-rule trace entry and increments the count.
func (ri *RuleInfo) RecordFired(bindings []AxisBinding, statementValue interface{}) {
	ri.NumberOfRulesExecuted++
	ri.LastStatementValue = statementValue
	ri.AxisBindings = append(ri.AxisBindings, bindings...)
}

// Context carries per-top-level-call state through Executor/Rule Engine
// dispatch (§4.5): the caller's coordinate (input), the accumulating
// output map, rule telemetry, a logger, cancellation, and the recursion
// guard used to detect cyclic cross-cube references (§5).
type Context struct {
	goCtx gocontext.Context

	Input  Coordinate
	Output map[string]interface{}
	Rule   *RuleInfo

	CallID string // correlation id for this top-level call (uuid v4)
	log    *logrus.Entry

	visiting map[string]bool // "cubeName\x00coordinate" keys on the current call stack
	maxDepth int
	depth    int
}

const defaultMaxRecursionDepth = 64

// NewContext starts a fresh top-level evaluation context.
func NewContext(goCtx gocontext.Context, input Coordinate, log *logrus.Entry) *Context {
	if goCtx == nil {
		goCtx = gocontext.Background()
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	callID := ""
	if id, err := uuid.NewV4(); err == nil {
		callID = id.String()
	}
	return &Context{
		goCtx:    goCtx,
		Input:    input,
		Output:   make(map[string]interface{}),
		Rule:     &RuleInfo{},
		CallID:   callID,
		log:      log,
		visiting: make(map[string]bool),
		maxDepth: defaultMaxRecursionDepth,
	}
}

// GoContext returns the underlying context.Context, for cancellation and
// deadlines (§5).
func (c *Context) GoContext() gocontext.Context { return c.goCtx }

// Logger returns the structured logger for this call, with fields added
// per cube/coordinate/axis as evaluation proceeds.
func (c *Context) Logger() *logrus.Entry { return c.log }

// WithLogger returns a shallow copy of the context carrying a derived
// logger (e.g. with a "cube" field added), sharing the same recursion
// guard and output map.
func (c *Context) WithLogger(log *logrus.Entry) *Context {
	cp := *c
	cp.log = log
	return &cp
}

// WithInput returns a shallow copy of the context with Input replaced,
// sharing the same recursion guard, output map, and rule telemetry. Used
// when recursing into a cross-cube reference with a merged coordinate
// (§4.5).
func (c *Context) WithInput(input Coordinate) *Context {
	cp := *c
	cp.Input = input
	return &cp
}

// Enter registers (cubeName, coordinate) on the call stack, failing with
// ErrCyclicReference if it's already present, or if the recursion depth
// limit is exceeded (§5). Callers must call the returned leave function
// on every exit path.
func (c *Context) Enter(cubeName string, coord Coordinate) (leave func(), err error) {
	key := cubeName + "\x00" + coord.String()
	if c.visiting[key] {
		return nil, ErrCyclicReference.New(cubeName, coord)
	}
	if c.depth >= c.maxDepth {
		return nil, ErrInvalidArgument.New("recursion depth limit exceeded")
	}
	c.visiting[key] = true
	c.depth++
	return func() {
		delete(c.visiting, key)
		c.depth--
	}, nil
}
