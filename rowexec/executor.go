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

// Package rowexec dispatches a bound cell to its value: returning a
// scalar verbatim, invoking the expression host for expression/method
// cells, interpolating templates, or recursing into another cube for a
// cross-cube reference (§4.5). It also hosts the rule-axis state machine
// (§4.6).
package rowexec

import (
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ncube-engine/ncube"
	"github.com/ncube-engine/ncube/host"
	"github.com/ncube-engine/ncube/metrics"
)

// Executor dispatches bound cells against a set of external
// collaborators (§6). The zero value is not usable; build one with
// NewExecutor.
type Executor struct {
	Registry host.Registry
	Host     host.ExpressionHost
	Fetcher  host.ResourceFetcher
	Tracer   opentracing.Tracer

	cache *host.ArtifactCache
}

// NewExecutor wires an Executor against its collaborators. host, if
// non-nil, is wrapped in an ArtifactCache so repeated compilation of the
// same (source, entryPoint) by cells whose cache flag is set is
// de-duplicated for the life of this Executor (§5); other cells compile
// through the host on every call. tracer
// may be nil, in which case opentracing.NoopTracer{} is used.
func NewExecutor(registry host.Registry, expressionHost host.ExpressionHost, fetcher host.ResourceFetcher, tracer opentracing.Tracer) *Executor {
	if tracer == nil {
		tracer = opentracing.NoopTracer{}
	}
	var cache *host.ArtifactCache
	if expressionHost != nil {
		cache = host.NewArtifactCache(expressionHost)
	}
	return &Executor{Registry: registry, Host: expressionHost, Fetcher: fetcher, Tracer: tracer, cache: cache}
}

// Evaluate binds coord against cube's non-RULE axes, dispatches to the
// Rule Engine if any bound axis is RULE, and otherwise dispatches the
// single resolved cell. It returns the cube's default cell value if the
// bound coordinate has no explicit cell and the cube carries a default
// (§4.5, "evaluation of an empty cube with a default cell value returns
// that default").
func (e *Executor) Evaluate(ctx *ncube.Context, cube *ncube.Cube, coord ncube.Coordinate) (interface{}, error) {
	span := e.Tracer.StartSpan("ncube.Evaluate")
	span.SetTag("cube", cube.Name)
	defer span.Finish()

	log := ctx.Logger().WithFields(logrus.Fields{"cube": cube.Name, "coordinate": coord.String()})
	ctx = ctx.WithLogger(log)

	if hasRuleAxis(cube) {
		return e.evaluateRules(ctx, cube, coord)
	}

	cell, ok, err := cube.GetCellNoExecute(coord)
	if err != nil {
		return nil, ncube.WrapCellError(cube.Name, coord, err)
	}
	if !ok {
		return nil, ncube.WrapCellError(cube.Name, coord, ncube.ErrInvalidArgument.New("no cell found at coordinate "+coord.String()+" in cube \""+cube.Name+"\""))
	}

	v, err := e.dispatchCell(ctx, cube, coord, cell)
	if err != nil {
		return nil, ncube.WrapCellError(cube.Name, coord, err)
	}
	return v, nil
}

func hasRuleAxis(cube *ncube.Cube) bool {
	for _, a := range cube.Axes() {
		if a.Kind == ncube.RULE {
			return true
		}
	}
	return false
}

// dispatchCell implements the per-kind dispatch table (§4.5).
func (e *Executor) dispatchCell(ctx *ncube.Context, cube *ncube.Cube, coord ncube.Coordinate, cell ncube.Cell) (interface{}, error) {
	kind := cellKindLabel(cell.Kind)
	start := time.Now()
	defer func() {
		metrics.CellEvaluationDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	}()
	metrics.CellsEvaluated.WithLabelValues(kind).Inc()

	switch cell.Kind {
	case ncube.ScalarCell:
		if text, ok := cell.Scalar.(string); ok {
			if name, override, ok := ParseCrossCubeReference(text); ok {
				return e.evaluateCrossCube(ctx, cube, name, override)
			}
		}
		return cell.Scalar, nil

	case ncube.ExpressionCell:
		return e.invokeExpression(ctx, cube, coord, cell, "")

	case ncube.TemplateCell:
		text, err := e.interpolateTemplate(ctx, cube, coord, cell.Source)
		if err != nil {
			return nil, err
		}
		if name, override, ok := ParseCrossCubeReference(text); ok {
			return e.evaluateCrossCube(ctx, cube, name, override)
		}
		return text, nil

	case ncube.MethodCell:
		return e.invokeExpression(ctx, cube, coord, cell, cell.Method)

	case ncube.CrossCubeCell:
		return e.evaluateCrossCube(ctx, cube, cell.CrossCubeName, cell.CrossCubeCoord)

	default:
		return nil, errors.Errorf("unknown cell kind %v", cell.Kind)
	}
}

func cellKindLabel(k ncube.CellKind) string {
	switch k {
	case ncube.ScalarCell:
		return "scalar"
	case ncube.ExpressionCell:
		return "expression"
	case ncube.TemplateCell:
		return "template"
	case ncube.MethodCell:
		return "method"
	case ncube.CrossCubeCell:
		return "crosscube"
	default:
		return "unknown"
	}
}

// invokeExpression resolves the cell's source text (fetching it from URL
// first if one is set), compiles it, and invokes it, wrapping any host
// failure as RuntimeFailure/CompilationError (§4.5, §7). ErrRuleStop
// returned by Invoke is passed through unwrapped for the Rule Engine.
func (e *Executor) invokeExpression(ctx *ncube.Context, cube *ncube.Cube, coord ncube.Coordinate, cell ncube.Cell, method string) (interface{}, error) {
	if e.Host == nil {
		return nil, ncube.ErrRuntimeFailure.New("no expression host configured")
	}

	source := cell.Source
	if cell.URL != "" {
		if e.Fetcher == nil {
			return nil, ncube.ErrRuntimeFailure.New("cell references a url but no resource fetcher is configured")
		}
		fetcher := e.Fetcher
		if cell.Cache {
			fetcher = host.NewCachingFetcher(fetcher)
		}
		raw, err := fetcher.Fetch(cell.URL)
		if err != nil {
			return nil, ncube.ErrRuntimeFailure.Wrap(err, err.Error())
		}
		source = string(raw)
	}

	artifact, err := e.compile(source, method, cell.Cache)
	if err != nil {
		return nil, ncube.ErrCompilationError.Wrap(err, err.Error())
	}

	result, err := e.invoke(artifact, ctx, cube, coord, method)
	if err == ncube.ErrRuleStop {
		return result, err
	}
	if err != nil {
		return nil, ncube.ErrRuntimeFailure.Wrap(err, err.Error())
	}
	return result, nil
}

func (e *Executor) compile(source, method string, cache bool) (host.Artifact, error) {
	if cache && e.cache != nil {
		before := e.cache.Len()
		artifact, err := e.cache.Compile(source, method)
		if e.cache.Len() == before {
			metrics.ArtifactCacheHits.Inc()
		} else {
			metrics.ArtifactCacheMisses.Inc()
		}
		return artifact, err
	}
	metrics.ArtifactCacheMisses.Inc()
	return e.Host.Compile(source, method)
}

func (e *Executor) invoke(artifact host.Artifact, ctx *ncube.Context, cube *ncube.Cube, coord ncube.Coordinate, method string) (interface{}, error) {
	args := host.InvokeArgs{
		Input:      ctx.Input,
		Output:     ctx.Output,
		Cube:       cube,
		Coordinate: coord,
		Method:     method,
	}
	if e.cache != nil {
		return e.cache.Invoke(artifact, args)
	}
	return e.Host.Invoke(artifact, args)
}

// evaluateCrossCube looks target up in the registry, merges coord over
// the caller's own coordinate, guards against re-entrance, and recurses
// (§4.5, §5).
func (e *Executor) evaluateCrossCube(ctx *ncube.Context, cube *ncube.Cube, targetName string, override ncube.Coordinate) (interface{}, error) {
	if e.Registry == nil {
		return nil, ncube.ErrRuntimeFailure.New("cross-cube reference requires a registry")
	}
	target, ok := e.Registry.GetCube(cube.AppID, targetName)
	if !ok {
		return nil, ncube.ErrInvalidArgument.New("unknown cube \"" + targetName + "\"")
	}

	merged := ctx.Input.Clone()
	for _, k := range override.Keys() {
		v, _ := override.Get(k)
		merged.Set(k, v)
	}

	leave, err := ctx.Enter(target.Name, merged)
	if err != nil {
		return nil, err
	}
	defer leave()

	sub := ctx.WithInput(merged)
	return e.Evaluate(sub, target, merged)
}
