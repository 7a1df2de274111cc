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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ncube-engine/ncube"
	"github.com/ncube-engine/ncube/host"
	"github.com/ncube-engine/ncube/types"
)

// echoHost is a fake ExpressionHost that returns the source text verbatim,
// or, for sources prefixed with "input:", the named input value.
type echoHost struct{}

func (echoHost) Compile(source, entryPoint string) (host.Artifact, error) {
	return source, nil
}

func (echoHost) Invoke(artifact host.Artifact, args host.InvokeArgs) (interface{}, error) {
	source := artifact.(string)
	if len(source) > 6 && source[:6] == "input:" {
		v, _ := args.Input.Get(source[6:])
		return v, nil
	}
	return source, nil
}

func newTestExecutor() *Executor {
	return NewExecutor(host.NewMemoryRegistry(), echoHost{}, nil, nil)
}

func buildDiscreteCube(t *testing.T) *ncube.Cube {
	t.Helper()
	cube := ncube.NewCube("Pricing")
	axis, _, err := cube.AddAxis("State", ncube.DISCRETE, types.STRING, false, ncube.SORTED)
	require.NoError(t, err)
	_, err = axis.AddColumn("OH")
	require.NoError(t, err)
	return cube
}

func TestEvaluateScalarCell(t *testing.T) {
	cube := buildDiscreteCube(t)
	coord := ncube.NewCoordinate(map[string]interface{}{"State": "OH"})
	require.NoError(t, cube.SetCell(coord, ncube.NewScalarCell(42)))

	e := newTestExecutor()
	ctx := ncube.NewContext(nil, coord, nil)

	v, err := e.Evaluate(ctx, cube, coord)
	require.NoError(t, err)
	require.Equal(t, 42, v)
}

func TestEvaluateMissingCellReturnsError(t *testing.T) {
	cube := buildDiscreteCube(t)
	coord := ncube.NewCoordinate(map[string]interface{}{"State": "OH"})

	e := newTestExecutor()
	ctx := ncube.NewContext(nil, coord, nil)

	_, err := e.Evaluate(ctx, cube, coord)
	require.Error(t, err)
}

func TestEvaluateUsesDefaultCell(t *testing.T) {
	cube := buildDiscreteCube(t)
	cube.HasDefaultCell = true
	cube.DefaultCellVal = ncube.NewScalarCell("fallback")
	coord := ncube.NewCoordinate(map[string]interface{}{"State": "OH"})

	e := newTestExecutor()
	ctx := ncube.NewContext(nil, coord, nil)

	v, err := e.Evaluate(ctx, cube, coord)
	require.NoError(t, err)
	require.Equal(t, "fallback", v)
}

func TestEvaluateExpressionCellInvokesHost(t *testing.T) {
	cube := buildDiscreteCube(t)
	coord := ncube.NewCoordinate(map[string]interface{}{"State": "OH", "age": 33})
	require.NoError(t, cube.SetCell(coord, ncube.NewExpressionCell("input:age", "", false)))

	e := newTestExecutor()
	ctx := ncube.NewContext(nil, coord, nil)

	v, err := e.Evaluate(ctx, cube, coord)
	require.NoError(t, err)
	require.Equal(t, 33, v)
}

func TestEvaluateExpressionCellWithNoHostConfiguredFails(t *testing.T) {
	cube := buildDiscreteCube(t)
	coord := ncube.NewCoordinate(map[string]interface{}{"State": "OH"})
	require.NoError(t, cube.SetCell(coord, ncube.NewExpressionCell("1+1", "", false)))

	e := NewExecutor(host.NewMemoryRegistry(), nil, nil, nil)
	ctx := ncube.NewContext(nil, coord, nil)

	_, err := e.Evaluate(ctx, cube, coord)
	require.Error(t, err)
}

func TestEvaluateCrossCubeReference(t *testing.T) {
	target := buildDiscreteCube(t)
	target.Name = "Target"
	tcoord := ncube.NewCoordinate(map[string]interface{}{"State": "OH"})
	require.NoError(t, target.SetCell(tcoord, ncube.NewScalarCell("from-target")))

	source := buildDiscreteCube(t)
	source.Name = "Source"
	scoord := ncube.NewCoordinate(map[string]interface{}{"State": "OH"})
	require.NoError(t, source.SetCell(scoord, ncube.NewCrossCubeCell("Target", ncube.NewCoordinate(nil))))

	registry := host.NewMemoryRegistry()
	registry.AddCube(source.AppID, target)

	e := NewExecutor(registry, echoHost{}, nil, nil)
	ctx := ncube.NewContext(nil, scoord, nil)

	v, err := e.Evaluate(ctx, source, scoord)
	require.NoError(t, err)
	require.Equal(t, "from-target", v)
}

func TestEvaluateScalarCellRecognizesCrossCubeSyntax(t *testing.T) {
	target := buildDiscreteCube(t)
	target.Name = "Target"
	tcoord := ncube.NewCoordinate(map[string]interface{}{"State": "OH"})
	require.NoError(t, target.SetCell(tcoord, ncube.NewScalarCell("from-target")))

	source := buildDiscreteCube(t)
	source.Name = "Source"
	scoord := ncube.NewCoordinate(map[string]interface{}{"State": "OH"})
	require.NoError(t, source.SetCell(scoord, ncube.NewScalarCell(`@Target(State:"OH")`)))

	registry := host.NewMemoryRegistry()
	registry.AddCube(source.AppID, target)

	e := NewExecutor(registry, echoHost{}, nil, nil)
	ctx := ncube.NewContext(nil, scoord, nil)

	v, err := e.Evaluate(ctx, source, scoord)
	require.NoError(t, err)
	require.Equal(t, "from-target", v)
}

func TestEvaluateTemplateCellRecognizesInterpolatedCrossCubeSyntax(t *testing.T) {
	target := buildDiscreteCube(t)
	target.Name = "Target"
	tcoord := ncube.NewCoordinate(map[string]interface{}{"State": "OH"})
	require.NoError(t, target.SetCell(tcoord, ncube.NewScalarCell("from-target")))

	source := buildDiscreteCube(t)
	source.Name = "Source"
	scoord := ncube.NewCoordinate(map[string]interface{}{"State": "OH"})
	require.NoError(t, source.SetCell(scoord, ncube.NewTemplateCell(`@Target(State:"{{State}}")`)))

	registry := host.NewMemoryRegistry()
	registry.AddCube(source.AppID, target)

	e := NewExecutor(registry, echoHost{}, nil, nil)
	ctx := ncube.NewContext(nil, scoord, nil)

	v, err := e.Evaluate(ctx, source, scoord)
	require.NoError(t, err)
	require.Equal(t, "from-target", v)
}

func TestEvaluateCrossCubeUnknownCubeFails(t *testing.T) {
	source := buildDiscreteCube(t)
	scoord := ncube.NewCoordinate(map[string]interface{}{"State": "OH"})
	require.NoError(t, source.SetCell(scoord, ncube.NewCrossCubeCell("Nope", ncube.NewCoordinate(nil))))

	e := NewExecutor(host.NewMemoryRegistry(), echoHost{}, nil, nil)
	ctx := ncube.NewContext(nil, scoord, nil)

	_, err := e.Evaluate(ctx, source, scoord)
	require.Error(t, err)
}

func TestEvaluateCrossCubeDetectsCycle(t *testing.T) {
	cube := buildDiscreteCube(t)
	coord := ncube.NewCoordinate(map[string]interface{}{"State": "OH"})
	require.NoError(t, cube.SetCell(coord, ncube.NewCrossCubeCell("Pricing", ncube.NewCoordinate(nil))))

	registry := host.NewMemoryRegistry()
	registry.AddCube(cube.AppID, cube)

	e := NewExecutor(registry, echoHost{}, nil, nil)
	ctx := ncube.NewContext(nil, coord, nil)

	_, err := e.Evaluate(ctx, cube, coord)
	require.Error(t, err)
}
