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

// CellKind discriminates the polymorphic value a Cell holds (§3).
type CellKind int

const (
	// ScalarCell holds a plain value (string, number, bool, date, blob).
	ScalarCell CellKind = iota
	// ExpressionCell holds source text, optionally resource-backed, to be
	// evaluated by the Expression Host.
	ExpressionCell
	// TemplateCell holds text with {{key}}/${...} interpolation markers.
	TemplateCell
	// MethodCell names an entry-point within a compiled expression body.
	MethodCell
	// CrossCubeCell references another cube by name with a coordinate
	// override ("@Name(coord)" / "$Name(coord)" syntax, §4.5).
	CrossCubeCell
)

// Cell is the value stored at a cube coordinate.
type Cell struct {
	Kind CellKind

	// Scalar holds the value for ScalarCell.
	Scalar interface{}

	// Source, URL, Cache apply to ExpressionCell, TemplateCell, and
	// MethodCell.
	Source string
	URL    string
	Cache  bool

	// Method names the entry-point for MethodCell.
	Method string

	// CrossCubeName and CrossCubeCoord apply to CrossCubeCell.
	CrossCubeName  string
	CrossCubeCoord Coordinate
}

// NewScalarCell wraps a plain value.
func NewScalarCell(v interface{}) Cell {
	return Cell{Kind: ScalarCell, Scalar: v}
}

// NewExpressionCell wraps expression source with optional URL and cache
// flag.
func NewExpressionCell(source, url string, cache bool) Cell {
	return Cell{Kind: ExpressionCell, Source: source, URL: url, Cache: cache}
}

// NewTemplateCell wraps interpolable text.
func NewTemplateCell(text string) Cell {
	return Cell{Kind: TemplateCell, Source: text}
}

// NewMethodCell names an entry-point within expression source.
func NewMethodCell(source, method string) Cell {
	return Cell{Kind: MethodCell, Source: source, Method: method}
}

// NewCrossCubeCell references another cube with a coordinate override.
func NewCrossCubeCell(cubeName string, coord Coordinate) Cell {
	return Cell{Kind: CrossCubeCell, CrossCubeName: cubeName, CrossCubeCoord: coord}
}
