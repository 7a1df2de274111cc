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
	stderrors "errors"
	"fmt"

	"gopkg.in/src-d/go-errors.v1"
)

// ErrRuleStop is a sentinel a rule-axis condition or fired cell can
// return to halt the Rule Engine early (§4.6 Terminate) without that
// being treated as a failure.
var ErrRuleStop = stderrors.New("rule stop signaled")

// Error taxonomy. Each kind is raised at its innermost detection point and
// propagates unchanged to the caller; the engine never retries implicitly.
var (
	// ErrMissingScope is returned when a coordinate lacks a value for an
	// axis that has no default column.
	ErrMissingScope = errors.NewKind("missing scope for axis %q")

	// ErrCoordinateNotFound is returned when a coordinate value matches no
	// column on an axis that lacks a default. The third argument is a
	// "maybe you mean X?" suggestion (possibly empty).
	ErrCoordinateNotFound = errors.NewKind("no column found on axis %q for value %v%s")

	// ErrRuleDidNotFire is a CoordinateNotFound variant raised when a rule
	// axis exhausts its condition columns without a true evaluation and
	// has no default.
	ErrRuleDidNotFire = errors.NewKind("no condition fired on rule axis %q and axis has no default")

	// ErrAxisOverlap is returned when adding or updating a RANGE/SET column
	// would cause two non-default columns to match the same value.
	ErrAxisOverlap = errors.NewKind("column %v overlaps an existing column on axis %q")

	// ErrUnsupported is returned when a value is not acceptable for an
	// axis kind or value-type (e.g. a non-range value added to a RANGE
	// axis).
	ErrUnsupported = errors.NewKind("value %v is not supported on axis %q (%s)")

	// ErrConversionFailed is returned when a textual value cannot be
	// promoted to an axis's value-type.
	ErrConversionFailed = errors.NewKind("cannot convert %v to %s: %s")

	// ErrInvalidArgument covers malformed input that the caller should not
	// have been able to produce: nil coordinates, nil axis names,
	// duplicate axis names, unknown column ids, and similar.
	ErrInvalidArgument = errors.NewKind("invalid argument: %s")

	// ErrCyclicReference is returned when a cross-cube evaluation would
	// re-enter the same (cube, coordinate) pair within one top-level call.
	ErrCyclicReference = errors.NewKind("cyclic reference detected: cube %q coordinate %v already on the call stack")

	// ErrCompilationError wraps a failure from the Expression Host's
	// Compile step.
	ErrCompilationError = errors.NewKind("failed to compile cell: %s")

	// ErrRuntimeFailure wraps a failure from the Expression Host's Invoke
	// step, or from template interpolation.
	ErrRuntimeFailure = errors.NewKind("cell evaluation failed: %s")

	// ErrIncompatibleMerge is returned when two change-sets disagree on
	// the value written to the same coordinate, or target cubes whose
	// dimensions/axis-names/column-values differ.
	ErrIncompatibleMerge = errors.NewKind("incompatible merge: %s")
)

// CellError wraps an evaluation error with the cube name and coordinate it
// occurred under, per spec §7 ("Cell evaluation errors surface with the
// cube name, coordinate, and cause").
type CellError struct {
	CubeName   string
	Coordinate Coordinate
	Cause      error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("ncube %q at %v: %s", e.CubeName, e.Coordinate, e.Cause)
}

func (e *CellError) Unwrap() error { return e.Cause }

// WrapCellError attaches the cube/coordinate context to a cell-evaluation
// failure. It is idempotent: wrapping an already-wrapped error from the
// same cube returns it unchanged, keeping its original coordinate.
func WrapCellError(cubeName string, coord Coordinate, cause error) error {
	if cause == nil {
		return nil
	}
	if ce, ok := cause.(*CellError); ok && ce.CubeName == cubeName {
		return ce
	}
	return &CellError{CubeName: cubeName, Coordinate: coord, Cause: cause}
}
