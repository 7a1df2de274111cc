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
	"fmt"
	"regexp"
	"strings"

	"github.com/ncube-engine/ncube"
)

var (
	doubleBraceMarker = regexp.MustCompile(`\{\{([^{}]*)\}\}`)
	dollarBraceMarker = regexp.MustCompile(`\$\{([^{}]*)\}`)
)

// interpolateTemplate expands a TemplateCell's text (§4.5): "{{key}}"
// substitutes from output, then coord, then input, and "${key:val,...}" recursively
// re-evaluates the same cube at a coordinate overridden by the given
// key/value pairs. Any error during recursive evaluation aborts the
// whole template with a RuntimeFailure.
func (e *Executor) interpolateTemplate(ctx *ncube.Context, cube *ncube.Cube, coord ncube.Coordinate, text string) (string, error) {
	var outerErr error

	result := doubleBraceMarker.ReplaceAllStringFunc(text, func(m string) string {
		if outerErr != nil {
			return m
		}
		key := strings.TrimSpace(doubleBraceMarker.FindStringSubmatch(m)[1])
		if v, ok := ctx.Output[key]; ok {
			return fmt.Sprintf("%v", v)
		}
		if v, ok := coord.Get(key); ok {
			return fmt.Sprintf("%v", v)
		}
		if v, ok := ctx.Input.Get(key); ok {
			return fmt.Sprintf("%v", v)
		}
		return ""
	})
	if outerErr != nil {
		return "", outerErr
	}

	result = dollarBraceMarker.ReplaceAllStringFunc(result, func(m string) string {
		if outerErr != nil {
			return m
		}
		inner := dollarBraceMarker.FindStringSubmatch(m)[1]

		override := coord.Clone()
		for _, part := range splitTopLevelCommas(inner) {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			kv := strings.SplitN(part, ":", 2)
			if len(kv) != 2 {
				continue
			}
			override.Set(strings.TrimSpace(kv[0]), unquote(strings.TrimSpace(kv[1])))
		}

		v, err := e.Evaluate(ctx, cube, override)
		if err != nil {
			outerErr = ncube.ErrRuntimeFailure.Wrap(err, err.Error())
			return m
		}
		return fmt.Sprintf("%v", v)
	})
	if outerErr != nil {
		return "", outerErr
	}

	return result, nil
}
