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
	"strings"

	"github.com/ncube-engine/ncube"
)

// ParseCrossCubeReference recognizes the "@Name(coord)" / "$Name(coord)"
// syntax (§4.5) and, on a match, returns the target cube name and a
// Coordinate built from the parenthesized key:value pairs. coord entries
// are comma-separated "key:value" pairs; values may be single- or
// double-quoted. Returns ok=false for any text that doesn't match the
// pattern, so callers can fall through to treating it as plain text.
func ParseCrossCubeReference(text string) (cubeName string, coord ncube.Coordinate, ok bool) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) == 0 || (trimmed[0] != '@' && trimmed[0] != '$') {
		return "", ncube.Coordinate{}, false
	}

	body := trimmed[1:]
	open := strings.IndexByte(body, '(')
	if open < 0 || !strings.HasSuffix(body, ")") {
		return "", ncube.Coordinate{}, false
	}

	name := strings.TrimSpace(body[:open])
	if name == "" {
		return "", ncube.Coordinate{}, false
	}

	inner := body[open+1 : len(body)-1]
	values := make(map[string]interface{})
	for _, part := range splitTopLevelCommas(inner) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.TrimSpace(kv[0])
		val := unquote(strings.TrimSpace(kv[1]))
		values[key] = val
	}

	return name, ncube.NewCoordinate(values), true
}

func splitTopLevelCommas(s string) []string {
	var parts []string
	depth := 0
	last := 0
	for i, r := range s {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, s[last:])
	return parts
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
