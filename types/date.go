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

package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are the textual formats DATE coercion accepts, per §4.1:
// "YYYY-MM-DD", "Mon DD YYYY", "DD Mon YYYY", each with an optional time
// component.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"Jan 2 2006 15:04:05",
	"Jan 2 2006 15:04",
	"Jan 2 2006",
	"2 Jan 2006 15:04:05",
	"2 Jan 2006 15:04",
	"2 Jan 2006",
	"Jan 2, 2006",
	time.RFC3339,
}

// ParseDate parses a textual date using the accepted layouts, trying each
// in turn. It does not attempt MySQL-style printf-ish format specifiers;
// that is a dateparse-engine's job in the original, not this library's.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q does not match any accepted date format", s)
}

// ParseEpochMillis promotes an integer epoch-millisecond value to a Date,
// per the DATE coercion rule accepting LONG.
func ParseEpochMillis(ms int64) time.Time {
	return time.UnixMilli(ms).In(time.Local)
}

// looksLikeEpochMillis reports whether s is a bare integer, used by
// coerceDate to distinguish "1700000000000" (epoch millis) from a textual
// date.
func looksLikeEpochMillis(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
