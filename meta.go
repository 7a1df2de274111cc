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
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// MetaProperties is a case-insensitive string-to-value map attached to
// cubes, axes, and columns (§3). Meta-properties participate in delta
// (§4.7) but are excluded from axis-property equality (§4.2).
type MetaProperties struct {
	values map[string]interface{} // keyed by original casing
	lookup map[string]string      // lowercase -> original casing
}

// NewMetaProperties returns an empty meta-property map.
func NewMetaProperties() *MetaProperties {
	return &MetaProperties{
		values: make(map[string]interface{}),
		lookup: make(map[string]string),
	}
}

// Set stores value under key, replacing any existing entry regardless of
// the stored key's original casing.
func (m *MetaProperties) Set(key string, value interface{}) {
	lower := strings.ToLower(key)
	if orig, ok := m.lookup[lower]; ok {
		delete(m.values, orig)
	}
	m.lookup[lower] = key
	m.values[key] = value
}

// Get returns the value stored under key (case-insensitively) and whether
// it was present.
func (m *MetaProperties) Get(key string) (interface{}, bool) {
	orig, ok := m.lookup[strings.ToLower(key)]
	if !ok {
		return nil, false
	}
	v, ok := m.values[orig]
	return v, ok
}

// GetString returns the meta-property coerced to a string, or ("", false)
// if absent or not convertible.
func (m *MetaProperties) GetString(key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	s, err := cast.ToStringE(v)
	return s, err == nil
}

// GetBool returns the meta-property coerced to a bool, or (false, false)
// if absent or not convertible.
func (m *MetaProperties) GetBool(key string) (bool, bool) {
	v, ok := m.Get(key)
	if !ok {
		return false, false
	}
	b, err := cast.ToBoolE(v)
	return b, err == nil
}

// GetLong returns the meta-property coerced to an int64, or (0, false) if
// absent or not convertible.
func (m *MetaProperties) GetLong(key string) (int64, bool) {
	v, ok := m.Get(key)
	if !ok {
		return 0, false
	}
	n, err := cast.ToInt64E(v)
	return n, err == nil
}

// Remove deletes the entry for key (case-insensitively), reporting
// whether anything was removed.
func (m *MetaProperties) Remove(key string) bool {
	lower := strings.ToLower(key)
	orig, ok := m.lookup[lower]
	if !ok {
		return false
	}
	delete(m.lookup, lower)
	delete(m.values, orig)
	return true
}

// Keys returns the original-cased keys in sorted (lowercase) order, for
// deterministic iteration in delta computation and SHA-1 digesting.
func (m *MetaProperties) Keys() []string {
	lowers := make([]string, 0, len(m.lookup))
	for l := range m.lookup {
		lowers = append(lowers, l)
	}
	sort.Strings(lowers)
	keys := make([]string, len(lowers))
	for i, l := range lowers {
		keys[i] = m.lookup[l]
	}
	return keys
}

// Len returns the number of meta-properties stored.
func (m *MetaProperties) Len() int { return len(m.values) }

// Clone returns an independent deep-ish copy (values themselves are not
// deep-copied, matching the shallow-map semantics of the source system).
func (m *MetaProperties) Clone() *MetaProperties {
	out := NewMetaProperties()
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		out.Set(k, v)
	}
	return out
}
