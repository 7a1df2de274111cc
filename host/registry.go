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

// Package host declares the external-collaborator interfaces the core
// consumes (§6): the cube registry, the expression host, the resource
// fetcher, and the wire-format shapes a JSON formatter produces. Only a
// minimal in-memory Registry is implemented here, as a reference
// collaborator for tests and examples; persistence, compilation, and
// HTTP fetching remain out of scope (§1).
package host

import (
	"strings"
	"sync"

	"github.com/ncube-engine/ncube"
)

// Registry is the cube registry interface the Executor's cross-cube
// dispatch consumes (§4.5, §6).
type Registry interface {
	GetCube(appID ncube.ApplicationID, name string) (*ncube.Cube, bool)
	AddCube(appID ncube.ApplicationID, cube *ncube.Cube)
	UpdateCube(appID ncube.ApplicationID, cube *ncube.Cube)
	ClearCache(appID ncube.ApplicationID)
}

// MemoryRegistry is a process-wide, concurrency-safe Registry backed by a
// map. Per §5, writes are mutually exclusive and reads may proceed
// concurrently once mutations have quiesced.
type MemoryRegistry struct {
	mu    sync.RWMutex
	cubes map[string]map[string]*ncube.Cube // appKey -> lowercase cube name -> cube
}

// NewMemoryRegistry returns an empty registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{cubes: make(map[string]map[string]*ncube.Cube)}
}

func appKey(id ncube.ApplicationID) string {
	return strings.ToLower(id.Tenant + "\x00" + id.App + "\x00" + id.Version + "\x00" + id.Status + "\x00" + id.Branch)
}

// GetCube looks up a cube by (appID, name), case-insensitively.
func (r *MemoryRegistry) GetCube(appID ncube.ApplicationID, name string) (*ncube.Cube, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	bucket, ok := r.cubes[appKey(appID)]
	if !ok {
		return nil, false
	}
	c, ok := bucket[strings.ToLower(name)]
	return c, ok
}

// AddCube registers a cube under appID.
func (r *MemoryRegistry) AddCube(appID ncube.ApplicationID, cube *ncube.Cube) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := appKey(appID)
	bucket, ok := r.cubes[key]
	if !ok {
		bucket = make(map[string]*ncube.Cube)
		r.cubes[key] = bucket
	}
	bucket[strings.ToLower(cube.Name)] = cube
}

// UpdateCube replaces an existing registration; semantically identical to
// AddCube for the in-memory reference implementation.
func (r *MemoryRegistry) UpdateCube(appID ncube.ApplicationID, cube *ncube.Cube) {
	r.AddCube(appID, cube)
}

// ClearCache drops every cube registered under appID.
func (r *MemoryRegistry) ClearCache(appID ncube.ApplicationID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cubes, appKey(appID))
}
