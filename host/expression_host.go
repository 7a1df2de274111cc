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

package host

import (
	"crypto/sha1"
	"encoding/hex"
	"sync"

	"github.com/ncube-engine/ncube"
)

// Artifact is an opaque compiled expression body, produced by
// ExpressionHost.Compile and consumed by ExpressionHost.Invoke. The core
// never inspects it.
type Artifact interface{}

// InvokeArgs is passed to ExpressionHost.Invoke for every expression,
// template-substitution, or method-entry-point cell evaluation (§4.5).
type InvokeArgs struct {
	Input      ncube.Coordinate
	Output     map[string]interface{}
	Cube       *ncube.Cube
	Coordinate ncube.Coordinate
	Method     string // non-empty for MethodCell dispatch
}

// ExpressionHost compiles and runs expression/template/method cell
// bodies. Dynamic code compilation is explicitly out of scope for the
// core (§1); this is the seam a host implementation plugs into.
type ExpressionHost interface {
	Compile(source string, entryPoint string) (Artifact, error)
	Invoke(artifact Artifact, args InvokeArgs) (interface{}, error)
}

// compiledEntry is either a successful artifact or a cached compilation
// failure: §7 specifies that "repeated evaluation of a cell that
// previously failed to compile surfaces the cached failure (no
// re-compile)".
type compiledEntry struct {
	artifact Artifact
	err      error
}

// ArtifactCache is the process-wide compiled-expression cache (§5),
// keyed by the SHA-1 of (source, entryPoint) so identical sources share a
// single compiled artifact. It has no eviction policy; de-duplication is
// the only cost control, per §5.
type ArtifactCache struct {
	mu      sync.RWMutex
	entries map[string]compiledEntry
	host    ExpressionHost
}

// NewArtifactCache wraps host with a de-duplicating compile cache.
func NewArtifactCache(host ExpressionHost) *ArtifactCache {
	return &ArtifactCache{entries: make(map[string]compiledEntry), host: host}
}

// SourceDigest returns the cache key for a given source/entryPoint pair.
func SourceDigest(source, entryPoint string) string {
	h := sha1.New()
	h.Write([]byte(source))
	h.Write([]byte{0})
	h.Write([]byte(entryPoint))
	return hex.EncodeToString(h.Sum(nil))
}

// Compile returns the cached artifact for (source, entryPoint), compiling
// through the wrapped host on a cache miss. A cached failure is returned
// without re-invoking the host.
func (c *ArtifactCache) Compile(source, entryPoint string) (Artifact, error) {
	key := SourceDigest(source, entryPoint)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return entry.artifact, entry.err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.entries[key]; ok {
		return entry.artifact, entry.err
	}

	artifact, err := c.host.Compile(source, entryPoint)
	c.entries[key] = compiledEntry{artifact: artifact, err: err}
	return artifact, err
}

// Invoke delegates straight to the wrapped host; invocation results are
// never cached, only compilation is.
func (c *ArtifactCache) Invoke(artifact Artifact, args InvokeArgs) (interface{}, error) {
	return c.host.Invoke(artifact, args)
}

// Len reports the number of cached entries (the Executor's hit/miss
// metrics compare it before and after Compile).
func (c *ArtifactCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
