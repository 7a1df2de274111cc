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
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type countingHost struct {
	compiles int
	failOn   string
}

func (h *countingHost) Compile(source, entryPoint string) (Artifact, error) {
	h.compiles++
	if source == h.failOn {
		return nil, errors.New("compile failed")
	}
	return "compiled:" + source, nil
}

func (h *countingHost) Invoke(artifact Artifact, args InvokeArgs) (interface{}, error) {
	return artifact, nil
}

func TestArtifactCacheCompilesOncePerSource(t *testing.T) {
	inner := &countingHost{}
	cache := NewArtifactCache(inner)

	a1, err := cache.Compile("input.age > 18", "")
	require.NoError(t, err)
	a2, err := cache.Compile("input.age > 18", "")
	require.NoError(t, err)

	require.Equal(t, a1, a2)
	require.Equal(t, 1, inner.compiles)
	require.Equal(t, 1, cache.Len())
}

func TestArtifactCacheDistinguishesEntryPoint(t *testing.T) {
	inner := &countingHost{}
	cache := NewArtifactCache(inner)

	_, err := cache.Compile("src", "methodA")
	require.NoError(t, err)
	_, err = cache.Compile("src", "methodB")
	require.NoError(t, err)

	require.Equal(t, 2, inner.compiles)
}

func TestArtifactCacheCachesCompilationFailure(t *testing.T) {
	inner := &countingHost{failOn: "bad"}
	cache := NewArtifactCache(inner)

	_, err1 := cache.Compile("bad", "")
	require.Error(t, err1)
	_, err2 := cache.Compile("bad", "")
	require.Error(t, err2)

	require.Equal(t, 1, inner.compiles)
}

func TestSourceDigestDeterministicAndDistinguishesEntryPoint(t *testing.T) {
	d1 := SourceDigest("x", "a")
	d2 := SourceDigest("x", "a")
	d3 := SourceDigest("x", "b")

	require.Equal(t, d1, d2)
	require.NotEqual(t, d1, d3)
}

func TestArtifactCacheInvokeDelegates(t *testing.T) {
	inner := &countingHost{}
	cache := NewArtifactCache(inner)

	artifact, err := cache.Compile("src", "")
	require.NoError(t, err)

	result, err := cache.Invoke(artifact, InvokeArgs{})
	require.NoError(t, err)
	require.Equal(t, artifact, result)
}
