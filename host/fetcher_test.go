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
	"testing"

	"github.com/stretchr/testify/require"
)

type countingFetcher struct {
	fetches int
}

func (f *countingFetcher) Fetch(url string) ([]byte, error) {
	f.fetches++
	return []byte(url), nil
}

func TestCachingFetcherMemoizesCachePrefixedURLs(t *testing.T) {
	inner := &countingFetcher{}
	f := NewCachingFetcher(inner)

	b1, err := f.Fetch("cache:http://example.com/rules.js")
	require.NoError(t, err)
	b2, err := f.Fetch("cache:http://example.com/rules.js")
	require.NoError(t, err)

	require.Equal(t, b1, b2)
	require.Equal(t, 1, inner.fetches)
}

func TestCachingFetcherPassesThroughNonCacheURLs(t *testing.T) {
	inner := &countingFetcher{}
	f := NewCachingFetcher(inner)

	_, err := f.Fetch("http://example.com/rules.js")
	require.NoError(t, err)
	_, err = f.Fetch("http://example.com/rules.js")
	require.NoError(t, err)

	require.Equal(t, 2, inner.fetches)
}
