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

import "sync"

// ResourceFetcher retrieves the bytes behind a url:// cell reference
// (§4.5, §6). HTTP/file retrieval is an external collaborator; the core
// only ever sees this interface.
type ResourceFetcher interface {
	Fetch(url string) ([]byte, error)
}

// CachingFetcher memoizes a wrapped ResourceFetcher by url, matching the
// "cache:" url-prefix convention (§4.5): a url beginning with "cache:" is
// fetched once and reused for the lifetime of the process.
type CachingFetcher struct {
	mu    sync.RWMutex
	cache map[string][]byte
	inner ResourceFetcher
}

// NewCachingFetcher wraps inner with a cache: url memoizer.
func NewCachingFetcher(inner ResourceFetcher) *CachingFetcher {
	return &CachingFetcher{cache: make(map[string][]byte), inner: inner}
}

const cachePrefix = "cache:"

// Fetch delegates to the wrapped fetcher, memoizing results for urls
// beginning with "cache:".
func (f *CachingFetcher) Fetch(url string) ([]byte, error) {
	if len(url) < len(cachePrefix) || url[:len(cachePrefix)] != cachePrefix {
		return f.inner.Fetch(url)
	}

	f.mu.RLock()
	if b, ok := f.cache[url]; ok {
		f.mu.RUnlock()
		return b, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.cache[url]; ok {
		return b, nil
	}
	b, err := f.inner.Fetch(url)
	if err != nil {
		return nil, err
	}
	f.cache[url] = b
	return b, nil
}
