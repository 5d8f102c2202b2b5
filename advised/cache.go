/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package advised

import (
	"strconv"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"dirpx.dev/apx/apis"
)

// chainCache maps method keys to resolved interceptor chains.
// Invalidation swaps in a fresh generation, destroying every cached
// chain in one atomic store; readers that already hold the old
// generation keep a consistent (possibly stale) view until their next
// lookup. Misses are collapsed through singleflight, keyed per
// generation so an in-flight computation can never leak a pre-mutation
// chain into a post-mutation generation.
type chainCache struct {
	gen   atomic.Pointer[generation]
	group singleflight.Group
}

// generation is one immutable-until-invalidated cache epoch.
type generation struct {
	id uint64
	m  sync.Map // string (method key) -> []apis.Interceptor
}

// nextGenID feeds generation identities; process-wide is fine, the id
// only needs to distinguish epochs within one singleflight group.
var nextGenID atomic.Uint64

func newChainCache() *chainCache {
	c := &chainCache{}
	c.gen.Store(&generation{id: nextGenID.Add(1)})
	return c
}

// invalidate destroys all cached chains in bulk.
func (c *chainCache) invalidate() {
	c.gen.Store(&generation{id: nextGenID.Add(1)})
}

// chainFor returns the cached chain for m, computing it via build on a
// miss. The fast path is a lock-free load. Duplicate computation by
// concurrent callers is collapsed; the final write lands in the same
// generation the miss was observed in, so a concurrent invalidation
// can never be overwritten with a stale chain.
func (c *chainCache) chainFor(m apis.Method, build func() []apis.Interceptor) []apis.Interceptor {
	g := c.gen.Load()
	key := m.Key()
	if v, ok := g.m.Load(key); ok {
		return v.([]apis.Interceptor)
	}

	v, _, _ := c.group.Do(strconv.FormatUint(g.id, 10)+"|"+key, func() (any, error) {
		chain := build()
		g.m.Store(key, chain)
		return chain, nil
	})
	return v.([]apis.Interceptor)
}
