// Package rendercache memoizes transform results keyed by a hash of the raw input files.
package rendercache

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/LegacyCodeHQ/chronograph/depgraph"
)

// Cache is an LRU of transform results. Safe for concurrent use.
type Cache struct {
	results *lru.Cache[uint64, depgraph.Result]

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New creates a cache holding at most size results.
func New(size int) (*Cache, error) {
	results, err := lru.New[uint64, depgraph.Result](size)
	if err != nil {
		return nil, err
	}
	return &Cache{results: results}, nil
}

// Key hashes the inputs in order. Each input is length-prefixed so ("ab", "c") and ("a", "bc")
// hash differently.
func Key(inputs ...[]byte) uint64 {
	d := xxhash.New()
	var size [8]byte
	for _, in := range inputs {
		binary.LittleEndian.PutUint64(size[:], uint64(len(in)))
		_, _ = d.Write(size[:])
		_, _ = d.Write(in)
	}
	return d.Sum64()
}

// GetOrCompute returns the cached result for key, or runs compute and caches its result.
// Errors are not cached. The boolean reports a cache hit.
func (c *Cache) GetOrCompute(key uint64, compute func() (depgraph.Result, error)) (depgraph.Result, bool, error) {
	if result, ok := c.results.Get(key); ok {
		c.hits.Add(1)
		return result, true, nil
	}
	c.misses.Add(1)

	result, err := compute()
	if err != nil {
		return depgraph.Result{}, false, err
	}
	c.results.Add(key, result)
	return result, false, nil
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	return c.results.Len()
}

// Stats returns the hit and miss counts so far.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

// Purge drops every cached result.
func (c *Cache) Purge() {
	c.results.Purge()
}
