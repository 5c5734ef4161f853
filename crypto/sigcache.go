// sigcache.go caches recovered signer addresses keyed by
// keccak256(hash || sig), so that repeated seal checks of the same header
// skip the ecrecover step.
package crypto

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
)

// DefaultSigCacheSize is used when NewSigCache is given a non-positive size.
const DefaultSigCacheSize = 4096

// SigCacheStats holds hit/miss statistics for a SigCache.
type SigCacheStats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// SigCache is a thread-safe adaptive replacement cache of recovered
// addresses.
type SigCache struct {
	arc *lru.ARCCache

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewSigCache creates a signature cache holding up to size entries.
func NewSigCache(size int) *SigCache {
	if size <= 0 {
		size = DefaultSigCacheSize
	}
	arc, err := lru.NewARC(size)
	if err != nil {
		// Only returned for non-positive sizes.
		panic(err)
	}
	return &SigCache{arc: arc}
}

func sigCacheKey(hash, sig []byte) [HashLength]byte {
	return Keccak256Hash(hash, sig)
}

// Recover returns the signer address for (hash, sig), consulting the cache
// first. Failed recoveries are not cached.
func (c *SigCache) Recover(hash, sig []byte) ([AddressLength]byte, error) {
	key := sigCacheKey(hash, sig)
	if v, ok := c.arc.Get(key); ok {
		c.hits.Add(1)
		return v.([AddressLength]byte), nil
	}
	c.misses.Add(1)
	addr, err := RecoverAddress(hash, sig)
	if err != nil {
		return addr, err
	}
	c.arc.Add(key, addr)
	return addr, nil
}

// Len returns the number of cached entries.
func (c *SigCache) Len() int { return c.arc.Len() }

// Purge drops all entries and resets the statistics.
func (c *SigCache) Purge() {
	c.arc.Purge()
	c.hits.Store(0)
	c.misses.Store(0)
}

// Stats returns a snapshot of the cache statistics.
func (c *SigCache) Stats() SigCacheStats {
	return SigCacheStats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.arc.Len(),
	}
}
