// Package core keeps track of known block headers by identity.
package core

import (
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/eth2030/headerhash/core/types"
	"github.com/eth2030/headerhash/crypto"
	"github.com/eth2030/headerhash/log"
	"github.com/eth2030/headerhash/metrics"
)

// DefaultIndexSize is the capacity used when NewHeaderIndex is given a
// non-positive size.
const DefaultIndexSize = 1024

var (
	ErrKnownHeader   = errors.New("header already known")
	ErrUnknownHeader = errors.New("unknown header")
	errNilHeader     = errors.New("nil header")
)

// Metric names recorded by a HeaderIndex.
const (
	MetricAdded      = "index/added"
	MetricDuplicates = "index/duplicates"
	MetricEvicted    = "index/evicted"
	MetricSize       = "index/size"
)

// HeaderIndex is a bounded set of headers keyed by hash. When full, the
// least recently used header is evicted. It is safe for concurrent use.
type HeaderIndex struct {
	headers *lru.Cache
	sigs    *crypto.SigCache
	log     *log.Logger
	metrics *metrics.Registry
}

// NewHeaderIndex creates an index holding up to size headers. Signer
// lookups share sigs when it is non-nil.
func NewHeaderIndex(size int, sigs *crypto.SigCache) *HeaderIndex {
	if size <= 0 {
		size = DefaultIndexSize
	}
	idx := &HeaderIndex{
		sigs:    sigs,
		log:     log.Module("core"),
		metrics: metrics.NewRegistry(),
	}
	cache, err := lru.New(size)
	if err != nil {
		// Only returned for non-positive sizes.
		panic(err)
	}
	idx.headers = cache
	return idx
}

// Add inserts h. It returns ErrKnownHeader if a header with the same hash
// is already present; the stored header is left in place.
//
// Only capacity evictions triggered here count towards MetricEvicted.
// Explicit removals do not.
func (idx *HeaderIndex) Add(h *types.Header) error {
	if h == nil {
		return errNilHeader
	}
	hash := h.Hash()
	known, evicted := idx.headers.ContainsOrAdd(hash, h)
	if known {
		idx.metrics.Counter(MetricDuplicates).Inc()
		return fmt.Errorf("%w: %s", ErrKnownHeader, hash)
	}
	idx.metrics.Counter(MetricAdded).Inc()
	if evicted {
		idx.metrics.Counter(MetricEvicted).Inc()
		idx.log.Debug("Evicted least recently used header", "inserted", hash, "size", idx.headers.Len())
	}
	return nil
}

// InsertHeaders adds a batch of headers in order and returns the number
// inserted before the first failure.
func (idx *HeaderIndex) InsertHeaders(headers []*types.Header) (int, error) {
	for i, h := range headers {
		if err := idx.Add(h); err != nil {
			return i, fmt.Errorf("header %d: %w", i, err)
		}
	}
	return len(headers), nil
}

// Contains reports whether a header with the given hash is present without
// updating its recency.
func (idx *HeaderIndex) Contains(hash types.Hash) bool {
	return idx.headers.Contains(hash)
}

// Has reports whether a header equal to h is present.
func (idx *HeaderIndex) Has(h *types.Header) bool {
	return h != nil && idx.Contains(h.Hash())
}

// Get returns the header with the given hash.
func (idx *HeaderIndex) Get(hash types.Hash) (*types.Header, bool) {
	v, ok := idx.headers.Get(hash)
	if !ok {
		return nil, false
	}
	return v.(*types.Header), true
}

// Parent returns the indexed parent of h.
func (idx *HeaderIndex) Parent(h *types.Header) (*types.Header, bool) {
	if h == nil {
		return nil, false
	}
	return idx.Get(h.ParentHash())
}

// Remove deletes the header with the given hash and reports whether it was
// present.
func (idx *HeaderIndex) Remove(hash types.Hash) bool {
	if !idx.headers.Contains(hash) {
		return false
	}
	idx.headers.Remove(hash)
	return true
}

// Metrics returns the index's metric registry with the size gauge updated.
func (idx *HeaderIndex) Metrics() *metrics.Registry {
	idx.metrics.Gauge(MetricSize).Set(int64(idx.headers.Len()))
	return idx.metrics
}

// Len returns the number of indexed headers.
func (idx *HeaderIndex) Len() int { return idx.headers.Len() }

// Hashes returns the indexed hashes from oldest to newest use.
func (idx *HeaderIndex) Hashes() []types.Hash {
	keys := idx.headers.Keys()
	hashes := make([]types.Hash, len(keys))
	for i, k := range keys {
		hashes[i] = k.(types.Hash)
	}
	return hashes
}

// Signer recovers the sealer of the indexed header with the given hash.
func (idx *HeaderIndex) Signer(hash types.Hash) (types.Address, error) {
	h, ok := idx.Get(hash)
	if !ok {
		return types.Address{}, fmt.Errorf("%w: %s", ErrUnknownHeader, hash)
	}
	return types.RecoverSigner(h, idx.sigs)
}
