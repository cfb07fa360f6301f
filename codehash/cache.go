// Package codehash caches the immutable code hash the chain assigns to
// every uploaded WASM blob, keyed either by numeric code ID or by
// contract address. Entries are inserted once and never evicted or
// invalidated; code hashes never change once the contract exists.
package codehash

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/scrtlabs/secretjs-go/internal/metrics"
)

const hashHexLen = 64

// Fetcher resolves a code hash from the chain on a cache miss.
type Fetcher interface {
	FetchByCodeID(ctx context.Context, codeID uint64) (string, error)
	FetchByContractAddr(ctx context.Context, addr string) (string, error)
}

// Cache is an insert-only code-hash cache with two independent
// namespaces (by code ID, by contract address) so that a numeric
// string can never collide with an address string. Concurrent misses
// for the same key share a single outstanding fetch.
type Cache struct {
	fetcher Fetcher

	mu        sync.RWMutex
	byCodeID  map[uint64]string
	byAddress map[string]string

	sf singleflight.Group
}

// New wires a Fetcher into a fresh, empty cache.
func New(fetcher Fetcher) *Cache {
	return &Cache{
		fetcher:   fetcher,
		byCodeID:  make(map[uint64]string),
		byAddress: make(map[string]string),
	}
}

// ByCodeID returns the lowercase-hex code hash for a code ID,
// fetching and caching it on first use.
func (c *Cache) ByCodeID(ctx context.Context, codeID uint64) (string, error) {
	start := time.Now()

	c.mu.RLock()
	if h, ok := c.byCodeID[codeID]; ok {
		c.mu.RUnlock()
		metrics.CodeHashCacheLookups.WithLabelValues("code_id", "hit").Inc()
		metrics.GetGlobalCollector().RecordCodeHashLookup(true, time.Since(start))
		return h, nil
	}
	c.mu.RUnlock()
	metrics.CodeHashCacheLookups.WithLabelValues("code_id", "miss").Inc()
	defer func() {
		metrics.GetGlobalCollector().RecordCodeHashLookup(false, time.Since(start))
	}()

	key := "code:" + strconv.FormatUint(codeID, 10)
	v, err, _ := c.sf.Do(key, func() (interface{}, error) {
		c.mu.RLock()
		if h, ok := c.byCodeID[codeID]; ok {
			c.mu.RUnlock()
			return h, nil
		}
		c.mu.RUnlock()

		hash, err := c.fetcher.FetchByCodeID(ctx, codeID)
		if err != nil {
			return "", err
		}
		hash = strings.ToLower(hash)
		if len(hash) != hashHexLen {
			return "", errUnexpectedLength(len(hash))
		}

		c.mu.Lock()
		c.byCodeID[codeID] = hash
		c.mu.Unlock()
		return hash, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// ByContractAddr returns the lowercase-hex code hash for a contract
// address, fetching and caching it on first use.
func (c *Cache) ByContractAddr(ctx context.Context, addr string) (string, error) {
	start := time.Now()

	c.mu.RLock()
	if h, ok := c.byAddress[addr]; ok {
		c.mu.RUnlock()
		metrics.CodeHashCacheLookups.WithLabelValues("address", "hit").Inc()
		metrics.GetGlobalCollector().RecordCodeHashLookup(true, time.Since(start))
		return h, nil
	}
	c.mu.RUnlock()
	metrics.CodeHashCacheLookups.WithLabelValues("address", "miss").Inc()
	defer func() {
		metrics.GetGlobalCollector().RecordCodeHashLookup(false, time.Since(start))
	}()

	key := "addr:" + addr
	v, err, _ := c.sf.Do(key, func() (interface{}, error) {
		c.mu.RLock()
		if h, ok := c.byAddress[addr]; ok {
			c.mu.RUnlock()
			return h, nil
		}
		c.mu.RUnlock()

		hash, err := c.fetcher.FetchByContractAddr(ctx, addr)
		if err != nil {
			return "", err
		}
		hash = strings.ToLower(hash)
		if len(hash) != hashHexLen {
			return "", errUnexpectedLength(len(hash))
		}

		c.mu.Lock()
		c.byAddress[addr] = hash
		c.mu.Unlock()
		return hash, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Len reports the total number of cached entries across both
// namespaces. Exposed for tests and diagnostics.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byCodeID) + len(c.byAddress)
}

func errUnexpectedLength(got int) error {
	return fmt.Errorf("codehash: expected 64 hex characters, got %d", got)
}
