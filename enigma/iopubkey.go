package enigma

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/scrtlabs/secretjs-go/internal/metrics"
)

// PubKeySource fetches the chain's consensus I/O exchange public key.
// Implementations issue a single GET to the chain's
// /reg/consensus-io-exch-pubkey-style endpoint and return the raw
// base64 body of result.ioExchPubkey.
type PubKeySource interface {
	FetchIoExchPubKeyBase64(ctx context.Context) (string, error)
}

// IoPubKeyCache fetches and caches the chain's 32-byte consensus I/O
// public key. The value is write-once, read-many for the client's
// lifetime; concurrent calls before the first completes issue at most
// one outstanding request (single-flight memoization), satisfying spec
// property 7 (zero network requests on a cached second call).
type IoPubKeyCache struct {
	source PubKeySource

	mu     sync.RWMutex
	cached *[KeySize]byte

	sf singleflight.Group
}

// NewIoPubKeyCache wires a PubKeySource into a fresh, empty cache.
func NewIoPubKeyCache(source PubKeySource) *IoPubKeyCache {
	return &IoPubKeyCache{source: source}
}

// Get returns the cached value if present, otherwise fetches, validates,
// caches, and returns it. Concurrent callers racing on a miss share a
// single in-flight fetch.
func (c *IoPubKeyCache) Get(ctx context.Context) ([KeySize]byte, error) {
	c.mu.RLock()
	if c.cached != nil {
		v := *c.cached
		c.mu.RUnlock()
		metrics.IoPubKeyFetches.WithLabelValues("hit").Inc()
		return v, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.sf.Do("io-exch-pubkey", func() (interface{}, error) {
		c.mu.RLock()
		if c.cached != nil {
			v := *c.cached
			c.mu.RUnlock()
			return v, nil
		}
		c.mu.RUnlock()

		b64, err := c.source.FetchIoExchPubKeyBase64(ctx)
		if err != nil {
			metrics.IoPubKeyFetches.WithLabelValues("miss_error").Inc()
			return [KeySize]byte{}, &TransportError{Op: "get_consensus_io_pubkey", Err: err}
		}

		raw, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			metrics.IoPubKeyFetches.WithLabelValues("miss_error").Inc()
			return [KeySize]byte{}, &SchemaError{Detail: fmt.Sprintf("ioExchPubkey is not valid base64: %v", err)}
		}
		if len(raw) != KeySize {
			metrics.IoPubKeyFetches.WithLabelValues("miss_error").Inc()
			return [KeySize]byte{}, &SchemaError{Detail: fmt.Sprintf("ioExchPubkey must be %d bytes, got %d", KeySize, len(raw))}
		}

		var out [KeySize]byte
		copy(out[:], raw)

		c.mu.Lock()
		c.cached = &out
		c.mu.Unlock()

		metrics.IoPubKeyFetches.WithLabelValues("miss_ok").Inc()
		return out, nil
	})
	if err != nil {
		return [KeySize]byte{}, err
	}
	return v.([KeySize]byte), nil
}

// reset clears the cached value. Exposed for tests only; the live
// client never needs to invalidate a write-once value.
func (c *IoPubKeyCache) reset() {
	c.mu.Lock()
	c.cached = nil
	c.mu.Unlock()
}
