package enigma

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePubKeySource struct {
	calls  int32
	b64    string
	err    error
	block  chan struct{}
	useBlk bool
}

func (f *fakePubKeySource) FetchIoExchPubKeyBase64(ctx context.Context) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.useBlk {
		<-f.block
	}
	if f.err != nil {
		return "", f.err
	}
	return f.b64, nil
}

func validPubKeyB64() string {
	return base64.StdEncoding.EncodeToString(make([]byte, KeySize))
}

func TestIoPubKeyCache_FetchesOnceAndCaches(t *testing.T) {
	src := &fakePubKeySource{b64: validPubKeyB64()}
	cache := NewIoPubKeyCache(src)

	v1, err := cache.Get(context.Background())
	require.NoError(t, err)
	v2, err := cache.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, v1, v2)
	assert.EqualValues(t, 1, atomic.LoadInt32(&src.calls), "second Get must not hit the network")
}

func TestIoPubKeyCache_ConcurrentMissesShareOneFetch(t *testing.T) {
	src := &fakePubKeySource{b64: validPubKeyB64(), useBlk: true, block: make(chan struct{})}
	cache := NewIoPubKeyCache(src)

	var wg sync.WaitGroup
	const n = 20
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := cache.Get(context.Background())
			assert.NoError(t, err)
		}()
	}

	close(src.block)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&src.calls))
}

func TestIoPubKeyCache_TransportErrorWrapped(t *testing.T) {
	src := &fakePubKeySource{err: errors.New("connection refused")}
	cache := NewIoPubKeyCache(src)

	_, err := cache.Get(context.Background())
	require.Error(t, err)
	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestIoPubKeyCache_InvalidBase64IsSchemaError(t *testing.T) {
	src := &fakePubKeySource{b64: "not-valid-base64!!!"}
	cache := NewIoPubKeyCache(src)

	_, err := cache.Get(context.Background())
	require.Error(t, err)
	var schemaErr *SchemaError
	assert.ErrorAs(t, err, &schemaErr)
}

func TestIoPubKeyCache_WrongLengthIsSchemaError(t *testing.T) {
	src := &fakePubKeySource{b64: base64.StdEncoding.EncodeToString(make([]byte, 16))}
	cache := NewIoPubKeyCache(src)

	_, err := cache.Get(context.Background())
	require.Error(t, err)
	var schemaErr *SchemaError
	assert.ErrorAs(t, err, &schemaErr)
}

func TestIoPubKeyCache_FailedFetchDoesNotPoison(t *testing.T) {
	src := &fakePubKeySource{err: errors.New("unavailable")}
	cache := NewIoPubKeyCache(src)

	_, err := cache.Get(context.Background())
	require.Error(t, err)

	src.err = nil
	src.b64 = validPubKeyB64()

	v, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [KeySize]byte{}, v)
}

func TestIoPubKeyCache_ResetAllowsRefetch(t *testing.T) {
	src := &fakePubKeySource{b64: validPubKeyB64()}
	cache := NewIoPubKeyCache(src)

	_, err := cache.Get(context.Background())
	require.NoError(t, err)
	cache.reset()
	_, err = cache.Get(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 2, atomic.LoadInt32(&src.calls))
}
