package enigma

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedKeypair(t *testing.T, fill byte) *UserKeypair {
	t.Helper()
	seed, err := SeedFromBytes(bytes.Repeat([]byte{fill}, SeedSize))
	require.NoError(t, err)
	kp, err := KeyPairFromSeed(seed)
	require.NoError(t, err)
	return kp
}

// TestSeal_Open_RoundTrip is spec property 2: open(seal(ch, j)[64..],
// seal(...)[0..32]) == utf8(ch ‖ canonical_json(j)).
func TestSeal_Open_RoundTrip(t *testing.T) {
	kp := fixedKeypair(t, 0x01)
	ioPub := fixedKeypair(t, 0x02).PublicKey()

	payload := map[string]interface{}{"release": map[string]interface{}{}}
	codeHash := "aa11bb22cc33dd44ee55ff66001122334455667788990011223344556677889"

	envelope, err := kp.Seal(ioPub, codeHash, payload)
	require.NoError(t, err)

	nonce, senderPub, ciphertext, err := SplitEnvelope(envelope)
	require.NoError(t, err)
	assert.Equal(t, kp.PublicKey(), senderPub)

	plaintext, err := kp.Open(ioPub, nonce, ciphertext)
	require.NoError(t, err)

	canonical, err := CanonicalJSON(payload)
	require.NoError(t, err)
	expected := append([]byte(codeHash), canonical...)

	assert.Equal(t, expected, plaintext)
}

// TestEnvelopeLayout is spec property 3: out[32..64] == self.pub, and
// out[0..32] is not constant across calls.
func TestEnvelopeLayout(t *testing.T) {
	kp := fixedKeypair(t, 0x03)
	ioPub := fixedKeypair(t, 0x04).PublicKey()

	env1, err := kp.Seal(ioPub, "00", "a")
	require.NoError(t, err)
	env2, err := kp.Seal(ioPub, "00", "a")
	require.NoError(t, err)

	_, senderPub1, _, err := SplitEnvelope(env1)
	require.NoError(t, err)
	assert.Equal(t, kp.PublicKey(), senderPub1)

	nonce1, _, _, err := SplitEnvelope(env1)
	require.NoError(t, err)
	nonce2, _, _, err := SplitEnvelope(env2)
	require.NoError(t, err)
	assert.NotEqual(t, nonce1, nonce2, "nonces must be freshly sampled per seal")
}

// TestOpen_EmptyCiphertext is spec property 5: open([], any_nonce) == [].
func TestOpen_EmptyCiphertext(t *testing.T) {
	kp := fixedKeypair(t, 0x05)
	ioPub := fixedKeypair(t, 0x06).PublicKey()
	var nonce [NonceSize]byte

	pt, err := kp.Open(ioPub, nonce, nil)
	require.NoError(t, err)
	assert.Empty(t, pt)

	pt, err = kp.Open(ioPub, nonce, []byte{})
	require.NoError(t, err)
	assert.Empty(t, pt)
}

func TestSplitEnvelope_RejectsShortEnvelope(t *testing.T) {
	_, _, _, err := SplitEnvelope(make([]byte, 10))
	require.Error(t, err)
	var cryptoErr *CryptoError
	assert.ErrorAs(t, err, &cryptoErr)
}

func TestIsOwnEnvelope(t *testing.T) {
	kp := fixedKeypair(t, 0x07)
	other := fixedKeypair(t, 0x08)

	assert.True(t, kp.IsOwnEnvelope(kp.PublicKey()))
	assert.False(t, kp.IsOwnEnvelope(other.PublicKey()))
}

func TestSeal_CanonicalJSONIsDeterministicAcrossKeyOrder(t *testing.T) {
	kp := fixedKeypair(t, 0x09)
	ioPub := fixedKeypair(t, 0x0a).PublicKey()

	var nonce [NonceSize]byte
	payloadA := map[string]interface{}{"b": 1, "a": 2}
	payloadB := map[string]interface{}{"a": 2, "b": 1}

	envA, err := kp.sealWithNonce(ioPub, nonce, "00", payloadA)
	require.NoError(t, err)
	envB, err := kp.sealWithNonce(ioPub, nonce, "00", payloadB)
	require.NoError(t, err)

	assert.Equal(t, envA, envB)
}
