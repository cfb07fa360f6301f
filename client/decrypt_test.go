package client

import (
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/scrtlabs/secretjs-go/enigma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sealForTest seals plaintext under a fresh nonce using the given
// keypair/ioPub pair, standing in for what the chain's enclave would
// produce when answering a message sealed under that same tx key.
func sealForTest(t *testing.T, kp *enigma.UserKeypair, ioPub [enigma.KeySize]byte, plaintext []byte) (ciphertext []byte, nonce [enigma.NonceSize]byte) {
	t.Helper()
	envelope, err := kp.Seal(ioPub, "", plaintext)
	require.NoError(t, err)
	n, _, ct, err := enigma.SplitEnvelope(envelope)
	require.NoError(t, err)
	return ct, n
}

func TestDecryptor_DataRoundTrip(t *testing.T) {
	kp := testKeypair(t, 0x11)
	ioPub := testKeypair(t, 0x12).PublicKey()
	decryptor := NewDecryptor(kp, ioPub)

	respPlaintext := []byte("hello from contract")
	respB64 := base64.StdEncoding.EncodeToString(respPlaintext)

	ct, nonce := sealForTest(t, kp, ioPub, []byte(respB64))
	dataHex := hex.EncodeToString(ct)

	got, err := decryptor.DecryptData(nonce, dataHex)
	require.NoError(t, err)
	assert.Equal(t, respPlaintext, got)
}

func TestDecryptor_DataInvalidHexIsCryptoError(t *testing.T) {
	kp := testKeypair(t, 0x13)
	ioPub := testKeypair(t, 0x14).PublicKey()
	decryptor := NewDecryptor(kp, ioPub)

	var nonce [enigma.NonceSize]byte
	_, err := decryptor.DecryptData(nonce, "not-hex!!")
	require.Error(t, err)
	var cryptoErr *enigma.CryptoError
	assert.ErrorAs(t, err, &cryptoErr)
}

func TestDecryptor_LogsBestEffortPerAttribute(t *testing.T) {
	kp := testKeypair(t, 0x15)
	ioPub := testKeypair(t, 0x16).PublicKey()
	decryptor := NewDecryptor(kp, ioPub)

	ct, nonce := sealForTest(t, kp, ioPub, []byte("decryptable"))

	logs := []TxLog{{
		Events: []WasmEvent{
			{
				Type: "wasm",
				Attributes: []WasmAttribute{
					{Key: "contract_address", Value: "secret1abc"}, // not base64 -> unchanged
					{Key: "result", Value: base64.StdEncoding.EncodeToString(ct)},
				},
			},
			{Type: "message", Attributes: []WasmAttribute{{Key: "action", Value: "execute"}}},
		},
	}}

	out := decryptor.DecryptLogs(nonce, logs)
	require.Len(t, out, 1)
	assert.Equal(t, "secret1abc", out[0].Events[0].Attributes[0].Value)
	assert.Equal(t, "decryptable", out[0].Events[0].Attributes[1].Value)
	assert.Equal(t, "execute", out[0].Events[1].Attributes[0].Value, "non-wasm events pass through untouched")
}

func TestDecryptor_RawLogMatchAndReplace(t *testing.T) {
	kp := testKeypair(t, 0x17)
	ioPub := testKeypair(t, 0x18).PublicKey()
	decryptor := NewDecryptor(kp, ioPub)

	ct, nonce := sealForTest(t, kp, ioPub, []byte("insufficient funds"))
	encoded := base64.StdEncoding.EncodeToString(ct)

	rawLog := "contract failed: encrypted: " + encoded + ": failed to execute message; message index: 0"
	got, err := decryptor.DecryptRawLog(nonce, rawLog)
	require.NoError(t, err)
	assert.Equal(t, "contract failed: encrypted: insufficient funds: failed to execute message; message index: 0", got)
}

func TestDecryptor_RawLogNoMatchPassesThrough(t *testing.T) {
	kp := testKeypair(t, 0x19)
	ioPub := testKeypair(t, 0x1a).PublicKey()
	decryptor := NewDecryptor(kp, ioPub)

	var nonce [enigma.NonceSize]byte
	got, err := decryptor.DecryptRawLog(nonce, "out of gas")
	require.NoError(t, err)
	assert.Equal(t, "out of gas", got)
}

func TestDecryptor_SmartQueryErrorPattern(t *testing.T) {
	kp := testKeypair(t, 0x1b)
	ioPub := testKeypair(t, 0x1c).PublicKey()
	decryptor := NewDecryptor(kp, ioPub)

	ct, nonce := sealForTest(t, kp, ioPub, []byte("not found"))
	encoded := base64.StdEncoding.EncodeToString(ct)

	body := "contract failed: encrypted: " + encoded + " (HTTP 500)"
	pt, ok, err := decryptor.DecryptSmartQueryError(nonce, body)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "not found", pt)
}

func TestDecryptor_SmartQueryErrorNoMatch(t *testing.T) {
	kp := testKeypair(t, 0x1d)
	ioPub := testKeypair(t, 0x1e).PublicKey()
	decryptor := NewDecryptor(kp, ioPub)

	var nonce [enigma.NonceSize]byte
	_, ok, err := decryptor.DecryptSmartQueryError(nonce, "some unrelated error")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDecryptor_SmartQueryResultDoubleDecodePipeline(t *testing.T) {
	kp := testKeypair(t, 0x1f)
	ioPub := testKeypair(t, 0x20).PublicKey()
	decryptor := NewDecryptor(kp, ioPub)

	finalJSON := []byte(`{"balance":"100"}`)
	innerB64 := base64.StdEncoding.EncodeToString(finalJSON)

	ct, nonce := sealForTest(t, kp, ioPub, []byte(innerB64))
	resultSmart := base64.StdEncoding.EncodeToString(ct)

	got, err := decryptor.DecryptSmartQueryResult(nonce, resultSmart)
	require.NoError(t, err)
	assert.Equal(t, finalJSON, got)
}

func TestDecryptor_RecoverHistorical_OwnEnvelope(t *testing.T) {
	kp := testKeypair(t, 0x21)
	ioPub := testKeypair(t, 0x22).PublicKey()

	codeHash := "aa11bb22cc33dd44ee55ff660011223344556677889900112233445566778899"
	payload := map[string]interface{}{"transfer": map[string]interface{}{}}
	envelope, err := kp.Seal(ioPub, codeHash, payload)
	require.NoError(t, err)

	decryptor := NewDecryptor(kp, ioPub)
	result, ok, err := decryptor.RecoverHistorical(base64.StdEncoding.EncodeToString(envelope))
	require.NoError(t, err)
	require.True(t, ok)

	canonical, err := enigma.CanonicalJSON(payload)
	require.NoError(t, err)
	assert.Equal(t, canonical, result.Plaintext)
}

func TestDecryptor_RecoverHistorical_OtherPartyLeftUntouched(t *testing.T) {
	owner := testKeypair(t, 0x23)
	other := testKeypair(t, 0x24)
	ioPub := testKeypair(t, 0x25).PublicKey()

	envelope, err := other.Seal(ioPub, "aa", map[string]interface{}{"x": 1})
	require.NoError(t, err)

	decryptor := NewDecryptor(owner, ioPub)
	_, ok, err := decryptor.RecoverHistorical(base64.StdEncoding.EncodeToString(envelope))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDecryptor_RecoverHistorical_RejectsShortEnvelope(t *testing.T) {
	kp := testKeypair(t, 0x26)
	ioPub := testKeypair(t, 0x27).PublicKey()
	decryptor := NewDecryptor(kp, ioPub)

	_, _, err := decryptor.RecoverHistorical(base64.StdEncoding.EncodeToString([]byte("short")))
	require.Error(t, err)
}
