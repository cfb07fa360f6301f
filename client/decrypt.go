package client

import (
	"encoding/base64"
	"encoding/hex"
	"regexp"
	"time"

	"github.com/scrtlabs/secretjs-go/enigma"
	"github.com/scrtlabs/secretjs-go/internal/metrics"
)

// execErrorPattern matches an encrypted error surfaced from executing
// or instantiating a contract (spec §6 "error regex contracts").
var execErrorPattern = regexp.MustCompile(`contract failed: encrypted: (.+?): failed to execute message; message index: 0`)

// smartQueryErrorPattern matches an encrypted error surfaced from a
// failed smart query (HTTP 500 response).
var smartQueryErrorPattern = regexp.MustCompile(`contract failed: encrypted: (.+?) \(HTTP 500\)`)

// WasmAttribute is a single key/value pair from a wasm event log.
type WasmAttribute struct {
	Key   string
	Value string
}

// WasmEvent is one "wasm"-typed event within a transaction's logs.
type WasmEvent struct {
	Type       string
	Attributes []WasmAttribute
}

// TxLog is one per-message log entry of a broadcast transaction
// result, in the shape this decryptor needs.
type TxLog struct {
	Events []WasmEvent
}

// Decryptor decrypts a chain response using a retained nonce (the
// post-send path) or by recovering the nonce from a historical
// envelope addressed to this keypair.
type Decryptor struct {
	keypair *enigma.UserKeypair
	ioPub   [enigma.KeySize]byte
}

// NewDecryptor wires a keypair and the consensus I/O public key used
// to recompute the tx key on the decrypt side.
func NewDecryptor(keypair *enigma.UserKeypair, ioPub [enigma.KeySize]byte) *Decryptor {
	return &Decryptor{keypair: keypair, ioPub: ioPub}
}

// DecryptData decrypts the hex-encoded `data` field of a tx result.
// The chain double-encodes: decrypt first, then base64-decode the
// resulting UTF-8 string (spec §4.G post-send path).
func (d *Decryptor) DecryptData(nonce [enigma.NonceSize]byte, dataHex string) ([]byte, error) {
	start := time.Now()
	metrics.EnvelopeOperations.WithLabelValues("open").Inc()
	success := false
	defer func() {
		elapsed := time.Since(start)
		metrics.EnvelopeOperationDuration.WithLabelValues("open").Observe(elapsed.Seconds())
		metrics.GetGlobalCollector().RecordOpen(success, elapsed)
	}()

	ciphertext, err := hex.DecodeString(dataHex)
	if err != nil {
		metrics.EnvelopeErrors.WithLabelValues("open").Inc()
		return nil, &enigma.CryptoError{Detail: "tx data is not valid hex"}
	}

	plaintext, err := d.keypair.Open(d.ioPub, nonce, ciphertext)
	if err != nil {
		metrics.EnvelopeErrors.WithLabelValues("open").Inc()
		return nil, err
	}
	success = true
	if len(plaintext) == 0 {
		return plaintext, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(string(plaintext))
	if err != nil {
		return nil, &enigma.CryptoError{Detail: "decrypted tx data is not valid base64"}
	}
	return decoded, nil
}

// DecryptLogs walks every wasm event's attributes and best-effort
// decrypts each key and value. A single attribute that fails to
// base64-decode or decrypt is left unchanged; it must not abort
// decryption of the remaining attributes (spec §4.G, best-effort per
// attribute).
func (d *Decryptor) DecryptLogs(nonce [enigma.NonceSize]byte, logs []TxLog) []TxLog {
	out := make([]TxLog, len(logs))
	for i, lg := range logs {
		events := make([]WasmEvent, len(lg.Events))
		for j, ev := range lg.Events {
			if ev.Type != "wasm" {
				events[j] = ev
				continue
			}
			attrs := make([]WasmAttribute, len(ev.Attributes))
			for k, a := range ev.Attributes {
				attrs[k] = WasmAttribute{
					Key:   d.bestEffortDecryptField(nonce, a.Key),
					Value: d.bestEffortDecryptField(nonce, a.Value),
				}
			}
			events[j] = WasmEvent{Type: ev.Type, Attributes: attrs}
		}
		out[i] = TxLog{Events: events}
	}
	return out
}

// bestEffortDecryptField base64-decodes and decrypts a single log
// attribute field, returning the original value unchanged on any
// failure along the way.
func (d *Decryptor) bestEffortDecryptField(nonce [enigma.NonceSize]byte, field string) string {
	raw, err := base64.StdEncoding.DecodeString(field)
	if err != nil {
		return field
	}
	plaintext, err := d.keypair.Open(d.ioPub, nonce, raw)
	if err != nil {
		return field
	}
	return string(plaintext)
}

// DecryptRawLog finds an encrypted exec/instantiate error substring in
// rawLog and replaces it with its UTF-8 plaintext. If the pattern
// doesn't match, rawLog is returned unchanged (not every raw_log is an
// encrypted error).
func (d *Decryptor) DecryptRawLog(nonce [enigma.NonceSize]byte, rawLog string) (string, error) {
	match := execErrorPattern.FindStringSubmatchIndex(rawLog)
	if match == nil {
		return rawLog, nil
	}

	encoded := rawLog[match[2]:match[3]]
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", &enigma.CryptoError{Detail: "raw_log error capture is not valid base64"}
	}
	plaintext, err := d.keypair.Open(d.ioPub, nonce, raw)
	if err != nil {
		return "", err
	}

	return rawLog[:match[2]] + string(plaintext) + rawLog[match[3]:], nil
}

// DecryptSmartQueryError finds an encrypted smart-query (HTTP 500)
// error substring and decrypts it, returning plain text. Unlike
// DecryptRawLog, a non-matching input is reported as a no-op by
// returning ok=false rather than an error.
func (d *Decryptor) DecryptSmartQueryError(nonce [enigma.NonceSize]byte, body string) (plaintext string, ok bool, err error) {
	match := smartQueryErrorPattern.FindStringSubmatch(body)
	if match == nil {
		return "", false, nil
	}

	raw, decErr := base64.StdEncoding.DecodeString(match[1])
	if decErr != nil {
		return "", true, &enigma.CryptoError{Detail: "smart-query error capture is not valid base64"}
	}
	pt, openErr := d.keypair.Open(d.ioPub, nonce, raw)
	if openErr != nil {
		return "", true, openErr
	}
	return string(pt), true, nil
}

// DecryptSmartQueryResult runs the smart-query success pipeline (spec
// §6): fromUtf8 ∘ fromBase64 ∘ fromUtf8 ∘ decrypt ∘ fromBase64 applied
// to result.smart.
func (d *Decryptor) DecryptSmartQueryResult(nonce [enigma.NonceSize]byte, resultSmartBase64 string) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(resultSmartBase64)
	if err != nil {
		return nil, &enigma.CryptoError{Detail: "result.smart is not valid base64"}
	}

	plaintext, err := d.keypair.Open(d.ioPub, nonce, ciphertext)
	if err != nil {
		return nil, err
	}

	// plaintext is a UTF-8 string that is itself a base64 blob, whose
	// decoded bytes are in turn a UTF-8 string holding the final JSON.
	innerBase64 := string(plaintext)
	inner, err := base64.StdEncoding.DecodeString(innerBase64)
	if err != nil {
		return nil, &enigma.CryptoError{Detail: "smart-query plaintext is not valid base64"}
	}
	return inner, nil
}

// HistoricalEnvelope is the result of recovering a nonce from a past
// transaction's stored envelope.
type HistoricalEnvelope struct {
	Nonce     [enigma.NonceSize]byte
	Plaintext []byte // user's original JSON payload, code-hash prefix stripped
}

// RecoverHistorical inspects a base64-encoded msg/init_msg envelope
// from a historical transaction. If the envelope's sender public key
// does not match this keypair, ok is false and the tx is left
// untouched per spec §4.G (it belongs to another party).
func (d *Decryptor) RecoverHistorical(envelopeBase64 string) (result HistoricalEnvelope, ok bool, err error) {
	envelope, err := base64.StdEncoding.DecodeString(envelopeBase64)
	if err != nil {
		return HistoricalEnvelope{}, false, &enigma.CryptoError{Detail: "historical envelope is not valid base64"}
	}

	nonce, senderPub, ciphertext, err := enigma.SplitEnvelope(envelope)
	if err != nil {
		return HistoricalEnvelope{}, false, err
	}
	if !d.keypair.IsOwnEnvelope(senderPub) {
		return HistoricalEnvelope{}, false, nil
	}

	plaintext, err := d.keypair.Open(d.ioPub, nonce, ciphertext)
	if err != nil {
		return HistoricalEnvelope{}, true, err
	}

	payload := stripCodeHashPrefix(plaintext)
	return HistoricalEnvelope{Nonce: nonce, Plaintext: payload}, true, nil
}

// codeHashPrefixLen is the length of the lowercase-hex sha256 code
// hash prepended to every sealed plaintext (spec §3
// OutboundContractMessage, §4.G historical path).
const codeHashPrefixLen = 64

func stripCodeHashPrefix(plaintext []byte) []byte {
	if len(plaintext) < codeHashPrefixLen {
		return plaintext
	}
	return plaintext[codeHashPrefixLen:]
}
