// Package enigma implements the client-side transparent encryption
// pipeline: seed/keypair derivation, consensus I/O pubkey fetch, per-tx
// key derivation, and the AES-SIV envelope codec.
package enigma

import "fmt"

// TransportError means the chain was unreachable, or responded with a
// non-2xx status whose body carried no recognizable error message.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("enigma: transport error during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError is a non-2xx response with a parseable body. Body is the
// raw server message, which may itself be an encrypted error a
// caller-level wrapper later decrypts.
type ServerError struct {
	Status int
	Body   string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("enigma: server error (status %d): %s", e.Status, e.Body)
}

// SchemaError means response JSON failed an expected structural check
// (missing result, wrong type, and similar).
type SchemaError struct {
	Detail string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("enigma: schema error: %s", e.Detail)
}

// CryptoError means AES-SIV authentication failed, HKDF produced the
// wrong-length output, or an envelope was shorter than the minimum
// 64-byte header.
type CryptoError struct {
	Detail string
}

func (e *CryptoError) Error() string {
	return fmt.Sprintf("enigma: crypto error: %s", e.Detail)
}

// ContractNotFound means a contract lookup returned null, or an error
// prefixed "not found: contract".
type ContractNotFound struct {
	Address string
}

func (e *ContractNotFound) Error() string {
	return fmt.Sprintf("enigma: contract not found: %s", e.Address)
}

// DecryptErrorWrappedError means decryption of a cipher fragment
// embedded inside an error string failed; the original error message is
// preserved alongside the decrypt failure.
type DecryptErrorWrappedError struct {
	Original error
	DecryptErr error
}

func (e *DecryptErrorWrappedError) Error() string {
	return fmt.Sprintf("enigma: failed to decrypt embedded error (%v); original error: %v", e.DecryptErr, e.Original)
}

func (e *DecryptErrorWrappedError) Unwrap() error { return e.Original }
