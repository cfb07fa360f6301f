// Package client implements the outbound-message encryptor and
// inbound-response decryptor that sit between a caller's plaintext
// contract messages and the chain's wire format.
package client

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"time"

	"github.com/scrtlabs/secretjs-go/codehash"
	"github.com/scrtlabs/secretjs-go/enigma"
	"github.com/scrtlabs/secretjs-go/internal/metrics"
)

// CodeHashResolver resolves a code hash by code ID (instantiate) or by
// contract address (execute, smart query). *codehash.Cache satisfies
// this directly.
type CodeHashResolver interface {
	ByCodeID(ctx context.Context, codeID uint64) (string, error)
	ByContractAddr(ctx context.Context, addr string) (string, error)
}

var _ CodeHashResolver = (*codehash.Cache)(nil)

// IoPubKeySource resolves the chain's consensus I/O public key.
// *enigma.IoPubKeyCache satisfies this directly.
type IoPubKeySource interface {
	Get(ctx context.Context) ([enigma.KeySize]byte, error)
}

// Encryptor seals outbound contract messages, resolving the code hash
// and the chain's I/O public key as needed.
type Encryptor struct {
	keypair  *enigma.UserKeypair
	codeHash CodeHashResolver
	ioPub    IoPubKeySource
}

// NewEncryptor wires the three collaborators component F needs.
func NewEncryptor(keypair *enigma.UserKeypair, codeHash CodeHashResolver, ioPub IoPubKeySource) *Encryptor {
	return &Encryptor{keypair: keypair, codeHash: codeHash, ioPub: ioPub}
}

// SealedMsg is the result of encrypting one outbound message: the
// base64 envelope for the wire, and the nonce the caller must retain
// to later decrypt the chain's response (spec §4.F.5,7).
type SealedMsg struct {
	EnvelopeBase64 string
	Nonce          [enigma.NonceSize]byte
}

func (e *Encryptor) seal(ctx context.Context, codeHash string, payload interface{}) (SealedMsg, error) {
	start := time.Now()
	metrics.EnvelopeOperations.WithLabelValues("seal").Inc()
	defer func() {
		elapsed := time.Since(start)
		metrics.EnvelopeOperationDuration.WithLabelValues("seal").Observe(elapsed.Seconds())
		metrics.GetGlobalCollector().RecordSeal(elapsed)
	}()

	ioPub, err := e.ioPub.Get(ctx)
	if err != nil {
		metrics.EnvelopeErrors.WithLabelValues("seal").Inc()
		return SealedMsg{}, err
	}

	envelope, err := e.keypair.Seal(ioPub, codeHash, payload)
	if err != nil {
		metrics.EnvelopeErrors.WithLabelValues("seal").Inc()
		return SealedMsg{}, err
	}

	nonce, _, _, err := enigma.SplitEnvelope(envelope)
	if err != nil {
		metrics.EnvelopeErrors.WithLabelValues("seal").Inc()
		return SealedMsg{}, err
	}

	return SealedMsg{
		EnvelopeBase64: base64.StdEncoding.EncodeToString(envelope),
		Nonce:          nonce,
	}, nil
}

// EncryptInstantiate resolves the code hash for codeID and seals
// payload for placement in value.init_msg (spec §4.F.1-3, instantiate
// case). callback_code_hash/callback_sig are always empty/nil for a
// user-originated message and are the caller's (wire.Msg's)
// responsibility to set that way, not this function's.
func (e *Encryptor) EncryptInstantiate(ctx context.Context, codeID uint64, payload interface{}) (SealedMsg, error) {
	hash, err := e.codeHash.ByCodeID(ctx, codeID)
	if err != nil {
		return SealedMsg{}, err
	}
	return e.seal(ctx, hash, payload)
}

// EncryptExecute resolves the code hash for contractAddr and seals
// payload for placement in value.msg (spec §4.F.1-3, execute case).
func (e *Encryptor) EncryptExecute(ctx context.Context, contractAddr string, payload interface{}) (SealedMsg, error) {
	hash, err := e.codeHash.ByContractAddr(ctx, contractAddr)
	if err != nil {
		return SealedMsg{}, err
	}
	return e.seal(ctx, hash, payload)
}

// EncryptSmartQuery resolves the code hash for contractAddr, seals
// payload, and returns the hex-of-utf8-of-base64 path segment the
// smart-query REST endpoint expects (spec §6 "on-the-wire encodings").
func (e *Encryptor) EncryptSmartQuery(ctx context.Context, contractAddr string, payload interface{}) (SealedMsg, string, error) {
	sealed, err := e.EncryptExecute(ctx, contractAddr, payload)
	if err != nil {
		return SealedMsg{}, "", err
	}
	hexPath := hex.EncodeToString([]byte(sealed.EnvelopeBase64))
	return sealed, hexPath, nil
}
