// Package txsign provides the transaction-signing seam: a Signer is
// either a callback over raw sign-bytes or an OfflineSigner that signs
// a whole StdSignDoc. Neither variant manages user signing
// keys beyond what is injected; mnemonic/HD derivation is out of scope.
package txsign

import (
	"fmt"

	"github.com/scrtlabs/secretjs-go/enigma"
	"github.com/scrtlabs/secretjs-go/wire"
)

// PubKeyType names the amino type URL carried in a StdSignature.
type PubKeyType string

const PubKeyTypeSecp256k1 PubKeyType = "tendermint/PubKeySecp256k1"

// StdFee is the amino fee object embedded in a StdSignDoc.
type StdFee struct {
	Amount []StdCoin `json:"amount"`
	Gas    string    `json:"gas"`
}

// StdCoin is a single denom/amount pair.
type StdCoin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

// StdSignDoc is the exact byte-for-byte document an OfflineSigner or
// signing callback signs over, amino-JSON style: field order is fixed
// and keys are canonically sorted within each object.
type StdSignDoc struct {
	ChainID       string      `json:"chain_id"`
	AccountNumber string      `json:"account_number"`
	Sequence      string      `json:"sequence"`
	Fee           StdFee      `json:"fee"`
	Msgs          []wire.Msg  `json:"msgs"`
	Memo          string      `json:"memo"`
}

// CanonicalBytes renders the sign doc as canonical (sorted-key,
// whitespace-free) JSON, the exact bytes a signer signs over.
func (d StdSignDoc) CanonicalBytes() ([]byte, error) {
	return enigma.CanonicalJSON(d)
}

// StdSignature is the amino signature envelope attached to a signed
// transaction: a pubkey/type pair plus the raw 64-byte r‖s signature.
type StdSignature struct {
	PubKeyType PubKeyType `json:"pub_key_type"`
	PubKey     []byte     `json:"pub_key"`
	Signature  []byte     `json:"signature"`
}

// SignResult pairs the signed document with its signature, the shape
// every signing path (callback or offline) must produce.
type SignResult struct {
	Signed    StdSignDoc
	Signature StdSignature
}

// OfflineSigner signs a StdSignDoc locally and returns both the
// (possibly unmodified) signed document and its signature. Holding the
// private key is the implementation's responsibility; RawPrivKeySigner
// is the default.
type OfflineSigner interface {
	Sign(doc StdSignDoc) (SignResult, error)
}

// CallbackFunc signs raw bytes and returns a signature, for callers
// that hold keys outside this process (hardware wallets, remote
// signing services) and only expose a sign-bytes operation.
type CallbackFunc func(signBytes []byte) (StdSignature, error)

// Signer is the injected signing seam: exactly one of Callback or
// Offline is set.
type Signer struct {
	Callback CallbackFunc
	Offline  OfflineSigner
}

// NewCallbackSigner wraps a signing callback.
func NewCallbackSigner(fn CallbackFunc) Signer {
	return Signer{Callback: fn}
}

// NewOfflineSigner wraps an OfflineSigner implementation.
func NewOfflineSigner(impl OfflineSigner) Signer {
	return Signer{Offline: impl}
}

// Sign dispatches to whichever variant is populated.
func (s Signer) Sign(doc StdSignDoc) (SignResult, error) {
	switch {
	case s.Offline != nil:
		return s.Offline.Sign(doc)
	case s.Callback != nil:
		signBytes, err := doc.CanonicalBytes()
		if err != nil {
			return SignResult{}, err
		}
		sig, err := s.Callback(signBytes)
		if err != nil {
			return SignResult{}, err
		}
		return SignResult{Signed: doc, Signature: sig}, nil
	default:
		return SignResult{}, fmt.Errorf("txsign: signer has neither Callback nor Offline set")
	}
}
