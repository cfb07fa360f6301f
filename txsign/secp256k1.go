package txsign

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// RawPrivKeySigner is the default OfflineSigner: it holds a raw
// secp256k1 private key and signs over the SHA-256 digest of the
// canonical sign-bytes, matching the Cosmos SDK's amino/secp256k1
// signature shape (a fixed 64-byte r‖s, no DER wrapping, no recovery
// byte). Mnemonic/HD wallet derivation is out of scope; callers that
// need it construct the private key themselves and pass it in.
type RawPrivKeySigner struct {
	priv *secp256k1.PrivateKey
}

// NewRawPrivKeySigner wraps a 32-byte raw secp256k1 private key.
func NewRawPrivKeySigner(privKeyBytes []byte) (*RawPrivKeySigner, error) {
	if len(privKeyBytes) != 32 {
		return nil, &InvalidKeyError{Len: len(privKeyBytes)}
	}
	priv := secp256k1.PrivKeyFromBytes(privKeyBytes)
	return &RawPrivKeySigner{priv: priv}, nil
}

// PublicKeyCompressed returns the 33-byte SEC1-compressed public key,
// the form the chain's account-lookup and signature-verification
// endpoints expect.
func (s *RawPrivKeySigner) PublicKeyCompressed() []byte {
	return s.priv.PubKey().SerializeCompressed()
}

// Sign signs a StdSignDoc and returns the accompanying StdSignature.
// It satisfies OfflineSigner.
func (s *RawPrivKeySigner) Sign(doc StdSignDoc) (SignResult, error) {
	signBytes, err := doc.CanonicalBytes()
	if err != nil {
		return SignResult{}, err
	}

	hash := sha256.Sum256(signBytes)
	r, sVal, err := ecdsa.Sign(rand.Reader, s.priv.ToECDSA(), hash[:])
	if err != nil {
		return SignResult{}, err
	}

	sig := StdSignature{
		PubKeyType: PubKeyTypeSecp256k1,
		PubKey:     s.PublicKeyCompressed(),
		Signature:  serializeRS(r, sVal),
	}
	return SignResult{Signed: doc, Signature: sig}, nil
}

// serializeRS packs r and s into a fixed 64-byte big-endian signature,
// zero-padded on the left, as the chain's amino signature verifier
// expects (no ASN.1 DER, no recovery id).
func serializeRS(r, s *big.Int) []byte {
	rBytes := r.Bytes()
	sBytes := s.Bytes()

	out := make([]byte, 64)
	copy(out[32-len(rBytes):32], rBytes)
	copy(out[64-len(sBytes):64], sBytes)
	return out
}
