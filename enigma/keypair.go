package enigma

import (
	"crypto/ecdh"
	"fmt"
)

// KeySize is the length in bytes of an X25519 private or public key.
const KeySize = 32

// UserKeypair is a deterministic X25519 keypair derived from a Seed.
// Immutable for the client's lifetime.
type UserKeypair struct {
	priv *ecdh.PrivateKey
	pub  [KeySize]byte
}

// KeyPairFromSeed derives an X25519 keypair from a 32-byte seed. The
// private scalar is clamped per RFC 7748 by crypto/ecdh's X25519
// implementation; the public key is the base-point multiplication of
// that scalar. This is a pure function of seed: calling it twice with
// the same seed yields equal bytes (spec property 1, keypair
// determinism).
func KeyPairFromSeed(seed Seed) (*UserKeypair, error) {
	priv, err := ecdh.X25519().NewPrivateKey(seed[:])
	if err != nil {
		return nil, &CryptoError{Detail: fmt.Sprintf("derive x25519 keypair: %v", err)}
	}

	kp := &UserKeypair{priv: priv}
	copy(kp.pub[:], priv.PublicKey().Bytes())
	return kp, nil
}

// PublicKey returns the 32-byte X25519 public key.
func (k *UserKeypair) PublicKey() [KeySize]byte {
	return k.pub
}

// ecdhPrivate exposes the underlying *ecdh.PrivateKey for use by the
// tx-key deriver in this package. Unexported: callers outside enigma
// only ever see the 32-byte public key.
func (k *UserKeypair) ecdhPrivate() *ecdh.PrivateKey {
	return k.priv
}

// sharedSecret computes the raw X25519 ECDH shared secret with a peer's
// 32-byte public key.
func (k *UserKeypair) sharedSecret(peerPub [KeySize]byte) ([]byte, error) {
	curve := ecdh.X25519()
	peer, err := curve.NewPublicKey(peerPub[:])
	if err != nil {
		return nil, &CryptoError{Detail: fmt.Sprintf("parse peer public key: %v", err)}
	}

	shared, err := k.priv.ECDH(peer)
	if err != nil {
		return nil, &CryptoError{Detail: fmt.Sprintf("x25519 ecdh: %v", err)}
	}
	return shared, nil
}
