package enigma

import (
	"crypto/rand"
	"fmt"
	"io"
)

// EnvelopeHeaderSize is the fixed-length prefix of every envelope:
// nonce(32) ‖ senderPub(32).
const EnvelopeHeaderSize = NonceSize + KeySize

// emptyAD is the single associated-data element every seal/open call
// uses, matching the reference implementation's
// "associated_data = [ empty_ad ]" exactly (spec §4.D.4).
var emptyAD = []byte{}

// Seal produces nonce(32) ‖ senderPub(32) ‖ AES-SIV-ciphertext for the
// plaintext utf8(codeHash ‖ canonicalJSON(payload)).
func (k *UserKeypair) Seal(ioPub [KeySize]byte, codeHash string, payload interface{}) ([]byte, error) {
	var nonce [NonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("enigma: seal: sample nonce: %w", err)
	}
	return k.sealWithNonce(ioPub, nonce, codeHash, payload)
}

// sealWithNonce is Seal with an explicit nonce, isolated for
// determinism in tests (spec property 2, seal/open round-trip).
func (k *UserKeypair) sealWithNonce(ioPub [KeySize]byte, nonce [NonceSize]byte, codeHash string, payload interface{}) ([]byte, error) {
	key, err := k.TxKey(ioPub, nonce)
	if err != nil {
		return nil, err
	}

	canonical, err := CanonicalJSON(payload)
	if err != nil {
		return nil, fmt.Errorf("enigma: seal: canonicalize payload: %w", err)
	}

	plaintext := append([]byte(codeHash), canonical...)

	ciphertext, err := sivSeal(key, emptyAD, plaintext)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, EnvelopeHeaderSize+len(ciphertext))
	out = append(out, nonce[:]...)
	out = append(out, k.pub[:]...)
	out = append(out, ciphertext...)
	return out, nil
}

// Open decrypts an AES-SIV ciphertext (the envelope bytes after the
// 64-byte header) given the nonce recovered from that same envelope.
// An empty ciphertext decrypts to an empty plaintext (spec property 5).
func (k *UserKeypair) Open(ioPub [KeySize]byte, nonce [NonceSize]byte, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 {
		return []byte{}, nil
	}

	key, err := k.TxKey(ioPub, nonce)
	if err != nil {
		return nil, err
	}

	return sivOpen(key, emptyAD, ciphertext)
}

// SplitEnvelope parses the nonce and sender-public-key header out of a
// full envelope, returning the remaining ciphertext. Fails with
// CryptoError if the envelope is shorter than the 64-byte header (spec
// §7).
func SplitEnvelope(envelope []byte) (nonce [NonceSize]byte, senderPub [KeySize]byte, ciphertext []byte, err error) {
	if len(envelope) < EnvelopeHeaderSize {
		return nonce, senderPub, nil, &CryptoError{Detail: fmt.Sprintf("envelope shorter than %d-byte header", EnvelopeHeaderSize)}
	}
	copy(nonce[:], envelope[0:NonceSize])
	copy(senderPub[:], envelope[NonceSize:EnvelopeHeaderSize])
	ciphertext = envelope[EnvelopeHeaderSize:]
	return nonce, senderPub, ciphertext, nil
}

// IsOwnEnvelope reports whether an envelope's embedded sender public
// key matches this keypair's public key (spec §3 Envelope invariant;
// used by the historical decrypt path, spec §4.G).
func (k *UserKeypair) IsOwnEnvelope(senderPub [KeySize]byte) bool {
	return senderPub == k.pub
}
