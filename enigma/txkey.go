package enigma

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// hkdfSaltHex is the fixed 32-byte HKDF salt every implementation MUST
// use verbatim (spec §6).
const hkdfSaltHex = "000000000000000000024bead8df69990852c202db0e0097c1a12ea637d7e96d"

// HKDFSalt is the decoded fixed salt.
var HKDFSalt = mustDecodeHex(hkdfSaltHex)

func mustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(fmt.Sprintf("enigma: invalid HKDF salt constant: %v", err))
	}
	if len(b) != 32 {
		panic(fmt.Sprintf("enigma: HKDF salt constant must be 32 bytes, got %d", len(b)))
	}
	return b
}

// NonceSize is the length in bytes of a tx-key derivation nonce.
const NonceSize = 32

// TxKeySize is the length in bytes of a derived AES-SIV key.
const TxKeySize = 32

// TxKey derives the per-transaction AES-SIV key:
//
//	ikm ← ECDH(priv, ioPub) ‖ nonce
//	okm ← HKDF-SHA256(salt = HKDF_SALT, ikm, info = "", L = 32)
func (k *UserKeypair) TxKey(ioPub [KeySize]byte, nonce [NonceSize]byte) ([TxKeySize]byte, error) {
	shared, err := k.sharedSecret(ioPub)
	if err != nil {
		return [TxKeySize]byte{}, err
	}

	ikm := make([]byte, 0, len(shared)+NonceSize)
	ikm = append(ikm, shared...)
	ikm = append(ikm, nonce[:]...)

	h := hkdf.New(sha256.New, ikm, HKDFSalt, nil)
	var okm [TxKeySize]byte
	if _, err := io.ReadFull(h, okm[:]); err != nil {
		return [TxKeySize]byte{}, &CryptoError{Detail: fmt.Sprintf("hkdf produced short output: %v", err)}
	}
	return okm, nil
}
