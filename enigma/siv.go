package enigma

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
	"fmt"
)

// SIVKeySize is the total AES-SIV key length: two 128-bit subkeys
// (K1 for S2V/CMAC, K2 for CTR), matching miscreant's "AES-SIV"
// identifier and spec §4.D's "AES-128-SIV (key length 32 bytes)".
const SIVKeySize = 32

// sivSeal implements RFC 5297 AES-SIV with a single (possibly empty)
// associated-data component, matching the reference implementation's
// "associated_data = [ empty_ad ]" call shape exactly (spec §4.D.4).
func sivSeal(key [SIVKeySize]byte, ad []byte, plaintext []byte) ([]byte, error) {
	k1, k2 := key[:blockSize], key[blockSize:]

	v, err := s2v(k1, ad, plaintext)
	if err != nil {
		return nil, err
	}

	ciphertext, err := ctrXOR(k2, v, plaintext)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, blockSize+len(ciphertext))
	out = append(out, v[:]...)
	out = append(out, ciphertext...)
	return out, nil
}

// sivOpen reverses sivSeal, authenticating the recovered plaintext
// against the synthetic IV before returning it.
func sivOpen(key [SIVKeySize]byte, ad []byte, sealed []byte) ([]byte, error) {
	if len(sealed) < blockSize {
		return nil, &CryptoError{Detail: "aes-siv ciphertext shorter than synthetic IV"}
	}

	k1, k2 := key[:blockSize], key[blockSize:]

	var v [blockSize]byte
	copy(v[:], sealed[:blockSize])
	ciphertext := sealed[blockSize:]

	plaintext, err := ctrXOR(k2, v, ciphertext)
	if err != nil {
		return nil, err
	}

	expected, err := s2v(k1, ad, plaintext)
	if err != nil {
		return nil, err
	}

	if subtle.ConstantTimeCompare(v[:], expected[:]) != 1 {
		return nil, &CryptoError{Detail: "aes-siv authentication failed"}
	}
	return plaintext, nil
}

// s2v implements RFC 5297 §2.4's S2V over exactly two components: a
// single associated-data string (possibly empty) and the plaintext.
func s2v(k1 []byte, ad []byte, plaintext []byte) ([blockSize]byte, error) {
	mac, err := newCMAC(k1)
	if err != nil {
		return [blockSize]byte{}, fmt.Errorf("aes-siv: cmac init: %w", err)
	}

	var zero [blockSize]byte
	d := mac.sum(zero[:])

	d = xorBlock(dbl(d), mac.sum(ad))

	var t []byte
	if len(plaintext) >= blockSize {
		t = xorEnd(plaintext, d)
	} else {
		padded := pad(plaintext)
		block := xorBlock(dbl(d), padded)
		t = block[:]
	}

	return mac.sum(t), nil
}

// xorEnd XORs d into the rightmost blockSize bytes of a full-length
// plaintext (at least blockSize long), returning the entire string per
// RFC 5297's "xorend" operation: T = Sn xorend D, where Sn is the
// complete plaintext, not just its trailing block.
func xorEnd(src []byte, d [blockSize]byte) []byte {
	out := make([]byte, len(src))
	copy(out, src)

	offset := len(src) - blockSize
	var tail [blockSize]byte
	copy(tail[:], out[offset:])
	tail = xorBlock(tail, d)
	copy(out[offset:], tail[:])

	return out
}

// ctrXOR runs AES-CTR keyed by k2, with the counter block derived from
// the synthetic IV v by clearing the top bit of bytes 8 and 12 (RFC
// 5297 §2.6: the 31st and 63rd bits, counting the rightmost bit as the
// 0th).
func ctrXOR(k2 []byte, v [blockSize]byte, in []byte) ([]byte, error) {
	block, err := aes.NewCipher(k2)
	if err != nil {
		return nil, fmt.Errorf("aes-siv: aes-ctr init: %w", err)
	}

	q := v
	q[8] &= 0x7f
	q[12] &= 0x7f

	stream := cipher.NewCTR(block, q[:])
	out := make([]byte, len(in))
	stream.XORKeyStream(out, in)
	return out, nil
}
