package enigma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCMAC_RFC4493Vectors checks AES-128 CMAC against the official test
// vectors from RFC 4493 Appendix A (key and messages fixed there).
func TestCMAC_RFC4493Vectors(t *testing.T) {
	key := []byte{
		0x2b, 0x7e, 0x15, 0x16, 0x28, 0xae, 0xd2, 0xa6,
		0xab, 0xf7, 0x15, 0x88, 0x09, 0xcf, 0x4f, 0x3c,
	}
	m := []byte{
		0x6b, 0xc1, 0xbe, 0xe2, 0x2e, 0x40, 0x9f, 0x96,
		0xe9, 0x3d, 0x7e, 0x11, 0x73, 0x93, 0x17, 0x2a,
		0xae, 0x2d, 0x8a, 0x57, 0x1e, 0x03, 0xac, 0x9c,
		0x9e, 0xb7, 0x6f, 0xac, 0x45, 0xaf, 0x8e, 0x51,
		0x30, 0xc8, 0x1c, 0x46, 0xa3, 0x5c, 0xe4, 0x11,
		0xe5, 0xfb, 0xc1, 0x19, 0x1a, 0x0a, 0x52, 0xef,
		0xf6, 0x9f, 0x24, 0x45, 0xdf, 0x4f, 0x9b, 0x17,
		0xad, 0x2b, 0x41, 0x7b, 0xe6, 0x6c, 0x37, 0x10,
	}

	mac, err := newCMAC(key)
	require.NoError(t, err)

	tests := []struct {
		name     string
		msg      []byte
		expected string
	}{
		{"Example1_EmptyMessage", m[:0], "bb1d6929e95937287fa37d129b756746"},
		{"Example2_16Bytes", m[:16], "070a16b46b4d4144f79bdd9dd04a287c"},
		{"Example3_40Bytes", m[:40], "dfa66747de9ae63030ca32611497c827"},
		{"Example4_64Bytes", m[:64], "51f0bebf7e3b9d92fc49741779363cfe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mac.sum(tt.msg)
			assert.Equal(t, tt.expected, hexString(got[:]))
		})
	}
}

func hexString(b []byte) string {
	const hexDigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[i*2] = hexDigits[v>>4]
		out[i*2+1] = hexDigits[v&0x0f]
	}
	return string(out)
}

func TestDbl_KnownValues(t *testing.T) {
	var zero [blockSize]byte
	assert.Equal(t, zero, dbl(zero))

	var highBit [blockSize]byte
	highBit[0] = 0x80
	doubled := dbl(highBit)
	var expected [blockSize]byte
	expected[blockSize-1] = rb
	assert.Equal(t, expected, doubled)
}
