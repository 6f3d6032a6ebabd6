package crypt

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// AuthDigest computes the server-join hash of
// serverID || sharedSecret || publicKey.
//
// The session service's hex digest is non-standard: the 20 SHA-1 bytes
// are treated as one big-endian two's-complement integer and printed in
// base 16 with leading zeros trimmed, minus-signed when negative.
func AuthDigest(serverID string, sharedSecret, publicKey []byte) string {
	h := sha1.New()
	h.Write([]byte(serverID))
	h.Write(sharedSecret)
	h.Write(publicKey)
	sum := h.Sum(nil)

	negative := sum[0]&0x80 == 0x80
	if negative {
		twosComplement(sum)
	}

	digest := strings.TrimLeft(hex.EncodeToString(sum), "0")
	if negative {
		return "-" + digest
	}
	return digest
}

// twosComplement negates a big-endian integer in place.
func twosComplement(b []byte) {
	carry := true
	for i := len(b) - 1; i >= 0; i-- {
		b[i] = ^b[i]
		if carry {
			carry = b[i] == 0xFF
			b[i]++
		}
	}
}
