// Package crypt holds the stream and handshake cryptography used by the
// login key exchange: AES-128/CFB8 framing encryption, RSA/PKCS#1 v1.5
// public-key encryption, and the non-standard SHA-1 hex digest the
// session service expects.
package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// KeySize is the shared-secret length. The protocol uses the secret as
// both AES key and initial feedback register.
const KeySize = 16

// CFB8 is an AES cipher in 8-bit cipher feedback mode, operating in
// place on arbitrary-length slices. One instance drives one direction;
// encrypt and decrypt advance independent feedback state, so a
// connection holds two.
//
// The standard library only ships full-block CFB, so the single-byte
// feedback loop lives here.
type CFB8 struct {
	block cipher.Block
	reg   [aes.BlockSize]byte
	pad   [aes.BlockSize]byte
}

func NewCFB8(key []byte) (*CFB8, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("cipher key must be %d bytes, got %d", KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init aes: %w", err)
	}
	c := &CFB8{block: block}
	copy(c.reg[:], key) // IV == key, per the protocol
	return c, nil
}

// Encrypt encrypts data in place.
func (c *CFB8) Encrypt(data []byte) {
	for i := range data {
		c.block.Encrypt(c.pad[:], c.reg[:])
		ct := data[i] ^ c.pad[0]
		copy(c.reg[:], c.reg[1:])
		c.reg[aes.BlockSize-1] = ct
		data[i] = ct
	}
}

// Decrypt decrypts data in place.
func (c *CFB8) Decrypt(data []byte) {
	for i := range data {
		c.block.Encrypt(c.pad[:], c.reg[:])
		ct := data[i]
		copy(c.reg[:], c.reg[1:])
		c.reg[aes.BlockSize-1] = ct
		data[i] = ct ^ c.pad[0]
	}
}
