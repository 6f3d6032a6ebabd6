package crypt

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthDigestReferenceVectors(t *testing.T) {
	// Fixed vectors from the protocol reference.
	cases := []struct {
		input  string
		digest string
	}{
		{"Notch", "4ed1f46bbe04bc756bcb17c0c7ce3e4632f06a48"},
		{"jeb_", "-7c9d5b0044c130109a5d7b5fb5c317c02b4e28c1"},
		{"simon", "88e16a1019277b15d58faf0541e11910eb756f6"},
	}
	for _, c := range cases {
		assert.Equal(t, c.digest, AuthDigest(c.input, nil, nil))
	}
}

func TestAuthDigestConcatenatesParts(t *testing.T) {
	secret := []byte{0x01, 0x02}
	key := []byte{0x03, 0x04}
	assert.Equal(t,
		AuthDigest("ab\x01\x02\x03\x04", nil, nil),
		AuthDigest("ab", secret, key),
	)
}

func TestCFB8RoundTrip(t *testing.T) {
	key := make([]byte, KeySize)
	require.NoError(t, RandBytes(key))

	enc, err := NewCFB8(key)
	require.NoError(t, err)
	dec, err := NewCFB8(key)
	require.NoError(t, err)

	plain := []byte("frame one")
	data := append([]byte(nil), plain...)
	enc.Encrypt(data)
	assert.NotEqual(t, plain, data)
	dec.Decrypt(data)
	assert.Equal(t, plain, data)

	// State carries across calls: a second frame still lines up.
	plain2 := []byte("frame two, longer than a block to cross the register")
	data2 := append([]byte(nil), plain2...)
	enc.Encrypt(data2)
	dec.Decrypt(data2)
	assert.Equal(t, plain2, data2)
}

func TestCFB8BytewiseMatchesBulk(t *testing.T) {
	key := make([]byte, KeySize)
	require.NoError(t, RandBytes(key))

	bulk, err := NewCFB8(key)
	require.NoError(t, err)
	bytewise, err := NewCFB8(key)
	require.NoError(t, err)

	plain := []byte("split points must not matter for a stream cipher")
	a := append([]byte(nil), plain...)
	bulk.Encrypt(a)

	b := append([]byte(nil), plain...)
	for i := range b {
		bytewise.Encrypt(b[i : i+1])
	}
	assert.Equal(t, a, b)
}

func TestNewCFB8RejectsBadKeyLength(t *testing.T) {
	_, err := NewCFB8([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestEncryptRSARoundTrip(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)

	secret := make([]byte, KeySize)
	require.NoError(t, RandBytes(secret))

	encrypted, err := EncryptRSA(der, secret)
	require.NoError(t, err)
	assert.NotEqual(t, secret, encrypted)

	decrypted, err := rsa.DecryptPKCS1v15(rand.Reader, priv, encrypted)
	require.NoError(t, err)
	assert.Equal(t, secret, decrypted)
}

func TestEncryptRSARejectsGarbageKey(t *testing.T) {
	_, err := EncryptRSA([]byte{0xDE, 0xAD}, []byte("x"))
	assert.Error(t, err)
}
