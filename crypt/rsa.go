package crypt

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"fmt"
)

// RandBytes fills b with cryptographically random bytes.
func RandBytes(b []byte) error {
	if _, err := rand.Read(b); err != nil {
		return fmt.Errorf("read random bytes: %w", err)
	}
	return nil
}

// ParsePublicKey parses the DER-encoded RSA public key a server sends
// in its encryption request.
func ParsePublicKey(der []byte) (*rsa.PublicKey, error) {
	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("parse server public key: %w", err)
	}
	pub, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("server public key is %T, want RSA", key)
	}
	return pub, nil
}

// EncryptRSA encrypts plain against a DER-encoded RSA public key using
// PKCS#1 v1.5 padding.
func EncryptRSA(der, plain []byte) ([]byte, error) {
	pub, err := ParsePublicKey(der)
	if err != nil {
		return nil, err
	}
	out, err := rsa.EncryptPKCS1v15(rand.Reader, pub, plain)
	if err != nil {
		return nil, fmt.Errorf("rsa encrypt: %w", err)
	}
	return out, nil
}
