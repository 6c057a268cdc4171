// Package keypair loads and generates the RSA key pairs used for seed
// provisioning and commit proofs.
//
// Private keys are written as PKCS#8 and public keys as SubjectPublicKeyInfo,
// both PEM encoded. Parsing also accepts the older PKCS#1 forms. Errors never
// include key material.
package keypair

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
)

const (
	// DefaultBits is the modulus size used by Generate callers by default.
	DefaultBits = 4096
	// MinBits is the smallest modulus Generate accepts.
	MinBits = 2048
)

// ParsePrivateKeyPEM parses an unencrypted RSA private key in PKCS#8 or PKCS#1 form.
func ParsePrivateKeyPEM(data []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrNoPEMBlock
	}

	if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, ErrNotRSAKey
		}
		return rsaKey, nil
	}

	key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, ErrFailedToParseKey
	}
	return key, nil
}

// ParsePublicKeyPEM parses an RSA public key in SubjectPublicKeyInfo or PKCS#1 form.
func ParsePublicKeyPEM(data []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrNoPEMBlock
	}

	if key, err := x509.ParsePKIXPublicKey(block.Bytes); err == nil {
		rsaKey, ok := key.(*rsa.PublicKey)
		if !ok {
			return nil, ErrNotRSAKey
		}
		return rsaKey, nil
	}

	key, err := x509.ParsePKCS1PublicKey(block.Bytes)
	if err != nil {
		return nil, ErrFailedToParseKey
	}
	return key, nil
}

// LoadPrivateKey reads and parses a PEM private key file.
func LoadPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadKey, err)
	}
	defer clear(data)
	return ParsePrivateKeyPEM(data)
}

// LoadPublicKey reads and parses a PEM public key file.
func LoadPublicKey(path string) (*rsa.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadKey, err)
	}
	return ParsePublicKeyPEM(data)
}

// Generate creates a new RSA key pair with public exponent 65537 and returns
// the PKCS#8 private key and SubjectPublicKeyInfo public key, PEM encoded.
func Generate(bits int) (privatePEM, publicPEM []byte, err error) {
	if bits < MinBits {
		return nil, nil, ErrKeyTooSmall
	}

	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, nil, errors.Join(ErrFailedToGenerateKey, err)
	}

	privDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, nil, errors.Join(ErrFailedToGenerateKey, err)
	}
	defer clear(privDER)

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return nil, nil, errors.Join(ErrFailedToGenerateKey, err)
	}

	privatePEM = pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER})
	publicPEM = pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	return privatePEM, publicPEM, nil
}

// WriteFiles stores a generated pair; the private key is created with mode 0600.
func WriteFiles(privatePath, publicPath string, privatePEM, publicPEM []byte) error {
	if err := os.WriteFile(privatePath, privatePEM, 0o600); err != nil {
		return errors.Join(ErrFailedToWriteKey, err)
	}
	if err := os.WriteFile(publicPath, publicPEM, 0o644); err != nil {
		return errors.Join(ErrFailedToWriteKey, err)
	}
	return nil
}
