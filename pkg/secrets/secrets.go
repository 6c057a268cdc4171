package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"
)

// Encrypt seals data under a key derived from masterKey and info.
// Output format: nonce || ciphertext || tag.
func Encrypt(masterKey []byte, info string, data []byte) ([]byte, error) {
	aead, err := newAEAD(masterKey, info)
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}
	return aead.Seal(nonce, nonce, data, nil), nil
}

// Decrypt opens a value produced by Encrypt with the same masterKey and info.
func Decrypt(masterKey []byte, info string, sealed []byte) ([]byte, error) {
	aead, err := newAEAD(masterKey, info)
	if err != nil {
		return nil, errors.Join(ErrDecryptionFailed, err)
	}

	nonceSize := aead.NonceSize()
	if len(sealed) < nonceSize+aead.Overhead() {
		return nil, ErrInvalidCiphertext
	}
	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]

	plain, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plain, nil
}

func newAEAD(masterKey []byte, info string) (cipher.AEAD, error) {
	if err := ValidateKey(masterKey); err != nil {
		return nil, err
	}
	key, err := deriveKey(masterKey, info)
	if err != nil {
		return nil, err
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
