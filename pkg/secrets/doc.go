// Package secrets seals small values at rest with AES-256-GCM.
//
// A 32-byte master key is never used directly: every call derives a
// purpose-bound key with HKDF-SHA-256, using a caller supplied info string
// for domain separation. The random nonce is prepended to the ciphertext so
// the output is self-contained.
//
// # Usage
//
//	import "github.com/dmitrymomot/pki2fa/pkg/secrets"
//
//	key, _ := secrets.GenerateKey()
//	sealed, err := secrets.Encrypt(key, "my-purpose-v1", []byte("value"))
//	if err != nil {
//	    // handle error
//	}
//	plain, err := secrets.Decrypt(key, "my-purpose-v1", sealed)
//
// # Error Handling
//
// Errors wrap package sentinels such as ErrInvalidKey, ErrEncryptionFailed and
// ErrDecryptionFailed; match them with errors.Is.
package secrets
