// Package seed decrypts, validates and stores the shared TOTP seed.
//
// A seed is delivered as base64 RSA-OAEP ciphertext (SHA-256, MGF1-SHA-256,
// empty label). Decrypt recovers the plaintext and Validate turns it into a
// Seed: exactly 64 lowercase hex characters. A Seed value can only be built by
// Validate or Parse, so holding one means it passed validation.
//
// # Error Handling
//
// Decryption failures collapse into ErrDecryptionFailed regardless of cause,
// and the underlying crypto error is dropped, so nothing built on top of the
// package can act as a padding oracle. Validation errors never include the
// rejected value or its length. IsCryptoError groups all of them.
//
// # Storage
//
// Store is the injected persistence boundary. MemoryStore swaps an atomic
// pointer; BlobStore writes the hex text through any Blob backend
// (pkg/file local or S3 storage, pkg/redis storage) and can seal it with
// pkg/secrets when WithEncryptionKey is given.
//
//	s, err := seed.DecryptAndValidate(encrypted, privateKey)
//	if err != nil {
//	    return err
//	}
//	return store.Put(ctx, s)
package seed
