// Package proof produces signed, encrypted attestations of a git commit.
//
// The commit hash is signed with RSA-PSS (SHA-256, maximum salt) using the
// author's private key, and the signature is encrypted with RSA-OAEP
// (SHA-256) under the recipient's public key. Only the recipient can recover
// the signature and check it against the author's public key.
package proof

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

// CommitHashLength is the length of a full SHA-1 git object name.
const CommitHashLength = 40

// CommitProof is the result of proving authorship of a commit.
type CommitProof struct {
	CommitHash         string
	Signature          []byte
	EncryptedSignature []byte
}

// Encoded returns the encrypted signature as standard padded base64.
func (p CommitProof) Encoded() string {
	return base64.StdEncoding.EncodeToString(p.EncryptedSignature)
}

// Record returns the single-line submission form "<hash> <base64>".
func (p CommitProof) Record() string {
	return p.CommitHash + " " + p.Encoded()
}

// ValidateCommitHash reports whether h is a 40 character lowercase hex string.
func ValidateCommitHash(h string) error {
	if len(h) != CommitHashLength {
		return ErrInvalidCommitHash
	}
	for i := 0; i < len(h); i++ {
		c := h[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return ErrInvalidCommitHash
		}
	}
	return nil
}

var pssOptions = &rsa.PSSOptions{
	SaltLength: rsa.PSSSaltLengthAuto,
	Hash:       crypto.SHA256,
}

// Sign signs message with RSA-PSS over SHA-256. The salt takes the maximum
// length the key allows, and the signature is as long as the modulus.
func Sign(message []byte, key *rsa.PrivateKey) ([]byte, error) {
	if key == nil {
		return nil, ErrNilKey
	}
	digest := sha256.Sum256(message)
	return rsa.SignPSS(rand.Reader, key, crypto.SHA256, digest[:], pssOptions)
}

// Encrypt encrypts data with RSA-OAEP using SHA-256 for both the hash and
// MGF1, with an empty label.
func Encrypt(data []byte, pub *rsa.PublicKey) ([]byte, error) {
	if pub == nil {
		return nil, ErrNilKey
	}
	return rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, data, nil)
}

// New signs commitHash with ownKey and encrypts the signature for peerKey.
func New(commitHash string, ownKey *rsa.PrivateKey, peerKey *rsa.PublicKey) (CommitProof, error) {
	if err := ValidateCommitHash(commitHash); err != nil {
		return CommitProof{}, err
	}

	sig, err := Sign([]byte(commitHash), ownKey)
	if err != nil {
		return CommitProof{}, errors.Join(ErrSigning, err)
	}

	enc, err := Encrypt(sig, peerKey)
	if err != nil {
		return CommitProof{}, errors.Join(ErrEncryption, err)
	}

	return CommitProof{
		CommitHash:         commitHash,
		Signature:          sig,
		EncryptedSignature: enc,
	}, nil
}

// Open decrypts an encoded proof with the recipient's private key and checks
// the signature over commitHash against the signer's public key. Every
// failure after input validation is reported as ErrInvalidProof.
func Open(encoded string, recipient *rsa.PrivateKey, signer *rsa.PublicKey, commitHash string) error {
	if recipient == nil || signer == nil {
		return ErrNilKey
	}
	if err := ValidateCommitHash(commitHash); err != nil {
		return err
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return ErrInvalidProof
	}

	sig, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, recipient, raw, nil)
	if err != nil {
		return ErrInvalidProof
	}

	digest := sha256.Sum256([]byte(commitHash))
	if err := rsa.VerifyPSS(signer, crypto.SHA256, digest[:], sig, pssOptions); err != nil {
		return ErrInvalidProof
	}
	return nil
}
