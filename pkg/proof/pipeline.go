package proof

import (
	"context"
	"crypto/rsa"
	"errors"
)

type (
	// PrivateKeyLoader supplies the signing key.
	PrivateKeyLoader func() (*rsa.PrivateKey, error)
	// PublicKeyLoader supplies the recipient's public key.
	PublicKeyLoader func() (*rsa.PublicKey, error)
)

// Pipeline runs the proof stages in order: commit lookup, own key, peer key,
// signing, encryption. A failing stage stops the run and its error carries
// the stage sentinel, so ExitCode can classify it.
type Pipeline struct {
	Commits CommitSource
	OwnKey  PrivateKeyLoader
	PeerKey PublicKeyLoader
}

// Run executes the pipeline.
func (p Pipeline) Run(ctx context.Context) (CommitProof, error) {
	if p.Commits == nil || p.OwnKey == nil || p.PeerKey == nil {
		return CommitProof{}, errors.New("proof pipeline is not fully configured")
	}

	hash, err := p.Commits.LatestCommit(ctx)
	if err != nil {
		return CommitProof{}, errors.Join(ErrCommitUnavailable, err)
	}
	if err := ValidateCommitHash(hash); err != nil {
		return CommitProof{}, errors.Join(ErrCommitUnavailable, err)
	}

	own, err := p.OwnKey()
	if err != nil {
		return CommitProof{}, errors.Join(ErrOwnKey, err)
	}
	if own == nil {
		return CommitProof{}, errors.Join(ErrOwnKey, ErrNilKey)
	}

	peer, err := p.PeerKey()
	if err != nil {
		return CommitProof{}, errors.Join(ErrPeerKey, err)
	}
	if peer == nil {
		return CommitProof{}, errors.Join(ErrPeerKey, ErrNilKey)
	}

	if err := ctx.Err(); err != nil {
		return CommitProof{}, err
	}

	return New(hash, own, peer)
}
