package proof

import "errors"

var (
	ErrInvalidCommitHash = errors.New("commit hash must be 40 lowercase hex characters")
	ErrNilKey            = errors.New("key is nil")
	ErrInvalidProof      = errors.New("invalid commit proof")

	// Pipeline stage failures.
	ErrCommitUnavailable = errors.New("unable to get git commit hash")
	ErrOwnKey            = errors.New("failed to load signing key")
	ErrPeerKey           = errors.New("failed to load recipient public key")
	ErrSigning           = errors.New("signing failed")
	ErrEncryption        = errors.New("encryption failed")
)

// Process exit codes for each pipeline stage.
const (
	ExitOK                = 0
	ExitFailure           = 1
	ExitCommitUnavailable = 2
	ExitOwnKey            = 3
	ExitPeerKey           = 4
	ExitSigning           = 5
	ExitEncryption        = 6
)

// ExitCode maps a pipeline error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrCommitUnavailable):
		return ExitCommitUnavailable
	case errors.Is(err, ErrOwnKey):
		return ExitOwnKey
	case errors.Is(err, ErrPeerKey):
		return ExitPeerKey
	case errors.Is(err, ErrSigning):
		return ExitSigning
	case errors.Is(err, ErrEncryption):
		return ExitEncryption
	default:
		return ExitFailure
	}
}
