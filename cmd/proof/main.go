package main

import (
	"context"
	"crypto/rsa"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/pki2fa/pkg/config"
	"github.com/dmitrymomot/pki2fa/pkg/keypair"
	"github.com/dmitrymomot/pki2fa/pkg/logger"
	"github.com/dmitrymomot/pki2fa/pkg/proof"
)

type proofConfig struct {
	PrivateKeyPath    string     `env:"PROOF_PRIVATE_KEY_PATH" envDefault:"student_private.pem"`       // PrivateKeyPath is the author's signing key.
	PeerPublicKeyPath string     `env:"PROOF_PEER_PUBLIC_KEY_PATH" envDefault:"instructor_public.pem"` // PeerPublicKeyPath is the recipient's encryption key.
	RepoDir           string     `env:"PROOF_REPO_DIR" envDefault:"."`                                 // RepoDir is the git working tree to read the latest commit from.
	LogLevel          slog.Level `env:"PROOF_LOG_LEVEL" envDefault:"ERROR"`                            // LogLevel controls diagnostics written to stderr.
}

func main() {
	os.Exit(run())
}

func run() int {
	var cfg proofConfig
	if err := config.Load(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return proof.ExitFailure
	}

	lg := logger.New(
		logger.WithTextFormatter(),
		logger.WithOutput(os.Stderr),
		logger.WithLevel(cfg.LogLevel),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := proof.Pipeline{
		Commits: proof.GitCommitSource{Dir: cfg.RepoDir},
		OwnKey:  func() (*rsa.PrivateKey, error) { return keypair.LoadPrivateKey(cfg.PrivateKeyPath) },
		PeerKey: func() (*rsa.PublicKey, error) { return keypair.LoadPublicKey(cfg.PeerPublicKeyPath) },
	}.Run(ctx)
	if err != nil {
		code := proof.ExitCode(err)
		lg.ErrorContext(ctx, "Failed to generate commit proof",
			logger.Error(err),
			slog.Int("exit_code", code),
		)
		return code
	}

	lg.DebugContext(ctx, "Commit proof generated", slog.Int("ciphertext_bytes", len(p.EncryptedSignature)))

	if err := proof.WriteReport(os.Stdout, p); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write proof: %v\n", err)
		return proof.ExitFailure
	}
	return proof.ExitOK
}
