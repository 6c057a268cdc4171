package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrymomot/pki2fa/pkg/config"
	"github.com/dmitrymomot/pki2fa/pkg/provision"
)

type requestConfig struct {
	APIURL        string        `env:"SEED_API_URL,required"`                               // APIURL is the seed issuing endpoint.
	StudentID     string        `env:"STUDENT_ID,required"`                                 // StudentID identifies the requester.
	GitHubRepoURL string        `env:"GITHUB_REPO_URL,required"`                            // GitHubRepoURL is the repository the seed is bound to.
	PublicKeyPath string        `env:"PUBLIC_KEY_PATH" envDefault:"student_public.pem"`     // PublicKeyPath is sent verbatim, BEGIN/END lines included.
	OutputPath    string        `env:"ENCRYPTED_SEED_PATH" envDefault:"encrypted_seed.txt"` // OutputPath receives the base64 ciphertext.
	Timeout       time.Duration `env:"SEED_API_TIMEOUT" envDefault:"15s"`                   // Timeout bounds the single request.
}

func main() {
	var cfg requestConfig
	if err := config.Load(&cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	publicKey, err := os.ReadFile(cfg.PublicKeyPath)
	if err != nil {
		log.Fatalf("Failed to read public key: %v", err)
	}

	client, err := provision.NewClient(cfg.APIURL, provision.WithTimeout(cfg.Timeout))
	if err != nil {
		log.Fatalf("Failed to create seed API client: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	encryptedSeed, err := client.RequestSeed(ctx, provision.Request{
		StudentID:     cfg.StudentID,
		GitHubRepoURL: cfg.GitHubRepoURL,
		PublicKey:     string(publicKey),
	})
	if err != nil {
		stop()
		log.Fatalf("Failed to request seed: %v", err)
	}

	if err := provision.SaveEncryptedSeed(cfg.OutputPath, encryptedSeed); err != nil {
		stop()
		log.Fatalf("Failed to save seed: %v", err)
	}

	log.Printf("Encrypted seed saved to %s", cfg.OutputPath)
}
