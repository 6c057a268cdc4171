package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dmitrymomot/pki2fa/pkg/config"
	"github.com/dmitrymomot/pki2fa/pkg/qrcode"
	"github.com/dmitrymomot/pki2fa/pkg/seed"
	"github.com/dmitrymomot/pki2fa/pkg/seedstore"
	"github.com/dmitrymomot/pki2fa/pkg/totp"
)

type enrollConfig struct {
	Issuer      string `env:"TOTP_ISSUER" envDefault:"PKI-2FA"`          // Issuer is shown by the authenticator app.
	AccountName string `env:"TOTP_ACCOUNT_NAME" envDefault:"student"`    // AccountName labels the entry in the authenticator app.
	QRPath      string `env:"ENROLL_QR_PATH" envDefault:"enroll_qr.png"` // QRPath receives the PNG image.
	QRSize      int    `env:"ENROLL_QR_SIZE" envDefault:"256"`           // QRSize is the PNG edge length in pixels.

	Seed seedstore.Config
}

func main() {
	terminal := flag.Bool("terminal", false, "also render the QR code in the terminal")
	flag.Parse()

	var cfg enrollConfig
	if err := config.Load(&cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	uri, err := enrollmentURI(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to build enrollment URI: %v", err)
	}

	if err := qrcode.WriteFile(uri, cfg.QRSize, cfg.QRPath); err != nil {
		log.Fatalf("Failed to write QR code: %v", err)
	}

	fmt.Println(uri)
	if *terminal {
		fmt.Print(qrcode.Terminal(uri))
	}
	fmt.Fprintf(os.Stderr, "QR code written to %s\n", cfg.QRPath)
}

func enrollmentURI(ctx context.Context, cfg enrollConfig) (string, error) {
	store, err := seedstore.Open(ctx, cfg.Seed)
	if err != nil {
		return "", err
	}
	defer func() { _ = store.Close() }()

	sd, err := store.Get(ctx)
	if errors.Is(err, seed.ErrNotFound) {
		return "", errors.New("seed not decrypted yet")
	}
	if err != nil {
		return "", err
	}

	return totp.GetTOTPURI(totp.TOTPParams{
		Seed:        sd,
		AccountName: cfg.AccountName,
		Issuer:      cfg.Issuer,
	})
}
