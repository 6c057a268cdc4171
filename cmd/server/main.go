package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/pki2fa/modules/twofa"
	"github.com/dmitrymomot/pki2fa/pkg/config"
	"github.com/dmitrymomot/pki2fa/pkg/httpserver"
	"github.com/dmitrymomot/pki2fa/pkg/keypair"
	"github.com/dmitrymomot/pki2fa/pkg/logger"
	"github.com/dmitrymomot/pki2fa/pkg/requestid"
	"github.com/dmitrymomot/pki2fa/pkg/seedstore"
	twofasvc "github.com/dmitrymomot/pki2fa/svc/twofa"
)

type appConfig struct {
	Env            string `env:"APP_ENV" envDefault:"production"`                   // Env selects logger presets: development, staging or production.
	ServiceName    string `env:"SERVICE_NAME" envDefault:"pki2fa"`                  // ServiceName is attached to every log record.
	PrivateKeyPath string `env:"PRIVATE_KEY_PATH" envDefault:"student_private.pem"` // PrivateKeyPath is the RSA key used to open encrypted seeds.
	VerifyWindow   int    `env:"TOTP_VERIFY_WINDOW" envDefault:"1"`                 // VerifyWindow is the number of periods accepted on each side of now.
	MaxBodySize    int64  `env:"HTTP_MAX_BODY_SIZE" envDefault:"65536"`             // MaxBodySize limits JSON request bodies.

	HTTP httpserver.Config
	Seed seedstore.Config
}

func main() {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	lg := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.ServiceName),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(lg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Error("Server stopped with error", logger.Error(err))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, lg *slog.Logger) error {
	key, err := keypair.LoadPrivateKey(cfg.PrivateKeyPath)
	if err != nil {
		return fmt.Errorf("load private key: %w", err)
	}

	store, err := seedstore.Open(ctx, cfg.Seed)
	if err != nil {
		return fmt.Errorf("open %s seed store: %w", cfg.Seed.Backend, err)
	}
	defer func() { _ = store.Close() }()

	svc, err := twofasvc.NewService(store, key,
		twofasvc.WithWindow(cfg.VerifyWindow),
		twofasvc.WithLogger(lg),
	)
	if err != nil {
		return err
	}

	router := twofa.Router(twofa.RouterOptions{
		API: twofa.NewHandler(svc,
			twofa.WithLogger(lg),
			twofa.WithMaxBodySize(cfg.MaxBodySize),
		),
		Health: httpserver.HealthCheckHandler(lg,
			httpserver.Check{Name: "seed_backend", Probe: store.Ping},
			httpserver.Check{Name: "seed_store", Probe: svc.Probe},
		),
	})

	lg.InfoContext(ctx, "Serving 2FA API", logger.Backend(store.Name()))
	return httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(lg)).Run(ctx, router)
}
