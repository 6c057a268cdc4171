package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/pki2fa/pkg/config"
	"github.com/dmitrymomot/pki2fa/pkg/logger"
	"github.com/dmitrymomot/pki2fa/pkg/schedule"
	"github.com/dmitrymomot/pki2fa/pkg/seedstore"
)

type codelogConfig struct {
	LogLevel slog.Level `env:"CODELOG_LOG_LEVEL" envDefault:"INFO"` // LogLevel controls scheduler diagnostics written to stderr.

	Seed seedstore.Config
}

func main() {
	once := flag.Bool("once", false, "print a single code and exit")
	flag.Parse()

	var cfg codelogConfig
	if err := config.Load(&cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	lg := logger.New(
		logger.WithTextFormatter(),
		logger.WithOutput(os.Stderr),
		logger.WithLevel(cfg.LogLevel),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *once, lg); err != nil {
		lg.Error("Code logger stopped", logger.Error(err))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg codelogConfig, once bool, lg *slog.Logger) error {
	store, err := seedstore.Open(ctx, cfg.Seed)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	job := codeLogger{store: store, out: os.Stdout}
	runner, err := schedule.NewRunner(schedule.EveryMinute(), job.tick,
		schedule.WithLogger(lg),
		schedule.WithName("codelog"),
	)
	if err != nil {
		return err
	}

	if once {
		return runner.RunOnce(ctx)
	}

	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
