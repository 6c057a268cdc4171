package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrymomot/pki2fa/pkg/seed"
	"github.com/dmitrymomot/pki2fa/pkg/totp"
)

// codeLogger prints the current code for the stored seed once per tick.
type codeLogger struct {
	store seed.Store
	out   io.Writer
}

func (c codeLogger) tick(ctx context.Context, at time.Time) error {
	sd, err := c.store.Get(ctx)
	if errors.Is(err, seed.ErrNotFound) {
		_, werr := fmt.Fprintln(c.out, "Seed file not found")
		return werr
	}
	if err != nil {
		_, _ = fmt.Fprintf(c.out, "Cron Error: %v\n", err)
		return err
	}

	code, err := totp.Generate(sd, at)
	if err != nil {
		_, _ = fmt.Fprintf(c.out, "Cron Error: %v\n", err)
		return err
	}

	_, err = fmt.Fprintf(c.out, "[%s] 2FA Code: %s\n", at.UTC().Format(time.DateTime), code)
	return err
}
