// Package twofa implements the seed provisioning and TOTP operations served
// by the HTTP module. It owns no state besides the injected seed store.
package twofa

import (
	"context"
	"crypto/rsa"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/pki2fa/pkg/logger"
	"github.com/dmitrymomot/pki2fa/pkg/seed"
	"github.com/dmitrymomot/pki2fa/pkg/totp"
)

// Code is a freshly generated TOTP code and the seconds left in its period.
type Code struct {
	Code     string `json:"code"`
	ValidFor int    `json:"valid_for"`
}

type Service struct {
	store  seed.Store
	key    *rsa.PrivateKey
	window int
	now    func() time.Time
	log    *slog.Logger
}

type Option func(*Service)

// WithWindow sets how many periods on each side of now Verify accepts.
func WithWindow(window int) Option {
	return func(s *Service) {
		if window >= 0 {
			s.window = window
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// NewService wires a store and the private key used to open seeds.
func NewService(store seed.Store, key *rsa.PrivateKey, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if key == nil {
		return nil, ErrNilKey
	}

	s := &Service{
		store:  store,
		key:    key,
		window: totp.DefaultWindow,
		now:    time.Now,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("twofa"))

	return s, nil
}

// Decrypt opens the encrypted seed and replaces the stored one.
// The previous seed stays in place when any step fails.
func (s *Service) Decrypt(ctx context.Context, encryptedSeed string) error {
	sd, err := seed.DecryptAndValidate(encryptedSeed, s.key)
	if err != nil {
		s.log.WarnContext(ctx, "seed rejected",
			logger.Operation("decrypt"),
			slog.String("reason", rejectReason(err)),
		)
		return errors.Join(ErrDecryption, err)
	}

	if err := s.store.Put(ctx, sd); err != nil {
		s.log.ErrorContext(ctx, "failed to persist seed",
			logger.Operation("decrypt"),
			logger.Error(err),
		)
		return errors.Join(ErrStore, err)
	}

	s.log.InfoContext(ctx, "seed stored", logger.Operation("decrypt"))
	return nil
}

// Generate returns the code for the current period.
func (s *Service) Generate(ctx context.Context) (Code, error) {
	sd, err := s.current(ctx, "generate")
	if err != nil {
		return Code{}, err
	}

	now := s.now()
	code, err := totp.Generate(sd, now)
	if err != nil {
		s.log.ErrorContext(ctx, "totp generation failed",
			logger.Operation("generate"),
			logger.Error(err),
		)
		return Code{}, errors.Join(ErrGeneration, err)
	}

	return Code{Code: code, ValidFor: totp.SecondsRemaining(now)}, nil
}

// Verify checks code against the stored seed within the configured window.
// An empty code fails before the store is consulted.
func (s *Service) Verify(ctx context.Context, code string) (bool, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return false, ErrMissingCode
	}

	sd, err := s.current(ctx, "verify")
	if err != nil {
		return false, err
	}

	ok, err := totp.Verify(sd, code, s.window, s.now())
	if err != nil {
		s.log.ErrorContext(ctx, "totp verification failed",
			logger.Operation("verify"),
			logger.Error(err),
		)
		return false, errors.Join(ErrVerification, err)
	}

	s.log.DebugContext(ctx, "code checked", logger.Operation("verify"), logger.Valid(ok))
	return ok, nil
}

// Probe reports whether the seed store is reachable. A store without a seed
// is still healthy.
func (s *Service) Probe(ctx context.Context) error {
	_, err := s.store.Get(ctx)
	if err == nil || errors.Is(err, seed.ErrNotFound) {
		return nil
	}
	return errors.Join(ErrStore, err)
}

func (s *Service) current(ctx context.Context, op string) (seed.Seed, error) {
	sd, err := s.store.Get(ctx)
	switch {
	case err == nil:
		return sd, nil
	case errors.Is(err, seed.ErrNotFound):
		return seed.Seed{}, seed.ErrNotFound
	default:
		s.log.ErrorContext(ctx, "failed to load seed",
			logger.Operation(op),
			logger.Error(err),
		)
		return seed.Seed{}, errors.Join(ErrStore, err)
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, seed.ErrInvalidBase64):
		return "base64"
	case errors.Is(err, seed.ErrDecryptionFailed):
		return "decrypt"
	case errors.Is(err, seed.ErrInvalidEncoding):
		return "encoding"
	case errors.Is(err, seed.ErrInvalidLength):
		return "length"
	case errors.Is(err, seed.ErrInvalidFormat):
		return "format"
	default:
		return "unknown"
	}
}
