package twofa

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/pki2fa/pkg/binder"
	"github.com/dmitrymomot/pki2fa/pkg/logger"
	twofasvc "github.com/dmitrymomot/pki2fa/svc/twofa"
)

// Service is the subset of svc/twofa used by the HTTP handlers.
type Service interface {
	Decrypt(ctx context.Context, encryptedSeed string) error
	Generate(ctx context.Context) (twofasvc.Code, error)
	Verify(ctx context.Context, code string) (bool, error)
}

// DecryptSeedRequest is the body of POST /decrypt-seed.
type DecryptSeedRequest struct {
	EncryptedSeed string `json:"encrypted_seed"`
}

// VerifyRequest is the body of POST /verify-2fa.
type VerifyRequest struct {
	Code string `json:"code"`
}

type Handler struct {
	svc     Service
	log     *slog.Logger
	maxBody int64
}

type HandlerOption func(*Handler)

func WithLogger(l *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// WithMaxBodySize limits request bodies; the default is binder.DefaultMaxJSONSize.
func WithMaxBodySize(n int64) HandlerOption {
	return func(h *Handler) {
		if n > 0 {
			h.maxBody = n
		}
	}
}

func NewHandler(svc Service, opts ...HandlerOption) *Handler {
	h := &Handler{
		svc:     svc,
		log:     slog.Default(),
		maxBody: binder.DefaultMaxJSONSize,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.log = h.log.With(logger.Component("twofa_http"))
	return h
}

// Handle returns the routes of the 2FA API.
func (h *Handler) Handle() http.Handler {
	r := chi.NewRouter()
	r.Post("/decrypt-seed", h.render("decrypt_seed", h.decryptSeed))
	r.Get("/generate-2fa", h.render("generate_2fa", h.generate))
	r.Post("/verify-2fa", h.render("verify_2fa", h.verify))
	return r
}

func (h *Handler) render(name string, fn func(r *http.Request) jsonResponse) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := fn(r)
		if err := resp.Render(w, r); err != nil {
			h.log.ErrorContext(r.Context(), "failed to write response",
				logger.Handler(name),
				logger.Error(err),
			)
			return
		}
		h.log.DebugContext(r.Context(), "request handled",
			logger.Handler(name),
			logger.StatusCode(resp.status),
		)
	}
}

func (h *Handler) decryptSeed(r *http.Request) jsonResponse {
	var req DecryptSeedRequest
	if err := binder.JSON(r, &req, binder.WithMaxSize(h.maxBody)); err != nil {
		return fail(http.StatusBadRequest, msgInvalidBody, "")
	}

	if err := h.svc.Decrypt(r.Context(), req.EncryptedSeed); err != nil {
		return fail(http.StatusInternalServerError, msgDecryptionFailed, "")
	}

	return ok(statusResponse{Status: "ok"})
}

func (h *Handler) generate(r *http.Request) jsonResponse {
	code, err := h.svc.Generate(r.Context())
	if err != nil {
		if twofasvc.Kind(err) == twofasvc.KindSeedState {
			return fail(http.StatusInternalServerError, msgSeedMissing, "")
		}
		return fail(http.StatusInternalServerError, msgGenerationFailed, diagnostic(err))
	}

	return ok(code)
}

func (h *Handler) verify(r *http.Request) jsonResponse {
	var req VerifyRequest
	if err := binder.JSON(r, &req, binder.WithMaxSize(h.maxBody)); err != nil {
		return fail(http.StatusBadRequest, msgInvalidBody, "")
	}

	valid, err := h.svc.Verify(r.Context(), req.Code)
	if err != nil {
		switch twofasvc.Kind(err) {
		case twofasvc.KindInput:
			return fail(http.StatusBadRequest, msgMissingCode, "")
		case twofasvc.KindSeedState:
			return fail(http.StatusInternalServerError, msgSeedMissing, "")
		default:
			return fail(http.StatusInternalServerError, msgVerifyFailed, diagnostic(err))
		}
	}

	return ok(validResponse{Valid: valid})
}

// diagnostic returns a fixed description safe to expose to clients.
func diagnostic(err error) string {
	if errors.Is(err, twofasvc.ErrStore) {
		return "seed store unavailable"
	}
	return "internal error"
}
