// Package provision requests an encrypted seed from the issuing service.
//
// The client posts the student identity and RSA public key as JSON and
// returns the base64 ciphertext found under "encrypted_seed". Requests are
// bounded by a timeout and are never retried.
package provision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds a single seed request.
	DefaultTimeout = 15 * time.Second
	// DefaultOutputFile is where the ciphertext is saved by SaveEncryptedSeed callers.
	DefaultOutputFile = "encrypted_seed.txt"

	maxResponseSize = 1 << 20
	maxErrorBody    = 512
)

// Request is the payload sent to the seed API.
type Request struct {
	StudentID     string `json:"student_id"`
	GitHubRepoURL string `json:"github_repo_url"`
	// PublicKey is the full PEM text including BEGIN/END lines.
	PublicKey string `json:"public_key"`
}

// Validate reports missing fields.
func (r Request) Validate() error {
	var errs []error
	if strings.TrimSpace(r.StudentID) == "" {
		errs = append(errs, errors.New("student_id is required"))
	}
	if strings.TrimSpace(r.GitHubRepoURL) == "" {
		errs = append(errs, errors.New("github_repo_url is required"))
	}
	if !strings.Contains(r.PublicKey, "BEGIN PUBLIC KEY") && !strings.Contains(r.PublicKey, "BEGIN RSA PUBLIC KEY") {
		errs = append(errs, errors.New("public_key must be a PEM encoded public key"))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidRequest}, errs...)...)
	}
	return nil
}

type response struct {
	EncryptedSeed *string `json:"encrypted_seed"`
}

// Client talks to the seed API.
type Client struct {
	endpoint string
	client   *http.Client
	timeout  time.Duration
}

// Option configures Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client for transports, proxies or tests.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.client = c
		}
	}
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.timeout = d
		}
	}
}

// NewClient validates the endpoint and returns a Client.
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, endpoint)
	}

	c := &Client{
		endpoint: endpoint,
		client:   &http.Client{},
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// RequestSeed posts req and returns the encrypted seed from a 200 response.
func (c *Client) RequestSeed(ctx context.Context, req Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return "", errors.Join(ErrInvalidRequest, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Join(ErrRequestFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", errors.Join(ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", errors.Join(ErrRequestFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		snippet := string(body)
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return "", fmt.Errorf("%w: %d: %s", ErrUnexpectedStatus, resp.StatusCode, snippet)
	}

	var out response
	if err := json.Unmarshal(body, &out); err != nil {
		return "", errors.Join(ErrInvalidResponse, err)
	}
	if out.EncryptedSeed == nil || strings.TrimSpace(*out.EncryptedSeed) == "" {
		return "", fmt.Errorf("%w: missing encrypted_seed", ErrInvalidResponse)
	}

	return *out.EncryptedSeed, nil
}

// SaveEncryptedSeed writes the ciphertext to path with mode 0600.
func SaveEncryptedSeed(path, encryptedSeed string) error {
	if err := os.WriteFile(path, []byte(encryptedSeed), 0o600); err != nil {
		return errors.Join(ErrFailedToSave, err)
	}
	return nil
}
