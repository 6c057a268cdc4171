package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Client is the subset of *s3.Client used by S3Storage.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Storage stores blobs as objects in an S3 bucket.
// It is safe for concurrent use.
type S3Storage struct {
	client        S3Client
	bucket        string
	prefix        string
	timeout       time.Duration
	sse           types.ServerSideEncryption
	maxObjectSize int64
}

// S3Config is read from the environment, usually under a prefix.
type S3Config struct {
	Bucket      string `env:"BUCKET"`
	Region      string `env:"REGION"`
	AccessKeyID string `env:"ACCESS_KEY_ID"`
	SecretKey   string `env:"SECRET_KEY"`

	// Endpoint is optional and used for S3-compatible services.
	Endpoint string `env:"ENDPOINT"`

	// Prefix is prepended to every object key.
	Prefix string `env:"PREFIX"`

	// ForcePathStyle is required by services like MinIO.
	ForcePathStyle bool `env:"FORCE_PATH_STYLE"`
}

// S3Option configures NewS3Storage.
type S3Option func(*s3Options)

type s3Options struct {
	httpClient      *http.Client
	s3Client        S3Client
	s3ConfigOptions []func(*config.LoadOptions) error
	s3ClientOptions []func(*s3.Options)
	timeout         time.Duration
	sse             types.ServerSideEncryption
	maxObjectSize   int64
}

// WithS3Client skips AWS config loading and uses client as is.
func WithS3Client(client S3Client) S3Option {
	return func(o *s3Options) { o.s3Client = client }
}

// WithHTTPClient replaces the SDK transport.
func WithHTTPClient(client *http.Client) S3Option {
	return func(o *s3Options) { o.httpClient = client }
}

// WithS3ConfigOption is passed to config.LoadDefaultConfig.
func WithS3ConfigOption(option func(*config.LoadOptions) error) S3Option {
	return func(o *s3Options) { o.s3ConfigOptions = append(o.s3ConfigOptions, option) }
}

// WithS3ClientOption is passed to s3.NewFromConfig.
func WithS3ClientOption(option func(*s3.Options)) S3Option {
	return func(o *s3Options) { o.s3ClientOptions = append(o.s3ClientOptions, option) }
}

// WithS3Timeout bounds every S3 call.
// If not set, the caller's context deadline applies.
func WithS3Timeout(timeout time.Duration) S3Option {
	return func(o *s3Options) { o.timeout = timeout }
}

// WithServerSideEncryption requests server-side encryption on upload.
func WithServerSideEncryption(sse types.ServerSideEncryption) S3Option {
	return func(o *s3Options) { o.sse = sse }
}

// WithMaxObjectSize limits how many bytes Read accepts. Default 1 MiB.
func WithMaxObjectSize(n int64) S3Option {
	return func(o *s3Options) { o.maxObjectSize = n }
}

// NewS3Storage requires Bucket and Region.
func NewS3Storage(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Storage, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}

	options := &s3Options{maxObjectSize: 1 << 20}
	for _, opt := range opts {
		opt(options)
	}

	client := options.s3Client
	if client == nil {
		var err error
		if client, err = newS3Client(ctx, cfg, options); err != nil {
			return nil, err
		}
	}

	prefix := strings.Trim(cfg.Prefix, "/")
	if prefix != "" {
		prefix += "/"
	}

	return &S3Storage{
		client:        client,
		bucket:        cfg.Bucket,
		prefix:        prefix,
		timeout:       options.timeout,
		sse:           options.sse,
		maxObjectSize: options.maxObjectSize,
	}, nil
}

// s3ErrorCodes maps S3 API error codes to package sentinels.
var s3ErrorCodes = map[string]error{
	"NoSuchKey":          ErrFileNotFound,
	"NotFound":           ErrFileNotFound,
	"NoSuchBucket":       ErrBucketNotFound,
	"AccessDenied":       ErrAccessDenied,
	"RequestTimeout":     ErrRequestTimeout,
	"SlowDown":           ErrServiceUnavailable,
	"ServiceUnavailable": ErrServiceUnavailable,
}

func classifyS3Error(err error, operation string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: s3 %s", ErrOperationTimeout, operation)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: s3 %s", ErrOperationCanceled, operation)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		if sentinel, ok := s3ErrorCodes[code]; ok {
			return fmt.Errorf("%w: s3 %s: %s", sentinel, operation, code)
		}
		return fmt.Errorf("s3 %s failed with %s: %w", operation, code, err)
	}

	return fmt.Errorf("s3 %s failed: %w", operation, err)
}

func (s *S3Storage) objectKey(key string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	if key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, key)
	}
	return s.prefix + key, nil
}

func (s *S3Storage) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return ctx, func() {}
}

// Read returns the object stored under key, or (nil, nil) if it does not exist.
func (s *S3Storage) Read(ctx context.Context, key string) ([]byte, error) {
	objKey, err := s.objectKey(key)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objKey),
	})
	if err != nil {
		classified := classifyS3Error(err, "read object")
		if errors.Is(classified, ErrFileNotFound) {
			return nil, nil
		}
		return nil, classified
	}
	defer func() { _ = out.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(out.Body, s.maxObjectSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	if int64(len(data)) > s.maxObjectSize {
		return nil, fmt.Errorf("%w: object exceeds %d bytes", ErrFailedToReadFile, s.maxObjectSize)
	}
	return data, nil
}

// Write uploads data under key, replacing any existing object.
func (s *S3Storage) Write(ctx context.Context, key string, data []byte) error {
	objKey, err := s.objectKey(key)
	if err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objKey),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("text/plain"),
	}
	if s.sse != "" {
		input.ServerSideEncryption = s.sse
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return classifyS3Error(err, "write object")
	}
	return nil
}

// Delete removes the object stored under key.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	objKey, err := s.objectKey(key)
	if err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err = s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objKey),
	})
	if err != nil {
		return classifyS3Error(err, "check object")
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objKey),
	})
	if err != nil {
		return classifyS3Error(err, "delete object")
	}
	return nil
}

// Exists issues a HEAD request; any error counts as absent.
func (s *S3Storage) Exists(ctx context.Context, key string) bool {
	objKey, err := s.objectKey(key)
	if err != nil {
		return false
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err = s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objKey),
	})
	return err == nil
}

func newS3Client(ctx context.Context, cfg S3Config, options *s3Options) (*s3.Client, error) {
	loadOpts := append([]func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}, options.s3ConfigOptions...)
	if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
		creds := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, "")
		loadOpts = append(loadOpts, config.WithCredentialsProvider(creds))
	}
	if options.httpClient != nil {
		loadOpts = append(loadOpts, config.WithHTTPClient(options.httpClient))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadConfig, err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
		for _, fn := range options.s3ClientOptions {
			fn(o)
		}
	}), nil
}
