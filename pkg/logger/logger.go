package logger

import (
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
)

// Environment names understood by WithEnvironment.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Redacted replaces the value of sensitive attributes.
const Redacted = "[redacted]"

// DefaultRedactedKeys are attribute keys whose values never reach the output.
var DefaultRedactedKeys = []string{
	"seed",
	"encrypted_seed",
	"code",
	"private_key",
	"signature",
}

type options struct {
	level      slog.Level
	format     Format
	output     io.Writer
	attrs      []slog.Attr
	extractors []ContextExtractor
	redact     []string
}

type Option func(*options)

func WithLevel(l slog.Level) Option {
	return func(o *options) { o.level = l }
}

// WithFormat selects JSON or text output. Unknown formats are ignored.
func WithFormat(f Format) Option {
	return func(o *options) {
		if f == FormatJSON || f == FormatText {
			o.format = f
		}
	}
}

func WithTextFormatter() Option { return WithFormat(FormatText) }

func WithJSONFormatter() Option { return WithFormat(FormatJSON) }

func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

// WithAttr adds static attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(o *options) { o.attrs = append(o.attrs, attrs...) }
}

// WithContextExtractors adds attributes read from the record's context.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) {
		for _, ex := range extractors {
			if ex != nil {
				o.extractors = append(o.extractors, ex)
			}
		}
	}
}

// WithRedactedKeys extends DefaultRedactedKeys. Matching is case-insensitive.
func WithRedactedKeys(keys ...string) Option {
	return func(o *options) {
		for _, k := range keys {
			o.redact = append(o.redact, strings.ToLower(k))
		}
	}
}

// WithEnvironment applies per-environment presets and tags records with the
// service and environment names. Unknown names get development presets.
func WithEnvironment(env, service string) Option {
	return func(o *options) {
		switch env {
		case EnvProduction, "prod":
			env, o.level, o.format = EnvProduction, slog.LevelInfo, FormatJSON
		case EnvStaging, "stage":
			env, o.level, o.format = EnvStaging, slog.LevelDebug, FormatJSON
		default:
			env, o.level, o.format = EnvDevelopment, slog.LevelDebug, FormatText
		}
		if service != "" {
			o.attrs = append(o.attrs, slog.String("service", service))
		}
		o.attrs = append(o.attrs, slog.String("env", env))
	}
}

// New builds a logger. Defaults: JSON to stdout at info level.
func New(opts ...Option) *slog.Logger {
	o := &options{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
		redact: slices.Clone(DefaultRedactedKeys),
	}
	for _, opt := range opts {
		opt(o)
	}

	hopts := &slog.HandlerOptions{
		Level:       o.level,
		ReplaceAttr: redactor(o.redact),
	}

	var h slog.Handler
	if o.format == FormatText {
		h = slog.NewTextHandler(o.output, hopts)
	} else {
		h = slog.NewJSONHandler(o.output, hopts)
	}
	if len(o.attrs) > 0 {
		h = h.WithAttrs(o.attrs)
	}

	return slog.New(newContextHandler(h, o.extractors))
}

func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

func redactor(keys []string) func(groups []string, a slog.Attr) slog.Attr {
	return func(_ []string, a slog.Attr) slog.Attr {
		if slices.Contains(keys, strings.ToLower(a.Key)) {
			return slog.String(a.Key, Redacted)
		}
		return a
	}
}
