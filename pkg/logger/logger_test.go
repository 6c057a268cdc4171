package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pki2fa/pkg/logger"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestNewDefaults(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf))

	log.Debug("hidden")
	assert.Zero(t, buf.Len(), "debug is below the default level")

	log.Info("hello", slog.Int("n", 1))
	m := decode(t, &buf)
	assert.Equal(t, "hello", m["msg"])
	assert.Equal(t, "INFO", m["level"])
	assert.EqualValues(t, 1, m["n"])
}

func TestFormats(t *testing.T) {
	t.Parallel()

	var text bytes.Buffer
	logger.New(logger.WithOutput(&text), logger.WithTextFormatter()).Info("hello")
	assert.Contains(t, text.String(), "msg=hello")

	var js bytes.Buffer
	logger.New(logger.WithOutput(&js), logger.WithTextFormatter(), logger.WithJSONFormatter()).Info("hello")
	assert.True(t, strings.HasPrefix(js.String(), "{"))

	var unknown bytes.Buffer
	logger.New(logger.WithOutput(&unknown), logger.WithFormat("xml")).Info("hello")
	assert.True(t, strings.HasPrefix(unknown.String(), "{"), "unknown format keeps JSON")
}

func TestWithEnvironment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env       string
		wantEnv   string
		debugSeen bool
		json      bool
	}{
		{logger.EnvProduction, logger.EnvProduction, false, true},
		{"prod", logger.EnvProduction, false, true},
		{logger.EnvStaging, logger.EnvStaging, true, true},
		{logger.EnvDevelopment, logger.EnvDevelopment, true, false},
		{"anything", logger.EnvDevelopment, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			log := logger.New(logger.WithEnvironment(tt.env, "pki2fa"), logger.WithOutput(&buf))

			log.Debug("debug")
			assert.Equal(t, tt.debugSeen, buf.Len() > 0)

			buf.Reset()
			log.Info("info")
			out := buf.String()
			assert.Contains(t, out, "pki2fa")
			assert.Contains(t, out, tt.wantEnv)
			assert.Equal(t, tt.json, strings.HasPrefix(out, "{"))
		})
	}
}

func TestRedaction(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithRedactedKeys("Token"))

	log.Info("oops",
		slog.String("seed", "3132333435363738393031323334353637383930313233343536373839303132"),
		slog.String("code", "123456"),
		slog.String("token", "secret"),
		slog.String("student", "kept"),
	)

	m := decode(t, &buf)
	assert.Equal(t, logger.Redacted, m["seed"])
	assert.Equal(t, logger.Redacted, m["code"])
	assert.Equal(t, logger.Redacted, m["token"])
	assert.Equal(t, "kept", m["student"])
	assert.NotContains(t, buf.String(), "123456")
}

type ctxKey struct{}

func TestContextExtractors(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	extract := func(ctx context.Context) (slog.Attr, bool) {
		if v, ok := ctx.Value(ctxKey{}).(string); ok {
			return slog.String("request_id", v), true
		}
		return slog.Attr{}, false
	}
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithContextExtractors(nil, extract),
		logger.WithAttr(slog.String("static", "yes")),
	).With(logger.Component("test")).WithGroup("g")

	log.InfoContext(context.WithValue(context.Background(), ctxKey{}, "req-1"), "with id")
	m := decode(t, &buf)
	assert.Equal(t, "yes", m["static"])
	assert.Equal(t, "test", m["component"])
	group, ok := m["g"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "req-1", group["request_id"])

	buf.Reset()
	log.InfoContext(context.Background(), "without id")
	assert.NotContains(t, buf.String(), "request_id")
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Error(nil))
	assert.Equal(t, "boom", logger.Error(errors.New("boom")).Value.String())

	tests := []struct {
		attr slog.Attr
		key  string
		want any
	}{
		{logger.Component("twofa"), "component", "twofa"},
		{logger.Operation("verify"), "operation", "verify"},
		{logger.Handler("generate_2fa"), "handler", "generate_2fa"},
		{logger.Backend("redis"), "backend", "redis"},
		{logger.StatusCode(500), "status_code", int64(500)},
		{logger.Valid(true), "valid", true},
		{logger.Duration(time.Second), "duration", time.Second},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.key, tt.attr.Key)
		assert.Equal(t, tt.want, tt.attr.Value.Any())
	}
}
