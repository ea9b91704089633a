package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tidal/core/logger"
)

type requestKey struct{}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	return rec
}

func TestGroup(t *testing.T) {
	t.Parallel()
	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestError(t *testing.T) {
	t.Parallel()
	err := errors.New("boom")
	attr := logger.Error(err)
	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestErrors(t *testing.T) {
	t.Parallel()
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "0", g[0].Key)
	assert.Equal(t, "2", g[1].Key)

	assert.True(t, logger.Errors(nil, nil).Equal(slog.Attr{}))
}

func TestPanic(t *testing.T) {
	t.Parallel()
	attr := logger.Panic("kaboom", []byte("goroutine 1"))
	require.Equal(t, "panic", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "kaboom", g[0].Value.String())
	assert.Equal(t, "goroutine 1", g[1].Value.String())

	assert.True(t, logger.Panic(nil, nil).Equal(slog.Attr{}))
}

func TestHTTPAttrs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		attr slog.Attr
		key  string
		want any
	}{
		{"method", logger.Method("GET"), "method", "GET"},
		{"path", logger.Path("/users/1"), "path", "/users/1"},
		{"route", logger.Route("/users/:id"), "route", "/users/:id"},
		{"status", logger.StatusCode(404), "status_code", int64(404)},
		{"request id", logger.RequestID("abc"), "request_id", "abc"},
		{"client ip", logger.ClientIP("10.0.0.1"), "client_ip", "10.0.0.1"},
		{"bytes", logger.BytesOut(12), "bytes_out", int64(12)},
		{"component", logger.Component("http"), "component", "http"},
		{"latency", logger.Latency(time.Second), "latency", time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.key, tt.attr.Key)
			assert.Equal(t, tt.want, tt.attr.Value.Any())
		})
	}

	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
	assert.True(t, logger.Route("").Equal(slog.Attr{}))
	assert.True(t, logger.ClientIP("").Equal(slog.Attr{}))
}

func TestNewJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithJSONFormatter(),
		logger.WithAttr(slog.String("service", "tidal")),
	)

	log.Debug("hidden")
	assert.Zero(t, buf.Len(), "debug is below the default level")

	log.Info("hello", logger.Method("GET"), logger.RequestID(""))
	rec := decode(t, &buf)
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "tidal", rec["service"])
	assert.Equal(t, "GET", rec["method"])
	assert.NotContains(t, rec, "request_id")
}

func TestNewText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelWarn))

	log.Info("quiet")
	log.Warn("loud", logger.StatusCode(503))

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "msg=loud")
	assert.Contains(t, out, "status_code=503")
}

func TestWithContextValue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithJSONFormatter(),
		logger.WithContextValue("request_id", requestKey{}),
	).With("component", "test")

	ctx := context.WithValue(context.Background(), requestKey{}, "req-42")
	log.InfoContext(ctx, "tagged")
	rec := decode(t, &buf)
	assert.Equal(t, "req-42", rec["request_id"])
	assert.Equal(t, "test", rec["component"])

	buf.Reset()
	log.InfoContext(context.Background(), "untagged")
	assert.NotContains(t, decode(t, &buf), "request_id")
}

func TestPresets(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger.New(logger.WithOutput(&buf), logger.WithProduction("api")).Info("prod")
	rec := decode(t, &buf)
	assert.Equal(t, "production", rec["env"])
	assert.Equal(t, "api", rec["service"])

	buf.Reset()
	logger.New(logger.WithOutput(&buf), logger.WithDevelopment("api")).Debug("dev")
	out := buf.String()
	assert.Contains(t, out, "env=development")
	assert.Contains(t, out, "source=")

	buf.Reset()
	logger.New(logger.WithOutput(&buf), logger.WithConfig(logger.Config{Level: "error", Format: "JSON"})).Warn("dropped")
	assert.Zero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("verbose"))
}

func TestDiscard(t *testing.T) {
	t.Parallel()
	log := logger.Discard()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}
