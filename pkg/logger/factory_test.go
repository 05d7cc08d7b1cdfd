package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"log/slog"

	"github.com/dmitrymomot/sessionkit/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("creates JSON logger", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		require.NotNil(t, log)
		log.Info("hello")
		var entry map[string]any
		err := json.Unmarshal(buf.Bytes(), &entry)
		require.NoError(t, err)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text formatter option", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithTextFormatter(),
		)
		log.Info("hello")
		out := buf.String()
		assert.Contains(t, out, "INFO")
		assert.Contains(t, out, "hello")
	})

	t.Run("json formatter option", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithTextFormatter(),
			logger.WithJSONFormatter(),
		)
		log.Info("hello")
		var entry map[string]any
		err := json.Unmarshal(buf.Bytes(), &entry)
		require.NoError(t, err)
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("includes default attributes", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithAttr(slog.String("svc", "test")),
		)
		log.Info("msg")
		var entry map[string]any
		err := json.Unmarshal(buf.Bytes(), &entry)
		require.NoError(t, err)
		assert.Equal(t, "test", entry["svc"])
	})

	t.Run("extracts from context", func(t *testing.T) {
		buf := &bytes.Buffer{}
		type key string
		ctxKey := key("id")
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
				if v := ctx.Value(ctxKey); v != nil {
					return slog.String("id", v.(string)), true
				}
				return slog.Attr{}, false
			}),
		)
		ctx := context.WithValue(context.Background(), ctxKey, "42")
		log.InfoContext(ctx, "context msg")
		var entry map[string]any
		err := json.Unmarshal(buf.Bytes(), &entry)
		require.NoError(t, err)
		assert.Equal(t, "42", entry["id"])
	})
}

func TestSetAsDefault(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf))
	logger.SetAsDefault(log)
	slog.Info("default")
	var entry map[string]any
	err := json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err)
	assert.Equal(t, "default", entry["msg"])
}

func TestWithFormatPanics(t *testing.T) {
	assert.Panics(t, func() {
		logger.New(logger.WithFormat(logger.Format("xml")))
	})
}

func TestWithEnvironment(t *testing.T) {
	tests := []struct {
		name      string
		env       string
		wantJSON  bool
		wantDebug bool
	}{
		{name: "development", env: logger.EnvDevelopment, wantJSON: false, wantDebug: true},
		{name: "production", env: logger.EnvProduction, wantJSON: true, wantDebug: false},
		{name: "prod alias", env: "PROD", wantJSON: true, wantDebug: false},
		{name: "staging", env: "stage", wantJSON: true, wantDebug: false},
		{name: "unknown falls back to development", env: "qa", wantJSON: false, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			log := logger.New(
				logger.WithOutput(buf),
				logger.WithEnvironment(tt.env, "svc"),
			)
			log.Debug("debug msg")
			assert.Equal(t, tt.wantDebug, buf.Len() > 0)

			buf.Reset()
			log.Info("info msg")
			var entry map[string]any
			err := json.Unmarshal(buf.Bytes(), &entry)
			assert.Equal(t, tt.wantJSON, err == nil)
			assert.Contains(t, buf.String(), "svc")
		})
	}
}

func TestNewFromConfig(t *testing.T) {
	t.Run("explicit level and format win over preset", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.NewFromConfig(logger.Config{
			Env:     logger.EnvProduction,
			Service: "sessiond",
			Level:   slog.LevelWarn,
			Format:  logger.FormatText,
		}, logger.WithOutput(buf))

		log.Info("hidden")
		assert.Empty(t, buf.String())

		log.Warn("shown")
		out := buf.String()
		assert.Contains(t, out, "level=WARN")
		assert.Contains(t, out, "service=sessiond")
	})

	t.Run("extracts context values", func(t *testing.T) {
		buf := &bytes.Buffer{}
		type key string
		k := key("rid")
		log := logger.NewFromConfig(logger.Config{Env: logger.EnvProduction, Service: "svc"},
			logger.WithOutput(buf),
			logger.WithContextValue("request_id", k),
		)
		log.InfoContext(context.WithValue(context.Background(), k, "r-1"), "msg")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "r-1", entry["request_id"])
		assert.Equal(t, "production", entry["env"])
	})
}
