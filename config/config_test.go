package config

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/wot"
	"github.com/zero-day-ai/wot/schema"
)

const fullConfig = `
payload:
  content_type: text/plain
  addressing: semantic_types
logging:
  level: debug
  format: json
telemetry:
  tracing: true
  metrics: true
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(fullConfig))
	require.NoError(t, err)

	assert.Equal(t, ContentTypeText, cfg.Payload.ContentType)
	assert.Equal(t, "semantic_types", cfg.Payload.Addressing)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.TracingEnabled())
	assert.True(t, cfg.MetricsEnabled())

	assert.Equal(t, schema.AddressBySemanticType, cfg.GetAddressingMode())
	assert.Equal(t, ContentTypeText, cfg.GetContentType())
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestParse_Defaults(t *testing.T) {
	for _, data := range []string{"", "payload: {}\n", "payload:\n  content_type: application/json\n", "telemetry: {}\n"} {
		cfg, err := Parse([]byte(data))
		require.NoError(t, err)

		assert.Equal(t, Default(), cfg)
		assert.Equal(t, ContentTypeJSON, cfg.Payload.ContentType)
		assert.Equal(t, "auto", cfg.Payload.Addressing)
		assert.Equal(t, "info", cfg.Logging.Level)
		assert.Equal(t, "text", cfg.Logging.Format)
		assert.True(t, cfg.TracingEnabled())
		assert.True(t, cfg.MetricsEnabled())
	}
}

func TestParse_TelemetrySwitches(t *testing.T) {
	tests := []struct {
		name        string
		data        string
		wantTracing bool
		wantMetrics bool
	}{
		{"unset", "logging:\n  level: warn\n", true, true},
		{"tracing off", "telemetry:\n  tracing: false\n", false, true},
		{"metrics off", "telemetry:\n  metrics: false\n", true, false},
		{"both off", "telemetry:\n  tracing: false\n  metrics: false\n", false, false},
		{"explicitly on", "telemetry:\n  tracing: true\n  metrics: true\n", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.wantTracing, cfg.TracingEnabled())
			assert.Equal(t, tt.wantMetrics, cfg.MetricsEnabled())
		})
	}
}

func TestTelemetrySwitches_NilConfig(t *testing.T) {
	var cfg *Config
	assert.True(t, cfg.TracingEnabled())
	assert.True(t, cfg.MetricsEnabled())
	assert.True(t, (&Config{}).TracingEnabled(), "unset switches are on")
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantKey string
	}{
		{"content type", "payload:\n  content_type: application/xml\n", "payload.content_type"},
		{"addressing", "payload:\n  addressing: uris\n", "payload.addressing"},
		{"level", "logging:\n  level: verbose\n", "logging.level"},
		{"format", "logging:\n  format: xml\n", "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.True(t, errors.Is(err, wot.ErrInvalidConfig))

			var wotErr *wot.Error
			require.True(t, errors.As(err, &wotErr))
			assert.Equal(t, wot.KindConfiguration, wotErr.Kind)
			assert.Equal(t, tt.wantKey, wotErr.Context["key"])
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := map[string]string{
		"unknown key":  "payload:\n  codec: cbor\n",
		"wrong type":   "telemetry:\n  tracing: [1, 2]\n",
		"invalid yaml": "payload: [\n",
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, wot.ErrInvalidConfig))
			assert.True(t, errors.Is(err, &wot.Error{Kind: wot.KindConfiguration}))
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fullConfig), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ContentTypeText, cfg.Payload.ContentType)
}

func TestLoad_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wot.yml"), []byte("logging:\n  level: warn\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "wot.yaml"), []byte("logging:\n  level: error\n"), 0o644))
	cfg, err = Load(dir)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelError, cfg.SlogLevel(), "wot.yaml takes precedence over wot.yml")
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no wot.yaml or wot.yml found")

	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("payload:\n  addressing: uris\n"), 0o644))
	_, err = Load(path)
	require.Error(t, err)

	var wotErr *wot.Error
	require.True(t, errors.As(err, &wotErr))
	assert.Equal(t, path, wotErr.Context["path"])
	assert.Equal(t, "payload.addressing", wotErr.Context["key"])
}

func TestLoadFromDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "wot.yaml"), []byte(fullConfig), 0o644))

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := LoadFromDir(nested)
	require.NoError(t, err)
	assert.Equal(t, "semantic_types", cfg.Payload.Addressing)
}

func TestNilConfigGetters(t *testing.T) {
	var cfg *Config

	assert.Equal(t, schema.AddressAuto, cfg.GetAddressingMode())
	assert.Equal(t, ContentTypeJSON, cfg.GetContentType())
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.NotNil(t, cfg.NewLogger(&bytes.Buffer{}))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{Logging: LoggingConfig{Level: "warn", Format: "json"}}
	logger := cfg.NewLogger(&buf)

	logger.Info("dropped")
	assert.Empty(t, buf.String())

	logger.Warn("payload rejected", "path", "/height")
	assert.Contains(t, buf.String(), `"msg":"payload rejected"`)
	assert.Contains(t, buf.String(), `"path":"/height"`)

	buf.Reset()
	text := Default().NewLogger(&buf)
	text.Info("accepted")
	assert.Contains(t, buf.String(), "msg=accepted")
}
