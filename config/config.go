// Package config provides loading and parsing of wot.yaml configuration files.
// A configuration selects the payload content type, the addressing mode used
// for object payloads, the log level and the telemetry switches.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zero-day-ai/wot"
	"github.com/zero-day-ai/wot/schema"
)

// Supported payload content types.
const (
	ContentTypeJSON = "application/json"
	ContentTypeText = "text/plain"
)

// Config represents a wot.yaml configuration file.
type Config struct {
	Payload   PayloadConfig   `yaml:"payload"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// PayloadConfig controls how payloads are validated and serialized.
type PayloadConfig struct {
	// ContentType is the media type payloads are rendered in.
	// Default: application/json
	ContentType string `yaml:"content_type,omitempty"`

	// Addressing is the addressing mode of top-level object payloads:
	// "auto", "names" or "semantic_types".
	// Default: auto
	Addressing string `yaml:"addressing,omitempty"`
}

// LoggingConfig controls the logger built by NewLogger.
type LoggingConfig struct {
	// Level is one of debug, info, warn or error.
	// Default: info
	Level string `yaml:"level,omitempty"`

	// Format is "text" or "json".
	// Default: text
	Format string `yaml:"format,omitempty"`
}

// TelemetryConfig switches OpenTelemetry instrumentation on or off.
type TelemetryConfig struct {
	// Tracing enables spans when a tracer is supplied.
	// Default: true
	Tracing *bool `yaml:"tracing,omitempty"`

	// Metrics enables the payload counters when a meter is supplied.
	// Default: true
	Metrics *bool `yaml:"metrics,omitempty"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills in every unset field.
func (c *Config) ApplyDefaults() {
	if c.Payload.ContentType == "" {
		c.Payload.ContentType = ContentTypeJSON
	}
	if c.Payload.Addressing == "" {
		c.Payload.Addressing = schema.AddressAuto.String()
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Telemetry.Tracing == nil {
		c.Telemetry.Tracing = boolPtr(true)
	}
	if c.Telemetry.Metrics == nil {
		c.Telemetry.Metrics = boolPtr(true)
	}
}

func boolPtr(b bool) *bool {
	return &b
}

// TracingEnabled reports whether tracing is switched on. Unset means on.
func (c *Config) TracingEnabled() bool {
	return c == nil || c.Telemetry.Tracing == nil || *c.Telemetry.Tracing
}

// MetricsEnabled reports whether metrics are switched on. Unset means on.
func (c *Config) MetricsEnabled() bool {
	return c == nil || c.Telemetry.Metrics == nil || *c.Telemetry.Metrics
}

// Validate checks every field and reports the first invalid one.
func (c *Config) Validate() error {
	const op = "Config.Validate"

	switch c.Payload.ContentType {
	case ContentTypeJSON, ContentTypeText:
	default:
		return invalid(op, "payload.content_type", c.Payload.ContentType)
	}
	if _, err := schema.ParseAddressingMode(c.Payload.Addressing); err != nil {
		return invalid(op, "payload.addressing", c.Payload.Addressing)
	}
	if _, ok := parseLevel(c.Logging.Level); !ok {
		return invalid(op, "logging.level", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return invalid(op, "logging.format", c.Logging.Format)
	}
	return nil
}

func invalid(op, key, value string) error {
	return wot.NewConfigurationError(op, fmt.Errorf("%w: %s %q is not supported", wot.ErrInvalidConfig, key, value)).
		WithContext(map[string]any{"key": key})
}

// GetAddressingMode returns the configured addressing mode, or AddressAuto
// when it is unset or invalid.
func (c *Config) GetAddressingMode() schema.AddressingMode {
	if c == nil {
		return schema.AddressAuto
	}
	mode, err := schema.ParseAddressingMode(c.Payload.Addressing)
	if err != nil {
		return schema.AddressAuto
	}
	return mode
}

// GetContentType returns the configured content type or the default value.
func (c *Config) GetContentType() string {
	if c == nil || c.Payload.ContentType == "" {
		return ContentTypeJSON
	}
	return c.Payload.ContentType
}

// SlogLevel returns the configured log level, or slog.LevelInfo when it is
// unset or invalid.
func (c *Config) SlogLevel() slog.Level {
	if c == nil {
		return slog.LevelInfo
	}
	level, ok := parseLevel(c.Logging.Level)
	if !ok {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// NewLogger builds a logger writing to w at the configured level and format.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if c != nil && strings.EqualFold(c.Logging.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Parse decodes a YAML configuration, applies defaults and validates it.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	const op = "config.Parse"

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, wot.NewConfigurationError(op, fmt.Errorf("%w: %v", wot.ErrInvalidConfig, err))
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads and parses a wot.yaml file from the given path.
// If the path is a directory, it looks for wot.yaml or wot.yml in that directory.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	info, err := os.Stat(path)
	if err != nil {
		return nil, wot.NewConfigurationError(op, fmt.Errorf("failed to stat path: %w", err))
	}

	configPath := path
	if info.IsDir() {
		configPath, err = findInDir(path)
		if err != nil {
			return nil, wot.NewConfigurationError(op, err)
		}
	}

	f, err := os.Open(configPath)
	if err != nil {
		return nil, wot.NewConfigurationError(op, fmt.Errorf("failed to open config file: %w", err))
	}
	defer wot.CloseWithLog(f, nil, configPath)

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, wot.NewConfigurationError(op, fmt.Errorf("failed to read config file: %w", err))
	}

	cfg, err := Parse(data)
	if err != nil {
		var wotErr *wot.Error
		if errors.As(err, &wotErr) {
			return nil, wotErr.WithContext(map[string]any{"path": configPath})
		}
		return nil, err
	}
	return cfg, nil
}

func findInDir(dir string) (string, error) {
	for _, name := range []string{"wot.yaml", "wot.yml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no wot.yaml or wot.yml found in %s", dir)
}

// LoadFromDir searches for wot.yaml starting from the given directory and
// walking up to parent directories until found or the root is reached.
func LoadFromDir(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, wot.NewConfigurationError("config.LoadFromDir", fmt.Errorf("failed to get absolute path: %w", err))
	}

	for {
		if _, err := findInDir(absDir); err == nil {
			return Load(absDir)
		}

		parent := filepath.Dir(absDir)
		if parent == absDir {
			return nil, wot.NewConfigurationError("config.LoadFromDir", fmt.Errorf("no wot.yaml found in %s or any parent directory", dir))
		}
		absDir = parent
	}
}
