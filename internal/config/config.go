package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/ycho/wrike-mcp-server/internal/wrike"
)

const namespace = "WRIKE"

// Config is resolved once at startup and not modified afterwards.
type Config struct {
	AccessToken string        `envconfig:"ACCESS_TOKEN" required:"true"`
	Host        string        `envconfig:"HOST" default:"www.wrike.com"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`
	ToolTimeout time.Duration `envconfig:"TOOL_TIMEOUT" default:"30s"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	ReadOnly    bool          `envconfig:"READ_ONLY" default:"false"`
	Port        int           `envconfig:"PORT" default:"8080"`
}

// Load reads the WRIKE_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(namespace, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if strings.TrimSpace(cfg.AccessToken) == "" {
		return nil, fmt.Errorf("failed to load configuration: %s_ACCESS_TOKEN is empty", namespace)
	}
	return &cfg, nil
}

// BaseURL returns the API root for the configured host.
func (c *Config) BaseURL() string {
	return wrike.BaseURL(c.Host)
}

// SlogLevel parses LogLevel, falling back to info.
func (c *Config) SlogLevel() slog.Level {
	if c == nil {
		return slog.LevelInfo
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// NewLogger returns a text logger writing to w. Stdout carries the stdio
// transport, so callers pass os.Stderr.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewClient builds a Wrike client from the configuration.
func (c *Config) NewClient(logger *slog.Logger) *wrike.Client {
	return wrike.NewClient(c.BaseURL(), c.AccessToken,
		wrike.WithTimeout(c.HTTPTimeout),
		wrike.WithLogger(logger),
	)
}
