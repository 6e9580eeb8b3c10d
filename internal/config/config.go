package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/LegacyCodeHQ/chronograph/depgraph"
)

// FileName is the config file looked up in the working directory when --config is not given.
const FileName = ".chronograph"

// Config holds settings shared by all commands.
type Config struct {
	Format        string   `mapstructure:"format"`
	Depth         int      `mapstructure:"depth"`
	Port          int      `mapstructure:"port"`
	CachePatterns []string `mapstructure:"cachePatterns"`
	CacheSize     int      `mapstructure:"cacheSize"`
	Verbose       bool     `mapstructure:"verbose"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Format:    "json",
		Depth:     1,
		Port:      4900,
		CacheSize: 64,
	}
}

// Load reads configuration from path, or from .chronograph.{yaml,json,toml} in dir when
// path is empty. Environment variables prefixed CHRONOGRAPH_ override file values.
// A missing config file is not an error.
func Load(path, dir string) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("format", def.Format)
	v.SetDefault("depth", def.Depth)
	v.SetDefault("port", def.Port)
	v.SetDefault("cachePatterns", []string{})
	v.SetDefault("cacheSize", def.CacheSize)
	v.SetDefault("verbose", false)

	v.SetEnvPrefix("CHRONOGRAPH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
		case path == "" && errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and that every cache pattern compiles.
func (c *Config) Validate() error {
	if c.Depth < 1 {
		return fmt.Errorf("depth must be at least 1, got %d", c.Depth)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	if c.CacheSize < 1 {
		return fmt.Errorf("cacheSize must be at least 1, got %d", c.CacheSize)
	}
	if _, err := c.Normalizer(); err != nil {
		return err
	}
	return nil
}

// Normalizer builds the path normalizer with the configured extra cache patterns.
func (c *Config) Normalizer() (*depgraph.PathNormalizer, error) {
	return depgraph.NewPathNormalizer(c.CachePatterns...)
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying cfg.
func NewContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, contextKey{}, cfg)
}

// FromContext returns the configuration stored in ctx, or the defaults when there is none.
func FromContext(ctx context.Context) *Config {
	if ctx != nil {
		if cfg, ok := ctx.Value(contextKey{}).(*Config); ok && cfg != nil {
			return cfg
		}
	}
	return Default()
}
