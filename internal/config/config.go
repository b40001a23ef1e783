// Package config provides configuration loading for the stego MCP server.
//
// Configuration is read from a single YAML file named by the --config flag
// or, when the flag is absent, the STEGO_MCP_CONFIG environment variable.
// Without either, the built-in defaults apply unchanged; there is no search
// path or automatic discovery.
//
// STEGO_MCP_LOG_LEVEL overrides log.level after the file is loaded, matching
// the environment switch the server has always honored.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/stego-tools-mcp/internal/steg"
)

const (
	// EnvConfig names the config file when --config is not given.
	EnvConfig = "STEGO_MCP_CONFIG"

	// EnvLogLevel overrides log.level.
	EnvLogLevel = "STEGO_MCP_LOG_LEVEL"
)

// Config is the server configuration.
type Config struct {
	// Log configures diagnostic output on stderr.
	Log LogConfig `yaml:"log"`

	// Limits bounds the images the server will decode.
	Limits LimitsConfig `yaml:"limits"`

	// Encode configures defaults for embedding and extraction.
	Encode EncodeConfig `yaml:"encode"`

	// BitPlane configures LSB plane rendering.
	BitPlane BitPlaneConfig `yaml:"bitplane"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: warn
	Level string `yaml:"level"`
}

// LimitsConfig bounds request cost. Decoding materializes 3 bytes per pixel.
type LimitsConfig struct {
	// MaxImageBytes is the largest encoded image accepted.
	// Default: 16 MiB
	MaxImageBytes int64 `yaml:"max_image_bytes"`

	// MaxPixels is the largest width*height accepted.
	// Default: 40,000,000
	MaxPixels int `yaml:"max_pixels"`
}

// EncodeConfig configures steganography defaults.
type EncodeConfig struct {
	// DefaultChannel is used when a tool call omits "channel".
	// Values: R, G, B, ALL. Default: R
	DefaultChannel string `yaml:"default_channel"`
}

// BitPlaneConfig configures the stego_bitplane tool.
type BitPlaneConfig struct {
	// MaxScale caps the upscaling factor.
	// Default: 16
	MaxScale int `yaml:"max_scale"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "warn",
		},
		Limits: LimitsConfig{
			MaxImageBytes: 16 * 1024 * 1024,
			MaxPixels:     40_000_000,
		},
		Encode: EncodeConfig{
			DefaultChannel: "R",
		},
		BitPlane: BitPlaneConfig{
			MaxScale: 16,
		},
	}
}

// Load resolves and loads the configuration.
//
// path is the value of the --config flag; when empty, STEGO_MCP_CONFIG is
// consulted. When both are empty Default is returned. Environment overrides
// are applied and the result is validated.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}

	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnvironment()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile merges a YAML file into c.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil {
		if errors.Is(err, io.EOF) {
			// Empty file: keep the defaults.
			return nil
		}
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// applyEnvironment applies environment variable overrides.
func (c *Config) applyEnvironment() {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Log.Level = level
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.Limits.MaxImageBytes <= 0 {
		errs = append(errs, fmt.Errorf("limits.max_image_bytes must be positive"))
	}
	if c.Limits.MaxPixels <= 0 {
		errs = append(errs, fmt.Errorf("limits.max_pixels must be positive"))
	}
	if _, err := c.DefaultChannel(); err != nil {
		errs = append(errs, fmt.Errorf("encode.default_channel: %w", err))
	}
	if c.BitPlane.MaxScale < 1 {
		errs = append(errs, fmt.Errorf("bitplane.max_scale must be at least 1"))
	}

	return errors.Join(errs...)
}

// SlogLevel parses Log.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: invalid level %q", c.Log.Level)
	}
	return level, nil
}

// DefaultChannel parses Encode.DefaultChannel.
func (c *Config) DefaultChannel() (steg.Channel, error) {
	return steg.ParseChannel(c.Encode.DefaultChannel)
}
