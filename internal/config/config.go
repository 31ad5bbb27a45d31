// Package config loads svgicon settings from the environment.
package config

import (
	"fmt"
	"image/png"

	"github.com/caarlos0/env/v11"

	"github.com/provide-io/svgicon/pkg/icon/raster"
)

// Config holds environment-driven defaults. CLI flags override them.
type Config struct {
	LogLevel       string `env:"SVGICON_LOG_LEVEL" envDefault:"warn"`
	JSONLog        bool   `env:"SVGICON_JSON_LOG"`
	LogPath        string `env:"SVGICON_LOG_PATH"`
	Scaler         string `env:"SVGICON_SCALER" envDefault:"catmullrom"`
	PNGCompression string `env:"SVGICON_PNG_COMPRESSION" envDefault:"default"`
}

// Load parses the environment into a Config. Enum fields are checked by
// ResolveScaler and ResolveCompression once flag overrides are applied.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ResolveScaler returns the configured bitmap scaler.
func (c Config) ResolveScaler() (raster.Scaler, error) {
	return raster.ParseScaler(c.Scaler)
}

// ResolveCompression returns the configured PNG compression level.
func (c Config) ResolveCompression() (png.CompressionLevel, error) {
	return raster.ParseCompression(c.PNGCompression)
}
