package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/tokenlens/tokenlens/pkg/errors"
	"github.com/tokenlens/tokenlens/pkg/pipeline"
)

// configFileName is looked up in the working directory, then in the home
// directory.
const configFileName = ".tokenlens.toml"

// Config holds user defaults loaded from .tokenlens.toml. Every field is
// optional; flags always win over config values.
type Config struct {
	// Kind is the default layout algorithm: treemap, flex, banded.
	Kind string `toml:"kind"`

	// Width and Height set the default frame size.
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`

	// Style is the default visual style: brutalist, plain.
	Style string `toml:"style"`

	// Formats is the default list of output formats.
	Formats []string `toml:"formats"`

	// Title is a default title for rendered maps.
	Title string `toml:"title"`

	// NoCache disables the layout/artifact cache.
	NoCache bool `toml:"no_cache"`
}

// loadConfig reads the first config file found, returning a zero Config
// when none exists.
func loadConfig() (Config, error) {
	path, ok := findConfig()
	if !ok {
		return Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to read %s", path)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to parse %s", path)
	}
	return cfg, nil
}

// findConfig returns the path of the nearest config file.
func findConfig() (string, bool) {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, true
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	path := filepath.Join(home, configFileName)
	if _, err := os.Stat(path); err == nil {
		return path, true
	}
	return "", false
}

// applyConfig fills unset pipeline options from the config.
func applyConfig(opts *pipeline.Options, cfg Config) {
	if opts.Kind == "" && cfg.Kind != "" {
		opts.Kind = cfg.Kind
	}
	if opts.Width == 0 && cfg.Width > 0 {
		opts.Width = cfg.Width
	}
	if opts.Height == 0 && cfg.Height > 0 {
		opts.Height = cfg.Height
	}
	if opts.Style == "" && cfg.Style != "" {
		opts.Style = cfg.Style
	}
	if len(opts.Formats) == 0 && len(cfg.Formats) > 0 {
		opts.Formats = cfg.Formats
	}
	if opts.Title == "" && cfg.Title != "" {
		opts.Title = cfg.Title
	}
}
