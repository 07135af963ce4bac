// Package config loads giveaway settings.
//
// The file lives at $XDG_CONFIG_HOME/giveaway/config.yaml (or
// ~/.config/giveaway/config.yaml). A missing file means defaults.
// Environment variables GIVEAWAY_DATA, GIVEAWAY_ADDR and GIVEAWAY_THEME
// override the file; command-line flags override both.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/giveaway/internal/catalog"
	"github.com/Makepad-fr/giveaway/internal/store/jsonstore"
)

type Config struct {
	Data             string `yaml:"data,omitempty"`              // path or http(s) URL of items.json
	ImagesDir        string `yaml:"images_dir,omitempty"`        // served under /media/ by `serve`
	PlaceholderImage string `yaml:"placeholder_image,omitempty"` // shown when an item has no image
	UnknownStatus    string `yaml:"unknown_status,omitempty"`    // taken | available
	Theme            string `yaml:"theme,omitempty"`             // classic | neon | mono
	LogFile          string `yaml:"log_file,omitempty"`
	Addr             string `yaml:"addr,omitempty"`
	Watch            bool   `yaml:"watch,omitempty"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Data:             jsonstore.DefaultSource,
		PlaceholderImage: catalog.DefaultPlaceholderImage,
		UnknownStatus:    "taken",
		Theme:            "classic",
		Addr:             ":8080",
	}
}

// Dir is the XDG config directory for giveaway.
func Dir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "giveaway")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "giveaway")
}

// Path is the default config file location, "" if no home directory.
func Path() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads path (or the default location when path is empty), applies
// environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Read is Load without validation, for callers that layer more overrides
// (command-line flags) before validating.
func Read(path string) (Config, error) {
	if path == "" {
		path = Path()
	}
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("GIVEAWAY_DATA")); v != "" {
		cfg.Data = v
	}
	if v := strings.TrimSpace(os.Getenv("GIVEAWAY_ADDR")); v != "" {
		cfg.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("GIVEAWAY_THEME")); v != "" {
		cfg.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv("GIVEAWAY_LOG")); v != "" {
		cfg.LogFile = v
	}
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	if _, err := catalog.ParsePolicy(c.UnknownStatus); err != nil {
		return err
	}
	switch strings.ToLower(c.Theme) {
	case "", "classic", "neon", "mono":
	default:
		return fmt.Errorf("theme must be classic, neon or mono, got %q", c.Theme)
	}
	return nil
}

// Policy is the parsed unknown_status setting.
func (c Config) Policy() catalog.Policy {
	p, _ := catalog.ParsePolicy(c.UnknownStatus)
	return p
}

// Images is the directory served for image references. It defaults to the
// directory holding a local data file.
func (c Config) Images() string {
	if c.ImagesDir != "" {
		return c.ImagesDir
	}
	if jsonstore.IsRemote(c.Data) {
		return ""
	}
	return filepath.Dir(c.Data)
}

// Save writes cfg as YAML, creating the parent directory.
func Save(path string, cfg Config) error {
	if path == "" {
		path = Path()
	}
	if path == "" {
		return errors.New("no config path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
