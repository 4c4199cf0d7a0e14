package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Environment variable overrides
const (
	EnvFormat   = "DOTD_FORMAT"
	EnvMaxDepth = "DOTD_MAX_DEPTH"
)

// DefaultFormat is the output format used when none is configured
const DefaultFormat = "text"

// Config holds the dotd tool settings
type Config struct {
	Files    []string          `toml:"files" json:"files"`                 // default top-level config files
	Format   string            `toml:"format" json:"format"`               // text, json, toml or yaml
	MaxDepth int               `toml:"max_depth" json:"max_depth"`         // 0 = unlimited include nesting
	EnvFile  string            `toml:"env_file" json:"env_file,omitempty"` // optional dotenv file for pattern expansion
	Env      map[string]string `toml:"env" json:"env,omitempty"`           // extra variables for pattern expansion
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Format: DefaultFormat,
	}
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // Empty is allowed (means not configured)
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// Path returns the path to the config file.
// Uses $XDG_CONFIG_HOME/dotd/config.toml when set, ~/.config/dotd/config.toml otherwise.
func Path() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dotd", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "dotd", "config.toml"), nil
}

// Load reads the config from Path() and applies environment overrides.
// Returns Default() if the file doesn't exist (no error).
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config file at path and applies environment overrides.
// Returns Default() if the file doesn't exist (no error).
// Returns error only if file exists but is invalid.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Default(), fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Default(), err
	}

	if err := cfg.normalize(); err != nil {
		return Default(), err
	}

	return cfg, nil
}

// applyEnv overrides settings from DOTD_* environment variables
func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvFormat); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv(EnvMaxDepth); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMaxDepth, v, err)
		}
		cfg.MaxDepth = n
	}
	return nil
}

// normalize validates settings, expands ~ in paths and fills in defaults
func (c *Config) normalize() error {
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if err := ValidateFormat(c.Format); err != nil {
		return err
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("invalid max_depth %d: must be >= 0", c.MaxDepth)
	}

	for i, f := range c.Files {
		if err := ValidatePath(f, fmt.Sprintf("files[%d]", i)); err != nil {
			return err
		}
		expanded, err := expandPath(f)
		if err != nil {
			return fmt.Errorf("expand files[%d]: %w", i, err)
		}
		c.Files[i] = expanded
	}

	if err := ValidatePath(c.EnvFile, "env_file"); err != nil {
		return err
	}
	expanded, err := expandPath(c.EnvFile)
	if err != nil {
		return fmt.Errorf("expand env_file: %w", err)
	}
	c.EnvFile = expanded

	return nil
}

type ctxKey struct{}

// WithConfig attaches the config to the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the config from context, or a default config if none is attached.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}
	d := Default()
	return &d
}

const defaultConfig = `# dotd configuration

# Top-level config files resolved when no files are passed on the command line.
# Must be absolute paths or start with ~
# files = ["~/.config/sway/config"]

# Output format for "dotd resolve": "text", "json", "toml" or "yaml"
format = "text"

# Maximum include nesting depth (top-level files are depth 1).
# 0 means unlimited; include cycles are always broken regardless.
# max_depth = 0

# Optional dotenv file whose variables are available to include patterns,
# e.g. "include $THEME_DIR/*.conf"
# env_file = "~/.config/dotd/env"

# Extra variables for include pattern expansion
# [env]
# THEME_DIR = "~/.config/sway/themes"
`

// DefaultConfig returns the default configuration template content.
func DefaultConfig() string {
	return defaultConfig
}

// Init creates a default config file at Path().
// If force is true, overwrites existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config file already exists: %s (use -f to overwrite)", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return "", err
	}

	return path, nil
}
