package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LocalConfigFileName is the per-directory override file
const LocalConfigFileName = ".dotd.toml"

// LocalConfig holds per-directory overrides from .dotd.toml.
// Pointer fields and zero-value strings indicate "not set" (inherit from global).
type LocalConfig struct {
	Files    []string          `toml:"files"` // appended to global
	Format   string            `toml:"format"`
	MaxDepth *int              `toml:"max_depth"`
	Env      map[string]string `toml:"env"` // merged by name into global
}

// LoadLocal reads a .dotd.toml from dir.
// Returns nil (no error) if the file doesn't exist.
// Relative entries in files are resolved against dir.
func LoadLocal(dir string) (*LocalConfig, error) {
	configFile := filepath.Join(dir, LocalConfigFileName)

	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read local config %s: %w", configFile, err)
	}

	var local LocalConfig
	if err := toml.Unmarshal(data, &local); err != nil {
		return nil, fmt.Errorf("failed to parse local config %s: %w", configFile, err)
	}

	if err := validateEnum(local.Format, "format", ValidFormats); err != nil {
		return nil, fmt.Errorf("%w in %s", err, configFile)
	}
	if local.MaxDepth != nil && *local.MaxDepth < 0 {
		return nil, fmt.Errorf("invalid max_depth %d in %s: must be >= 0", *local.MaxDepth, configFile)
	}

	for i, f := range local.Files {
		expanded, err := expandPath(f)
		if err != nil {
			return nil, fmt.Errorf("expand files[%d] in %s: %w", i, configFile, err)
		}
		if !filepath.IsAbs(expanded) {
			expanded = filepath.Join(dir, expanded)
		}
		local.Files[i] = expanded
	}

	return &local, nil
}

// defaultLocalConfig is the template for dotd config init --local
const defaultLocalConfig = `# dotd local config (per-directory overrides)
# Settings here override the global config when dotd runs in this directory.

# Files appended to the global files list (relative to this directory)
# files = ["config"]

# format = "json"
# max_depth = 8

# [env]
# CONF_DIR = "./config.d"
`

// DefaultLocalConfig returns the default local configuration template content.
func DefaultLocalConfig() string {
	return defaultLocalConfig
}

// ForDir returns the effective config for dir: global merged with any
// .dotd.toml found there.
func ForDir(global *Config, dir string) (*Config, error) {
	local, err := LoadLocal(dir)
	if err != nil {
		return nil, err
	}
	return MergeLocal(global, local), nil
}
