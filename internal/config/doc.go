// Package config handles loading and validation of dotd tool settings.
//
// These are the settings of the dotd command itself, not the include-style
// files it resolves (see package resolve).
//
// # Configuration Sources (highest priority first)
//
//   - Command line flags
//   - DOTD_FORMAT, DOTD_MAX_DEPTH env vars
//   - .dotd.toml in the working directory
//   - $XDG_CONFIG_HOME/dotd/config.toml or ~/.config/dotd/config.toml
//   - Default values
//
// # Key Settings
//
//   - files: top-level files resolved when none are given (absolute or ~/...)
//   - format: output format, "text", "json", "toml" or "yaml" (default: "text")
//   - max_depth: include nesting limit, 0 for unlimited (default: 0)
//   - env_file: dotenv file whose variables are visible to include patterns
//   - [env]: extra variables visible to include patterns
//
// # Local Overrides
//
// A .dotd.toml in the working directory appends to files, merges [env] by
// name and replaces format and max_depth when set. Relative files entries
// are resolved against the directory holding .dotd.toml.
package config
