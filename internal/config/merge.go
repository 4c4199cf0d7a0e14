package config

import "maps"

// MergeLocal merges a local per-directory config into a global config,
// returning a new Config without mutating the global.
// Returns global unchanged if local is nil.
func MergeLocal(global *Config, local *LocalConfig) *Config {
	if local == nil {
		return global
	}

	// Shallow copy global; EnvFile is global-only and inherited as-is.
	merged := *global

	// Files: append with dedup, global order first
	if len(local.Files) > 0 {
		merged.Files = appendUnique(global.Files, local.Files)
	}

	if local.Format != "" {
		merged.Format = local.Format
	}
	if local.MaxDepth != nil {
		merged.MaxDepth = *local.MaxDepth
	}

	// Env: local overrides by name
	if len(local.Env) > 0 {
		merged.Env = make(map[string]string, len(global.Env)+len(local.Env))
		maps.Copy(merged.Env, global.Env)
		maps.Copy(merged.Env, local.Env)
	}

	return &merged
}

// appendUnique appends items from extra to base, skipping duplicates.
// Returns a new slice (never mutates base).
func appendUnique(base, extra []string) []string {
	seen := make(map[string]bool, len(base))
	for _, v := range base {
		seen[v] = true
	}

	result := make([]string, len(base))
	copy(result, base)

	for _, v := range extra {
		if !seen[v] {
			result = append(result, v)
			seen[v] = true
		}
	}

	return result
}
