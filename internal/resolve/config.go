package resolve

import (
	"maps"
	"slices"
)

// Default values for a fresh Config.
const (
	DefaultActive = true
	DefaultFont   = "ASCII"
)

// Config is the merged result of a resolution run.
type Config struct {
	Active bool
	Font   string

	// canonical paths of every file read so far
	seen map[string]struct{}
}

// Default returns a Config with default settings and no files read.
func Default() *Config {
	return &Config{
		Active: DefaultActive,
		Font:   DefaultFont,
		seen:   make(map[string]struct{}),
	}
}

// Seen reports whether the canonical path has already been read.
func (c *Config) Seen(canonical string) bool {
	_, ok := c.seen[canonical]
	return ok
}

// SeenConfigs returns the canonical paths of every file read, sorted.
func (c *Config) SeenConfigs() []string {
	return slices.Sorted(maps.Keys(c.seen))
}

// markSeen records a canonical path. Returns false if it was already present.
func (c *Config) markSeen(canonical string) bool {
	if c.seen == nil {
		c.seen = make(map[string]struct{})
	}
	if _, ok := c.seen[canonical]; ok {
		return false
	}
	c.seen[canonical] = struct{}{}
	return true
}

// Result is the serializable view of a Config.
type Result struct {
	Active bool     `json:"active" toml:"active" yaml:"active"`
	Font   string   `json:"font" toml:"font" yaml:"font"`
	Files  []string `json:"files" toml:"files" yaml:"files"`
}

// Result returns the serializable view of c.
func (c *Config) Result() Result {
	files := c.SeenConfigs()
	if files == nil {
		files = []string{}
	}
	return Result{
		Active: c.Active,
		Font:   c.Font,
		Files:  files,
	}
}
