// Package pathglob turns a raw include argument into concrete file paths.
//
// A pattern is first shell-expanded ($VAR, ${VAR}, ${VAR:-default} and a
// leading ~), then matched against the filesystem. Doublestar patterns (**)
// are supported. Matches come back in lexical order per directory.
package pathglob

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// Error reports the pattern or directory entry that could not be resolved.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("resolve %q: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Resolver expands and globs include patterns.
type Resolver struct {
	// Env holds KEY=VALUE pairs used for expansion. Nil means os.Environ().
	Env []string
	// Home replaces the user's home directory for ~ expansion when set.
	Home string
}

// New creates a Resolver using the process environment.
func New() *Resolver {
	return &Resolver{}
}

// WithEnv returns a copy of r whose environment is the current one overlaid
// with vars.
func (r *Resolver) WithEnv(vars map[string]string) *Resolver {
	base := r.environ()
	env := make([]string, 0, len(base)+len(vars))
	env = append(env, base...)
	for k, v := range vars {
		env = append(env, k+"="+v)
	}
	return &Resolver{Env: env, Home: r.Home}
}

func (r *Resolver) environ() []string {
	if r.Env != nil {
		return r.Env
	}
	return os.Environ()
}

// Resolve expands pattern and returns the matching paths.
// Matches without a file name component (like "/") are dropped.
func (r *Resolver) Resolve(pattern string) ([]string, error) {
	expanded, err := r.Expand(pattern)
	if err != nil {
		return nil, &Error{Path: pattern, Err: err}
	}

	matches, err := r.Glob(expanded)
	if err != nil {
		var pe *fs.PathError
		if errors.As(err, &pe) {
			return nil, &Error{Path: entryPath(expanded, pe.Path), Err: err}
		}
		return nil, &Error{Path: pattern, Err: err}
	}

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := FileName(m); ok {
			paths = append(paths, m)
		}
	}
	return paths, nil
}

// Expand performs shell-style expansion on pattern. Unset variables and
// command substitutions are errors.
func (r *Resolver) Expand(pattern string) (string, error) {
	s, err := r.expandTilde(pattern)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", nil
	}

	word, err := syntax.NewParser().Document(strings.NewReader(s))
	if err != nil {
		return "", fmt.Errorf("parse: %w", err)
	}

	cfg := &expand.Config{
		Env:     expand.ListEnviron(r.environ()...),
		NoUnset: true,
	}
	return expand.Document(cfg, word)
}

// Glob matches an already expanded pattern against the filesystem.
// Directories are never returned.
func (r *Resolver) Glob(expanded string) ([]string, error) {
	return doublestar.FilepathGlob(expanded, doublestar.WithFailOnIOErrors(), doublestar.WithFilesOnly())
}

// expandTilde expands a leading ~ or ~/ to the home directory
func (r *Resolver) expandTilde(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home := r.Home
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// FileName returns the final path element, or false if the path has none.
func FileName(path string) (string, bool) {
	name := filepath.Base(path)
	switch name {
	case string(filepath.Separator), ".", "..":
		return "", false
	}
	return name, true
}

// entryPath rebuilds the full path of a directory entry reported relative to
// the glob base.
func entryPath(expanded, rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	base, _ := doublestar.SplitPattern(filepath.ToSlash(filepath.Clean(expanded)))
	return filepath.Join(filepath.FromSlash(base), filepath.FromSlash(rel))
}
