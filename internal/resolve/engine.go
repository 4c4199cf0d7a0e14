package resolve

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/raphi011/dotd/internal/directive"
	"github.com/raphi011/dotd/internal/log"
	"github.com/raphi011/dotd/internal/pathglob"
)

// maxLineSize bounds a single config line.
const maxLineSize = 1 << 20

// Engine reads config files and executes their directives.
// The zero value is ready to use.
type Engine struct {
	// Paths expands and globs include patterns. Nil uses pathglob.New().
	Paths *pathglob.Resolver
	// MaxDepth limits include nesting. Top-level files are depth 1.
	// Zero means unlimited.
	MaxDepth int
	// Logger receives verbose trace output. Nil discards it.
	Logger *log.Logger
}

// New creates an Engine using the process environment.
func New() *Engine {
	return &Engine{Paths: pathglob.New()}
}

// ResolveAll reads each path in order into a fresh default Config.
func ResolveAll(paths []string) (*Config, error) {
	return New().ResolveAll(paths)
}

// ResolveAll reads each path in order into a fresh default Config.
// On error the partial Config is discarded and nil is returned.
func (e *Engine) ResolveAll(paths []string) (*Config, error) {
	cfg := Default()
	for _, p := range paths {
		if err := e.ReadConfig(p, cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// ReadConfig reads the file at path into cfg, following includes depth-first.
// A file whose canonical path cfg has already seen is skipped without error.
func (e *Engine) ReadConfig(path string, cfg *Config) error {
	return e.readConfig(path, cfg, 1)
}

// Execute applies a single directive to cfg.
func (e *Engine) Execute(d directive.Directive, cfg *Config) error {
	return e.execute(d, cfg, 0)
}

func (e *Engine) readConfig(path string, cfg *Config, depth int) error {
	l := e.logger()

	canonical, err := canonicalize(path)
	if err != nil {
		return &PathNotFoundError{Path: path, Err: err}
	}
	if cfg.Seen(canonical) {
		l.Debug("skip seen config", "path", canonical)
		return nil
	}
	if e.MaxDepth > 0 && depth > e.MaxDepth {
		return fmt.Errorf("%s: %w (max %d)", path, ErrDepthExceeded, e.MaxDepth)
	}
	cfg.markSeen(canonical)

	f, err := os.Open(path)
	if err != nil {
		return &FileOpenError{FileName: path, Err: err}
	}
	defer f.Close()

	l.Debug("read config", "path", canonical, "depth", depth)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		d, err := directive.Parse(line)
		if err != nil {
			var ive *directive.InvalidValueError
			if errors.As(err, &ive) {
				err = &FileFormatError{Incorrect: ive.Line, Err: err}
			}
			return fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}

		if err := e.execute(d, cfg, depth); err != nil {
			return fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return &FileOpenError{FileName: path, Err: err}
	}

	return nil
}

func (e *Engine) execute(d directive.Directive, cfg *Config, depth int) error {
	switch d := d.(type) {
	case directive.Include:
		matches, err := e.resolve(d.Pattern)
		if err != nil {
			return err
		}
		for _, m := range matches {
			if err := e.readConfig(m, cfg, depth+1); err != nil {
				return err
			}
		}

	case directive.IncludeOne:
		// file names taken by an earlier match of this directive
		taken := make(map[string]struct{})
		for _, pattern := range d.Patterns {
			matches, err := e.resolve(pattern)
			if err != nil {
				return err
			}
			for _, m := range matches {
				name, _ := pathglob.FileName(m)
				if _, ok := taken[name]; ok {
					e.logger().Debug("skip overridden config", "path", m)
					continue
				}
				taken[name] = struct{}{}
				if err := e.readConfig(m, cfg, depth+1); err != nil {
					return err
				}
			}
		}

	case directive.Font:
		cfg.Font = d.Value

	case directive.Active:
		cfg.Active = d.Value

	case directive.NoOp:

	default:
		return fmt.Errorf("unsupported directive %T", d)
	}

	return nil
}

// resolve maps a pattern to its matches, converting resolver failures into
// PathNotFoundError.
func (e *Engine) resolve(pattern string) ([]string, error) {
	paths := e.Paths
	if paths == nil {
		paths = pathglob.New()
	}

	matches, err := paths.Resolve(pattern)
	if err != nil {
		var pe *pathglob.Error
		if errors.As(err, &pe) {
			return nil, &PathNotFoundError{Path: pe.Path, Err: pe.Err}
		}
		return nil, &PathNotFoundError{Path: pattern, Err: err}
	}
	return matches, nil
}

func (e *Engine) logger() *log.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return log.Discard()
}

// canonicalize returns the absolute, symlink-free form of path.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
