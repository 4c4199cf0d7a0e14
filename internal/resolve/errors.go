package resolve

import (
	"errors"
	"fmt"

	"github.com/raphi011/dotd/internal/directive"
)

var (
	ErrFileOpen      = errors.New("cannot open config file")
	ErrPathNotFound  = errors.New("path not found")
	ErrFileFormat    = errors.New("incorrect file format")
	ErrDepthExceeded = errors.New("include depth exceeded")

	ErrUnknownDirective = directive.ErrUnknownDirective
)

// UnknownDirectiveError carries the raw line that matched no directive.
type UnknownDirectiveError = directive.UnknownDirectiveError

// FileOpenError reports a resolved path that could not be opened or read.
type FileOpenError struct {
	FileName string
	Err      error
}

func (e *FileOpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.FileName, e.Err)
}

func (e *FileOpenError) Unwrap() error { return e.Err }

func (e *FileOpenError) Is(target error) bool { return target == ErrFileOpen }

// PathNotFoundError reports a path or pattern that could not be canonicalized,
// expanded or globbed.
type PathNotFoundError struct {
	Path string
	Err  error
}

func (e *PathNotFoundError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("path not found: %s", e.Path)
	}
	return fmt.Sprintf("path not found: %s: %v", e.Path, e.Err)
}

func (e *PathNotFoundError) Unwrap() error { return e.Err }

func (e *PathNotFoundError) Is(target error) bool { return target == ErrPathNotFound }

// FileFormatError reports structurally malformed content, such as a directive
// value that cannot be parsed.
type FileFormatError struct {
	Incorrect string
	Err       error
}

func (e *FileFormatError) Error() string {
	return fmt.Sprintf("incorrect format: %q", e.Incorrect)
}

func (e *FileFormatError) Unwrap() error { return e.Err }

func (e *FileFormatError) Is(target error) bool { return target == ErrFileFormat }
