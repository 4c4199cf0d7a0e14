// Package directive parses single config lines into typed directives.
//
// # Grammar
//
//	# comment                 ignored
//	                          blank lines are ignored
//	include <glob-pattern>    include every match
//	include_one <p1> <p2> ... include the first match per file name
//	font <value>              set the font (rest of line verbatim)
//	active <bool>             set the active flag
//
// The keyword set is closed. Any other non-blank, non-comment line is an
// [UnknownDirectiveError].
package directive

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Keywords lists every recognized directive keyword.
var Keywords = []string{"include", "include_one", "font", "active"}

// Directive is one parsed instruction. The set of implementations is closed.
type Directive interface {
	directive()
}

// Include pulls in every file matching Pattern.
type Include struct {
	Pattern string
}

// IncludeOne pulls in, for each file name, only the first match found
// scanning Patterns in order.
type IncludeOne struct {
	Patterns []string
}

// Font sets the font. Value is kept verbatim, quotes included.
type Font struct {
	Value string
}

// Active sets the active flag.
type Active struct {
	Value bool
}

// NoOp is a blank or comment line.
type NoOp struct{}

func (Include) directive()    {}
func (IncludeOne) directive() {}
func (Font) directive()       {}
func (Active) directive()     {}
func (NoOp) directive()       {}

// ErrUnknownDirective matches any *UnknownDirectiveError via errors.Is.
var ErrUnknownDirective = errors.New("unknown directive")

// ErrInvalidValue matches any *InvalidValueError via errors.Is.
var ErrInvalidValue = errors.New("invalid directive value")

// UnknownDirectiveError reports a line that matched no keyword.
// Line is the raw, untrimmed line.
type UnknownDirectiveError struct {
	Line string
}

func (e *UnknownDirectiveError) Error() string {
	return fmt.Sprintf("unknown directive: %q", e.Line)
}

func (e *UnknownDirectiveError) Is(target error) bool {
	return target == ErrUnknownDirective
}

// Keyword returns the first word of the offending line.
func (e *UnknownDirectiveError) Keyword() string {
	fields := strings.Fields(e.Line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// InvalidValueError reports a known keyword with a value that could not be parsed.
type InvalidValueError struct {
	Line string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value in %q", e.Line)
}

func (e *InvalidValueError) Is(target error) bool {
	return target == ErrInvalidValue
}

// Parse classifies one raw line.
func Parse(line string) (Directive, error) {
	trimmed := strings.TrimSpace(line)

	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return NoOp{}, nil
	}
	// include_one must be checked before include
	if rest, ok := strings.CutPrefix(trimmed, "include_one "); ok {
		return IncludeOne{Patterns: strings.Fields(rest)}, nil
	}
	if rest, ok := strings.CutPrefix(trimmed, "include "); ok {
		return Include{Pattern: rest}, nil
	}
	if rest, ok := strings.CutPrefix(trimmed, "font "); ok {
		return Font{Value: rest}, nil
	}
	if rest, ok := strings.CutPrefix(trimmed, "active "); ok {
		v, err := parseBool(strings.TrimSpace(rest))
		if err != nil {
			return nil, &InvalidValueError{Line: line}
		}
		return Active{Value: v}, nil
	}

	return nil, &UnknownDirectiveError{Line: line}
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	return strconv.ParseBool(s)
}
