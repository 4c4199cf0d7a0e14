package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/charmbracelet/colorprofile"
	"github.com/sahilm/fuzzy"

	"github.com/raphi011/dotd/internal/directive"
	"github.com/raphi011/dotd/internal/resolve"
	"github.com/raphi011/dotd/internal/ui/styles"
)

// printError writes err to w. Colour is downsampled to what w supports and
// dropped entirely when w is not a terminal.
func printError(w io.Writer, err error) {
	cw := colorprofile.NewWriter(w, os.Environ())

	fmt.Fprintln(cw, styles.ErrorStyle.Render("error:")+" "+err.Error())
	if hint := hintFor(err); hint != "" {
		fmt.Fprintln(cw, styles.MutedStyle.Render(hint))
	}
}

// hintFor returns a follow-up line for errors a user can act on.
func hintFor(err error) string {
	var ude *resolve.UnknownDirectiveError
	if errors.As(err, &ude) {
		kw := ude.Keyword()
		if slices.Contains(directive.Keywords, kw) {
			return fmt.Sprintf("%q needs a value on the same line", kw)
		}
		if s := suggestKeyword(kw); s != "" {
			return fmt.Sprintf("did you mean %q?", s)
		}
		return "known directives: include, include_one, font, active"
	}
	if errors.Is(err, errNoFiles) {
		return "run 'dotd config init' to set default files"
	}
	if errors.Is(err, resolve.ErrDepthExceeded) {
		return "raise --max-depth or set max_depth = 0 for unlimited nesting"
	}
	return ""
}

// suggestKeyword returns the best fuzzy match for word among the directive
// keywords, or "" if none matches.
func suggestKeyword(word string) string {
	if word == "" {
		return ""
	}
	matches := fuzzy.Find(word, directive.Keywords)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
