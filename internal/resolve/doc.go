// Package resolve reads a tree of include-style config files into one Config.
//
// Each file is read line by line. Every line is parsed into a directive
// (see package directive) and executed against a single Config shared by the
// whole run:
//
//   - include <pattern>: every match is read, in glob order
//   - include_one <p1> <p2> ...: for each file name, only the first match
//     across the patterns is read
//   - font <value>, active <bool>: last write wins
//
// # Termination
//
// Before a file is opened its path is canonicalized (absolute, symlinks
// resolved). A canonical path already recorded in the Config is skipped
// silently. This is what breaks include cycles and keeps a file reached
// through several routes from being applied twice.
//
// # Errors
//
// The first error aborts the whole run and the partial Config is discarded.
// Errors are typed and match sentinels through errors.Is:
//
//   - [ErrPathNotFound]: canonicalization, expansion or glob failure
//   - [ErrFileOpen]: a file could not be opened or read
//   - [ErrUnknownDirective]: a line matched no directive keyword
//   - [ErrFileFormat]: a known directive carried a malformed value
//   - [ErrDepthExceeded]: nesting went past Engine.MaxDepth
package resolve
