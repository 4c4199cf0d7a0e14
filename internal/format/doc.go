// Package format renders a resolved config for output.
//
// # Formats
//
//   - text: a KEY/VALUE table. When styled (stdout is a terminal) it is
//     rendered with lipgloss; otherwise as tab-separated lines that are easy
//     to grep or cut.
//   - json: indented JSON
//   - toml: TOML document
//   - yaml: YAML document
//
// Every format carries the same three fields: active, font and files (the
// canonical paths that were read, sorted).
//
// The font value is printed verbatim in text output, including any quotes
// it carries in the source file.
package format
