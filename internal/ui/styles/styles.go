// Package styles provides shared lipgloss styles for dotd output.
//
// Styles always render ANSI sequences. Callers writing to a non-terminal
// either skip styling or write through a colorprofile.Writer, which
// downsamples or strips the sequences for the destination.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette
var (
	Primary color.Color = lipgloss.Color("62")  // cyan/teal
	Success color.Color = lipgloss.Color("82")  // green
	Error   color.Color = lipgloss.Color("196") // red
	Warning color.Color = lipgloss.Color("214") // orange
	Muted   color.Color = lipgloss.Color("240") // dark gray
)

var (
	// Bold applies bold formatting
	Bold = lipgloss.NewStyle().Bold(true)

	PrimaryStyle = lipgloss.NewStyle().Foreground(Primary)
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
)

// Cell styles for the KEY/VALUE table
var (
	HeaderCell = Bold.PaddingRight(2)
	KeyCell    = PrimaryStyle.PaddingRight(2)
	ValueCell  = lipgloss.NewStyle().PaddingRight(2)
	FileCell   = MutedStyle.PaddingRight(2)
)
