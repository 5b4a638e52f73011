package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorSuccess = lipgloss.Color("2") // Green
	colorError   = lipgloss.Color("1") // Red
	colorWarning = lipgloss.Color("3") // Yellow
	colorInfo    = lipgloss.Color("4") // Blue
)

// styles renders for one writer so that plain files and pipes get no escape codes
type styles struct {
	success lipgloss.Style
	err     lipgloss.Style
	warn    lipgloss.Style
	info    lipgloss.Style
	bold    lipgloss.Style
	dim     lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		success: r.NewStyle().Foreground(colorSuccess),
		err:     r.NewStyle().Foreground(colorError).Bold(true),
		warn:    r.NewStyle().Foreground(colorWarning),
		info:    r.NewStyle().Foreground(colorInfo),
		bold:    r.NewStyle().Bold(true),
		dim:     r.NewStyle().Faint(true),
	}
}
