// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color modes accepted by IsColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Status styles
	Error   lipgloss.Style
	Warning lipgloss.Style

	// Link components
	FilePath lipgloss.Style
	Location lipgloss.Style
	Kind     lipgloss.Style
	Label    lipgloss.Style
	Target   lipgloss.Style

	// Diff styles
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style
	TableDefRow    lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// ANSI palette indices.
const (
	colorRed    = "9"
	colorGreen  = "10"
	colorYellow = "11"
	colorBlue   = "12"
	colorPurple = "13"
	colorCyan   = "14"
	colorGray   = "8"
	colorLight  = "7"
)

// NewStyles returns the output styles. With color disabled every style
// renders its input unchanged.
func NewStyles(colorEnabled bool) *Styles {
	plain := lipgloss.NewStyle()
	fg := func(c string) lipgloss.Style {
		if !colorEnabled {
			return plain
		}
		return plain.Foreground(lipgloss.Color(c))
	}
	bold := plain
	underline := plain
	if colorEnabled {
		bold = plain.Bold(true)
		underline = plain.Underline(true)
	}

	return &Styles{
		Error:   fg(colorRed).Inherit(bold),
		Warning: fg(colorYellow).Inherit(bold),

		FilePath: bold,
		Location: fg(colorGray),
		Kind:     fg(colorPurple),
		Label:    fg(colorCyan),
		Target:   underline,

		DiffHeader:  bold,
		DiffHunk:    fg(colorCyan),
		DiffAdd:     fg(colorGreen),
		DiffRemove:  fg(colorRed),
		DiffContext: fg(colorGray),

		SummaryTitle: bold,
		SummaryValue: plain,
		Success:      fg(colorGreen).Inherit(bold),
		Failure:      fg(colorRed).Inherit(bold),

		TableHeader:    fg(colorLight).Inherit(bold),
		TableSeparator: fg(colorGray),
		TableDefRow:    fg(colorBlue),

		Dim:  fg(colorGray),
		Bold: bold,
	}
}

// IsColorEnabled resolves a color mode for writer. Auto enables color for
// terminals unless NO_COLOR is set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		f, ok := writer.(*os.File)
		if !ok || os.Getenv("NO_COLOR") != "" {
			return false
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
}

// IsValidColorMode reports whether mode is accepted by IsColorEnabled.
func IsValidColorMode(mode string) bool {
	switch mode {
	case "", ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}
