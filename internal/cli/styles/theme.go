// Package styles provides the lipgloss renderers used by the CLI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of base colors a Theme is derived from.
type Palette struct {
	Background     string
	Surface        string
	SurfaceVariant string
	Text           string
	Muted          string
	Accent         string
	Border         string
}

// Theme holds lipgloss colors and styles.
type Theme struct {
	Background     lipgloss.Color
	Surface        lipgloss.Color
	SurfaceVariant lipgloss.Color
	Text           lipgloss.Color
	Muted          lipgloss.Color
	Accent         lipgloss.Color
	Border         lipgloss.Color

	// Additional semantic colors
	Error   lipgloss.Color
	Warning lipgloss.Color
	Success lipgloss.Color

	// Pre-built styles
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Normal       lipgloss.Style
	Subtle       lipgloss.Style
	Highlight    lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	SuccessStyle lipgloss.Style

	Badge      lipgloss.Style
	BadgeMuted lipgloss.Style

	Box       lipgloss.Style
	BoxHeader lipgloss.Style
}

// DefaultDarkPalette returns hardcoded dark theme colors.
func DefaultDarkPalette() Palette {
	return Palette{
		Background:     "#0a0a0b",
		Surface:        "#1a1a1b",
		SurfaceVariant: "#2d2d2d",
		Text:           "#ffffff",
		Muted:          "#909090",
		Accent:         "#38bdf8",
		Border:         "#333333",
	}
}

// NewTheme creates the default dark theme.
func NewTheme() *Theme {
	return NewThemeFromPalette(DefaultDarkPalette())
}

// NewThemeFromPalette creates a Theme from a Palette.
func NewThemeFromPalette(p Palette) *Theme {
	t := &Theme{
		Background:     lipgloss.Color(p.Background),
		Surface:        lipgloss.Color(p.Surface),
		SurfaceVariant: lipgloss.Color(p.SurfaceVariant),
		Text:           lipgloss.Color(p.Text),
		Muted:          lipgloss.Color(p.Muted),
		Accent:         lipgloss.Color(p.Accent),
		Border:         lipgloss.Color(p.Border),

		Error:   lipgloss.Color("#ef4444"),
		Warning: lipgloss.Color("#f59e0b"),
		Success: lipgloss.Color("#4ade80"),
	}

	t.buildStyles()
	return t
}

// buildStyles creates all derived lipgloss styles.
func (t *Theme) buildStyles() {
	t.Title = lipgloss.NewStyle().
		Foreground(t.Text).
		Bold(true)

	t.Subtitle = lipgloss.NewStyle().
		Foreground(t.Muted).
		Bold(true)

	t.Normal = lipgloss.NewStyle().
		Foreground(t.Text)

	t.Subtle = lipgloss.NewStyle().
		Foreground(t.Muted)

	t.Highlight = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	t.WarningStyle = lipgloss.NewStyle().
		Foreground(t.Warning)

	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	t.Badge = lipgloss.NewStyle().
		Foreground(t.Background).
		Background(t.Accent).
		Padding(0, 1)

	t.BadgeMuted = lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.SurfaceVariant).
		Padding(0, 1)

	t.Box = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(1, 2)

	t.BoxHeader = lipgloss.NewStyle().
		Foreground(t.Text).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(t.Border).
		MarginBottom(1)
}
