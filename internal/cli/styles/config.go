package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ConfigRenderer renders config status messages with styled output.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderConfigInfo renders the config file path, noting a freshly
// written default file.
func (r *ConfigRenderer) RenderConfigInfo(path string, created bool) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)

	var status string
	if created {
		status = fmt.Sprintf("\n  %s %s",
			iconStyle.Render(IconInfo),
			r.theme.WarningStyle.Render("created with defaults"),
		)
	}

	return fmt.Sprintf(
		"\n  %s Config %s%s\n",
		iconStyle.Render(IconConfig),
		r.theme.Subtle.Render(path),
		status,
	)
}

// RenderWritten confirms a file was written.
func (r *ConfigRenderer) RenderWritten(what, path string) string {
	return fmt.Sprintf(
		"\n  %s %s %s\n",
		r.theme.SuccessStyle.Render(IconCheck),
		r.theme.Normal.Render(what),
		r.theme.Subtle.Render(path),
	)
}

// RenderExists explains why nothing was written.
func (r *ConfigRenderer) RenderExists(path string) string {
	return fmt.Sprintf(
		"\n  %s %s %s\n  %s\n",
		r.theme.WarningStyle.Render(IconWarning),
		r.theme.Normal.Render("Config already exists"),
		r.theme.Subtle.Render(path),
		r.theme.Subtle.Render("use --force to overwrite it with defaults"),
	)
}

// RenderCheck reports whether the config file loaded. Validation errors
// keep their one-problem-per-line layout.
func (r *ConfigRenderer) RenderCheck(path string, err error) string {
	if err == nil {
		return fmt.Sprintf(
			"\n  %s %s %s\n",
			r.theme.SuccessStyle.Render(IconCheck),
			r.theme.Normal.Render("Config is valid"),
			r.theme.Subtle.Render(path),
		)
	}
	return fmt.Sprintf(
		"\n  %s %s %s\n\n%s\n",
		r.theme.ErrorStyle.Render(IconX),
		r.theme.Normal.Render("Config is invalid"),
		r.theme.Subtle.Render(path),
		r.theme.ErrorStyle.Render(err.Error()),
	)
}
