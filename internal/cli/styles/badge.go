package styles

import (
	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/charmbracelet/lipgloss"
)

// AccentBadge renders a badge with accent color.
func (t *Theme) AccentBadge(text string) string {
	return t.Badge.Render(text)
}

// MutedBadge renders a badge with muted colors.
func (t *Theme) MutedBadge(text string) string {
	return t.BadgeMuted.Render(text)
}

// StatusBadge renders a status badge with custom colors.
func (t *Theme) StatusBadge(text string, fg, bg lipgloss.Color) string {
	style := lipgloss.NewStyle().
		Foreground(fg).
		Background(bg).
		Padding(0, 1)
	return style.Render(text)
}

// SupportBadge colors a device support level.
func (t *Theme) SupportBadge(level entity.SupportLevel) string {
	switch level {
	case entity.SupportFull, entity.SupportPreferred:
		return t.StatusBadge(level.String(), t.Background, t.Success)
	case entity.SupportHigh:
		return t.StatusBadge(level.String(), t.Background, t.Accent)
	case entity.SupportNone:
		return t.MutedBadge(level.String())
	default:
		return t.StatusBadge(level.String(), t.Background, t.Warning)
	}
}

// TristateBadge renders a probe answer.
func (t *Theme) TristateBadge(v entity.Tristate) string {
	switch v {
	case entity.Yes:
		return t.StatusBadge("yes", t.Background, t.Success)
	case entity.No:
		return t.MutedBadge("no")
	default:
		return t.StatusBadge("unknown", t.Background, t.Warning)
	}
}
