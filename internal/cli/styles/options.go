package styles

import (
	"fmt"
	"strings"
)

// OptionView is one user-facing option and its choices.
type OptionView struct {
	Name    string
	Value   string
	Choices []string
}

// OptionsRenderer renders the option catalogue.
type OptionsRenderer struct {
	theme *Theme
}

func NewOptionsRenderer(theme *Theme) *OptionsRenderer {
	return &OptionsRenderer{theme: theme}
}

func (r *OptionsRenderer) Render(options []OptionView) string {
	blocks := make([]string, 0, len(options))
	for _, o := range options {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("%s %s\n", r.theme.Title.Render(o.Name), r.theme.AccentBadge(o.Value)))
		for _, c := range o.Choices {
			if c == o.Value {
				sb.WriteString(fmt.Sprintf("  %s %s\n", r.theme.Highlight.Render(IconCursor), r.theme.Highlight.Render(c)))
				continue
			}
			sb.WriteString(fmt.Sprintf("    %s\n", r.theme.Subtle.Render(c)))
		}
		blocks = append(blocks, strings.TrimRight(sb.String(), "\n"))
	}
	return r.theme.Box.Render(strings.Join(blocks, "\n\n"))
}
