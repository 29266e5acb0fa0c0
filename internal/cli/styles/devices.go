package styles

import (
	"fmt"
	"strings"

	"github.com/bnema/pageflip/internal/domain/entity"
)

// DevicesRenderer renders the output device list.
type DevicesRenderer struct {
	theme *Theme
}

func NewDevicesRenderer(theme *Theme) *DevicesRenderer {
	return &DevicesRenderer{theme: theme}
}

// Render lists devices in registry order and marks the active one.
func (r *DevicesRenderer) Render(devices []entity.OutputDevice, activeID string) string {
	if len(devices) == 0 {
		return r.theme.Subtle.Render("No output devices.")
	}

	width := 0
	for _, d := range devices {
		width = max(width, len(d.DeviceID))
	}

	lines := make([]string, 0, len(devices))
	for _, d := range devices {
		marker := "  "
		id := r.theme.Normal.Render(fmt.Sprintf("%-*s", width, d.DeviceID))
		if d.DeviceID == activeID {
			marker = r.theme.Highlight.Render(IconCursor) + " "
			id = r.theme.Highlight.Render(fmt.Sprintf("%-*s", width, d.DeviceID))
		}
		lines = append(lines, fmt.Sprintf("%s%s  %s  %s",
			marker,
			id,
			r.theme.SupportBadge(d.Support),
			r.theme.Subtle.Render(d.Name),
		))
	}

	header := r.theme.BoxHeader.Render(fmt.Sprintf("%s %s", r.theme.Highlight.Render(IconEye), entity.PluginID))
	return r.theme.Box.Render(header + "\n" + strings.Join(lines, "\n"))
}
