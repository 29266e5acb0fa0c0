package styles

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/pageflip/internal/domain/entity"
)

// ProbeRenderer renders the capability probe report.
type ProbeRenderer struct {
	theme *Theme
}

func NewProbeRenderer(theme *Theme) *ProbeRenderer {
	return &ProbeRenderer{theme: theme}
}

// ProbeReport is everything `pageflip probe` prints.
type ProbeReport struct {
	Result         entity.CapabilityProbeResult
	Elapsed        time.Duration
	DefaultMode    entity.QuadBufferMode
	SecondaryLabel string
	HMDPresent     bool
	Monitors       entity.Monitors
}

func (r *ProbeRenderer) Render(report ProbeReport) string {
	header := r.renderHeader(report)
	sections := []string{
		r.renderCapabilities(report),
		r.renderMonitors(report.Monitors),
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, "", strings.Join(sections, "\n\n"))
}

func (r *ProbeRenderer) renderHeader(report ProbeReport) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	statusStyle := r.theme.SuccessStyle
	statusText := "Stereo available"
	switch {
	case !report.Result.Complete:
		statusStyle = r.theme.WarningStyle
		statusText = "Incomplete"
	case !report.Result.QuadBufferGL.IsYes() && !report.Result.SecondaryStereo():
		statusStyle = r.theme.WarningStyle
		statusText = "Alternating only"
	}

	title := fmt.Sprintf("%s %s", iconStyle.Render(IconWrench), r.theme.Title.Render("Capability probe"))
	badge := r.theme.BadgeMuted.Render(statusStyle.Render(statusText))
	elapsed := r.theme.Subtle.Render(fmt.Sprintf("%s %s", IconClock, report.Elapsed.Round(time.Millisecond)))
	return lipgloss.JoinHorizontal(lipgloss.Center, title, " ", badge, " ", elapsed)
}

func (r *ProbeRenderer) renderCapabilities(report ProbeReport) string {
	info := report.Result.SecondaryAPI
	lines := []string{
		r.renderCheck("OpenGL quad buffer", report.Result.QuadBufferGL, ""),
	}

	if info == nil {
		lines = append(lines, r.renderCheck("Secondary API", r.absentOrUnknown(report), ""))
	} else {
		lines = append(lines,
			r.renderCheck(info.APIName, entity.Yes, info.AdapterName),
			r.renderCheck("  NVIDIA stereo", entity.TristateOf(info.HasNvStereoSupport), adapterNote(info.HasNvAdapter)),
			r.renderCheck("  AMD quad-buffer stereo", entity.TristateOf(info.HasAqbsSupport), adapterNote(info.HasAmdAdapter)),
			r.renderCheck("  Surface sharing", entity.TristateOf(info.HasShareExtension), ""),
		)
	}
	lines = append(lines,
		r.renderCheck("HMD", entity.TristateOf(report.HMDPresent), ""),
		"",
		fmt.Sprintf("%s %s", r.theme.Subtle.Render("Default mode"), r.theme.Highlight.Render(report.DefaultMode.String())),
		fmt.Sprintf("%s %s", r.theme.Subtle.Render("Secondary choice"), r.theme.Normal.Render(report.SecondaryLabel)),
	)

	body := strings.Join(lines, "\n")
	return r.theme.Box.Render(r.theme.BoxHeader.Render(fmt.Sprintf("%s Stereo paths", r.theme.Highlight.Render(IconEye))) + "\n" + body)
}

func (r *ProbeRenderer) absentOrUnknown(report ProbeReport) entity.Tristate {
	if report.Result.Complete {
		return entity.No
	}
	return entity.Unknown
}

func adapterNote(present bool) string {
	if present {
		return "adapter present"
	}
	return ""
}

func (r *ProbeRenderer) renderCheck(name string, v entity.Tristate, note string) string {
	icon := IconCheck
	style := r.theme.SuccessStyle
	switch v {
	case entity.No:
		icon = IconX
		style = r.theme.Subtle
	case entity.Unknown:
		icon = IconWarning
		style = r.theme.WarningStyle
	}
	line := fmt.Sprintf("%s %s %s", style.Render(icon), r.theme.Normal.Render(name), r.theme.TristateBadge(v))
	if note != "" {
		line += " " + r.theme.Subtle.Render(note)
	}
	return line
}

func (r *ProbeRenderer) renderMonitors(monitors entity.Monitors) string {
	if len(monitors) == 0 {
		return r.theme.Box.Render(r.theme.WarningStyle.Render("No monitors reported"))
	}
	lines := make([]string, 0, len(monitors))
	for _, m := range monitors {
		lines = append(lines, fmt.Sprintf(
			"%s %s %s %s",
			r.theme.Highlight.Render(fmt.Sprintf("#%d", m.ID)),
			r.theme.Normal.Render(m.Name),
			r.theme.Subtle.Render(m.Rect.String()),
			r.theme.MutedBadge(fmt.Sprintf("%d Hz", m.FreqMax)),
		))
	}
	return r.theme.Box.Render(r.theme.BoxHeader.Render(fmt.Sprintf("%s Monitors", r.theme.Highlight.Render(IconDesktop))) + "\n" + strings.Join(lines, "\n"))
}
