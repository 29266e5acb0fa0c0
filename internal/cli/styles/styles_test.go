package styles_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/pageflip/internal/cli/styles"
	"github.com/bnema/pageflip/internal/domain/build"
	"github.com/bnema/pageflip/internal/domain/entity"
)

func TestConfigRenderer_RenderConfigInfo(t *testing.T) {
	r := styles.NewConfigRenderer(styles.NewTheme())

	out := r.RenderConfigInfo("/tmp/pageflip/config.toml", true)
	assert.Contains(t, out, "config.toml")
	assert.Contains(t, out, "created with defaults")

	out = r.RenderConfigInfo("/tmp/pageflip/config.toml", false)
	assert.NotContains(t, out, "created with defaults")
}

func TestConfigRenderer_RenderCheck(t *testing.T) {
	r := styles.NewConfigRenderer(styles.NewTheme())

	out := r.RenderCheck("/tmp/pageflip/config.toml", nil)
	assert.Contains(t, out, "Config is valid")

	out = r.RenderCheck("/tmp/pageflip/config.toml", errors.New("config validation failed:\n  - window.width must be at least 64"))
	assert.Contains(t, out, "Config is invalid")
	assert.Contains(t, out, "window.width must be at least 64")
}

func TestDevicesRenderer_Render(t *testing.T) {
	r := styles.NewDevicesRenderer(styles.NewTheme())

	out := r.Render([]entity.OutputDevice{
		{PluginID: entity.PluginID, DeviceID: entity.DeviceIDShutters, Name: "Shutter glasses", Support: entity.SupportFull},
		{PluginID: entity.PluginID, DeviceID: entity.DeviceIDVuzix, Name: "Vuzix HMD", Support: entity.SupportNone},
	}, entity.DeviceIDShutters)

	assert.Contains(t, out, "Shutters")
	assert.Contains(t, out, "Shutter glasses")
	assert.Contains(t, out, "full")
	assert.Contains(t, out, "none")
	assert.Contains(t, out, styles.IconCursor)
}

func TestDevicesRenderer_Empty(t *testing.T) {
	r := styles.NewDevicesRenderer(styles.NewTheme())
	assert.Contains(t, r.Render(nil, ""), "No output devices")
}

func TestProbeRenderer_Render(t *testing.T) {
	r := styles.NewProbeRenderer(styles.NewTheme())

	out := r.Render(styles.ProbeReport{
		Result: entity.CapabilityProbeResult{
			QuadBufferGL: entity.No,
			SecondaryAPI: &entity.SecondaryAPIInfo{
				APIName:        "Vulkan",
				AdapterName:    "Radeon Pro W7600",
				HasAmdAdapter:  true,
				HasAqbsSupport: true,
			},
			Complete: true,
		},
		Elapsed:        42 * time.Millisecond,
		DefaultMode:    entity.QuadBufferHardwareSecondary,
		SecondaryLabel: "Vulkan AMD (Fullscreen)",
		Monitors:       entity.Monitors{{ID: 0, Name: "DP-1", Rect: entity.Rect{W: 2560, H: 1440}, FreqMax: 144}},
	})

	assert.Contains(t, out, "Stereo available")
	assert.Contains(t, out, "Radeon Pro W7600")
	assert.Contains(t, out, "secondary")
	assert.Contains(t, out, "Vulkan AMD (Fullscreen)")
	assert.Contains(t, out, "144 Hz")
}

func TestProbeRenderer_IncompleteProbe(t *testing.T) {
	r := styles.NewProbeRenderer(styles.NewTheme())

	out := r.Render(styles.ProbeReport{})
	assert.Contains(t, out, "Incomplete")
	assert.Contains(t, out, "unknown")
	assert.Contains(t, out, "No monitors reported")
}

func TestOptionsRenderer_Render(t *testing.T) {
	r := styles.NewOptionsRenderer(styles.NewTheme())

	out := r.Render([]styles.OptionView{
		{Name: "Quad Buffer type", Value: "OpenGL", Choices: []string{"OpenGL", "Vulkan (Unavailable)"}},
		{Name: "Show Extra Options", Value: "off", Choices: []string{"off", "on"}},
	})
	assert.Contains(t, out, "Quad Buffer type")
	assert.Contains(t, out, "Vulkan (Unavailable)")
	assert.Contains(t, out, "Show Extra Options")
}

func TestAboutRenderer_Render(t *testing.T) {
	r := styles.NewAboutRenderer(styles.NewTheme())

	out := r.Render(build.Info{Version: "v1.2.3", Commit: "abc123", BuildDate: "2026-01-01", GoVersion: "go1.25"})
	assert.Contains(t, out, "v1.2.3")
	assert.Contains(t, out, "abc123")
	assert.Contains(t, out, build.RepoURL())
}
