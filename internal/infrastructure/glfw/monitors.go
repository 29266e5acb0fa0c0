package glfw

import (
	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// describeMonitors converts GLFW monitors in enumeration order; the index
// becomes the monitor ID. GLFW exposes no EDID, so the connector name
// stands in for the PnP id.
func describeMonitors(mons []*glfw.Monitor) entity.Monitors {
	out := make(entity.Monitors, 0, len(mons))
	for i, mon := range mons {
		x, y := mon.GetPos()
		mode := mon.GetVideoMode()
		if mode == nil {
			continue
		}
		freq := mode.RefreshRate
		for _, vm := range mon.GetVideoModes() {
			if vm.RefreshRate > freq {
				freq = vm.RefreshRate
			}
		}
		out = append(out, entity.Monitor{
			ID:      i,
			Name:    mon.GetName(),
			PnPID:   mon.GetName(),
			Rect:    entity.Rect{X: x, Y: y, W: mode.Width, H: mode.Height},
			FreqMax: freq,
		})
	}
	return out
}

// Monitors lists the connected monitors without creating a window. It must
// be called from the main goroutine.
func Monitors() (entity.Monitors, error) {
	if err := Init(); err != nil {
		return nil, err
	}
	return describeMonitors(glfw.GetMonitors()), nil
}
