package cli

import (
	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/bnema/pageflip/internal/stereo"
)

type clearer interface {
	Clear(r, g, b float32)
}

// Color is an RGB triple.
type Color struct{ R, G, B float32 }

var (
	monoColor  = Color{0.25, 0.25, 0.25}
	leftColor  = Color{0.10, 0.30, 0.90}
	rightColor = Color{0.90, 0.20, 0.10}
)

// SceneColor is the demo colour for a view: grey in mono, blue for the
// left eye and red for the right eye in stereo.
func SceneColor(stereoOn bool, view entity.View) Color {
	switch {
	case !stereoOn:
		return monoColor
	case view == entity.ViewRight:
		return rightColor
	default:
		return leftColor
	}
}

// DemoScene clears each view to its SceneColor. Shutter glasses show the
// right eye red and the left eye blue when flipping works.
func DemoScene(win *Window) stereo.RedrawFunc {
	c, ok := win.GL.(clearer)
	if !ok {
		return func(entity.View) {}
	}
	return func(view entity.View) {
		col := SceneColor(win.Window.IsStereoOutput(), view)
		c.Clear(col.R, col.G, col.B)
	}
}
