package cli

import (
	"github.com/bnema/pageflip/internal/stereo"
)

// keyNotifier is implemented by windows that forward letter keys.
type keyNotifier interface {
	OnKey(fn func(key rune))
}

// OnKey registers fn for letter keys when the window forwards them.
func (w *Window) OnKey(fn func(key rune)) bool {
	n, ok := w.Window.(keyNotifier)
	if ok {
		n.OnKey(fn)
	}
	return ok
}

// HandleKey applies the run-loop key bindings to out:
//
//	Q  next quad buffer type
//	E  toggle extra options
//	D  next output device
//
// It reports whether the key was bound.
func HandleKey(out *stereo.Output, key rune) bool {
	switch key {
	case 'Q':
		choices := out.Options().QuadBuffer.Choices()
		if len(choices) == 0 {
			return true
		}
		current := out.QuadBufferMode()
		next := choices[0].Value
		for i, c := range choices {
			if c.Value == current {
				next = choices[(i+1)%len(choices)].Value
				break
			}
		}
		_ = out.SetQuadBufferMode(next)
	case 'E':
		opt := out.Options().ShowExtra
		opt.Set(!opt.Value())
	case 'D':
		devices := out.Devices()
		if len(devices) == 0 {
			return true
		}
		current := out.DeviceID()
		next := devices[0].DeviceID
		for i, d := range devices {
			if d.DeviceID == current {
				next = devices[(i+1)%len(devices)].DeviceID
				break
			}
		}
		out.SetDevice(next)
	default:
		return false
	}
	return true
}
