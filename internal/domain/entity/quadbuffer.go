package entity

import (
	"fmt"
	"strings"
)

// QuadBufferMode selects the low-level stereo delivery path.
type QuadBufferMode int

const (
	// QuadBufferSoftware alternates left/right frames with one swap each.
	QuadBufferSoftware QuadBufferMode = iota
	// QuadBufferHardwareGL uses the GL back-left/back-right buffer pair.
	QuadBufferHardwareGL
	// QuadBufferHardwareSecondary renders through a second graphics API's
	// exclusive fullscreen stereo surface.
	QuadBufferHardwareSecondary
	// QuadBufferEmulated is the alternating path with vsync forced on.
	QuadBufferEmulated
)

var quadBufferNames = map[QuadBufferMode]string{
	QuadBufferSoftware:          "software",
	QuadBufferHardwareGL:        "opengl",
	QuadBufferHardwareSecondary: "secondary",
	QuadBufferEmulated:          "emulated",
}

func (m QuadBufferMode) String() string {
	if name, ok := quadBufferNames[m]; ok {
		return name
	}
	return fmt.Sprintf("QuadBufferMode(%d)", int(m))
}

// Valid reports whether m is one of the known modes.
func (m QuadBufferMode) Valid() bool {
	_, ok := quadBufferNames[m]
	return ok
}

// Alternating reports whether the mode renders one eye per swap.
func (m QuadBufferMode) Alternating() bool {
	return m == QuadBufferSoftware || m == QuadBufferEmulated
}

// ParseQuadBufferMode parses the names produced by String.
func ParseQuadBufferMode(s string) (QuadBufferMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for mode, name := range quadBufferNames {
		if name == s {
			return mode, nil
		}
	}
	return QuadBufferHardwareGL, fmt.Errorf("unknown quad buffer mode %q", s)
}

// QuadBufferModeNames lists the accepted names in mode order.
func QuadBufferModeNames() []string {
	return []string{
		QuadBufferSoftware.String(),
		QuadBufferHardwareGL.String(),
		QuadBufferHardwareSecondary.String(),
		QuadBufferEmulated.String(),
	}
}
