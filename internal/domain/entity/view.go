package entity

// View selects the eye being rendered.
type View int

const (
	ViewLeft View = iota
	ViewRight
)

func (v View) String() string {
	if v == ViewRight {
		return "right"
	}
	return "left"
}

// DrawBuffer is the GL draw buffer target for the primary context.
type DrawBuffer int

const (
	DrawBufferBack DrawBuffer = iota
	DrawBufferBackLeft
	DrawBufferBackRight
)

func (b DrawBuffer) String() string {
	switch b {
	case DrawBufferBackLeft:
		return "back-left"
	case DrawBufferBackRight:
		return "back-right"
	default:
		return "back"
	}
}

// VSyncMode is the swap interval policy.
type VSyncMode int

const (
	VSyncOff VSyncMode = iota
	VSyncOn
	VSyncAdaptive
)

func (m VSyncMode) String() string {
	switch m {
	case VSyncOn:
		return "on"
	case VSyncAdaptive:
		return "adaptive"
	default:
		return "off"
	}
}

// OutputMode is how the device is driven for the current frame.
type OutputMode int

const (
	OutputMono OutputMode = iota
	OutputStereo
)
