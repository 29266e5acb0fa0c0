package entity

// PluginID identifies the page-flip output backend in device descriptors
// and persisted settings.
const PluginID = "StOutPageFlip"

// Device identifiers exposed by the page-flip output.
const (
	DeviceIDShutters = "Shutters"
	DeviceIDVuzix    = "Vuzix"
)

// SupportLevel ranks how well a device is supported on this system.
// Used as a sort/selection key only.
type SupportLevel int

const (
	SupportNone SupportLevel = iota
	SupportAuto
	SupportPreferred
	SupportHigh
	SupportFull
)

func (s SupportLevel) String() string {
	switch s {
	case SupportNone:
		return "none"
	case SupportAuto:
		return "auto"
	case SupportPreferred:
		return "preferred"
	case SupportHigh:
		return "high"
	case SupportFull:
		return "full"
	default:
		return "unknown"
	}
}

// OutputDevice describes one logical stereo output device.
// Values are immutable; the registry rebuilds the set on every enumeration.
type OutputDevice struct {
	PluginID    string
	DeviceID    string
	Name        string
	Description string
	Support     SupportLevel
}
