package entity

// Tristate is a probe answer that may not be known yet.
type Tristate int

const (
	Unknown Tristate = iota
	No
	Yes
)

func (t Tristate) String() string {
	switch t {
	case No:
		return "no"
	case Yes:
		return "yes"
	default:
		return "unknown"
	}
}

// IsYes reports a definite positive answer. Unknown counts as not available.
func (t Tristate) IsYes() bool { return t == Yes }

// TristateOf converts a definite boolean answer.
func TristateOf(v bool) Tristate {
	if v {
		return Yes
	}
	return No
}

// SecondaryAPIInfo is what the secondary graphics API reports about the
// adapters present and their stereo support.
type SecondaryAPIInfo struct {
	APIName       string
	AdapterName   string
	HasNvAdapter  bool
	HasAmdAdapter bool
	// HasNvStereoSupport is set when the NVIDIA stereo driver path is usable.
	HasNvStereoSupport bool
	// HasAqbsSupport is set when the AMD quad-buffer stereo path is usable.
	HasAqbsSupport bool
	// HasShareExtension is set when surfaces can be imported into GL.
	HasShareExtension bool
}

// HasStereo reports whether any vendor stereo path is usable.
func (i *SecondaryAPIInfo) HasStereo() bool {
	return i != nil && (i.HasNvStereoSupport || i.HasAqbsSupport)
}

// CapabilityProbeResult is the process-wide answer of the capability probe.
// It is never mutated after the probe completes.
type CapabilityProbeResult struct {
	QuadBufferGL Tristate
	// SecondaryAPI is nil when the secondary API is absent or not probed yet.
	SecondaryAPI *SecondaryAPIInfo
	// Complete is set once both probes have finished.
	Complete bool
}

// SecondaryStereo reports whether the secondary API supports stereo.
func (c CapabilityProbeResult) SecondaryStereo() bool {
	return c.SecondaryAPI.HasStereo()
}
