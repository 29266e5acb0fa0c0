package entity

// ActivationState tracks the secondary fullscreen surface handover.
type ActivationState int

const (
	ActivationInactive ActivationState = iota
	// ActivationStep1 means the primary window has left fullscreen and is
	// hidden; the next activate call performs step 2.
	ActivationStep1
	ActivationActive
	ActivationDeactivating
)

func (s ActivationState) String() string {
	switch s {
	case ActivationStep1:
		return "activating-step-1"
	case ActivationActive:
		return "active"
	case ActivationDeactivating:
		return "deactivating"
	default:
		return "inactive"
	}
}
