package port

// Interop is the primary API's extension for rendering into surfaces owned
// by the secondary graphics API.
type Interop interface {
	// Available reports whether the share extension is present.
	Available() bool
	OpenDevice(secondaryDevice Handle) (Handle, error)
	CloseDevice(device Handle) error
	SetShareHandle(surface, share Handle) error
	// RegisterSurface makes a secondary surface usable as a primary render
	// target and returns the registration.
	RegisterSurface(device, surface Handle) (Handle, error)
	UnregisterSurface(device, registration Handle) error
	LockObjects(device Handle, registrations []Handle) error
	UnlockObjects(device Handle, registrations []Handle) error
	// BindTarget attaches a registration as the current color target.
	BindTarget(registration Handle) error
	UnbindTarget(registration Handle) error
}
