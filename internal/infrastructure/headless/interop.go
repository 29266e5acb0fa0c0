package headless

import (
	"fmt"

	"github.com/bnema/pageflip/internal/application/port"
)

// Interop is a simulated share extension.
type Interop struct {
	trace   *Trace
	handles *handleSource
	reject  bool
}

var _ port.Interop = (*Interop)(nil)

func (i *Interop) Available() bool { return true }

func (i *Interop) OpenDevice(secondary port.Handle) (port.Handle, error) {
	i.trace.Record("interop.open")
	return i.handles.New(), nil
}

func (i *Interop) CloseDevice(device port.Handle) error {
	i.trace.Record("interop.close")
	return nil
}

func (i *Interop) SetShareHandle(surface, share port.Handle) error {
	i.trace.Record("interop.share")
	return nil
}

func (i *Interop) RegisterSurface(device, surface port.Handle) (port.Handle, error) {
	if i.reject {
		i.trace.Record("interop.register rejected")
		return port.NullHandle, fmt.Errorf("register %d: %w", surface, errRejected)
	}
	i.trace.Record("interop.register")
	return i.handles.New(), nil
}

func (i *Interop) UnregisterSurface(device, registration port.Handle) error {
	i.trace.Record("interop.unregister")
	return nil
}

func (i *Interop) LockObjects(device port.Handle, registrations []port.Handle) error {
	i.trace.Record("interop.lock")
	return nil
}

func (i *Interop) UnlockObjects(device port.Handle, registrations []port.Handle) error {
	i.trace.Record("interop.unlock")
	return nil
}

func (i *Interop) BindTarget(registration port.Handle) error {
	i.trace.Record("interop.bind")
	return nil
}

func (i *Interop) UnbindTarget(registration port.Handle) error {
	i.trace.Record("interop.unbind")
	return nil
}
