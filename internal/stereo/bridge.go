package stereo

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/pageflip/internal/application/port"
	"github.com/bnema/pageflip/internal/domain/entity"
)

// bridgeBinding is the registration key of the shared surface pair.
type bridgeBinding struct {
	width, height int
	surfaces      port.SurfacePair
}

// Bridge owns the cross-API session and the registrations of the two
// secondary surfaces as primary render targets. Every state change goes
// through a BufferLock obtained from Lock, which also keeps the worker
// away from the surfaces.
type Bridge struct {
	interop port.Interop

	mu sync.Mutex

	// Fields below are guarded by mu.
	device  port.Handle
	current bridgeBinding
	regL    port.Handle
	regR    port.Handle

	rejected    *bridgeBinding
	rejectedErr error
}

// NewBridge creates a bridge over the given interop extension, which may
// be nil when the primary API has none.
func NewBridge(interop port.Interop) *Bridge {
	return &Bridge{interop: interop}
}

// ShareAvailable reports whether surfaces can be shared at all.
func (b *Bridge) ShareAvailable() bool {
	return b.interop != nil && b.interop.Available()
}

// Lock acquires exclusive access to the shared surfaces. The returned
// guard must be released with Unlock, typically via defer.
func (b *Bridge) Lock() *BufferLock {
	b.mu.Lock()
	return &BufferLock{b: b}
}

// BufferLock is the proof of holding the bridge lock. Its methods fail
// with ErrNotLocked once Unlock has been called.
type BufferLock struct {
	b        *Bridge
	released bool
	boundL   bool
	boundR   bool
}

// Unlock unbinds anything still bound and releases the lock. Safe to call
// more than once.
func (l *BufferLock) Unlock() {
	if l == nil || l.released {
		return
	}
	_ = l.UnbindLeft()
	_ = l.UnbindRight()
	l.released = true
	l.b.mu.Unlock()
}

// Held reports whether the guard still holds the lock.
func (l *BufferLock) Held() bool {
	return l != nil && !l.released
}

func (l *BufferLock) check(op string) error {
	if !l.Held() {
		return precondition(op, ErrNotLocked)
	}
	return nil
}

// Open starts the cross-API session on the secondary device. Opening an
// already open bridge is a no-op.
func (l *BufferLock) Open(secondaryDevice port.Handle) error {
	if err := l.check("bridge open"); err != nil {
		return err
	}
	b := l.b
	if b.device.Valid() {
		return nil
	}
	if !b.ShareAvailable() {
		return ErrShareExtensionMissing
	}
	if !secondaryDevice.Valid() {
		return precondition("bridge open", ErrNullSurface)
	}
	dev, err := b.interop.OpenDevice(secondaryDevice)
	if err != nil {
		return fmt.Errorf("open interop device: %w", err)
	}
	if !dev.Valid() {
		return fmt.Errorf("open interop device: %w", ErrRegistrationRejected)
	}
	b.device = dev
	return nil
}

// IsOpen reports whether the cross-API session exists.
func (l *BufferLock) IsOpen() bool {
	return l.Held() && l.b.device.Valid()
}

// Resize registers the surface pair as render targets. Registering the
// same size and share handles again does nothing. On failure the previous
// registration stays in place, and the same parameters are refused without
// another driver call.
func (l *BufferLock) Resize(surfaces port.SurfacePair, width, height int) error {
	if err := l.check("bridge resize"); err != nil {
		return err
	}
	if !surfaces.Left.Valid() || !surfaces.Right.Valid() {
		return precondition("bridge resize", ErrNullSurface)
	}
	b := l.b
	if !b.device.Valid() {
		return precondition("bridge resize", errors.New("bridge is not open"))
	}

	next := bridgeBinding{width: width, height: height, surfaces: surfaces}
	if b.regL.Valid() && b.regR.Valid() && b.current == next {
		return nil
	}
	if b.rejected != nil && *b.rejected == next {
		return b.rejectedErr
	}

	regL, regR, err := b.register(surfaces)
	if err != nil {
		b.rejected = &next
		b.rejectedErr = err
		return err
	}

	l.unbindAll()
	b.unregister()
	b.regL, b.regR = regL, regR
	b.current = next
	b.rejected, b.rejectedErr = nil, nil
	return nil
}

func (b *Bridge) register(s port.SurfacePair) (port.Handle, port.Handle, error) {
	if s.LeftShare.Valid() {
		if err := b.interop.SetShareHandle(s.Left, s.LeftShare); err != nil {
			return 0, 0, fmt.Errorf("left share handle: %w: %w", ErrRegistrationRejected, err)
		}
	}
	if s.RightShare.Valid() {
		if err := b.interop.SetShareHandle(s.Right, s.RightShare); err != nil {
			return 0, 0, fmt.Errorf("right share handle: %w: %w", ErrRegistrationRejected, err)
		}
	}
	regL, err := b.interop.RegisterSurface(b.device, s.Left)
	if err == nil && !regL.Valid() {
		err = errors.New("null registration")
	}
	if err != nil {
		return 0, 0, fmt.Errorf("register left surface: %w: %w", ErrRegistrationRejected, err)
	}
	regR, err := b.interop.RegisterSurface(b.device, s.Right)
	if err == nil && !regR.Valid() {
		err = errors.New("null registration")
	}
	if err != nil {
		_ = b.interop.UnregisterSurface(b.device, regL)
		return 0, 0, fmt.Errorf("register right surface: %w: %w", ErrRegistrationRejected, err)
	}
	return regL, regR, nil
}

func (b *Bridge) unregister() {
	if b.regL.Valid() {
		_ = b.interop.UnregisterSurface(b.device, b.regL)
	}
	if b.regR.Valid() {
		_ = b.interop.UnregisterSurface(b.device, b.regR)
	}
	b.regL, b.regR = port.NullHandle, port.NullHandle
	b.current = bridgeBinding{}
}

// Size returns the registered surface size.
func (l *BufferLock) Size() (width, height int) {
	if !l.Held() {
		return 0, 0
	}
	return l.b.current.width, l.b.current.height
}

// Registered reports whether both surfaces are registered.
func (l *BufferLock) Registered() bool {
	return l.Held() && l.b.regL.Valid() && l.b.regR.Valid()
}

// BindLeft attaches the left surface as the current render target.
// A missing registration makes it a silent no-op.
func (l *BufferLock) BindLeft() error { return l.bind(entity.ViewLeft) }

// BindRight attaches the right surface as the current render target.
func (l *BufferLock) BindRight() error { return l.bind(entity.ViewRight) }

// UnbindLeft detaches the left surface.
func (l *BufferLock) UnbindLeft() error { return l.unbind(entity.ViewLeft) }

// UnbindRight detaches the right surface.
func (l *BufferLock) UnbindRight() error { return l.unbind(entity.ViewRight) }

// Bind attaches the surface for view.
func (l *BufferLock) Bind(view entity.View) error { return l.bind(view) }

// Unbind detaches the surface for view.
func (l *BufferLock) Unbind(view entity.View) error { return l.unbind(view) }

func (l *BufferLock) slot(view entity.View) (port.Handle, *bool) {
	if view == entity.ViewRight {
		return l.b.regR, &l.boundR
	}
	return l.b.regL, &l.boundL
}

func (l *BufferLock) bind(view entity.View) error {
	if err := l.check("bind " + view.String()); err != nil {
		return err
	}
	reg, bound := l.slot(view)
	if !reg.Valid() || *bound {
		return nil
	}
	b := l.b
	if err := b.interop.LockObjects(b.device, []port.Handle{reg}); err != nil {
		return fmt.Errorf("lock %s surface: %w", view, err)
	}
	if err := b.interop.BindTarget(reg); err != nil {
		_ = b.interop.UnlockObjects(b.device, []port.Handle{reg})
		return fmt.Errorf("bind %s surface: %w", view, err)
	}
	*bound = true
	return nil
}

func (l *BufferLock) unbind(view entity.View) error {
	if err := l.check("unbind " + view.String()); err != nil {
		return err
	}
	reg, bound := l.slot(view)
	if !reg.Valid() || !*bound {
		return nil
	}
	b := l.b
	*bound = false
	err := b.interop.UnbindTarget(reg)
	if uerr := b.interop.UnlockObjects(b.device, []port.Handle{reg}); uerr != nil && err == nil {
		err = uerr
	}
	if err != nil {
		return fmt.Errorf("unbind %s surface: %w", view, err)
	}
	return nil
}

func (l *BufferLock) unbindAll() {
	_ = l.unbind(entity.ViewLeft)
	_ = l.unbind(entity.ViewRight)
}

// Release drops both registrations and closes the cross-API session.
// Releasing an empty bridge is a no-op.
func (l *BufferLock) Release() error {
	if err := l.check("bridge release"); err != nil {
		return err
	}
	b := l.b
	l.unbindAll()
	if !b.device.Valid() {
		return nil
	}
	b.unregister()
	err := b.interop.CloseDevice(b.device)
	b.device = port.NullHandle
	b.rejected, b.rejectedErr = nil, nil
	if err != nil {
		return fmt.Errorf("close interop device: %w", err)
	}
	return nil
}
