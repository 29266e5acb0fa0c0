package stereo

import (
	"context"
	"time"

	"github.com/bnema/pageflip/internal/application/port"
	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/bnema/pageflip/internal/logging"
)

// stereoDevice is the per-device behavior the presenter drives around
// mono/stereo edges and swaps.
type stereoDevice interface {
	ID() string
	EnterStereo(ctx context.Context) error
	LeaveStereo(ctx context.Context) error
	// HasAck reports whether the device provides a hardware eye signal.
	HasAck() bool
	WaitAck(ctx context.Context, view entity.View, timeout time.Duration) error
	// AfterSwap is called once the frame for view has been swapped.
	AfterSwap(ctx context.Context, view entity.View)
}

// shutterGlasses are driven by the display's vsync; there is nothing to
// tell them.
type shutterGlasses struct{}

func (shutterGlasses) ID() string                             { return entity.DeviceIDShutters }
func (shutterGlasses) EnterStereo(context.Context) error      { return nil }
func (shutterGlasses) LeaveStereo(context.Context) error      { return nil }
func (shutterGlasses) HasAck() bool                           { return false }
func (shutterGlasses) AfterSwap(context.Context, entity.View) {}
func (shutterGlasses) WaitAck(context.Context, entity.View, time.Duration) error {
	return nil
}

type hmdDevice struct {
	driver port.HMDDriver
}

func (d *hmdDevice) ID() string { return entity.DeviceIDVuzix }

func (d *hmdDevice) present() bool {
	return d.driver != nil && d.driver.Present()
}

func (d *hmdDevice) EnterStereo(ctx context.Context) error {
	if !d.present() {
		return nil
	}
	return d.driver.SetStereo(ctx, true)
}

func (d *hmdDevice) LeaveStereo(ctx context.Context) error {
	if !d.present() {
		return nil
	}
	return d.driver.SetStereo(ctx, false)
}

func (d *hmdDevice) HasAck() bool { return d.present() }

func (d *hmdDevice) WaitAck(ctx context.Context, view entity.View, timeout time.Duration) error {
	if !d.present() {
		return nil
	}
	return d.driver.WaitEyeAck(ctx, view, timeout)
}

func (d *hmdDevice) AfterSwap(ctx context.Context, view entity.View) {
	if !d.present() {
		return
	}
	// The eye that scans next is the one just swapped.
	if err := d.driver.SetEye(ctx, view); err != nil {
		logging.FromContext(ctx).Trace().Err(err).Str("view", view.String()).Msg("hmd eye signal failed")
	}
}
