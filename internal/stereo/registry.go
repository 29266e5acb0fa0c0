package stereo

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bnema/pageflip/internal/application/port"
	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/bnema/pageflip/internal/logging"
)

// DeviceIDAuto selects the first device, shutter glasses.
const DeviceIDAuto = "auto"

// highRefreshHz is the refresh rate from which page flipping is comfortable.
const highRefreshHz = 110

// EnumerateOptions carries the attached-hardware facts that scoring needs
// besides monitors and probed capabilities.
type EnumerateOptions struct {
	// HMDPresent is set when the HMD driver found the device.
	HMDPresent bool
	// HMDMonitorVendors lists PnP id prefixes of HMD displays. When empty,
	// HMDPresent alone decides.
	HMDMonitorVendors []string
}

// Enumerate builds the device list for the given monitors and capabilities.
// It has no side effects and always returns devices in the same order.
func Enumerate(monitors entity.Monitors, caps entity.CapabilityProbeResult, opts EnumerateOptions) []entity.OutputDevice {
	shutters := entity.OutputDevice{
		PluginID:    entity.PluginID,
		DeviceID:    entity.DeviceIDShutters,
		Name:        "Shutter glasses",
		Description: "Shutter glasses",
		Support:     entity.SupportNone,
	}
	if monitors.HighestFreq().FreqMax >= highRefreshHz {
		shutters.Support = entity.SupportHigh
	}
	if caps.QuadBufferGL.IsYes() || caps.SecondaryStereo() {
		shutters.Support = entity.SupportFull
	}

	vuzix := entity.OutputDevice{
		PluginID:    entity.PluginID,
		DeviceID:    entity.DeviceIDVuzix,
		Name:        "Vuzix HMD",
		Description: "Vuzix HMD",
		Support:     entity.SupportNone,
	}
	if hmdConnected(monitors, opts) {
		vuzix.Support = entity.SupportPreferred
	}

	return []entity.OutputDevice{shutters, vuzix}
}

func hmdConnected(monitors entity.Monitors, opts EnumerateOptions) bool {
	if !opts.HMDPresent {
		return false
	}
	if len(opts.HMDMonitorVendors) == 0 {
		return true
	}
	for _, mon := range monitors {
		for _, vendor := range opts.HMDMonitorVendors {
			if vendor != "" && strings.HasPrefix(strings.ToUpper(mon.PnPID), strings.ToUpper(vendor)) {
				return true
			}
		}
	}
	return false
}

// Registry holds the current device set, the selection and per-device
// stereo setup state. It also owns the count of outputs currently driving
// a device in stereo.
type Registry struct {
	mu      sync.Mutex
	hmd     port.HMDDriver
	opts    EnumerateOptions
	devices []entity.OutputDevice
	impls   map[string]stereoDevice
	active  string
	setup   map[string]bool
	inUse   int
}

// NewRegistry creates a registry with the shutter glasses selected.
func NewRegistry(hmd port.HMDDriver, vendors []string) *Registry {
	r := &Registry{
		hmd:    hmd,
		opts:   EnumerateOptions{HMDMonitorVendors: vendors},
		active: entity.DeviceIDShutters,
		setup:  make(map[string]bool),
		impls: map[string]stereoDevice{
			entity.DeviceIDShutters: shutterGlasses{},
			entity.DeviceIDVuzix:    &hmdDevice{driver: hmd},
		},
	}
	r.devices = Enumerate(nil, entity.CapabilityProbeResult{}, r.opts)
	return r
}

// Refresh rescores the devices. Selection and setup state are kept.
func (r *Registry) Refresh(ctx context.Context, monitors entity.Monitors, caps entity.CapabilityProbeResult) []entity.OutputDevice {
	r.mu.Lock()
	defer r.mu.Unlock()

	opts := r.opts
	opts.HMDPresent = r.hmd != nil && r.hmd.Present()
	r.devices = Enumerate(monitors, caps, opts)

	log := logging.FromContext(ctx)
	for _, dev := range r.devices {
		log.Debug().Str("device", dev.DeviceID).Str("support", dev.Support.String()).Msg("device scored")
	}
	return r.snapshotLocked()
}

// Devices returns a copy of the current device list.
func (r *Registry) Devices() []entity.OutputDevice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Registry) snapshotLocked() []entity.OutputDevice {
	out := make([]entity.OutputDevice, len(r.devices))
	copy(out, r.devices)
	return out
}

// ResolveDeviceID maps "auto" and empty ids to the shutter glasses.
func ResolveDeviceID(id string) string {
	if id == "" || strings.EqualFold(id, DeviceIDAuto) {
		return entity.DeviceIDShutters
	}
	return id
}

// Select makes id the active device.
func (r *Registry) Select(id string) error {
	id = ResolveDeviceID(id)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.impls[id]; !ok {
		return fmt.Errorf("select %q: %w", id, ErrUnknownDevice)
	}
	r.active = id
	return nil
}

// ActiveID returns the selected device id.
func (r *Registry) ActiveID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Active returns the selected device descriptor.
func (r *Registry) Active() entity.OutputDevice {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, dev := range r.devices {
		if dev.DeviceID == r.active {
			return dev
		}
	}
	return entity.OutputDevice{PluginID: entity.PluginID, DeviceID: r.active}
}

func (r *Registry) device(id string) (stereoDevice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dev, ok := r.impls[id]
	return dev, ok
}

// Setup enters stereo on the device. Calling it again before Teardown is a
// no-op.
func (r *Registry) Setup(ctx context.Context, id string) error {
	r.mu.Lock()
	dev, ok := r.impls[id]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("setup %q: %w", id, ErrUnknownDevice)
	}
	if r.setup[id] {
		r.mu.Unlock()
		return nil
	}
	r.setup[id] = true
	r.inUse++
	r.mu.Unlock()

	logging.FromContext(ctx).Debug().Str("device", id).Msg("device entering stereo")
	if err := dev.EnterStereo(ctx); err != nil {
		return fmt.Errorf("setup %q: %w", id, err)
	}
	return nil
}

// Teardown leaves stereo on the device. Calling it without a prior Setup
// is a no-op.
func (r *Registry) Teardown(ctx context.Context, id string) error {
	r.mu.Lock()
	dev, ok := r.impls[id]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("teardown %q: %w", id, ErrUnknownDevice)
	}
	if !r.setup[id] {
		r.mu.Unlock()
		return nil
	}
	r.setup[id] = false
	r.inUse--
	r.mu.Unlock()

	logging.FromContext(ctx).Debug().Str("device", id).Msg("device leaving stereo")
	if err := dev.LeaveStereo(ctx); err != nil {
		return fmt.Errorf("teardown %q: %w", id, err)
	}
	return nil
}

// InUse returns how many devices are currently set up for stereo.
func (r *Registry) InUse() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inUse
}
