// Package hmd drives the Vuzix head-mounted display through its hidraw
// node: scan mode switching and per-frame eye synchronisation.
package hmd

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/pageflip/internal/application/port"
	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/bnema/pageflip/internal/logging"
)

// Report layouts.
const (
	reportStereo = 0x02
	reportEye    = 0x03
	reportAck    = 0x04

	ackReportLen = 2
)

var (
	// ErrNotPresent is returned when no HMD was found.
	ErrNotPresent = errors.New("hmd not present")
	// ErrAckTimeout is returned when the eye acknowledgement is late.
	ErrAckTimeout = errors.New("hmd eye acknowledgement timed out")
)

// device is the report-level transport.
type device interface {
	SetFeature(report []byte) error
	Read(buf []byte, timeout time.Duration) (int, error)
	Close() error
}

// Config locates the device.
type Config struct {
	DeviceGlob string
	VendorID   string
}

// Driver implements port.HMDDriver. The zero device means not present.
type Driver struct {
	mu     sync.Mutex
	dev    device
	stereo bool
}

var _ port.HMDDriver = (*Driver)(nil)

// Open looks for the device. A missing device is not an error: the
// returned driver reports Present() == false.
func Open(ctx context.Context, cfg Config) (*Driver, error) {
	vendor, err := parseVendorID(cfg.VendorID)
	if err != nil {
		return nil, err
	}
	dev, err := findHidraw(cfg.DeviceGlob, vendor)
	if err != nil {
		return nil, err
	}
	log := logging.FromContext(ctx)
	if dev == nil {
		log.Debug().Str("glob", cfg.DeviceGlob).Str("vendor", cfg.VendorID).Msg("no hmd found")
		return &Driver{}, nil
	}
	log.Info().Str("path", dev.path).Msg("hmd found")
	return &Driver{dev: dev}, nil
}

func newDriver(dev device) *Driver {
	return &Driver{dev: dev}
}

func (d *Driver) Present() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dev != nil
}

// SetStereo switches between side-by-side mono scan and page-flip scan.
// Repeating the current mode sends nothing.
func (d *Driver) SetStereo(ctx context.Context, on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dev == nil {
		return ErrNotPresent
	}
	if d.stereo == on {
		return nil
	}
	if err := d.dev.SetFeature([]byte{reportStereo, boolByte(on)}); err != nil {
		return fmt.Errorf("set stereo %t: %w", on, err)
	}
	d.stereo = on
	logging.FromContext(ctx).Debug().Bool("stereo", on).Msg("hmd scan mode changed")
	return nil
}

// WaitEyeAck reads input reports until one acknowledges view. Reports
// for the other eye are skipped.
func (d *Driver) WaitEyeAck(ctx context.Context, view entity.View, timeout time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dev == nil {
		return ErrNotPresent
	}

	deadline := time.Now().Add(timeout)
	buf := make([]byte, 8)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return fmt.Errorf("%s eye: %w", view, ErrAckTimeout)
		}
		n, err := d.dev.Read(buf, remaining)
		if errors.Is(err, errTimeout) {
			return fmt.Errorf("%s eye: %w", view, ErrAckTimeout)
		}
		if err != nil {
			return err
		}
		if n >= ackReportLen && buf[0] == reportAck && buf[1] == eyeByte(view) {
			return nil
		}
	}
}

func (d *Driver) SetEye(_ context.Context, view entity.View) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dev == nil {
		return ErrNotPresent
	}
	if err := d.dev.SetFeature([]byte{reportEye, eyeByte(view)}); err != nil {
		return fmt.Errorf("set eye %s: %w", view, err)
	}
	return nil
}

// Close returns the device to mono scan and releases it.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dev == nil {
		return nil
	}
	var errs []error
	if d.stereo {
		if err := d.dev.SetFeature([]byte{reportStereo, 0}); err != nil {
			errs = append(errs, err)
		}
		d.stereo = false
	}
	errs = append(errs, d.dev.Close())
	d.dev = nil
	return errors.Join(errs...)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func eyeByte(view entity.View) byte {
	if view == entity.ViewRight {
		return 1
	}
	return 0
}
