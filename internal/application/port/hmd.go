package port

import (
	"context"
	"time"

	"github.com/bnema/pageflip/internal/domain/entity"
)

// HMDDriver drives a head-mounted display's scan mode and eye sync.
type HMDDriver interface {
	// Present reports whether the driver found the device.
	Present() bool
	SetStereo(ctx context.Context, on bool) error
	// WaitEyeAck blocks until the device is ready to scan the given eye or
	// the timeout elapses.
	WaitEyeAck(ctx context.Context, view entity.View, timeout time.Duration) error
	// SetEye tells the device which eye the next frame belongs to.
	SetEye(ctx context.Context, view entity.View) error
	Close() error
}
