package port

import (
	"context"

	"github.com/bnema/pageflip/internal/domain/entity"
)

// SurfacePair holds the left/right secondary surfaces and their share handles.
type SurfacePair struct {
	Left       Handle
	LeftShare  Handle
	Right      Handle
	RightShare Handle
}

// SecondarySurface is the secondary graphics API's exclusive fullscreen
// stereo surface. It is driven from the worker goroutine. Device, Surfaces
// and Size do not change after Init returns and may be read from any
// goroutine; Buffer may be used by whoever holds the bridge lock.
type SecondarySurface interface {
	// Init creates the device, window and surface pair. It may block.
	Init(ctx context.Context) error
	Device() Handle
	Surfaces() SurfacePair
	Size() (width, height int)
	Show() error
	Hide() error
	// Present pushes the current surface contents to the display.
	Present() error
	// Buffer returns the CPU staging buffer for one eye, used when the
	// share extension is missing.
	Buffer(view entity.View) []byte
	Release()
}

// SecondarySurfaceFactory creates a surface on the given monitor.
type SecondarySurfaceFactory func(monitor entity.Monitor) (SecondarySurface, error)

// SecondaryAPIInspector reports what the secondary graphics API supports.
type SecondaryAPIInspector interface {
	// Inspect returns nil info when the API is absent.
	Inspect(ctx context.Context) (*entity.SecondaryAPIInfo, error)
}

// QuadBufferChecker creates a throwaway context to test native quad buffer.
type QuadBufferChecker interface {
	CheckQuadBuffer(ctx context.Context) (bool, error)
}
