package stereo

import "errors"

// ErrPrecondition marks caller defects such as binding without the buffer
// lock or resizing with a null surface.
var ErrPrecondition = errors.New("precondition violated")

var (
	ErrNotLocked             = errors.New("shared surfaces are not locked")
	ErrNullSurface           = errors.New("null surface handle")
	ErrShareExtensionMissing = errors.New("surface share extension is not available")
	ErrRegistrationRejected  = errors.New("surface registration rejected by driver")
	ErrNotReady              = errors.New("secondary surface not ready")
	ErrWorkerStopped         = errors.New("secondary worker stopped")
	ErrQuitTimeout           = errors.New("secondary worker did not acknowledge quit")
	ErrUnknownDevice         = errors.New("unknown output device")
	ErrGLVersion             = errors.New("OpenGL 2.0 or newer is required")
)

// preconditionError wraps a specific protocol error so that both the
// specific sentinel and ErrPrecondition match with errors.Is.
type preconditionError struct {
	err error
	op  string
}

func (e *preconditionError) Error() string {
	return e.op + ": " + e.err.Error()
}

func (e *preconditionError) Is(target error) bool {
	return target == ErrPrecondition
}

func (e *preconditionError) Unwrap() error {
	return e.err
}

func precondition(op string, err error) error {
	return &preconditionError{op: op, err: err}
}
