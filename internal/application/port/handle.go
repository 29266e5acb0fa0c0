// Package port defines interfaces for external dependencies.
package port

// Handle is an opaque driver/OS resource identifier. Only the render-target
// bridge keeps live handles between calls.
type Handle uintptr

// NullHandle is the zero handle.
const NullHandle Handle = 0

// Valid reports whether h refers to a resource.
func (h Handle) Valid() bool { return h != NullHandle }
