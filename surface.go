package ctxpool

// Surface describes a drawing surface a rendering context attaches to.
//
// The pool treats surfaces opaquely: it never draws, it only hands them
// to backends during creation. Hosts wrap their window, canvas, or
// offscreen target in this interface.
//
// A surface with non-positive dimensions is invalid; every tier refuses
// it and Acquire fails with [ErrSurfaceUnusable].
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int
}
