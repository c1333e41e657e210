package ctxpool

// RenderingContext is an opaque handle to a live rendering capability
// attached to one surface.
//
// Exactly one tier backs a context at a time. Callers that need
// tier-specific behavior switch on [RenderingContext.Tier] (or
// type-assert to the concrete backend type) rather than probing for
// methods.
//
// Ownership: the pool is the sole owner of every context it returns.
// Acquire hands out a borrowed reference; the borrow ends at the next
// Release, Destroy, or eviction for the same key. Using a context past
// that point is a caller bug — backends turn it into a no-op or an
// error, never into a crash.
type RenderingContext interface {
	// Tier returns the capability tier backing this context.
	Tier() Tier

	// Width returns the context width in pixels.
	Width() int

	// Height returns the context height in pixels.
	Height() int

	// Close releases the underlying platform resource. Close is
	// idempotent. Only the pool calls Close; callers go through
	// Pool.Destroy.
	Close()
}

// ContextEvents receives asynchronous platform notifications for an
// accelerated context. Implemented by the pool; hosts never call these
// directly.
type ContextEvents interface {
	// ContextLost signals that the platform invalidated the context.
	// The context's GPU state is gone and must not be used.
	ContextLost()

	// ContextRestored signals that the platform made the surface
	// available again. Prior GPU state is NOT resurrected; the only
	// safe reaction is full re-creation.
	ContextRestored()
}

// EventfulContext is implemented by accelerated contexts that can
// deliver loss/restore notifications. The software tier has no loss
// concept and does not implement it.
type EventfulContext interface {
	RenderingContext

	// Subscribe registers ev for loss/restore notification and returns
	// a function that unregisters it. The pool subscribes at creation
	// and unsubscribes at destruction.
	Subscribe(ev ContextEvents) (unsubscribe func())
}
