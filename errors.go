package ctxpool

import "errors"

var (
	// ErrSurfaceUnusable is returned by Acquire when every tier,
	// including the software fallback, failed to produce a context.
	// It implies the drawing surface itself is invalid. Callers must
	// treat the surface as unusable; the pool never retries on its own.
	ErrSurfaceUnusable = errors.New("ctxpool: surface unusable, all tiers failed")

	// ErrPoolExhausted is returned by Acquire under [WithHardCap] when
	// the pool is at capacity and no inactive entry can be evicted.
	// The default soft ceiling never returns it.
	ErrPoolExhausted = errors.New("ctxpool: pool at capacity with no evictable entry")

	// ErrPoolClosed is returned when operating on a closed pool.
	ErrPoolClosed = errors.New("ctxpool: pool closed")
)
