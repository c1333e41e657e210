// Package ctxpool manages a bounded pool of hardware-accelerated
// rendering contexts shared across many logical viewports.
//
// # Overview
//
// Platforms impose a hard ceiling (typically around sixteen) on the
// number of concurrent accelerated rendering contexts a process may
// hold. Applications that create and destroy display surfaces
// dynamically — multi-panel image viewers in particular — need to share
// that scarce budget across far more viewports than the ceiling allows.
//
// ctxpool owns a key→context mapping with LRU eviction, tiered
// creation (full-accelerated, reduced-accelerated, software fallback),
// idle reclamation on a timer, and an explicit two-state loss/restore
// machine for accelerated surfaces.
//
// # Quick Start
//
//	pool := ctxpool.New()
//	defer pool.Close()
//
//	ctx, err := pool.Acquire("viewport-0", surface)
//	if err != nil {
//	    // surface is unusable, show a degraded-mode message
//	}
//	// ... draw with ctx ...
//	pool.Release("viewport-0") // keep cached, no foreground user
//	pool.Destroy("viewport-0") // hard reclaim
//
// # Tiers
//
// Creation walks an ordered backend chain until one succeeds:
//
//   - TierAcceleratedFull: full-feature GPU context (gogpu/wgpu)
//   - TierAcceleratedLite: reduced-limits GPU context
//   - TierSoftware: CPU pixmap context, no platform ceiling
//
// A downgrade is recorded in the log but never surfaced as an error;
// only total exhaustion (even the software tier failed) is returned to
// the caller.
//
// # Logging
//
// ctxpool produces no log output by default. Call [SetLogger] to enable
// structured logging via log/slog.
package ctxpool
