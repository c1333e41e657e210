package ctxpool

import "fmt"

// Tier identifies the capability level of a rendering context.
//
// Tiers are ordered: a higher tier offers more capability. Creation
// attempts tiers from highest to lowest and installs the first one
// that materializes.
type Tier uint8

const (
	// TierSoftware is a CPU-backed pixmap context. It has no platform
	// ceiling and is expected to succeed whenever the surface itself
	// is valid.
	TierSoftware Tier = iota

	// TierAcceleratedLite is a GPU context created with reduced
	// resource limits, attempted when the full tier is refused.
	TierAcceleratedLite

	// TierAcceleratedFull is a full-feature GPU context.
	TierAcceleratedFull
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierSoftware:
		return "software"
	case TierAcceleratedLite:
		return "accelerated-lite"
	case TierAcceleratedFull:
		return "accelerated-full"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(t))
	}
}

// Accelerated reports whether the tier is GPU-backed.
// Only accelerated tiers participate in loss/restore notification.
func (t Tier) Accelerated() bool {
	return t == TierAcceleratedFull || t == TierAcceleratedLite
}

// PowerPreference selects the GPU adapter power profile for
// accelerated context creation.
type PowerPreference uint8

const (
	// PowerPreferenceNone lets the platform choose an adapter.
	PowerPreferenceNone PowerPreference = iota

	// PowerPreferenceLowPower prefers an integrated adapter.
	PowerPreferenceLowPower

	// PowerPreferenceHighPerformance prefers a discrete adapter.
	PowerPreferenceHighPerformance
)

// ContextAttributes is the fixed set of creation attributes applied to
// every tier attempt. The defaults favor predictability over platform
// defaults: the caller redraws every frame and does its own
// antialiasing, so compositor conveniences are switched off.
type ContextAttributes struct {
	// Alpha enables blending the context with whatever is behind its
	// surface. Off by default.
	Alpha bool

	// Antialias requests platform multisampling. Off by default; the
	// caller performs its own antialiasing.
	Antialias bool

	// Depth enables a depth buffer. On by default.
	Depth bool

	// Stencil enables a stencil buffer. Off by default.
	Stencil bool

	// FailIfMajorPerformanceCaveat refuses creation when the platform
	// suspects the context would be slow. Off by default: a slow
	// context beats no context.
	FailIfMajorPerformanceCaveat bool

	// PowerPreference selects the adapter power profile.
	// High performance by default.
	PowerPreference PowerPreference

	// PremultipliedAlpha treats the draw buffer as premultiplied when
	// compositing. Off by default.
	PremultipliedAlpha bool

	// PreserveDrawingBuffer retains the draw buffer between frames.
	// Off by default: every frame is redrawn in full, so retention
	// only wastes memory.
	PreserveDrawingBuffer bool
}

// DefaultContextAttributes returns the attribute set used when no
// explicit attributes are configured.
func DefaultContextAttributes() ContextAttributes {
	return ContextAttributes{
		Depth:           true,
		PowerPreference: PowerPreferenceHighPerformance,
	}
}
