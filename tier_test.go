package ctxpool

import "testing"

func TestTierString(t *testing.T) {
	tests := []struct {
		tier Tier
		want string
	}{
		{TierSoftware, "software"},
		{TierAcceleratedLite, "accelerated-lite"},
		{TierAcceleratedFull, "accelerated-full"},
		{Tier(99), "Unknown(99)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.tier.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTierOrdering(t *testing.T) {
	if !(TierAcceleratedFull > TierAcceleratedLite && TierAcceleratedLite > TierSoftware) {
		t.Error("tiers must order full > lite > software")
	}
}

func TestTierAccelerated(t *testing.T) {
	if TierSoftware.Accelerated() {
		t.Error("software tier must not report accelerated")
	}
	if !TierAcceleratedLite.Accelerated() || !TierAcceleratedFull.Accelerated() {
		t.Error("accelerated tiers must report accelerated")
	}
}

func TestDefaultContextAttributes(t *testing.T) {
	attrs := DefaultContextAttributes()

	if attrs.Alpha {
		t.Error("Alpha should default off: no implicit page blending")
	}
	if attrs.Antialias {
		t.Error("Antialias should default off: the caller does its own")
	}
	if !attrs.Depth {
		t.Error("Depth should default on")
	}
	if attrs.Stencil {
		t.Error("Stencil should default off")
	}
	if attrs.FailIfMajorPerformanceCaveat {
		t.Error("performance-caveat refusal should default off")
	}
	if attrs.PowerPreference != PowerPreferenceHighPerformance {
		t.Errorf("PowerPreference = %v, want high performance", attrs.PowerPreference)
	}
	if attrs.PremultipliedAlpha {
		t.Error("PremultipliedAlpha should default off")
	}
	if attrs.PreserveDrawingBuffer {
		t.Error("PreserveDrawingBuffer should default off: full redraw every frame")
	}
}
