package ctxpool

import (
	"testing"
)

func TestSoftwareBackendAlwaysRegistered(t *testing.T) {
	if !IsRegistered(SoftwareBackendName) {
		t.Fatal("software backend must be registered by default")
	}
}

func TestRegisterBackendNil(t *testing.T) {
	before := len(AvailableBackends())
	RegisterBackend(nil)
	if got := len(AvailableBackends()); got != before {
		t.Error("registering nil must be a no-op")
	}
}

func TestTierChainOrder(t *testing.T) {
	sw := &fakeBackend{name: "test-sw", tier: TierSoftware}
	lite := &fakeBackend{name: "test-lite", tier: TierAcceleratedLite}
	full := &fakeBackend{name: "test-full", tier: TierAcceleratedFull}

	// Register low tier first to prove ordering is by tier, not by
	// registration sequence.
	RegisterBackend(sw)
	RegisterBackend(lite)
	RegisterBackend(full)
	t.Cleanup(func() {
		UnregisterBackend("test-sw")
		UnregisterBackend("test-lite")
		UnregisterBackend("test-full")
	})

	chain := tierChain()

	var names []string
	for _, b := range chain {
		switch b.Name() {
		case "test-sw", "test-lite", "test-full", SoftwareBackendName:
			names = append(names, b.Name())
		}
	}

	want := []string{"test-full", "test-lite", SoftwareBackendName, "test-sw"}
	if len(names) != len(want) {
		t.Fatalf("chain = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("chain = %v, want %v", names, want)
		}
	}
}

func TestUnregisterBackend(t *testing.T) {
	b := &fakeBackend{name: "test-ephemeral", tier: TierAcceleratedLite}
	RegisterBackend(b)
	if !IsRegistered("test-ephemeral") {
		t.Fatal("backend not registered")
	}
	UnregisterBackend("test-ephemeral")
	if IsRegistered("test-ephemeral") {
		t.Error("backend still registered after UnregisterBackend")
	}
}

func TestDefaultChainUsesRegistry(t *testing.T) {
	// With no explicit backends and no accelerated package imported,
	// acquisition lands on the built-in software tier.
	pool := New(WithCleanupInterval(0))
	defer pool.Close()

	ctx, err := pool.Acquire("v0", fakeSurface{w: 8, h: 8})
	if err != nil {
		t.Fatalf("Acquire() error: %v", err)
	}
	if ctx.Tier() != TierSoftware {
		t.Errorf("Tier() = %v, want TierSoftware", ctx.Tier())
	}
	if _, ok := ctx.(*SoftwareContext); !ok {
		t.Errorf("context type = %T, want *SoftwareContext", ctx)
	}
}
