package ctxpool

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestNopHandler_Enabled(t *testing.T) {
	h := nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("nopHandler.Enabled(%v) = true, want false", level)
		}
	}
}

func TestNopHandler_Handle(t *testing.T) {
	h := nopHandler{}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("nopHandler.Handle() = %v, want nil", err)
	}
}

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	// Default logger must be disabled at all levels.
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger should not be enabled for %v", level)
		}
	}
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	SetLogger(custom)

	if Logger() != custom {
		t.Error("Logger() did not return the custom logger set via SetLogger")
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should restore the silent logger")
	}
}

// loggingBackend records the logger propagated to it.
type loggingBackend struct {
	fakeBackend
	mu     sync.Mutex
	logger *slog.Logger
}

func (b *loggingBackend) SetLogger(l *slog.Logger) {
	b.mu.Lock()
	b.logger = l
	b.mu.Unlock()
}

func TestSetLoggerPropagatesToBackends(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	b := &loggingBackend{fakeBackend: fakeBackend{name: "test-logging", tier: TierAcceleratedLite}}
	RegisterBackend(b)
	t.Cleanup(func() { UnregisterBackend("test-logging") })

	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	SetLogger(custom)

	b.mu.Lock()
	got := b.logger
	b.mu.Unlock()
	if got != custom {
		t.Error("SetLogger did not propagate to the registered backend")
	}
}

func TestPoolLogsFallback(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	full := &fakeBackend{name: "full", tier: TierAcceleratedFull, failFirst: 1}
	software := &fakeBackend{name: "sw", tier: TierSoftware}
	pool := New(WithCleanupInterval(0), WithBackends(full, software))
	defer pool.Close()

	if _, err := pool.Acquire("v0", fakeSurface{w: 8, h: 8}); err != nil {
		t.Fatalf("Acquire() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "capability fallback") {
		t.Errorf("fallback was not recorded in the log:\n%s", out)
	}
}
