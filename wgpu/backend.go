package wgpu

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/ctxpool"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"
)

// ErrNoGPU is returned when no suitable GPU adapter is available.
var ErrNoGPU = errors.New("wgpu: no GPU adapter available")

// ErrPerformanceCaveat is returned when the only available adapter is a
// software rasterizer and the attributes refuse one.
var ErrPerformanceCaveat = errors.New("wgpu: adapter has a major performance caveat")

// Backend produces accelerated rendering contexts for one tier.
//
// The backend owns the shared GPU instance and adapter; each context
// owns its own logical device, which is the per-context resource the
// platform limits. The lite tier requests devices with reduced limits,
// giving the driver a second chance when a full-limit device is
// refused.
type Backend struct {
	mu sync.RWMutex

	tier ctxpool.Tier

	// GPU resources shared by all contexts of this backend
	instance    *core.Instance
	adapter     core.AdapterID
	adapterPref ctxpool.PowerPreference

	// GPU information
	gpuInfo *GPUInfo

	// Optional shared device from the host. When set, contexts reuse
	// it instead of creating their own; shared devices are never
	// dropped by this package.
	provider gpucontext.DeviceProvider

	logger *slog.Logger

	// Live contexts, for device-loss fan-out.
	contexts map[*AcceleratedContext]struct{}

	initialized bool
}

// NewBackend creates an accelerated backend for the given tier.
// The tier must be TierAcceleratedFull or TierAcceleratedLite.
// The backend initializes lazily on first use.
func NewBackend(tier ctxpool.Tier) *Backend {
	return &Backend{
		tier:     tier,
		contexts: make(map[*AcceleratedContext]struct{}),
		logger:   ctxpool.Logger(),
	}
}

// Name returns the backend identifier ("wgpu-full" or "wgpu-lite").
func (b *Backend) Name() string {
	if b.tier == ctxpool.TierAcceleratedLite {
		return "wgpu-lite"
	}
	return "wgpu-full"
}

// Tier returns the capability tier this backend produces.
func (b *Backend) Tier() ctxpool.Tier { return b.tier }

// SetLogger configures the backend logger. Called by ctxpool.SetLogger.
func (b *Backend) SetLogger(l *slog.Logger) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logger = l
}

// SetDeviceProvider configures a shared GPU device from the host.
// Implements ctxpool.DeviceProviderAware.
func (b *Backend) SetDeviceProvider(provider any) error {
	p, ok := provider.(gpucontext.DeviceProvider)
	if !ok {
		return fmt.Errorf("wgpu: provider %T does not implement gpucontext.DeviceProvider", provider)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.provider = p
	return nil
}

// Init creates the shared GPU instance and adapter. Idempotent.
// With a shared device provider, Init is a no-op: the host already
// owns the GPU resources.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized || b.provider != nil {
		b.initialized = true
		return nil
	}

	desc := &gputypes.InstanceDescriptor{
		Backends: gputypes.BackendsPrimary,
		Flags:    0,
	}
	b.instance = core.NewInstance(desc)

	if err := b.ensureAdapterLocked(ctxpool.PowerPreferenceHighPerformance); err != nil {
		b.instance = nil
		return err
	}

	b.initialized = true
	return nil
}

// ensureAdapterLocked requests an adapter matching the given power
// preference, replacing the current one if the preference changed.
// Caller must hold mu.
func (b *Backend) ensureAdapterLocked(pref ctxpool.PowerPreference) error {
	if !b.adapter.IsZero() && b.adapterPref == pref {
		return nil
	}
	if !b.adapter.IsZero() {
		if err := releaseAdapter(b.adapter); err != nil {
			b.logger.Warn("error releasing adapter", "backend", b.Name(), "err", err)
		}
		b.adapter = core.AdapterID{}
	}

	adapterID, err := b.instance.RequestAdapter(&gputypes.RequestAdapterOptions{
		PowerPreference: powerPreference(pref),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoGPU, err)
	}
	b.adapter = adapterID
	b.adapterPref = pref

	b.gpuInfo, _ = getGPUInfo(adapterID)
	if b.gpuInfo != nil {
		b.logger.Info("GPU adapter selected",
			"backend", b.Name(), "gpu", b.gpuInfo.String())
	}
	return nil
}

// CreateContext materializes an accelerated context for the surface.
// A device-creation refusal (e.g., the platform already exhausted its
// per-process device budget) is returned as an error and absorbed by
// the pool's tier fallback.
func (b *Backend) CreateContext(surface ctxpool.Surface, attrs ctxpool.ContextAttributes) (ctxpool.RenderingContext, error) {
	if surface == nil {
		return nil, fmt.Errorf("%w: nil surface", ctxpool.ErrBackendUnavailable)
	}
	w, h := surface.Width(), surface.Height()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: invalid surface dimensions %dx%d", ctxpool.ErrBackendUnavailable, w, h)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return nil, ctxpool.ErrBackendUnavailable
	}

	// Shared-device path: wrap the host's device, never drop it.
	if b.provider != nil {
		ctx := &AcceleratedContext{
			backend: b,
			tier:    b.tier,
			width:   w,
			height:  h,
			shared:  true,
			attrs:   attrs,
		}
		b.contexts[ctx] = struct{}{}
		return ctx, nil
	}

	// Honor the requested power profile; the adapter is re-requested
	// when the preference differs from the current one.
	if err := b.ensureAdapterLocked(attrs.PowerPreference); err != nil {
		return nil, err
	}

	if attrs.FailIfMajorPerformanceCaveat && b.gpuInfo != nil && b.gpuInfo.softwareAdapter() {
		return nil, fmt.Errorf("%w: %s", ErrPerformanceCaveat, b.gpuInfo.Name)
	}

	limits := fullLimits()
	if b.tier == ctxpool.TierAcceleratedLite {
		limits = liteLimits()
	}

	deviceID, err := createDevice(b.adapter, b.Name()+"-context", limits)
	if err != nil {
		return nil, fmt.Errorf("device creation failed: %w", err)
	}

	queueID, err := getDeviceQueue(deviceID)
	if err != nil {
		_ = releaseDevice(deviceID)
		return nil, fmt.Errorf("queue retrieval failed: %w", err)
	}

	ctx := &AcceleratedContext{
		backend: b,
		tier:    b.tier,
		width:   w,
		height:  h,
		device:  deviceID,
		queue:   queueID,
		attrs:   attrs,
	}
	b.contexts[ctx] = struct{}{}
	return ctx, nil
}

// Close releases the shared instance and adapter. Contexts created by
// the backend must be closed first; Close logs and skips any that are
// still live.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}

	if n := len(b.contexts); n > 0 {
		b.logger.Warn("backend closed with live contexts", "backend", b.Name(), "count", n)
	}

	if !b.adapter.IsZero() {
		if err := releaseAdapter(b.adapter); err != nil {
			b.logger.Warn("error releasing adapter", "backend", b.Name(), "err", err)
		}
		b.adapter = core.AdapterID{}
	}

	// Instance doesn't need explicit cleanup in the current implementation
	b.instance = nil
	b.gpuInfo = nil
	b.initialized = false
}

// GPUInfo returns information about the selected adapter, or nil when
// the backend is uninitialized or running on a shared device.
func (b *Backend) GPUInfo() *GPUInfo {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.gpuInfo
}

// forget drops a context from loss fan-out. Called from
// AcceleratedContext.Close.
func (b *Backend) forget(ctx *AcceleratedContext) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.contexts, ctx)
}
