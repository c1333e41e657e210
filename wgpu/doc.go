// Package wgpu registers the accelerated context backends for the pool.
//
// Import this package to enable the accelerated-full and
// accelerated-lite tiers. The tiers are backed by gogpu/wgpu devices
// (Vulkan/Metal/DX12). If GPU initialization fails on the host,
// creation attempts fail and the pool falls back to the software tier.
//
// Usage:
//
//	import _ "github.com/gogpu/ctxpool/wgpu" // enable GPU tiers
//
// Hosts that already own a GPU device (e.g., a gogpu window) can share
// it with the backends via ctxpool.WithDeviceProvider, passing a
// gpucontext.DeviceProvider. Shared devices are never dropped by the
// pool.
package wgpu

import "github.com/gogpu/ctxpool"

func init() {
	ctxpool.RegisterBackend(NewBackend(ctxpool.TierAcceleratedFull))
	ctxpool.RegisterBackend(NewBackend(ctxpool.TierAcceleratedLite))
}
