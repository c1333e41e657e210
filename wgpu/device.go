package wgpu

import (
	"fmt"
	"strings"

	"github.com/gogpu/ctxpool"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"
)

// GPUInfo contains information about the selected GPU adapter.
type GPUInfo struct {
	// Name is the GPU name (e.g., "NVIDIA GeForce RTX 3080").
	Name string
	// Vendor is the GPU vendor.
	Vendor string
	// DeviceType is the type of GPU (discrete, integrated, etc.).
	DeviceType gputypes.DeviceType
	// Backend is the graphics API in use (Vulkan, Metal, DX12).
	Backend gputypes.Backend
	// Driver is the driver version string.
	Driver string
}

// String returns a human-readable description of the GPU.
func (g *GPUInfo) String() string {
	return fmt.Sprintf("%s (%s, %s)", g.Name, g.DeviceType, g.Backend)
}

// softwareAdapter reports whether the adapter is a software
// rasterizer. Used to honor the performance-caveat attribute without
// depending on platform-specific device-type enumerations.
func (g *GPUInfo) softwareAdapter() bool {
	name := strings.ToLower(g.Name)
	for _, marker := range []string{"llvmpipe", "swiftshader", "software", "lavapipe"} {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}

// getGPUInfo retrieves information about the GPU adapter.
func getGPUInfo(adapterID core.AdapterID) (*GPUInfo, error) {
	info, err := core.GetAdapterInfo(adapterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get adapter info: %w", err)
	}

	return &GPUInfo{
		Name:       info.Name,
		Vendor:     info.Vendor,
		DeviceType: info.DeviceType,
		Backend:    info.Backend,
		Driver:     info.Driver,
	}, nil
}

// createDevice creates a logical device from an adapter with the given
// resource limits.
func createDevice(adapterID core.AdapterID, label string, limits gputypes.Limits) (core.DeviceID, error) {
	desc := &gputypes.DeviceDescriptor{
		Label:            label,
		RequiredFeatures: nil,
		RequiredLimits:   limits,
	}

	deviceID, err := core.RequestDevice(adapterID, desc)
	if err != nil {
		return core.DeviceID{}, fmt.Errorf("failed to create device: %w", err)
	}

	return deviceID, nil
}

// getDeviceQueue retrieves the queue associated with a device.
func getDeviceQueue(deviceID core.DeviceID) (core.QueueID, error) {
	queueID, err := core.GetDeviceQueue(deviceID)
	if err != nil {
		return core.QueueID{}, fmt.Errorf("failed to get device queue: %w", err)
	}
	return queueID, nil
}

// releaseDevice releases a device and its associated resources.
func releaseDevice(deviceID core.DeviceID) error {
	if deviceID.IsZero() {
		return nil
	}

	if err := core.DeviceDrop(deviceID); err != nil {
		return fmt.Errorf("failed to release device: %w", err)
	}
	return nil
}

// releaseAdapter releases an adapter.
func releaseAdapter(adapterID core.AdapterID) error {
	if adapterID.IsZero() {
		return nil
	}

	if err := core.AdapterDrop(adapterID); err != nil {
		return fmt.Errorf("failed to release adapter: %w", err)
	}
	return nil
}

// fullLimits returns the device limits for the full tier.
func fullLimits() gputypes.Limits {
	return gputypes.DefaultLimits()
}

// liteLimits returns the reduced device limits for the lite tier.
// The lite tier exists for platforms that refuse another full-limit
// device: smaller limits give the driver a second chance before the
// pool drops to software.
func liteLimits() gputypes.Limits {
	limits := gputypes.DefaultLimits()
	limits.MaxTextureDimension2D = 4096
	limits.MaxBufferSize = 64 * 1024 * 1024
	return limits
}

// powerPreference maps the pool-level attribute to the gputypes value
// used when requesting an adapter.
func powerPreference(p ctxpool.PowerPreference) gputypes.PowerPreference {
	switch p {
	case ctxpool.PowerPreferenceLowPower:
		return gputypes.PowerPreferenceLowPower
	case ctxpool.PowerPreferenceHighPerformance:
		return gputypes.PowerPreferenceHighPerformance
	default:
		return gputypes.PowerPreference(0)
	}
}
