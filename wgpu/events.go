package wgpu

// Device-loss integration points.
//
// gogpu/wgpu does not yet surface device-lost callbacks, so loss
// detection belongs to the host: window systems observe surface loss,
// error scopes observe device removal. The host forwards those signals
// here and the backend fans them out to every live context's
// subscribers (the pool).

// NotifyDeviceLost signals that the platform invalidated the backend's
// device(s). Every live context notifies its subscribers; the pool
// marks the corresponding entries lost so the next acquisition
// re-creates them.
func (b *Backend) NotifyDeviceLost() {
	for _, ctx := range b.snapshotContexts() {
		ctx.notify(true)
	}
	b.mu.RLock()
	l := b.logger
	b.mu.RUnlock()
	l.Warn("device lost reported", "backend", b.Name())
}

// NotifyDeviceRestored signals that the platform made the device
// available again. Restoration never resurrects GPU state: the pool
// reacts by discarding the affected entries so the next acquisition
// starts from scratch.
func (b *Backend) NotifyDeviceRestored() {
	for _, ctx := range b.snapshotContexts() {
		ctx.notify(false)
	}
}

// snapshotContexts copies the live context set so notification runs
// without the backend lock. Contexts may close themselves (via the
// pool) while being notified; notify tolerates that.
func (b *Backend) snapshotContexts() []*AcceleratedContext {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ctxs := make([]*AcceleratedContext, 0, len(b.contexts))
	for ctx := range b.contexts {
		ctxs = append(ctxs, ctx)
	}
	return ctxs
}
