package wgpu

import (
	"sync"

	"github.com/gogpu/ctxpool"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/core"
)

// AcceleratedContext is a GPU-backed rendering context. It implements
// ctxpool.EventfulContext: the backend fans device-loss notifications
// out to every subscriber.
//
// Each context owns its logical device unless it runs on a shared
// device from the host, in which case Close leaves the device alone.
type AcceleratedContext struct {
	backend *Backend
	tier    ctxpool.Tier
	width   int
	height  int
	attrs   ctxpool.ContextAttributes

	device core.DeviceID
	queue  core.QueueID
	shared bool

	mu          sync.Mutex
	subscribers map[int]ctxpool.ContextEvents
	nextSub     int
	closed      bool
}

// Tier returns the capability tier backing this context.
func (c *AcceleratedContext) Tier() ctxpool.Tier { return c.tier }

// Width returns the context width in pixels.
func (c *AcceleratedContext) Width() int { return c.width }

// Height returns the context height in pixels.
func (c *AcceleratedContext) Height() int { return c.height }

// Attributes returns the creation attributes this context was built with.
func (c *AcceleratedContext) Attributes() ctxpool.ContextAttributes { return c.attrs }

// Device returns the logical device ID. Zero for shared-device contexts.
func (c *AcceleratedContext) Device() core.DeviceID { return c.device }

// Queue returns the device queue ID. Zero for shared-device contexts.
func (c *AcceleratedContext) Queue() core.QueueID { return c.queue }

// Provider returns the host device provider for shared-device
// contexts, or nil when the context owns its device.
func (c *AcceleratedContext) Provider() gpucontext.DeviceProvider {
	if !c.shared {
		return nil
	}
	c.backend.mu.RLock()
	defer c.backend.mu.RUnlock()
	return c.backend.provider
}

// Subscribe registers ev for loss/restore notification.
// Implements ctxpool.EventfulContext.
func (c *AcceleratedContext) Subscribe(ev ctxpool.ContextEvents) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.subscribers == nil {
		c.subscribers = make(map[int]ctxpool.ContextEvents)
	}
	id := c.nextSub
	c.nextSub++
	c.subscribers[id] = ev

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}

// Close drops the logical device (unless shared) and detaches from the
// backend. Close is idempotent.
func (c *AcceleratedContext) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.subscribers = nil
	c.mu.Unlock()

	c.backend.forget(c)

	if !c.shared {
		if err := releaseDevice(c.device); err != nil {
			c.backend.logger.Warn("error releasing device", "err", err)
		}
		c.device = core.DeviceID{}
		c.queue = core.QueueID{}
	}
}

// notify dispatches an event to all current subscribers.
//
// The subscriber snapshot is taken under the context lock but the
// callbacks run without it: subscribers (the pool) take their own lock
// and may call back into Subscribe/Close, so holding ours across the
// callback would invert lock order.
func (c *AcceleratedContext) notify(lost bool) {
	c.mu.Lock()
	subs := make([]ctxpool.ContextEvents, 0, len(c.subscribers))
	for _, ev := range c.subscribers {
		subs = append(subs, ev)
	}
	c.mu.Unlock()

	for _, ev := range subs {
		if lost {
			ev.ContextLost()
		} else {
			ev.ContextRestored()
		}
	}
}
