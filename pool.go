package ctxpool

import (
	"container/list"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// entry tracks one pooled rendering context with LRU information.
type entry struct {
	key        string
	ctx        RenderingContext
	createdAt  time.Time
	lastUsedAt time.Time
	active     bool
	lost       bool
	owner      string // diagnostics only

	element     *list.Element // position in LRU list
	unsubscribe func()        // loss/restore subscription, nil for software
}

// DeviceProviderAware is an optional interface for backends that can
// share a GPU device with an external provider (e.g., a gogpu window).
// When SetDeviceProvider is called, the backend reuses the provided
// device instead of creating its own.
type DeviceProviderAware interface {
	SetDeviceProvider(provider any) error
}

// Pool owns a bounded set of rendering contexts keyed by a
// caller-assigned stable identity, one per logical drawing surface.
//
// Pool is safe for concurrent use: every operation holds the pool lock
// for its full duration, including loss/restore callbacks delivered by
// backends.
//
// Construct with [New] at application start and dispose with
// [Pool.Close] at shutdown. A context returned by Acquire is borrowed:
// the borrow ends at the next Release, Destroy, or eviction for the
// same key.
type Pool struct {
	mu sync.RWMutex

	entries map[string]*entry
	lru     *list.List // front = most recently used

	maxContexts   int
	maxIdleTime   time.Duration
	reserveMargin int
	hardCap       bool
	attrs         ContextAttributes
	backends      []Backend // explicit chain; nil means use the registry
	provider      any       // shared device provider, nil if none

	now func() time.Time

	// Reentrancy guard: a cleanup pass must never start another.
	cleaning bool

	// Statistics
	created   uint64
	evictions uint64
	fallbacks uint64

	pressure *rate.Limiter // throttles capacity-pressure warnings

	done   chan struct{} // stops the periodic sweep
	closed bool
}

// New creates a pool with the given options.
//
// Unless disabled via [WithCleanupInterval], New starts a goroutine
// that sweeps idle entries periodically; Close stops it.
func New(opts ...Option) *Pool {
	o := defaultPoolOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p := &Pool{
		entries:       make(map[string]*entry),
		lru:           list.New(),
		maxContexts:   o.maxContexts,
		maxIdleTime:   o.maxIdleTime,
		reserveMargin: o.reserveMargin,
		hardCap:       o.hardCap,
		attrs:         o.attrs,
		backends:      o.backends,
		provider:      o.deviceProvider,
		now:           o.now,
		pressure:      rate.NewLimiter(rate.Every(time.Second), 1),
		done:          make(chan struct{}),
	}

	if o.cleanupInterval > 0 {
		go p.sweepLoop(o.cleanupInterval)
	}

	return p
}

// Acquire returns a live rendering context for key.
//
// If a live entry exists for key, it is touched and returned. A lost
// entry is torn down and re-created. Otherwise the pool makes room if
// near the ceiling and walks the tier chain until a backend succeeds.
//
// The only error cases are [ErrSurfaceUnusable] (even the software
// tier refused the surface), [ErrPoolExhausted] (hard cap only), and
// [ErrPoolClosed]. Capability downgrades are absorbed and logged, never
// surfaced.
func (p *Pool) Acquire(key string, surface Surface, opts ...AcquireOption) (RenderingContext, error) {
	var ao acquireOptions
	for _, opt := range opts {
		opt(&ao)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrPoolClosed
	}

	if e, ok := p.entries[key]; ok {
		if !e.lost {
			e.active = true
			e.lastUsedAt = p.now()
			p.lru.MoveToFront(e.element)
			return e.ctx, nil
		}
		// The platform invalidated this context; reuse-in-place would
		// resurrect nothing. Tear down and fall through to creation.
		Logger().Debug("replacing lost context", "key", key)
		p.removeLocked(e)
	}

	if err := p.makeRoomLocked(); err != nil {
		return nil, err
	}

	ctx, err := p.createTieredLocked(key, surface)
	if err != nil {
		return nil, err
	}

	now := p.now()
	e := &entry{
		key:        key,
		ctx:        ctx,
		createdAt:  now,
		lastUsedAt: now,
		active:     true,
		owner:      ao.owner,
	}
	e.element = p.lru.PushFront(e)
	p.entries[key] = e
	p.created++

	if ev, ok := ctx.(EventfulContext); ok {
		e.unsubscribe = ev.Subscribe(&entryEvents{pool: p, key: key, ctx: ctx})
	}

	Logger().Debug("context acquired",
		"key", key, "tier", ctx.Tier().String(), "owner", ao.owner, "pool_size", len(p.entries))

	return ctx, nil
}

// Release marks the entry for key as having no current foreground user.
// The context stays cached so a later Acquire for the same key avoids
// re-creation cost. Releasing an absent key is a no-op.
func (p *Pool) Release(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.entries[key]
	if !ok {
		return
	}
	e.active = false
	e.lastUsedAt = p.now()
	// Releasing counts as a touch: eviction order follows last use.
	p.lru.MoveToFront(e.element)
}

// Destroy removes the entry for key unconditionally, regardless of
// active state, and closes its context. Destroying an absent key is a
// no-op, which tolerates races between caller teardown and pool-driven
// eviction.
func (p *Pool) Destroy(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.entries[key]
	if !ok {
		return
	}
	p.removeLocked(e)
	Logger().Debug("context destroyed", "key", key)
}

// Contains reports whether a live entry exists for key.
func (p *Pool) Contains(key string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.entries[key]
	return ok
}

// Len returns the number of pooled entries.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entries)
}

// Close destroys every remaining entry, stops the periodic sweep, and
// marks the pool closed. Close is idempotent. The pool must not be used
// after Close.
//
// Close does not close backends: registered backends are shared by all
// pools in the process and belong to the host.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	close(p.done)

	for _, e := range p.entries {
		if e.unsubscribe != nil {
			e.unsubscribe()
		}
		e.ctx.Close()
	}
	p.entries = make(map[string]*entry)
	p.lru.Init()

	Logger().Debug("pool closed")
}

// createTieredLocked walks the tier chain, highest capability first,
// until a backend materializes a context. Per-tier failures are
// absorbed; landing below the chain's best tier is recorded explicitly
// so callers can adapt their feature set.
func (p *Pool) createTieredLocked(key string, surface Surface) (RenderingContext, error) {
	chain := p.backends
	if chain == nil {
		chain = tierChain()
	}
	if len(chain) == 0 {
		return nil, fmt.Errorf("%w: no backends registered", ErrSurfaceUnusable)
	}

	best := chain[0].Tier()
	var lastErr error

	for _, b := range chain {
		if p.provider != nil {
			if aware, ok := b.(DeviceProviderAware); ok {
				if err := aware.SetDeviceProvider(p.provider); err != nil {
					Logger().Debug("device provider rejected", "backend", b.Name(), "err", err)
				}
			}
		}
		if err := b.Init(); err != nil {
			Logger().Debug("backend init failed", "backend", b.Name(), "err", err)
			lastErr = err
			continue
		}

		ctx, err := b.CreateContext(surface, p.attrs)
		if err != nil {
			Logger().Debug("tier creation failed",
				"key", key, "backend", b.Name(), "tier", b.Tier().String(), "err", err)
			lastErr = err
			continue
		}

		if ctx.Tier() < best {
			p.fallbacks++
			Logger().Warn("capability fallback",
				"key", key, "tier", ctx.Tier().String(), "wanted", best.String())
		}
		return ctx, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrSurfaceUnusable, lastErr)
	}
	return nil, ErrSurfaceUnusable
}

// removeLocked unsubscribes, closes, and unlinks an entry.
// Caller must hold mu.
func (p *Pool) removeLocked(e *entry) {
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
	e.ctx.Close()
	p.lru.Remove(e.element)
	delete(p.entries, e.key)
}

// entryEvents adapts pool-side loss/restore handling to one entry.
// The ctx field guards against stale notifications: if the key was
// re-acquired with a fresh context in the meantime, old notifications
// must not touch the new entry.
type entryEvents struct {
	pool *Pool
	key  string
	ctx  RenderingContext
}

// ContextLost marks the entry lost and inactive. The next Acquire for
// the key detects the flag and re-creates instead of reusing.
func (ev *entryEvents) ContextLost() {
	p := ev.pool
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.entries[ev.key]
	if !ok || e.ctx != ev.ctx {
		return
	}
	e.lost = true
	e.active = false
	e.lastUsedAt = p.now()
	Logger().Warn("context lost", "key", ev.key, "owner", e.owner)
}

// ContextRestored removes the entry outright. Restoration does not
// resurrect GPU state, so the only correct transition is removal
// followed by a fresh tiered acquisition on the caller's next Acquire.
func (ev *entryEvents) ContextRestored() {
	p := ev.pool
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.entries[ev.key]
	if !ok || e.ctx != ev.ctx {
		return
	}
	p.removeLocked(e)
	Logger().Debug("context restored, entry removed for re-creation", "key", ev.key)
}
