package ctxpool

import "time"

// Default pool configuration.
const (
	// DefaultMaxContexts is the capacity ceiling, matched to the
	// typical platform limit on concurrent accelerated contexts.
	DefaultMaxContexts = 16

	// DefaultCleanupInterval is how often the periodic idle sweep runs.
	DefaultCleanupInterval = 30 * time.Second

	// DefaultMaxIdleTime is how long an inactive entry may sit unused
	// before the idle sweep reclaims it.
	DefaultMaxIdleTime = 60 * time.Second

	// DefaultReserveMargin is the headroom kept below the ceiling so an
	// imminent creation never lands exactly on the limit.
	DefaultReserveMargin = 2
)

// Option configures a Pool during creation.
// Use functional options to customize Pool behavior.
//
// Example:
//
//	// Default configuration
//	pool := ctxpool.New()
//
//	// Small pool with a hard ceiling
//	pool := ctxpool.New(
//	    ctxpool.WithMaxContexts(4),
//	    ctxpool.WithHardCap(true),
//	)
type Option func(*poolOptions)

// poolOptions holds optional configuration for Pool creation.
type poolOptions struct {
	maxContexts     int
	cleanupInterval time.Duration
	maxIdleTime     time.Duration
	reserveMargin   int
	hardCap         bool
	attrs           ContextAttributes
	backends        []Backend
	deviceProvider  any
	now             func() time.Time
}

// defaultPoolOptions returns the default pool options.
func defaultPoolOptions() poolOptions {
	return poolOptions{
		maxContexts:     DefaultMaxContexts,
		cleanupInterval: DefaultCleanupInterval,
		maxIdleTime:     DefaultMaxIdleTime,
		reserveMargin:   DefaultReserveMargin,
		attrs:           DefaultContextAttributes(),
		now:             time.Now,
	}
}

// WithMaxContexts sets the capacity ceiling. Values below 1 keep the
// default.
func WithMaxContexts(n int) Option {
	return func(o *poolOptions) {
		if n >= 1 {
			o.maxContexts = n
		}
	}
}

// WithCleanupInterval sets the periodic idle-sweep interval.
// A zero or negative interval disables the periodic sweep; callers can
// still run it by hand via [Pool.CleanupIdle].
func WithCleanupInterval(d time.Duration) Option {
	return func(o *poolOptions) {
		o.cleanupInterval = d
	}
}

// WithMaxIdleTime sets how long an inactive entry survives between
// uses before the idle sweep reclaims it. Values <= 0 keep the default.
func WithMaxIdleTime(d time.Duration) Option {
	return func(o *poolOptions) {
		if d > 0 {
			o.maxIdleTime = d
		}
	}
}

// WithReserveMargin sets the headroom below the ceiling at which
// pressure cleanup starts. Negative values keep the default.
func WithReserveMargin(n int) Option {
	return func(o *poolOptions) {
		if n >= 0 {
			o.reserveMargin = n
		}
	}
}

// WithHardCap makes the ceiling a hard refusal: when the pool is full
// and nothing inactive can be evicted, Acquire returns
// [ErrPoolExhausted] instead of creating past the ceiling.
//
// The default is the soft ceiling: creation proceeds under pressure
// with a rate-limited warning. The soft behavior tolerates bursts of
// active viewports at the cost of transiently oversubscribing the
// platform limit.
func WithHardCap(hard bool) Option {
	return func(o *poolOptions) {
		o.hardCap = hard
	}
}

// WithAttributes sets the creation attributes applied to every tier
// attempt, replacing [DefaultContextAttributes].
func WithAttributes(attrs ContextAttributes) Option {
	return func(o *poolOptions) {
		o.attrs = attrs
	}
}

// WithBackends sets an explicit tier chain, bypassing the registry.
// Backends are attempted in the given order. Use this for dependency
// injection in tests or to pin a specific backend.
func WithBackends(backends ...Backend) Option {
	return func(o *poolOptions) {
		o.backends = backends
	}
}

// WithDeviceProvider passes a shared GPU device provider
// (gpucontext.DeviceProvider) to every backend that supports device
// sharing. Hosts that already own a GPU device use this to avoid a
// second instance.
func WithDeviceProvider(provider any) Option {
	return func(o *poolOptions) {
		o.deviceProvider = provider
	}
}

// WithClock overrides the pool's time source. Tests use this to drive
// idle eviction deterministically.
func WithClock(now func() time.Time) Option {
	return func(o *poolOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// AcquireOption configures a single Acquire call.
type AcquireOption func(*acquireOptions)

// acquireOptions holds optional per-acquisition settings.
type acquireOptions struct {
	owner string
}

// WithOwner attaches a caller-supplied correlation id (for example the
// logical viewport that owns the surface) to the entry. Diagnostics
// only: it appears in logs and has no effect on pool behavior.
func WithOwner(owner string) AcquireOption {
	return func(o *acquireOptions) {
		o.owner = owner
	}
}
