package ctxpool

import (
	"errors"
	"sort"
	"sync"
)

// Backend produces rendering contexts for one capability tier.
//
// The software backend ships with this package and is always
// registered. Accelerated backends live in sub-packages and register
// themselves from init(), enabled by blank import:
//
//	import _ "github.com/gogpu/ctxpool/wgpu" // enable GPU tiers
//
// A backend serves many contexts; Init is called once before the first
// CreateContext and Close once when the process is done with it.
type Backend interface {
	// Name returns the backend identifier (e.g., "wgpu-full", "software").
	Name() string

	// Tier returns the capability tier this backend produces.
	Tier() Tier

	// Init prepares shared backend resources (GPU instance, adapter).
	// Init is called lazily before the first creation attempt and must
	// be idempotent. An Init error disables the backend for the
	// current chain walk but is not fatal: lower tiers absorb it.
	Init() error

	// CreateContext attempts to materialize a context for the surface.
	// A nil error means the returned context is live and owned by the
	// caller (the pool). Any error counts as a tier refusal and the
	// next tier is attempted.
	CreateContext(surface Surface, attrs ContextAttributes) (RenderingContext, error)

	// Close releases shared backend resources. Contexts created by the
	// backend must be closed before the backend itself.
	Close()
}

// ErrBackendUnavailable is returned by backends whose platform support
// is absent (no GPU, headless host). It is absorbed by tier fallback.
var ErrBackendUnavailable = errors.New("ctxpool: backend not available")

// registeredBackend pairs a backend with its registration order so the
// chain is stable when two backends share a tier.
type registeredBackend struct {
	backend Backend
	order   int
}

var (
	registryMu       sync.RWMutex
	backendFactories = make(map[string]registeredBackend)
	registerSeq      int
)

// RegisterBackend registers a backend for tier-chain selection.
// This is typically called from init() functions in backend packages.
// Registering a backend with a name that is already registered replaces
// the previous one.
func RegisterBackend(b Backend) {
	if b == nil {
		return
	}
	registryMu.Lock()
	defer registryMu.Unlock()

	registerSeq++
	backendFactories[b.Name()] = registeredBackend{backend: b, order: registerSeq}
	propagateLogger(b, Logger())
}

// UnregisterBackend removes a backend from the registry.
// This is useful for testing.
func UnregisterBackend(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backendFactories, name)
}

// AvailableBackends returns the names of all registered backends.
func AvailableBackends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backendFactories))
	for name := range backendFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backendFactories[name]
	return ok
}

// tierChain returns the registered backends ordered highest tier first.
// Backends sharing a tier keep registration order.
func tierChain() []Backend {
	registryMu.RLock()
	defer registryMu.RUnlock()

	regs := make([]registeredBackend, 0, len(backendFactories))
	for _, r := range backendFactories {
		regs = append(regs, r)
	}
	sort.Slice(regs, func(i, j int) bool {
		if regs[i].backend.Tier() != regs[j].backend.Tier() {
			return regs[i].backend.Tier() > regs[j].backend.Tier()
		}
		return regs[i].order < regs[j].order
	})

	chain := make([]Backend, len(regs))
	for i, r := range regs {
		chain[i] = r.backend
	}
	return chain
}

func init() {
	// The software tier is the guaranteed fallback and is always present.
	RegisterBackend(NewSoftwareBackend())
}
