package ctxpool

import (
	"time"
)

// CleanupIdle destroys every inactive entry that has sat unused longer
// than the configured idle threshold. The periodic sweep calls this on
// its interval; hosts also call it from a page-visibility-hidden or
// app-background signal to shed cached contexts early.
func (p *Pool) CleanupIdle() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.cleanupIdleLocked(p.now())
}

// cleanupIdleLocked applies the idle rule to inactive entries.
// Caller must hold mu. Guarded against reentrant invocation.
func (p *Pool) cleanupIdleLocked(now time.Time) {
	if p.cleaning {
		return
	}
	p.cleaning = true
	defer func() { p.cleaning = false }()

	var victims []*entry
	for el := p.lru.Back(); el != nil; el = el.Prev() {
		e := el.Value.(*entry)
		if !e.active && now.Sub(e.lastUsedAt) > p.maxIdleTime {
			victims = append(victims, e)
		}
	}
	for _, e := range victims {
		p.removeLocked(e)
		p.evictions++
		Logger().Debug("idle context evicted",
			"key", e.key, "idle", now.Sub(e.lastUsedAt), "owner", e.owner)
	}
}

// makeRoomLocked runs pressure cleanup ahead of a creation attempt.
// Caller must hold mu.
//
// Near the ceiling it first applies the idle rule, then evicts the
// oldest-by-last-used inactive entries until a slot exists. When no
// inactive entry remains, the soft ceiling proceeds anyway with a
// rate-limited warning; the hard cap refuses.
func (p *Pool) makeRoomLocked() error {
	if len(p.entries) >= p.maxContexts-p.reserveMargin {
		p.cleanupIdleLocked(p.now())
	}

	for len(p.entries) >= p.maxContexts {
		if p.evictOldestInactiveLocked() {
			continue
		}
		if p.hardCap {
			return ErrPoolExhausted
		}
		if p.pressure.Allow() {
			Logger().Warn("capacity pressure: creating past ceiling",
				"pool_size", len(p.entries), "max_contexts", p.maxContexts)
		}
		break
	}
	return nil
}

// evictOldestInactiveLocked removes the least-recently-used inactive
// entry. Caller must hold mu. Returns false when every entry is active.
func (p *Pool) evictOldestInactiveLocked() bool {
	for el := p.lru.Back(); el != nil; el = el.Prev() {
		e := el.Value.(*entry)
		if e.active {
			continue
		}
		p.removeLocked(e)
		p.evictions++
		Logger().Debug("context evicted under pressure", "key", e.key, "owner", e.owner)
		return true
	}
	return false
}

// ForceCleanup is the emergency escape hatch for memory-pressure
// signals. It retains only the floor(maxContexts/2) most-recently-used
// active entries and destroys everything else unconditionally,
// including active-but-stale entries. Deliberately aggressive; not part
// of routine operation.
func (p *Pool) ForceCleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	keep := p.maxContexts / 2
	var survivors int
	var victims []*entry

	// The LRU list is already ordered most-recent first.
	for el := p.lru.Front(); el != nil; el = el.Next() {
		e := el.Value.(*entry)
		if e.active && survivors < keep {
			survivors++
			continue
		}
		victims = append(victims, e)
	}
	for _, e := range victims {
		p.removeLocked(e)
		p.evictions++
	}

	Logger().Warn("emergency cleanup",
		"destroyed", len(victims), "retained", survivors)
}

// sweepLoop runs the periodic idle sweep until Close.
func (p *Pool) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			p.CleanupIdle()
		}
	}
}
