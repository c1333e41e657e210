package ctxpool

import (
	"fmt"
	"time"
)

// Stats is a read-only snapshot of pool state for diagnostics.
type Stats struct {
	// Total is the number of pooled entries.
	Total int

	// Active is the number of entries with a live foreground user.
	Active int

	// Inactive is the number of released-but-cached entries.
	Inactive int

	// OldestAge is the age of the oldest entry by creation time.
	// Zero when the pool is empty.
	OldestAge time.Duration

	// NewestAge is the age of the newest entry by creation time.
	// Zero when the pool is empty.
	NewestAge time.Duration

	// Created is the total number of contexts created over the pool's
	// lifetime.
	Created uint64

	// Evictions is the total number of entries destroyed by idle,
	// pressure, or emergency cleanup.
	Evictions uint64

	// Fallbacks is the total number of acquisitions that landed below
	// the best available tier.
	Fallbacks uint64
}

// String returns a human-readable summary of the stats.
func (s Stats) String() string {
	return fmt.Sprintf("Pool[%d entries, %d active, %d inactive, oldest %v, %d created, %d evicted, %d fallbacks]",
		s.Total, s.Active, s.Inactive, s.OldestAge.Round(time.Millisecond),
		s.Created, s.Evictions, s.Fallbacks)
}

// Stats returns a snapshot of pool state. It never mutates the pool:
// entry recency, active flags, and LRU order are untouched.
func (p *Pool) Stats() Stats {
	p.mu.RLock()
	defer p.mu.RUnlock()

	now := p.now()
	s := Stats{
		Total:     len(p.entries),
		Created:   p.created,
		Evictions: p.evictions,
		Fallbacks: p.fallbacks,
	}

	first := true
	for _, e := range p.entries {
		if e.active {
			s.Active++
		} else {
			s.Inactive++
		}
		age := now.Sub(e.createdAt)
		if first {
			s.OldestAge, s.NewestAge = age, age
			first = false
			continue
		}
		if age > s.OldestAge {
			s.OldestAge = age
		}
		if age < s.NewestAge {
			s.NewestAge = age
		}
	}
	return s
}
