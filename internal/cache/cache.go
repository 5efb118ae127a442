// Package cache provides the in-memory TTL cache that fronts the upstream
// feed. One instance is constructed at startup and shared by all requests;
// there is no package-level state.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/singleflight"

	"neowatch/internal/ports"
)

var (
	hits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "neowatch_cache_hits_total",
		Help: "Cache lookups served from a live entry.",
	})
	misses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "neowatch_cache_misses_total",
		Help: "Cache lookups that found no live entry.",
	})
	expirations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "neowatch_cache_expirations_total",
		Help: "Entries evicted lazily after their TTL elapsed.",
	})
)

type entry struct {
	value     any
	createdAt time.Time
}

// Memory is a mutex-guarded map with a fixed TTL and single-flight
// computation per key.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	clock   clockwork.Clock
	flight  singleflight.Group
}

var _ ports.Cache = (*Memory)(nil)

// New builds a cache with the given TTL. A nil clock means the real one.
func New(ttl time.Duration, clock clockwork.Clock) *Memory {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Memory{
		entries: make(map[string]entry),
		ttl:     ttl,
		clock:   clock,
	}
}

func (m *Memory) live(e entry) bool {
	return m.clock.Now().Before(e.createdAt.Add(m.ttl))
}

// lookup returns the value for key iff present and unexpired, without
// touching the hit/miss counters. Expired entries are removed on the way out.
func (m *Memory) lookup(key string) (any, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !m.live(e) {
		m.mu.Lock()
		// Re-check: a concurrent Set may have refreshed the entry.
		if cur, still := m.entries[key]; still && !m.live(cur) {
			delete(m.entries, key)
			expirations.Inc()
		}
		m.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Get returns the value for key iff present and unexpired.
func (m *Memory) Get(key string) (any, bool) {
	v, ok := m.lookup(key)
	if ok {
		hits.Inc()
	} else {
		misses.Inc()
	}
	return v, ok
}

// Set stores value under key, stamping the current time. Replacement is
// atomic under the lock; readers never observe a torn entry.
func (m *Memory) Set(key string, value any) {
	m.mu.Lock()
	m.entries[key] = entry{value: value, createdAt: m.clock.Now()}
	m.mu.Unlock()
}

// GetOrCompute returns the cached value on hit. On miss it runs producer at
// most once per key across concurrent callers, caches the result and hands
// it to everyone waiting. A producer error is returned to all waiters and
// leaves no entry behind, so the next call retries.
func (m *Memory) GetOrCompute(ctx context.Context, key string, producer ports.Producer) (any, error) {
	if v, ok := m.Get(key); ok {
		return v, nil
	}
	v, err, _ := m.flight.Do(key, func() (any, error) {
		// A racing caller may have filled the entry between our miss and
		// winning the flight. The recheck skips the counters so one real
		// miss is never counted twice.
		if v, ok := m.lookup(key); ok {
			return v, nil
		}
		v, err := producer(ctx)
		if err != nil {
			return nil, err
		}
		m.Set(key, v)
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Len reports the number of physically retained entries, expired or not.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Key builds a deterministic cache key from the endpoint name and its
// query-affecting parameters. Distinct tuples never collide because parts
// are joined with a separator no parameter contains.
func Key(endpoint string, params ...string) string {
	return endpoint + ":" + strings.Join(params, ":")
}
