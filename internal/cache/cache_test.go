package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ttl = 900 * time.Second

func TestSetGetRoundTrip(t *testing.T) {
	c := New(ttl, clockwork.NewFakeClock())

	c.Set("feed:2025-06-15:2025-06-15", []string{"a", "b"})
	v, ok := c.Get("feed:2025-06-15:2025-06-15")

	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, v)
}

func TestGetMissingKey(t *testing.T) {
	c := New(ttl, clockwork.NewFakeClock())
	_, ok := c.Get("nope")
	assert.False(t, ok)
}

func TestExpiryBoundary(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := New(ttl, clock)
	c.Set("k", 42)

	clock.Advance(ttl - time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok, "entry still live just inside the TTL")

	clock.Advance(2 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok, "entry absent once the TTL elapsed")
	assert.Zero(t, c.Len(), "expired entry evicted lazily on read")
}

func TestSetRefreshesCreatedAt(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := New(ttl, clock)
	c.Set("k", "old")

	clock.Advance(ttl / 2)
	c.Set("k", "new")
	clock.Advance(ttl/2 + time.Second)

	v, ok := c.Get("k")
	require.True(t, ok, "overwrite restarts the TTL window")
	assert.Equal(t, "new", v)
}

func TestGetOrComputeCachesResult(t *testing.T) {
	c := New(ttl, clockwork.NewFakeClock())
	calls := 0
	producer := func(context.Context) (any, error) {
		calls++
		return "value", nil
	}

	v, err := c.GetOrCompute(context.Background(), "k", producer)
	require.NoError(t, err)
	assert.Equal(t, "value", v)

	v, err = c.GetOrCompute(context.Background(), "k", producer)
	require.NoError(t, err)
	assert.Equal(t, "value", v)
	assert.Equal(t, 1, calls)
}

func TestGetOrComputeCountsOneMissPerCompute(t *testing.T) {
	c := New(ttl, clockwork.NewFakeClock())
	before := testutil.ToFloat64(misses)
	hitsBefore := testutil.ToFloat64(hits)

	_, err := c.GetOrCompute(context.Background(), "k", func(context.Context) (any, error) {
		return "value", nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(misses)-before,
		"the in-flight recheck must not count a second miss")

	_, err = c.GetOrCompute(context.Background(), "k", func(context.Context) (any, error) {
		return "value", nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(misses)-before)
	assert.Equal(t, 1.0, testutil.ToFloat64(hits)-hitsBefore)
}

func TestGetOrComputeFailureNotCached(t *testing.T) {
	c := New(ttl, clockwork.NewFakeClock())
	boom := errors.New("upstream down")
	calls := 0

	_, err := c.GetOrCompute(context.Background(), "k", func(context.Context) (any, error) {
		calls++
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
	assert.Zero(t, c.Len(), "failures leave no entry behind")

	v, err := c.GetOrCompute(context.Background(), "k", func(context.Context) (any, error) {
		calls++
		return "recovered", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "recovered", v)
	assert.Equal(t, 2, calls, "the producer is retried after a failure")
}

func TestGetOrComputeSingleFlight(t *testing.T) {
	c := New(ttl, clockwork.NewFakeClock())
	const callers = 16

	var calls atomic.Int32
	gate := make(chan struct{})
	producer := func(context.Context) (any, error) {
		calls.Add(1)
		<-gate
		return "shared", nil
	}

	var started, done sync.WaitGroup
	results := make([]any, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		started.Add(1)
		done.Add(1)
		go func(i int) {
			defer done.Done()
			started.Done()
			results[i], errs[i] = c.GetOrCompute(context.Background(), "k", producer)
		}(i)
	}
	started.Wait()
	close(gate)
	done.Wait()

	assert.Equal(t, int32(1), calls.Load(), "concurrent misses share one producer run")
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "shared", results[i])
	}
}

func TestConcurrentSetAndGet(t *testing.T) {
	c := New(ttl, clockwork.NewFakeClock())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set("k", j)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Get("k")
			}
		}()
	}
	wg.Wait()

	_, ok := c.Get("k")
	assert.True(t, ok)
}

func TestKeyConstruction(t *testing.T) {
	assert.Equal(t, "feed:2025-06-15:2025-06-16", Key("feed", "2025-06-15", "2025-06-16"))
	assert.Equal(t, "stats:", Key("stats"))
	assert.NotEqual(t, Key("closest", "2025-06-15", "10"), Key("closest", "2025-06-15", "1"),
		"distinct parameter tuples never collide")
}
