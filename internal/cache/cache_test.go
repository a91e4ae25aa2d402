package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newTestCache(ttl time.Duration) (*Cache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New(ttl)
	c.now = clock.Now
	return c, clock
}

func countingFetch(calls *atomic.Int32, value string) func(context.Context) (string, error) {
	return func(context.Context) (string, error) {
		calls.Add(1)
		return value, nil
	}
}

// ── Query ────────────────────────────────────────────────────────────────────

func TestQuery_FreshEntrySkipsFetch(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	var calls atomic.Int32
	ctx := context.Background()

	v, err := Query(ctx, c, KeyWriteups, countingFetch(&calls, "a"))
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	v, err = Query(ctx, c, KeyWriteups, countingFetch(&calls, "b"))
	require.NoError(t, err)
	assert.Equal(t, "a", v)
	assert.EqualValues(t, 1, calls.Load())
}

func TestQuery_ExpiredEntryRefetches(t *testing.T) {
	c, clock := newTestCache(time.Minute)
	var calls atomic.Int32
	ctx := context.Background()

	_, err := Query(ctx, c, KeyWriteups, countingFetch(&calls, "a"))
	require.NoError(t, err)

	clock.Advance(time.Minute)

	v, err := Query(ctx, c, KeyWriteups, countingFetch(&calls, "b"))
	require.NoError(t, err)
	assert.Equal(t, "b", v)
	assert.EqualValues(t, 2, calls.Load())
}

func TestQuery_FailureIsNotCached(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := Query(ctx, c, "k", func(context.Context) (int, error) { return 0, boom })
	require.ErrorIs(t, err, boom)
	assert.Zero(t, c.Len())

	v, err := Query(ctx, c, "k", func(context.Context) (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestQuery_ConcurrentCallersShareOneFetch(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	var calls atomic.Int32
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once

	fetch := func(context.Context) (string, error) {
		calls.Add(1)
		once.Do(func() { close(started) })
		<-release
		return "shared", nil
	}

	const callers = 10
	results := make([]string, callers)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _ = Query(context.Background(), c, KeyWriteups, fetch)
	}()
	<-started

	for i := 1; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Query(context.Background(), c, KeyWriteups, fetch)
		}(i)
	}

	// give the waiters a moment to join the in-flight call
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, calls.Load())
	for _, r := range results {
		assert.Equal(t, "shared", r)
	}
}

func TestQuery_CancelledCallerStopsWaiting(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	release := make(chan struct{})
	done := make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	go func() {
		defer close(done)
		_, _ = Query(context.Background(), c, "slow", func(context.Context) (int, error) {
			<-release
			return 1, nil
		})
	}()

	// a separate caller with a cancelled ctx for the same key returns at once
	time.Sleep(10 * time.Millisecond)
	_, err := Query(ctx, c, "slow", func(context.Context) (int, error) { return 2, nil })
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	<-done
}

func TestQuery_UnexpectedType(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	ctx := context.Background()

	_, err := Query(ctx, c, "k", func(context.Context) (int, error) { return 1, nil })
	require.NoError(t, err)

	_, err = Query(ctx, c, "k", func(context.Context) (string, error) { return "x", nil })
	assert.ErrorIs(t, err, ErrUnexpectedType)
}

// ── Invalidate / Clear ───────────────────────────────────────────────────────

func TestInvalidate(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	var calls atomic.Int32
	ctx := context.Background()

	_, _ = Query(ctx, c, KeyWriteup("lame"), countingFetch(&calls, "a"))
	_, _ = Query(ctx, c, KeyWriteups, countingFetch(&calls, "list"))

	c.Invalidate(KeyWriteup("lame"))
	assert.Equal(t, 1, c.Len())

	v, err := Query(ctx, c, KeyWriteup("lame"), countingFetch(&calls, "b"))
	require.NoError(t, err)
	assert.Equal(t, "b", v)
	assert.EqualValues(t, 3, calls.Load())
}

func TestInvalidate_DuringFetchDropsResult(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	ctx := context.Background()

	_, err := Query(ctx, c, "k", func(context.Context) (string, error) {
		c.Invalidate("k")
		return "stale", nil
	})
	require.NoError(t, err)
	assert.Zero(t, c.Len())
}

func TestClear(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	var calls atomic.Int32
	ctx := context.Background()

	_, _ = Query(ctx, c, "a", countingFetch(&calls, "a"))
	_, _ = Query(ctx, c, "b", countingFetch(&calls, "b"))
	require.Equal(t, 2, c.Len())

	c.Clear()
	assert.Zero(t, c.Len())
}

func TestClear_DuringFetchStartsNewFetch(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})

	staleDone := make(chan string, 1)
	go func() {
		v, _ := Query(ctx, c, KeyWriteups, func(context.Context) (string, error) {
			close(started)
			<-release
			return "stale", nil
		})
		staleDone <- v
	}()
	<-started

	c.Clear()

	v, err := Query(ctx, c, KeyWriteups, func(context.Context) (string, error) {
		return "fresh", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)

	close(release)
	assert.Equal(t, "stale", <-staleDone)

	v, err = Query(ctx, c, KeyWriteups, func(context.Context) (string, error) {
		return "unexpected", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", v, "the detached fetch must not overwrite the newer entry")
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "writeups", KeyWriteups)
	assert.Equal(t, "writeup:lame", KeyWriteup("lame"))
}
