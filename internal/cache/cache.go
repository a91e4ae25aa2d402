// Package cache implements the keyed request cache the catalog queries go
// through. Fresh entries are served from memory; concurrent misses of the
// same key share one in-flight fetch.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/go-writeups/internal/logger"
)

// ErrUnexpectedType is returned when a key holds a value of another type than
// the one requested.
var ErrUnexpectedType = errors.New("cached value has unexpected type")

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is a TTL cache keyed by string. The zero value is not usable; create
// one with [New].
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu         sync.Mutex
	entries    map[string]entry
	generation uint64
	// queried holds every key ever fetched, so Clear can detach fetches
	// that are still in flight.
	queried map[string]struct{}

	group singleflight.Group
}

// New returns a Cache whose entries stay fresh for ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
		queried: make(map[string]struct{}),
	}
}

// Query returns the cached value for key when it is fresh. Otherwise it calls
// fetch, stores a successful result and returns it. Failed fetches are not
// stored. Concurrent calls for the same key wait for a single fetch.
//
// A caller whose ctx is done stops waiting, but the shared fetch keeps
// running for the other callers.
func Query[T any](ctx context.Context, c *Cache, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if v, ok := c.lookup(key); ok {
		typed, ok := v.(T)
		if !ok {
			return zero, fmt.Errorf("%w: key %q", ErrUnexpectedType, key)
		}
		return typed, nil
	}

	gen := c.beginFetch(key)
	ch := c.group.DoChan(key, func() (any, error) {
		log := logger.FromContext(ctx)
		log.Debug().Str("func", "cache.Query").Str("key", key).Msg("cache miss, fetching")

		v, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.store(key, v, gen)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		typed, ok := res.Val.(T)
		if !ok {
			return zero, fmt.Errorf("%w: key %q", ErrUnexpectedType, key)
		}
		return typed, nil
	}
}

// Invalidate drops key. A fetch of key already in flight will not store its
// result.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	c.generation++
	c.group.Forget(key)
}

// Clear drops every entry. Fetches already in flight will not store their
// results, and later queries do not join them.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.queried {
		c.group.Forget(key)
	}
	c.entries = make(map[string]entry)
	c.generation++
}

// Len returns the number of stored entries, fresh or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) lookup(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// beginFetch records key as queried and returns the generation its result
// belongs to.
func (c *Cache) beginFetch(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.queried[key] = struct{}{}
	return c.generation
}

func (c *Cache) store(key string, value any, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return
	}
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(c.ttl)}
}
