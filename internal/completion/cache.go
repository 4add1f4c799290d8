package completion

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL is how long fetched completion values stay fresh.
const DefaultTTL = 5 * time.Minute

// FetchFunc loads completion values for one cache key.
type FetchFunc func(ctx context.Context) ([]string, error)

// CompletionCache memoizes dynamically fetched completion values
// (namespaces, resource names) under a TTL. It also memoizes the
// in-flight fetch per key: a second request for the same key issued
// before the first resolves waits for that fetch instead of hitting
// the network again.
type CompletionCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*cacheEntry

	// now is swappable for tests.
	now func() time.Time
}

type cacheEntry struct {
	values    []string
	err       error
	fetchedAt time.Time

	// ready is closed when the fetch resolves.
	ready chan struct{}
}

// NewCompletionCache creates a cache with the given TTL; zero means
// DefaultTTL.
func NewCompletionCache(ttl time.Duration) *CompletionCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CompletionCache{
		ttl:     ttl,
		entries: make(map[string]*cacheEntry),
		now:     time.Now,
	}
}

// GetOrFetch returns the cached values for key, fetching them once on
// a miss or after expiry. Failed fetches are not cached; the error is
// returned to every waiter of that fetch and the next call retries.
func (c *CompletionCache) GetOrFetch(ctx context.Context, key string, fetch FetchFunc) ([]string, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		select {
		case <-e.ready:
			if e.err == nil && c.now().Sub(e.fetchedAt) < c.ttl {
				values := e.values
				c.mu.Unlock()
				return values, nil
			}
			// Expired; fall through and refetch.
		default:
			// Fetch in flight: wait on it rather than duplicating.
			c.mu.Unlock()
			<-e.ready
			return e.values, e.err
		}
	}

	e := &cacheEntry{ready: make(chan struct{})}
	c.entries[key] = e
	c.mu.Unlock()

	values, err := fetch(ctx)

	c.mu.Lock()
	e.values = values
	e.err = err
	e.fetchedAt = c.now()
	if err != nil {
		delete(c.entries, key)
	}
	close(e.ready)
	c.mu.Unlock()

	return values, err
}

// Invalidate drops the entry for key, if present and resolved.
func (c *CompletionCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		select {
		case <-e.ready:
			delete(c.entries, key)
		default:
			// Leave in-flight fetches alone.
		}
	}
}
