package entitlement

import (
	"context"
	"sync"
	"time"
)

// Fetcher loads the entitlement record from the backend.
type Fetcher func(ctx context.Context) (Record, error)

// Cache is a small read-through cache for entitlement lookups. Rapid form
// edits re-check entitlement often; the TTL (15 s by default) keeps that off
// the network. The clock is injectable so expiry is testable without timers.
type Cache struct {
	mu        sync.Mutex
	fetch     Fetcher
	ttl       time.Duration
	now       func() time.Time
	rec       Record
	fetchedAt time.Time
}

const DefaultTTL = 15 * time.Second

func NewCache(fetch Fetcher, ttl time.Duration, now func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Cache{fetch: fetch, ttl: ttl, now: now}
}

// Get returns the cached record when fresh, otherwise fetches and caches.
// Fetch errors are returned without poisoning the cache.
func (c *Cache) Get(ctx context.Context) (Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.fetchedAt.IsZero() && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.rec, nil
	}

	rec, err := c.fetch(ctx)
	if err != nil {
		return Record{}, err
	}

	c.rec = rec
	c.fetchedAt = c.now()
	return rec, nil
}

// Put replaces the cached record, e.g. from a purchase-record response.
func (c *Cache) Put(rec Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rec = rec
	c.fetchedAt = c.now()
}

// Invalidate drops the cached record. Must be called right after a
// successful purchase record so the next check sees the new state.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rec = Record{}
	c.fetchedAt = time.Time{}
}
