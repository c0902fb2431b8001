// Package cache holds the current-business-day cache: a fixed-TTL read-through
// over Redis with an in-process single-flight map, so that many UI clients
// polling "current day" in the same window share one query. It is a caching
// optimization, not a correctness mechanism: the database remains the sole
// arbiter and every mutating operation must call Invalidate.
package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/costadanilofreitas/chefia-pos-sub001/internal/model"
)

const keyPrefix = "bizday:current:"

// FetchFunc loads the current business day from storage.
// A nil day with nil error is the valid "no open day" state and is cached too.
type FetchFunc func(ctx context.Context) (*model.BusinessDay, error)

type call struct {
	done chan struct{}
	day  *model.BusinessDay
	err  error
}

// CurrentDay is owned by the composition root and injected where needed,
// so tests can construct and reset their own instance.
type CurrentDay struct {
	rdb *redis.Client // nil disables the Redis layer (unit tests)
	ttl time.Duration

	mu       sync.Mutex
	inflight map[string]*call
}

func NewCurrentDay(rdb *redis.Client, ttl time.Duration) *CurrentDay {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &CurrentDay{
		rdb:      rdb,
		ttl:      ttl,
		inflight: make(map[string]*call),
	}
}

// Get returns the current business day for the store, consulting Redis first,
// collapsing concurrent misses into a single fetch, and writing the result
// back with the configured TTL. Fetch errors are never cached.
func (c *CurrentDay) Get(ctx context.Context, storeID string, fetch FetchFunc) (*model.BusinessDay, error) {
	key := keyPrefix + storeID

	if day, ok := c.fromRedis(ctx, key); ok {
		return day, nil
	}

	c.mu.Lock()
	if cl, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		select {
		case <-cl.done:
			return cl.day, cl.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	cl := &call{done: make(chan struct{})}
	c.inflight[key] = cl
	c.mu.Unlock()

	cl.day, cl.err = fetch(ctx)
	close(cl.done)

	c.mu.Lock()
	delete(c.inflight, key)
	c.mu.Unlock()

	if cl.err == nil {
		c.toRedis(ctx, key, cl.day)
	}
	return cl.day, cl.err
}

// Invalidate drops the cached snapshot. Called after every mutating
// business-day or cashier operation.
func (c *CurrentDay) Invalidate(ctx context.Context, storeID string) {
	if c.rdb != nil {
		_ = c.rdb.Del(ctx, keyPrefix+storeID).Err()
	}
}

// cachedDay wraps the payload so that "no open day" is distinguishable from
// a missing key.
type cachedDay struct {
	Day *model.BusinessDay `json:"day"`
}

func (c *CurrentDay) fromRedis(ctx context.Context, key string) (*model.BusinessDay, bool) {
	if c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var cd cachedDay
	if err := json.Unmarshal(raw, &cd); err != nil {
		return nil, false
	}
	return cd.Day, true
}

func (c *CurrentDay) toRedis(ctx context.Context, key string, day *model.BusinessDay) {
	if c.rdb == nil {
		return
	}
	// Best effort. A cache write failure only costs a future query.
	if b, err := json.Marshal(cachedDay{Day: day}); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
}
