// Package cache is a TTL cache layered over a kvstore.Store.
//
// Entries are JSON records {"value": ..., "expiry": <unix ms>} stored under a
// fixed key prefix so the store can hold unrelated data. Expiry is lazy: an
// entry is visible only while now < expiry, and a read that finds an expired
// entry deletes it. Storage failures never reach the caller of Set; reads
// report them through Result so callers may tell "not cached" from "broken".
package cache

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/meysam81/oneoffctl/internal/kvstore"
	"github.com/meysam81/oneoffctl/internal/logger"
)

const (
	DefaultPrefix = "oneoff_cache_"
	DefaultTTL    = 5 * time.Minute
)

type Cache struct {
	store  kvstore.Store
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Cache)

func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		if prefix != "" {
			c.prefix = prefix
		}
	}
}

func WithDefaultTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

func New(store kvstore.Store, opts ...Option) *Cache {
	c := &Cache{
		store:  store,
		prefix: DefaultPrefix,
		ttl:    DefaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// record is the persisted shape of one entry.
type record struct {
	Value  json.RawMessage `json:"value"`
	Expiry int64           `json:"expiry"`
}

// Set stores value for ttl (the default TTL when ttl <= 0). Failures are
// logged and swallowed.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl
	}

	raw, err := json.Marshal(value)
	if err != nil {
		logger.Warn("cache write failed for %q: %v", key, err)
		return
	}
	data, err := json.Marshal(record{
		Value:  raw,
		Expiry: c.now().Add(ttl).UnixMilli(),
	})
	if err != nil {
		logger.Warn("cache write failed for %q: %v", key, err)
		return
	}

	if err := c.store.Set(c.prefix+key, data); err != nil {
		logger.Warn("cache write failed for %q: %v", key, err)
	}
}

// Lookup reads key and reports whether it was a hit, a miss or a failure.
func (c *Cache) Lookup(key string) Result {
	full := c.prefix + key

	data, ok, err := c.store.Get(full)
	if err != nil {
		logger.Warn("cache read failed for %q: %v", key, err)
		return failed(err)
	}
	if !ok {
		return miss()
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		logger.Warn("cache read failed for %q: %v", key, err)
		return failed(err)
	}

	if c.now().UnixMilli() >= rec.Expiry {
		if err := c.store.Delete(full); err != nil {
			logger.Warn("cache evict failed for %q: %v", key, err)
		}
		return miss()
	}

	return hit(rec.Value)
}

// Get decodes a cached value into T. Misses, storage failures and values
// that do not decode into T all report false.
func Get[T any](c *Cache, key string) (T, bool) {
	var zero T

	res := c.Lookup(key)
	if res.Status != Hit {
		return zero, false
	}

	var out T
	if err := json.Unmarshal(res.Value, &out); err != nil {
		logger.Warn("cache read failed for %q: %v", key, err)
		return zero, false
	}
	return out, true
}

func (c *Cache) Remove(key string) {
	if err := c.store.Delete(c.prefix + key); err != nil {
		logger.Warn("cache remove failed for %q: %v", key, err)
	}
}

// Clear removes every entry under the cache prefix and nothing else.
func (c *Cache) Clear() {
	c.removeWhere(c.prefix)
}

// InvalidatePrefix removes every entry whose key starts with p.
func (c *Cache) InvalidatePrefix(p string) {
	c.removeWhere(c.prefix + p)
}

func (c *Cache) removeWhere(fullPrefix string) {
	keys, err := c.store.Keys()
	if err != nil {
		logger.Warn("cache clear failed: %v", err)
		return
	}

	removed := 0
	for _, k := range keys {
		if !strings.HasPrefix(k, fullPrefix) {
			continue
		}
		if err := c.store.Delete(k); err != nil {
			logger.Warn("cache clear failed for %q: %v", k, err)
			continue
		}
		removed++
	}
	logger.Debug("cache: removed %d entries under %q", removed, fullPrefix)
}
