// Package stores holds the client-side state for each backend domain.
//
// Every fetch follows the same protocol: derive a cache key, answer from the
// cache when allowed and fresh, otherwise call the backend through the
// deduplicator under that key, then write the result back with a TTL that
// matches how often the data changes. Mutations drop the affected cache
// namespace and re-fetch.
package stores

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/meysam81/oneoffctl/internal/api"
	"github.com/meysam81/oneoffctl/internal/cache"
	"github.com/meysam81/oneoffctl/internal/config"
	"github.com/meysam81/oneoffctl/internal/dedupe"
	"github.com/meysam81/oneoffctl/internal/logger"
)

const (
	DefaultVolatileTTL  = 30 * time.Second
	DefaultReferenceTTL = 30 * time.Minute
)

// Deps are shared by every store of one client.
type Deps struct {
	API    *api.Client
	Cache  *cache.Cache
	Dedupe *dedupe.Registry

	// VolatileTTL applies to jobs and executions.
	VolatileTTL time.Duration
	// ReferenceTTL applies to projects, tags and job types.
	ReferenceTTL time.Duration
}

func NewDeps(client *api.Client, c *cache.Cache, cfg config.CacheConfig) *Deps {
	d := &Deps{
		API:          client,
		Cache:        c,
		Dedupe:       dedupe.New(),
		VolatileTTL:  cfg.JobsTTL,
		ReferenceTTL: cfg.ReferenceTTL,
	}
	if d.VolatileTTL <= 0 {
		d.VolatileTTL = DefaultVolatileTTL
	}
	if d.ReferenceTTL <= 0 {
		d.ReferenceTTL = DefaultReferenceTTL
	}
	return d
}

// cached runs the four-step fetch protocol for key.
func cached[T any](d *Deps, key string, ttl time.Duration, useCache bool, fetch func() (T, error)) (T, error) {
	if useCache {
		if v, ok := cache.Get[T](d.Cache, key); ok {
			logger.Debug("cache hit: %s", key)
			return v, nil
		}
	}

	v, err := dedupe.Do(d.Dedupe, key, fetch)
	if err != nil {
		return v, err
	}
	d.Cache.Set(key, v, ttl)
	return v, nil
}

// Key builds a cache key from a namespace and the JSON form of params.
func Key(namespace string, params any) string {
	b, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s%+v", namespace, params)
	}
	return namespace + string(b)
}

// busy counts in-flight operations; zero means idle.
type busy struct{ n atomic.Int32 }

func (b *busy) start() func() {
	b.n.Add(1)
	return func() { b.n.Add(-1) }
}

func (b *busy) active() bool { return b.n.Load() > 0 }
