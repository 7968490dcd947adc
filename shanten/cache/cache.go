// Package cache memoizes shanten kernel results. A local ristretto
// cache is always used; an optional redis tier lets several validator
// processes share memoized results across a very large log corpus.
// This is a caller-side concern, not the kernel's — shanten.Standard
// itself stays pure and allocation-free per spec.md §4.1.
package cache

import (
	"context"
	"fmt"
	"time"

	"riichiengine/hand"

	"github.com/dgraph-io/ristretto"
	"github.com/redis/go-redis/v9"
)

// ShantenCache memoizes shanten.All results keyed by hand+called-melds.
type ShantenCache struct {
	local *ristretto.Cache
	redis *redis.Client
	ttl   time.Duration
}

// New builds a local-only cache. maxCost follows ristretto's cost
// units (bytes is the usual convention; keys here are tiny so a few
// megabytes covers millions of distinct hands).
func New(maxCost int64) (*ShantenCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e7,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("shanten cache: ristretto init: %w", err)
	}
	return &ShantenCache{local: c, ttl: 0}, nil
}

// WithRedis attaches a shared second tier; entries missing locally are
// looked up there before falling back to recomputation.
func (c *ShantenCache) WithRedis(cli *redis.Client, ttl time.Duration) *ShantenCache {
	c.redis = cli
	c.ttl = ttl
	return c
}

func key(h hand.Counts, calledMelds int) string {
	var b [35]byte
	for i := 0; i < len(h); i++ {
		b[i] = byte(h[i])
	}
	b[34] = byte(calledMelds)
	return string(b[:])
}

// Get looks up a memoized shanten value, checking the local tier then
// (if configured) redis. The bool result reports whether it was found.
func (c *ShantenCache) Get(ctx context.Context, h hand.Counts, calledMelds int) (int, bool) {
	k := key(h, calledMelds)
	if v, ok := c.local.Get(k); ok {
		return v.(int), true
	}
	if c.redis == nil {
		return 0, false
	}
	s, err := c.redis.Get(ctx, "shanten:"+k).Result()
	if err != nil {
		return 0, false
	}
	var v int
	if _, err := fmt.Sscanf(s, "%d", &v); err != nil {
		return 0, false
	}
	c.local.SetWithTTL(k, v, 1, c.ttl)
	return v, true
}

// Put stores a freshly computed shanten value in both tiers.
func (c *ShantenCache) Put(ctx context.Context, h hand.Counts, calledMelds, value int) {
	k := key(h, calledMelds)
	c.local.SetWithTTL(k, value, 1, c.ttl)
	if c.redis != nil {
		c.redis.Set(ctx, "shanten:"+k, fmt.Sprintf("%d", value), c.ttl)
	}
}

// Close releases the local cache's background goroutines.
func (c *ShantenCache) Close() { c.local.Close() }
