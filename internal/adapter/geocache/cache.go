// Package geocache caches resolved coordinates in front of any
// domain.Geocoder, whichever provider backs it.
package geocache

import (
	"context"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/domain"
	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/observability"
)

// CachedGeocoder wraps any domain.Geocoder with an in-memory LRU cache keyed
// on the normalized town and state.
type CachedGeocoder struct {
	inner   domain.Geocoder
	cache   *lru.Cache[string, domain.Coordinates]
	metrics *observability.Metrics
}

// NewCachedGeocoder creates a cache decorator around a geocoder. A size below
// one holds a single entry.
func NewCachedGeocoder(inner domain.Geocoder, maxEntries int, metrics *observability.Metrics) *CachedGeocoder {
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[string, domain.Coordinates](max(maxEntries, 1))
	return &CachedGeocoder{
		inner:   inner,
		cache:   cache,
		metrics: metrics,
	}
}

func (c *CachedGeocoder) Resolve(ctx context.Context, town, state string) (domain.Coordinates, error) {
	key := cacheKey(town, state)
	if coords, ok := c.cache.Get(key); ok {
		c.metrics.GeocodeCache.WithLabelValues("hit").Inc()
		return coords, nil
	}
	c.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	coords, err := c.inner.Resolve(ctx, town, state)
	if err != nil {
		// Failures and "not found" are never cached so they can be retried.
		return coords, err
	}
	c.cache.Add(key, coords)
	return coords, nil
}

// Len reports how many locations are cached.
func (c *CachedGeocoder) Len() int {
	return c.cache.Len()
}

func cacheKey(town, state string) string {
	return strings.ToLower(strings.TrimSpace(town)) + "|" + strings.ToUpper(strings.TrimSpace(state))
}
