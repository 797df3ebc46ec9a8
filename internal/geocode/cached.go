package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"artisanhub/internal/cache"
)

const geocodeCacheTTL = 24 * time.Hour

// CachedGeocoder wraps a Geocoder with a redis read-through cache keyed by
// the address text. Cache failures degrade to direct lookups.
type CachedGeocoder struct {
	inner Geocoder
	cache *cache.Client
}

// NewCached wraps g with the given cache.
func NewCached(g Geocoder, cache *cache.Client) *CachedGeocoder {
	return &CachedGeocoder{inner: g, cache: cache}
}

func cacheKey(address string) string {
	return fmt.Sprintf("geocode:%s", address)
}

// Geocode returns a cached result when available, otherwise queries the
// wrapped geocoder and caches the outcome. ErrNoResult is not cached so a
// later fix on the provider side becomes visible.
func (g *CachedGeocoder) Geocode(ctx context.Context, address string) (*Result, error) {
	if data, _ := g.cache.Get(ctx, cacheKey(address)); data != nil {
		var cached Result
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	result, err := g.inner.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(result); err == nil {
		_ = g.cache.Set(ctx, cacheKey(address), payload, geocodeCacheTTL)
	}
	return result, nil
}
