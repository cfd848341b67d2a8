package cache

import (
	"context"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
)

// FeedCache keeps rendered feed payloads for a short window. Entries carry
// their stored-at instant and are checked against the cache's own clock, so
// expiry does not depend on the backing store honoring TTLs exactly.
type FeedCache struct {
	marshal *marshaler.Marshaler
	ttl     time.Duration
	now     func() time.Time
}

func NewFeedCache(s store.StoreInterface, ttl time.Duration) *FeedCache {
	return &FeedCache{
		marshal: marshaler.New(cache.New[any](s)),
		ttl:     ttl,
		now:     time.Now,
	}
}

type feedEntry struct {
	Payload  []byte    `json:"payload"`
	StoredAt time.Time `json:"stored_at"`
}

// GetOrCompute returns the cached payload for key when it is still within
// the TTL window, otherwise it runs compute and caches the result. A lost
// race on population is harmless, the next request just recomputes.
func (fc *FeedCache) GetOrCompute(ctx context.Context, key string, compute func() ([]byte, error)) ([]byte, error) {
	if cached, err := fc.marshal.Get(ctx, key, new(feedEntry)); err == nil {
		if entry, ok := cached.(*feedEntry); ok && fc.now().Sub(entry.StoredAt) < fc.ttl {
			return entry.Payload, nil
		}
	}

	payload, err := compute()
	if err != nil {
		return nil, err
	}

	_ = fc.marshal.Set(ctx, key, feedEntry{
		Payload:  payload,
		StoredAt: fc.now(),
	}, store.WithExpiration(fc.ttl))

	return payload, nil
}
