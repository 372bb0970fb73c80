package repository

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// newMemoryStore builds a cache whose entries expire after ttl without a
// read. Expired entries stay until deleteExpired runs.
func newMemoryStore[V any](ttl time.Duration, onEvict func(V)) *ttlcache.Cache[string, V] {
	store := ttlcache.New[string, V](ttlcache.WithTTL[string, V](ttl))
	if onEvict != nil {
		store.OnEviction(func(_ context.Context, _ ttlcache.EvictionReason, item *ttlcache.Item[string, V]) {
			onEvict(item.Value())
		})
	}
	return store
}

// deleteExpired removes expired entries and reports how many live ones
// remain.
func deleteExpired[V any](store *ttlcache.Cache[string, V]) int {
	store.DeleteExpired()
	return store.Len()
}
