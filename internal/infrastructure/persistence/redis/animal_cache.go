package redis

import (
	"context"
	"errors"
	"time"

	"github.com/fourpaws/shelter-hub/internal/domain/animal"
	"github.com/fourpaws/shelter-hub/internal/domain/shared"
)

// AnimalCache implements animal.Cache on top of Cache.
// Animals are stored as animal.Record so the concrete kind survives.
type AnimalCache struct {
	cache *Cache
}

// NewAnimalCache creates a new AnimalCache.
func NewAnimalCache(cache *Cache) *AnimalCache {
	return &AnimalCache{cache: cache}
}

// Get returns a cached animal or shared.ErrAnimalNotFound on a miss.
func (c *AnimalCache) Get(ctx context.Context, index int) (animal.Animal, error) {
	var rec animal.Record
	if err := c.cache.Get(ctx, AnimalKey(index), &rec); err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, shared.ErrAnimalNotFound
		}
		return nil, err
	}
	return animal.FromRecord(rec)
}

// Set caches a. A non-positive ttl uses TTLAnimalCache.
func (c *AnimalCache) Set(ctx context.Context, a animal.Animal, ttl time.Duration) error {
	rec, err := animal.ToRecord(a)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = TTLAnimalCache
	}
	return c.cache.Set(ctx, AnimalKey(rec.Index), rec, ttl)
}

// Delete evicts an animal. Evicting a missing key is not an error.
func (c *AnimalCache) Delete(ctx context.Context, index int) error {
	return c.cache.Delete(ctx, AnimalKey(index))
}
