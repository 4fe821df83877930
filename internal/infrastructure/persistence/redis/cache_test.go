package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fourpaws/shelter-hub/internal/domain/animal"
	"github.com/fourpaws/shelter-hub/internal/domain/shared"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewCacheWithClient(client), mr
}

func TestNewCache(t *testing.T) {
	mr := miniredis.RunT(t)

	cache, err := NewCache(context.Background(), Config{URL: "redis://" + mr.Addr() + "/0"})
	require.NoError(t, err)
	defer cache.Close()

	assert.NoError(t, cache.Ping(context.Background()))
}

func TestNewCache_BadURL(t *testing.T) {
	_, err := NewCache(context.Background(), Config{URL: "http://nope"})
	assert.Error(t, err)
}

func TestCache_SetGet(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	type payload struct {
		Name string `json:"name"`
	}

	require.NoError(t, cache.Set(ctx, "k", payload{Name: "Odie"}, time.Minute))

	var got payload
	require.NoError(t, cache.Get(ctx, "k", &got))
	assert.Equal(t, "Odie", got.Name)

	assert.Equal(t, time.Minute, mr.TTL("k"))

	mr.FastForward(2 * time.Minute)
	assert.ErrorIs(t, cache.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestCache_Validation(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	assert.ErrorIs(t, cache.Set(ctx, "", 1, 0), ErrCacheKeyEmpty)
	assert.ErrorIs(t, cache.Set(ctx, "k", nil, 0), ErrCacheNilValue)
	assert.ErrorIs(t, cache.Set(ctx, "k", 1, -time.Second), ErrCacheInvalidTTL)
	assert.ErrorIs(t, cache.Get(ctx, "", new(int)), ErrCacheKeyEmpty)
	assert.NoError(t, cache.Delete(ctx))
}

func TestCache_CorruptValue(t *testing.T) {
	cache, mr := newTestCache(t)
	require.NoError(t, mr.Set("k", "{not json"))

	var v map[string]any
	assert.ErrorIs(t, cache.Get(context.Background(), "k", &v), ErrCacheSerialization)
}

func TestAnimalCache(t *testing.T) {
	cache, mr := newTestCache(t)
	ac := NewAnimalCache(cache)
	ctx := context.Background()

	odie := animal.NewDog("Odie", 2, 1.3, 1111, 19)
	doris := animal.NewCat("Doris", 2, 2.2, 8888, 12)

	require.NoError(t, ac.Set(ctx, odie, 0))
	require.NoError(t, ac.Set(ctx, doris, time.Minute))

	assert.True(t, mr.Exists("animal:1111"))
	assert.Equal(t, TTLAnimalCache, mr.TTL("animal:1111"))

	got, err := ac.Get(ctx, 1111)
	require.NoError(t, err)
	dog, ok := got.(*animal.Dog)
	require.True(t, ok)
	assert.Equal(t, odie.String(), dog.String())

	got, err = ac.Get(ctx, 8888)
	require.NoError(t, err)
	assert.IsType(t, &animal.Cat{}, got)
	assert.True(t, animal.Equal(doris, got))

	require.NoError(t, ac.Delete(ctx, 1111))
	require.NoError(t, ac.Delete(ctx, 1111))
	_, err = ac.Get(ctx, 1111)
	assert.ErrorIs(t, err, shared.ErrAnimalNotFound)
}

func TestAnimalCache_NilAnimal(t *testing.T) {
	cache, _ := newTestCache(t)
	assert.ErrorIs(t, NewAnimalCache(cache).Set(context.Background(), nil, 0), shared.ErrAnimalNil)
}
