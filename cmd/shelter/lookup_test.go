package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fourpaws/shelter-hub/internal/domain/animal"
	"github.com/fourpaws/shelter-hub/internal/domain/shared"
	"github.com/fourpaws/shelter-hub/internal/domain/shelter"
	"github.com/fourpaws/shelter-hub/internal/infrastructure/persistence/redis"
)

type stubCatalog struct {
	animals map[int]animal.Animal
	gets    int
}

func (c *stubCatalog) Save(context.Context, string, animal.Animal) error { return nil }

func (c *stubCatalog) GetByIndex(_ context.Context, index int) (animal.Animal, error) {
	c.gets++
	if a, ok := c.animals[index]; ok {
		return a, nil
	}
	return nil, shared.ErrAnimalNotFound
}

func (c *stubCatalog) List(context.Context, animal.ListOptions) ([]animal.Animal, error) {
	return nil, nil
}

func (c *stubCatalog) Delete(context.Context, int) error { return nil }

func newLookupApp(t *testing.T, catalog animal.Repository) (*app, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache, err := redis.NewCache(context.Background(), redis.Config{URL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	return &app{cache: redis.NewAnimalCache(cache), catalog: catalog}, mr
}

func TestLookup_FallsBackFromShelterToCacheToCatalog(t *testing.T) {
	ctx := context.Background()
	saba := animal.NewDog("Saba", 3, 3.2, 3333, 28)
	goofy := animal.NewDog("Goofy", 4, 1.4, 2222, 18)
	amber := animal.NewCat("Amber", 3, 1.7, 9999, 78)

	catalog := &stubCatalog{animals: map[int]animal.Animal{9999: amber}}
	a, mr := newLookupApp(t, catalog)
	require.NoError(t, a.cache.Set(ctx, goofy, time.Minute))

	s := shelter.New("Four Paws", []animal.Animal{saba}, shelter.WithLogger(discardLogger()))

	got, source, err := a.lookup(ctx, s, 3333)
	require.NoError(t, err)
	assert.Equal(t, sourceShelter, source)
	assert.Equal(t, "Saba", got.Name())

	got, source, err = a.lookup(ctx, s, 2222)
	require.NoError(t, err)
	assert.Equal(t, sourceCache, source)
	assert.Equal(t, "Goofy", got.Name())

	got, source, err = a.lookup(ctx, s, 9999)
	require.NoError(t, err)
	assert.Equal(t, sourceCatalog, source)
	assert.Equal(t, "Amber", got.Name())
	assert.True(t, mr.Exists("animal:9999"), "catalogue hits are cached")

	_, source, err = a.lookup(ctx, s, 9999)
	require.NoError(t, err)
	assert.Equal(t, sourceCache, source)
	assert.Equal(t, 1, catalog.gets)

	_, _, err = a.lookup(ctx, s, 4242)
	assert.ErrorIs(t, err, shared.ErrAnimalNotFound)
}

func TestLookup_WithoutInfrastructure(t *testing.T) {
	s := shelter.New("Four Paws", sampleAnimals(), shelter.WithLogger(discardLogger()))
	a := &app{}

	_, _, err := a.lookup(context.Background(), s, 4242)
	assert.ErrorIs(t, err, shared.ErrAnimalNotFound)

	_, _, err = a.lookup(context.Background(), s, -1)
	assert.ErrorIs(t, err, shared.ErrInvalidIndex)
}

func TestPrintLookup(t *testing.T) {
	s := shelter.New("Four Paws", sampleAnimals(), shelter.WithLogger(discardLogger()))
	a := &app{}
	var out bytes.Buffer

	a.printLookup(context.Background(), &out, s, 3333)
	a.printLookup(context.Background(), &out, s, 4242)

	assert.Equal(t,
		"Lookup 3333 (shelter): INDEX: 3333, NAME: Saba, AGE: 3, WEIGHT: 3.2kg, RUNNING SPEED: 28km/h\n"+
			"Lookup 4242: not found\n",
		out.String())
}
