package eventhandler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fourpaws/shelter-hub/internal/domain/animal"
	"github.com/fourpaws/shelter-hub/internal/domain/shared"
	"github.com/fourpaws/shelter-hub/internal/domain/shelter"
)

type memoryLog struct {
	records []shelter.AdoptionRecord
	err     error
}

func (l *memoryLog) Record(_ context.Context, r shelter.AdoptionRecord) error {
	if l.err != nil {
		return l.err
	}
	l.records = append(l.records, r)
	return nil
}

func (l *memoryLog) ListByShelter(_ context.Context, name string, _ int) ([]shelter.AdoptionRecord, error) {
	var out []shelter.AdoptionRecord
	for _, r := range l.records {
		if r.ShelterName == name {
			out = append(out, r)
		}
	}
	return out, nil
}

type memoryCatalog struct {
	deleted []int
}

func (c *memoryCatalog) Save(context.Context, string, animal.Animal) error { return nil }
func (c *memoryCatalog) GetByIndex(context.Context, int) (animal.Animal, error) {
	return nil, shared.ErrAnimalNotFound
}
func (c *memoryCatalog) List(context.Context, animal.ListOptions) ([]animal.Animal, error) {
	return nil, nil
}
func (c *memoryCatalog) Delete(_ context.Context, index int) error {
	c.deleted = append(c.deleted, index)
	return nil
}

type memoryCache struct {
	evicted []int
}

func (c *memoryCache) Get(context.Context, int) (animal.Animal, error) { return nil, nil }
func (c *memoryCache) Set(context.Context, animal.Animal, time.Duration) error { return nil }
func (c *memoryCache) Delete(_ context.Context, index int) error {
	c.evicted = append(c.evicted, index)
	return nil
}

func TestAdoptionRecorder_Adopted(t *testing.T) {
	log := &memoryLog{}
	catalog := &memoryCatalog{}
	cache := &memoryCache{}
	h := NewAdoptionRecorder(log, catalog, cache, discardLogger(), time.Second)

	s := shelter.New("Four Paws", []animal.Animal{animal.NewDog("Odie", 2, 1.3, 1111, 19)},
		shelter.WithLogger(discardLogger()))
	s.Subscribe(h.Adopted)

	odie, _, _ := s.SearchAnimal(1111)
	s.Adopt(odie, "Jan")

	require.Len(t, log.records, 1)
	rec := log.records[0]
	assert.Equal(t, 1111, rec.AnimalIndex)
	assert.Equal(t, "Odie", rec.AnimalName)
	assert.Equal(t, animal.KindDog, rec.AnimalKind)
	assert.Equal(t, "Jan", rec.OwnerName)
	assert.Equal(t, "Four Paws", rec.ShelterName)
	assert.NotEmpty(t, rec.EventID)

	assert.Equal(t, []int{1111}, catalog.deleted)
	assert.Equal(t, []int{1111}, cache.evicted)
}

func TestAdoptionRecorder_CacheOnly(t *testing.T) {
	cache := &memoryCache{}
	h := NewAdoptionRecorder(nil, nil, cache, discardLogger(), time.Second)

	err := h.Handle(shelter.NewAdoptionEvent(animal.NewCat("Doris", 2, 2.2, 8888, 12), "Maja", "Four Paws"))
	require.NoError(t, err)
	assert.Equal(t, []int{8888}, cache.evicted)
}

func TestAdoptionRecorder_LogFailureIsReturned(t *testing.T) {
	log := &memoryLog{err: errors.New("db down")}
	h := NewAdoptionRecorder(log, nil, nil, discardLogger(), time.Second)

	err := h.Handle(shelter.NewAdoptionEvent(animal.NewCat("Doris", 2, 2.2, 8888, 12), "Maja", "Four Paws"))
	assert.ErrorContains(t, err, "db down")
}

func TestAdoptionRecorder_IgnoresOtherEvents(t *testing.T) {
	log := &memoryLog{}
	h := NewAdoptionRecorder(log, nil, nil, discardLogger(), 0)

	require.NoError(t, h.Handle(payloadless{shared.NewBaseEvent("x", "shelter.unknown", "1")}))
	assert.Empty(t, log.records)
}

func TestAdoptionMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewAdoptionMetrics(reg)
	require.NoError(t, err)

	s := shelter.New("Four Paws", []animal.Animal{
		animal.NewDog("Odie", 2, 1.3, 1111, 19),
		animal.NewCat("Doris", 2, 2.2, 8888, 12),
		animal.NewCat("Amber", 3, 1.7, 9999, 78),
	}, shelter.WithLogger(discardLogger()))
	m.SetPopulation(s.Name(), s.Len())
	s.Subscribe(m.Observe)

	for _, idx := range []int{8888, 9999} {
		a, _, _ := s.SearchAnimal(idx)
		s.Adopt(a, "Jan")
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.adoptions.WithLabelValues("Four Paws", "cat")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.adoptions.WithLabelValues("Four Paws", "dog")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.population.WithLabelValues("Four Paws")))
}

func TestAdoptionMetrics_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewAdoptionMetrics(reg)
	require.NoError(t, err)

	_, err = NewAdoptionMetrics(reg)
	assert.Error(t, err)
}
