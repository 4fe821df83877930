package messaging

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fourpaws/shelter-hub/internal/domain/animal"
	"github.com/fourpaws/shelter-hub/internal/domain/shared"
	"github.com/fourpaws/shelter-hub/internal/domain/shelter"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSyncBus(t *testing.T) *InMemoryEventBus {
	t.Helper()
	cfg := DefaultInMemoryEventBusConfig()
	cfg.Logger = quietLogger()
	bus := NewInMemoryEventBus(cfg)
	t.Cleanup(func() { _ = bus.Close() })
	return bus
}

func adoption(name string, index int) shelter.AdoptionEvent {
	return shelter.NewAdoptionEvent(animal.NewDog(name, 2, 1.3, index, 19), "Jan", "Four Paws")
}

type collector struct {
	mu     sync.Mutex
	events []shared.Event
}

func (c *collector) handle(e shared.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
	return nil
}

func (c *collector) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func (c *collector) at(i int) shared.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.events[i]
}

// ══════════════════════════════════════════════════════════════════════════════
// IN-MEMORY
// ══════════════════════════════════════════════════════════════════════════════

func TestInMemoryEventBus_DeliversByType(t *testing.T) {
	bus := newSyncBus(t)

	var adopted, all collector
	require.NoError(t, bus.Subscribe(shared.EventAnimalAdopted, adopted.handle))
	require.NoError(t, bus.Subscribe("shelter.other", func(shared.Event) error {
		t.Fatal("handler for another type must not run")
		return nil
	}))
	require.NoError(t, bus.SubscribeAll(all.handle))

	require.NoError(t, bus.Publish(adoption("Odie", 1111)))

	assert.Equal(t, 1, adopted.len())
	assert.Equal(t, 1, all.len())
}

func TestInMemoryEventBus_HandlerOrder(t *testing.T) {
	bus := newSyncBus(t)

	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		require.NoError(t, bus.Subscribe(shared.EventAnimalAdopted, func(shared.Event) error {
			order = append(order, i)
			return nil
		}))
	}

	require.NoError(t, bus.Publish(adoption("Odie", 1111)))
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestInMemoryEventBus_HandlerErrorDoesNotStopOthers(t *testing.T) {
	bus := newSyncBus(t)

	var after collector
	require.NoError(t, bus.Subscribe(shared.EventAnimalAdopted, func(shared.Event) error {
		return errors.New("boom")
	}))
	require.NoError(t, bus.Subscribe(shared.EventAnimalAdopted, after.handle))

	assert.NoError(t, bus.Publish(adoption("Odie", 1111)))
	assert.Equal(t, 1, after.len())
}

func TestInMemoryEventBus_NoHandlers(t *testing.T) {
	bus := newSyncBus(t)
	assert.NoError(t, bus.Publish(adoption("Odie", 1111)))
}

func TestInMemoryEventBus_Validation(t *testing.T) {
	bus := newSyncBus(t)

	assert.ErrorIs(t, bus.Subscribe(shared.EventAnimalAdopted, nil), ErrNilHandler)
	assert.ErrorIs(t, bus.SubscribeAll(nil), ErrNilHandler)
	assert.ErrorIs(t, bus.Publish(nil), ErrNilEvent)
}

func TestInMemoryEventBus_Closed(t *testing.T) {
	bus := newSyncBus(t)
	require.NoError(t, bus.Close())
	require.NoError(t, bus.Close())

	assert.ErrorIs(t, bus.Publish(adoption("Odie", 1111)), ErrEventBusClosed)
	assert.ErrorIs(t, bus.Subscribe(shared.EventAnimalAdopted, func(shared.Event) error { return nil }), ErrEventBusClosed)
}

func TestInMemoryEventBus_Async(t *testing.T) {
	bus := NewInMemoryEventBus(InMemoryEventBusConfig{
		AsyncMode:      true,
		WorkerPoolSize: 2,
		Logger:         quietLogger(),
	})

	var calls atomic.Int32
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error {
		calls.Add(1)
		return nil
	}))

	for i := 0; i < 10; i++ {
		require.NoError(t, bus.Publish(adoption("Odie", 1000+i)))
	}
	bus.Wait()

	assert.Equal(t, int32(10), calls.Load())
	require.NoError(t, bus.Close())
}

func TestInMemoryEventBus_CloseWaitsForAcceptedAsyncPublishes(t *testing.T) {
	bus := NewInMemoryEventBus(InMemoryEventBusConfig{
		AsyncMode:      true,
		WorkerPoolSize: 4,
		Logger:         quietLogger(),
	})

	var calls atomic.Int32
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error {
		time.Sleep(time.Millisecond)
		calls.Add(1)
		return nil
	}))

	var accepted atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := bus.Publish(adoption("Odie", 1000+i))
			if err == nil {
				accepted.Add(1)
				return
			}
			assert.ErrorIs(t, err, ErrEventBusClosed)
		}(i)
	}

	time.Sleep(2 * time.Millisecond)
	require.NoError(t, bus.Close())
	closedCalls := calls.Load()
	wg.Wait()

	assert.Equal(t, closedCalls, calls.Load())
	assert.Equal(t, accepted.Load(), calls.Load())
}

func TestInMemoryEventBus_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	require.NoError(t, err)

	bus := NewInMemoryEventBus(InMemoryEventBusConfig{Logger: quietLogger(), Metrics: metrics})
	defer bus.Close()

	require.NoError(t, bus.Subscribe(shared.EventAnimalAdopted, func(shared.Event) error {
		return errors.New("boom")
	}))
	require.NoError(t, bus.Publish(adoption("Odie", 1111)))
	require.NoError(t, bus.Publish(adoption("Goofy", 2222)))

	kind := string(shared.EventAnimalAdopted)
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.published.WithLabelValues(kind)))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.handlerFailures.WithLabelValues(kind)))
}

// ══════════════════════════════════════════════════════════════════════════════
// REDIS
// ══════════════════════════════════════════════════════════════════════════════

func newRedisBus(t *testing.T, mr *miniredis.Miniredis, instance string) *RedisEventBus {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	bus, err := NewRedisEventBus(RedisEventBusConfig{
		Client:     NewGoRedisClient(client),
		InstanceID: instance,
		Logger:     quietLogger(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = bus.Close() })
	return bus
}

func TestRedisEventBus_FansOutToOtherInstances(t *testing.T) {
	mr := miniredis.RunT(t)

	a := newRedisBus(t, mr, "instance-a")
	b := newRedisBus(t, mr, "instance-b")

	var local, remote collector
	require.NoError(t, a.Subscribe(shared.EventAnimalAdopted, local.handle))
	require.NoError(t, b.Subscribe(shared.EventAnimalAdopted, remote.handle))

	require.NoError(t, a.Publish(adoption("Odie", 1111)))

	assert.Eventually(t, func() bool { return remote.len() == 1 }, 2*time.Second, 10*time.Millisecond)

	// The publisher must not see its own message twice.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, local.len())

	got, ok := shelter.AdoptionFromEvent(remote.at(0))
	require.True(t, ok)
	assert.Equal(t, "Jan", got.OwnerName)
	assert.Equal(t, "Four Paws", got.ShelterName)
	require.NotNil(t, got.Animal)
	assert.Equal(t, 1111, got.Animal.Index())
	assert.Equal(t, "Odie", got.Animal.Name())
	assert.Equal(t, animal.KindDog, got.Animal.Kind())
}

func TestRedisEventBus_RequiresClient(t *testing.T) {
	_, err := NewRedisEventBus(RedisEventBusConfig{})
	assert.Error(t, err)
}

func TestRedisEventBus_GeneratesInstanceID(t *testing.T) {
	mr := miniredis.RunT(t)
	bus := newRedisBus(t, mr, "")
	assert.NotEmpty(t, bus.InstanceID())
}

func TestRedisEventBus_Closed(t *testing.T) {
	mr := miniredis.RunT(t)
	bus := newRedisBus(t, mr, "instance-a")

	require.NoError(t, bus.Close())
	assert.ErrorIs(t, bus.Publish(adoption("Odie", 1111)), ErrEventBusClosed)
}
