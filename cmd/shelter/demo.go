package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/fourpaws/shelter-hub/config"
	"github.com/fourpaws/shelter-hub/internal/application/eventhandler"
	"github.com/fourpaws/shelter-hub/internal/domain/animal"
	"github.com/fourpaws/shelter-hub/internal/domain/shared"
	"github.com/fourpaws/shelter-hub/internal/domain/shelter"
	"github.com/fourpaws/shelter-hub/internal/infrastructure/messaging"
	"github.com/fourpaws/shelter-hub/internal/infrastructure/persistence/postgres"
	"github.com/fourpaws/shelter-hub/internal/infrastructure/persistence/redis"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the Four Paws adoption demo (default command)",
	RunE:  runDemoCmd,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemoCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := setupLogger(cfg)

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	log.Info("starting shelter demo",
		"env", cfg.App.Environment,
		"shelter", cfg.Shelter.Name,
		"event_bus", cfg.EventBus.Backend,
	)

	return runDemo(ctx, cfg, cmd.OutOrStdout(), log)
}

// ══════════════════════════════════════════════════════════════════════════════
// WIRING
// ══════════════════════════════════════════════════════════════════════════════

// eventBus is what the demo needs from either bus implementation.
type eventBus interface {
	shared.EventBus
	Wait()
	Close() error
}

// app holds the optional infrastructure of one demo run.
type app struct {
	bus      eventBus
	registry *prometheus.Registry
	metrics  *eventhandler.AdoptionMetrics

	catalog     animal.Repository
	cache       animal.Cache
	adoptionLog shelter.AdoptionLog

	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func newApp(ctx context.Context, cfg *config.Config, log *slog.Logger) (*app, error) {
	a := &app{registry: prometheus.NewRegistry()}

	// ─────────────────────────────────────────────────────────────────────────
	// МЕТРИКИ
	// ─────────────────────────────────────────────────────────────────────────
	var err error
	if a.metrics, err = eventhandler.NewAdoptionMetrics(a.registry); err != nil {
		return nil, fmt.Errorf("register adoption metrics: %w", err)
	}
	busMetrics, err := messaging.NewMetrics(a.registry)
	if err != nil {
		return nil, fmt.Errorf("register bus metrics: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// POSTGRES (опционально)
	// ─────────────────────────────────────────────────────────────────────────
	if cfg.DatabaseEnabled() {
		connectCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
		defer cancel()

		log.Info("connecting to database...")
		conn, err := postgres.NewConnectionFromURL(connectCtx, cfg.Database.URL, poolOptions(cfg))
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.closers = append(a.closers, conn.Close)

		if _, err := postgres.NewMigrator(conn).Migrate(connectCtx); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}

		a.catalog = postgres.NewAnimalRepository(conn)
		a.adoptionLog = postgres.NewAdoptionRepository(conn)
		log.Info("database connection established")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// REDIS (опционально)
	// ─────────────────────────────────────────────────────────────────────────
	redisCfg := redis.Config{
		URL:         cfg.Redis.URL,
		PoolSize:    cfg.Redis.PoolSize,
		DialTimeout: cfg.Redis.DialTimeout,
	}
	if cfg.RedisEnabled() {
		cache, err := redis.NewCache(ctx, redisCfg)
		if err != nil {
			log.Warn("failed to connect to Redis, caching disabled", "error", err)
		} else {
			a.closers = append(a.closers, func() { _ = cache.Close() })
			a.cache = redis.NewAnimalCache(cache)
			log.Info("Redis connection established")
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// EVENT BUS
	// ─────────────────────────────────────────────────────────────────────────
	localCfg := messaging.DefaultInMemoryEventBusConfig()
	localCfg.Logger = log
	localCfg.AsyncMode = cfg.EventBus.Async
	localCfg.WorkerPoolSize = cfg.EventBus.WorkerPoolSize
	localCfg.Metrics = busMetrics

	switch cfg.EventBus.Backend {
	case config.BusRedis:
		opts, err := redisCfg.Options()
		if err != nil {
			a.Close()
			return nil, err
		}
		bus, err := messaging.NewRedisEventBus(messaging.RedisEventBusConfig{
			Client:         messaging.NewGoRedisClient(goredis.NewClient(opts)),
			ChannelName:    cfg.EventBus.Channel,
			LocalBusConfig: localCfg,
			Logger:         log,
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to start redis event bus: %w", err)
		}
		a.bus = bus
		log.Info("redis event bus started",
			"channel", cfg.EventBus.Channel,
			"instance_id", bus.InstanceID(),
		)
	default:
		a.bus = messaging.NewInMemoryEventBus(localCfg)
	}
	a.closers = append(a.closers, func() { _ = a.bus.Close() })

	return a, nil
}

func poolOptions(cfg *config.Config) postgres.PoolOptions {
	return postgres.PoolOptions{
		MaxConns:        int32(cfg.Database.MaxConns),
		MinConns:        int32(cfg.Database.MinConns),
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// DEMO
// ══════════════════════════════════════════════════════════════════════════════

// sampleAnimals returns the seven residents of the demo shelter.
func sampleAnimals() []animal.Animal {
	return []animal.Animal{
		animal.NewDog("Odie", 2, 1.3, 1111, 19),
		animal.NewDog("Goofy", 4, 1.4, 2222, 18),
		animal.NewDog("Saba", 3, 3.2, 3333, 28),
		animal.NewCat("Carmel", 4, 1.3, 6666, 32),
		animal.NewCat("Zoja", 4, 1.4, 7777, 67),
		animal.NewCat("Doris", 2, 2.2, 8888, 12),
		animal.NewCat("Amber", 3, 1.7, 9999, 78),
	}
}

func runDemo(ctx context.Context, cfg *config.Config, out io.Writer, log *slog.Logger) error {
	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	animals := sampleAnimals()
	for _, pet := range animals {
		pet.SetVoice(out)
	}
	odie, saba, doris := animals[0], animals[2], animals[5]

	s := shelter.New(cfg.Shelter.Name, animals, shelter.WithLogger(log))
	a.seed(ctx, s, cfg, log)

	// ─────────────────────────────────────────────────────────────────────────
	// СПИСОК И СОРТИРОВКИ
	// ─────────────────────────────────────────────────────────────────────────
	fmt.Fprintln(out, s)
	s.Sort()

	fmt.Fprintln(out, "Animals sorted by age:")
	s.SortBy(animal.For[animal.Animal](animal.ByAge))
	fmt.Fprintln(out, s)

	fmt.Fprintln(out, "Animals sorted by name:")
	s.SortBy(animal.For[animal.Animal](animal.ByName))
	fmt.Fprintln(out, s)

	// ─────────────────────────────────────────────────────────────────────────
	// ПОДПИСЧИКИ
	// ─────────────────────────────────────────────────────────────────────────
	board := eventhandler.NewInformationBoard(out, log)
	if err := a.bus.Subscribe(shared.EventAnimalAdopted, board.Handle); err != nil {
		return fmt.Errorf("subscribe board: %w", err)
	}

	if a.adoptionLog != nil || a.cache != nil {
		recorder := eventhandler.NewAdoptionRecorder(a.adoptionLog, a.catalog, a.cache, log, cfg.Shelter.HandlerTimeout)
		retry := messaging.DefaultRetryConfig()
		retry.MaxRetries = cfg.EventBus.MaxRetries

		handler := messaging.Chain(recorder.Handle,
			messaging.LoggingMiddleware(log),
			messaging.RetryMiddleware(retry, log),
			messaging.RecoveryMiddleware(log),
		)
		if err := a.bus.Subscribe(shared.EventAnimalAdopted, handler); err != nil {
			return fmt.Errorf("subscribe recorder: %w", err)
		}
	}

	s.Subscribe(shelter.Forward(a.bus))
	s.Subscribe(a.metrics.Observe)
	a.metrics.SetPopulation(s.Name(), s.Len())

	// ─────────────────────────────────────────────────────────────────────────
	// УСЫНОВЛЕНИЯ
	// ─────────────────────────────────────────────────────────────────────────
	s.Adopt(odie, "Jan Kowalski")
	s.Adopt(doris, "Maja Nowak")
	a.bus.Wait()

	board.Read()

	if cfg.Shelter.BoardFile != "" {
		board.AddInfo(cfg.Shelter.BoardFile)
		board.Read()
	}

	// ─────────────────────────────────────────────────────────────────────────
	// ПОИСК
	// ─────────────────────────────────────────────────────────────────────────
	for _, index := range []int{saba.Index(), odie.Index()} {
		a.printLookup(ctx, out, s, index)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// СНИМОК
	// ─────────────────────────────────────────────────────────────────────────
	s.Serialize(cfg.Shelter.SnapshotPath)
	restored := shelter.New(s.Name(), s.Deserialize(cfg.Shelter.SnapshotPath), shelter.WithLogger(log))
	fmt.Fprintf(out, "Restored from %s:\n", cfg.Shelter.SnapshotPath)
	fmt.Fprintln(out, restored)

	if a.adoptionLog != nil {
		a.printAdoptionLog(ctx, out, s.Name(), log)
	}
	if cfg.Observability.MetricsEnabled {
		a.logMetrics(log)
	}

	return ctx.Err()
}

// seed mirrors the residents into the catalogue and cache when configured.
func (a *app) seed(ctx context.Context, s *shelter.Shelter[animal.Animal], cfg *config.Config, log *slog.Logger) {
	for pet := range s.All() {
		if a.catalog != nil {
			if err := a.catalog.Save(ctx, s.Name(), pet); err != nil {
				log.Warn("failed to save animal to catalog", "animal_index", pet.Index(), "error", err)
			}
		}
		if a.cache != nil {
			if err := a.cache.Set(ctx, pet, cfg.Redis.CacheTTL); err != nil {
				log.Warn("failed to cache animal", "animal_index", pet.Index(), "error", err)
			}
		}
	}
}

func (a *app) printAdoptionLog(ctx context.Context, out io.Writer, shelterName string, log *slog.Logger) {
	records, err := a.adoptionLog.ListByShelter(ctx, shelterName, 10)
	if err != nil {
		log.Warn("failed to read adoption log", "error", err)
		return
	}

	fmt.Fprintln(out, "Adoption log:")
	for _, r := range records {
		fmt.Fprintf(out, "%s  %-8s %-6s -> %s\n", r.AdoptedAt.Format("2006-01-02 15:04:05"), r.AnimalName, r.AnimalKind, r.OwnerName)
	}
}

func (a *app) logMetrics(log *slog.Logger) {
	families, err := a.registry.Gather()
	if err != nil {
		log.Warn("failed to gather metrics", "error", err)
		return
	}
	for _, mf := range families {
		log.Info("metric", "name", mf.GetName(), "series", len(mf.GetMetric()))
	}
}
