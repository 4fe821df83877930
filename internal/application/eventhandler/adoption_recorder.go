package eventhandler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fourpaws/shelter-hub/internal/domain/animal"
	"github.com/fourpaws/shelter-hub/internal/domain/shared"
	"github.com/fourpaws/shelter-hub/internal/domain/shelter"
)

// ═══════════════════════════════════════════════════════════════════════════
// ADOPTION RECORDER
// Записывает усыновление в журнал, убирает животное из каталога и кеша.
// ═══════════════════════════════════════════════════════════════════════════

// AdoptionRecorder сохраняет последствия усыновления.
type AdoptionRecorder struct {
	// Dependencies (интерфейсы из domain layer)
	log     shelter.AdoptionLog
	catalog animal.Repository
	cache   animal.Cache

	logger  *slog.Logger
	timeout time.Duration
}

// NewAdoptionRecorder создаёт обработчик. log, catalog и cache необязательны.
func NewAdoptionRecorder(
	log shelter.AdoptionLog,
	catalog animal.Repository,
	cache animal.Cache,
	logger *slog.Logger,
	timeout time.Duration,
) *AdoptionRecorder {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &AdoptionRecorder{
		log:     log,
		catalog: catalog,
		cache:   cache,
		logger:  logger.With("handler", "adoption_recorder"),
		timeout: timeout,
	}
}

// Adopted подходит как shelter.AdoptionHandler.
func (h *AdoptionRecorder) Adopted(_ shelter.Sender, e shelter.AdoptionEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()
	return h.record(ctx, e)
}

// Handle принимает события из шины.
// Реализует shared.EventHandler.
func (h *AdoptionRecorder) Handle(event shared.Event) error {
	e, ok := shelter.AdoptionFromEvent(event)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()
	return h.record(ctx, e)
}

func (h *AdoptionRecorder) record(ctx context.Context, e shelter.AdoptionEvent) error {
	rec := shelter.RecordFromEvent(e)

	h.logger.Info("recording adoption",
		"event_id", rec.EventID,
		"animal_index", rec.AnimalIndex,
		"owner", rec.OwnerName,
		"shelter", rec.ShelterName,
	)

	if h.log != nil {
		if err := h.log.Record(ctx, rec); err != nil {
			return fmt.Errorf("record adoption: %w", err)
		}
	}

	if e.Animal == nil {
		return nil
	}

	// Каталог и кеш вторичны: ошибки только логируем.
	if h.catalog != nil {
		if err := h.catalog.Delete(ctx, rec.AnimalIndex); err != nil && !shared.IsNotFound(err) {
			h.logger.Warn("failed to remove adopted animal from catalog",
				"animal_index", rec.AnimalIndex,
				"error", err,
			)
		}
	}
	if h.cache != nil {
		if err := h.cache.Delete(ctx, rec.AnimalIndex); err != nil {
			h.logger.Warn("failed to evict adopted animal from cache",
				"animal_index", rec.AnimalIndex,
				"error", err,
			)
		}
	}

	return nil
}
