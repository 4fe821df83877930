package animal

import (
	"context"
	"fmt"
	"time"

	"github.com/fourpaws/shelter-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// Эти интерфейсы определяют контракт для работы с хранилищем данных.
// Реализации находятся в infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Repository определяет операции над каталогом животных.
type Repository interface {
	// Save создаёт или обновляет животное в каталоге приюта.
	Save(ctx context.Context, shelter string, a Animal) error

	// GetByIndex возвращает животное по идентификатору.
	// Возвращает shared.ErrAnimalNotFound, если животное не найдено.
	GetByIndex(ctx context.Context, index int) (Animal, error)

	// List возвращает животных приюта.
	List(ctx context.Context, opts ListOptions) ([]Animal, error)

	// Delete удаляет животное из каталога.
	// Возвращает shared.ErrAnimalNotFound, если животное не найдено.
	Delete(ctx context.Context, index int) error
}

// ListOptions содержит параметры для пагинации и сортировки.
type ListOptions struct {
	// Shelter - имя приюта; пустое значение означает все приюты.
	Shelter string

	// Offset - смещение (для пагинации).
	Offset int

	// Limit - максимальное количество записей.
	Limit int

	// SortBy - поле для сортировки: "index", "name" или "age".
	SortBy string
}

// DefaultListOptions возвращает параметры по умолчанию.
func DefaultListOptions() ListOptions {
	return ListOptions{
		Offset: 0,
		Limit:  100,
		SortBy: SortByIndex,
	}
}

// Поля сортировки каталога.
const (
	SortByIndex = "index"
	SortByName  = "name"
	SortByAge   = "age"
)

// Validate проверяет параметры списка.
// Пустое SortBy означает сортировку по идентификатору.
func (o ListOptions) Validate() error {
	switch o.SortBy {
	case "", SortByIndex, SortByName, SortByAge:
	default:
		return shared.WrapError("animal", "List", shared.ErrInvalidInput,
			"unknown sort field", fmt.Errorf("sort %q", o.SortBy))
	}
	if o.Offset < 0 || o.Limit < 0 {
		return shared.NewDomainError("animal", "List", shared.ErrValueOutOfRange,
			"offset and limit cannot be negative")
	}
	return nil
}

// Cache определяет кеш животных.
type Cache interface {
	// Get возвращает животное из кеша.
	Get(ctx context.Context, index int) (Animal, error)

	// Set кладёт животное в кеш.
	Set(ctx context.Context, a Animal, ttl time.Duration) error

	// Delete удаляет животное из кеша.
	Delete(ctx context.Context, index int) error
}
