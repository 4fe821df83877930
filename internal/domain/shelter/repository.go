package shelter

import (
	"context"
	"time"

	"github.com/fourpaws/shelter-hub/internal/domain/animal"
)

// AdoptionRecord is a persisted adoption.
type AdoptionRecord struct {
	EventID     string
	AnimalIndex int
	AnimalName  string
	AnimalKind  animal.Kind
	OwnerName   string
	ShelterName string
	AdoptedAt   time.Time
}

// RecordFromEvent flattens an adoption event for storage.
func RecordFromEvent(e AdoptionEvent) AdoptionRecord {
	r := AdoptionRecord{
		EventID:     e.ID,
		OwnerName:   e.OwnerName,
		ShelterName: e.ShelterName,
		AdoptedAt:   e.OccurredAt(),
	}
	if e.Animal != nil {
		r.AnimalIndex = e.Animal.Index()
		r.AnimalName = e.Animal.Name()
		r.AnimalKind = e.Animal.Kind()
	}
	return r
}

// AdoptionLog stores adoptions. Implementations live in infrastructure/persistence.
type AdoptionLog interface {
	// Record stores an adoption. Recording the same event twice is a no-op.
	Record(ctx context.Context, r AdoptionRecord) error

	// ListByShelter returns adoptions of a shelter, newest first.
	ListByShelter(ctx context.Context, shelter string, limit int) ([]AdoptionRecord, error)
}
