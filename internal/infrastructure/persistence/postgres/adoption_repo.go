package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/fourpaws/shelter-hub/internal/domain/animal"
	"github.com/fourpaws/shelter-hub/internal/domain/shelter"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADOPTION LOG IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// AdoptionRepository implements shelter.AdoptionLog for PostgreSQL.
type AdoptionRepository struct {
	conn *Connection
}

// NewAdoptionRepository creates a new AdoptionRepository.
func NewAdoptionRepository(conn *Connection) *AdoptionRepository {
	return &AdoptionRepository{conn: conn}
}

// Record stores an adoption. A repeated event ID is ignored.
func (r *AdoptionRepository) Record(ctx context.Context, rec shelter.AdoptionRecord) error {
	query := `
		INSERT INTO adoptions (
			event_id, animal_index, animal_name, animal_kind, owner_name, shelter, adopted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (event_id) DO NOTHING
	`

	adoptedAt := rec.AdoptedAt
	if adoptedAt.IsZero() {
		adoptedAt = time.Now()
	}

	_, err := r.conn.Exec(ctx, query,
		rec.EventID,
		rec.AnimalIndex,
		rec.AnimalName,
		string(rec.AnimalKind),
		rec.OwnerName,
		rec.ShelterName,
		adoptedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record adoption %s: %w", rec.EventID, err)
	}

	return nil
}

// ListByShelter returns the latest adoptions of a shelter, newest first.
func (r *AdoptionRepository) ListByShelter(ctx context.Context, shelterName string, limit int) ([]shelter.AdoptionRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT event_id, animal_index, animal_name, animal_kind, owner_name, shelter, adopted_at
		FROM adoptions
		WHERE shelter = $1
		ORDER BY adopted_at DESC
		LIMIT $2
	`

	rows, err := r.conn.Query(ctx, query, shelterName, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list adoptions: %w", err)
	}
	defer rows.Close()

	var records []shelter.AdoptionRecord
	for rows.Next() {
		var rec shelter.AdoptionRecord
		var kind string
		if err := rows.Scan(
			&rec.EventID,
			&rec.AnimalIndex,
			&rec.AnimalName,
			&kind,
			&rec.OwnerName,
			&rec.ShelterName,
			&rec.AdoptedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan adoption: %w", err)
		}
		rec.AnimalKind = animal.Kind(kind)
		records = append(records, rec)
	}

	return records, rows.Err()
}
