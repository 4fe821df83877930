package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fourpaws/shelter-hub/internal/domain/animal"
	"github.com/fourpaws/shelter-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ANIMAL REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// AnimalRepository implements animal.Repository for PostgreSQL.
type AnimalRepository struct {
	conn *Connection
}

// NewAnimalRepository creates a new AnimalRepository.
func NewAnimalRepository(conn *Connection) *AnimalRepository {
	return &AnimalRepository{conn: conn}
}

const animalColumns = `kind, animal_index, name, age, weight, running_speed, tail_length`

// Save inserts the animal or updates it in place when the index is known.
func (r *AnimalRepository) Save(ctx context.Context, shelter string, a animal.Animal) error {
	rec, err := animal.ToRecord(a)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO animals (shelter, ` + animalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (animal_index) DO UPDATE SET
			shelter = EXCLUDED.shelter,
			kind = EXCLUDED.kind,
			name = EXCLUDED.name,
			age = EXCLUDED.age,
			weight = EXCLUDED.weight,
			running_speed = EXCLUDED.running_speed,
			tail_length = EXCLUDED.tail_length,
			updated_at = NOW()
	`

	_, err = r.conn.Exec(ctx, query,
		shelter,
		string(rec.Kind),
		rec.Index,
		rec.Name,
		rec.Age,
		rec.Weight,
		rec.RunningSpeed,
		rec.TailLength,
	)
	if err != nil {
		return fmt.Errorf("failed to save animal %d: %w", rec.Index, err)
	}

	return nil
}

// GetByIndex returns an animal by its shelter index.
func (r *AnimalRepository) GetByIndex(ctx context.Context, index int) (animal.Animal, error) {
	query := `SELECT ` + animalColumns + ` FROM animals WHERE animal_index = $1`
	return scanAnimal(r.conn.QueryRow(ctx, query, index))
}

// List returns animals filtered and ordered by opts.
func (r *AnimalRepository) List(ctx context.Context, opts animal.ListOptions) ([]animal.Animal, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	query, args := buildListQuery(opts)

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list animals: %w", err)
	}
	defer rows.Close()

	var animals []animal.Animal
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		animals = append(animals, a)
	}

	return animals, rows.Err()
}

// Delete removes an animal from the catalogue.
func (r *AnimalRepository) Delete(ctx context.Context, index int) error {
	result, err := r.conn.Exec(ctx, `DELETE FROM animals WHERE animal_index = $1`, index)
	if err != nil {
		return fmt.Errorf("failed to delete animal %d: %w", index, err)
	}

	if result.RowsAffected() == 0 {
		return shared.ErrAnimalNotFound
	}

	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HELPER METHODS
// ══════════════════════════════════════════════════════════════════════════════

var listOrder = map[string]string{
	animal.SortByIndex: "animal_index",
	animal.SortByName:  "name, animal_index",
	animal.SortByAge:   "age, animal_index",
}

// buildListQuery renders the SELECT for opts. Unknown sort keys fall back to index.
func buildListQuery(opts animal.ListOptions) (string, []interface{}) {
	order, ok := listOrder[opts.SortBy]
	if !ok {
		order = listOrder[animal.SortByIndex]
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = animal.DefaultListOptions().Limit
	}

	args := []interface{}{limit, max(opts.Offset, 0)}
	where := ""
	if opts.Shelter != "" {
		where = "WHERE shelter = $3"
		args = append(args, opts.Shelter)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM animals
		%s
		ORDER BY %s
		LIMIT $1 OFFSET $2
	`, animalColumns, where, order)

	return query, args
}

func scanAnimal(row pgx.Row) (animal.Animal, error) {
	var rec animal.Record
	var kind string

	err := row.Scan(
		&kind,
		&rec.Index,
		&rec.Name,
		&rec.Age,
		&rec.Weight,
		&rec.RunningSpeed,
		&rec.TailLength,
	)
	if IsNoRows(err) {
		return nil, shared.ErrAnimalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan animal: %w", err)
	}

	rec.Kind = animal.Kind(kind)
	return animal.FromRecord(rec)
}
