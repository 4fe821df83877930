package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fourpaws/shelter-hub/internal/domain/animal"
	"github.com/fourpaws/shelter-hub/internal/domain/shared"
	"github.com/fourpaws/shelter-hub/internal/domain/shelter"
)

// Где нашлось животное.
const (
	sourceShelter = "shelter"
	sourceCache   = "cache"
	sourceCatalog = "catalog"
)

// lookup ищет животное сначала в приюте, затем в кеше и в каталоге.
// Найденное в каталоге кладётся в кеш.
func (a *app) lookup(ctx context.Context, s *shelter.Shelter[animal.Animal], index int) (animal.Animal, string, error) {
	pet, found, err := s.SearchAnimal(index)
	if err != nil {
		return nil, "", err
	}
	if found {
		return pet, sourceShelter, nil
	}

	if a.cache != nil {
		pet, err := a.cache.Get(ctx, index)
		switch {
		case err == nil:
			return pet, sourceCache, nil
		case !shared.IsNotFound(err):
			return nil, "", fmt.Errorf("cache lookup: %w", err)
		}
	}

	if a.catalog != nil {
		pet, err := a.catalog.GetByIndex(ctx, index)
		if err != nil {
			return nil, "", err
		}
		if a.cache != nil {
			_ = a.cache.Set(ctx, pet, 0)
		}
		return pet, sourceCatalog, nil
	}

	return nil, "", shared.ErrAnimalNotFound
}

func (a *app) printLookup(ctx context.Context, out io.Writer, s *shelter.Shelter[animal.Animal], index int) {
	pet, source, err := a.lookup(ctx, s, index)
	switch {
	case shared.IsNotFound(err):
		fmt.Fprintf(out, "Lookup %d: not found\n", index)
	case err != nil:
		fmt.Fprintf(out, "Lookup %d: %v\n", index, err)
	default:
		fmt.Fprintf(out, "Lookup %d (%s): %s\n", index, source, pet)
	}
}
