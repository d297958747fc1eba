package categories

import (
	"context"

	"github.com/mytheresa/go-catalog/models"
)

// checkExisting rejects a write whose slug, or whose (name, level) pair, is
// already taken by a category other than excludeID. Only the first matching
// row is inspected: if it shares name and level the name+level conflict wins,
// otherwise it can only have matched on slug.
func checkExisting(ctx context.Context, store models.CategoryStore, name string, level int, slug string, excludeID uint) error {
	existing, err := store.FindConflict(ctx, name, level, slug, excludeID)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}
	if existing.Name == name && existing.Level == level {
		return ErrNameLevelExists
	}
	return ErrSlugExists
}
