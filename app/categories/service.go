package categories

import (
	"context"
	"errors"

	"github.com/mytheresa/go-catalog/models"
)

var (
	ErrNameLevelExists = errors.New("category name and level already taken")
	ErrSlugExists      = errors.New("category slug already taken")
	// ErrCategoryExists reports a unique violation raised by the database
	// when a re-check can no longer find the conflicting row.
	ErrCategoryExists = errors.New("category already exists")
	ErrParentNotFound = errors.New("parent category not found")
	ErrCyclicParent   = errors.New("category cannot be its own ancestor")
	ErrCategoryInUse  = errors.New("category is still referenced")
)

// Service implements the category use cases. Each write runs in its own
// transaction obtained from the store.
type Service struct {
	store models.CategoryStore
}

func NewService(store models.CategoryStore) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, in CategoryCreate) (*models.Category, error) {
	category := in.ToModel()
	err := s.store.Transaction(ctx, func(tx models.CategoryStore) error {
		if err := checkExisting(ctx, tx, category.Name, category.Level, category.Slug, 0); err != nil {
			return err
		}
		if err := checkParent(ctx, tx, 0, category.ParentID); err != nil {
			return err
		}
		return tx.Create(ctx, category)
	})
	if err != nil {
		return nil, s.writeError(ctx, err, category.Name, category.Level, category.Slug, 0)
	}
	return category, nil
}

func (s *Service) List(ctx context.Context) ([]models.Category, error) {
	return s.store.List(ctx)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.store.FindBySlug(ctx, slug)
}

// Update replaces every mutable field of category id. The uniqueness and
// parent checks run again, ignoring the row being updated.
func (s *Service) Update(ctx context.Context, id uint, in CategoryUpdate) (*models.Category, error) {
	var updated *models.Category
	err := s.store.Transaction(ctx, func(tx models.CategoryStore) error {
		category, err := tx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		in.ApplyTo(category)

		if err := checkExisting(ctx, tx, category.Name, category.Level, category.Slug, id); err != nil {
			return err
		}
		if err := checkParent(ctx, tx, id, category.ParentID); err != nil {
			return err
		}
		if err := tx.Update(ctx, category); err != nil {
			return err
		}
		updated = category
		return nil
	})
	if err != nil {
		return nil, s.writeError(ctx, err, in.Name, *in.Level, in.Slug, id)
	}
	return updated, nil
}

// Delete removes category id permanently and returns the removed row.
func (s *Service) Delete(ctx context.Context, id uint) (*models.Category, error) {
	var deleted *models.Category
	err := s.store.Transaction(ctx, func(tx models.CategoryStore) error {
		category, err := tx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(ctx, category); err != nil {
			return err
		}
		deleted = category
		return nil
	})
	if errors.Is(err, models.ErrCategoryReference) {
		return nil, ErrCategoryInUse
	}
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// writeError turns constraint violations reported by the database into the
// same errors the pre-checks produce. A duplicate key means a concurrent
// writer got there first, so the check is repeated outside the failed
// transaction to name the conflicting constraint.
func (s *Service) writeError(ctx context.Context, err error, name string, level int, slug string, excludeID uint) error {
	switch {
	case errors.Is(err, models.ErrDuplicateCategory):
		if conflict := checkExisting(ctx, s.store, name, level, slug, excludeID); conflict != nil {
			return conflict
		}
		return ErrCategoryExists
	case errors.Is(err, models.ErrCategoryReference):
		return ErrParentNotFound
	}
	return err
}

// checkParent verifies that parentID names an existing category. When id is
// non-zero (an update) it also walks the ancestors of parentID and rejects
// the write if id is among them.
func checkParent(ctx context.Context, store models.CategoryStore, id uint, parentID *uint) error {
	if parentID == nil {
		return nil
	}
	if id != 0 && *parentID == id {
		return ErrCyclicParent
	}

	seen := map[uint]bool{}
	next := *parentID
	for {
		parent, err := store.FindByID(ctx, next)
		if errors.Is(err, models.ErrCategoryNotFound) {
			if next == *parentID {
				return ErrParentNotFound
			}
			return nil
		}
		if err != nil {
			return err
		}
		if id == 0 || parent.ParentID == nil {
			return nil
		}
		if *parent.ParentID == id {
			return ErrCyclicParent
		}
		seen[parent.ID] = true
		if seen[*parent.ParentID] {
			// existing loop above us that does not include id
			return nil
		}
		next = *parent.ParentID
	}
}
