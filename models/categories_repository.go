package models

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	// ErrCategoryNotFound is returned when no category matches the lookup.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrDuplicateCategory is returned when the database rejects a write
	// because of uq_category_slug or uq_category_name_level.
	ErrDuplicateCategory = errors.New("category violates a unique constraint")
	// ErrCategoryReference is returned when a write breaks a foreign key:
	// an unknown parent_id on insert/update, or rows still pointing at a deleted category.
	ErrCategoryReference = errors.New("category violates a foreign key constraint")
)

// postgres SQLSTATE codes reported through lib/pq.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// CategoryStore is the storage gateway used by the category service.
type CategoryStore interface {
	List(ctx context.Context) ([]Category, error)
	FindByID(ctx context.Context, id uint) (*Category, error)
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	FindConflict(ctx context.Context, name string, level int, slug string, excludeID uint) (*Category, error)
	Create(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, category *Category) error
	Transaction(ctx context.Context, fn func(store CategoryStore) error) error
}

// writableColumns are written explicitly on insert and update so that
// zero values (is_active=false, level=0, parent_id=NULL) are stored as given.
// That only holds while none of them has a non-zero gorm default tag.
var writableColumns = []string{"name", "slug", "is_active", "level", "parent_id"}

type CategoriesRepository struct {
	db *gorm.DB
}

var _ CategoryStore = (*CategoriesRepository)(nil)

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{
		db: db,
	}
}

// List returns every category ordered by id.
func (r *CategoriesRepository) List(ctx context.Context) ([]Category, error) {
	categories := []Category{}
	if err := r.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoriesRepository) FindByID(ctx context.Context, id uint) (*Category, error) {
	var category Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindBySlug matches the slug exactly; the comparison is case-sensitive.
func (r *CategoriesRepository) FindBySlug(ctx context.Context, slug string) (*Category, error) {
	var category Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).Order("id").First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindConflict returns the lowest-id category matching
// slug = X OR (name = Y AND level = Z), skipping excludeID when it is non-zero.
// It returns nil without error when nothing matches.
func (r *CategoriesRepository) FindConflict(ctx context.Context, name string, level int, slug string, excludeID uint) (*Category, error) {
	query := r.db.WithContext(ctx).
		Where("(slug = ? OR (name = ? AND level = ?))", slug, name, level)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var category Category
	if err := query.Order("id").First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoriesRepository) Create(ctx context.Context, category *Category) error {
	err := r.db.WithContext(ctx).Select(writableColumns).Create(category).Error
	return translateError(err)
}

func (r *CategoriesRepository) Update(ctx context.Context, category *Category) error {
	err := r.db.WithContext(ctx).Model(category).Select(writableColumns).Updates(category).Error
	return translateError(err)
}

func (r *CategoriesRepository) Delete(ctx context.Context, category *Category) error {
	err := r.db.WithContext(ctx).Delete(category).Error
	return translateError(err)
}

// Transaction runs fn against a store bound to a single database transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (r *CategoriesRepository) Transaction(ctx context.Context, fn func(store CategoryStore) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&CategoriesRepository{db: tx})
	})
}

// translateError maps constraint violations onto the package sentinels.
// The pgx and sqlite dialectors report them through gorm's TranslateError;
// the lib/pq driver surfaces *pq.Error untouched.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateCategory
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrCategoryReference
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return ErrDuplicateCategory
		case pqForeignKeyViolation:
			return ErrCategoryReference
		}
	}
	return err
}
