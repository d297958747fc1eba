package models

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepository(t *testing.T) (*CategoriesRepository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: opens a new database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&Category{}))
	return NewCategoriesRepository(db), db
}

func seed(t *testing.T, repo *CategoriesRepository, categories ...*Category) {
	t.Helper()
	for _, c := range categories {
		require.NoError(t, repo.Create(context.Background(), c))
	}
}

func uintPtr(v uint) *uint { return &v }

func TestCategoriesRepository_CreateStoresZeroValues(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	category := &Category{Name: "Root", Slug: "root", IsActive: false, Level: 0}
	require.NoError(t, repo.Create(ctx, category))
	assert.NotZero(t, category.ID)

	stored, err := repo.FindByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Level)
	assert.False(t, stored.IsActive)
	assert.Nil(t, stored.ParentID)
}

func TestCategoriesRepository_CreateConstraintErrors(t *testing.T) {
	testCases := []struct {
		name        string
		category    *Category
		expectedErr error
	}{
		{
			name:        "Duplicate slug",
			category:    &Category{Name: "Other", Slug: "shoes", Level: 1},
			expectedErr: ErrDuplicateCategory,
		},
		{
			name:        "Duplicate name and level",
			category:    &Category{Name: "Shoes", Slug: "shoes-2", Level: 1},
			expectedErr: ErrDuplicateCategory,
		},
		{
			name:        "Unknown parent",
			category:    &Category{Name: "Boots", Slug: "boots", Level: 2, ParentID: uintPtr(999)},
			expectedErr: ErrCategoryReference,
		},
		{
			name:     "Same name on another level",
			category: &Category{Name: "Shoes", Slug: "shoes-2", Level: 2},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, _ := newTestRepository(t)
			seed(t, repo, &Category{Name: "Shoes", Slug: "shoes", Level: 1})

			err := repo.Create(context.Background(), tc.category)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCategoriesRepository_List(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	categories, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, categories)
	assert.Empty(t, categories)

	seed(t, repo,
		&Category{Name: "B", Slug: "b", Level: 100},
		&Category{Name: "A", Slug: "a", Level: 100},
	)

	categories, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "b", categories[0].Slug)
	assert.Equal(t, "a", categories[1].Slug)
}

func TestCategoriesRepository_FindBySlug(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()
	seed(t, repo, &Category{Name: "Shoes", Slug: "shoes", Level: 1})

	found, err := repo.FindBySlug(ctx, "shoes")
	require.NoError(t, err)
	assert.Equal(t, "Shoes", found.Name)

	_, err = repo.FindBySlug(ctx, "SHOES")
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	_, err = repo.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoriesRepository_FindConflict(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()
	first := &Category{Name: "A", Slug: "a", Level: 100}
	second := &Category{Name: "B", Slug: "b", Level: 100}
	seed(t, repo, first, second)

	testCases := []struct {
		name       string
		catName    string
		level      int
		slug       string
		excludeID  uint
		expectedID uint
	}{
		{name: "No match", catName: "C", level: 100, slug: "c"},
		{name: "Slug match", catName: "C", level: 100, slug: "b", expectedID: second.ID},
		{name: "Name and level match", catName: "B", level: 100, slug: "c", expectedID: second.ID},
		{name: "Name without level is no match", catName: "A", level: 200, slug: "c"},
		{name: "Lowest id wins", catName: "B", level: 100, slug: "a", expectedID: first.ID},
		{name: "Excluded row is skipped", catName: "A", level: 100, slug: "a", excludeID: first.ID},
		{name: "Exclusion keeps other rows", catName: "A", level: 100, slug: "b", excludeID: first.ID, expectedID: second.ID},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			conflict, err := repo.FindConflict(ctx, tc.catName, tc.level, tc.slug, tc.excludeID)
			require.NoError(t, err)
			if tc.expectedID == 0 {
				assert.Nil(t, conflict)
				return
			}
			require.NotNil(t, conflict)
			assert.Equal(t, tc.expectedID, conflict.ID)
		})
	}
}

func TestCategoriesRepository_Update(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()
	parent := &Category{Name: "Parent", Slug: "parent", Level: 1}
	child := &Category{Name: "Child", Slug: "child", Level: 2, IsActive: true}
	seed(t, repo, parent, child)
	child.ParentID = &parent.ID
	require.NoError(t, repo.Update(ctx, child))

	child.Level = 0
	child.IsActive = false
	child.ParentID = nil
	require.NoError(t, repo.Update(ctx, child))

	stored, err := repo.FindByID(ctx, child.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Level)
	assert.False(t, stored.IsActive)
	assert.Nil(t, stored.ParentID)

	stored.Slug = "parent"
	assert.ErrorIs(t, repo.Update(ctx, stored), ErrDuplicateCategory)
}

func TestCategoriesRepository_Delete(t *testing.T) {
	repo, db := newTestRepository(t)
	ctx := context.Background()
	parent := &Category{Name: "Parent", Slug: "parent", Level: 1}
	seed(t, repo, parent)
	child := &Category{Name: "Child", Slug: "child", Level: 2, ParentID: &parent.ID}
	seed(t, repo, child)

	assert.ErrorIs(t, repo.Delete(ctx, parent), ErrCategoryReference)

	require.NoError(t, repo.Delete(ctx, child))
	require.NoError(t, repo.Delete(ctx, parent))

	var count int64
	require.NoError(t, db.Model(&Category{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCategoriesRepository_TransactionRollsBack(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()
	errAbort := errors.New("abort")

	err := repo.Transaction(ctx, func(store CategoryStore) error {
		if err := store.Create(ctx, &Category{Name: "Tmp", Slug: "tmp", Level: 1}); err != nil {
			return err
		}
		return errAbort
	})
	assert.ErrorIs(t, err, errAbort)

	_, err = repo.FindBySlug(ctx, "tmp")
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	err = repo.Transaction(ctx, func(store CategoryStore) error {
		return store.Create(ctx, &Category{Name: "Kept", Slug: "kept", Level: 1})
	})
	require.NoError(t, err)

	_, err = repo.FindBySlug(ctx, "kept")
	assert.NoError(t, err)
}

func TestTranslateError(t *testing.T) {
	plain := errors.New("boom")

	assert.Nil(t, translateError(nil))
	assert.ErrorIs(t, translateError(gorm.ErrDuplicatedKey), ErrDuplicateCategory)
	assert.ErrorIs(t, translateError(gorm.ErrForeignKeyViolated), ErrCategoryReference)
	assert.ErrorIs(t, translateError(&pq.Error{Code: pqUniqueViolation}), ErrDuplicateCategory)
	assert.ErrorIs(t, translateError(fmt.Errorf("insert: %w", &pq.Error{Code: pqForeignKeyViolation})), ErrCategoryReference)
	assert.Equal(t, plain, translateError(plain))
}
