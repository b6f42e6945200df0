package repositories_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shashiranjanraj/mayorista/app/models"
	"github.com/shashiranjanraj/mayorista/app/repositories"
)

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func input(sku string, active bool) models.ProductInput {
	return models.ProductInput{
		Name:        "Guante " + sku,
		Description: "Guante de trabajo resistente",
		SKU:         sku,
		Gender:      models.GenderUnisex,
		Type:        models.TypeCommon,
		ImageURL:    "https://res.cloudinary.com/demo/image/upload/v1/" + sku + ".jpg",
		IsActive:    active,
	}
}

func TestGormCreateAppendsToDisplayOrder(t *testing.T) {
	repo := repositories.NewGormProductRepository(newSQLiteDB(t))
	ctx := context.Background()

	first, err := repo.Create(ctx, input("A-1", true))
	require.NoError(t, err)
	second, err := repo.Create(ctx, input("A-2", false))
	require.NoError(t, err)

	p1, err := repo.FindByID(ctx, first)
	require.NoError(t, err)
	p2, err := repo.FindByID(ctx, second)
	require.NoError(t, err)

	assert.Equal(t, 1, p1.SortOrder, "empty store starts at 1")
	assert.Equal(t, 2, p2.SortOrder)
	assert.False(t, p2.IsActive, "inactive flag survives the column default")
	require.NotNil(t, p1.CreatedAt)
	require.NotNil(t, p1.UpdatedAt)
	assert.Len(t, p1.ID, 36)
}

func TestGormFindMissing(t *testing.T) {
	repo := repositories.NewGormProductRepository(newSQLiteDB(t))

	_, err := repo.FindByID(context.Background(), "nope")
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	_, err = repo.FindBySKU(context.Background(), "nope")
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}

func TestGormFindBySKU(t *testing.T) {
	repo := repositories.NewGormProductRepository(newSQLiteDB(t))
	ctx := context.Background()

	id, err := repo.Create(ctx, input("SKU-9", true))
	require.NoError(t, err)

	p, err := repo.FindBySKU(ctx, "SKU-9")
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)
}

func TestGormListAllActiveOnly(t *testing.T) {
	repo := repositories.NewGormProductRepository(newSQLiteDB(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, input(fmt.Sprintf("ON-%d", i), true))
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, input("OFF-1", false))
	require.NoError(t, err)

	active, err := repo.ListAll(ctx, true)
	require.NoError(t, err)
	all, err := repo.ListAll(ctx, false)
	require.NoError(t, err)

	assert.Len(t, active, 3)
	assert.Len(t, all, 4)
	for _, p := range active {
		assert.True(t, p.IsActive)
	}
}

func TestGormPatchMergesFields(t *testing.T) {
	repo := repositories.NewGormProductRepository(newSQLiteDB(t))
	ctx := context.Background()

	id, err := repo.Create(ctx, input("P-1", true))
	require.NoError(t, err)
	before, err := repo.FindByID(ctx, id)
	require.NoError(t, err)

	name := "Guante nitrilo"
	off := false
	require.NoError(t, repo.Patch(ctx, id, models.ProductPatch{Name: &name, IsActive: &off}))

	after, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, name, after.Name)
	assert.False(t, after.IsActive)
	assert.Equal(t, before.SKU, after.SKU)
	assert.Equal(t, before.ImageURL, after.ImageURL)
	assert.False(t, after.UpdatedAt.Before(*before.UpdatedAt))
}

func TestGormPatchUnknownID(t *testing.T) {
	repo := repositories.NewGormProductRepository(newSQLiteDB(t))

	name := "x"
	err := repo.Patch(context.Background(), "missing", models.ProductPatch{Name: &name})
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}

func TestGormBatchSetSortOrder(t *testing.T) {
	repo := repositories.NewGormProductRepository(newSQLiteDB(t))
	ctx := context.Background()

	a, _ := repo.Create(ctx, input("A", true))
	b, _ := repo.Create(ctx, input("B", true))
	c, _ := repo.Create(ctx, input("C", true))

	require.NoError(t, repo.BatchSetSortOrder(ctx, []string{c, a, b}, 1))

	want := map[string]int{c: 1, a: 2, b: 3}
	for id, order := range want {
		p, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, order, p.SortOrder, id)
	}
}

func TestGormBatchSetSortOrderRollsBackOnUnknownID(t *testing.T) {
	repo := repositories.NewGormProductRepository(newSQLiteDB(t))
	ctx := context.Background()

	a, _ := repo.Create(ctx, input("A", true))
	b, _ := repo.Create(ctx, input("B", true))

	err := repo.BatchSetSortOrder(ctx, []string{b, a, "ghost"}, 10)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	pa, _ := repo.FindByID(ctx, a)
	pb, _ := repo.FindByID(ctx, b)
	assert.Equal(t, 1, pa.SortOrder)
	assert.Equal(t, 2, pb.SortOrder)
}

func TestGormUniqueSKUIndex(t *testing.T) {
	repo := repositories.NewGormProductRepository(newSQLiteDB(t))
	ctx := context.Background()

	first, err := repo.Create(ctx, input("A-1", true))
	require.NoError(t, err)
	second, err := repo.Create(ctx, input("B-1", true))
	require.NoError(t, err)

	_, err = repo.Create(ctx, input("A-1", true))
	assert.ErrorIs(t, err, repositories.ErrDuplicateSKU)

	sku := "A-1"
	err = repo.Patch(ctx, second, models.ProductPatch{SKU: &sku})
	assert.ErrorIs(t, err, repositories.ErrDuplicateSKU)

	p, err := repo.FindBySKU(ctx, "A-1")
	require.NoError(t, err)
	assert.Equal(t, first, p.ID)
}
