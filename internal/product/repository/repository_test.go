package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/product/domain"
	"github.com/tair/storefront/internal/product/repository"
	"github.com/tair/storefront/internal/store/storetest"
)

func setupRepo(t *testing.T) *repository.GormProductRepository {
	t.Helper()
	_, db := storetest.New(t)
	return repository.NewGormProductRepository(db)
}

func TestCreateAndFind(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	desc := "ceramic"

	p := &domain.Product{Name: "Mug", Price: 7.5, Description: &desc, Stock: 4}
	require.NoError(t, repo.Create(ctx, p))
	assert.NotZero(t, p.ID)

	byID, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mug", byID.Name)
	require.NotNil(t, byID.Description)
	assert.Equal(t, "ceramic", *byID.Description)

	byName, err := repo.FindByName(ctx, "Mug")
	require.NoError(t, err)
	assert.Equal(t, p.ID, byName.ID)

	_, err = repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCreateDuplicateName(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Product{Name: "Mug", Price: 1}))
	err := repo.Create(ctx, &domain.Product{Name: "Mug", Price: 2})
	assert.ErrorIs(t, err, domain.ErrProductNameTaken)

	// names are case-sensitive
	assert.NoError(t, repo.Create(ctx, &domain.Product{Name: "mug", Price: 2}))
}

func TestFindAllEmptyAndOrdered(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	require.NoError(t, repo.Create(ctx, &domain.Product{Name: "B", Price: 1}))
	require.NoError(t, repo.Create(ctx, &domain.Product{Name: "A", Price: 1}))

	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "B", all[0].Name)
	assert.Equal(t, "A", all[1].Name)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestDelete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	p := &domain.Product{Name: "Mug", Price: 1}
	require.NoError(t, repo.Create(ctx, p))
	require.NoError(t, repo.Delete(ctx, p.ID))
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), domain.ErrProductNotFound)

	// hard delete frees the name
	assert.NoError(t, repo.Create(ctx, &domain.Product{Name: "Mug", Price: 1}))
}

func TestAdjustStock(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	p := &domain.Product{Name: "Mug", Price: 1, Stock: 5}
	require.NoError(t, repo.Create(ctx, p))

	ok, err := repo.AdjustStock(ctx, p.ID, -5)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.AdjustStock(ctx, p.ID, -1)
	require.NoError(t, err)
	assert.False(t, ok, "stock must not go negative")

	ok, err = repo.AdjustStock(ctx, p.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock)

	ok, err = repo.AdjustStock(ctx, 999, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}
