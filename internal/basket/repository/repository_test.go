package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/basket/domain"
	"github.com/tair/storefront/internal/basket/repository"
	productdomain "github.com/tair/storefront/internal/product/domain"
	"github.com/tair/storefront/internal/store/storetest"
)

func setupRepo(t *testing.T) (*repository.GormBasketRepository, *productdomain.Product) {
	t.Helper()
	s, db := storetest.New(t)

	p := &productdomain.Product{Name: "Mug", Price: 2.5, Stock: 10}
	require.NoError(t, s.Products.Create(context.Background(), p))
	return repository.NewGormBasketRepository(db), p
}

func TestMergeFoldsIntoExistingLine(t *testing.T) {
	repo, p := setupRepo(t)
	ctx := context.Background()

	// neither caller looked for an existing line first
	require.NoError(t, repo.Merge(ctx, &domain.BasketItem{ProductID: p.ID, Quantity: 2}))
	require.NoError(t, repo.Merge(ctx, &domain.BasketItem{ProductID: p.ID, Quantity: 3}))

	items, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, p.ID, items[0].ProductID)
}

func TestAddQuantityKeepsAtLeastOneUnit(t *testing.T) {
	repo, p := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Merge(ctx, &domain.BasketItem{ProductID: p.ID, Quantity: 2}))
	item, err := repo.LockByProductID(ctx, p.ID)
	require.NoError(t, err)

	err = repo.AddQuantity(ctx, item.ID, -2)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	require.NoError(t, repo.AddQuantity(ctx, item.ID, -1))
	err = repo.AddQuantity(ctx, item.ID, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	got, err := repo.FindByProductID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Quantity)
}

func TestLockByProductIDMissing(t *testing.T) {
	repo, p := setupRepo(t)

	_, err := repo.LockByProductID(context.Background(), p.ID)
	assert.ErrorIs(t, err, domain.ErrBasketItemNotFound)
}

func TestDeleteByProductIDAndOrphans(t *testing.T) {
	repo, p := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Merge(ctx, &domain.BasketItem{ProductID: p.ID, Quantity: 1}))
	n, err := repo.DeleteByProductID(ctx, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = repo.DeleteOrphans(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
