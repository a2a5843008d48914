package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/basket/domain"
	productdomain "github.com/tair/storefront/internal/product/domain"
	"github.com/tair/storefront/internal/store/storetest"
)

func TestListBasketSkipsOrphansWithoutDeleting(t *testing.T) {
	s, db := storetest.New(t)
	ctx := context.Background()

	mug := &productdomain.Product{Name: "Mug", Price: 2.5, Stock: 5}
	cup := &productdomain.Product{Name: "Cup", Price: 1, Stock: 5}
	require.NoError(t, s.Products.Create(ctx, mug))
	require.NoError(t, s.Products.Create(ctx, cup))
	require.NoError(t, s.Basket.Merge(ctx, &domain.BasketItem{ProductID: mug.ID, Quantity: 2}))
	require.NoError(t, s.Basket.Merge(ctx, &domain.BasketItem{ProductID: cup.ID, Quantity: 1}))
	require.NoError(t, db.Exec("DELETE FROM products WHERE id = ?", cup.ID).Error)

	h := NewListBasketHandler(s.Basket)

	lines, err := h.Handle(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "Mug", lines[0].Product.Name)
	assert.Equal(t, 2, lines[0].Quantity)

	var stored int64
	require.NoError(t, db.Model(&domain.BasketItem{}).Count(&stored).Error)
	assert.EqualValues(t, 2, stored, "listing must not delete orphaned lines")
}

func TestListBasketEmpty(t *testing.T) {
	s, _ := storetest.New(t)

	lines, err := NewListBasketHandler(s.Basket).Handle(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, lines)
	assert.Empty(t, lines)
}

func TestGetSummary(t *testing.T) {
	s, _ := storetest.New(t)
	ctx := context.Background()

	mug := &productdomain.Product{Name: "Mug", Price: 2.5, Stock: 5}
	cup := &productdomain.Product{Name: "Cup", Price: 1, Stock: 5}
	require.NoError(t, s.Products.Create(ctx, mug))
	require.NoError(t, s.Products.Create(ctx, cup))
	require.NoError(t, s.Basket.Merge(ctx, &domain.BasketItem{ProductID: mug.ID, Quantity: 2}))
	require.NoError(t, s.Basket.Merge(ctx, &domain.BasketItem{ProductID: cup.ID, Quantity: 3}))

	summary, err := NewGetSummaryHandler(NewListBasketHandler(s.Basket)).Handle(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Lines)
	assert.Equal(t, 5, summary.Units)
	assert.InDelta(t, 8.0, summary.Total, 1e-9)
}
