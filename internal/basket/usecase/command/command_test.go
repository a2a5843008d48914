package command

import (
	"context"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tair/storefront/internal/basket/domain"
	productdomain "github.com/tair/storefront/internal/product/domain"
	"github.com/tair/storefront/internal/store"
	"github.com/tair/storefront/internal/store/storetest"
	"github.com/tair/storefront/kafka"
	"github.com/tair/storefront/kafka/kafkatest"
	"github.com/tair/storefront/pkg/metrics"
)

type fixture struct {
	store  *store.Store
	db     *gorm.DB
	events *kafkatest.Recorder
	add    *AddItemHandler
	remove *RemoveItemHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s, db := storetest.New(t)
	events := &kafkatest.Recorder{}
	m := metrics.NewBasketMetrics(prometheus.NewRegistry())
	return &fixture{
		store:  s,
		db:     db,
		events: events,
		add:    NewAddItemHandler(s, events, m),
		remove: NewRemoveItemHandler(s, events, m),
	}
}

func (f *fixture) product(t *testing.T, name string, stock int) *productdomain.Product {
	t.Helper()
	p := &productdomain.Product{Name: name, Price: 2.5, Stock: stock}
	require.NoError(t, f.store.Products.Create(context.Background(), p))
	return p
}

func (f *fixture) stock(t *testing.T, id uint) int {
	t.Helper()
	p, err := f.store.Products.FindByID(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

func TestAddItemCreatesAndMergesLine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Mug", 10)

	item, err := f.add.Handle(ctx, AddItemCommand{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	require.NotNil(t, item.Product)
	assert.Equal(t, 8, item.Product.Stock)

	item, err = f.add.Handle(ctx, AddItemCommand{ProductID: p.ID, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
	assert.Equal(t, 5, item.Product.Stock)

	lines, err := f.store.Basket.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, lines, 1, "one line per product")
	assert.Equal(t, 5, f.stock(t, p.ID))

	assert.Equal(t, []string{kafka.EventTypeBasketItemAdded, kafka.EventTypeBasketItemAdded}, f.events.Types())
}

func TestAddItemErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Mug", 2)

	_, err := f.add.Handle(ctx, AddItemCommand{ProductID: 999, Quantity: 1})
	assert.ErrorIs(t, err, productdomain.ErrProductNotFound)

	_, err = f.add.Handle(ctx, AddItemCommand{ProductID: p.ID, Quantity: 3})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = f.add.Handle(ctx, AddItemCommand{ProductID: p.ID, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	assert.Equal(t, 2, f.stock(t, p.ID), "failed adds leave stock unchanged")
	_, err = f.store.Basket.FindByProductID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrBasketItemNotFound)
	assert.Empty(t, f.events.Types())
}

func TestRemoveItemDecrementsThenDeletes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Mug", 10)

	_, err := f.add.Handle(ctx, AddItemCommand{ProductID: p.ID, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 7, f.stock(t, p.ID))

	res, err := f.remove.Handle(ctx, RemoveItemCommand{ProductID: p.ID})
	require.NoError(t, err)
	assert.False(t, res.Removed)
	assert.Equal(t, 2, res.Remaining)
	assert.Equal(t, MessageItemDecremented, res.Message)
	assert.Equal(t, 8, f.stock(t, p.ID))

	res, err = f.remove.Handle(ctx, RemoveItemCommand{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)
	assert.True(t, res.Removed)
	assert.Equal(t, 0, res.Quantity)
	assert.Equal(t, MessageItemRemoved, res.Message)
	assert.Equal(t, 10, f.stock(t, p.ID))

	_, err = f.store.Basket.FindByProductID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrBasketItemNotFound)
}

func TestRemoveItemErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Mug", 10)

	_, err := f.remove.Handle(ctx, RemoveItemCommand{ProductID: p.ID})
	assert.ErrorIs(t, err, domain.ErrBasketItemNotFound)

	_, err = f.add.Handle(ctx, AddItemCommand{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	_, err = f.remove.Handle(ctx, RemoveItemCommand{ProductID: p.ID, Quantity: 3})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.remove.Handle(ctx, RemoveItemCommand{ProductID: p.ID, Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Equal(t, 8, f.stock(t, p.ID))

	// product row vanished underneath the line
	require.NoError(t, f.db.Exec("DELETE FROM products WHERE id = ?", p.ID).Error)
	_, err = f.remove.Handle(ctx, RemoveItemCommand{ProductID: p.ID})
	assert.ErrorIs(t, err, productdomain.ErrProductNotFound)
}

func TestReconcileRemovesOrphans(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kept := f.product(t, "Mug", 10)
	gone := f.product(t, "Cup", 10)

	_, err := f.add.Handle(ctx, AddItemCommand{ProductID: kept.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = f.add.Handle(ctx, AddItemCommand{ProductID: gone.ID, Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, f.db.Exec("DELETE FROM products WHERE id = ?", gone.ID).Error)

	h := NewReconcileBasketHandler(f.store, nil)

	removed, err := h.Handle(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	removed, err = h.Handle(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, removed)

	lines, err := f.store.Basket.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, kept.ID, lines[0].ProductID)
}

func TestConcurrentRemovesNeverLeaveEmptyLine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Mug", 10)

	_, err := f.add.Handle(ctx, AddItemCommand{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.remove.Handle(ctx, RemoveItemCommand{ProductID: p.ID})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	_, err = f.store.Basket.FindByProductID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrBasketItemNotFound)
	assert.Equal(t, 10, f.stock(t, p.ID))
}

func TestConcurrentFirstAddsMergeIntoOneLine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Mug", 10)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.add.Handle(ctx, AddItemCommand{ProductID: p.ID, Quantity: 1})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	item, err := f.store.Basket.FindByProductID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 8, f.stock(t, p.ID))
}
