package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	basketdomain "github.com/tair/storefront/internal/basket/domain"
	"github.com/tair/storefront/internal/product/domain"
	"github.com/tair/storefront/internal/store/storetest"
	"github.com/tair/storefront/kafka"
	"github.com/tair/storefront/kafka/kafkatest"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestCreateProduct(t *testing.T) {
	s, _ := storetest.New(t)
	events := &kafkatest.Recorder{}
	h := NewCreateProductHandler(s, events)
	ctx := context.Background()

	p, err := h.Handle(ctx, CreateProductCommand{Name: "Mug", Price: 7.5, Stock: 10})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, "Mug", p.Name)
	assert.Nil(t, p.Description)
	assert.Equal(t, []string{kafka.EventTypeProductCreated}, events.Types())
}

func TestCreateProductDuplicateName(t *testing.T) {
	s, _ := storetest.New(t)
	h := NewCreateProductHandler(s, kafka.NoopPublisher{})
	ctx := context.Background()

	_, err := h.Handle(ctx, CreateProductCommand{Name: "Mug", Price: 7.5, Stock: 10})
	require.NoError(t, err)

	_, err = h.Handle(ctx, CreateProductCommand{Name: "Mug", Price: 1, Stock: 1})
	assert.ErrorIs(t, err, domain.ErrProductNameTaken)

	count, err := s.Products.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestCreateProductValidation(t *testing.T) {
	s, _ := storetest.New(t)
	h := NewCreateProductHandler(s, kafka.NoopPublisher{})

	tests := []struct {
		name string
		cmd  CreateProductCommand
	}{
		{"empty name", CreateProductCommand{Name: "", Price: 1}},
		{"negative price", CreateProductCommand{Name: "Mug", Price: -1}},
		{"negative stock", CreateProductCommand{Name: "Mug", Price: 1, Stock: -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Handle(context.Background(), tt.cmd)
			assert.ErrorIs(t, err, domain.ErrInvalidProduct)
		})
	}
}

func TestCreateProductPublishFailureDoesNotFail(t *testing.T) {
	s, _ := storetest.New(t)
	h := NewCreateProductHandler(s, &kafkatest.Recorder{Err: errors.New("broker down")})

	p, err := h.Handle(context.Background(), CreateProductCommand{Name: "Mug", Price: 1})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
}

func TestUpdateProductPartial(t *testing.T) {
	s, _ := storetest.New(t)
	ctx := context.Background()
	created, err := NewCreateProductHandler(s, nil).Handle(ctx, CreateProductCommand{
		Name: "Mug", Price: 7.5, Description: strPtr("ceramic"), Stock: 10,
	})
	require.NoError(t, err)

	events := &kafkatest.Recorder{}
	h := NewUpdateProductHandler(s, events)

	updated, err := h.Handle(ctx, UpdateProductCommand{ID: created.ID, Price: floatPtr(9)})
	require.NoError(t, err)
	assert.Equal(t, "Mug", updated.Name)
	assert.Equal(t, 9.0, updated.Price)
	assert.Equal(t, 10, updated.Stock)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "ceramic", *updated.Description)

	updated, err = h.Handle(ctx, UpdateProductCommand{ID: created.ID, Name: strPtr("Cup"), Stock: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, "Cup", updated.Name)
	assert.Equal(t, 3, updated.Stock)

	stored, err := s.Products.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cup", stored.Name)
	assert.Equal(t, 9.0, stored.Price)
	assert.Equal(t, 3, stored.Stock)

	assert.Equal(t, []string{kafka.EventTypeProductUpdated, kafka.EventTypeProductUpdated}, events.Types())
}

func TestUpdateProductClearsDescription(t *testing.T) {
	s, _ := storetest.New(t)
	ctx := context.Background()
	created, err := NewCreateProductHandler(s, nil).Handle(ctx, CreateProductCommand{
		Name: "Mug", Price: 7.5, Description: strPtr("ceramic"), Stock: 10,
	})
	require.NoError(t, err)

	h := NewUpdateProductHandler(s, nil)
	updated, err := h.Handle(ctx, UpdateProductCommand{ID: created.ID, ClearDescription: true})
	require.NoError(t, err)
	assert.Nil(t, updated.Description)

	stored, err := s.Products.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Description)
	assert.Equal(t, "Mug", stored.Name)
	assert.Equal(t, 10, stored.Stock)
}

func TestCreateProductKeepsNameAsSent(t *testing.T) {
	s, _ := storetest.New(t)
	h := NewCreateProductHandler(s, nil)
	ctx := context.Background()

	_, err := h.Handle(ctx, CreateProductCommand{Name: "Mug", Price: 1})
	require.NoError(t, err)

	padded, err := h.Handle(ctx, CreateProductCommand{Name: "  Mug ", Price: 1})
	require.NoError(t, err)
	assert.Equal(t, "  Mug ", padded.Name)
}

func TestUpdateProductErrors(t *testing.T) {
	s, _ := storetest.New(t)
	ctx := context.Background()
	create := NewCreateProductHandler(s, nil)
	mug, err := create.Handle(ctx, CreateProductCommand{Name: "Mug", Price: 1})
	require.NoError(t, err)
	_, err = create.Handle(ctx, CreateProductCommand{Name: "Cup", Price: 1})
	require.NoError(t, err)

	h := NewUpdateProductHandler(s, nil)

	_, err = h.Handle(ctx, UpdateProductCommand{ID: 999, Price: floatPtr(1)})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = h.Handle(ctx, UpdateProductCommand{ID: mug.ID, Name: strPtr("Cup")})
	assert.ErrorIs(t, err, domain.ErrProductNameTaken)

	_, err = h.Handle(ctx, UpdateProductCommand{ID: mug.ID, Stock: intPtr(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidProduct)

	// renaming to its own name is not a conflict
	_, err = h.Handle(ctx, UpdateProductCommand{ID: mug.ID, Name: strPtr("Mug")})
	assert.NoError(t, err)
}

func TestDeleteProductCascadesBasket(t *testing.T) {
	s, _ := storetest.New(t)
	ctx := context.Background()
	p, err := NewCreateProductHandler(s, nil).Handle(ctx, CreateProductCommand{Name: "Mug", Price: 1, Stock: 5})
	require.NoError(t, err)
	require.NoError(t, s.Basket.Merge(ctx, &basketdomain.BasketItem{ProductID: p.ID, Quantity: 2}))

	events := &kafkatest.Recorder{}
	h := NewDeleteProductHandler(s, events)
	require.NoError(t, h.Handle(ctx, DeleteProductCommand{ID: p.ID}))

	_, err = s.Products.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	_, err = s.Basket.FindByProductID(ctx, p.ID)
	assert.ErrorIs(t, err, basketdomain.ErrBasketItemNotFound)
	assert.Equal(t, []string{kafka.EventTypeProductDeleted}, events.Types())

	assert.ErrorIs(t, h.Handle(ctx, DeleteProductCommand{ID: p.ID}), domain.ErrProductNotFound)
}
