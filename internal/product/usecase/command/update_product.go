package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/tair/storefront/internal/product/domain"
	"github.com/tair/storefront/internal/store"
	"github.com/tair/storefront/kafka"
)

// UpdateProductCommand represents a partial update. nil fields are left
// untouched. ClearDescription sets the description to null and wins over
// Description.
type UpdateProductCommand struct {
	ID               uint
	Name             *string
	Price            *float64
	Description      *string
	ClearDescription bool
	Stock            *int
}

// UpdateProductHandler handles product update command
type UpdateProductHandler struct {
	store  store.Transactor
	events kafka.EventPublisher
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(s store.Transactor, events kafka.EventPublisher) *UpdateProductHandler {
	return &UpdateProductHandler{store: s, events: events}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	if cmd.ID == 0 {
		return nil, domain.ErrProductNotFound
	}
	if err := validateFields(cmd.Name, cmd.Price, cmd.Stock); err != nil {
		return nil, err
	}

	var product *domain.Product
	err := h.store.WithTx(ctx, func(tx *store.Store) error {
		var err error
		product, err = tx.Products.FindByID(ctx, cmd.ID)
		if err != nil {
			return err
		}

		if cmd.Name != nil && *cmd.Name != product.Name {
			existing, err := tx.Products.FindByName(ctx, *cmd.Name)
			if err != nil && !errors.Is(err, domain.ErrProductNotFound) {
				return err
			}
			if existing != nil && existing.ID != product.ID {
				return domain.ErrProductNameTaken
			}
			product.Name = *cmd.Name
		}
		if cmd.Price != nil {
			product.Price = *cmd.Price
		}
		switch {
		case cmd.ClearDescription:
			product.Description = nil
		case cmd.Description != nil:
			product.Description = cmd.Description
		}
		if cmd.Stock != nil {
			product.Stock = *cmd.Stock
		}

		return tx.Products.Update(ctx, product)
	})
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) || errors.Is(err, domain.ErrProductNameTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	kafka.PublishBestEffort(ctx, h.events, kafka.Event{
		EventType: kafka.EventTypeProductUpdated,
		ProductID: product.ID,
		Stock:     product.Stock,
	})

	return product, nil
}
