package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/tair/storefront/internal/product/domain"
	"github.com/tair/storefront/internal/store"
	"github.com/tair/storefront/kafka"
)

// CreateProductCommand represents the command to create a new product
type CreateProductCommand struct {
	Name        string
	Price       float64
	Description *string
	Stock       int
}

// CreateProductHandler handles product creation command
type CreateProductHandler struct {
	store  store.Transactor
	events kafka.EventPublisher
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(s store.Transactor, events kafka.EventPublisher) *CreateProductHandler {
	return &CreateProductHandler{store: s, events: events}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	if err := validateFields(&cmd.Name, &cmd.Price, &cmd.Stock); err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:        cmd.Name,
		Price:       cmd.Price,
		Description: cmd.Description,
		Stock:       cmd.Stock,
	}

	err := h.store.WithTx(ctx, func(tx *store.Store) error {
		existing, err := tx.Products.FindByName(ctx, cmd.Name)
		if err != nil && !errors.Is(err, domain.ErrProductNotFound) {
			return err
		}
		if existing != nil {
			return domain.ErrProductNameTaken
		}
		return tx.Products.Create(ctx, product)
	})
	if err != nil {
		if errors.Is(err, domain.ErrProductNameTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	kafka.PublishBestEffort(ctx, h.events, kafka.Event{
		EventType: kafka.EventTypeProductCreated,
		ProductID: product.ID,
		Stock:     product.Stock,
	})

	return product, nil
}

// validateFields checks the fields that are set. nil means the field is not being changed.
func validateFields(name *string, price *float64, stock *int) error {
	if name != nil && *name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidProduct)
	}
	if price != nil && *price < 0 {
		return fmt.Errorf("%w: price cannot be negative", domain.ErrInvalidProduct)
	}
	if stock != nil && *stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", domain.ErrInvalidProduct)
	}
	return nil
}
