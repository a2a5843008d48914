package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/tair/storefront/internal/product/domain"
	"github.com/tair/storefront/internal/store"
	"github.com/tair/storefront/kafka"
	"github.com/tair/storefront/pkg/logger"
)

// DeleteProductCommand represents the command to delete a product
type DeleteProductCommand struct {
	ID uint
}

// DeleteProductHandler handles product deletion command
type DeleteProductHandler struct {
	store  store.Transactor
	events kafka.EventPublisher
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(s store.Transactor, events kafka.EventPublisher) *DeleteProductHandler {
	return &DeleteProductHandler{store: s, events: events}
}

// Handle deletes the product together with any basket line that reserves it
func (h *DeleteProductHandler) Handle(ctx context.Context, cmd DeleteProductCommand) error {
	if cmd.ID == 0 {
		return domain.ErrProductNotFound
	}

	var removedLines int64
	err := h.store.WithTx(ctx, func(tx *store.Store) error {
		if _, err := tx.Products.FindByID(ctx, cmd.ID); err != nil {
			return err
		}

		var err error
		removedLines, err = tx.Basket.DeleteByProductID(ctx, cmd.ID)
		if err != nil {
			return err
		}

		return tx.Products.Delete(ctx, cmd.ID)
	})
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	logger.Info(ctx).
		Uint("product_id", cmd.ID).
		Int64("basket_lines_removed", removedLines).
		Msg("Product deleted")

	kafka.PublishBestEffort(ctx, h.events, kafka.Event{
		EventType: kafka.EventTypeProductDeleted,
		ProductID: cmd.ID,
	})

	return nil
}
