package command

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/basket/domain"
	productdomain "github.com/tair/storefront/internal/product/domain"
	"github.com/tair/storefront/internal/store"
	"github.com/tair/storefront/kafka"
	"github.com/tair/storefront/pkg/logger"
	"github.com/tair/storefront/pkg/metrics"
)

const (
	MessageItemDecremented = "Product quantity decremented in basket"
	MessageItemRemoved     = "Product removed from basket"
)

// RemoveItemCommand returns Quantity units of a product from the basket to
// stock. A zero Quantity means one unit.
type RemoveItemCommand struct {
	ProductID uint
	Quantity  int
}

// RemoveItemResult describes what happened to the basket line
type RemoveItemResult struct {
	Message   string `json:"message"`
	Quantity  int    `json:"quantity"`
	Removed   bool   `json:"-"`
	Remaining int    `json:"-"`
}

// RemoveItemHandler handles remove-from-basket command
type RemoveItemHandler struct {
	store   store.Transactor
	events  kafka.EventPublisher
	metrics *metrics.BasketMetrics
}

// NewRemoveItemHandler creates a new remove item handler
func NewRemoveItemHandler(s store.Transactor, events kafka.EventPublisher, m *metrics.BasketMetrics) *RemoveItemHandler {
	return &RemoveItemHandler{store: s, events: events, metrics: m}
}

// Handle restores the units to stock, then shrinks the line or deletes it
// when nothing is left.
func (h *RemoveItemHandler) Handle(ctx context.Context, cmd RemoveItemCommand) (*RemoveItemResult, error) {
	if cmd.Quantity == 0 {
		cmd.Quantity = 1
	}
	if cmd.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrInvalidQuantity)
	}

	result := &RemoveItemResult{}
	err := h.store.WithTx(ctx, func(tx *store.Store) error {
		item, err := tx.Basket.LockByProductID(ctx, cmd.ProductID)
		if err != nil {
			return err
		}
		if cmd.Quantity > item.Quantity {
			return fmt.Errorf("%w: basket holds %d units", domain.ErrInvalidQuantity, item.Quantity)
		}

		result.Remaining = item.Quantity - cmd.Quantity
		if result.Remaining == 0 {
			result.Removed = true
			err = tx.Basket.Delete(ctx, item.ID)
		} else {
			err = tx.Basket.AddQuantity(ctx, item.ID, -cmd.Quantity)
		}
		if err != nil {
			return err
		}

		ok, err := tx.Products.AdjustStock(ctx, cmd.ProductID, cmd.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			return productdomain.ErrProductNotFound
		}
		return nil
	})
	if err != nil {
		if isBasketError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to remove item from basket: %w", err)
	}

	result.Quantity = result.Remaining
	result.Message = MessageItemDecremented
	if result.Removed {
		result.Message = MessageItemRemoved
	}

	h.metrics.Released(cmd.Quantity)
	logger.Info(ctx).
		Uint("product_id", cmd.ProductID).
		Int("quantity", cmd.Quantity).
		Int("remaining", result.Remaining).
		Msg(result.Message)

	kafka.PublishBestEffort(ctx, h.events, kafka.Event{
		EventType: kafka.EventTypeBasketItemRemoved,
		ProductID: cmd.ProductID,
		Quantity:  cmd.Quantity,
	})

	return result, nil
}
