package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/tair/storefront/internal/basket/domain"
	productdomain "github.com/tair/storefront/internal/product/domain"
	"github.com/tair/storefront/internal/store"
	"github.com/tair/storefront/kafka"
	"github.com/tair/storefront/pkg/logger"
	"github.com/tair/storefront/pkg/metrics"
)

// AddItemCommand reserves Quantity units of a product in the basket
type AddItemCommand struct {
	ProductID uint
	Quantity  int
}

// AddItemHandler handles add-to-basket command
type AddItemHandler struct {
	store   store.Transactor
	events  kafka.EventPublisher
	metrics *metrics.BasketMetrics
}

// NewAddItemHandler creates a new add item handler
func NewAddItemHandler(s store.Transactor, events kafka.EventPublisher, m *metrics.BasketMetrics) *AddItemHandler {
	return &AddItemHandler{store: s, events: events, metrics: m}
}

// Handle takes the units from stock and merges them into the product's basket
// line, creating the line if needed. The returned line carries the product as
// it is after the decrement.
func (h *AddItemHandler) Handle(ctx context.Context, cmd AddItemCommand) (*domain.BasketItem, error) {
	if cmd.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrInvalidQuantity)
	}
	if cmd.ProductID == 0 {
		return nil, productdomain.ErrProductNotFound
	}

	var item *domain.BasketItem
	err := h.store.WithTx(ctx, func(tx *store.Store) error {
		product, err := tx.Products.FindByID(ctx, cmd.ProductID)
		if err != nil {
			return err
		}
		if !product.CanReserve(cmd.Quantity) {
			return domain.ErrInsufficientStock
		}

		// AdjustStock re-checks atomically; a concurrent add can still win here.
		ok, err := tx.Products.AdjustStock(ctx, product.ID, -cmd.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInsufficientStock
		}

		// Merge folds a concurrent first add into the same line
		if err := tx.Basket.Merge(ctx, &domain.BasketItem{ProductID: product.ID, Quantity: cmd.Quantity}); err != nil {
			return err
		}
		item, err = tx.Basket.FindByProductID(ctx, product.ID)
		if err != nil {
			return err
		}

		item.Product, err = tx.Products.FindByID(ctx, product.ID)
		return err
	})
	if err != nil {
		if isBasketError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to add item to basket: %w", err)
	}

	h.metrics.Reserved(cmd.Quantity)
	logger.Info(ctx).
		Uint("product_id", cmd.ProductID).
		Int("quantity", cmd.Quantity).
		Int("line_quantity", item.Quantity).
		Int("stock", item.Product.Stock).
		Msg("Item added to basket")

	kafka.PublishBestEffort(ctx, h.events, kafka.Event{
		EventType: kafka.EventTypeBasketItemAdded,
		ProductID: cmd.ProductID,
		Quantity:  cmd.Quantity,
		Stock:     item.Product.Stock,
	})

	return item, nil
}

func isBasketError(err error) bool {
	return errors.Is(err, productdomain.ErrProductNotFound) ||
		errors.Is(err, domain.ErrBasketItemNotFound) ||
		errors.Is(err, domain.ErrInsufficientStock) ||
		errors.Is(err, domain.ErrInvalidQuantity)
}
