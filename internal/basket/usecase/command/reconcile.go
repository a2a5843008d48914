package command

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/store"
	"github.com/tair/storefront/pkg/logger"
	"github.com/tair/storefront/pkg/metrics"
)

// ReconcileBasketHandler deletes basket lines whose product no longer exists
type ReconcileBasketHandler struct {
	store   store.Transactor
	metrics *metrics.BasketMetrics
}

func NewReconcileBasketHandler(s store.Transactor, m *metrics.BasketMetrics) *ReconcileBasketHandler {
	return &ReconcileBasketHandler{store: s, metrics: m}
}

// Handle returns the number of lines removed
func (h *ReconcileBasketHandler) Handle(ctx context.Context) (int64, error) {
	var removed int64
	err := h.store.WithTx(ctx, func(tx *store.Store) error {
		var err error
		removed, err = tx.Basket.DeleteOrphans(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to reconcile basket: %w", err)
	}

	if removed > 0 {
		h.metrics.Purged(removed)
		logger.Warn(ctx).Int64("removed", removed).Msg("Orphaned basket lines removed")
	}
	return removed, nil
}
