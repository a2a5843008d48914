package query

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/basket/domain"
)

// ListBasketHandler returns the basket lines joined with their products
type ListBasketHandler struct {
	repo domain.BasketRepository
}

func NewListBasketHandler(repo domain.BasketRepository) *ListBasketHandler {
	return &ListBasketHandler{repo: repo}
}

// Handle skips lines whose product is gone. It never writes; orphaned lines
// are cleaned up by reconciliation.
func (h *ListBasketHandler) Handle(ctx context.Context) ([]domain.BasketItem, error) {
	items, err := h.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list basket: %w", err)
	}

	lines := make([]domain.BasketItem, 0, len(items))
	for _, item := range items {
		if item.IsOrphan() {
			continue
		}
		lines = append(lines, item)
	}
	return lines, nil
}
