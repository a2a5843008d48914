package query

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/product/domain"
)

// GetStatsQuery represents the query to get product statistics
type GetStatsQuery struct{}

// ProductStats represents catalogue statistics
type ProductStats struct {
	TotalProducts   int64   `json:"total_products"`
	InStockProducts int64   `json:"in_stock_products"`
	TotalStock      int64   `json:"total_stock"`
	AveragePrice    float64 `json:"average_price"`
	InventoryValue  float64 `json:"inventory_value"`
}

// GetStatsHandler handles get stats query
type GetStatsHandler struct {
	repo domain.ProductRepository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(repo domain.ProductRepository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo}
}

// Handle executes the get stats query
func (h *GetStatsHandler) Handle(ctx context.Context, _ GetStatsQuery) (*ProductStats, error) {
	products, err := h.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	stats := &ProductStats{TotalProducts: int64(len(products))}
	var totalPrice float64
	for _, product := range products {
		if product.IsAvailable() {
			stats.InStockProducts++
		}
		stats.TotalStock += int64(product.Stock)
		stats.InventoryValue += product.Price * float64(product.Stock)
		totalPrice += product.Price
	}

	if stats.TotalProducts > 0 {
		stats.AveragePrice = totalPrice / float64(stats.TotalProducts)
	}

	return stats, nil
}
