package query

import (
	"context"
)

// BasketSummary totals the basket at current product prices
type BasketSummary struct {
	Lines int     `json:"lines"`
	Units int     `json:"units"`
	Total float64 `json:"total"`
}

// GetSummaryHandler handles basket summary query
type GetSummaryHandler struct {
	list *ListBasketHandler
}

func NewGetSummaryHandler(list *ListBasketHandler) *GetSummaryHandler {
	return &GetSummaryHandler{list: list}
}

func (h *GetSummaryHandler) Handle(ctx context.Context) (*BasketSummary, error) {
	lines, err := h.list.Handle(ctx)
	if err != nil {
		return nil, err
	}

	summary := &BasketSummary{Lines: len(lines)}
	for i := range lines {
		summary.Units += lines[i].Quantity
		summary.Total += lines[i].Subtotal()
	}
	return summary, nil
}
