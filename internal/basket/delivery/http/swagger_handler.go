package http

// ListBasket godoc
// @Summary List basket lines
// @Description Every basket line with its product's current details
// @Tags Basket
// @Produce json
// @Success 200 {array} domain.BasketItem
// @Router /basket/ [get]
func (h *BasketHandler) ListBasketDoc() {}

// GetSummary godoc
// @Summary Basket totals
// @Tags Basket
// @Produce json
// @Success 200 {object} query.BasketSummary
// @Router /basket/summary [get]
func (h *BasketHandler) GetSummaryDoc() {}

// AddItem godoc
// @Summary Add a product to the basket
// @Description Reserves quantity units of the product and merges them into its basket line
// @Tags Basket
// @Accept json
// @Produce json
// @Param request body addItemRequest true "Product and quantity"
// @Success 200 {object} domain.BasketItem
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /basket/ [post]
func (h *BasketHandler) AddItemDoc() {}

// RemoveItem godoc
// @Summary Remove units of a product from the basket
// @Description Returns the units to stock. The line is deleted once empty.
// @Tags Basket
// @Produce json
// @Param product_id path int true "Product ID"
// @Param quantity query int false "Units to remove (default 1)"
// @Success 200 {object} command.RemoveItemResult
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /basket/{product_id} [delete]
func (h *BasketHandler) RemoveItemDoc() {}

// Reconcile godoc
// @Summary Drop orphaned basket lines
// @Tags Basket
// @Produce json
// @Success 200 {object} reconcileResponse
// @Router /basket/reconcile [post]
func (h *BasketHandler) ReconcileDoc() {}
