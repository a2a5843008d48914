package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/tair/storefront/internal/basket/domain"
	"github.com/tair/storefront/internal/basket/usecase/command"
	"github.com/tair/storefront/internal/basket/usecase/query"
	productdomain "github.com/tair/storefront/internal/product/domain"
	"github.com/tair/storefront/pkg/logger"
	"github.com/tair/storefront/pkg/metrics"
	"github.com/tair/storefront/pkg/response"
)

// BasketHandler handles HTTP requests for the shared basket
type BasketHandler struct {
	addHandler       *command.AddItemHandler
	removeHandler    *command.RemoveItemHandler
	reconcileHandler *command.ReconcileBasketHandler

	listHandler    *query.ListBasketHandler
	summaryHandler *query.GetSummaryHandler

	metrics  *metrics.HTTPMetrics
	validate *validator.Validate
}

// NewBasketHandler creates a new basket handler
func NewBasketHandler(
	addHandler *command.AddItemHandler,
	removeHandler *command.RemoveItemHandler,
	reconcileHandler *command.ReconcileBasketHandler,
	listHandler *query.ListBasketHandler,
	summaryHandler *query.GetSummaryHandler,
	m *metrics.HTTPMetrics,
	validate *validator.Validate,
) *BasketHandler {
	return &BasketHandler{
		addHandler:       addHandler,
		removeHandler:    removeHandler,
		reconcileHandler: reconcileHandler,
		listHandler:      listHandler,
		summaryHandler:   summaryHandler,
		metrics:          m,
		validate:         validate,
	}
}

type addItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,min=1"`
}

type reconcileResponse struct {
	Message string `json:"message"`
	Removed int64  `json:"removed"`
}

func (h *BasketHandler) RegisterRoutes(router *mux.Router) {
	for _, path := range []string{"/basket", "/basket/"} {
		router.HandleFunc(path, h.metrics.Wrap("/basket/", h.ListBasket)).Methods(http.MethodGet)
		router.HandleFunc(path, h.metrics.Wrap("/basket/", h.AddItem)).Methods(http.MethodPost)
	}
	router.HandleFunc("/basket/summary", h.metrics.Wrap("/basket/summary", h.GetSummary)).Methods(http.MethodGet)
	router.HandleFunc("/basket/reconcile", h.metrics.Wrap("/basket/reconcile", h.Reconcile)).Methods(http.MethodPost)
	router.HandleFunc("/basket/{product_id}", h.metrics.Wrap("/basket/{product_id}", h.RemoveItem)).Methods(http.MethodDelete)
}

// ListBasket handles GET /basket/
func (h *BasketHandler) ListBasket(w http.ResponseWriter, r *http.Request) {
	lines, err := h.listHandler.Handle(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, lines)
}

// GetSummary handles GET /basket/summary
func (h *BasketHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.summaryHandler.Handle(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, summary)
}

// AddItem handles POST /basket/
func (h *BasketHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Detail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		response.Detail(w, http.StatusBadRequest, "product_id and a quantity of at least 1 are required")
		return
	}

	item, err := h.addHandler.Handle(r.Context(), command.AddItemCommand{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

// RemoveItem handles DELETE /basket/{product_id}?quantity=k
func (h *BasketHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseUint(mux.Vars(r)["product_id"], 10, 32)
	if err != nil {
		response.Detail(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	quantity := 1
	if raw := r.URL.Query().Get("quantity"); raw != "" {
		quantity, err = strconv.Atoi(raw)
		if err != nil || quantity < 1 {
			response.Detail(w, http.StatusBadRequest, "quantity must be a positive integer")
			return
		}
	}

	result, err := h.removeHandler.Handle(r.Context(), command.RemoveItemCommand{
		ProductID: uint(productID),
		Quantity:  quantity,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

// Reconcile handles POST /basket/reconcile
func (h *BasketHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	removed, err := h.reconcileHandler.Handle(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, reconcileResponse{
		Message: "Basket reconciled",
		Removed: removed,
	})
}

func (h *BasketHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, productdomain.ErrProductNotFound):
		response.Detail(w, http.StatusNotFound, "Product not found!")
	case errors.Is(err, domain.ErrBasketItemNotFound):
		response.Detail(w, http.StatusNotFound, "Product not found in basket!")
	case errors.Is(err, domain.ErrInsufficientStock):
		response.Detail(w, http.StatusBadRequest, "Not enough stock available!")
	case errors.Is(err, domain.ErrInvalidQuantity):
		response.Detail(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error(r.Context()).
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Basket request failed")
		response.Detail(w, http.StatusInternalServerError, "Internal server error")
	}
}
