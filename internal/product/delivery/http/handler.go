package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/tair/storefront/internal/product/domain"
	"github.com/tair/storefront/internal/product/usecase/command"
	"github.com/tair/storefront/internal/product/usecase/query"
	"github.com/tair/storefront/pkg/logger"
	"github.com/tair/storefront/pkg/metrics"
	"github.com/tair/storefront/pkg/response"
)

const (
	msgProductNotFound = "Product not found!"
	msgNameTaken       = "Product name already registered!"
	msgProductDeleted  = "Product was deleted successfully!"
)

// ProductHandler handles HTTP requests for products using CQRS pattern
type ProductHandler struct {
	// Command handlers
	createHandler *command.CreateProductHandler
	updateHandler *command.UpdateProductHandler
	deleteHandler *command.DeleteProductHandler

	// Query handlers
	getProductHandler *query.GetProductHandler
	listHandler       *query.ListProductsHandler
	statsHandler      *query.GetStatsHandler

	metrics  *metrics.HTTPMetrics
	validate *validator.Validate
}

// NewProductHandler creates a new product handler
func NewProductHandler(
	createHandler *command.CreateProductHandler,
	updateHandler *command.UpdateProductHandler,
	deleteHandler *command.DeleteProductHandler,
	getProductHandler *query.GetProductHandler,
	listHandler *query.ListProductsHandler,
	statsHandler *query.GetStatsHandler,
	m *metrics.HTTPMetrics,
	validate *validator.Validate,
) *ProductHandler {
	return &ProductHandler{
		createHandler:     createHandler,
		updateHandler:     updateHandler,
		deleteHandler:     deleteHandler,
		getProductHandler: getProductHandler,
		listHandler:       listHandler,
		statsHandler:      statsHandler,
		metrics:           m,
		validate:          validate,
	}
}

type createProductRequest struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Description *string  `json:"description"`
	Stock       *int     `json:"stock" validate:"required,gte=0"`
}

// updateProductRequest fields left out of the body are not changed. An
// explicit null description clears it; null for the other fields is ignored.
type updateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,max=255"`
	Price       *float64         `json:"price" validate:"omitempty,gte=0"`
	Description nullable[string] `json:"description"`
	Stock       *int             `json:"stock" validate:"omitempty,gte=0"`
}

// nullable records whether a field was present in the body at all, so an
// explicit null can be told apart from a missing key.
type nullable[T any] struct {
	Set   bool
	Value *T
}

func (n *nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// RegisterRoutes registers the product routes. Collection routes answer with
// and without the trailing slash.
func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	for _, path := range []string{"/products", "/products/"} {
		router.HandleFunc(path, h.metrics.Wrap("/products/", h.ListProducts)).Methods(http.MethodGet)
		router.HandleFunc(path, h.metrics.Wrap("/products/", h.CreateProduct)).Methods(http.MethodPost)
	}
	router.HandleFunc("/products/stats", h.metrics.Wrap("/products/stats", h.GetStats)).Methods(http.MethodGet)
	router.HandleFunc("/products/{id}", h.metrics.Wrap("/products/{id}", h.GetProduct)).Methods(http.MethodGet)
	router.HandleFunc("/products/{id}", h.metrics.Wrap("/products/{id}", h.UpdateProduct)).Methods(http.MethodPut)
	router.HandleFunc("/products/{id}", h.metrics.Wrap("/products/{id}", h.DeleteProduct)).Methods(http.MethodDelete)
}

// ListProducts handles GET /products/
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.listHandler.Handle(r.Context(), query.ListProductsQuery{})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, products)
}

// CreateProduct handles POST /products/
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if !h.decode(w, r, &req) {
		return
	}

	product, err := h.createHandler.Handle(r.Context(), command.CreateProductCommand{
		Name:        req.Name,
		Price:       *req.Price,
		Description: req.Description,
		Stock:       *req.Stock,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, product)
}

// GetProduct handles GET /products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	product, err := h.getProductHandler.Handle(r.Context(), query.GetProductQuery{ID: id})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, product)
}

// UpdateProduct handles PUT /products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	var req updateProductRequest
	if !h.decode(w, r, &req) {
		return
	}

	product, err := h.updateHandler.Handle(r.Context(), command.UpdateProductCommand{
		ID:               id,
		Name:             req.Name,
		Price:            req.Price,
		Description:      req.Description.Value,
		ClearDescription: req.Description.Set && req.Description.Value == nil,
		Stock:            req.Stock,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteProductCommand{ID: id}); err != nil {
		h.respondError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.MessageBody{Message: msgProductDeleted})
}

// GetStats handles GET /products/stats
func (h *ProductHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsHandler.Handle(r.Context(), query.GetStatsQuery{})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, stats)
}

func (h *ProductHandler) decode(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.Detail(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := h.validate.Struct(req); err != nil {
		response.Detail(w, http.StatusBadRequest, validationDetail(err))
		return false
	}
	return true
}

func (h *ProductHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		response.Detail(w, http.StatusNotFound, msgProductNotFound)
	case errors.Is(err, domain.ErrProductNameTaken):
		response.Detail(w, http.StatusBadRequest, msgNameTaken)
	case errors.Is(err, domain.ErrInvalidProduct):
		response.Detail(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error(r.Context()).
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Product request failed")
		response.Detail(w, http.StatusInternalServerError, "Internal server error")
	}
}

func productID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		response.Detail(w, http.StatusBadRequest, "Invalid product ID")
		return 0, false
	}
	return uint(id), true
}

// validationDetail turns validator errors into a single readable message
func validationDetail(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request body"
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", field))
		case "gte":
			parts = append(parts, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		case "max":
			parts = append(parts, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(parts, "; ")
}
