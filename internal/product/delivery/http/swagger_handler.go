package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// ListProducts godoc
// @Summary List all products
// @Description Get every product ordered by id
// @Tags Products
// @Produce json
// @Success 200 {array} domain.Product
// @Failure 500 {object} response.ErrorBody
// @Router /products/ [get]
func (h *ProductHandler) ListProductsDoc() {}

// CreateProduct godoc
// @Summary Create a new product
// @Description Create a product. Names are unique.
// @Tags Products
// @Accept json
// @Produce json
// @Param request body createProductRequest true "Product data"
// @Success 200 {object} domain.Product
// @Failure 400 {object} response.ErrorBody
// @Router /products/ [post]
func (h *ProductHandler) CreateProductDoc() {}

// GetProduct godoc
// @Summary Get product by ID
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /products/{id} [get]
func (h *ProductHandler) GetProductDoc() {}

// UpdateProduct godoc
// @Summary Update a product
// @Description Partial update: fields that are missing or null keep their value
// @Tags Products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body updateProductRequest true "Fields to change"
// @Success 200 {object} domain.Product
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /products/{id} [put]
func (h *ProductHandler) UpdateProductDoc() {}

// DeleteProduct godoc
// @Summary Delete a product
// @Description Delete a product and any basket line holding it
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} response.MessageBody
// @Failure 404 {object} response.ErrorBody
// @Router /products/{id} [delete]
func (h *ProductHandler) DeleteProductDoc() {}

// GetStats godoc
// @Summary Get product statistics
// @Tags Products
// @Produce json
// @Success 200 {object} query.ProductStats
// @Failure 500 {object} response.ErrorBody
// @Router /products/stats [get]
func (h *ProductHandler) GetStatsDoc() {}
