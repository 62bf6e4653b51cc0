package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/conektaolatam-netizen/conektao-sub003/internal/i18n"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/service"
)

// ProductsHandler provides HTTP handlers for accepted product costs.
type ProductsHandler struct {
	productService service.ProductService
}

// NewProductsHandler creates a new products handler.
func NewProductsHandler(productService service.ProductService) *ProductsHandler {
	return &ProductsHandler{
		productService: productService,
	}
}

// productError maps product service errors to HTTP responses.
func productError(c *gin.Context, err error) {
	builder := NewResponseBuilder(c)
	if errors.Is(err, service.ErrRepositoryNotConfigured) {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyInternalError, err)
		return
	}
	builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
}

// List handles GET /api/products requests.
//
// @Summary      List products
// @Description  Returns accepted product costs, most recently updated first. Use the limit query parameter to cap the result size.
// @Tags         Products
// @Produce      json
// @Param        limit query int false "Maximum number of products to return" default(50)
// @Success      200 {object} dto.SuccessResponse "Products"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/products [get]
func (h *ProductsHandler) List(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	products, err := h.productService.List(c.Request.Context(), limit)
	if err != nil {
		productError(c, err)
		return
	}

	NewResponseBuilder(c).SuccessOK(products)
}

// GetByName handles GET /api/products/:name requests.
//
// @Summary      Get a product by name
// @Description  Returns the accepted cost record for a product.
// @Tags         Products
// @Produce      json
// @Param        name path string true "Product name"
// @Success      200 {object} dto.SuccessResponse "Product"
// @Failure      404 {object} dto.ErrorResponse "Product not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/products/{name} [get]
func (h *ProductsHandler) GetByName(c *gin.Context) {
	builder := NewResponseBuilder(c)

	product, err := h.productService.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		productError(c, err)
		return
	}
	if product == nil {
		builder.Error(http.StatusNotFound, i18n.ErrKeyNotFound, nil)
		return
	}

	builder.SuccessOK(product)
}

// Delete handles DELETE /api/products/:id requests.
//
// @Summary      Delete a product
// @Description  Removes an accepted product cost record by its ID.
// @Tags         Products
// @Produce      json
// @Param        id path string true "Product ID (hex ObjectID)"
// @Success      200 {object} dto.SuccessResponse "Product deleted"
// @Failure      400 {object} dto.ErrorResponse "Invalid product ID"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/products/{id} [delete]
func (h *ProductsHandler) Delete(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		productError(c, err)
		return
	}

	auditLog(c, "delete_product", "Product deleted", map[string]interface{}{
		"product_id": id.Hex(),
	})

	builder.SuccessOK(map[string]string{"message": "Product deleted"})
}
