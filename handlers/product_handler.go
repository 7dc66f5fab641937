package handlers

import (
	"net/http"

	"storefront-service/controllers"
	"storefront-service/models"

	"github.com/gin-gonic/gin"
)

// ProductHandler exposes the product controller over HTTP. Failures are
// attached to the gin context and rendered by apperrors.ErrorMiddleware.
type ProductHandler struct {
	controller *controllers.ProductController
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(controller *controllers.ProductController) *ProductHandler {
	return &ProductHandler{controller: controller}
}

// ListProducts handles GET /products.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.controller.ListProducts(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /products/:id.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	product, err := h.controller.GetProduct(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct handles POST /products.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var input models.ProductInput
	if err := bindJSON(c, &input); err != nil {
		_ = c.Error(err)
		return
	}

	product, err := h.controller.CreateProduct(c.Request.Context(), &input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PUT /products/:id.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	var patch models.ProductPatch
	if err := bindJSON(c, &patch); err != nil {
		_ = c.Error(err)
		return
	}

	product, err := h.controller.UpdateProduct(c.Request.Context(), id, &patch)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/:id.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	ack, err := h.controller.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ack)
}
