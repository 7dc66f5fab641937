package handlers

import (
	"net/http"
	"strconv"

	"storefront-service/controllers"
	"storefront-service/identity"
	"storefront-service/logger"
	"storefront-service/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CartResponse is the envelope returned by the cart action endpoints.
type CartResponse struct {
	Success bool         `json:"success"`
	Cart    *models.Cart `json:"cart,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// CartHandler exposes the cart controller over HTTP. The action endpoints
// (add, remove, clear) act on the caller's cart and answer with a
// CartResponse; the CRUD endpoints behave like ProductHandler.
type CartHandler struct {
	controller    *controllers.CartController
	defaultCartID int
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(controller *controllers.CartController, defaultCartID int) *CartHandler {
	return &CartHandler{controller: controller, defaultCartID: defaultCartID}
}

// AddItem handles POST /cart/add.
func (h *CartHandler) AddItem(c *gin.Context) {
	const failure = "Failed to add item to cart"
	cartID := identity.CartID(c.Request.Context(), h.defaultCartID)

	var item models.CartItemRequest
	if err := c.ShouldBindJSON(&item); err != nil {
		h.fail(c, failure, err, zap.Int("cart_id", cartID))
		return
	}

	cart, err := h.controller.AddToCart(c.Request.Context(), cartID, &item)
	if err != nil {
		h.fail(c, failure, err, zap.Int("cart_id", cartID), zap.Int("product_id", item.ID))
		return
	}
	c.JSON(http.StatusOK, CartResponse{Success: true, Cart: cart})
}

// RemoveItem handles DELETE /cart/remove/:product_id.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	const failure = "Failed to remove item from cart"
	cartID := identity.CartID(c.Request.Context(), h.defaultCartID)

	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		h.fail(c, failure, err, zap.Int("cart_id", cartID))
		return
	}

	cart, err := h.controller.RemoveFromCart(c.Request.Context(), cartID, productID)
	if err != nil {
		h.fail(c, failure, err, zap.Int("cart_id", cartID), zap.Int("product_id", productID))
		return
	}
	c.JSON(http.StatusOK, CartResponse{Success: true, Cart: cart})
}

// ClearCart handles DELETE /cart/clear.
func (h *CartHandler) ClearCart(c *gin.Context) {
	cartID := identity.CartID(c.Request.Context(), h.defaultCartID)

	cart, err := h.controller.ClearCart(c.Request.Context(), cartID)
	if err != nil {
		h.fail(c, "Failed to clear cart", err, zap.Int("cart_id", cartID))
		return
	}
	c.JSON(http.StatusOK, CartResponse{Success: true, Cart: cart})
}

func (h *CartHandler) fail(c *gin.Context, message string, err error, fields ...zap.Field) {
	logger.Error(c, message, err, fields...)
	c.JSON(http.StatusInternalServerError, CartResponse{Success: false, Error: message})
}

// ListCarts handles GET /carts.
func (h *CartHandler) ListCarts(c *gin.Context) {
	carts, err := h.controller.ListCarts(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, carts)
}

// GetCart handles GET /carts/:id.
func (h *CartHandler) GetCart(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	cart, err := h.controller.GetCart(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// CreateCart handles POST /carts.
func (h *CartHandler) CreateCart(c *gin.Context) {
	var input models.CartInput
	if err := bindJSON(c, &input); err != nil {
		_ = c.Error(err)
		return
	}

	cart, err := h.controller.CreateCart(c.Request.Context(), &input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, cart)
}

// UpdateCart handles PUT /carts/:id.
func (h *CartHandler) UpdateCart(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	var patch models.CartPatch
	if err := bindJSON(c, &patch); err != nil {
		_ = c.Error(err)
		return
	}

	cart, err := h.controller.UpdateCart(c.Request.Context(), id, &patch)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// DeleteCart handles DELETE /carts/:id.
func (h *CartHandler) DeleteCart(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	ack, err := h.controller.DeleteCart(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ack)
}
