package routes

import (
	"net/http"

	"storefront-service/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterProductRoutes sets up the product CRUD routes.
func RegisterProductRoutes(r *gin.Engine, h *handlers.ProductHandler) {
	productRoutes := r.Group("/products")
	productRoutes.GET("", h.ListProducts)
	productRoutes.POST("", h.CreateProduct)
	productRoutes.GET("/:id", h.GetProduct)
	productRoutes.PUT("/:id", h.UpdateProduct)
	productRoutes.DELETE("/:id", h.DeleteProduct)
}

// RegisterCartRoutes sets up the caller's cart actions and the cart CRUD
// routes. idempotency guards add-to-cart; pass nil to skip it.
func RegisterCartRoutes(r *gin.Engine, h *handlers.CartHandler, idempotency gin.HandlerFunc) {
	cartRoutes := r.Group("/cart")
	if idempotency != nil {
		cartRoutes.POST("/add", idempotency, h.AddItem)
	} else {
		cartRoutes.POST("/add", h.AddItem)
	}
	cartRoutes.DELETE("/remove/:product_id", h.RemoveItem)
	cartRoutes.DELETE("/clear", h.ClearCart)

	cartsRoutes := r.Group("/carts")
	cartsRoutes.GET("", h.ListCarts)
	cartsRoutes.POST("", h.CreateCart)
	cartsRoutes.GET("/:id", h.GetCart)
	cartsRoutes.PUT("/:id", h.UpdateCart)
	cartsRoutes.DELETE("/:id", h.DeleteCart)
}

// RegisterHealthRoute sets up GET /health.
func RegisterHealthRoute(r *gin.Engine, serviceName string) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": serviceName})
	})
}
