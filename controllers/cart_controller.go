package controllers

import (
	"context"

	"storefront-service/apperrors"
	"storefront-service/models"
	"storefront-service/services"

	"github.com/go-playground/validator/v10"
)

// CartController validates cart requests. Cart mutations are delegated to
// the service, which owns the merge and filter rules.
type CartController struct {
	cartService services.CartService
	validate    *validator.Validate
}

// NewCartController creates a new CartController.
func NewCartController(cartService services.CartService) *CartController {
	return &CartController{
		cartService: cartService,
		validate:    newValidator(),
	}
}

func (cc *CartController) ListCarts(ctx context.Context) (*models.CartCollection, error) {
	return cc.cartService.GetAllCarts(ctx)
}

func (cc *CartController) GetCart(ctx context.Context, id int) (*models.Cart, error) {
	cart, err := cc.cartService.GetCartByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, apperrors.NotFound("Cart not found")
	}
	return cart, nil
}

func (cc *CartController) CreateCart(ctx context.Context, input *models.CartInput) (*models.Cart, error) {
	if input == nil {
		return nil, apperrors.InvalidArgument("Invalid cart data")
	}
	return cc.cartService.CreateCart(ctx, input)
}

func (cc *CartController) UpdateCart(ctx context.Context, id int, patch *models.CartPatch) (*models.Cart, error) {
	if patch == nil {
		return nil, apperrors.InvalidArgument("Invalid cart data")
	}
	// The path id names the cart.
	patch.ID = nil

	cart, err := cc.cartService.UpdateCart(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, apperrors.NotFound("Cart not found")
	}
	return cart, nil
}

func (cc *CartController) DeleteCart(ctx context.Context, id int) (*models.Ack, error) {
	ok, err := cc.cartService.DeleteCart(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NotFound("Cart not found")
	}
	return &models.Ack{Success: true}, nil
}

// AddToCart rejects negative ids and quantities before touching the cart.
func (cc *CartController) AddToCart(ctx context.Context, cartID int, item *models.CartItemRequest) (*models.Cart, error) {
	if item == nil || cc.validate.Struct(item) != nil {
		return nil, apperrors.InvalidArgument("Invalid cart item")
	}
	return cc.cartService.AddToCart(ctx, cartID, item.LineItem())
}

func (cc *CartController) RemoveFromCart(ctx context.Context, cartID, productID int) (*models.Cart, error) {
	return cc.cartService.RemoveFromCart(ctx, cartID, productID)
}

func (cc *CartController) ClearCart(ctx context.Context, cartID int) (*models.Cart, error) {
	return cc.cartService.ClearCart(ctx, cartID)
}
