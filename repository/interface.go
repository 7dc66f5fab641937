package repository

import (
	"context"

	"storefront-service/models"
)

// ProductRepo is the product side of the remote store. A nil product with a
// nil error means the store has no such product.
type ProductRepo interface {
	ListAll(ctx context.Context) (*models.ProductCollection, error)
	GetByID(ctx context.Context, id int) (*models.Product, error)
	Create(ctx context.Context, input *models.ProductInput) (*models.Product, error)
	Update(ctx context.Context, id int, patch *models.ProductPatch) (*models.Product, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// CartRepo is the cart side of the remote store, with the same absence rules
// as ProductRepo.
type CartRepo interface {
	ListAll(ctx context.Context) (*models.CartCollection, error)
	GetByID(ctx context.Context, id int) (*models.Cart, error)
	Create(ctx context.Context, input *models.CartInput) (*models.Cart, error)
	Update(ctx context.Context, id int, patch *models.CartPatch) (*models.Cart, error)
	Delete(ctx context.Context, id int) (bool, error)
	// Clear replaces the whole cart document with an empty one.
	Clear(ctx context.Context, cartID, userID int) (*models.Cart, error)
}
