package repository

import (
	"context"
	"fmt"
	"net/http"

	"storefront-service/models"
)

const productsPath = "/products"

// StoreProductRepository implements ProductRepo over the remote store's HTTP API.
type StoreProductRepository struct {
	store StoreDoer
}

// NewStoreProductRepository creates a new StoreProductRepository.
func NewStoreProductRepository(store StoreDoer) ProductRepo {
	return &StoreProductRepository{store: store}
}

func (r *StoreProductRepository) ListAll(ctx context.Context) (*models.ProductCollection, error) {
	var out models.ProductCollection
	if err := mustFetch(ctx, r.store, http.MethodGet, productsPath, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *StoreProductRepository) GetByID(ctx context.Context, id int) (*models.Product, error) {
	var out models.Product
	found, err := fetch(ctx, r.store, http.MethodGet, productPath(id), nil, &out)
	if err != nil || !found {
		return nil, err
	}
	return &out, nil
}

func (r *StoreProductRepository) Create(ctx context.Context, input *models.ProductInput) (*models.Product, error) {
	var out models.Product
	if err := mustFetch(ctx, r.store, http.MethodPost, productsPath, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *StoreProductRepository) Update(ctx context.Context, id int, patch *models.ProductPatch) (*models.Product, error) {
	var out models.Product
	found, err := fetch(ctx, r.store, http.MethodPut, productPath(id), patch, &out)
	if err != nil || !found {
		return nil, err
	}
	return &out, nil
}

func (r *StoreProductRepository) Delete(ctx context.Context, id int) (bool, error) {
	return remove(ctx, r.store, productPath(id))
}

func productPath(id int) string {
	return fmt.Sprintf("%s/%d", productsPath, id)
}
