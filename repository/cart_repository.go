package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"storefront-service/apperrors"
	"storefront-service/clients"
	"storefront-service/models"
)

const cartsPath = "/carts"

// StoreCartRepository implements CartRepo over the remote store's HTTP API.
type StoreCartRepository struct {
	store StoreDoer
	now   func() time.Time
}

// NewStoreCartRepository creates a new StoreCartRepository.
func NewStoreCartRepository(store StoreDoer) CartRepo {
	return &StoreCartRepository{store: store, now: time.Now}
}

func (r *StoreCartRepository) ListAll(ctx context.Context) (*models.CartCollection, error) {
	var out models.CartCollection
	if err := mustFetch(ctx, r.store, http.MethodGet, cartsPath, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *StoreCartRepository) GetByID(ctx context.Context, id int) (*models.Cart, error) {
	var out models.Cart
	found, err := fetch(ctx, r.store, http.MethodGet, cartPath(id), nil, &out)
	if err != nil || !found {
		return nil, err
	}
	return &out, nil
}

func (r *StoreCartRepository) Create(ctx context.Context, input *models.CartInput) (*models.Cart, error) {
	var out models.Cart
	if err := mustFetch(ctx, r.store, http.MethodPost, cartsPath, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *StoreCartRepository) Update(ctx context.Context, id int, patch *models.CartPatch) (*models.Cart, error) {
	var out models.Cart
	found, err := fetch(ctx, r.store, http.MethodPut, cartPath(id), patch, &out)
	if err != nil || !found {
		return nil, err
	}
	return &out, nil
}

func (r *StoreCartRepository) Delete(ctx context.Context, id int) (bool, error) {
	return remove(ctx, r.store, cartPath(id))
}

// Clear PUTs an empty cart over cartID and returns the document it sent.
func (r *StoreCartRepository) Clear(ctx context.Context, cartID, userID int) (*models.Cart, error) {
	empty := &models.Cart{
		ID:       cartID,
		UserID:   userID,
		Date:     models.ISODate(r.now()),
		Products: []models.Product{},
	}

	path := cartPath(cartID)
	resp, err := r.store.Do(ctx, http.MethodPut, path, empty)
	if err != nil {
		return nil, apperrors.TransportFailure("PUT "+path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, apperrors.TransportFailure("Failed to clear cart", clients.NewUpstreamError(resp))
	}
	clients.Drain(resp)
	return empty, nil
}

func cartPath(id int) string {
	return fmt.Sprintf("%s/%d", cartsPath, id)
}
