package controllers_test

import (
	"context"
	"errors"
	"testing"

	"storefront-service/apperrors"
	"storefront-service/controllers"
	"storefront-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock CartService ---

type mockCartService struct {
	listFn   func(ctx context.Context) (*models.CartCollection, error)
	getFn    func(ctx context.Context, id int) (*models.Cart, error)
	createFn func(ctx context.Context, input *models.CartInput) (*models.Cart, error)
	updateFn func(ctx context.Context, id int, patch *models.CartPatch) (*models.Cart, error)
	deleteFn func(ctx context.Context, id int) (bool, error)
	addFn    func(ctx context.Context, cartID int, item models.Product) (*models.Cart, error)
	removeFn func(ctx context.Context, cartID, productID int) (*models.Cart, error)
	clearFn  func(ctx context.Context, cartID int) (*models.Cart, error)
	calls    int
}

func (m *mockCartService) GetAllCarts(ctx context.Context) (*models.CartCollection, error) {
	m.calls++
	return m.listFn(ctx)
}
func (m *mockCartService) GetCartByID(ctx context.Context, id int) (*models.Cart, error) {
	m.calls++
	return m.getFn(ctx, id)
}
func (m *mockCartService) CreateCart(ctx context.Context, input *models.CartInput) (*models.Cart, error) {
	m.calls++
	return m.createFn(ctx, input)
}
func (m *mockCartService) UpdateCart(ctx context.Context, id int, patch *models.CartPatch) (*models.Cart, error) {
	m.calls++
	return m.updateFn(ctx, id, patch)
}
func (m *mockCartService) DeleteCart(ctx context.Context, id int) (bool, error) {
	m.calls++
	return m.deleteFn(ctx, id)
}
func (m *mockCartService) AddToCart(ctx context.Context, cartID int, item models.Product) (*models.Cart, error) {
	m.calls++
	return m.addFn(ctx, cartID, item)
}
func (m *mockCartService) RemoveFromCart(ctx context.Context, cartID, productID int) (*models.Cart, error) {
	m.calls++
	return m.removeFn(ctx, cartID, productID)
}
func (m *mockCartService) ClearCart(ctx context.Context, cartID int) (*models.Cart, error) {
	m.calls++
	return m.clearFn(ctx, cartID)
}

func sampleCart() *models.Cart {
	return &models.Cart{ID: 1, UserID: 1, Date: "2023-05-17", Products: []models.Product{}}
}

func TestGetCart(t *testing.T) {
	svc := &mockCartService{getFn: func(_ context.Context, id int) (*models.Cart, error) {
		if id == 1 {
			return sampleCart(), nil
		}
		return nil, nil
	}}
	cc := controllers.NewCartController(svc)

	cart, err := cc.GetCart(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, sampleCart(), cart)

	_, err = cc.GetCart(context.Background(), 2)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Equal(t, "Cart not found", apperrors.From(err).Message)
}

func TestListAndCreateCart(t *testing.T) {
	svc := &mockCartService{
		listFn: func(context.Context) (*models.CartCollection, error) {
			return &models.CartCollection{Carts: []models.Cart{*sampleCart()}, Total: 1}, nil
		},
		createFn: func(_ context.Context, input *models.CartInput) (*models.Cart, error) {
			return &models.Cart{ID: 51, UserID: input.UserID, Date: input.Date, Products: input.Products}, nil
		},
	}
	cc := controllers.NewCartController(svc)

	list, err := cc.ListCarts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	created, err := cc.CreateCart(context.Background(), &models.CartInput{UserID: 1, Date: "2023-05-17", Products: []models.Product{}})
	require.NoError(t, err)
	assert.Equal(t, 51, created.ID)
}

func TestUpdateCart(t *testing.T) {
	svc := &mockCartService{updateFn: func(_ context.Context, id int, patch *models.CartPatch) (*models.Cart, error) {
		if patch.ID != nil {
			return nil, errors.New("body id forwarded")
		}
		if id != 1 {
			return nil, nil
		}
		c := sampleCart()
		c.UserID = *patch.UserID
		return c, nil
	}}
	cc := controllers.NewCartController(svc)

	userID := 2
	cart, err := cc.UpdateCart(context.Background(), 1, &models.CartPatch{UserID: &userID})
	require.NoError(t, err)
	assert.Equal(t, 2, cart.UserID)

	_, err = cc.UpdateCart(context.Background(), 3, &models.CartPatch{UserID: &userID})
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	bodyID := 7
	cart, err = cc.UpdateCart(context.Background(), 1, &models.CartPatch{ID: &bodyID, UserID: &userID})
	require.NoError(t, err)
	assert.Equal(t, 1, cart.ID)
}

func TestDeleteCart(t *testing.T) {
	svc := &mockCartService{deleteFn: func(_ context.Context, id int) (bool, error) {
		return id == 1, nil
	}}
	cc := controllers.NewCartController(svc)

	ack, err := cc.DeleteCart(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, ack.Success)

	_, err = cc.DeleteCart(context.Background(), 2)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestAddToCart_DelegatesLineItem(t *testing.T) {
	var got models.Product
	svc := &mockCartService{addFn: func(_ context.Context, cartID int, item models.Product) (*models.Cart, error) {
		got = item
		c := sampleCart()
		c.ID = cartID
		c.Products = []models.Product{item}
		return c, nil
	}}
	cc := controllers.NewCartController(svc)

	cart, err := cc.AddToCart(context.Background(), 4, &models.CartItemRequest{ID: 7, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 4, cart.ID)
	assert.Equal(t, 7, got.ID)
	assert.Equal(t, 2, got.Quantity)
}

func TestAddToCart_RejectsNegativeInput(t *testing.T) {
	svc := &mockCartService{}
	cc := controllers.NewCartController(svc)

	_, err := cc.AddToCart(context.Background(), 1, &models.CartItemRequest{ID: -1, Quantity: 1})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidArgument))

	_, err = cc.AddToCart(context.Background(), 1, &models.CartItemRequest{ID: 1, Quantity: -1})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidArgument))

	assert.Zero(t, svc.calls)
}

func TestRemoveAndClear_Delegate(t *testing.T) {
	svc := &mockCartService{
		removeFn: func(_ context.Context, cartID, productID int) (*models.Cart, error) {
			if cartID != 1 {
				return nil, apperrors.NotFound("Cart not found")
			}
			return sampleCart(), nil
		},
		clearFn: func(_ context.Context, cartID int) (*models.Cart, error) {
			return sampleCart(), nil
		},
	}
	cc := controllers.NewCartController(svc)

	cart, err := cc.RemoveFromCart(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Empty(t, cart.Products)

	_, err = cc.RemoveFromCart(context.Background(), 2, 1)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	cleared, err := cc.ClearCart(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, cleared.Products)
}
