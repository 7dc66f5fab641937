package services_test

import (
	"context"
	"testing"

	"storefront-service/models"
	"storefront-service/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- In-memory repository ---

type memProductRepo struct {
	products map[int]*models.Product
	nextID   int
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[int]*models.Product), nextID: 1}
}

func (m *memProductRepo) ListAll(_ context.Context) (*models.ProductCollection, error) {
	out := &models.ProductCollection{}
	for id := 1; id < m.nextID; id++ {
		if p, ok := m.products[id]; ok {
			out.Products = append(out.Products, *p)
		}
	}
	out.Total = len(out.Products)
	out.Limit = len(out.Products)
	return out, nil
}

func (m *memProductRepo) GetByID(_ context.Context, id int) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProductRepo) Create(_ context.Context, in *models.ProductInput) (*models.Product, error) {
	p := &models.Product{
		ID:          m.nextID,
		Title:       in.Title,
		Price:       in.Price,
		Category:    in.Category,
		Description: in.Description,
		Images:      in.Images,
		Quantity:    in.Quantity,
	}
	m.products[p.ID] = p
	m.nextID++
	cp := *p
	return &cp, nil
}

func (m *memProductRepo) Update(_ context.Context, id int, patch *models.ProductPatch) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	cp := *p
	return &cp, nil
}

func (m *memProductRepo) Delete(_ context.Context, id int) (bool, error) {
	if _, ok := m.products[id]; !ok {
		return false, nil
	}
	delete(m.products, id)
	return true, nil
}

func TestProductService_Lifecycle(t *testing.T) {
	svc := services.NewProductService(newMemProductRepo())
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, &models.ProductInput{Title: "Desk Lamp", Price: decimal.RequireFromString("24.50")})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)

	got, err := svc.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Desk Lamp", got.Title)

	title := "Floor Lamp"
	updated, err := svc.UpdateProduct(ctx, created.ID, &models.ProductPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Floor Lamp", updated.Title)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("24.5")))

	list, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, list.Products, 1)

	ok, err := svc.DeleteProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.DeleteProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	missing, err := svc.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductService_UpdateMissing(t *testing.T) {
	svc := services.NewProductService(newMemProductRepo())
	p, err := svc.UpdateProduct(context.Background(), 99, &models.ProductPatch{})
	assert.NoError(t, err)
	assert.Nil(t, p)
}
