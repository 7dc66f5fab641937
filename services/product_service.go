package services

import (
	"context"

	"storefront-service/models"
	"storefront-service/repository"
)

// ProductService defines the product operations offered to controllers.
type ProductService interface {
	ListProducts(ctx context.Context) (*models.ProductCollection, error)
	GetProduct(ctx context.Context, id int) (*models.Product, error)
	CreateProduct(ctx context.Context, input *models.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int, patch *models.ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int) (bool, error)
}

type productServiceImpl struct {
	repo repository.ProductRepo
}

// NewProductService creates a new ProductService.
func NewProductService(repo repository.ProductRepo) ProductService {
	return &productServiceImpl{repo: repo}
}

func (s *productServiceImpl) ListProducts(ctx context.Context) (*models.ProductCollection, error) {
	return s.repo.ListAll(ctx)
}

func (s *productServiceImpl) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *productServiceImpl) CreateProduct(ctx context.Context, input *models.ProductInput) (*models.Product, error) {
	return s.repo.Create(ctx, input)
}

func (s *productServiceImpl) UpdateProduct(ctx context.Context, id int, patch *models.ProductPatch) (*models.Product, error) {
	return s.repo.Update(ctx, id, patch)
}

func (s *productServiceImpl) DeleteProduct(ctx context.Context, id int) (bool, error) {
	return s.repo.Delete(ctx, id)
}
