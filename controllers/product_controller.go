package controllers

import (
	"context"

	"storefront-service/apperrors"
	"storefront-service/models"
	"storefront-service/services"

	"github.com/go-playground/validator/v10"
)

// ProductController validates product requests and shapes their results.
type ProductController struct {
	productService services.ProductService
	validate       *validator.Validate
}

// NewProductController creates a new ProductController.
func NewProductController(productService services.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
		validate:       newValidator(),
	}
}

func (pc *ProductController) ListProducts(ctx context.Context) (*models.ProductCollection, error) {
	return pc.productService.ListProducts(ctx)
}

func (pc *ProductController) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	if err := pc.validate.Var(id, "gte=0"); err != nil {
		return nil, apperrors.InvalidArgument("Invalid product id")
	}

	product, err := pc.productService.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperrors.NotFound("Product not found")
	}
	return product, nil
}

func (pc *ProductController) CreateProduct(ctx context.Context, input *models.ProductInput) (*models.Product, error) {
	if input == nil || pc.validate.Struct(input) != nil {
		return nil, apperrors.InvalidArgument("Invalid product data")
	}
	return pc.productService.CreateProduct(ctx, input)
}

func (pc *ProductController) UpdateProduct(ctx context.Context, id int, patch *models.ProductPatch) (*models.Product, error) {
	if patch == nil || pc.validate.Struct(patch) != nil {
		return nil, apperrors.InvalidArgument("Invalid product data")
	}

	product, err := pc.productService.UpdateProduct(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperrors.NotFound("Product not found")
	}
	return product, nil
}

func (pc *ProductController) DeleteProduct(ctx context.Context, id int) (*models.Ack, error) {
	ok, err := pc.productService.DeleteProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NotFound("Product not found")
	}
	return &models.Ack{Success: true}, nil
}
