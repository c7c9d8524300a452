package product

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-mall-service/internal/model"
	"github.com/fekuna/omnipos-mall-service/internal/product/dto"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrSKUExists       = errors.New("SKU already exists")
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	// Variant ops
	AddVariants(ctx context.Context, parentID string, inputs []*dto.CreateProductInput) ([]*model.Product, error)
	ListFamily(ctx context.Context, id string) ([]model.Product, error)
}
