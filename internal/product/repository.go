package product

import (
	"context"

	"github.com/fekuna/omnipos-mall-service/internal/model"
	"github.com/fekuna/omnipos-mall-service/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	CreateMany(ctx context.Context, products []*model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	// FindFamily returns the root product and every variant under it, ordered for display.
	FindFamily(ctx context.Context, merchantID, rootID string) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) error

	IsSKUUnique(ctx context.Context, merchantID, sku, excludeID string) (bool, error)
}
