package store

import (
	"context"

	"github.com/fekuna/omnipos-mall-service/internal/model"
	"github.com/fekuna/omnipos-mall-service/internal/store/dto"
)

type Repository interface {
	Create(ctx context.Context, s *model.Store) error
	FindByID(ctx context.Context, id string) (*model.Store, error)
	FindAll(ctx context.Context, filters *dto.StoreFilters) ([]model.Store, int, error)
	Update(ctx context.Context, s *model.Store) error
	Delete(ctx context.Context, merchantID, id string) error
}
