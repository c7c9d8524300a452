package store

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-mall-service/internal/model"
	"github.com/fekuna/omnipos-mall-service/internal/store/dto"
)

var (
	ErrStoreNotFound   = errors.New("store not found")
	ErrInvalidGeofence = errors.New("invalid geofence")
	ErrInvalidPoint    = errors.New("invalid coordinates")
)

type Serviceability struct {
	StoreID     string      `json:"store_id"`
	Point       model.Point `json:"point"`
	Serviceable bool        `json:"serviceable"`
	Reason      string      `json:"reason,omitempty"`
}

type UseCase interface {
	CreateStore(ctx context.Context, input *dto.CreateStoreInput) (*model.Store, error)
	GetStore(ctx context.Context, id string) (*model.Store, error)
	ListStores(ctx context.Context, filters *dto.StoreFilters) ([]model.Store, int, error)
	UpdateStore(ctx context.Context, input *dto.UpdateStoreInput) (*model.Store, error)
	DeleteStore(ctx context.Context, id string) error
	CheckServiceable(ctx context.Context, id string, p model.Point) (*Serviceability, error)
}
