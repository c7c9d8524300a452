package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-mall-service/internal/auth"
	"github.com/fekuna/omnipos-mall-service/internal/model"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-mall-service/internal/store"
	"github.com/fekuna/omnipos-mall-service/internal/store/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type storeUseCase struct {
	repo   store.Repository
	logger logger.ZapLogger
}

func NewStoreUseCase(repo store.Repository, log logger.ZapLogger) store.UseCase {
	return &storeUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *storeUseCase) CreateStore(ctx context.Context, input *dto.CreateStoreInput) (*model.Store, error) {
	if err := store.ValidateGeofence(input.Geofence); err != nil {
		return nil, err
	}

	now := time.Now()
	s := &model.Store{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		MerchantID:       input.MerchantID,
		Name:             input.Name,
		Category:         input.Category,
		Description:      optional(input.Description),
		LogoURL:          optional(input.LogoURL),
		DeliveryEnabled:  input.DeliveryEnabled,
		PickupEnabled:    input.PickupEnabled,
		DeliveryRadiusKm: input.DeliveryRadiusKm,
		MinOrderValue:    input.MinOrderValue,
		Geofence:         input.Geofence,
		IsActive:         true,
	}

	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	uc.logger.Info("store created", zap.String("store_id", s.ID), zap.String("merchant_id", s.MerchantID))
	return s, nil
}

func (uc *storeUseCase) GetStore(ctx context.Context, id string) (*model.Store, error) {
	s, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, store.ErrStoreNotFound
	}
	if merchantID := auth.GetMerchantID(ctx); merchantID != "" && s.MerchantID != merchantID {
		return nil, store.ErrStoreNotFound
	}
	return s, nil
}

func (uc *storeUseCase) ListStores(ctx context.Context, filters *dto.StoreFilters) ([]model.Store, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *storeUseCase) UpdateStore(ctx context.Context, input *dto.UpdateStoreInput) (*model.Store, error) {
	if err := store.ValidateGeofence(input.Geofence); err != nil {
		return nil, err
	}

	s, err := uc.GetStore(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	s.Name = input.Name
	s.Category = input.Category
	s.Description = optional(input.Description)
	s.LogoURL = optional(input.LogoURL)
	s.DeliveryEnabled = input.DeliveryEnabled
	s.PickupEnabled = input.PickupEnabled
	s.DeliveryRadiusKm = input.DeliveryRadiusKm
	s.MinOrderValue = input.MinOrderValue
	s.Geofence = input.Geofence
	s.IsActive = input.IsActive
	s.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *storeUseCase) DeleteStore(ctx context.Context, id string) error {
	s, err := uc.GetStore(ctx, id)
	if err != nil {
		return err
	}
	return uc.repo.Delete(ctx, s.MerchantID, s.ID)
}

func (uc *storeUseCase) CheckServiceable(ctx context.Context, id string, p model.Point) (*store.Serviceability, error) {
	if err := store.ValidatePoint(p); err != nil {
		return nil, err
	}
	s, err := uc.GetStore(ctx, id)
	if err != nil {
		return nil, err
	}

	res := &store.Serviceability{StoreID: s.ID, Point: p}
	switch {
	case !s.IsActive:
		res.Reason = "store_inactive"
	case !s.DeliveryEnabled:
		res.Reason = "delivery_disabled"
	case len(s.Geofence) == 0:
		res.Reason = "no_geofence"
	case !store.Contains(s.Geofence, p):
		res.Reason = "outside_geofence"
	default:
		res.Serviceable = true
	}
	return res, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
