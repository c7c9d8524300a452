package dto

import "github.com/fekuna/omnipos-mall-service/internal/model"

type StoreFilters struct {
	MerchantID      string
	Category        string
	DeliveryEnabled *bool
	IsActive        *bool
	Page            int
	PageSize        int
}

type CreateStoreInput struct {
	MerchantID       string         `json:"-"`
	Name             string         `json:"name" binding:"required"`
	Category         string         `json:"category" binding:"required"`
	Description      string         `json:"description"`
	LogoURL          string         `json:"logo_url"`
	DeliveryEnabled  bool           `json:"delivery_enabled"`
	PickupEnabled    bool           `json:"pickup_enabled"`
	DeliveryRadiusKm float64        `json:"delivery_radius_km" binding:"gte=0"`
	MinOrderValue    float64        `json:"min_order_value" binding:"gte=0"`
	Geofence         model.Geofence `json:"geofence"`
}

type UpdateStoreInput struct {
	ID               string         `json:"-"`
	MerchantID       string         `json:"-"`
	Name             string         `json:"name" binding:"required"`
	Category         string         `json:"category" binding:"required"`
	Description      string         `json:"description"`
	LogoURL          string         `json:"logo_url"`
	DeliveryEnabled  bool           `json:"delivery_enabled"`
	PickupEnabled    bool           `json:"pickup_enabled"`
	DeliveryRadiusKm float64        `json:"delivery_radius_km" binding:"gte=0"`
	MinOrderValue    float64        `json:"min_order_value" binding:"gte=0"`
	Geofence         model.Geofence `json:"geofence"`
	IsActive         bool           `json:"is_active"`
}
