package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geofence is a polygon ring stored as JSONB. The closing edge is implicit.
type Geofence []Point

func (g Geofence) Value() (driver.Value, error) {
	if g == nil {
		return nil, nil
	}
	return json.Marshal(g)
}

func (g *Geofence) Scan(src any) error {
	if src == nil {
		*g = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("geofence: unsupported scan type %T", src)
	}
	return json.Unmarshal(data, g)
}

type Store struct {
	BaseModel
	MerchantID       string   `db:"merchant_id" json:"merchant_id"`
	Name             string   `db:"name" json:"name"`
	Category         string   `db:"category" json:"category"`
	Description      *string  `db:"description" json:"description"`
	LogoURL          *string  `db:"logo_url" json:"logo_url"`
	DeliveryEnabled  bool     `db:"delivery_enabled" json:"delivery_enabled"`
	PickupEnabled    bool     `db:"pickup_enabled" json:"pickup_enabled"`
	DeliveryRadiusKm float64  `db:"delivery_radius_km" json:"delivery_radius_km"`
	MinOrderValue    float64  `db:"min_order_value" json:"min_order_value"`
	Geofence         Geofence `db:"geofence" json:"geofence"`
	IsActive         bool     `db:"is_active" json:"is_active"`
}
