package store

import (
	"fmt"

	"github.com/fekuna/omnipos-mall-service/internal/model"
)

func ValidatePoint(p model.Point) error {
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidPoint, p.Lat)
	}
	if p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalidPoint, p.Lng)
	}
	return nil
}

// ValidateGeofence accepts rings with or without a repeated closing point. An empty fence is valid
// and means the store has no delivery area.
func ValidateGeofence(g model.Geofence) error {
	if len(g) == 0 {
		return nil
	}
	distinct := map[model.Point]bool{}
	for i, p := range g {
		if err := ValidatePoint(p); err != nil {
			return fmt.Errorf("%w: point %d: %v", ErrInvalidGeofence, i, err)
		}
		distinct[p] = true
	}
	if len(distinct) < 3 {
		return fmt.Errorf("%w: need at least 3 distinct points, got %d", ErrInvalidGeofence, len(distinct))
	}
	return nil
}

// Contains reports whether p lies inside the ring using even-odd ray casting. Points exactly on an
// edge may land on either side.
func Contains(g model.Geofence, p model.Point) bool {
	n := len(g)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := g[i], g[j]
		if (a.Lat > p.Lat) != (b.Lat > p.Lat) {
			x := (b.Lng-a.Lng)*(p.Lat-a.Lat)/(b.Lat-a.Lat) + a.Lng
			if p.Lng < x {
				inside = !inside
			}
		}
	}
	return inside
}
