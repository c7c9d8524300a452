package store

import (
	"errors"
	"testing"

	"github.com/fekuna/omnipos-mall-service/internal/model"
)

// roughly central Bengaluru
var square = model.Geofence{
	{Lat: 12.90, Lng: 77.55},
	{Lat: 12.90, Lng: 77.65},
	{Lat: 13.00, Lng: 77.65},
	{Lat: 13.00, Lng: 77.55},
}

func TestValidateGeofence(t *testing.T) {
	tests := []struct {
		name    string
		fence   model.Geofence
		wantErr bool
	}{
		{name: "empty", fence: nil},
		{name: "square", fence: square},
		{name: "closed ring", fence: append(append(model.Geofence{}, square...), square[0])},
		{name: "two points", fence: model.Geofence{{Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}}, wantErr: true},
		{name: "repeated point", fence: model.Geofence{{Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}, {Lat: 1, Lng: 1}}, wantErr: true},
		{name: "latitude out of range", fence: model.Geofence{{Lat: 91, Lng: 1}, {Lat: 2, Lng: 2}, {Lat: 3, Lng: 1}}, wantErr: true},
		{name: "longitude out of range", fence: model.Geofence{{Lat: 1, Lng: 181}, {Lat: 2, Lng: 2}, {Lat: 3, Lng: 1}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGeofence(tt.fence)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidGeofence) {
					t.Fatalf("expected ErrInvalidGeofence, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestContains(t *testing.T) {
	// L-shaped ring to exercise a concave edge
	ell := model.Geofence{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 4},
		{Lat: 2, Lng: 4},
		{Lat: 2, Lng: 2},
		{Lat: 4, Lng: 2},
		{Lat: 4, Lng: 0},
	}

	tests := []struct {
		name  string
		fence model.Geofence
		p     model.Point
		want  bool
	}{
		{"center of square", square, model.Point{Lat: 12.95, Lng: 77.60}, true},
		{"east of square", square, model.Point{Lat: 12.95, Lng: 77.70}, false},
		{"north of square", square, model.Point{Lat: 13.05, Lng: 77.60}, false},
		{"inside lower arm", ell, model.Point{Lat: 1, Lng: 3}, true},
		{"inside upper arm", ell, model.Point{Lat: 3, Lng: 1}, true},
		{"in the notch", ell, model.Point{Lat: 3, Lng: 3}, false},
		{"degenerate fence", model.Geofence{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}}, model.Point{Lat: 0.5, Lng: 0.5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Contains(tt.fence, tt.p); got != tt.want {
				t.Fatalf("Contains(%v): got=%v want=%v", tt.p, got, tt.want)
			}
		})
	}
}
