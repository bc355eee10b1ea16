package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Coordinate
		wantKm float64
		within float64
	}{
		{
			name:   "Tokyo to Osaka",
			a:      Coordinate{Lat: 35.6762, Lon: 139.6503},
			b:      Coordinate{Lat: 34.6937, Lon: 135.5023},
			wantKm: 396,
			within: 5,
		},
		{
			name:   "San Francisco to Los Angeles",
			a:      Coordinate{Lat: 37.7749, Lon: -122.4194},
			b:      Coordinate{Lat: 34.0522, Lon: -118.2437},
			wantKm: 559,
			within: 5,
		},
		{
			name:   "equator quarter circumference",
			a:      Coordinate{Lat: 0, Lon: 0},
			b:      Coordinate{Lat: 0, Lon: 90},
			wantKm: 10007.5,
			within: 10,
		},
		{
			name:   "pole to pole",
			a:      Coordinate{Lat: 90, Lon: 0},
			b:      Coordinate{Lat: -90, Lon: 0},
			wantKm: 20015,
			within: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.wantKm, HaversineKm(tt.a, tt.b), tt.within)
		})
	}
}

func TestHaversineKm_IdenticalPointsAreZero(t *testing.T) {
	p := Coordinate{Lat: 35.6762, Lon: 139.6503}
	assert.Zero(t, HaversineKm(p, p))
}

func TestHaversineKm_AntipodalIsFinite(t *testing.T) {
	a := Coordinate{Lat: 35.0, Lon: 139.0}
	b := Coordinate{Lat: -35.0, Lon: -41.0}

	d := HaversineKm(a, b)
	assert.False(t, math.IsNaN(d))
	// Antipodal distance is half the circumference.
	assert.InDelta(t, math.Pi*earthRadiusKm, d, 1)
}
