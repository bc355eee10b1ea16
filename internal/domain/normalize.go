package domain

import (
	"errors"
	"fmt"
	"time"
)

// UnknownPlace substitutes for a null or empty place description.
const UnknownPlace = "Unknown location"

var (
	// ErrMissingMagnitude rejects a feature whose magnitude is null.
	// Unreviewed events carry no severity and are skipped, not fatal.
	ErrMissingMagnitude = errors.New("missing magnitude")

	// ErrMalformedGeometry rejects a feature without at least
	// (longitude, latitude) coordinate components.
	ErrMalformedGeometry = errors.New("malformed geometry")
)

// NormalizeFeature converts a raw feed entry into a canonical Event.
// The feed's (lon, lat, depth) coordinate order is permuted to lat-first;
// a missing depth component defaults to 0. Rejections wrap
// ErrMissingMagnitude or ErrMalformedGeometry with the feature id.
func NormalizeFeature(f Feature) (Event, error) {
	if len(f.Geometry.Coordinates) < 2 {
		return Event{}, fmt.Errorf("feature %q: %w: %d coordinate components",
			f.ID, ErrMalformedGeometry, len(f.Geometry.Coordinates))
	}
	if f.Properties.Mag == nil {
		return Event{}, fmt.Errorf("feature %q: %w", f.ID, ErrMissingMagnitude)
	}

	var depth float64
	if len(f.Geometry.Coordinates) >= 3 {
		depth = f.Geometry.Coordinates[2]
	}

	place := UnknownPlace
	if f.Properties.Place != nil && *f.Properties.Place != "" {
		place = *f.Properties.Place
	}

	return Event{
		ID:         f.ID,
		Latitude:   f.Geometry.Coordinates[1],
		Longitude:  f.Geometry.Coordinates[0],
		DepthKm:    depth,
		Magnitude:  *f.Properties.Mag,
		Place:      place,
		ObservedAt: time.UnixMilli(f.Properties.Time).UTC(),
	}, nil
}
