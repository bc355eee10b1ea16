package domain

import "time"

// Feed is a USGS GeoJSON FeatureCollection as returned by the summary feeds.
type Feed struct {
	Type     string    `json:"type"`
	Metadata Metadata  `json:"metadata"`
	Features []Feature `json:"features"`
}

// Metadata describes the feed document itself.
type Metadata struct {
	Generated int64  `json:"generated"` // epoch milliseconds
	URL       string `json:"url"`
	Title     string `json:"title"`
	Count     int    `json:"count"`
}

// Feature is one raw feed entry. Properties uses pointers where the feed
// publishes null.
type Feature struct {
	ID         string     `json:"id"`
	Properties Properties `json:"properties"`
	Geometry   Geometry   `json:"geometry"`
}

// Properties is the feed's per-event attribute bag.
type Properties struct {
	Mag   *float64 `json:"mag"`
	Place *string  `json:"place"`
	Time  int64    `json:"time"` // epoch milliseconds, event time
}

// Geometry holds the point location. Coordinates is ordered
// (longitude, latitude, depth-km); depth may be absent.
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// Event is the canonical representation of one seismic event.
type Event struct {
	ID         string    `json:"id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	DepthKm    float64   `json:"depth_km"`
	Magnitude  float64   `json:"magnitude"`
	Place      string    `json:"place"`
	ObservedAt time.Time `json:"observed_at"`
}

// Coordinate returns the event's surface location.
func (e Event) Coordinate() Coordinate {
	return Coordinate{Lat: e.Latitude, Lon: e.Longitude}
}

// NearbyEvent is an Event that passed the radius filter, augmented with the
// observer distance and a severity tier.
type NearbyEvent struct {
	Event
	DistanceKm float64  `json:"distance_km"`
	Severity   Severity `json:"severity"`
}

// Observer is the fixed reference location events are measured against.
// Immutable after construction.
type Observer struct {
	Coordinate
	RadiusKm float64
}
