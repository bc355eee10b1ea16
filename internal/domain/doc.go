// Package domain models USGS earthquake feed data and the proximity
// computations derived from it.
//
// # Data Source
//
// Events originate from the USGS real-time GeoJSON summary feeds, e.g.
// https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_hour.geojson.
// Each feed is a FeatureCollection; every feature carries a stable string id,
// a point geometry, and a properties bag.
//
// # Feed Conventions
//
// Coordinates:
//
//	geometry.coordinates is ordered (longitude, latitude, depth-in-km).
//	The canonical [Event] stores latitude first; [NormalizeFeature] performs
//	the permutation. Depth may be omitted by some feeds and defaults to 0.
//
// Magnitude:
//
//	properties.mag is nullable. The USGS publishes events before a magnitude
//	has been reviewed, in which case mag is null. Such entries carry no
//	severity and are rejected with [ErrMissingMagnitude].
//
// Place:
//
//	properties.place is a human-readable description such as
//	"12km SSE of Ridgecrest, CA" and is nullable. Absent values are replaced
//	with the sentinel [UnknownPlace]; this is not a rejection.
//
// Time:
//
//	properties.time is integer milliseconds since the Unix epoch, recording
//	when the event occurred (not when it was ingested).
//
// # Identity
//
// A feature id uniquely identifies a physical event across feeds and across
// refresh cycles; the same id reappearing in a later pull (possibly with
// updated properties) is a sighting of the same event, not a new one.
//
// # Severity Classification
//
// Magnitude maps to a three-level scale: below 4.0 weak, 4.0 up to but
// excluding 6.0 moderate, 6.0 and above strong. Both boundaries are closed
// on the left, so exactly 4.0 is moderate and exactly 6.0 is strong.
//
// # Distance
//
// [HaversineKm] computes great-circle surface distance on a spherical Earth
// (mean radius 6371.0088 km). Depth is ignored. The haversine form is
// numerically stable for both coincident and near-antipodal points.
package domain
