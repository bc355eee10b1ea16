// Package engine turns a raw feed document into the ranked list of events
// near the observer.
package engine

import (
	"errors"
	"log/slog"
	"sort"

	"github.com/couchcryptid/quake-watch/internal/dedup"
	"github.com/couchcryptid/quake-watch/internal/domain"
	"github.com/couchcryptid/quake-watch/internal/observability"
)

// Engine combines deduplication, normalization, distance computation, and
// severity classification. It never fails: invalid or duplicate entries are
// skipped and counted, and a payload without features yields an empty result.
type Engine struct {
	ledger  *dedup.Ledger
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates an Engine over the given ledger. The ledger is shared across
// cycles so duplicate suppression spans the process lifetime.
func New(ledger *dedup.Ledger, logger *slog.Logger, metrics *observability.Metrics) *Engine {
	return &Engine{
		ledger:  ledger,
		logger:  logger,
		metrics: metrics,
	}
}

// Run processes feed features in feed order and returns the first-seen events
// within the observer's radius, sorted ascending by distance with ties broken
// by id.
//
// Deduplication happens before normalization and the radius filter: an id is
// consumed by the ledger on first sighting even when the record is then
// rejected, so repeat cycles never re-pay normalization cost for it. An event
// first sighted outside the radius therefore stays out of later snapshots
// even if updated coordinates would bring it inside.
func (e *Engine) Run(feed domain.Feed, observer domain.Observer) []domain.NearbyEvent {
	results := make([]domain.NearbyEvent, 0, len(feed.Features))

	for _, feature := range feed.Features {
		e.metrics.EventsProcessed.Inc()

		if !e.ledger.Admit(feature.ID) {
			e.metrics.EventsDuplicate.Inc()
			continue
		}

		event, err := domain.NormalizeFeature(feature)
		if err != nil {
			e.metrics.EventsRejected.WithLabelValues(rejectReason(err)).Inc()
			e.logger.Debug("feature rejected", "id", feature.ID, "error", err)
			continue
		}

		distance := domain.HaversineKm(observer.Coordinate, event.Coordinate())
		if distance > observer.RadiusKm {
			e.metrics.EventsRejected.WithLabelValues("out_of_range").Inc()
			continue
		}

		results = append(results, domain.NearbyEvent{
			Event:      event,
			DistanceKm: distance,
			Severity:   domain.ClassifySeverity(event.Magnitude),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].DistanceKm != results[j].DistanceKm {
			return results[i].DistanceKm < results[j].DistanceKm
		}
		return results[i].ID < results[j].ID
	})

	e.metrics.NearbyEvents.Set(float64(len(results)))
	return results
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingMagnitude):
		return "missing_magnitude"
	case errors.Is(err, domain.ErrMalformedGeometry):
		return "malformed_geometry"
	default:
		return "invalid"
	}
}
