// Package scheduler drives the fetch → proximity pipeline on a fixed
// interval and publishes results to a snapshot slot readable without
// blocking.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/quake-watch/internal/domain"
	"github.com/couchcryptid/quake-watch/internal/observability"
	"github.com/jonboulle/clockwork"
)

// ErrStopped is returned by Start on a scheduler that has been stopped.
// Stopped is terminal; construct a new scheduler to resume.
var ErrStopped = errors.New("scheduler already stopped")

// FeedFetcher retrieves one raw feed document.
type FeedFetcher interface {
	Fetch(ctx context.Context) (domain.Feed, error)
}

// ProximityEngine turns a feed document into the ranked nearby set.
type ProximityEngine interface {
	Run(feed domain.Feed, observer domain.Observer) []domain.NearbyEvent
}

// Publisher receives every freshly published snapshot. Publish failures are
// logged and counted but never fail the cycle.
type Publisher interface {
	Publish(ctx context.Context, snap Snapshot) error
}

// Snapshot is one published refresh result. Cycle counts successful cycles
// since start; FetchedAt lets consumers distinguish "zero new events" from
// "refresh failed", since a failed cycle leaves the previous snapshot, and
// its timestamp, in place.
type Snapshot struct {
	Events    []domain.NearbyEvent `json:"events"`
	FetchedAt time.Time            `json:"fetched_at"`
	Cycle     uint64               `json:"cycle"`
}

type state int

const (
	stateIdle state = iota
	stateRunning
	stateStopped
)

// Scheduler runs the refresh pipeline in a single background goroutine.
// Ticks never overlap: a cycle that overruns the interval defers the next
// tick rather than running concurrently, so the dedup ledger observes feed
// entries in cycle order.
type Scheduler struct {
	fetcher   FeedFetcher
	engine    ProximityEngine
	observer  domain.Observer
	interval  time.Duration
	clock     clockwork.Clock
	publisher Publisher // nil disables downstream publishing
	logger    *slog.Logger
	metrics   *observability.Metrics

	mu       sync.Mutex
	state    state
	snapshot *Snapshot
	cycle    uint64
	stopCh   chan struct{}
	done     chan struct{}
}

// New creates an idle scheduler. publisher may be nil.
func New(fetcher FeedFetcher, engine ProximityEngine, observer domain.Observer, interval time.Duration,
	clock clockwork.Clock, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) *Scheduler {
	return &Scheduler{
		fetcher:   fetcher,
		engine:    engine,
		observer:  observer,
		interval:  interval,
		clock:     clock,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		stopCh:    make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start launches the background refresh loop: one cycle immediately, then one
// per interval. No-op when already running; ErrStopped once stopped. ctx
// bounds the lifetime of all fetches; cancelling it also ends the loop.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case stateRunning:
		return nil
	case stateStopped:
		return ErrStopped
	}

	s.state = stateRunning
	s.metrics.SchedulerRunning.Set(1)
	s.logger.Info("scheduler started",
		"interval", s.interval,
		"radius_km", s.observer.RadiusKm,
		"observer_lat", s.observer.Lat,
		"observer_lon", s.observer.Lon,
	)

	go s.loop(ctx)
	return nil
}

// Stop prevents any future tick and waits for an in-flight cycle to finish
// and publish. Idempotent; terminal for this instance.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	prev := s.state
	s.state = stateStopped
	s.mu.Unlock()

	switch prev {
	case stateStopped:
		return
	case stateIdle:
		s.metrics.SchedulerRunning.Set(0)
		return
	}

	close(s.stopCh)
	<-s.done
	s.logger.Info("scheduler stopped")
}

// Latest returns the most recently published snapshot. ok is false before
// the first successful cycle. Never blocks on a refresh in progress.
func (s *Scheduler) Latest() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot == nil {
		return Snapshot{}, false
	}
	return *s.snapshot, true
}

// CheckReadiness reports nil once a snapshot has been published.
func (s *Scheduler) CheckReadiness(_ context.Context) error {
	if _, ok := s.Latest(); !ok {
		return errors.New("no snapshot published yet")
	}
	return nil
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)
	defer s.metrics.SchedulerRunning.Set(0)

	s.runCycle(ctx)

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		// Stop and cancellation win over a pending tick.
		select {
		case <-s.stopCh:
			return
		case <-ctx.Done():
			s.logger.Info("scheduler loop ending", "reason", ctx.Err())
			return
		default:
		}

		select {
		case <-s.stopCh:
			return
		case <-ctx.Done():
			s.logger.Info("scheduler loop ending", "reason", ctx.Err())
			return
		case <-ticker.Chan():
			s.runCycle(ctx)
		}
	}
}

// runCycle executes one fetch → engine → publish pass. All failures,
// including panics out of the pipeline, are absorbed here: a failed cycle
// logs, bumps the failure counter, and leaves the previous snapshot intact.
func (s *Scheduler) runCycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.metrics.CyclesTotal.WithLabelValues("failure").Inc()
			s.logger.Error("refresh cycle panicked, previous snapshot retained", "panic", r)
		}
	}()

	feed, err := s.fetcher.Fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.metrics.CyclesTotal.WithLabelValues("failure").Inc()
		s.logger.Error("refresh cycle failed, previous snapshot retained", "error", err)
		return
	}

	events := s.engine.Run(feed, s.observer)

	s.mu.Lock()
	s.cycle++
	snap := Snapshot{
		Events:    events,
		FetchedAt: s.clock.Now().UTC(),
		Cycle:     s.cycle,
	}
	s.snapshot = &snap
	s.mu.Unlock()

	s.metrics.CyclesTotal.WithLabelValues("success").Inc()
	s.metrics.LastRefresh.Set(float64(snap.FetchedAt.Unix()))
	s.logger.Info("snapshot published",
		"cycle", snap.Cycle,
		"features", len(feed.Features),
		"nearby", len(events),
	)

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, snap); err != nil {
			s.metrics.PublishErrors.Inc()
			s.logger.Warn("snapshot publish failed", "cycle", snap.Cycle, "error", err)
		}
	}
}
