// Package feed retrieves earthquake GeoJSON documents from an ordered list
// of sources with per-source timeout and fallback.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/couchcryptid/quake-watch/internal/domain"
	"github.com/couchcryptid/quake-watch/internal/observability"
)

// SourceError records one failed fetch attempt.
type SourceError struct {
	URL string
	Err error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// ExhaustedError is returned when every configured source has failed for one
// fetch call. The caller treats it as a failed cycle, not a fatal condition.
type ExhaustedError struct {
	Attempts []*SourceError
}

func (e *ExhaustedError) Error() string {
	msgs := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		msgs[i] = a.Error()
	}
	return fmt.Sprintf("all %d feed sources exhausted: %s", len(e.Attempts), strings.Join(msgs, "; "))
}

// Fetcher pulls feed documents over HTTP. Sources are attempted in
// configuration order; the first one returning a recognizable feature
// collection wins (fallback, not aggregation).
type Fetcher struct {
	client  *http.Client
	sources []string
	token   string
	timeout time.Duration
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewFetcher creates a Fetcher. token may be empty for anonymous access.
func NewFetcher(sources []string, timeout time.Duration, token string, logger *slog.Logger, metrics *observability.Metrics) *Fetcher {
	return &Fetcher{
		client:  &http.Client{},
		sources: sources,
		token:   token,
		timeout: timeout,
		logger:  logger,
		metrics: metrics,
	}
}

// Fetch tries each source in order and returns the first decodable feed.
// Per-source failures (timeout, non-2xx status, undecodable body, missing
// feature collection) are logged and counted, then the next source is tried.
// When every source fails the result is an *ExhaustedError; the previous
// snapshot stays valid and the caller retries on the next cycle.
func (f *Fetcher) Fetch(ctx context.Context) (domain.Feed, error) {
	start := time.Now()
	defer func() {
		f.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	}()

	var attempts []*SourceError
	for _, source := range f.sources {
		if ctx.Err() != nil {
			return domain.Feed{}, ctx.Err()
		}

		feed, err := f.fetchOne(ctx, source)
		if err != nil {
			f.metrics.FetchAttempts.WithLabelValues("error").Inc()
			f.logger.Warn("feed source failed, trying next", "source", source, "error", err)
			attempts = append(attempts, &SourceError{URL: source, Err: err})
			continue
		}

		f.metrics.FetchAttempts.WithLabelValues("success").Inc()
		f.logger.Debug("feed fetched", "source", source, "features", len(feed.Features))
		return feed, nil
	}

	return domain.Feed{}, &ExhaustedError{Attempts: attempts}
}

// fetchOne performs a single bounded attempt against one source.
func (f *Fetcher) fetchOne(ctx context.Context, source string) (domain.Feed, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, source, nil)
	if err != nil {
		return domain.Feed{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return domain.Feed{}, fmt.Errorf("feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.Feed{}, fmt.Errorf("feed API error: status %d: %s", resp.StatusCode, body)
	}

	var feed domain.Feed
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return domain.Feed{}, fmt.Errorf("decode feed: %w", err)
	}

	// A payload without a features array is not a usable feed document, even
	// if it happened to be valid JSON. An empty array is a valid, quiet feed.
	if feed.Features == nil {
		return domain.Feed{}, errors.New("payload has no feature collection")
	}

	return feed, nil
}
