package kafka

import (
	"testing"
	"time"

	"github.com/couchcryptid/quake-watch/internal/domain"
	"github.com/couchcryptid/quake-watch/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeToMessage(t *testing.T) {
	fetchedAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	snap := scheduler.Snapshot{Cycle: 7, FetchedAt: fetchedAt}
	event := domain.NearbyEvent{
		Event: domain.Event{
			ID:        "us7000abcd",
			Latitude:  35.62,
			Longitude: -117.66,
			Magnitude: 5.4,
			Place:     "12km SSE of Ridgecrest, CA",
		},
		DistanceKm: 42.5,
		Severity:   domain.SeverityModerate,
	}

	msg, err := serializeToMessage(event, snap)
	require.NoError(t, err)

	assert.Equal(t, []byte("us7000abcd"), msg.Key)
	assert.Contains(t, string(msg.Value), `"distance_km":42.5`)
	assert.Contains(t, string(msg.Value), `"severity":"moderate"`)

	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "severity", msg.Headers[0].Key)
	assert.Equal(t, []byte("moderate"), msg.Headers[0].Value)
	assert.Equal(t, "cycle", msg.Headers[1].Key)
	assert.Equal(t, []byte("7"), msg.Headers[1].Value)
	assert.Equal(t, "fetched_at", msg.Headers[2].Key)
	assert.Equal(t, []byte(fetchedAt.Format(time.RFC3339)), msg.Headers[2].Value)
}
