//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conektaolatam-netizen/conektao-sub003/internal/circuitbreaker"
)

func TestLogsRepository_CreateAndQuery(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewLogsRepository(newTestDB(t))

	entry := &LogEntryDocument{
		Level:      "info",
		Message:    "HTTP request",
		RequestID:  "req-123",
		Method:     "POST",
		Path:       "/api/costing/sessions",
		StatusCode: 201,
		Duration:   12,
	}
	require.NoError(t, repo.Create(ctx, entry))
	assert.False(t, entry.ID.IsZero())
	assert.False(t, entry.Timestamp.IsZero())

	results, err := repo.Query(ctx, LogQueryOptions{RequestID: "req-123"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "HTTP request", results[0].Message)
	assert.Equal(t, 201, results[0].StatusCode)
}

func TestLogsRepository_CreateMany(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewLogsRepository(newTestDB(t))

	entries := []*LogEntryDocument{
		{Level: "info", Message: "first", ActionType: "start_session"},
		{Level: "info", Message: "second", ActionType: "accept_cost"},
		{Level: "error", Message: "third", ActionType: "accept_cost"},
	}
	require.NoError(t, repo.CreateMany(ctx, entries))

	count, err := repo.Count(ctx, LogQueryOptions{ActionType: "accept_cost"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	errors, err := repo.Query(ctx, LogQueryOptions{Level: "error"})
	require.NoError(t, err)
	require.Len(t, errors, 1)
	assert.Equal(t, "third", errors[0].Message)
}

func TestLogsRepository_QueryTimeRange(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewLogsRepository(newTestDB(t))

	old := &LogEntryDocument{Level: "info", Message: "old", Timestamp: time.Now().Add(-2 * time.Hour)}
	recent := &LogEntryDocument{Level: "info", Message: "recent"}
	require.NoError(t, repo.CreateMany(ctx, []*LogEntryDocument{old, recent}))

	since := time.Now().Add(-time.Hour)
	results, err := repo.Query(ctx, LogQueryOptions{StartTime: &since})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "recent", results[0].Message)
}

func TestLogsRepositoryWithCircuitBreaker_Create(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := NewLogsRepository(newTestDB(t))
	cb := circuitbreaker.New(circuitbreaker.DefaultConfig())
	wrapped := NewLogsRepositoryWithCircuitBreaker(repo, cb)

	require.NoError(t, wrapped.Create(ctx, &LogEntryDocument{Level: "info", Message: "wrapped"}))

	count, err := wrapped.Count(ctx, LogQueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, circuitbreaker.StateClosed, wrapped.GetCircuitBreaker().State())
}
