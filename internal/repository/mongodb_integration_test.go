//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conektaolatam-netizen/conektao-sub003/internal/testutil"
)

func TestNewMongoDB_Connect(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	assert.NotNil(t, db.Client)
	assert.NotNil(t, db.Database)
	assert.NotNil(t, db.Products)
	assert.NotNil(t, db.Logs)
	assert.NotNil(t, db.Users)
	assert.NotNil(t, db.Tokens)
}

func TestMongoDB_HealthCheck(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, db.HealthCheck(ctx))
}

func TestMongoDB_SetLogsTTL(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	require.NoError(t, db.SetLogsTTL(context.Background(), 30))
	// Re-applying the same TTL is a no-op, not an error.
	require.NoError(t, db.SetLogsTTL(context.Background(), 30))
}

func TestNewMongoDB_BadURI(t *testing.T) {
	t.Parallel()

	cfg := DefaultMongoConfig()
	cfg.ConnectTimeout = 2 * time.Second
	cfg.ServerSelectionTimeout = 2 * time.Second

	_, err := NewMongoDBWithConfig("mongodb://127.0.0.1:1", testutil.UniqueDBName(t.Name()), cfg)
	assert.Error(t, err)
}
