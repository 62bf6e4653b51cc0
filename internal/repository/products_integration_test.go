//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/conektaolatam-netizen/conektao-sub003/internal/circuitbreaker"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/domain/model"
)

func mangoProduct() *model.Product {
	return &model.Product{
		Name:        "Jugo de Mango",
		Ingredients: []string{"Mango", "Azúcar"},
		UnitCost:    1745,
		SuggestedPrices: model.SuggestedPrices{
			PremiumTier:   3054,
			CafeteriaTier: 3141,
			BeverageTier:  3228,
		},
		CreatedBy: "operator@test.com",
	}
}

func TestProductRepository_Upsert(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewProductRepository(newTestDB(t))

	created, err := repo.Upsert(ctx, mangoProduct())
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.False(t, created.ID.IsZero())
	assert.False(t, created.CreatedAt.IsZero())

	// Upserting the same name replaces the cost, not the record.
	update := mangoProduct()
	update.UnitCost = 1800
	updated, err := repo.Upsert(ctx, update)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, float64(1800), updated.UnitCost)

	all, err := repo.List(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestProductRepository_FindByName(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewProductRepository(newTestDB(t))

	_, err := repo.Upsert(ctx, mangoProduct())
	require.NoError(t, err)

	found, err := repo.FindByName(ctx, "Jugo de Mango")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, float64(1745), found.UnitCost)
	assert.Equal(t, float64(3054), found.SuggestedPrices.PremiumTier)

	missing, err := repo.FindByName(ctx, "Limonada")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductRepository_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewProductRepository(newTestDB(t))

	created, err := repo.Upsert(ctx, mangoProduct())
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	// Deleting an unknown ID is not an error.
	assert.NoError(t, repo.Delete(ctx, primitive.NewObjectID()))
}

func TestProductRepositoryWithCircuitBreaker_RoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := NewProductRepository(newTestDB(t))
	cb := circuitbreaker.New(circuitbreaker.DefaultConfig())
	wrapped := NewProductRepositoryWithCircuitBreaker(repo, cb)

	created, err := wrapped.Upsert(ctx, mangoProduct())
	require.NoError(t, err)

	found, err := wrapped.FindByName(ctx, created.Name)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	list, err := wrapped.List(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, wrapped.Delete(ctx, created.ID))
	assert.Equal(t, circuitbreaker.StateClosed, wrapped.GetCircuitBreaker().State())
}
