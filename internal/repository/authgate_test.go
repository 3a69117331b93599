package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthGateRepository_GetDefaultsToRequired(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewAuthGateRepository(db)

	required, err := repo.Get(context.Background(), "/never-configured")
	require.NoError(t, err)
	assert.True(t, required)
}

func TestAuthGateRepository_SetAndGet(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewAuthGateRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "/requests", false))

	required, err := repo.Get(ctx, "/requests")
	require.NoError(t, err)
	assert.False(t, required)

	// upsert flips the existing row instead of inserting a second one
	require.NoError(t, repo.Set(ctx, "/requests", true))

	required, err = repo.Get(ctx, "/requests")
	require.NoError(t, err)
	assert.True(t, required)

	rows, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestAuthGateRepository_ListSorted(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewAuthGateRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "/zeta", true))
	require.NoError(t, repo.Set(ctx, "/alpha", false))

	rows, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "/alpha", rows[0].RoutePath)
	assert.Equal(t, "/zeta", rows[1].RoutePath)
}
