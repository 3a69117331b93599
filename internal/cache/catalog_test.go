package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() {
		SetClient(nil)
		mr.Close()
	})
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	return mr
}

type catalogRow struct {
	StatusID string `json:"status_id"`
	Value    string `json:"value"`
}

func TestAside_LoadsAndCaches(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	loads := 0
	load := func(dest *[]catalogRow) func() error {
		return func() error {
			loads++
			*dest = []catalogRow{{StatusID: "R", Value: "Requested"}}
			return nil
		}
	}

	var rows []catalogRow
	require.NoError(t, Aside(ctx, StatusCatalogKey, &rows, time.Minute, load(&rows)))
	assert.Equal(t, 1, loads)
	assert.Len(t, rows, 1)
	assert.True(t, mr.Exists(StatusCatalogKey))

	// second read is served from the cache
	var again []catalogRow
	require.NoError(t, Aside(ctx, StatusCatalogKey, &again, time.Minute, load(&again)))
	assert.Equal(t, 1, loads)
	assert.Equal(t, rows, again)
}

func TestAside_InvalidateForcesReload(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	loads := 0
	load := func(dest *[]catalogRow) func() error {
		return func() error {
			loads++
			*dest = []catalogRow{{StatusID: "A", Value: "Approved"}}
			return nil
		}
	}

	var rows []catalogRow
	require.NoError(t, Aside(ctx, StatusCatalogKey, &rows, time.Minute, load(&rows)))
	require.Equal(t, 1, loads)

	InvalidateStatusCatalog(ctx)
	assert.False(t, mr.Exists(StatusCatalogKey))

	require.NoError(t, Aside(ctx, StatusCatalogKey, &rows, time.Minute, load(&rows)))
	assert.Equal(t, 2, loads)
}

func TestAside_NilClientDegradesToLoad(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	loads := 0
	var rows []catalogRow
	load := func() error {
		loads++
		rows = []catalogRow{{StatusID: "D", Value: "Denied"}}
		return nil
	}

	require.NoError(t, Aside(ctx, "some:key", &rows, time.Minute, load))
	require.NoError(t, Aside(ctx, "some:key", &rows, time.Minute, load))
	assert.Equal(t, 2, loads)
}
