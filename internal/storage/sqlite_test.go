//go:build sqlite

package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStoreRunRoundTrip(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "gentourney.db")

	store := NewSQLiteStore(dbPath)
	require.NoError(t, store.Init(ctx))
	t.Cleanup(func() {
		_ = store.Close()
	})

	input := sampleRun("run-1", "2026-01-01T00:00:00Z")
	require.NoError(t, store.SaveRun(ctx, input))

	output, ok, err := store.GetRun(ctx, input.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, input, output)

	input.Standings[0].Points = 99
	require.NoError(t, store.SaveRun(ctx, input), "upsert")
	output, _, err = store.GetRun(ctx, input.ID)
	require.NoError(t, err)
	assert.Equal(t, 99, output.Standings[0].Points)
}

func TestSQLiteStoreListAndDelete(t *testing.T) {
	ctx := context.Background()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "gentourney.db"))
	require.NoError(t, store.Init(ctx))
	t.Cleanup(func() {
		_ = store.Close()
	})

	require.NoError(t, store.SaveRun(ctx, sampleRun("a", "2026-01-01T00:00:00Z")))
	require.NoError(t, store.SaveRun(ctx, sampleRun("b", "2026-01-02T00:00:00Z")))

	runs, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "b", runs[0].ID)

	runs, err = store.ListRuns(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, runs, 1)

	require.NoError(t, store.DeleteRun(ctx, "b"))
	_, ok, err := store.GetRun(ctx, "b")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStoreRequiresPath(t *testing.T) {
	assert.Error(t, NewSQLiteStore("").Init(context.Background()))
}

func TestNewStoreSQLite(t *testing.T) {
	store, err := NewStore(StoreKindSQLite, filepath.Join(t.TempDir(), "gentourney.db"))
	require.NoError(t, err)
	require.NoError(t, store.Init(context.Background()))
	assert.NoError(t, CloseIfSupported(store))
}

func TestSQLiteStoreRequiresInit(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "gentourney.db"))
	_, _, err := store.GetRun(context.Background(), "run-1")
	assert.Error(t, err)
	assert.Equal(t, StoreKindSQLite, DefaultStoreKind())
}
