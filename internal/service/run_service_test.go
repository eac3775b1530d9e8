package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/devsynth/internal/repository"
	"github.com/alexanderramin/devsynth/internal/testutil"
)

func TestRunService_ListGetDelete(t *testing.T) {
	database := testutil.NewTestDB(t)
	runs := repository.NewSQLiteRunRepo(database)
	obs := &recordingObserver{}
	svc := NewRunService(runs, obs)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	older := testutil.NewTestRun(testutil.WithCreatedAt(base))
	newer := testutil.NewTestRun(testutil.WithCreatedAt(base.Add(time.Hour)), testutil.WithSeed(7))
	require.NoError(t, runs.Create(ctx, older))
	require.NoError(t, runs.Create(ctx, newer))

	listed, err := svc.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, newer.ID, listed[0].ID)

	limited, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	got, err := svc.Get(ctx, older.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, older.ID, got.ID)

	require.NoError(t, svc.Delete(ctx, newer.ID[:8]))
	_, err = svc.Get(ctx, newer.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.Len(t, obs.events, 1)
	assert.Equal(t, "delete-run", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
}

func TestRunService_DeleteMissing(t *testing.T) {
	database := testutil.NewTestDB(t)
	obs := &recordingObserver{}
	svc := NewRunService(repository.NewSQLiteRunRepo(database), obs)

	err := svc.Delete(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
}
