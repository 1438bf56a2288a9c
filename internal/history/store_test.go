package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dendrascience/dnacount/count"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleSummary() count.Summary {
	return count.Summary{
		Pattern: "CGTAA",
		Total:   3,
		Failed:  1,
		Results: []count.Result{
			{Path: "data/a.txt", Count: 2, Duration: 3 * time.Millisecond},
			{Path: "data/b.txt", Count: 1, Duration: time.Millisecond},
			{Path: "data/c.txt", Err: errors.New("permission denied")},
		},
	}
}

func TestNewRun(t *testing.T) {
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	run := NewRun("data", sampleSummary(), started, 40*time.Millisecond)

	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "data", run.Directory)
	assert.Equal(t, "CGTAA", run.Pattern)
	assert.Equal(t, int64(3), run.Total)
	assert.Equal(t, 3, run.FileCount)
	assert.Equal(t, 1, run.FailedCount)
	require.Len(t, run.Files, 3)
	assert.Equal(t, "permission denied", run.Files[2].Error)
	assert.Empty(t, run.Files[0].Error)
}

func TestRecordAndGetRun(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	run := NewRun("data", sampleSummary(), time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), 40*time.Millisecond)
	require.NoError(t, store.RecordRun(ctx, run))

	got, err := store.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, run.Total, got.Total)
	assert.Equal(t, run.FailedCount, got.FailedCount)
	assert.Equal(t, 40*time.Millisecond, got.Duration)
	assert.True(t, run.StartedAt.Equal(got.StartedAt))
	require.Len(t, got.Files, 3)
	assert.Equal(t, "data/a.txt", got.Files[0].Path)
	assert.Equal(t, int64(2), got.Files[0].Count)
	assert.Equal(t, "permission denied", got.Files[2].Error)
}

func TestGetRun_NotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetRun(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestListRuns(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	var ids []string
	for i := range 3 {
		run := NewRun("data", sampleSummary(), base.Add(time.Duration(i)*time.Hour), time.Second)
		require.NoError(t, store.RecordRun(ctx, run))
		ids = append(ids, run.ID)
	}

	runs, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, ids[2], runs[0].ID, "newest run first")
	assert.Empty(t, runs[0].Files)

	limited, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestRecordRun_DuplicateID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	run := NewRun("data", sampleSummary(), time.Now(), time.Second)
	require.NoError(t, store.RecordRun(ctx, run))
	assert.Error(t, store.RecordRun(ctx, run))

	runs, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestNewStore_FileBacked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.RecordRun(context.Background(), NewRun("d", sampleSummary(), time.Now(), time.Second)))
	require.NoError(t, store.Close())

	reopened, err := NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()
	runs, err := reopened.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
