package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dendrascience/dnacount/count"
)

func sampleSummary() count.Summary {
	return count.Summary{
		Pattern: "CGTAA",
		Total:   3,
		Failed:  1,
		Results: []count.Result{
			{Path: "a.txt", Count: 2, Duration: 4 * time.Millisecond},
			{Path: "b.txt", Count: 1},
			{Path: "c.txt", Err: errors.New("scan c.txt: permission denied")},
		},
	}
}

func TestNew(t *testing.T) {
	r := New("run-1", "data", sampleSummary())

	assert.Equal(t, "run-1", r.RunID)
	assert.Equal(t, "data", r.Directory)
	assert.Equal(t, int64(3), r.Total)
	assert.True(t, r.Partial)
	assert.False(t, r.Interrupted)
	require.Len(t, r.Files, 3)
	assert.Equal(t, int64(4), r.Files[0].DurationMS)
	assert.Equal(t, "scan c.txt: permission denied", r.Files[2].Error)
	assert.NotEmpty(t, r.Version)
}

func TestWriteRead(t *testing.T) {
	for _, name := range []string{"report.json", "report.yaml", "report.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out", name)
			want := New("run-1", "data", sampleSummary())

			require.NoError(t, Write(path, want))

			got, err := Read(path)
			require.NoError(t, err)
			assert.Equal(t, want.RunID, got.RunID)
			assert.Equal(t, want.Total, got.Total)
			assert.Equal(t, want.Partial, got.Partial)
			assert.Equal(t, want.Files, got.Files)
			assert.True(t, want.GeneratedAt.Equal(got.GeneratedAt))
		})
	}
}

func TestMarshal_Format(t *testing.T) {
	r := New("run-1", "data", sampleSummary())

	js, err := Marshal("x.json", r)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(js), "{\n"))
	assert.Contains(t, string(js), `"total": 3`)

	ym, err := Marshal("x.YAML", r)
	require.NoError(t, err)
	assert.Contains(t, string(ym), "total: 3")
}

func TestWrite_ReplacesAndLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")

	require.NoError(t, Write(path, New("first", "data", sampleSummary())))
	require.NoError(t, Write(path, New("second", "data", sampleSummary())))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "second", got.RunID)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".tmp-"), "leftover temp file %s", e.Name())
	}
}

func TestWrite_Concurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, Write(path, New(fmt.Sprintf("run-%d", i), "data", sampleSummary())))
		}()
	}
	wg.Wait()

	got, err := Read(path)
	require.NoError(t, err, "report must always decode")
	assert.True(t, strings.HasPrefix(got.RunID, "run-"))
}

func TestRead_Missing(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "none.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
