package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docshard-mcp/internal/planner"
	"github.com/dshills/docshard-mcp/internal/storage"
	"github.com/dshills/docshard-mcp/pkg/types"
)

const sampleDoc = `# Payments

## Processing

- The gateway must retry failed charges.

## Reporting

Daily totals are exported at midnight.
`

func TestRunPlansAllDocuments(t *testing.T) {
	runner := New(planner.New(), nil)

	docs := []Document{
		{Name: "a.md", Text: sampleDoc},
		{Name: "b.md", Text: sampleDoc},
		{Name: "c.md", Text: sampleDoc},
	}

	stats, err := runner.Run(context.Background(), docs, types.DefaultShardOptions(), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.DocumentsPlanned)
	assert.Equal(t, 0, stats.DocumentsFailed)
	assert.Empty(t, stats.ErrorMessages)
	require.Len(t, stats.Items, 3)
	var wantShards, wantTokens int
	for i, item := range stats.Items {
		assert.Equal(t, docs[i].Name, item.Name, "items keep input order")
		require.NotNil(t, item.Result)
		require.True(t, item.Result.Success)
		wantShards += len(item.Result.Plan.Shards)
		wantTokens += item.Result.Plan.TotalTokens
	}
	assert.Equal(t, wantShards, stats.TotalShards)
	assert.Equal(t, wantTokens, stats.TotalTokens)
	assert.Greater(t, stats.TotalTokens, 0)
}

func TestRunCollectsFailures(t *testing.T) {
	runner := New(planner.New(), nil)

	docs := []Document{
		{Name: "good.md", Text: sampleDoc},
		{Name: "empty.md", Text: "   \n  "},
	}

	stats, err := runner.Run(context.Background(), docs, types.DefaultShardOptions(), nil)
	require.NoError(t, err, "planning failures are not run failures")

	assert.Equal(t, 1, stats.DocumentsPlanned)
	assert.Equal(t, 1, stats.DocumentsFailed)
	require.Len(t, stats.ErrorMessages, 1)
	assert.Contains(t, stats.ErrorMessages[0], "empty.md")
}

func TestRunSavesPlans(t *testing.T) {
	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runner := New(planner.New(), store)
	docs := []Document{
		{Name: "a.md", Text: sampleDoc},
		{Name: "b.md", Text: sampleDoc},
	}

	stats, err := runner.Run(context.Background(), docs, types.DefaultShardOptions(), &Config{SavePlans: true})
	require.NoError(t, err)

	for _, item := range stats.Items {
		require.NotEmpty(t, item.PlanID)
		loaded, err := store.GetPlan(context.Background(), item.PlanID)
		require.NoError(t, err)
		assert.Equal(t, item.Name, loaded.Name)
	}

	infos, err := store.ListPlans(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, infos, 2)
}

func TestRunSaveWithoutStorage(t *testing.T) {
	runner := New(planner.New(), nil)

	_, err := runner.Run(context.Background(), []Document{{Name: "a.md", Text: sampleDoc}},
		types.DefaultShardOptions(), &Config{SavePlans: true})
	assert.Error(t, err)
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.md"), []byte(sampleDoc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "two.markdown"), []byte(sampleDoc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not markdown"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".hidden"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden", "skip.md"), []byte(sampleDoc), 0o644))

	runner := New(planner.New(), nil)
	stats, err := runner.RunFiles(context.Background(), []string{dir}, types.DefaultShardOptions(), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.DocumentsPlanned, "only markdown outside hidden dirs")
}

func TestRunFilesNoMatches(t *testing.T) {
	runner := New(planner.New(), nil)

	_, err := runner.RunFiles(context.Background(), []string{t.TempDir()}, types.DefaultShardOptions(), nil)
	assert.Error(t, err)
}
