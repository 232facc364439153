package merger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docshard-mcp/pkg/types"
)

func TestMerge_PriorityOrderWithDelimiter(t *testing.T) {
	shards := []types.Shard{
		{ID: "b", Priority: 2, Content: "second"},
		{ID: "a", Priority: 1, Content: "first"},
	}

	result := Merge(shards)

	assert.True(t, result.Success)
	assert.Equal(t, "first\n\n---\n\nsecond", result.Content)
	assert.Empty(t, result.MissingShards)
}

func TestMerge_NoLeadingDelimiter(t *testing.T) {
	result := Merge([]types.Shard{{ID: "only", Content: "body"}})
	assert.Equal(t, "body", result.Content)
}

func TestMerge_MissingDependency(t *testing.T) {
	// A depends on B, but B is not part of the input set
	shards := []types.Shard{
		{ID: "a", Content: "depends on something", Dependencies: []string{"b"}},
	}

	result := Merge(shards)

	assert.False(t, result.Success)
	assert.Equal(t, []string{"b"}, result.MissingShards)
	assert.Equal(t, "depends on something", result.Content, "content is still best-effort")
}

func TestMerge_MissingParent(t *testing.T) {
	shards := []types.Shard{
		{ID: "child", Content: "orphan", ParentID: "head"},
	}

	result := Merge(shards)
	assert.False(t, result.Success)
	assert.Equal(t, []string{"head"}, result.MissingShards)
}

func TestMerge_MissingShardsDeduplicated(t *testing.T) {
	shards := []types.Shard{
		{ID: "a", Content: "x", Dependencies: []string{"gone"}},
		{ID: "b", Content: "y", Dependencies: []string{"gone"}, ParentID: "gone"},
	}

	result := Merge(shards)
	assert.Equal(t, []string{"gone"}, result.MissingShards)
}

func TestMerge_DuplicateContentConflict(t *testing.T) {
	body := strings.Repeat("duplicated sentence. ", 15) // ~300 chars
	shards := []types.Shard{
		{ID: "one", Priority: 0, Content: body},
		{ID: "two", Priority: 1, Content: body},
	}

	result := Merge(shards)

	assert.True(t, result.Success, "conflicts never fail a merge")
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, types.ConflictDuplicateContent, result.Conflicts[0].Type)
	assert.ElementsMatch(t, []string{"one", "two"}, result.Conflicts[0].ShardIDs)
}

func TestMerge_ShortDuplicatesNotFlagged(t *testing.T) {
	shards := []types.Shard{
		{ID: "one", Content: "ok"},
		{ID: "two", Content: "ok"},
	}
	assert.Empty(t, Merge(shards).Conflicts)
}

func TestMerge_DuplicateContentCaseInsensitive(t *testing.T) {
	body := strings.Repeat("Duplicated Sentence. ", 15)
	shards := []types.Shard{
		{ID: "one", Content: body},
		{ID: "two", Content: strings.ToUpper(body)},
	}

	result := Merge(shards)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, types.ConflictDuplicateContent, result.Conflicts[0].Type)
}

func TestMerge_DuplicateHeaderConflict(t *testing.T) {
	shards := []types.Shard{
		{ID: "one", Content: "## Overview\n\nfirst body"},
		{ID: "two", Content: "## Overview\n\nsecond body"},
		{ID: "three", Content: "#### Too Deep\n\nignored"},
		{ID: "four", Content: "#### Too Deep\n\nignored as well"},
	}

	result := Merge(shards)

	require.Len(t, result.Conflicts, 1)
	conflict := result.Conflicts[0]
	assert.Equal(t, types.ConflictDuplicateHeader, conflict.Type)
	assert.ElementsMatch(t, []string{"one", "two"}, conflict.ShardIDs)
	assert.Contains(t, conflict.Detail, "overview")
}

func TestMerge_Idempotent(t *testing.T) {
	shards := []types.Shard{
		{ID: "a", Priority: 1, Content: "alpha"},
		{ID: "b", Priority: 1, Content: "beta"},
		{ID: "c", Priority: 0, Content: "gamma"},
	}

	first := Merge(shards)
	second := Merge(shards)
	assert.Equal(t, first.Content, second.Content)
	assert.Equal(t, first, second)
}

func TestMerge_DoesNotMutateInput(t *testing.T) {
	shards := []types.Shard{
		{ID: "b", Priority: 1, Content: "one"},
		{ID: "a", Priority: 0, Content: "two"},
	}

	Merge(shards)
	assert.Equal(t, "b", shards[0].ID, "input order must be preserved")
}

func TestMerge_Empty(t *testing.T) {
	result := Merge(nil)
	assert.True(t, result.Success)
	assert.Empty(t, result.Content)
}
