package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/docshard-mcp/pkg/types"
)

func samplePlan() *types.ShardPlan {
	return &types.ShardPlan{
		Shards: []types.Shard{
			{ID: "metadata", Type: types.ShardMetadata, Content: "intro", TokenCount: 5},
			{ID: "section-1-api", Type: types.ShardSection, Content: "## API", TokenCount: 9,
				Priority: 1, Dependencies: []string{"metadata"}},
		},
		TotalTokens:      14,
		RecommendedOrder: []string{"metadata", "section-1-api"},
		CrossReferences: []types.CrossReference{
			{From: "section-1-api", To: "metadata", Type: types.RefDependsOn},
		},
		Analysis: types.ShardAnalysis{
			RecommendedStrategy: types.StrategySection,
			ComplexityScore:     12,
			Reasoning:           "well-sectioned document (1 sections)",
		},
	}
}

func TestPlanSummary(t *testing.T) {
	out := PlanSummary(samplePlan())

	assert.Contains(t, out, "Shards: 2")
	assert.Contains(t, out, "Total estimated tokens: 14")
	assert.Contains(t, out, "1. `metadata`")
	assert.Contains(t, out, "2. `section-1-api`")
	assert.Contains(t, out, "depends-on")
}

func TestShardDocument_WithHeader(t *testing.T) {
	shard := &types.Shard{
		ID: "section-1-api", Type: types.ShardSection, Priority: 1,
		Content: "## API", Dependencies: []string{"metadata"},
	}

	out := ShardDocument(shard, true)
	assert.Contains(t, out, "<!-- shard: section-1-api | type: section | priority: 1 | deps: metadata -->")
	assert.Contains(t, out, "## API")
}

func TestShardDocument_WithoutHeader(t *testing.T) {
	shard := &types.Shard{ID: "x", Content: "body"}
	assert.Equal(t, "body", ShardDocument(shard, false))
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct{ in, want string }{
		{"section-1-api", "section-1-api"},
		{"weird/../name", "weird-..-name"},
		{"spaces here", "spaces-here"},
		{"///", "shard"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.in))
	}
}

func TestShardFilename(t *testing.T) {
	shard := &types.Shard{ID: "req-2"}
	assert.Equal(t, "002-req-2.md", ShardFilename(2, shard))
}
