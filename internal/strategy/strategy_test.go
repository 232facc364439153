package strategy

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docshard-mcp/internal/estimator"
	"github.com/dshills/docshard-mcp/pkg/types"
)

func TestForName(t *testing.T) {
	for _, name := range []types.Strategy{
		types.StrategySection, types.StrategyRequirement,
		types.StrategyScenario, types.StrategyAuto,
	} {
		strat, err := ForName(name)
		require.NoError(t, err)
		assert.Equal(t, name, strat.Name())
	}

	_, err := ForName("bogus")
	assert.ErrorIs(t, err, types.ErrInvalidStrategy)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"API Design", "api-design"},
		{"  Error Handling & Retries  ", "error-handling-retries"},
		{"1. Overview", "1-overview"},
		{"___", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in))
	}
}

func TestSlugify_LengthBound(t *testing.T) {
	slug := Slugify(strings.Repeat("very long title ", 10))
	assert.LessOrEqual(t, len(slug), maxSlugLength)
}

func TestSectionStrategy_NoHeadings(t *testing.T) {
	// A document with no second-level headings stays whole
	strat := &SectionStrategy{}
	shards := strat.Decompose("plain text without any headings", types.DefaultShardOptions())

	require.Len(t, shards, 1)
	assert.Equal(t, "document", shards[0].ID)
	assert.Equal(t, "plain text without any headings", shards[0].Content)
}

func TestSectionStrategy_SplitsAtHeadings(t *testing.T) {
	text := `Title preamble.

## Overview

overview body

## API Design

api body
`
	strat := &SectionStrategy{}
	shards := strat.Decompose(text, types.DefaultShardOptions())

	require.Len(t, shards, 3)

	assert.Equal(t, types.ShardMetadata, shards[0].Type)
	assert.Contains(t, shards[0].Content, "Title preamble.")

	assert.Equal(t, "section-1-overview", shards[1].ID)
	assert.Equal(t, "overview", shards[1].SectionName)
	assert.Contains(t, shards[1].Content, "## Overview")
	assert.Contains(t, shards[1].Content, "overview body")

	assert.Equal(t, "section-2-api-design", shards[2].ID)
	assert.Equal(t, []string{"metadata"}, shards[2].Dependencies)
	assert.True(t, shards[2].DependsOn("metadata"))
	assert.False(t, shards[2].DependsOn("section-1-overview"))

	// Priorities follow document order, metadata first
	assert.Equal(t, 0, shards[0].Priority)
	assert.Less(t, shards[1].Priority, shards[2].Priority)
}

func TestSectionStrategy_NoContextLinks(t *testing.T) {
	text := "intro\n\n## One\n\nbody\n"
	opts := types.DefaultShardOptions()
	opts.PreserveContext = false

	shards := (&SectionStrategy{}).Decompose(text, opts)
	for _, sh := range shards {
		assert.Empty(t, sh.Dependencies)
	}
}

func TestSectionStrategy_OversizedSectionBecomesChunks(t *testing.T) {
	var b strings.Builder
	b.WriteString("## Big Section\n\n")
	for i := 0; i < 100; i++ {
		fmt.Fprintf(&b, "paragraph %d with enough words to carry some weight\n\n", i)
	}

	opts := types.DefaultShardOptions()
	opts.MaxTokensPerShard = 100

	shards := (&SectionStrategy{}).Decompose(b.String(), opts)

	var chunks []types.Shard
	for _, sh := range shards {
		if sh.Type == types.ShardChunk {
			chunks = append(chunks, sh)
		}
	}
	require.Greater(t, len(chunks), 1)

	for _, c := range chunks {
		assert.LessOrEqual(t, estimator.EstimateTokens(c.Content), 100)
		assert.Equal(t, "big-section", c.SectionName)
	}
	// Chunks after the head link back to it
	assert.Empty(t, chunks[0].ParentID)
	for _, c := range chunks[1:] {
		assert.Equal(t, chunks[0].ID, c.ParentID)
	}
}

func TestRequirementStrategy_TwentyRequirements(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 20; i++ {
		fmt.Fprintf(&b, "- REQ-%d the system must handle case %d\n", i, i)
	}

	opts := types.DefaultShardOptions()
	opts.MaxTokensPerShard = 2000

	shards := (&RequirementStrategy{}).Decompose(b.String(), opts)

	var reqs, meta int
	for _, sh := range shards {
		switch sh.Type {
		case types.ShardRequirement:
			reqs++
		case types.ShardMetadata:
			meta++
		}
	}
	assert.Equal(t, 20, reqs)
	assert.Equal(t, 1, meta)
	assert.Len(t, shards, 21)
}

func TestRequirementStrategy_CarriesScenarioBlock(t *testing.T) {
	text := `Intro paragraph.

- REQ-1 the service must authenticate callers
Scenario: expired credentials
the call is rejected

- REQ-2 the service must log denials
`
	shards := (&RequirementStrategy{}).Decompose(text, types.DefaultShardOptions())

	var req1 *types.Shard
	for i := range shards {
		if shards[i].ID == "req-1" {
			req1 = &shards[i]
		}
	}
	require.NotNil(t, req1)
	assert.Contains(t, req1.Content, "REQ-1")
	assert.Contains(t, req1.Content, "Scenario: expired credentials")
	assert.Contains(t, req1.Content, "the call is rejected")
	assert.NotContains(t, req1.Content, "REQ-2")
}

func TestRequirementStrategy_NoMatchesFallback(t *testing.T) {
	shards := (&RequirementStrategy{}).Decompose("nothing here resembles one", types.DefaultShardOptions())
	require.Len(t, shards, 1)
	assert.Equal(t, "document", shards[0].ID)
}

func TestScenarioStrategy_BlocksAndRequirementNote(t *testing.T) {
	text := `Feature intro.

REQ-7 the gateway must rate-limit
Scenario: burst traffic
requests above the limit are queued

Scenario: steady traffic
requests pass through
`
	shards := (&ScenarioStrategy{}).Decompose(text, types.DefaultShardOptions())

	var scen []types.Shard
	for _, sh := range shards {
		if sh.Type == types.ShardScenario {
			scen = append(scen, sh)
		}
	}
	require.Len(t, scen, 2)

	// First block sits right under REQ-7 and gets an informational note
	assert.Contains(t, scen[0].Content, "Related requirement: REQ-7")
	assert.Contains(t, scen[0].Content, "burst traffic")
	// The note never becomes a dependency edge
	assert.False(t, scen[0].DependsOn("REQ-7"))

	assert.NotContains(t, scen[1].Content, "Related requirement")
}

func TestScenarioStrategy_NoMatchesFallback(t *testing.T) {
	shards := (&ScenarioStrategy{}).Decompose("prose only", types.DefaultShardOptions())
	require.Len(t, shards, 1)
	assert.Equal(t, "document", shards[0].ID)
}

func TestAutoStrategy_UnderBudgetSingleShard(t *testing.T) {
	opts := types.DefaultShardOptions()
	shards := (&AutoStrategy{}).Decompose("a short document", opts)

	require.Len(t, shards, 1)
	assert.Equal(t, "auto-document", shards[0].ID)
}

func TestAutoStrategy_UnstructuredOverBudget(t *testing.T) {
	// ~10k estimated tokens of structureless prose, budget 200
	var b strings.Builder
	for i := 0; i < 800; i++ {
		fmt.Fprintf(&b, "plain filler sentence number %d with no markers at all\n\n", i)
	}
	text := b.String()
	require.Greater(t, estimator.EstimateTokens(text), 5000)

	opts := types.DefaultShardOptions()
	opts.MaxTokensPerShard = 200

	shards := (&AutoStrategy{}).Decompose(text, opts)

	assert.Greater(t, len(shards), 1)
	for _, sh := range shards {
		assert.LessOrEqual(t, estimator.EstimateTokens(sh.Content), 200,
			"shard %s exceeds budget", sh.ID)
		assert.True(t, strings.HasPrefix(sh.ID, "auto-"), "id %s missing auto prefix", sh.ID)
	}
}

func TestAutoStrategy_DelegatesToSections(t *testing.T) {
	var b strings.Builder
	b.WriteString("preamble\n\n")
	for i := 0; i < 6; i++ {
		fmt.Fprintf(&b, "## Section %d\n\n%s\n", i, strings.Repeat("body text here\n", 40))
	}

	opts := types.DefaultShardOptions()
	opts.MaxTokensPerShard = 300

	shards := (&AutoStrategy{}).Decompose(b.String(), opts)

	require.Greater(t, len(shards), 1)
	for _, sh := range shards {
		assert.True(t, strings.HasPrefix(sh.ID, "auto-"), "id %s missing auto prefix", sh.ID)
		assert.LessOrEqual(t, estimator.EstimateTokens(sh.Content), 300)
		for _, dep := range sh.Dependencies {
			assert.True(t, strings.HasPrefix(dep, "auto-"))
		}
	}
}

func TestAutoStrategy_LongSectionTitleKeepsIDsBounded(t *testing.T) {
	// Ten sections so the last one gets a two-digit index, the final
	// title long enough to slug to the full bound, and enough body to
	// split that section into double-digit chunk numbers
	var b strings.Builder
	b.WriteString("preamble\n\n")
	for i := 1; i < 10; i++ {
		fmt.Fprintf(&b, "## Section %d\n\nshort body\n\n", i)
	}
	b.WriteString("## An Extremely Long Heading Title For The Very Final Section Of The Document\n\n")
	for i := 0; i < 120; i++ {
		fmt.Fprintf(&b, "closing paragraph %d with enough words to need its own chunk\n\n", i)
	}

	opts := types.DefaultShardOptions()
	opts.MaxTokensPerShard = 30

	shards := (&AutoStrategy{}).Decompose(b.String(), opts)

	require.Greater(t, len(shards), 10)
	var lastSectionChunks int
	for _, sh := range shards {
		require.NoError(t, sh.ValidateType())
		require.NoErrorf(t, types.ValidateShardID(sh.ID), "id %s", sh.ID)
		assert.LessOrEqual(t, estimator.EstimateTokens(sh.Content), 30,
			"shard %s exceeds budget", sh.ID)
		if strings.HasPrefix(sh.ID, "auto-section-10-") {
			lastSectionChunks++
		}
	}
	assert.Greater(t, lastSectionChunks, 9, "final section should split into many chunks")
}

func TestSplitOversized_FitsUnchanged(t *testing.T) {
	shard := types.Shard{ID: "s", Type: types.ShardSection, Content: "small"}
	out := SplitOversized(shard, 1000)
	require.Len(t, out, 1)
	assert.Equal(t, shard, out[0])
}

func TestSplitOversized_PureFunction(t *testing.T) {
	shard := types.Shard{
		ID:      "big",
		Type:    types.ShardSection,
		Content: strings.Repeat("words and more words\n\n", 200),
	}
	before := shard.Content

	out := SplitOversized(shard, 50)

	assert.Greater(t, len(out), 1)
	assert.Equal(t, before, shard.Content, "input shard must not be mutated")
}

func TestSplitOversized_IDsStayBounded(t *testing.T) {
	shard := types.Shard{
		ID:      "section-1-" + strings.Repeat("x", 50),
		Type:    types.ShardSection,
		Content: strings.Repeat("filler text line\n\n", 200),
	}
	for _, c := range SplitOversized(shard, 50) {
		assert.NoError(t, types.ValidateShardID(c.ID))
	}
}
