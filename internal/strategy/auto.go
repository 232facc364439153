package strategy

import (
	"fmt"

	"github.com/dshills/docshard-mcp/internal/analyzer"
	"github.com/dshills/docshard-mcp/internal/estimator"
	"github.com/dshills/docshard-mcp/pkg/types"
)

// autoPrefix distinguishes every id produced on the automatic path
const autoPrefix = "auto-"

// AutoStrategy is the composite strategy. Documents that already fit
// the budget come back as a single shard; everything else is delegated
// to the strategy matching the document's structural profile, falling
// back to fixed-size paragraph chunking when no structure is present.
//
// Postcondition: no shard returned by this strategy exceeds the
// configured budget.
type AutoStrategy struct{}

func (a *AutoStrategy) Name() types.Strategy { return types.StrategyAuto }

func (a *AutoStrategy) Decompose(text string, opts types.ShardOptions) []types.Shard {
	if estimator.EstimateTokens(text) <= opts.MaxTokensPerShard {
		return renumber([]types.Shard{{
			ID:      autoPrefix + "document",
			Type:    types.ShardChunk,
			Content: text,
		}})
	}

	profile := analyzer.Analyze(text)

	var shards []types.Shard
	switch {
	case profile.ScenarioCount > analyzer.ScenarioDominantMin &&
		profile.ScenarioCount > profile.RequirementCount:
		shards = applyPrefix((&ScenarioStrategy{}).Decompose(text, opts), autoPrefix)
	case profile.RequirementCount > analyzer.RequirementHeavyMin:
		shards = applyPrefix((&RequirementStrategy{}).Decompose(text, opts), autoPrefix)
	case profile.SectionCount > 0:
		shards = applyPrefix((&SectionStrategy{}).Decompose(text, opts), autoPrefix)
	default:
		shards = chunkParagraphs(text, opts.MaxTokensPerShard)
	}

	// Delegates can still hand back oversized shards; re-split until
	// everything fits
	out := make([]types.Shard, 0, len(shards))
	for _, shard := range shards {
		out = append(out, SplitOversized(shard, opts.MaxTokensPerShard)...)
	}
	return renumber(out)
}

// chunkParagraphs performs fixed-size chunking on paragraph boundaries
// for documents with no recognizable structure
func chunkParagraphs(text string, budget int) []types.Shard {
	pieces := pack(text, budget)
	shards := make([]types.Shard, 0, len(pieces))
	for i, piece := range pieces {
		shards = append(shards, types.Shard{
			ID:      fmt.Sprintf("%schunk-%d", autoPrefix, i+1),
			Type:    types.ShardChunk,
			Content: piece,
		})
	}
	return shards
}
