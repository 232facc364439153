package strategy

import (
	"fmt"
	"strings"

	"github.com/dshills/docshard-mcp/pkg/types"
)

// Strategy decomposes raw document text into shards. Implementations
// are pure: no I/O, no shared state, and no cost annotation (the caller
// runs the estimator over the result afterwards).
type Strategy interface {
	Name() types.Strategy
	Decompose(text string, opts types.ShardOptions) []types.Shard
}

// ForName returns the strategy implementation for a strategy name
func ForName(name types.Strategy) (Strategy, error) {
	switch name {
	case types.StrategySection:
		return &SectionStrategy{}, nil
	case types.StrategyRequirement:
		return &RequirementStrategy{}, nil
	case types.StrategyScenario:
		return &ScenarioStrategy{}, nil
	case types.StrategyAuto:
		return &AutoStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrInvalidStrategy, name)
	}
}

// metadataShardID is the id of the shard holding the document preamble
const metadataShardID = "metadata"

// fallbackShard wraps the whole document in a single shard. Used when a
// strategy finds nothing to split on.
func fallbackShard(text string) []types.Shard {
	return []types.Shard{{
		ID:      "document",
		Type:    types.ShardChunk,
		Content: text,
	}}
}

// metadataShard builds the preamble shard. When the preamble is empty
// but context preservation is on, a minimal context line is generated so
// the shard still satisfies the non-empty content invariant.
func metadataShard(preamble string, opts types.ShardOptions) (types.Shard, bool) {
	if !opts.IncludeMetadata {
		return types.Shard{}, false
	}
	content := strings.TrimRight(preamble, "\n")
	if strings.TrimSpace(content) == "" {
		if !opts.PreserveContext {
			return types.Shard{}, false
		}
		content = "(no document preamble)"
	}
	return types.Shard{
		ID:      metadataShardID,
		Type:    types.ShardMetadata,
		Content: content,
	}, true
}

// renumber assigns sequential priorities in emission order. Strategies
// emit shards in document order, so position doubles as priority.
func renumber(shards []types.Shard) []types.Shard {
	for i := range shards {
		shards[i].Priority = i
	}
	return shards
}

// applyPrefix rewrites every shard id, parent back-reference, and
// dependency with the given prefix. Used by the automatic strategy so
// its delegated ids are distinguishable.
func applyPrefix(shards []types.Shard, prefix string) []types.Shard {
	for i := range shards {
		shards[i].ID = prefix + shards[i].ID
		if shards[i].ParentID != "" {
			shards[i].ParentID = prefix + shards[i].ParentID
		}
		for j := range shards[i].Dependencies {
			shards[i].Dependencies[j] = prefix + shards[i].Dependencies[j]
		}
	}
	return shards
}
