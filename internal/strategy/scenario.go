package strategy

import (
	"fmt"
	"strings"

	"github.com/dshills/docshard-mcp/internal/analyzer"
	"github.com/dshills/docshard-mcp/pkg/types"
)

// ScenarioStrategy emits one shard per scenario/example block. A
// requirement identifier found immediately before a block is noted
// informationally in the shard content; it never becomes a dependency
// edge at this stage.
type ScenarioStrategy struct{}

func (s *ScenarioStrategy) Name() types.Strategy { return types.StrategyScenario }

func (s *ScenarioStrategy) Decompose(text string, opts types.ShardOptions) []types.Shard {
	lines := strings.Split(text, "\n")

	type block struct {
		start, end int // [start, end) line range
	}
	var blocks []block
	for i := 0; i < len(lines); i++ {
		if !analyzer.IsScenarioLine(lines[i]) {
			continue
		}
		end := i + 1
		for end < len(lines) && strings.TrimSpace(lines[end]) != "" {
			end++
		}
		blocks = append(blocks, block{start: i, end: end})
		i = end
	}

	if len(blocks) == 0 {
		return renumber(fallbackShard(text))
	}

	var shards []types.Shard
	preamble := strings.Join(lines[:blocks[0].start], "\n")
	meta, hasMeta := metadataShard(preamble, opts)
	if hasMeta {
		shards = append(shards, meta)
	}

	for n, blk := range blocks {
		content := strings.Join(lines[blk.start:blk.end], "\n")

		// Note a related requirement when the block itself carries no
		// identifier but the line right above it does
		if !analyzer.RequirementID.MatchString(content) {
			if reqID := requirementIDBefore(lines, blk.start); reqID != "" {
				content = fmt.Sprintf("Related requirement: %s\n%s", reqID, content)
			}
		}

		shard := types.Shard{
			ID:      fmt.Sprintf("scenario-%d", n+1),
			Type:    types.ShardScenario,
			Content: content,
		}
		if hasMeta && opts.PreserveContext {
			shard.Dependencies = []string{meta.ID}
		}
		shards = append(shards, shard)
	}

	return renumber(shards)
}

// requirementIDBefore returns the requirement identifier on the nearest
// non-blank line above the block start, if any
func requirementIDBefore(lines []string, start int) string {
	for i := start - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		return analyzer.RequirementID.FindString(lines[i])
	}
	return ""
}
