package strategy

import (
	"fmt"
	"strings"

	"github.com/dshills/docshard-mcp/internal/analyzer"
	"github.com/dshills/docshard-mcp/pkg/types"
)

// RequirementStrategy emits one shard per requirement line, carrying
// forward any scenario blocks that immediately follow the requirement
// as a nested block within the same shard
type RequirementStrategy struct{}

func (r *RequirementStrategy) Name() types.Strategy { return types.StrategyRequirement }

func (r *RequirementStrategy) Decompose(text string, opts types.ShardOptions) []types.Shard {
	lines := strings.Split(text, "\n")

	var reqLines []int
	for i, line := range lines {
		if analyzer.IsRequirementLine(line) {
			reqLines = append(reqLines, i)
		}
	}

	if len(reqLines) == 0 {
		return renumber(fallbackShard(text))
	}

	var shards []types.Shard
	preamble := strings.Join(lines[:reqLines[0]], "\n")
	meta, hasMeta := metadataShard(preamble, opts)
	if hasMeta {
		shards = append(shards, meta)
	}

	for n, start := range reqLines {
		var b strings.Builder
		b.WriteString(lines[start])

		// Attach immediately following scenario blocks; each block runs
		// to the next blank line
		j := start + 1
		for j < len(lines) && analyzer.IsScenarioLine(lines[j]) {
			for j < len(lines) && strings.TrimSpace(lines[j]) != "" {
				b.WriteString("\n")
				b.WriteString(lines[j])
				j++
			}
			for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
				j++
			}
		}

		shard := types.Shard{
			ID:      fmt.Sprintf("req-%d", n+1),
			Type:    types.ShardRequirement,
			Content: b.String(),
		}
		if hasMeta && opts.PreserveContext {
			shard.Dependencies = []string{meta.ID}
		}
		shards = append(shards, shard)
	}

	return renumber(shards)
}
