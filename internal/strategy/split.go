package strategy

import (
	"fmt"
	"strings"

	"github.com/dshills/docshard-mcp/internal/estimator"
	"github.com/dshills/docshard-mcp/pkg/types"
)

// chunkIDReserve leaves room in a shard id for the "-chunk-NNNNN"
// suffix, covering sequences of up to 99999 chunks
const chunkIDReserve = 12

// maxChunkIDBase bounds the id base of split chunks. The automatic
// path applies its id prefix to delegated shards after they have been
// split, so the bound reserves room for that prefix as well as the
// chunk suffix.
const maxChunkIDBase = types.MaxShardIDLength - chunkIDReserve - len(autoPrefix)

// SplitOversized returns the shard unchanged when its estimated cost
// fits the budget, otherwise replaces it with sequential numbered chunk
// shards that each fit. The result is a new slice; the input shard is
// never mutated.
//
// Chunks after the first carry a parent link to the first chunk, so the
// scheduler keeps the sequence together and a merge over a partial set
// reports the head chunk as missing.
func SplitOversized(shard types.Shard, budget int) []types.Shard {
	if budget <= 0 || estimator.EstimateTokens(shard.Content) <= budget {
		return []types.Shard{shard}
	}

	pieces := pack(shard.Content, budget)
	if len(pieces) <= 1 {
		return []types.Shard{shard}
	}

	base := shard.ID
	if len(base) > maxChunkIDBase {
		base = strings.TrimRight(base[:maxChunkIDBase], "-.")
	}

	chunks := make([]types.Shard, 0, len(pieces))
	headID := fmt.Sprintf("%s-chunk-1", base)
	for i, piece := range pieces {
		chunk := types.Shard{
			ID:           fmt.Sprintf("%s-chunk-%d", base, i+1),
			Type:         types.ShardChunk,
			Content:      piece,
			SectionName:  shard.SectionName,
			Dependencies: append([]string(nil), shard.Dependencies...),
		}
		if i > 0 {
			chunk.ParentID = headID
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}

// pack splits text into pieces that each fit the budget, preferring
// paragraph boundaries, then line boundaries, then fixed character
// windows as a last resort
func pack(text string, budget int) []string {
	var pieces []string
	cur := ""

	flush := func() {
		if strings.TrimSpace(cur) != "" {
			pieces = append(pieces, cur)
		}
		cur = ""
	}

	for _, para := range strings.Split(text, "\n\n") {
		if estimator.EstimateTokens(para) > budget {
			flush()
			pieces = append(pieces, packLines(para, budget)...)
			continue
		}
		candidate := para
		if cur != "" {
			candidate = cur + "\n\n" + para
		}
		if estimator.EstimateTokens(candidate) > budget {
			flush()
			cur = para
		} else {
			cur = candidate
		}
	}
	flush()

	if len(pieces) == 0 {
		pieces = []string{text}
	}
	return pieces
}

// packLines packs individual lines of an oversized paragraph
func packLines(text string, budget int) []string {
	var pieces []string
	cur := ""

	flush := func() {
		if strings.TrimSpace(cur) != "" {
			pieces = append(pieces, cur)
		}
		cur = ""
	}

	for _, line := range strings.Split(text, "\n") {
		if estimator.EstimateTokens(line) > budget {
			flush()
			pieces = append(pieces, packWindows(line, budget)...)
			continue
		}
		candidate := line
		if cur != "" {
			candidate = cur + "\n" + line
		}
		if estimator.EstimateTokens(candidate) > budget {
			flush()
			cur = line
		} else {
			cur = candidate
		}
	}
	flush()
	return pieces
}

// packWindows cuts a single oversized line into fixed character windows
// sized so even all-code text fits the budget
func packWindows(line string, budget int) []string {
	maxChars := budget*estimator.CodeCharsPerToken - 8
	if maxChars < 1 {
		maxChars = 1
	}

	var pieces []string
	for start := 0; start < len(line); start += maxChars {
		end := start + maxChars
		if end > len(line) {
			end = len(line)
		}
		pieces = append(pieces, line[start:end])
	}
	return pieces
}
