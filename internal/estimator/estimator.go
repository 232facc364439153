package estimator

import (
	"strings"

	"github.com/dshills/docshard-mcp/pkg/types"
)

const (
	// ProseCharsPerToken is the heuristic for prose text (chars/4)
	ProseCharsPerToken = 4

	// CodeCharsPerToken is the heuristic for fenced code blocks, which
	// tokenize denser than prose (chars/3)
	CodeCharsPerToken = 3
)

// EstimateTokens returns a non-negative estimate of the processing cost
// of text in abstract token units.
//
// Text inside fenced code blocks is counted at a denser rate than prose.
// The prose and code character totals are converted independently, each
// ceiling-rounded, and summed. This is a documented approximation; it is
// not guaranteed to match any specific tokenizer.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}

	var proseChars, codeChars int
	inCode := false

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			// Fence lines themselves count at the code rate
			codeChars += len(line) + 1
			inCode = !inCode
			continue
		}
		if inCode {
			codeChars += len(line) + 1
		} else {
			proseChars += len(line) + 1
		}
	}

	return ceilDiv(proseChars, ProseCharsPerToken) + ceilDiv(codeChars, CodeCharsPerToken)
}

// AnnotateShards fills in TokenCount for every shard in place and
// returns the total estimated cost of the set
func AnnotateShards(shards []types.Shard) int {
	total := 0
	for i := range shards {
		shards[i].TokenCount = EstimateTokens(shards[i].Content)
		total += shards[i].TokenCount
	}
	return total
}

func ceilDiv(n, d int) int {
	if n <= 0 {
		return 0
	}
	return (n + d - 1) / d
}
