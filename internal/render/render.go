package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dshills/docshard-mcp/pkg/types"
)

// PlanSummary renders a human-readable markdown summary of a plan
func PlanSummary(plan *types.ShardPlan) string {
	var b strings.Builder

	b.WriteString("# Shard Plan\n\n")
	fmt.Fprintf(&b, "- Shards: %d\n", len(plan.Shards))
	fmt.Fprintf(&b, "- Total estimated tokens: %d\n", plan.TotalTokens)
	fmt.Fprintf(&b, "- Cross-references: %d\n", len(plan.CrossReferences))
	fmt.Fprintf(&b, "- Recommended strategy: %s\n", plan.Analysis.RecommendedStrategy)
	fmt.Fprintf(&b, "- Complexity: %d/100 (%s)\n\n", plan.Analysis.ComplexityScore, plan.Analysis.Reasoning)

	b.WriteString("## Processing Order\n\n")
	for i, id := range plan.RecommendedOrder {
		shard, ok := plan.ShardByID(id)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%d. `%s` (%s, ~%d tokens)\n", i+1, id, shard.Type, shard.TokenCount)
	}

	if len(plan.CrossReferences) > 0 {
		b.WriteString("\n## Cross-References\n\n")
		for _, ref := range plan.CrossReferences {
			fmt.Fprintf(&b, "- `%s` %s `%s`", ref.From, ref.Type, ref.To)
			if ref.Description != "" {
				fmt.Fprintf(&b, " (%s)", ref.Description)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// ShardDocument renders one shard as a standalone document. With
// header enabled, a comment line carries the shard metadata so a later
// import can reassemble the plan from files alone.
func ShardDocument(shard *types.Shard, header bool) string {
	if !header {
		return shard.Content
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<!-- shard: %s | type: %s | priority: %d", shard.ID, shard.Type, shard.Priority)
	if shard.ParentID != "" {
		fmt.Fprintf(&b, " | parent: %s", shard.ParentID)
	}
	if len(shard.Dependencies) > 0 {
		fmt.Fprintf(&b, " | deps: %s", strings.Join(shard.Dependencies, ","))
	}
	b.WriteString(" -->\n\n")
	b.WriteString(shard.Content)
	return b.String()
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeFilename strips everything filename-hostile from a name
func SanitizeFilename(name string) string {
	clean := unsafeFilename.ReplaceAllString(name, "-")
	clean = strings.Trim(clean, "-.")
	if clean == "" {
		clean = "shard"
	}
	return clean
}

// ShardFilename builds the export filename for a shard, prefixed with
// its position so a directory listing shows processing order
func ShardFilename(position int, shard *types.Shard) string {
	return fmt.Sprintf("%03d-%s.md", position, SanitizeFilename(shard.ID))
}
