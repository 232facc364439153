package merger

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/dshills/docshard-mcp/pkg/types"
)

const (
	// Delimiter separates adjacent fragments in merged output
	Delimiter = "\n\n---\n\n"

	// minConflictLength is the normalized-content size below which
	// duplicate content is too trivial to flag
	minConflictLength = 100
)

// headingLine matches markdown headings of levels 1-3
var headingLine = regexp.MustCompile(`(?m)^(#{1,3})\s+(.+?)\s*$`)

// Merge reconstructs a document from an arbitrary subset of shards.
//
// Shards are concatenated in ascending priority order with a visible
// delimiter between adjacent fragments. Any parent or dependency id
// absent from the input set is reported in MissingShards and flips
// Success to false; content is still assembled best-effort. Conflict
// detection is informational only and never affects Success.
//
// Merge is pure and idempotent: the same shard set always produces the
// same result.
func Merge(shards []types.Shard) *types.MergeResult {
	sorted := make([]types.Shard, len(shards))
	copy(sorted, shards)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].Priority < sorted[b].Priority
	})

	present := make(map[string]bool, len(sorted))
	for i := range sorted {
		present[sorted[i].ID] = true
	}

	missingSet := make(map[string]bool)
	contents := make([]string, 0, len(sorted))
	for i := range sorted {
		if sorted[i].ParentID != "" && !present[sorted[i].ParentID] {
			missingSet[sorted[i].ParentID] = true
		}
		for _, dep := range sorted[i].Dependencies {
			if !present[dep] {
				missingSet[dep] = true
			}
		}
		contents = append(contents, sorted[i].Content)
	}

	result := &types.MergeResult{
		Content: strings.Join(contents, Delimiter),
		Success: len(missingSet) == 0,
	}
	if len(missingSet) > 0 {
		result.MissingShards = sortedKeys(missingSet)
	}

	result.Conflicts = append(result.Conflicts, duplicateContentConflicts(sorted)...)
	result.Conflicts = append(result.Conflicts, duplicateHeaderConflicts(sorted)...)
	return result
}

// duplicateContentConflicts flags groups of shards whose normalized
// content is identical and long enough to matter
func duplicateContentConflicts(shards []types.Shard) []types.MergeConflict {
	groups := make(map[string][]string)
	var order []string
	for i := range shards {
		norm := strings.ToLower(strings.TrimSpace(shards[i].Content))
		if len(norm) < minConflictLength {
			continue
		}
		if _, ok := groups[norm]; !ok {
			order = append(order, norm)
		}
		groups[norm] = append(groups[norm], shards[i].ID)
	}

	var conflicts []types.MergeConflict
	for _, norm := range order {
		ids := groups[norm]
		if len(ids) < 2 {
			continue
		}
		conflicts = append(conflicts, types.MergeConflict{
			Type:     types.ConflictDuplicateContent,
			ShardIDs: ids,
			Detail:   fmt.Sprintf("identical content (%d chars) in %d shards", len(norm), len(ids)),
		})
	}
	return conflicts
}

// duplicateHeaderConflicts flags heading text (levels 1-3) that occurs
// in more than one shard
func duplicateHeaderConflicts(shards []types.Shard) []types.MergeConflict {
	holders := make(map[string][]string)
	var order []string
	for i := range shards {
		seenHere := make(map[string]bool)
		for _, m := range headingLine.FindAllStringSubmatch(shards[i].Content, -1) {
			heading := strings.ToLower(strings.TrimSpace(m[2]))
			if heading == "" || seenHere[heading] {
				continue
			}
			seenHere[heading] = true
			if _, ok := holders[heading]; !ok {
				order = append(order, heading)
			}
			holders[heading] = append(holders[heading], shards[i].ID)
		}
	}

	var conflicts []types.MergeConflict
	for _, heading := range order {
		ids := holders[heading]
		if len(ids) < 2 {
			continue
		}
		conflicts = append(conflicts, types.MergeConflict{
			Type:     types.ConflictDuplicateHeader,
			ShardIDs: ids,
			Detail:   fmt.Sprintf("heading %q appears in %d shards", heading, len(ids)),
		})
	}
	return conflicts
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
