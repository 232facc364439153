package xref

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dshills/docshard-mcp/internal/analyzer"
	"github.com/dshills/docshard-mcp/pkg/types"
)

// Detect scans every ordered pair of shards and builds the directed
// reference graph:
//
//   - a literal whole-word occurrence of shard B's id inside shard A's
//     content produces a "references" edge A -> B
//   - a "see <name>" phrase resolving case-insensitively to another
//     shard's section name produces a described "references" edge
//   - a requirement identifier token appearing in two or more shards
//     produces a "depends-on" edge to the first other shard holding it
//
// Edges are deduplicated by (from, to, type). Every shard id is
// validated before being embedded in a scan; an invalid id fails the
// whole detection rather than corrupting the pattern.
//
// Cost is O(n^2 * m) over shard count and content size. Acceptable for
// bounded documents; smaller budgets mean more shards and superlinearly
// more work.
func Detect(shards []types.Shard) ([]types.CrossReference, error) {
	for i := range shards {
		if err := types.ValidateShardID(shards[i].ID); err != nil {
			return nil, fmt.Errorf("shard %d: %w", i, err)
		}
	}

	var refs []types.CrossReference
	seen := make(map[string]bool)

	add := func(ref types.CrossReference) {
		key := ref.From + "\x00" + ref.To + "\x00" + string(ref.Type)
		if seen[key] {
			return
		}
		seen[key] = true
		refs = append(refs, ref)
	}

	// Literal id mentions
	idPatterns := make(map[string]*regexp.Regexp, len(shards))
	for i := range shards {
		idPatterns[shards[i].ID] = wholeWord(shards[i].ID)
	}
	for i := range shards {
		for j := range shards {
			if i == j {
				continue
			}
			if idPatterns[shards[j].ID].MatchString(shards[i].Content) {
				add(types.CrossReference{
					From: shards[i].ID,
					To:   shards[j].ID,
					Type: types.RefReferences,
				})
			}
		}
	}

	// "see <section>" mentions resolved against known section names
	for j := range shards {
		if shards[j].SectionName == "" {
			continue
		}
		mention := seeMention(shards[j].SectionName)
		for i := range shards {
			if i == j {
				continue
			}
			if mention.MatchString(shards[i].Content) {
				add(types.CrossReference{
					From:        shards[i].ID,
					To:          shards[j].ID,
					Type:        types.RefReferences,
					Description: fmt.Sprintf("mentions section %q", shards[j].SectionName),
				})
			}
		}
	}

	// Shared requirement tokens become ordering constraints
	holders := make(map[string][]int) // token -> shard indexes in order
	for i := range shards {
		for _, tok := range uniqueTokens(shards[i].Content) {
			holders[tok] = append(holders[tok], i)
		}
	}
	for i := range shards {
		for _, tok := range uniqueTokens(shards[i].Content) {
			idx := holders[tok]
			if len(idx) < 2 {
				continue
			}
			for _, j := range idx {
				if j != i {
					add(types.CrossReference{
						From:        shards[i].ID,
						To:          shards[j].ID,
						Type:        types.RefDependsOn,
						Description: fmt.Sprintf("shares %s", tok),
					})
					break
				}
			}
		}
	}

	return refs, nil
}

// wholeWord compiles a literal match for id that refuses to fire inside
// a longer identifier. QuoteMeta keeps metacharacters in ids from
// injecting pattern syntax.
func wholeWord(id string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[^A-Za-z0-9._-])` + regexp.QuoteMeta(id) + `(?:$|[^A-Za-z0-9._-])`)
}

// seeMention compiles a case-insensitive "see <name>" matcher for a
// section slug, letting the prose spell the name with spaces where the
// slug has dashes
func seeMention(slug string) *regexp.Regexp {
	parts := strings.Split(slug, "-")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile(`(?i)\bsee\s+` + strings.Join(parts, `[\s_-]+`) + `\b`)
}

// uniqueTokens returns the requirement identifiers in content, first
// occurrence order, without duplicates
func uniqueTokens(content string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, tok := range analyzer.RequirementID.FindAllString(content, -1) {
		if !seen[tok] {
			seen[tok] = true
			out = append(out, tok)
		}
	}
	return out
}
