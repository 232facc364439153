package strategy

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dshills/docshard-mcp/internal/analyzer"
	"github.com/dshills/docshard-mcp/pkg/types"
)

// maxSlugLength bounds section slugs so composed shard ids stay within
// the id length bound even after chunk suffixes
const maxSlugLength = 40

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a section title into a lowercase, filename-safe slug
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugStrip.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-")
	}
	return slug
}

// SectionStrategy splits a document at second-level headings. The
// preamble before the first heading becomes a metadata shard; each
// section becomes one shard, size-split into chunks when it exceeds
// the budget.
type SectionStrategy struct{}

func (s *SectionStrategy) Name() types.Strategy { return types.StrategySection }

func (s *SectionStrategy) Decompose(text string, opts types.ShardOptions) []types.Shard {
	lines := strings.Split(text, "\n")

	type section struct {
		title string
		start int
	}
	var sections []section
	for i, line := range lines {
		if title, ok := analyzer.IsSectionHeading(line); ok {
			sections = append(sections, section{title: title, start: i})
		}
	}

	if len(sections) == 0 {
		return renumber(fallbackShard(text))
	}

	var shards []types.Shard
	preamble := strings.Join(lines[:sections[0].start], "\n")
	meta, hasMeta := metadataShard(preamble, opts)
	if hasMeta {
		shards = append(shards, meta)
	}

	for idx, sec := range sections {
		end := len(lines)
		if idx+1 < len(sections) {
			end = sections[idx+1].start
		}
		content := strings.TrimRight(strings.Join(lines[sec.start:end], "\n"), "\n")

		slug := Slugify(sec.title)
		id := fmt.Sprintf("section-%d", idx+1)
		if slug != "" {
			id = fmt.Sprintf("section-%d-%s", idx+1, slug)
		}

		shard := types.Shard{
			ID:          id,
			Type:        types.ShardSection,
			Content:     content,
			SectionName: slug,
		}
		if hasMeta && opts.PreserveContext {
			shard.Dependencies = []string{meta.ID}
		}

		shards = append(shards, SplitOversized(shard, opts.MaxTokensPerShard)...)
	}

	return renumber(shards)
}
