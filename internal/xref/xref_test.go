package xref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docshard-mcp/pkg/types"
)

func findRef(refs []types.CrossReference, from, to string, typ types.CrossRefType) *types.CrossReference {
	for i := range refs {
		if refs[i].From == from && refs[i].To == to && refs[i].Type == typ {
			return &refs[i]
		}
	}
	return nil
}

func TestDetect_LiteralIDMention(t *testing.T) {
	shards := []types.Shard{
		{ID: "section-1", Content: "details are in section-2 below"},
		{ID: "section-2", Content: "standalone content"},
	}

	refs, err := Detect(shards)
	require.NoError(t, err)

	assert.NotNil(t, findRef(refs, "section-1", "section-2", types.RefReferences))
	assert.Nil(t, findRef(refs, "section-2", "section-1", types.RefReferences))
}

func TestDetect_NoPartialIDMatch(t *testing.T) {
	shards := []types.Shard{
		{ID: "section-1", Content: "this mentions section-10 only"},
		{ID: "section-10", Content: "other"},
	}

	refs, err := Detect(shards)
	require.NoError(t, err)

	// "section-10" must not count as a mention of "section-1"
	assert.Nil(t, findRef(refs, "section-1", "section-1", types.RefReferences))
	for _, r := range refs {
		assert.NotEqual(t, "section-1", r.To)
	}
}

func TestDetect_MetacharactersInIDsAreEscaped(t *testing.T) {
	shards := []types.Shard{
		{ID: "part.one", Content: "see also partXone nothing literal"},
		{ID: "part-two", Content: "refers to part.one directly"},
	}

	refs, err := Detect(shards)
	require.NoError(t, err)

	// "partXone" must not match the dot in "part.one"
	assert.Nil(t, findRef(refs, "part.one", "part-two", types.RefReferences))
	assert.NotNil(t, findRef(refs, "part-two", "part.one", types.RefReferences))
}

func TestDetect_SeeSectionPhrase(t *testing.T) {
	shards := []types.Shard{
		{ID: "a", Content: "for the wire format, see API Design."},
		{ID: "b", SectionName: "api-design", Content: "## API Design\nbody"},
	}

	refs, err := Detect(shards)
	require.NoError(t, err)

	ref := findRef(refs, "a", "b", types.RefReferences)
	require.NotNil(t, ref)
	assert.Contains(t, ref.Description, "api-design")
}

func TestDetect_SharedRequirementTokens(t *testing.T) {
	shards := []types.Shard{
		{ID: "first", Content: "implements REQ-42 fully"},
		{ID: "second", Content: "validates REQ-42 output"},
		{ID: "third", Content: "unrelated REQ-7 work"},
	}

	refs, err := Detect(shards)
	require.NoError(t, err)

	// Both holders point at the first *other* holder
	assert.NotNil(t, findRef(refs, "first", "second", types.RefDependsOn))
	assert.NotNil(t, findRef(refs, "second", "first", types.RefDependsOn))

	// REQ-7 appears once; no edge
	for _, r := range refs {
		assert.NotEqual(t, "third", r.From)
	}
}

func TestDetect_Dedupe(t *testing.T) {
	shards := []types.Shard{
		{ID: "x", Content: "y and y again and REQ-1 twice REQ-1"},
		{ID: "y", Content: "REQ-1 lives here"},
	}

	refs, err := Detect(shards)
	require.NoError(t, err)

	count := 0
	for _, r := range refs {
		if r.From == "x" && r.To == "y" && r.Type == types.RefReferences {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestDetect_InvalidIDRejected(t *testing.T) {
	shards := []types.Shard{{ID: "", Content: "content"}}
	_, err := Detect(shards)
	assert.ErrorIs(t, err, types.ErrEmptyShardID)
}

func TestDetect_NoShards(t *testing.T) {
	refs, err := Detect(nil)
	require.NoError(t, err)
	assert.Empty(t, refs)
}
