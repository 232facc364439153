package types

// ConflictType classifies a merge conflict warning
type ConflictType string

const (
	ConflictDuplicateContent ConflictType = "duplicate-content"
	ConflictDuplicateHeader  ConflictType = "duplicate-header"
)

// MergeConflict is an informational warning produced during merge.
// Conflicts never fail a merge on their own.
type MergeConflict struct {
	Type     ConflictType
	ShardIDs []string
	Detail   string
}

// MergeResult is the outcome of reconstructing a document from shards.
// Success is false when any referenced parent or dependency was absent
// from the input set; Content is still populated best-effort.
type MergeResult struct {
	Content       string
	Success       bool
	MissingShards []string
	Conflicts     []MergeConflict
}
