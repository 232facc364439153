// Package merger reconstructs documents from shard subsets.
//
// The merge is lossy-tolerant: missing parents or dependencies are
// reported rather than fatal, and content is always assembled
// best-effort in priority order.
//
//	result := merger.Merge(shards)
//	if !result.Success {
//	    log.Printf("missing shards: %v", result.MissingShards)
//	}
//
// Duplicate-content and duplicate-heading conflicts are surfaced as
// warnings alongside a successful merge; they never fail it.
package merger
