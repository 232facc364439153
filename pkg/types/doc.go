// Package types provides shared type definitions for the DocShard MCP server.
//
// This package defines domain types used across the sharding pipeline:
// shards, decomposition options, analysis profiles, plans, cross-references,
// and merge results.
//
// # Core Types
//
// Shard represents one self-contained fragment of a decomposed document:
//
//	shard := types.Shard{
//	    ID:       "section-2-api-design",
//	    Type:     types.ShardSection,
//	    Content:  sectionBody,
//	    Priority: 2,
//	}
//
// ShardPlan is the full output of one decomposition run, combining the
// shard list with cost totals, cross-references, and a recommended
// processing order:
//
//	for _, id := range plan.RecommendedOrder {
//	    shard, _ := plan.ShardByID(id)
//	    process(shard)
//	}
//
// # Identifiers
//
// Shard IDs are plan-local, length-bounded, and restricted to a
// filename-safe character set so they can be embedded in generated
// filenames and scanned for literally inside other shards' content:
//
//	if err := types.ValidateShardID(id); err != nil {
//	    return err
//	}
//
// # Validation
//
// Domain types carry validation methods to ensure data integrity:
//
//	if err := shard.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// TokenCount is an estimate produced by the estimator package, not an
// exact figure from any particular tokenizer.
package types
