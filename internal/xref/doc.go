// Package xref detects relationships between shards of one plan.
//
// Detection is purely structural: literal id mentions, "see <section>"
// phrases, and shared requirement identifier tokens. Only "depends-on"
// edges constrain the scheduler; "references" edges are informational.
//
//	refs, err := xref.Detect(plan.Shards)
//
// Detection runs once per plan and is quadratic in shard count, so very
// small shard budgets make it the most expensive stage of the pipeline.
package xref
