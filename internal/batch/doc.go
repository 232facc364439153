// Package batch plans many documents concurrently.
//
// A Runner wraps the planner with a bounded worker pool so a directory
// of markdown documents can be sharded in one call, optionally
// persisting each resulting plan. Per-document planning failures are
// collected in the run statistics rather than aborting the batch.
package batch
