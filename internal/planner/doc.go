// Package planner assembles shard plans. It is the single entry point
// for decomposition.
//
//	p := planner.New()
//	result := p.Plan(documentText, types.DefaultShardOptions())
//	if !result.Success {
//	    log.Printf("sharding failed: %s (analysis: %+v)", result.Err, result.Analysis)
//	    return
//	}
//	usePlan(result.Plan)
//
// The pipeline is: analyzer profiles the text, the selected strategy
// decomposes it, the estimator annotates per-shard cost, the detector
// builds the cross-reference graph, and the scheduler produces the
// recommended processing order. Everything is synchronous, pure
// computation over the arguments; persistence belongs to the caller.
//
// Failures inside a strategy are caught at this level and reported via
// Result.Err together with the still-computed analysis; they never
// propagate as panics or errors.
package planner
