// Package strategy implements the pluggable decomposition algorithms.
//
// Four strategies share one contract: take raw text plus options,
// return a shard list. Cost estimation is the caller's job, applied
// after decomposition.
//
//	strat, err := strategy.ForName(types.StrategySection)
//	if err != nil {
//	    return err
//	}
//	shards := strat.Decompose(text, opts)
//
// # Strategies
//
//   - SectionStrategy: split at second-level headings; preamble becomes
//     a metadata shard; oversized sections are size-split into chunks.
//   - RequirementStrategy: one shard per requirement line, with any
//     immediately following scenario blocks nested into the same shard.
//   - ScenarioStrategy: one shard per scenario/example block, noting a
//     nearby requirement identifier informationally.
//   - AutoStrategy: single shard when the whole document fits the
//     budget, otherwise delegates by structural profile or falls back
//     to fixed-size paragraph chunking. Every id on this path carries
//     the "auto-" prefix, and no returned shard exceeds the budget.
//
// All strategies are pure functions over their arguments: splitting
// returns new shard slices and never mutates input. Shards come back
// with sequential priorities in document order and without token
// counts; run the estimator over the result before scheduling.
package strategy
