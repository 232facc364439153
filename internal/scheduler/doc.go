// Package scheduler computes the deterministic processing order of a
// shard plan.
//
// The graph is rebuilt fresh per call as index-based adjacency lists;
// nothing is retained between calls. Dependency edges and parent links
// feed a priority-aware topological sort with a by-priority fallback
// for cyclic subsets, so every input yields a total ordering.
package scheduler
