package scheduler

import (
	"sort"

	"github.com/dshills/docshard-mcp/pkg/types"
)

// Order computes a deterministic linear processing order over shards.
//
// Ordering constraints come from two places: "depends-on" cross
// references (an edge from -> to means from depends on to, so to is
// scheduled first) and parent links (a parent always precedes its
// children). "references" edges carry no constraint and are ignored.
//
// The sort is a priority-aware variant of Kahn's algorithm: the ready
// set is always drained lowest-priority-first (ties broken by id), so
// the result is stable for identical inputs. If a dependency cycle
// leaves shards unscheduled, they are appended ordered by ascending
// priority; the function always terminates with a total ordering even
// though no correct ordering exists inside the cyclic subset.
func Order(shards []types.Shard, refs []types.CrossReference) []string {
	byID := make(map[string]int, len(shards))
	for i := range shards {
		byID[shards[i].ID] = i
	}

	inDegree := make([]int, len(shards))
	successors := make([][]int, len(shards))
	edgeSeen := make(map[[2]int]bool)

	addEdge := func(before, after int) {
		key := [2]int{before, after}
		if before == after || edgeSeen[key] {
			return
		}
		edgeSeen[key] = true
		successors[before] = append(successors[before], after)
		inDegree[after]++
	}

	for _, ref := range refs {
		if ref.Type != types.RefDependsOn {
			continue
		}
		from, okFrom := byID[ref.From]
		to, okTo := byID[ref.To]
		if okFrom && okTo {
			addEdge(to, from)
		}
	}
	for i := range shards {
		if shards[i].ParentID == "" {
			continue
		}
		if parent, ok := byID[shards[i].ParentID]; ok {
			addEdge(parent, i)
		}
	}

	less := func(a, b int) bool {
		if shards[a].Priority != shards[b].Priority {
			return shards[a].Priority < shards[b].Priority
		}
		return shards[a].ID < shards[b].ID
	}

	var ready []int
	for i := range shards {
		if inDegree[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]string, 0, len(shards))
	scheduled := make([]bool, len(shards))
	for len(ready) > 0 {
		sort.Slice(ready, func(a, b int) bool { return less(ready[a], ready[b]) })
		next := ready[0]
		ready = ready[1:]

		order = append(order, shards[next].ID)
		scheduled[next] = true

		for _, succ := range successors[next] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				ready = append(ready, succ)
			}
		}
	}

	// Cycle fallback: whatever is left gets appended by priority so the
	// order is still total and deterministic
	var leftover []int
	for i := range shards {
		if !scheduled[i] {
			leftover = append(leftover, i)
		}
	}
	sort.Slice(leftover, func(a, b int) bool { return less(leftover[a], leftover[b]) })
	for _, i := range leftover {
		order = append(order, shards[i].ID)
	}

	return order
}
