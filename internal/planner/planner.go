package planner

import (
	"fmt"
	"strings"

	"github.com/dshills/docshard-mcp/internal/analyzer"
	"github.com/dshills/docshard-mcp/internal/estimator"
	"github.com/dshills/docshard-mcp/internal/scheduler"
	"github.com/dshills/docshard-mcp/internal/strategy"
	"github.com/dshills/docshard-mcp/internal/xref"
	"github.com/dshills/docshard-mcp/pkg/types"
)

// Result is the outcome of one decomposition run. Analysis is always
// populated, even when the run fails, so callers can diagnose what the
// planner saw. Plan is nil unless Success is true.
type Result struct {
	Success  bool
	Err      string
	Analysis *types.ShardAnalysis
	Plan     *types.ShardPlan
}

// Planner runs the full decomposition pipeline:
// analyze -> decompose -> estimate -> cross-reference -> order.
type Planner struct{}

// New creates a new Planner instance
func New() *Planner {
	return &Planner{}
}

// Plan decomposes a document into a shard plan. Strategy failures are
// caught here and reported in the Result; Plan never panics and never
// returns a Go error.
func (p *Planner) Plan(text string, opts types.ShardOptions) (result *Result) {
	result = &Result{Analysis: analyzer.Analyze(text)}

	// A panicking strategy must not take the caller down; report it
	// like any other failure
	defer func() {
		if r := recover(); r != nil {
			result.Success = false
			result.Plan = nil
			result.Err = fmt.Sprintf("decomposition panic: %v", r)
		}
	}()

	if err := opts.Validate(); err != nil {
		result.Err = err.Error()
		return result
	}
	if strings.TrimSpace(text) == "" {
		result.Err = "document is empty"
		return result
	}

	strat, err := strategy.ForName(opts.Strategy)
	if err != nil {
		result.Err = err.Error()
		return result
	}

	shards := strat.Decompose(text, opts)
	if len(shards) == 0 {
		result.Err = fmt.Sprintf("strategy %s produced no shards", opts.Strategy)
		return result
	}

	total := estimator.AnnotateShards(shards)

	for i := range shards {
		if err := shards[i].Validate(); err != nil {
			result.Err = fmt.Sprintf("invalid shard %d: %v", i, err)
			return result
		}
	}
	if err := checkUniqueIDs(shards); err != nil {
		result.Err = err.Error()
		return result
	}

	refs, err := xref.Detect(shards)
	if err != nil {
		result.Err = err.Error()
		return result
	}

	result.Plan = &types.ShardPlan{
		Shards:           shards,
		TotalTokens:      total,
		RecommendedOrder: scheduler.Order(shards, refs),
		CrossReferences:  refs,
		Analysis:         *result.Analysis,
	}
	result.Success = true
	return result
}

// checkUniqueIDs enforces plan-local id uniqueness
func checkUniqueIDs(shards []types.Shard) error {
	seen := make(map[string]bool, len(shards))
	for i := range shards {
		if seen[shards[i].ID] {
			return fmt.Errorf("duplicate shard id %q", shards[i].ID)
		}
		seen[shards[i].ID] = true
	}
	return nil
}
