package types

import "fmt"

// Strategy names a decomposition algorithm
type Strategy string

const (
	StrategySection     Strategy = "section"
	StrategyRequirement Strategy = "requirement"
	StrategyScenario    Strategy = "scenario"
	StrategyAuto        Strategy = "auto"
)

// DefaultMaxTokensPerShard is the per-shard budget used when the caller
// does not configure one
const DefaultMaxTokensPerShard = 2000

// ShardOptions controls a single decomposition run
type ShardOptions struct {
	// Strategy selects the decomposition algorithm; StrategyAuto lets
	// the analyzer pick
	Strategy Strategy

	// MaxTokensPerShard is the estimated-cost budget for one shard
	MaxTokensPerShard int

	// PreserveContext links content shards back to the metadata shard
	// so they can be processed with the document preamble available
	PreserveContext bool

	// IncludeMetadata keeps the document preamble as its own shard
	IncludeMetadata bool
}

// DefaultShardOptions returns the options used when the caller passes none
func DefaultShardOptions() ShardOptions {
	return ShardOptions{
		Strategy:          StrategyAuto,
		MaxTokensPerShard: DefaultMaxTokensPerShard,
		PreserveContext:   true,
		IncludeMetadata:   true,
	}
}

// Validate checks if the options describe a runnable decomposition
func (o ShardOptions) Validate() error {
	switch o.Strategy {
	case StrategySection, StrategyRequirement, StrategyScenario, StrategyAuto:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStrategy, o.Strategy)
	}
	if o.MaxTokensPerShard <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTokenBudget, o.MaxTokensPerShard)
	}
	return nil
}
