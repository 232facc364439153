package types

// ShardAnalysis is a read-only structural profile of a document.
// It is computed once by the analyzer and never mutated afterwards.
type ShardAnalysis struct {
	SectionCount     int
	RequirementCount int
	ScenarioCount    int
	TotalLines       int
	EstimatedTokens  int

	// ComplexityScore is a 0-100 heuristic combining the counts above
	ComplexityScore int

	// RecommendedStrategy is the strategy the profile suggests
	RecommendedStrategy Strategy

	// Reasoning is a human-readable justification for the recommendation
	Reasoning string
}

// CrossRefType classifies a detected relationship between two shards
type CrossRefType string

const (
	// RefReferences marks an informational mention; it does not
	// constrain processing order
	RefReferences CrossRefType = "references"

	// RefDependsOn marks an ordering constraint consumed by the scheduler
	RefDependsOn CrossRefType = "depends-on"
)

// CrossReference is a directed edge between two shards
type CrossReference struct {
	From        string
	To          string
	Type        CrossRefType
	Description string
}

// ShardPlan is the complete output of one decomposition run.
// It is immutable once built; callers own persistence.
type ShardPlan struct {
	Shards           []Shard
	TotalTokens      int
	RecommendedOrder []string
	CrossReferences  []CrossReference
	Analysis         ShardAnalysis
}

// ShardByID looks up a shard in the plan
func (p *ShardPlan) ShardByID(id string) (*Shard, bool) {
	for i := range p.Shards {
		if p.Shards[i].ID == id {
			return &p.Shards[i], true
		}
	}
	return nil, false
}

// ShardIDs returns the ids of all shards in plan order
func (p *ShardPlan) ShardIDs() []string {
	ids := make([]string, len(p.Shards))
	for i := range p.Shards {
		ids[i] = p.Shards[i].ID
	}
	return ids
}
