package analyzer

import (
	"fmt"
	"math"
	"strings"

	"github.com/dshills/docshard-mcp/internal/estimator"
	"github.com/dshills/docshard-mcp/pkg/types"
)

// Complexity score weights and caps. Each structural signal
// contributes up to its cap; the caps sum to 100.
const (
	sectionWeight = 5
	sectionCap    = 30

	requirementWeight = 3
	requirementCap    = 30

	scenarioWeight = 2
	scenarioCap    = 20

	linesDivisor = 10
	linesCap     = 20
)

// Strategy recommendation thresholds. Exported because the automatic
// strategy delegates by the same counts the analyzer classifies on.
const (
	ScenarioDominantMin = 10
	RequirementHeavyMin = 15
	SectionMin          = 3
)

// Documents above both limits get the automatic strategy regardless of
// the structural counts
const (
	overrideComplexity = 70
	overrideTokens     = 4000
)

// Analyze profiles raw document text and recommends a decomposition
// strategy. It never fails; empty or malformed input yields an all-zero
// profile with the automatic strategy recommended.
func Analyze(text string) *types.ShardAnalysis {
	a := &types.ShardAnalysis{
		RecommendedStrategy: types.StrategyAuto,
	}
	if strings.TrimSpace(text) == "" {
		a.Reasoning = "empty document; automatic strategy"
		return a
	}

	lines := strings.Split(text, "\n")
	a.TotalLines = len(lines)

	for _, line := range lines {
		if _, ok := IsSectionHeading(line); ok {
			a.SectionCount++
			continue
		}
		if IsRequirementLine(line) {
			a.RequirementCount++
			continue
		}
		if IsScenarioLine(line) {
			a.ScenarioCount++
		}
	}

	a.EstimatedTokens = estimator.EstimateTokens(text)
	a.ComplexityScore = complexityScore(a)
	a.RecommendedStrategy, a.Reasoning = recommend(a)
	return a
}

// complexityScore combines the structural counts into a 0-100 score
func complexityScore(a *types.ShardAnalysis) int {
	score := 0.0
	score += math.Min(float64(a.SectionCount*sectionWeight), sectionCap)
	score += math.Min(float64(a.RequirementCount*requirementWeight), requirementCap)
	score += math.Min(float64(a.ScenarioCount*scenarioWeight), scenarioCap)
	score += math.Min(float64(a.TotalLines)/linesDivisor, linesCap)

	rounded := int(math.Round(score))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

// recommend picks a strategy from the profile
func recommend(a *types.ShardAnalysis) (types.Strategy, string) {
	// Large, complex documents go to the automatic strategy no matter
	// what the structural counts say
	if a.ComplexityScore > overrideComplexity && a.EstimatedTokens > overrideTokens {
		return types.StrategyAuto, fmt.Sprintf(
			"high complexity (%d) and size (~%d tokens); automatic strategy",
			a.ComplexityScore, a.EstimatedTokens)
	}

	switch {
	case a.ScenarioCount > ScenarioDominantMin && a.ScenarioCount > a.RequirementCount:
		return types.StrategyScenario, fmt.Sprintf(
			"scenario-dominant document (%d scenarios)", a.ScenarioCount)
	case a.RequirementCount > RequirementHeavyMin:
		return types.StrategyRequirement, fmt.Sprintf(
			"requirement-heavy document (%d requirements)", a.RequirementCount)
	case a.SectionCount >= SectionMin:
		return types.StrategySection, fmt.Sprintf(
			"well-sectioned document (%d sections)", a.SectionCount)
	default:
		return types.StrategyAuto, "no dominant structure; automatic strategy"
	}
}
