// Package analyzer profiles document structure and recommends a
// decomposition strategy.
//
// The analyzer counts second-level headings, requirement lines, and
// scenario/example blocks, estimates total processing cost, and folds
// everything into a 0-100 complexity score:
//
//	analysis := analyzer.Analyze(documentText)
//	fmt.Printf("%d sections, complexity %d, recommended: %s\n",
//	    analysis.SectionCount, analysis.ComplexityScore,
//	    analysis.RecommendedStrategy)
//
// Analysis is purely structural pattern recognition over lines; there is
// no natural-language understanding. Analyze never fails: empty or
// malformed input produces an all-zero profile recommending the
// automatic strategy.
//
// The line classification patterns are exported so the strategy
// implementations split documents on exactly the boundaries the
// analyzer counted.
package analyzer
