// Package estimator approximates the processing cost of text fragments.
//
// Costs are measured in abstract token units using a chars-per-token
// heuristic: prose at chars/4, fenced code blocks at chars/3. The two
// ranges are converted independently, each ceiling-rounded, then summed.
//
//	tokens := estimator.EstimateTokens(shardContent)
//
// The estimate intentionally diverges from any specific tokenizer.
// Callers sizing shards for a particular consumer should treat the
// result as an approximation and leave headroom in their budgets.
package estimator
