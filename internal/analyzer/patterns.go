package analyzer

import "regexp"

// Line patterns shared by the analyzer and the decomposition strategies.
// Strategies must classify lines exactly the way the analyzer counted
// them, or shard counts drift from the profile.
var (
	// SectionHeading matches second-level markdown headings only
	SectionHeading = regexp.MustCompile(`^##\s+(.+?)\s*$`)

	// requirementBullet matches a bulleted line carrying a modal or
	// obligation keyword
	requirementBullet = regexp.MustCompile(`(?i)^\s*[-*]\s+.*\b(must|shall|should|will|requires?|required|needs to)\b`)

	// requirementIDPrefix matches lines introduced by a requirement
	// identifier, bulleted or bare
	requirementIDPrefix = regexp.MustCompile(`^\s*(?:[-*]\s+)?REQ-\d+`)

	// priorityTag matches lines introduced by a priority marker
	priorityTag = regexp.MustCompile(`(?i)^\s*\[(?:P\d|HIGH|MEDIUM|LOW)\]`)

	// scenarioIntro matches lines that open a scenario or example
	// block, optionally behind a heading marker
	scenarioIntro = regexp.MustCompile(`(?i)^\s*(?:#{1,4}\s*)?(?:scenario|example)\b`)

	// RequirementID matches requirement identifier tokens anywhere in text
	RequirementID = regexp.MustCompile(`\bREQ-\d+\b`)
)

// IsRequirementLine reports whether a line counts as a requirement:
// a bullet with an obligation keyword, a requirement-identifier prefix,
// or a leading priority tag.
func IsRequirementLine(line string) bool {
	return requirementBullet.MatchString(line) ||
		requirementIDPrefix.MatchString(line) ||
		priorityTag.MatchString(line)
}

// IsScenarioLine reports whether a line opens a scenario/example block.
// Blocks extend to the next blank line; callers handle that themselves.
func IsScenarioLine(line string) bool {
	return scenarioIntro.MatchString(line)
}

// IsSectionHeading reports whether a line is a second-level heading and
// returns its title when it is
func IsSectionHeading(line string) (string, bool) {
	m := SectionHeading.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}
