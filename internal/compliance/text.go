package compliance

// CheckTextCompliance applies only the prohibited and warning catalogs to an
// arbitrary piece of text. Disclosure, pricing, density and missing-content
// checks need a whole listing and are skipped.
func CheckTextCompliance(text string) []Issue {
	issues := []Issue{}
	issues = appendMatches(issues, text, prohibitedRules, prohibitedIssue("Remove superlative language or provide evidence"))
	issues = appendMatches(issues, text, warningRules, warningIssue("Ensure you have evidence to support this claim"))
	return issues
}
