package compliance

import "strings"

const genericAlternative = "Consider more factual, descriptive language"

var alternatives = map[string][]string{
	"amazing":                {"impressive", "notable", "well-appointed", "attractive"},
	"stunning":               {"attractive", "well-presented", "appealing", "stylish"},
	"perfect":                {"suitable", "well-suited", "ideal for", "appropriate"},
	"incredible":             {"remarkable", "notable", "significant", "impressive"},
	"best":                   {"excellent", "high-quality", "superior", "premium"},
	"guaranteed return":      {"historical returns", "potential returns", "indicative returns"},
	"must sell":              {"vendor motivated", "genuine sale", "committed vendor"},
	"won't last long":        {"expected to attract interest", "likely to be popular"},
	"investment opportunity": {"rental potential", "investment consideration"},
	"tightly held":           {"rarely available", "seldom offered"},
	"most sought after":      {"popular", "desirable", "well-regarded"},
}

var complianceSuggestions = []string{
	"Use factual, descriptive language rather than promotional superlatives",
	"Support all claims with evidence (e.g., comparable sales, official reports)",
	"Verify all property information before publication",
	"Include required disclosures for property type and known issues",
	"Ensure pricing expectations are realistic and well-supported",
	"Have supervisor review all marketing materials before publication",
	"Keep records of all information sources and vendor communications",
	"Update or remove marketing materials immediately when listing status changes",
}

// SuggestAlternatives returns compliant rewordings for a flagged phrase.
// Lookup is exact after lowercasing and trimming; unknown phrases get one
// generic hint.
func SuggestAlternatives(phrase string) []string {
	if alts, ok := alternatives[strings.ToLower(strings.TrimSpace(phrase))]; ok {
		return append([]string(nil), alts...)
	}
	return []string{genericAlternative}
}

// ComplianceSuggestions returns the fixed best-practice checklist.
func ComplianceSuggestions() []string {
	return append([]string(nil), complianceSuggestions...)
}
