package compliance

import (
	"fmt"
	"strings"
)

const (
	minCVRVRatio = 0.5
	maxCVRVRatio = 1.5

	// More promotional words than this earns a general warning.
	promotionalLimit = 3
)

const (
	suggestionRemoveSuperlative = "Remove superlative language or provide evidence to support the claim"
	suggestionProvideEvidence   = "Ensure you have evidence to support this claim (e.g., comparable sales, official reports)"
	suggestionAddDisclosure     = "Consider adding appropriate disclosure statements"
	suggestionRealisticPricing  = "Ensure pricing expectations are realistic and well-supported"
	suggestionFactualLanguage   = "Consider using more factual, descriptive language to avoid potential misleading representation claims"
	suggestionGenerateCopy      = "Generate property description before publishing"
)

// ValidateCompliance checks every textual field of a listing plus its CV/RV
// figures and returns the scored result.
//
// Issues are emitted in a fixed order: prohibited phrases, warning phrases,
// disclosure triggers, pricing, promotional density, missing content. Prohibited
// and warning rules yield one issue per occurrence; disclosure triggers yield at
// most one issue each.
func ValidateCompliance(listing Listing) Result {
	corpus := listing.corpus()

	var issues []Issue
	issues = appendMatches(issues, corpus, prohibitedRules, prohibitedIssue(suggestionRemoveSuperlative))
	issues = appendMatches(issues, corpus, warningRules, warningIssue(suggestionProvideEvidence))

	for _, r := range disclosureRules {
		if r.re.MatchString(corpus) {
			issues = append(issues, Issue{
				Type:       IssueTypeWarning,
				Category:   CategoryDisclosure,
				Message:    r.Message,
				Suggestion: suggestionAddDisclosure,
				Severity:   SeverityMedium,
			})
		}
	}

	if ratio, ok := listing.cvRVRatio(); ok && (ratio > maxCVRVRatio || ratio < minCVRVRatio) {
		issues = append(issues, Issue{
			Type:       IssueTypeWarning,
			Category:   CategoryPricing,
			Message:    "Significant difference between CV and RV values",
			Suggestion: suggestionRealisticPricing,
			Severity:   SeverityMedium,
		})
	}

	if len(promotionalWords.FindAllString(corpus, -1)) > promotionalLimit {
		issues = append(issues, Issue{
			Type:       IssueTypeWarning,
			Category:   CategoryGeneral,
			Message:    "High use of promotional language detected",
			Suggestion: suggestionFactualLanguage,
			Severity:   SeverityLow,
		})
	}

	if listing.DraftCopy == "" && listing.Variants == nil {
		issues = append(issues, Issue{
			Type:       IssueTypeError,
			Category:   CategoryGeneral,
			Message:    "No property description available",
			Suggestion: suggestionGenerateCopy,
			Severity:   SeverityHigh,
		})
	}

	return NewResult(issues)
}

// corpus joins every textual source with single spaces. Absent fields
// contribute empty segments.
func (l Listing) corpus() string {
	parts := []string{l.DraftCopy}
	if l.Variants != nil {
		parts = append(parts, l.Variants.Standard, l.Variants.Long)
		parts = append(parts, l.Variants.Headlines...)
		parts = append(parts, l.Variants.Bullets...)
	} else {
		parts = append(parts, "", "")
	}
	parts = append(parts, l.Features...)
	parts = append(parts, l.Notes)
	return strings.Join(parts, " ")
}

func (l Listing) cvRVRatio() (float64, bool) {
	if l.CV == nil || l.RV == nil || *l.CV == 0 || *l.RV == 0 {
		return 0, false
	}
	return *l.CV / *l.RV, true
}

type issueFactory func(match string) Issue

func prohibitedIssue(suggestion string) issueFactory {
	return func(match string) Issue {
		return Issue{
			Type:       IssueTypeError,
			Category:   CategoryUnsubstantiated,
			Message:    fmt.Sprintf("Potentially unsubstantiated claim: \"%s\"", match),
			Suggestion: suggestion,
			Severity:   SeverityHigh,
		}
	}
}

func warningIssue(suggestion string) issueFactory {
	return func(match string) Issue {
		return Issue{
			Type:       IssueTypeWarning,
			Category:   CategoryUnsubstantiated,
			Message:    fmt.Sprintf("Claim requires substantiation: \"%s\"", match),
			Suggestion: suggestion,
			Severity:   SeverityMedium,
		}
	}
}

// appendMatches emits one issue per literal match, rule by rule, left to right.
func appendMatches(issues []Issue, text string, rules []rule, newIssue issueFactory) []Issue {
	for _, r := range rules {
		for _, m := range r.re.FindAllString(text, -1) {
			issues = append(issues, newIssue(m))
		}
	}
	return issues
}
