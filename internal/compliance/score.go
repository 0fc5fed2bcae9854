package compliance

import "math"

// Per-issue deductions from a perfect score of 100
const (
	ErrorWeight   = 30
	WarningWeight = 10
	InfoWeight    = 2
)

// PublishThreshold is the minimum score for a listing to be compliant or publishable.
const PublishThreshold = 80

// AI and rule-based weights in the combined score
const (
	aiScoreWeight         = 0.4
	complianceScoreWeight = 0.6
)

// Summarize counts issues by type
func Summarize(issues []Issue) Summary {
	var s Summary
	for _, issue := range issues {
		switch issue.Type {
		case IssueTypeError:
			s.Errors++
		case IssueTypeWarning:
			s.Warnings++
		case IssueTypeInfo:
			s.Infos++
		}
	}
	return s
}

// Score deducts fixed weights per issue type from 100, floored at 0.
func Score(s Summary) int {
	deductions := s.Errors*ErrorWeight + s.Warnings*WarningWeight + s.Infos*InfoWeight
	return max(0, 100-deductions)
}

// NewResult scores an issue list. A result is compliant only with zero errors
// and a score at or above PublishThreshold.
func NewResult(issues []Issue) Result {
	if issues == nil {
		issues = []Issue{}
	}
	summary := Summarize(issues)
	score := Score(summary)
	return Result{
		IsCompliant: summary.Errors == 0 && score >= PublishThreshold,
		Issues:      issues,
		Score:       score,
		Summary:     summary,
	}
}

// IsValid reports whether the AI validator found no unsupported claims and
// scored the draft at or above PublishThreshold.
func (r AIResult) IsValid() bool {
	return len(r.Unsupported) == 0 && r.ComplianceScore >= PublishThreshold
}

// Combine blends the AI verdict and the rule-based result into the publish gate.
func Combine(ai AIResult, result Result) CombinedValidation {
	aiValid := ai.IsValid()
	return CombinedValidation{
		AI:         ai,
		Compliance: result,
		Overall: Overall{
			IsValid:       aiValid && result.IsCompliant,
			CanPublish:    aiValid && result.Score >= PublishThreshold,
			CombinedScore: CombinedScore(ai.ComplianceScore, result.Score),
		},
	}
}

// CombinedScore is round(ai*0.4 + compliance*0.6), rounding halves up.
func CombinedScore(aiScore float64, complianceScore int) int {
	blended := aiScore*aiScoreWeight + float64(complianceScore)*complianceScoreWeight
	return int(math.Floor(blended + 0.5))
}
