package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_Deductions(t *testing.T) {
	tests := []struct {
		name    string
		summary Summary
		want    int
	}{
		{name: "no issues", summary: Summary{}, want: 100},
		{name: "one error", summary: Summary{Errors: 1}, want: 70},
		{name: "two warnings", summary: Summary{Warnings: 2}, want: 80},
		{name: "infos only", summary: Summary{Infos: 3}, want: 94},
		{name: "mixed", summary: Summary{Errors: 1, Warnings: 2, Infos: 1}, want: 48},
		{name: "floored", summary: Summary{Errors: 4}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.summary))
		})
	}
}

func TestNewResult_Compliance(t *testing.T) {
	info := Issue{Type: IssueTypeInfo, Category: CategoryGeneral, Message: "note", Severity: SeverityLow}
	warning := Issue{Type: IssueTypeWarning, Category: CategoryPricing, Message: "pricing", Severity: SeverityMedium}

	result := NewResult([]Issue{warning, warning, info})
	assert.Equal(t, Summary{Warnings: 2, Infos: 1}, result.Summary)
	assert.Equal(t, 78, result.Score)
	assert.False(t, result.IsCompliant, "score below threshold")

	result = NewResult([]Issue{warning, warning})
	assert.Equal(t, 80, result.Score)
	assert.True(t, result.IsCompliant, "threshold is inclusive")

	result = NewResult(nil)
	assert.NotNil(t, result.Issues)
	assert.True(t, result.IsCompliant)
}

func TestCombine(t *testing.T) {
	clean := NewResult(nil)
	oneError := NewResult([]Issue{{Type: IssueTypeError, Category: CategoryGeneral, Message: "x", Severity: SeverityHigh}})
	twoWarnings := NewResult([]Issue{
		{Type: IssueTypeWarning, Category: CategoryGeneral, Message: "a", Severity: SeverityLow},
		{Type: IssueTypeWarning, Category: CategoryGeneral, Message: "b", Severity: SeverityLow},
	})

	tests := []struct {
		name       string
		ai         AIResult
		compliance Result
		want       Overall
	}{
		{
			name:       "both clean",
			ai:         AIResult{ComplianceScore: 90},
			compliance: clean,
			want:       Overall{IsValid: true, CanPublish: true, CombinedScore: 96},
		},
		{
			name:       "unsupported claims block publishing",
			ai:         AIResult{Unsupported: []string{`"heat pump" not listed in property features`}, ComplianceScore: 85},
			compliance: clean,
			want:       Overall{IsValid: false, CanPublish: false, CombinedScore: 94},
		},
		{
			name:       "low AI score",
			ai:         AIResult{ComplianceScore: 70},
			compliance: clean,
			want:       Overall{IsValid: false, CanPublish: false, CombinedScore: 88},
		},
		{
			name:       "compliance error",
			ai:         AIResult{ComplianceScore: 85},
			compliance: oneError,
			want:       Overall{IsValid: false, CanPublish: false, CombinedScore: 76},
		},
		{
			name:       "score at threshold",
			ai:         AIResult{ComplianceScore: 85},
			compliance: twoWarnings,
			want:       Overall{IsValid: true, CanPublish: true, CombinedScore: 82},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			combined := Combine(tt.ai, tt.compliance)

			assert.Equal(t, tt.want, combined.Overall)
			assert.Equal(t, tt.ai, combined.AI)
			assert.Equal(t, tt.compliance, combined.Compliance)
		})
	}
}

func TestCombinedScore_Rounding(t *testing.T) {
	assert.Equal(t, 86, CombinedScore(81, 90)) // 86.4
	assert.Equal(t, 87, CombinedScore(83, 90)) // 87.2
	assert.Equal(t, 0, CombinedScore(0, 0))
	assert.Equal(t, 100, CombinedScore(100, 100))
	assert.Equal(t, 63, CombinedScore(82, 50)) // 62.8
}
