// Package ai holds the model-independent parts of draft validation: the
// offline heuristic validator and parsing of model responses.
package ai

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/garyjia/listing-compliance/internal/compliance"
	"github.com/garyjia/listing-compliance/internal/domain/entity"
)

// Heuristic deductions
const (
	UnsupportedPenalty = 15
	RiskyPenalty       = 10
)

// subjectiveClaims are reported as risky phrases; the remaining claims are
// checkable features that must appear in the fact sheet.
var subjectiveClaims = map[string]bool{
	"stunning":  true,
	"beautiful": true,
	"perfect":   true,
	"ideal":     true,
	"amazing":   true,
}

var commonClaims = []string{
	"stunning", "beautiful", "perfect", "ideal", "amazing",
	"fantastic", "excellent", "outstanding", "magnificent",
	"double glazing", "heat pump", "alarm", "dishwasher",
}

// BasicValidator checks a draft against the facts without a model. It is the
// fallback when no provider is configured or the provider fails.
type BasicValidator struct{}

// NewBasicValidator creates a new heuristic validator
func NewBasicValidator() *BasicValidator {
	return &BasicValidator{}
}

// ValidateDraft implements port.AIValidator
func (v *BasicValidator) ValidateDraft(_ context.Context, facts entity.Facts, draft string) (*compliance.AIResult, error) {
	return Validate(facts, draft), nil
}

// Validate runs the heuristic checks
func Validate(facts entity.Facts, draft string) *compliance.AIResult {
	result := &compliance.AIResult{
		Unsupported:  []string{},
		RiskyPhrases: []string{},
		Suggestions:  []string{},
	}

	lowerDraft := strings.ToLower(draft)
	for _, claim := range commonClaims {
		if !strings.Contains(lowerDraft, claim) || featureMentions(facts.Features, claim) {
			continue
		}
		if subjectiveClaims[claim] {
			result.RiskyPhrases = append(result.RiskyPhrases, fmt.Sprintf("Subjective claim: \"%s\"", claim))
		} else {
			result.Unsupported = append(result.Unsupported, fmt.Sprintf("\"%s\" not listed in property features", claim))
		}
	}

	// a zero count is unknown (sections, commercial) and has nothing to match
	if facts.Bedrooms > 0 && !strings.Contains(draft, strconv.Itoa(facts.Bedrooms)) {
		result.Suggestions = append(result.Suggestions, "Ensure bedroom count matches the facts")
	}
	if facts.Bathrooms > 0 && !strings.Contains(draft, strconv.Itoa(facts.Bathrooms)) {
		result.Suggestions = append(result.Suggestions, "Ensure bathroom count matches the facts")
	}

	score := 100 - len(result.Unsupported)*UnsupportedPenalty - len(result.RiskyPhrases)*RiskyPenalty
	result.ComplianceScore = float64(max(score, 0))
	return result
}

func featureMentions(features []string, claim string) bool {
	for _, f := range features {
		if strings.Contains(strings.ToLower(f), claim) {
			return true
		}
	}
	return false
}
