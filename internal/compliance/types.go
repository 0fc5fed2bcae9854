// Package compliance checks real-estate listing copy against the NZ Fair Trading Act
// advertising rules. It is a heuristic assistant: pattern matching over text and a few
// numeric facts, producing issues and a score that gates publication.
//
// Everything in this package is pure. Functions never log, block or fail, and the
// rule catalogs are compiled once at package load and never mutated.
package compliance

// IssueType is the severity tier that drives the score deduction
type IssueType string

const (
	IssueTypeError   IssueType = "error"
	IssueTypeWarning IssueType = "warning"
	IssueTypeInfo    IssueType = "info"
)

// Category groups issues by the kind of advertising problem
type Category string

const (
	CategoryFalseMisleading Category = "false_misleading"
	CategoryUnsubstantiated Category = "unsubstantiated"
	CategoryPricing         Category = "pricing"
	CategoryDisclosure      Category = "disclosure"
	CategoryGeneral         Category = "general"
)

// Severity is used by UIs for prioritisation. It is independent of IssueType.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Issue is a single compliance finding
type Issue struct {
	Type       IssueType `json:"type"`
	Category   Category  `json:"category"`
	Message    string    `json:"message"`
	Suggestion string    `json:"suggestion,omitempty"`
	Field      string    `json:"field,omitempty"` // reserved for field-level reporting
	Severity   Severity  `json:"severity"`
}

// Summary counts issues by type
type Summary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
}

// Result is the outcome of validating one listing
type Result struct {
	IsCompliant bool    `json:"isCompliant"`
	Issues      []Issue `json:"issues"`
	Score       int     `json:"score"`
	Summary     Summary `json:"summary"`
}

// Variants holds the generated copy variants of a listing.
type Variants struct {
	Standard  string   `json:"standard,omitempty" yaml:"standard,omitempty"`
	Long      string   `json:"long,omitempty" yaml:"long,omitempty"`
	Headlines []string `json:"headlines,omitempty" yaml:"headlines,omitempty"`
	Bullets   []string `json:"bullets,omitempty" yaml:"bullets,omitempty"`
}

// Listing is the snapshot of listing state the evaluator reads.
// A nil or zero CV/RV is treated as absent.
type Listing struct {
	Address   string    `json:"address" yaml:"address"`
	DraftCopy string    `json:"draftCopy,omitempty" yaml:"draftCopy,omitempty"`
	Variants  *Variants `json:"variantsJson,omitempty" yaml:"variantsJson,omitempty"`
	Features  []string  `json:"featuresJson,omitempty" yaml:"featuresJson,omitempty"`
	Notes     string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	CV        *float64  `json:"cv,omitempty" yaml:"cv,omitempty"`
	RV        *float64  `json:"rv,omitempty" yaml:"rv,omitempty"`
}

// AIResult is the verdict of the external AI validator on a draft
type AIResult struct {
	Unsupported     []string `json:"unsupported"`
	RiskyPhrases    []string `json:"risky_phrases"`
	Suggestions     []string `json:"suggestions"`
	ComplianceScore float64  `json:"compliance_score"`
}

// Overall is the publish gate derived from both validators
type Overall struct {
	IsValid       bool `json:"isValid"`
	CanPublish    bool `json:"canPublish"`
	CombinedScore int  `json:"combinedScore"`
}

// CombinedValidation pairs the AI verdict with the rule-based result
type CombinedValidation struct {
	AI         AIResult `json:"ai"`
	Compliance Result   `json:"compliance"`
	Overall    Overall  `json:"overall"`
}
