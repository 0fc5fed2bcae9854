package openai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"text/template"

	"github.com/garyjia/listing-compliance/internal/domain/entity"
	"gopkg.in/yaml.v3"
)

// PromptConfig holds the draft validation prompt and model parameters
type PromptConfig struct {
	DraftValidation struct {
		Temperature  float32 `yaml:"temperature"`
		MaxTokens    int     `yaml:"max_tokens"`
		System       string  `yaml:"system"`
		UserTemplate string  `yaml:"user_template"`
	} `yaml:"draft_validation"`
}

const defaultSystemPrompt = `You are a New Zealand real estate compliance validator.
Analyze the draft copy against the provided facts and identify:
1. Unsupported claims (anything not backed by facts)
2. Risky phrases that could violate Fair Trading Act
3. Suggestions for improvement

Return valid JSON with keys: unsupported[], risky_phrases[], suggestions[], compliance_score (0-100).`

const defaultUserTemplate = `Validate this draft copy against the facts.

FACTS:
{{.Facts}}

DRAFT:
{{.Draft}}

Return JSON only.`

// DefaultPrompts returns the built-in prompt configuration
func DefaultPrompts() *PromptConfig {
	var p PromptConfig
	p.DraftValidation.Temperature = 0.1
	p.DraftValidation.MaxTokens = 800
	p.DraftValidation.System = defaultSystemPrompt
	p.DraftValidation.UserTemplate = defaultUserTemplate
	return &p
}

// LoadPrompts loads prompt configuration from a YAML file. Fields missing
// from the file keep their defaults.
func LoadPrompts(promptsPath string) (*PromptConfig, error) {
	data, err := os.ReadFile(promptsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts file: %w", err)
	}

	prompts := DefaultPrompts()
	if err := yaml.Unmarshal(data, prompts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal prompts: %w", err)
	}

	return prompts, nil
}

func buildUserPrompt(tmpl string, facts entity.Facts, draft string) (string, error) {
	factsJSON, err := json.MarshalIndent(facts, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode facts: %w", err)
	}

	return renderTemplate(tmpl, struct {
		Facts string
		Draft string
	}{
		Facts: string(factsJSON),
		Draft: draft,
	})
}

func renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("prompt").Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}
