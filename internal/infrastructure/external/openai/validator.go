package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/garyjia/listing-compliance/internal/ai"
	"github.com/garyjia/listing-compliance/internal/application/port"
	"github.com/garyjia/listing-compliance/internal/compliance"
	"github.com/garyjia/listing-compliance/internal/domain/entity"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// ErrNotConfigured is returned when no API key is set
var ErrNotConfigured = errors.New("openai: no API key configured")

// Validator implements port.AIValidator using OpenAI chat completions.
// Any provider failure falls back to the heuristic validator.
type Validator struct {
	client   *openai.Client
	model    string
	prompts  *PromptConfig
	fallback port.AIValidator
	logger   *zap.Logger
}

// NewValidator creates a validator for the public OpenAI API. An empty apiKey
// leaves the validator in fallback-only mode.
func NewValidator(apiKey, model string, prompts *PromptConfig, logger *zap.Logger) *Validator {
	var client *openai.Client
	if apiKey != "" {
		client = openai.NewClient(apiKey)
	}
	return newValidator(client, model, prompts, logger)
}

// NewValidatorWithConfig creates a validator with a custom client config
// (base URL, HTTP client)
func NewValidatorWithConfig(cfg openai.ClientConfig, model string, prompts *PromptConfig, logger *zap.Logger) *Validator {
	return newValidator(openai.NewClientWithConfig(cfg), model, prompts, logger)
}

func newValidator(client *openai.Client, model string, prompts *PromptConfig, logger *zap.Logger) *Validator {
	if prompts == nil {
		prompts = DefaultPrompts()
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Validator{
		client:   client,
		model:    model,
		prompts:  prompts,
		fallback: ai.NewBasicValidator(),
		logger:   logger,
	}
}

// ValidateDraft implements port.AIValidator
func (v *Validator) ValidateDraft(ctx context.Context, facts entity.Facts, draft string) (*compliance.AIResult, error) {
	result, err := v.complete(ctx, facts, draft)
	if err == nil {
		v.logger.Info("Draft validation completed",
			zap.String("address", facts.Address),
			zap.Float64("compliance_score", result.ComplianceScore),
			zap.Int("unsupported", len(result.Unsupported)),
			zap.Int("risky_phrases", len(result.RiskyPhrases)))
		return result, nil
	}

	if errors.Is(err, ErrNotConfigured) {
		v.logger.Debug("No AI provider configured, using basic validation")
	} else {
		v.logger.Warn("AI validation failed, using basic validation", zap.Error(err))
	}
	return v.fallback.ValidateDraft(ctx, facts, draft)
}

func (v *Validator) complete(ctx context.Context, facts entity.Facts, draft string) (*compliance.AIResult, error) {
	if v.client == nil {
		return nil, ErrNotConfigured
	}

	cfg := v.prompts.DraftValidation
	userPrompt, err := buildUserPrompt(cfg.UserTemplate, facts, draft)
	if err != nil {
		return nil, err
	}

	resp, err := v.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       v.model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: cfg.System,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI API call failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content
	result, err := ai.ParseResult(content)
	if err != nil {
		v.logger.Error("Failed to parse OpenAI response",
			zap.Error(err),
			zap.String("content", content))
		return nil, err
	}
	return result, nil
}

var _ port.AIValidator = (*Validator)(nil)
