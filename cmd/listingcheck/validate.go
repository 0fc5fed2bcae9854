package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/garyjia/listing-compliance/internal/ai"
	"github.com/garyjia/listing-compliance/internal/application/port"
	"github.com/garyjia/listing-compliance/internal/application/service"
	"github.com/garyjia/listing-compliance/internal/compliance"
	"github.com/garyjia/listing-compliance/internal/domain/entity"
	"github.com/garyjia/listing-compliance/internal/infrastructure/external/openai"
)

// errNotPublishable is returned by validate --strict after the report is printed
var errNotPublishable = errors.New("listing cannot be published")

// ValidateOutput is the machine-readable result of the validate command
type ValidateOutput struct {
	Listing    *entity.Listing               `json:"listing"`
	Validation compliance.CombinedValidation `json:"validation"`
}

func newValidateCmd(opts *options) *cobra.Command {
	var (
		useAI       bool
		model       string
		promptsPath string
		strict      bool
	)

	cmd := &cobra.Command{
		Use:   "validate <listing.json|listing.yaml>",
		Short: "Validate a listing file against its facts and the compliance rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := opts.logger()
			if err != nil {
				return err
			}

			input, err := readListingFile(args[0])
			if err != nil {
				return err
			}
			listing, err := service.NormalizeListing(input)
			if err != nil {
				return err
			}

			var validator port.AIValidator = ai.NewBasicValidator()
			if useAI {
				prompts := openai.DefaultPrompts()
				if promptsPath != "" {
					if prompts, err = openai.LoadPrompts(promptsPath); err != nil {
						return err
					}
				}
				validator = openai.NewValidator(os.Getenv("OPENAI_API_KEY"), model, prompts, logger)
			}

			aiResult, err := validator.ValidateDraft(cmd.Context(), listing.Facts(), listing.DraftCopy)
			if err != nil {
				return fmt.Errorf("validate draft: %w", err)
			}
			combined := compliance.Combine(*aiResult, compliance.ValidateCompliance(listing.ComplianceInput()))

			out := ValidateOutput{Listing: listing, Validation: combined}
			if err := render(cmd.OutOrStdout(), opts.output, out, func(w io.Writer) {
				writeValidation(w, listing.Address, combined)
			}); err != nil {
				return err
			}

			if strict && !combined.Overall.CanPublish {
				return errNotPublishable
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&useAI, "ai", false, "Validate the draft with OpenAI (reads OPENAI_API_KEY)")
	cmd.Flags().StringVar(&model, "model", "", "OpenAI model (default gpt-4o-mini)")
	cmd.Flags().StringVar(&promptsPath, "prompts", "", "YAML prompt override")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when the listing cannot be published")

	return cmd
}

// readListingFile decodes a listing from YAML or JSON by file extension
func readListingFile(path string) (service.CreateListingInput, error) {
	var input service.CreateListingInput

	data, err := os.ReadFile(path)
	if err != nil {
		return input, fmt.Errorf("failed to read listing: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &input)
	default:
		err = json.Unmarshal(data, &input)
	}
	if err != nil {
		return input, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return input, nil
}
