package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/garyjia/listing-compliance/internal/compliance"
	"github.com/garyjia/listing-compliance/pkg/utils"
)

// AlternativesOutput lists replacement wording for a phrase
type AlternativesOutput struct {
	Phrase       string   `json:"phrase"`
	Alternatives []string `json:"alternatives"`
}

func newTextCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "text [copy...]",
		Short: "Check a fragment of copy; reads stdin when no copy or - is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := strings.Join(args, " ")
			if len(args) == 0 || raw == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				raw = string(data)
			}

			clean, err := utils.CleanCopy(raw)
			if err != nil {
				return err
			}
			return renderResult(cmd.OutOrStdout(), opts.output, compliance.CheckTextCompliance(clean))
		},
	}
}

// renderResult scores ad-hoc issues the way a listing would be scored
func renderResult(w io.Writer, format string, issues []compliance.Issue) error {
	result := compliance.NewResult(issues)
	return render(w, format, result, func(w io.Writer) {
		writeIssues(w, result.Issues)
		fmt.Fprintf(w, "\nScore: %d\n", result.Score)
	})
}

func newAlternativesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "alternatives <phrase>",
		Short: "Suggest compliant wording for a flagged phrase",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			phrase := strings.Join(args, " ")
			out := AlternativesOutput{
				Phrase:       phrase,
				Alternatives: compliance.SuggestAlternatives(utils.NormalizeText(phrase)),
			}
			return render(cmd.OutOrStdout(), opts.output, out, func(w io.Writer) {
				writeList(w, out.Alternatives)
			})
		},
	}
}

func newSuggestionsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "suggestions",
		Short: "Print general compliance guidance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			suggestions := compliance.ComplianceSuggestions()
			return render(cmd.OutOrStdout(), opts.output, suggestions, func(w io.Writer) {
				writeList(w, suggestions)
			})
		},
	}
}

func newRulesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the phrase rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules := compliance.Rules()
			return render(cmd.OutOrStdout(), opts.output, rules, func(w io.Writer) {
				for _, r := range rules {
					fmt.Fprintf(w, "%-24s %-11s %s\n", r.ID, r.Family, r.Pattern)
				}
			})
		},
	}
}
