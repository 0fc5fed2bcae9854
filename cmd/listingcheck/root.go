package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/garyjia/listing-compliance/pkg/utils"
)

// options holds the persistent flags shared by every subcommand
type options struct {
	output  string
	verbose bool
}

func (o *options) logger() (*zap.Logger, error) {
	if !o.verbose {
		return zap.NewNop(), nil
	}
	return utils.NewLogger(utils.LoggerConfig{Level: "debug", OutputPath: "stderr", Format: "console"})
}

// NewRootCmd creates a fresh command tree
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "listingcheck",
		Short:         "Check real estate listing copy for Fair Trading Act compliance",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.output {
			case outputText, outputJSON, outputYAML:
				return nil
			default:
				return fmt.Errorf("unknown output format %q (want text, json or yaml)", opts.output)
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", outputText, "Output format: text, json or yaml")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging to stderr")

	cmd.AddCommand(
		newValidateCmd(opts),
		newTextCmd(opts),
		newCheckPDFCmd(opts),
		newAlternativesCmd(opts),
		newSuggestionsCmd(opts),
		newRulesCmd(opts),
	)

	return cmd
}
