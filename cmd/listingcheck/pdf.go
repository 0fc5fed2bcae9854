package main

import (
	"github.com/spf13/cobra"

	"github.com/garyjia/listing-compliance/internal/compliance"
	"github.com/garyjia/listing-compliance/internal/document"
	"github.com/garyjia/listing-compliance/pkg/utils"
)

func newCheckPDFCmd(opts *options) *cobra.Command {
	var maxPages int

	cmd := &cobra.Command{
		Use:   "check-pdf <file.pdf>",
		Short: "Check the text of a PDF flyer or brochure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := opts.logger()
			if err != nil {
				return err
			}

			text, err := document.NewPDFTextExtractor(maxPages, logger).ExtractText(args[0])
			if err != nil {
				return err
			}
			issues := compliance.CheckTextCompliance(utils.NormalizeText(text))
			return renderResult(cmd.OutOrStdout(), opts.output, issues)
		},
	}

	cmd.Flags().IntVar(&maxPages, "max-pages", document.DefaultMaxPages, "Maximum number of pages to read")
	return cmd
}
