package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/garyjia/listing-compliance/internal/compliance"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// render writes v as JSON or YAML, or calls text for the human format.
// YAML keys follow the JSON field names.
func render(w io.Writer, format string, v interface{}, text func(io.Writer)) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var generic interface{}
		if err := yaml.Unmarshal(raw, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	default:
		text(w)
		return nil
	}
}

func writeIssues(w io.Writer, issues []compliance.Issue) {
	if len(issues) == 0 {
		fmt.Fprintln(w, "No issues found")
		return
	}
	for _, issue := range issues {
		fmt.Fprintf(w, "[%s] %s: %s\n", issue.Type, issue.Category, issue.Message)
		if issue.Suggestion != "" {
			fmt.Fprintf(w, "    suggestion: %s\n", issue.Suggestion)
		}
	}
}

func writeList(w io.Writer, items []string) {
	for _, item := range items {
		fmt.Fprintf(w, "- %s\n", item)
	}
}

func writeValidation(w io.Writer, address string, v compliance.CombinedValidation) {
	fmt.Fprintf(w, "Listing: %s\n", address)
	fmt.Fprintf(w, "Compliance score: %d (errors %d, warnings %d, infos %d)\n",
		v.Compliance.Score, v.Compliance.Summary.Errors, v.Compliance.Summary.Warnings, v.Compliance.Summary.Infos)
	fmt.Fprintf(w, "AI score: %.0f\n", v.AI.ComplianceScore)
	fmt.Fprintf(w, "Combined score: %d\n", v.Overall.CombinedScore)
	fmt.Fprintf(w, "Can publish: %s\n", yesNo(v.Overall.CanPublish))

	fmt.Fprintln(w)
	writeIssues(w, v.Compliance.Issues)

	if len(v.AI.Unsupported) > 0 {
		fmt.Fprintln(w, "\nUnsupported claims:")
		writeList(w, v.AI.Unsupported)
	}
	if len(v.AI.RiskyPhrases) > 0 {
		fmt.Fprintln(w, "\nRisky phrases:")
		writeList(w, v.AI.RiskyPhrases)
	}
	if len(v.AI.Suggestions) > 0 {
		fmt.Fprintln(w, "\nSuggestions:")
		writeList(w, v.AI.Suggestions)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
