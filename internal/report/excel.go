// Package report exports validation results as Excel workbooks.
package report

import (
	"fmt"
	"io"

	"github.com/garyjia/listing-compliance/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

// Sheet names
const (
	SummarySheet  = "Summary"
	IssuesSheet   = "Issues"
	FindingsSheet = "AI Findings"
)

var (
	issueHeader   = []interface{}{"Type", "Category", "Severity", "Message", "Suggestion"}
	findingHeader = []interface{}{"Kind", "Detail"}
)

// WriteComplianceReport writes a workbook for one validation of a listing
func WriteComplianceReport(w io.Writer, listing *entity.Listing, record *entity.ValidationRecord) error {
	if listing == nil || record == nil || record.Result == nil {
		return fmt.Errorf("listing and validation result are required")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{IssuesSheet, FindingsSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	if err := writeSummary(f, bold, listing, record); err != nil {
		return err
	}
	if err := writeIssues(f, bold, record); err != nil {
		return err
	}
	if err := writeFindings(f, bold, record); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, bold int, listing *entity.Listing, record *entity.ValidationRecord) error {
	result := record.Result
	rows := [][]interface{}{
		{"Address", listing.Address},
		{"Status", listing.Status},
		{"Validated at", record.CreatedAt.Format("2006-01-02 15:04:05")},
		{"Compliance score", result.Compliance.Score},
		{"Compliant", yesNo(result.Compliance.IsCompliant)},
		{"Errors", result.Compliance.Summary.Errors},
		{"Warnings", result.Compliance.Summary.Warnings},
		{"Infos", result.Compliance.Summary.Infos},
		{"AI score", result.AI.ComplianceScore},
		{"Combined score", result.Overall.CombinedScore},
		{"Valid", yesNo(result.Overall.IsValid)},
		{"Can publish", yesNo(result.Overall.CanPublish)},
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	last, _ := excelize.CoordinatesToCellName(1, len(rows))
	if err := f.SetCellStyle(SummarySheet, "A1", last, bold); err != nil {
		return fmt.Errorf("failed to style summary: %w", err)
	}
	return f.SetColWidth(SummarySheet, "A", "B", 24)
}

func writeIssues(f *excelize.File, bold int, record *entity.ValidationRecord) error {
	if err := writeHeader(f, IssuesSheet, issueHeader, bold); err != nil {
		return err
	}

	for i, issue := range record.Result.Compliance.Issues {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{string(issue.Type), string(issue.Category), string(issue.Severity), issue.Message, issue.Suggestion}
		if err := f.SetSheetRow(IssuesSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write issue: %w", err)
		}
	}
	return f.SetColWidth(IssuesSheet, "D", "E", 60)
}

func writeFindings(f *excelize.File, bold int, record *entity.ValidationRecord) error {
	if err := writeHeader(f, FindingsSheet, findingHeader, bold); err != nil {
		return err
	}

	ai := record.Result.AI
	var rows [][]interface{}
	for _, s := range ai.Unsupported {
		rows = append(rows, []interface{}{"Unsupported", s})
	}
	for _, s := range ai.RiskyPhrases {
		rows = append(rows, []interface{}{"Risky phrase", s})
	}
	for _, s := range ai.Suggestions {
		rows = append(rows, []interface{}{"Suggestion", s})
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(FindingsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write finding: %w", err)
		}
	}
	return f.SetColWidth(FindingsSheet, "B", "B", 60)
}

func writeHeader(f *excelize.File, sheet string, header []interface{}, bold int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	return f.SetCellStyle(sheet, "A1", last, bold)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
