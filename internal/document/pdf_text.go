// Package document extracts marketing text from brochures and flyers.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

// DefaultMaxPages bounds extraction for large brochures
const DefaultMaxPages = 20

// Page is the text of one PDF page, numbered from 1
type Page struct {
	Number int    `json:"number" yaml:"number"`
	Text   string `json:"text" yaml:"text"`
}

// PDFTextExtractor reads page text from PDF files using MuPDF
type PDFTextExtractor struct {
	maxPages int
	logger   *zap.Logger
}

// NewPDFTextExtractor creates an extractor. maxPages <= 0 uses DefaultMaxPages.
func NewPDFTextExtractor(maxPages int, logger *zap.Logger) *PDFTextExtractor {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	return &PDFTextExtractor{
		maxPages: maxPages,
		logger:   logger,
	}
}

// ExtractPages returns the text of each page with content
func (e *PDFTextExtractor) ExtractPages(pdfPath string) ([]Page, error) {
	if strings.ToLower(filepath.Ext(pdfPath)) != ".pdf" {
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(pdfPath))
	}
	if _, err := os.Stat(pdfPath); err != nil {
		return nil, fmt.Errorf("PDF file not found: %w", err)
	}

	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	total := doc.NumPage()
	limit := min(total, e.maxPages)
	if total > limit {
		e.logger.Warn("PDF truncated", zap.String("path", pdfPath), zap.Int("pages", total), zap.Int("limit", limit))
	}

	pages := make([]Page, 0, limit)
	for i := 0; i < limit; i++ {
		text, err := doc.Text(i)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from page %d: %w", i+1, err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		pages = append(pages, Page{Number: i + 1, Text: text})
	}

	e.logger.Info("Extracted PDF text", zap.String("path", pdfPath), zap.Int("pages", len(pages)))
	return pages, nil
}

// ExtractText returns the text of all pages joined by blank lines. Line breaks
// inside a page are folded to spaces so phrases split across lines still match.
func (e *PDFTextExtractor) ExtractText(pdfPath string) (string, error) {
	pages, err := e.ExtractPages(pdfPath)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		parts = append(parts, strings.Join(strings.Fields(p.Text), " "))
	}
	return strings.Join(parts, "\n\n"), nil
}
