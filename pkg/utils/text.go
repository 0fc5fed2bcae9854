package utils

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

const blockElements = "p, div, li, br, h1, h2, h3, h4, h5, h6, tr, blockquote"

// typography maps characters from rich-text editors onto the ASCII forms the
// compliance rules are written against. RE2 \s does not match NBSP.
var typography = strings.NewReplacer(
	"\u2018", "'",
	"\u2019", "'",
	"\u201c", `"`,
	"\u201d", `"`,
	"\u00a0", " ",
	"\u2009", " ",
	"\u202f", " ",
)

// LooksLikeHTML reports whether s appears to contain markup
func LooksLikeHTML(s string) bool {
	i := strings.IndexByte(s, '<')
	return i >= 0 && strings.IndexByte(s[i:], '>') > 0
}

// PlainText strips HTML markup from editor output. Block elements are
// separated by a space so words on adjacent lines do not merge. Input without
// markup is returned unchanged.
func PlainText(s string) (string, error) {
	if !LooksLikeHTML(s) {
		return s, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	doc.Find("script, style").Remove()
	doc.Find(blockElements).Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml(" ")
	})

	return strings.Join(strings.Fields(doc.Text()), " "), nil
}

// NormalizeText applies NFC normalization and maps typographic quotes and
// spaces to ASCII.
func NormalizeText(s string) string {
	return typography.Replace(norm.NFC.String(s))
}

// CleanCopy prepares user-supplied copy for storage and checking
func CleanCopy(s string) (string, error) {
	plain, err := PlainText(SanitizeString(s))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(NormalizeText(plain)), nil
}
