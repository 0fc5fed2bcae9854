package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/garyjia/listing-compliance/internal/compliance"
)

// ErrNoJSON is returned when a model response contains no JSON object
var ErrNoJSON = errors.New("no JSON object in response")

// ParseResult decodes a model response into an AIResult. The object may be
// bare, fenced in a markdown block, or embedded in prose. Missing lists become
// empty and the score is clamped to 0..100.
func ParseResult(content string) (*compliance.AIResult, error) {
	var result compliance.AIResult
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &result); err != nil {
		jsonStr := ExtractJSON(content)
		if jsonStr == "" {
			return nil, ErrNoJSON
		}
		if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}
	}

	if result.Unsupported == nil {
		result.Unsupported = []string{}
	}
	if result.RiskyPhrases == nil {
		result.RiskyPhrases = []string{}
	}
	if result.Suggestions == nil {
		result.Suggestions = []string{}
	}
	result.ComplianceScore = min(max(result.ComplianceScore, 0), 100)

	return &result, nil
}

// ExtractJSON returns the first balanced JSON object in content, or ""
func ExtractJSON(content string) string {
	start := findJSONStart(content)
	if start < 0 {
		return ""
	}
	end := findJSONEnd(content, start)
	if end < 0 {
		return ""
	}
	return content[start:end]
}

func findJSONStart(content string) int {
	if fence := strings.Index(content, "```json"); fence >= 0 {
		if i := strings.IndexByte(content[fence:], '{'); i >= 0 {
			return fence + i
		}
	}
	return strings.IndexByte(content, '{')
}

// findJSONEnd returns the index just past the brace closing the object at start
func findJSONEnd(content string, start int) int {
	if start < 0 || start >= len(content) || content[start] != '{' {
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(content); i++ {
		c := content[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}
