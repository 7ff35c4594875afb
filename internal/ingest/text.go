package ingest

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ExtractTextFromTXT decodes plain-text bytes: UTF-8 when valid, Latin-1
// otherwise.
func ExtractTextFromTXT(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	// Latin-1: every byte maps straight to the code point of the same value.
	var b strings.Builder
	b.Grow(len(data))
	for _, c := range data {
		b.WriteRune(rune(c))
	}
	return b.String()
}

// ExtractTextFromFile dispatches on the filename extension. Unknown formats
// are treated as plain text.
func ExtractTextFromFile(data []byte, filename string) (string, error) {
	name := strings.ToLower(filename)

	switch {
	case strings.HasSuffix(name, ".pdf"):
		return ExtractTextFromPDF(data)
	case strings.HasSuffix(name, ".docx"), strings.HasSuffix(name, ".doc"):
		return ExtractTextFromDOCX(data)
	case strings.HasSuffix(name, ".html"), strings.HasSuffix(name, ".htm"):
		return ExtractTextFromHTML(bytes.NewReader(data))
	case strings.HasSuffix(name, ".txt"), strings.HasSuffix(name, ".md"), strings.HasSuffix(name, ".markdown"):
		return ExtractTextFromTXT(data), nil
	default:
		return ExtractTextFromTXT(data), nil
	}
}

// Preprocess normalizes extracted text before it reaches the LLM: each line
// trimmed, empty lines dropped.
func Preprocess(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// JoinDocuments merges per-file texts under headers naming their source, the
// shape multi-file uploads take before extraction.
func JoinDocuments(texts map[string]string, order []string) string {
	var parts []string
	for _, name := range order {
		text, ok := texts[name]
		if !ok || strings.TrimSpace(text) == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("--- Content from %s ---\n%s", name, text))
	}
	return strings.Join(parts, "\n\n")
}
