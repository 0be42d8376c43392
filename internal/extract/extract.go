// Package extract turns PDF and DOCX files into cleaned plain text,
// preserving paragraph structure so the paragraph chunking strategy has
// boundaries to work with.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var ErrUnsupportedFile = errors.New("unsupported file format")

// ValidatePath rejects files this extractor cannot handle. Called before any
// pipeline work starts so an unsupported file fails the run up front.
func ValidatePath(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".docx":
		return nil
	}
	return fmt.Errorf("%w: %q (expected .pdf or .docx)", ErrUnsupportedFile, filepath.Ext(path))
}

type Extractor struct{}

func New() *Extractor { return &Extractor{} }

// Extract reads the file at path and returns its cleaned text.
func (e *Extractor) Extract(path string) (string, error) {
	var (
		raw string
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		raw, err = extractPDF(path)
	case ".docx":
		raw, err = extractDOCX(path)
	default:
		return "", fmt.Errorf("%w: %q (expected .pdf or .docx)", ErrUnsupportedFile, filepath.Ext(path))
	}
	if err != nil {
		return "", fmt.Errorf("failed to extract text from %s: %w", path, err)
	}
	return cleanText(raw), nil
}

var (
	spaceRuns   = regexp.MustCompile(`[ \t]+`)
	newlineRuns = regexp.MustCompile(`\n{3,}`)
)

// cleanText collapses runs of spaces and tabs and caps newline runs at two,
// keeping paragraph breaks intact.
func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = spaceRuns.ReplaceAllString(s, " ")
	s = newlineRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
