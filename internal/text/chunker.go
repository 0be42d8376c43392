package text

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Strategy selects how a document's text is divided into chunks.
type Strategy string

const (
	StrategyFixed     Strategy = "fixed"
	StrategySentence  Strategy = "sentence"
	StrategyParagraph Strategy = "paragraph"
)

var (
	ErrUnknownStrategy = errors.New("unknown chunking strategy")
	ErrInvalidParams   = errors.New("invalid chunking parameters")
)

// Params carries strategy-specific tuning. Only the fixed strategy reads it.
type Params struct {
	WindowSize int
	Overlap    int
}

func DefaultParams() Params {
	return Params{WindowSize: 500, Overlap: 50}
}

// ParseStrategy validates a user-supplied strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyFixed, StrategySentence, StrategyParagraph:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("%w: %q (choose fixed, sentence or paragraph)", ErrUnknownStrategy, s)
}

// Split divides text into an ordered sequence of trimmed, non-empty chunks.
// Empty or whitespace-only input yields no chunks and no error.
func Split(text string, strategy Strategy, p Params) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		// Strategy and params are still validated so a misconfigured run
		// fails loudly even on an empty document.
		switch strategy {
		case StrategyFixed:
			return nil, validateFixedParams(p)
		case StrategySentence, StrategyParagraph:
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, string(strategy))
	}

	switch strategy {
	case StrategyFixed:
		return splitFixed(text, p)
	case StrategySentence:
		return splitSentences(text), nil
	case StrategyParagraph:
		return splitParagraphs(text), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, string(strategy))
}

func validateFixedParams(p Params) error {
	if p.WindowSize <= 0 {
		return fmt.Errorf("%w: window size must be positive, got %d", ErrInvalidParams, p.WindowSize)
	}
	if p.Overlap < 0 {
		return fmt.Errorf("%w: overlap must not be negative, got %d", ErrInvalidParams, p.Overlap)
	}
	if p.Overlap >= p.WindowSize {
		return fmt.Errorf("%w: overlap %d must be smaller than window size %d", ErrInvalidParams, p.Overlap, p.WindowSize)
	}
	return nil
}

// splitFixed produces windows of WindowSize characters advancing by
// WindowSize-Overlap, so consecutive windows share an overlap region.
// The last window may be shorter; it is kept if non-empty after trimming.
func splitFixed(text string, p Params) ([]string, error) {
	if err := validateFixedParams(p); err != nil {
		return nil, err
	}

	runes := []rune(text)
	step := p.WindowSize - p.Overlap

	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + p.WindowSize
		if end > len(runes) {
			end = len(runes)
		}
		if window := strings.TrimSpace(string(runes[start:end])); window != "" {
			chunks = append(chunks, window)
		}
	}
	return chunks, nil
}

// splitSentences cuts after '.', '!' or '?' when followed by whitespace or
// end-of-text, keeping the terminator with its sentence. Runs of whitespace
// inside a sentence are collapsed to single spaces.
//
// Boundaries are syntactic, not linguistic: abbreviations such as "Mr." are
// treated as sentence ends. This is a known limitation of the splitting
// policy, kept on purpose because chunk counts downstream depend on it.
func splitSentences(text string) []string {
	runes := []rune(text)

	var chunks []string
	var sentence strings.Builder
	for i, r := range runes {
		sentence.WriteRune(r)
		if isTerminator(r) && (i+1 == len(runes) || unicode.IsSpace(runes[i+1])) {
			if s := collapseWhitespace(sentence.String()); s != "" {
				chunks = append(chunks, s)
			}
			sentence.Reset()
		}
	}
	if s := collapseWhitespace(sentence.String()); s != "" {
		chunks = append(chunks, s)
	}
	return chunks
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var blankLineRun = regexp.MustCompile(`\n\s*\n`)

// splitParagraphs cuts on runs of one-or-more blank lines. Each paragraph is
// trimmed at its edges while internal single newlines are preserved.
func splitParagraphs(text string) []string {
	parts := blankLineRun.Split(text, -1)

	chunks := make([]string, 0, len(parts))
	for _, part := range parts {
		if p := strings.TrimSpace(part); p != "" {
			chunks = append(chunks, p)
		}
	}
	return chunks
}
