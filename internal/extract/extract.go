// Package extract isolates the translated segment from the rendered text of
// the translator page.
package extract

import (
	"errors"
	"regexp"
	"strings"
)

// asciiSpace is the only whitespace trimmed from a captured span. Internal
// newlines and runs of spaces are part of the translation.
const asciiSpace = " \t\n\v\f\r"

// Result is the outcome of one extraction
type Result struct {
	Candidate  string // Trimmed translation span
	Found      bool   // False when anchor or terminator did not resolve
	Terminator string // Terminator literal that closed the span
}

// Extractor locates the translation between an anchor label and the nearest
// terminator literal
type Extractor struct {
	anchor      string
	terminators []string
	pattern     *regexp.Regexp
}

// New creates an Extractor for the given anchor and terminator literals
func New(anchor string, terminators []string) (*Extractor, error) {
	if anchor == "" {
		return nil, errors.New("extract: anchor must not be empty")
	}

	quoted := make([]string, 0, len(terminators))
	for _, t := range terminators {
		if t == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(t))
	}
	if len(quoted) == 0 {
		return nil, errors.New("extract: at least one terminator is required")
	}

	// The lazy span stops at the lowest-index terminator, whichever one it is.
	// The first captured rune must be in the Sinhala block so the anchor word
	// in page chrome ("Singlish to Sinhala", language pickers) is skipped.
	expr := `(?s)` + regexp.QuoteMeta(anchor) +
		`[ \t\n\v\f\r]*([\x{0D80}-\x{0DFF}].*?)(` + strings.Join(quoted, "|") + `)`
	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}

	return &Extractor{
		anchor:      anchor,
		terminators: append([]string(nil), terminators...),
		pattern:     pattern,
	}, nil
}

// Default returns the extractor matching the swifttranslator.com layout
func Default() *Extractor {
	e, err := New(DefaultAnchor, DefaultTerminators)
	if err != nil {
		panic(err)
	}
	return e
}

// Anchor returns the anchor literal
func (e *Extractor) Anchor() string {
	return e.anchor
}

// Terminators returns a copy of the terminator literals
func (e *Extractor) Terminators() []string {
	return append([]string(nil), e.terminators...)
}

// Extract scans raw page text and returns the translation span. A page
// without a recognizable span yields a Result with Found set to false.
func (e *Extractor) Extract(raw string) Result {
	m := e.pattern.FindStringSubmatch(raw)
	if len(m) < 3 {
		return Result{}
	}
	return Result{
		Candidate:  strings.Trim(m[1], asciiSpace),
		Found:      true,
		Terminator: m[2],
	}
}

// Matches reports whether raw contains a complete translation span
func (e *Extractor) Matches(raw string) bool {
	return e.pattern.MatchString(raw)
}
