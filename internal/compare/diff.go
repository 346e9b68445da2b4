package compare

import (
	"strings"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/unicode/norm"
)

// Diff renders a line-oriented diff of expected against actual. Lines keep
// their trailing newline so a missing or extra blank line shows up.
func Diff(expected, actual string) string {
	return cmp.Diff(strings.SplitAfter(expected, "\n"), strings.SplitAfter(actual, "\n"))
}

// Hint returns a short diagnosis for near misses, or an empty string.
// It never changes the verdict.
func Hint(expected, actual string) string {
	if expected == actual {
		return ""
	}
	if norm.NFC.String(expected) == norm.NFC.String(actual) {
		return "strings differ only in Unicode normalization"
	}
	if strings.TrimSpace(expected) == strings.TrimSpace(actual) {
		return "strings differ only in leading or trailing whitespace"
	}
	if strings.Join(strings.Fields(expected), " ") == strings.Join(strings.Fields(actual), " ") {
		return "strings differ only in internal whitespace"
	}
	return ""
}
