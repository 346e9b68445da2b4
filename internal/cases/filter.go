package cases

import (
	"path/filepath"
	"strings"

	"swiftcheck/internal/domain"
)

// Filter selects cases by label
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByLabel filters cases by label pattern using wildcard matching.
// Supports patterns like "Test 1*" or "*paragraph*"; a pattern without
// wildcards is a case-insensitive substring match.
func (f *Filter) FilterByLabel(cs []domain.TestCase, pattern string) []domain.TestCase {
	if pattern == "" {
		return cs
	}

	var filtered []domain.TestCase
	for _, c := range cs {
		if matchLabel(c.Label, pattern) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// FilterByLabels keeps only the cases whose label is in labels, in case order
func (f *Filter) FilterByLabels(cs []domain.TestCase, labels map[string]struct{}) []domain.TestCase {
	var filtered []domain.TestCase
	for _, c := range cs {
		if _, ok := labels[c.Label]; ok {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

func matchLabel(label, pattern string) bool {
	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(strings.ToLower(label), strings.ToLower(pattern))
	}

	// filepath.Match handles * and ? but treats / as a separator; labels may
	// contain slashes, so fall back to an ordered substring check for *.
	if matched, err := filepath.Match(pattern, label); err == nil && matched {
		return true
	}
	if strings.Contains(pattern, "?") {
		return false
	}

	rest := label
	parts := strings.Split(pattern, "*")
	for i, part := range parts {
		if part == "" {
			continue
		}
		idx := strings.Index(rest, part)
		if idx < 0 || (i == 0 && idx != 0) {
			return false
		}
		rest = rest[idx+len(part):]
	}
	last := parts[len(parts)-1]
	return last == "" || strings.HasSuffix(label, last)
}
