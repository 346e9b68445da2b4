package cases

import (
	"testing"

	"swiftcheck/internal/domain"
)

func labels(names ...string) []domain.TestCase {
	cs := make([]domain.TestCase, len(names))
	for i, n := range names {
		cs[i] = domain.TestCase{Label: n}
	}
	return cs
}

func TestFilter_FilterByLabel(t *testing.T) {
	filter := NewFilter()
	all := labels(
		"Test 1 : Convert a short daily request phrase",
		"Test 10 : Convert the Sinhala + English sentences",
		"Test 20 : Convert the paragraphs with line brakes and spaces",
		"Test 25 : Convert the paragraphs",
	)

	tests := []struct {
		name     string
		pattern  string
		expected int // Expected number of matches
	}{
		{name: "empty pattern returns all", pattern: "", expected: 4},
		{name: "prefix wildcard", pattern: "Test 1*", expected: 2},
		{name: "substring wildcard", pattern: "*paragraphs*", expected: 2},
		{name: "suffix wildcard", pattern: "*the paragraphs", expected: 1},
		{name: "plain substring is case insensitive", pattern: "SINHALA", expected: 1},
		{name: "single character wildcard", pattern: "Test 2? : Convert the paragraphs", expected: 1},
		{name: "no matches", pattern: "*NonExistent*", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filter.FilterByLabel(all, tt.pattern)
			if len(result) != tt.expected {
				t.Errorf("expected %d matches, got %d", tt.expected, len(result))
			}
		})
	}
}

func TestFilter_FilterByLabels(t *testing.T) {
	filter := NewFilter()
	all := labels("a", "b", "c", "d")

	result := filter.FilterByLabels(all, map[string]struct{}{"d": {}, "b": {}})
	if len(result) != 2 || result[0].Label != "b" || result[1].Label != "d" {
		t.Errorf("expected [b d] in case order, got %+v", result)
	}

	if got := filter.FilterByLabels(all, nil); len(got) != 0 {
		t.Errorf("expected no cases for empty label set, got %d", len(got))
	}
}
