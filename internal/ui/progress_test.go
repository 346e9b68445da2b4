package ui

import (
	"bytes"
	"strings"
	"testing"

	"swiftcheck/internal/domain"
)

func TestProgressBarTalliesByKind(t *testing.T) {
	var buf bytes.Buffer
	p := newProgressBar(4, &buf)

	p.Record(domain.CaseResult{Label: "Test 1 : a", Passed: true, Kind: domain.KindPassed})
	p.Record(domain.CaseResult{Label: "Test 2 : b", Kind: domain.KindMismatch})
	p.Record(domain.CaseResult{Label: "Test 3 : c", Kind: domain.KindDriverError})
	p.Record(domain.CaseResult{Label: "Test 4 : d", Passed: true, Kind: domain.KindPassed})
	p.Finish()

	counts := p.Counts()
	want := map[domain.Kind]int{
		domain.KindPassed:      2,
		domain.KindMismatch:    1,
		domain.KindDriverError: 1,
	}
	for k, n := range want {
		if counts[k] != n {
			t.Errorf("count for %s = %d, want %d", k, counts[k], n)
		}
	}
	if counts[domain.KindExtractionMiss] != 0 {
		t.Errorf("unexpected extraction misses: %d", counts[domain.KindExtractionMiss])
	}

	if !strings.Contains(buf.String(), "4/4") {
		t.Errorf("bar should reach 4/4, got %q", buf.String())
	}
}

func TestTally(t *testing.T) {
	got := tally(map[domain.Kind]int{domain.KindPassed: 3, domain.KindExtractionMiss: 1}, "Test 12 : Convert the present tense")
	for _, want := range []string{"✓ 3", "✗ 0", "∅ 1", "⚠ 0", "Test 12 : Convert the p…"} {
		if !strings.Contains(got, want) {
			t.Errorf("tally() missing %q, got %q", want, got)
		}
	}
}
