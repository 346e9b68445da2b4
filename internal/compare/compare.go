// Package compare decides whether an extracted candidate matches the oracle
// and explains mismatches.
package compare

import (
	"time"

	"swiftcheck/internal/domain"
	"swiftcheck/internal/driver"
	"swiftcheck/internal/extract"
)

// Equal is exact string equality. No case folding, whitespace or Unicode
// normalization is applied: drift in any of those is a real regression.
func Equal(candidate, expected string) bool {
	return candidate == expected
}

// Evaluate turns the outcome of one pipeline run into a CaseResult. err is
// the session error, if any; it takes precedence over the extraction result.
func Evaluate(tc domain.TestCase, res extract.Result, err error, took time.Duration) domain.CaseResult {
	r := domain.CaseResult{
		Label:    tc.Label,
		Input:    tc.Input,
		Expected: tc.Expected,
		Duration: took,
	}

	switch {
	case err != nil:
		r.Kind = domain.KindDriverError
		r.Err = driver.Wrap(driver.OpSettle, err)
	case !res.Found:
		r.Kind = domain.KindExtractionMiss
	case Equal(res.Candidate, tc.Expected):
		r.Candidate = res.Candidate
		r.Found = true
		r.Passed = true
		r.Kind = domain.KindPassed
	default:
		r.Candidate = res.Candidate
		r.Found = true
		r.Kind = domain.KindMismatch
	}
	return r
}
