package domain

import "time"

// Kind classifies the outcome of a single case
type Kind string

const (
	KindPassed         Kind = "passed"
	KindMismatch       Kind = "mismatch"
	KindExtractionMiss Kind = "extraction_miss"
	KindDriverError    Kind = "driver_error"
)

// CaseResult represents the result of evaluating one test case
type CaseResult struct {
	Label     string
	Input     string
	Expected  string
	Candidate string        // Extracted translation, empty when Found is false
	Found     bool          // Whether the extractor located a candidate at all
	Passed    bool          // Candidate is byte-identical to Expected
	Kind      Kind          // Outcome class
	Err       error         // Driver error if the session failed
	Duration  time.Duration // Time taken by the whole pipeline
}

// Summary is the run-level aggregate produced by the suite runner
type Summary struct {
	Total  int
	Passed int
	Failed []string // Labels of failed cases, in case order
}

// OK reports whether every case passed
func (s Summary) OK() bool {
	return len(s.Failed) == 0
}

// Summarize folds case results into a Summary
func Summarize(results []CaseResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Passed {
			s.Passed++
			continue
		}
		s.Failed = append(s.Failed, r.Label)
	}
	return s
}

// RunMeta contains metadata about a suite run
type RunMeta struct {
	RunID           string  `json:"run_id"`
	Endpoint        string  `json:"endpoint"`
	SettleStrategy  string  `json:"settle_strategy"`
	TotalCases      int     `json:"total_cases"`
	PassedCases     int     `json:"passed_cases"`
	FailedCases     int     `json:"failed_cases"`
	DriverErrors    int     `json:"driver_errors"`
	ExtractionMiss  int     `json:"extraction_misses"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	Timestamp       string  `json:"timestamp"`
}

// RunOutput is the complete output structure persisted after a run
type RunOutput struct {
	Meta    RunMeta       `json:"meta"`
	Details []CaseFailure `json:"details"`
}
