package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"swiftcheck/internal/compare"
	"swiftcheck/internal/domain"
)

// Reporter prints one record per case. Failures carry the literal expected
// and actual strings, never truncated, so they can be diffed by hand.
type Reporter struct {
	out      io.Writer
	previous map[string]string

	pass  *color.Color
	fail  *color.Color
	label *color.Color
	dim   *color.Color
	warn  *color.Color
}

// NewReporter creates a Reporter writing to out
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{
		out:   out,
		pass:  color.New(color.FgGreen),
		fail:  color.New(color.FgRed),
		label: color.New(color.FgYellow),
		dim:   color.New(color.FgHiBlack),
		warn:  color.New(color.FgMagenta),
	}
}

// SetPrevious provides candidates from the previous run, keyed by label,
// so cases whose output moved can be flagged.
func (r *Reporter) SetPrevious(previous map[string]string) {
	r.previous = previous
}

// ReportAll prints every result in order
func (r *Reporter) ReportAll(results []domain.CaseResult) {
	for _, res := range results {
		r.Report(res)
	}
}

// Report prints a single case result
func (r *Reporter) Report(res domain.CaseResult) {
	if res.Passed {
		r.pass.Fprint(r.out, "✓ passed ")
		fmt.Fprintln(r.out, res.Label)
		r.reportDrift(res)
		return
	}

	r.fail.Fprint(r.out, "✗ failed ")
	fmt.Fprint(r.out, res.Label)
	r.dim.Fprintf(r.out, " [%s]\n", kindText(res.Kind))

	if res.Kind == domain.KindDriverError {
		r.fail.Fprintf(r.out, "    Error   : %v\n", res.Err)
		return
	}

	actual := "<absent>"
	if res.Found {
		actual = res.Candidate
	}
	r.label.Fprint(r.out, "    Expected: ")
	fmt.Fprintln(r.out, res.Expected)
	r.label.Fprint(r.out, "    Actual  : ")
	fmt.Fprintln(r.out, actual)

	// Quoted forms make leading/trailing whitespace and blank lines visible.
	r.dim.Fprintf(r.out, "    Expected (quoted): %q\n", res.Expected)
	if res.Found {
		r.dim.Fprintf(r.out, "    Actual   (quoted): %q\n", res.Candidate)
	}

	if res.Found {
		if hint := compare.Hint(res.Expected, res.Candidate); hint != "" {
			r.warn.Fprintf(r.out, "    Hint    : %s\n", hint)
		}
		if diff := compare.Diff(res.Expected, res.Candidate); diff != "" {
			r.dim.Fprintln(r.out, "    Diff (-expected +actual):")
			for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
				fmt.Fprintf(r.out, "      %s\n", line)
			}
		}
	}
	r.reportDrift(res)
}

func (r *Reporter) reportDrift(res domain.CaseResult) {
	if r.previous == nil {
		return
	}
	prev, ok := r.previous[res.Label]
	if !ok || prev == res.Candidate {
		return
	}
	r.warn.Fprintf(r.out, "    Changed since previous run (was %q)\n", prev)
}

// Summary prints the run-level aggregate
func (r *Reporter) Summary(s domain.Summary) {
	fmt.Fprintln(r.out)
	if s.OK() {
		r.pass.Fprintf(r.out, "✓ All %d case(s) passed\n", s.Total)
		return
	}
	r.fail.Fprintf(r.out, "✗ %d of %d case(s) failed\n", len(s.Failed), s.Total)
	for _, label := range s.Failed {
		fmt.Fprintf(r.out, "  - %s\n", label)
	}
}

func kindText(k domain.Kind) string {
	switch k {
	case domain.KindMismatch:
		return "mismatch"
	case domain.KindExtractionMiss:
		return "no translation found"
	case domain.KindDriverError:
		return "driver error"
	default:
		return string(k)
	}
}
