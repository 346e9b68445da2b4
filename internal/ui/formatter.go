package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"swiftcheck/internal/domain"
)

// Formatter formats and displays run statistics and case listings
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to out
func NewFormatter(out io.Writer) *Formatter {
	if out == nil {
		out = color.Output
	}
	return &Formatter{out: out}
}

// WithOutput returns a copy of the Formatter writing to out
func (f *Formatter) WithOutput(out io.Writer) *Formatter {
	return NewFormatter(out)
}

// PrintMetaStats displays the statistics table of a run
func (f *Formatter) PrintMetaStats(output *domain.RunOutput) {
	meta := output.Meta
	cyan := color.New(color.FgCyan)
	white := color.New(color.FgWhite)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	row := func(name string, c *color.Color, value string) {
		fmt.Fprintf(f.out, "│ %-31s │ ", name)
		c.Fprintf(f.out, "%-27s", value)
		fmt.Fprintln(f.out, " │")
	}
	sep := func() {
		fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
	}

	// Print header
	fmt.Fprint(f.out, "\n")
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                      Run Statistics                           ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")

	// Print table
	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	row("Total Cases", white, fmt.Sprint(meta.TotalCases))
	sep()
	row("Passed Cases", green, fmt.Sprint(meta.PassedCases))
	sep()
	row("Failed Cases", red, fmt.Sprint(meta.FailedCases))
	sep()
	row("  of which driver errors", red, fmt.Sprint(meta.DriverErrors))
	sep()
	row("  of which no translation", red, fmt.Sprint(meta.ExtractionMiss))
	sep()
	row("Settle Strategy", white, meta.SettleStrategy)
	sep()
	row("Duration", white, fmt.Sprintf("%.2fs", meta.DurationSeconds))
	sep()
	row("Workers", white, fmt.Sprint(meta.Workers))
	sep()
	row("Run ID", white, shorten(meta.RunID, 27))
	sep()
	row("Timestamp", white, meta.Timestamp)
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	// Print summary line
	fmt.Fprintln(f.out)
	if meta.FailedCases == 0 {
		green.Fprintln(f.out, "✓ All cases passed!")
		return
	}
	red.Fprintf(f.out, "✗ %d case(s) failed\n", meta.FailedCases)
	fmt.Fprintln(f.out)
	f.printFailuresByKind(output.Details)
}

// printFailuresByKind prints failed labels grouped under their failure kind
func (f *Formatter) printFailuresByKind(failures []domain.CaseFailure) {
	order := []domain.Kind{domain.KindMismatch, domain.KindExtractionMiss, domain.KindDriverError}
	groups := make(map[domain.Kind][]domain.CaseFailure)
	for _, failure := range failures {
		groups[failure.Kind] = append(groups[failure.Kind], failure)
	}

	var kinds []domain.Kind
	for _, k := range order {
		if len(groups[k]) > 0 {
			kinds = append(kinds, k)
		}
	}

	for i, k := range kinds {
		isLastKind := i == len(kinds)-1
		connector, childPrefix := "├── ", "│   "
		if isLastKind {
			connector, childPrefix = "└── ", "    "
		}
		color.New(color.FgCyan).Fprintf(f.out, "%s%s (%d)\n", connector, kindText(k), len(groups[k]))

		for j, failure := range groups[k] {
			caseConnector := "├── "
			if j == len(groups[k])-1 {
				caseConnector = "└── "
			}
			marker := ""
			if failure.Resolved {
				marker = color.HiBlackString(" (resolved)")
			}
			fmt.Fprintf(f.out, "%s%s%s%s\n", childPrefix, caseConnector, color.RedString(failure.Label), marker)
		}
	}
}

// PrintCaseList prints the cases, optionally with their input and expected
// output. failed is optional; cases in it are marked with [F] in red (from last run).
func (f *Formatter) PrintCaseList(cs []domain.TestCase, showIO bool, failed map[string]struct{}) {
	color.New(color.FgGreen).Fprintf(f.out, "Found %d case(s):\n\n", len(cs))

	for i, c := range cs {
		isLast := i == len(cs)-1

		failMarker := ""
		if _, ok := failed[c.Label]; ok {
			failMarker = " " + color.RedString("[F]")
		}

		connector, childPrefix := "├── ", "│   "
		if isLast {
			connector, childPrefix = "└── ", "    "
		}
		color.New(color.FgCyan).Fprintf(f.out, "%s%s", connector, c.Label)
		fmt.Fprintln(f.out, failMarker)

		if !showIO {
			continue
		}
		fmt.Fprintf(f.out, "%s├── %s %q\n", childPrefix, color.YellowString("input:   "), c.Input)
		fmt.Fprintf(f.out, "%s└── %s %q\n", childPrefix, color.YellowString("expected:"), c.Expected)
		if !isLast {
			fmt.Fprintln(f.out, childPrefix)
		}
	}
}

// shorten cuts s to n runes, marking the cut with an ellipsis
func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// indent prefixes every line of s
func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
