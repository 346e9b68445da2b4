package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"swiftcheck/internal/domain"
)

// ProgressBar shows how far a run is, with a tally per outcome kind and the
// label of the case that finished last.
type ProgressBar struct {
	bar    *progressbar.ProgressBar
	counts map[domain.Kind]int
	done   int
}

// NewProgressBar creates a progress bar for count cases on stderr
func NewProgressBar(count int) *ProgressBar {
	return newProgressBar(count, os.Stderr)
}

func newProgressBar(count int, out io.Writer) *ProgressBar {
	bar := progressbar.NewOptions(count,
		progressbar.OptionSetDescription(tally(nil, "")),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionSetWriter(out),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(out, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &ProgressBar{bar: bar, counts: make(map[domain.Kind]int)}
}

// tally renders the description: passed, mismatched, missing, errored
func tally(counts map[domain.Kind]int, last string) string {
	s := color.GreenString("✓ %d", counts[domain.KindPassed]) + " " +
		color.RedString("✗ %d", counts[domain.KindMismatch]) + " " +
		color.YellowString("∅ %d", counts[domain.KindExtractionMiss]) + " " +
		color.MagentaString("⚠ %d", counts[domain.KindDriverError])
	if last != "" {
		s += " " + color.HiBlackString(shorten(last, 24))
	}
	return s
}

// Record advances the bar by one finished case
func (p *ProgressBar) Record(result domain.CaseResult) {
	p.done++
	p.counts[result.Kind]++
	p.bar.Describe(tally(p.counts, result.Label))
	_ = p.bar.Set(p.done)
}

// Counts returns the number of finished cases per kind
func (p *ProgressBar) Counts() map[domain.Kind]int {
	out := make(map[domain.Kind]int, len(p.counts))
	for k, v := range p.counts {
		out[k] = v
	}
	return out
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	_ = p.bar.Finish()
}
