package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"swiftcheck/internal/domain"
	"swiftcheck/internal/storage"
)

const runCases = "cases:\n" +
	"  - label: \"Test 1 : mata\"\n    input: \"mata\"\n    expected: \"මට\"\n" +
	"  - label: \"Test 2 : oyaa\"\n    input: \"oyaa\"\n    expected: \"ඔයා\"\n"

func translatorPage(out string) string {
	return "Singlish to Sinhala Sinhala " + out + " 🔁 Clear English"
}

// runSuite executes `run` against d over runCases and returns the report,
// the persisted results and the command error.
func runSuite(t *testing.T, d *fakeDriver, dir string, extra ...string) (string, *domain.RunOutput, error) {
	t.Helper()
	casesFile := filepath.Join(dir, "cases.yaml")
	if err := os.WriteFile(casesFile, []byte(runCases), 0o644); err != nil {
		t.Fatal(err)
	}

	args := append([]string{"run",
		"--cases", casesFile,
		"--output-dir", dir,
		"--settle-delay", "0s",
		"--workers", "2",
		"--no-progress",
	}, extra...)

	var out bytes.Buffer
	root, app := newRootWithDriver(t, &out, d, args...)
	runErr := root.Execute()

	output, err := storage.NewJSONStorage(app.Config).Load()
	if err != nil {
		t.Fatalf("results file not written: %v", err)
	}
	return out.String(), output, runErr
}

func TestRunAllPassed(t *testing.T) {
	d := &fakeDriver{pages: map[string]string{
		"mata": translatorPage("මට"),
		"oyaa": translatorPage("ඔයා"),
	}}

	report, output, err := runSuite(t, d, t.TempDir())
	if err != nil {
		t.Fatalf("expected exit status 0, got %v", err)
	}
	for _, want := range []string{"✓ passed Test 1 : mata", "✓ passed Test 2 : oyaa", "All 2 case(s) passed"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q\n%s", want, report)
		}
	}
	if output.Meta.TotalCases != 2 || output.Meta.FailedCases != 0 || len(output.Details) != 0 {
		t.Errorf("unexpected results %+v", output)
	}
	if output.Meta.RunID == "" {
		t.Error("run ID not recorded")
	}
	if !d.closed {
		t.Error("driver not closed")
	}
}

func TestRunFailures(t *testing.T) {
	tests := []struct {
		name      string
		driver    *fakeDriver
		kind      domain.Kind
		failed    int
		candidate string
		report    []string
	}{
		{
			name: "mismatch",
			driver: &fakeDriver{pages: map[string]string{
				"mata": translatorPage("මට"),
				"oyaa": translatorPage("ඔයාට"),
			}},
			kind:      domain.KindMismatch,
			failed:    1,
			candidate: "ඔයාට",
			report: []string{
				"✓ passed Test 1 : mata",
				"✗ failed Test 2 : oyaa [mismatch]",
				`Expected (quoted): "ඔයා"`,
				`Actual   (quoted): "ඔයාට"`,
				"1 of 2 case(s) failed",
			},
		},
		{
			name: "extraction miss",
			driver: &fakeDriver{pages: map[string]string{
				"mata": translatorPage("මට"),
			}},
			kind:   domain.KindExtractionMiss,
			failed: 1,
			report: []string{"✗ failed Test 2 : oyaa [no translation found]", "<absent>"},
		},
		{
			name:   "driver error",
			driver: &fakeDriver{failNavigate: true},
			kind:   domain.KindDriverError,
			failed: 2,
			report: []string{"[driver error]", "driver navigate: net::ERR_NAME_NOT_RESOLVED", "2 of 2 case(s) failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, output, err := runSuite(t, tt.driver, t.TempDir())
			if !errors.Is(err, ErrSuiteFailed) {
				t.Fatalf("expected ErrSuiteFailed, got %v", err)
			}
			for _, want := range tt.report {
				if !strings.Contains(report, want) {
					t.Errorf("report missing %q\n%s", want, report)
				}
			}

			if output.Meta.FailedCases != tt.failed || len(output.Details) != tt.failed {
				t.Fatalf("expected %d persisted failures, got %+v", tt.failed, output)
			}
			last := output.Details[len(output.Details)-1]
			if last.Label != "Test 2 : oyaa" || last.Kind != tt.kind {
				t.Errorf("unexpected failure record %+v", last)
			}
			if last.Candidate != tt.candidate {
				t.Errorf("candidate = %q, want %q", last.Candidate, tt.candidate)
			}
			if tt.kind == domain.KindDriverError && output.Meta.DriverErrors != 2 {
				t.Errorf("driver errors = %d, want 2", output.Meta.DriverErrors)
			}
		})
	}
}

func TestRunOnlyFailedReruns(t *testing.T) {
	dir := t.TempDir()
	first := &fakeDriver{pages: map[string]string{
		"mata": translatorPage("මට"),
		"oyaa": translatorPage("ඔයාට"),
	}}
	if _, _, err := runSuite(t, first, dir); !errors.Is(err, ErrSuiteFailed) {
		t.Fatalf("first run: expected ErrSuiteFailed, got %v", err)
	}

	// The service is fixed; only the failed case runs again.
	second := &fakeDriver{pages: map[string]string{
		"mata": translatorPage("මට"),
		"oyaa": translatorPage("ඔයා"),
	}}
	report, output, err := runSuite(t, second, dir, "--failed")
	if err != nil {
		t.Fatalf("rerun: expected exit status 0, got %v", err)
	}
	if second.opened != 1 || output.Meta.TotalCases != 1 {
		t.Errorf("expected one case rerun, opened %d sessions, total %d", second.opened, output.Meta.TotalCases)
	}
	if strings.Contains(report, "Test 1 : mata") {
		t.Errorf("passing case should not rerun\n%s", report)
	}
}
