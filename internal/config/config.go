package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Service under test
	Endpoint      string
	InputSelector string

	// Extraction
	Anchor      string
	Terminators []string

	// Settle strategy
	Settle       string
	SettleDelay  time.Duration
	PollInterval time.Duration
	PollTimeout  time.Duration

	// Execution settings
	Workers           int
	CaseTimeout       time.Duration
	NavigationTimeout time.Duration

	// Browser
	Headless    bool
	BrowserBin  string
	DebuggerURL string
	BrowserArgs []string

	// Case repository; empty means the embedded oracle
	CasesFile string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Run history (MySQL DSN); empty disables history
	HistoryDSN string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags that only steer a single invocation
type Flags struct {
	Filter       string
	FailFast     bool
	OnlyFailed   bool
	OpenFailures bool
	NoProgress   bool
	ShowIO       bool
	Verbose      bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		Endpoint:          DefaultEndpoint,
		InputSelector:     DefaultInputSelector,
		Anchor:            DefaultAnchor,
		Settle:            DefaultSettle,
		SettleDelay:       DefaultSettleDelay,
		PollInterval:      DefaultPollInterval,
		PollTimeout:       DefaultPollTimeout,
		Workers:           DefaultWorkers,
		CaseTimeout:       DefaultCaseTimeout,
		NavigationTimeout: DefaultNavigationTimeout,
		Headless:          true,
		OutputJSONFile:    DefaultOutputJSONFile,
		OutputJSONDir:     DefaultOutputJSONDir,
	}
	// Copy default terminators
	cfg.Terminators = make([]string, len(DefaultTerminators))
	copy(cfg.Terminators, DefaultTerminators)
	return cfg
}

// Validate checks settings that would otherwise fail deep inside a run
func (c *Config) Validate() error {
	var errs []error
	if c.Endpoint == "" {
		errs = append(errs, errors.New("endpoint must not be empty"))
	}
	if c.InputSelector == "" {
		errs = append(errs, errors.New("input selector must not be empty"))
	}
	if c.Anchor == "" {
		errs = append(errs, errors.New("anchor must not be empty"))
	}
	if len(c.Terminators) == 0 {
		errs = append(errs, errors.New("at least one terminator is required"))
	}
	switch c.Settle {
	case "fixed", "polling":
	default:
		errs = append(errs, fmt.Errorf("unknown settle strategy %q (want fixed or polling)", c.Settle))
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if c.CaseTimeout <= 0 {
		errs = append(errs, fmt.Errorf("case timeout must be positive, got %s", c.CaseTimeout))
	}
	if c.Settle == "fixed" && c.SettleDelay >= c.CaseTimeout {
		errs = append(errs, fmt.Errorf("settle delay %s must be shorter than case timeout %s", c.SettleDelay, c.CaseTimeout))
	}
	if c.Settle == "polling" && c.PollTimeout >= c.CaseTimeout {
		errs = append(errs, fmt.Errorf("poll timeout %s must be shorter than case timeout %s", c.PollTimeout, c.CaseTimeout))
	}
	return errors.Join(errs...)
}

// GetOutputPath returns the full path to the output JSON file.
// Resolves to an absolute path so run and failures always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
