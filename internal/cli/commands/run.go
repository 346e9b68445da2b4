package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"swiftcheck/internal/cases"
	"swiftcheck/internal/cli"
	"swiftcheck/internal/config"
	"swiftcheck/internal/domain"
	"swiftcheck/internal/driver"
	"swiftcheck/internal/execution"
	"swiftcheck/internal/extract"
	"swiftcheck/internal/history"
	"swiftcheck/internal/settle"
	"swiftcheck/internal/storage"
	"swiftcheck/internal/ui"
)

// ErrSuiteFailed is returned by run when at least one case failed
var ErrSuiteFailed = errors.New("suite failed")

// historyTimeout bounds every history database round trip
const historyTimeout = 10 * time.Second

// DriverFactory builds the session driver for one run
type DriverFactory func(cfg *config.Config, logger *zap.Logger) driver.Driver

// RodDriverFactory drives a real Chrome through rod
func RodDriverFactory(cfg *config.Config, logger *zap.Logger) driver.Driver {
	return driver.NewRodDriver(driver.RodConfig{
		DebuggerURL:       cfg.DebuggerURL,
		Bin:               cfg.BrowserBin,
		Launch:            cfg.BrowserArgs,
		Headless:          cfg.Headless,
		NavigationTimeout: cfg.NavigationTimeout,
	}, logger)
}

// RunCommand handles the run command
type RunCommand struct {
	app       *cli.App
	newDriver DriverFactory
	filter    *cases.Filter
	storage   storage.Storage
	formatter *ui.Formatter
	viewer    ui.Viewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	app *cli.App,
	newDriver DriverFactory,
	filter *cases.Filter,
	st storage.Storage,
	formatter *ui.Formatter,
	viewer ui.Viewer,
) *RunCommand {
	return &RunCommand{
		app:       app,
		newDriver: newDriver,
		filter:    filter,
		storage:   st,
		formatter: formatter,
		viewer:    viewer,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg := rc.app.Config
	logger := rc.app.Logger
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	cs, err := rc.selectCases(cfg)
	if err != nil {
		return err
	}
	if len(cs) == 0 {
		color.Yellow("No cases to execute")
		return nil
	}

	extractor, err := extract.New(cfg.Anchor, cfg.Terminators)
	if err != nil {
		return err
	}
	strategy, err := settle.New(cfg.Settle, settle.Options{
		Delay:    cfg.SettleDelay,
		Interval: cfg.PollInterval,
		Timeout:  cfg.PollTimeout,
		Ready:    extractor.Matches,
	})
	if err != nil {
		return err
	}

	drv := rc.newDriver(cfg, logger.Named("driver"))
	defer func() {
		if err := drv.Close(); err != nil {
			logger.Warn("closing browser", zap.Error(err))
		}
	}()

	runner := execution.NewRunner(execution.RunnerConfig{
		Endpoint:      cfg.Endpoint,
		InputSelector: cfg.InputSelector,
		CaseTimeout:   cfg.CaseTimeout,
	}, drv, strategy, extractor, logger.Named("runner"))

	pool := execution.NewWorkerPool(cfg.Workers, runner, logger.Named("pool"))
	pool.SetFailFast(cfg.Flags.FailFast)
	if !cfg.Flags.NoProgress {
		pool.SetProgress(ui.NewProgressBar(len(cs)))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runID := uuid.NewString()
	startedAt := time.Now()
	logger.Info("run started",
		zap.String("run_id", runID),
		zap.String("endpoint", cfg.Endpoint),
		zap.String("settle", strategy.Name()),
		zap.Int("cases", len(cs)),
		zap.Int("workers", cfg.Workers))

	results, duration, runErr := pool.Execute(ctx, cs)
	if runErr != nil {
		logger.Warn("run interrupted", zap.Error(runErr), zap.Int("evaluated", len(results)))
	}

	output, err := rc.storage.Save(storage.Run{
		ID:       runID,
		Results:  results,
		Duration: duration,
		Workers:  cfg.Workers,
		Endpoint: cfg.Endpoint,
		Settle:   strategy.Name(),
	})
	if err != nil {
		return fmt.Errorf("failed to save run results: %w", err)
	}

	reporter := ui.NewReporter(cmd.OutOrStdout())
	rc.recordHistory(history.Run{
		ID:        runID,
		StartedAt: startedAt,
		Endpoint:  cfg.Endpoint,
		Settle:    strategy.Name(),
		Workers:   cfg.Workers,
		Duration:  duration,
		Results:   results,
	}, reporter)

	reporter.ReportAll(results)
	summary := domain.Summarize(results)
	reporter.Summary(summary)
	rc.formatter.WithOutput(cmd.OutOrStdout()).PrintMetaStats(output)

	if runErr != nil {
		return fmt.Errorf("run interrupted after %d of %d case(s): %w", len(results), len(cs), runErr)
	}
	if summary.OK() {
		return nil
	}
	if cfg.Flags.OpenFailures {
		if err := rc.viewer.View(output); err != nil {
			logger.Warn("failures viewer", zap.Error(err))
		}
	}
	return ErrSuiteFailed
}

// selectCases loads the repository and applies --filter and --failed
func (rc *RunCommand) selectCases(cfg *config.Config) ([]domain.TestCase, error) {
	cs, err := cases.Load(cfg.CasesFile)
	if err != nil {
		return nil, err
	}
	cs = rc.filter.FilterByLabel(cs, cfg.Flags.Filter)

	if cfg.Flags.OnlyFailed {
		last, err := rc.storage.Load()
		if err != nil {
			return nil, fmt.Errorf("--failed needs a previous run: %w", err)
		}
		cs = rc.filter.FilterByLabels(cs, storage.FailedLabels(last))
	}
	return cs, nil
}

// recordHistory stores the run in MySQL when a DSN is configured and hands
// the previous run's candidates to the reporter. Errors are logged only.
func (rc *RunCommand) recordHistory(run history.Run, reporter *ui.Reporter) {
	dsn := rc.app.Config.HistoryDSN
	if dsn == "" {
		return
	}
	logger := rc.app.Logger.With(zap.String("run_id", run.ID))

	db, err := history.Open(dsn)
	if err != nil {
		logger.Warn("history disabled", zap.Error(err))
		return
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
	defer cancel()

	recorder := history.NewRecorder(db)
	previous, err := recorder.LastCandidates(ctx, run.ID)
	if err != nil {
		logger.Warn("reading previous run", zap.Error(err))
	} else {
		reporter.SetPrevious(previous)
	}

	if err := recorder.Record(ctx, run); err != nil {
		logger.Warn("recording run", zap.Error(err))
		return
	}
	logger.Debug("run recorded in history")
}
