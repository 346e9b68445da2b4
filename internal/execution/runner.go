package execution

import (
	"context"
	"time"

	"go.uber.org/zap"

	"swiftcheck/internal/compare"
	"swiftcheck/internal/domain"
	"swiftcheck/internal/driver"
	"swiftcheck/internal/extract"
	"swiftcheck/internal/settle"
)

// RunnerConfig holds what the per-case pipeline needs from the configuration
type RunnerConfig struct {
	Endpoint      string
	InputSelector string
	CaseTimeout   time.Duration
}

// Runner evaluates a single case: open session, navigate, fill, settle,
// extract, compare. The stages run strictly in that order.
type Runner struct {
	cfg       RunnerConfig
	driver    driver.Driver
	settle    settle.Strategy
	extractor *extract.Extractor
	logger    *zap.Logger
}

// NewRunner creates a new Runner
func NewRunner(cfg RunnerConfig, d driver.Driver, s settle.Strategy, e *extract.Extractor, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{cfg: cfg, driver: d, settle: s, extractor: e, logger: logger}
}

// Run evaluates tc in its own session. It never returns an error: every
// failure is folded into the CaseResult.
func (r *Runner) Run(ctx context.Context, tc domain.TestCase, workerID int) domain.CaseResult {
	start := time.Now()
	if r.cfg.CaseTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.CaseTimeout)
		defer cancel()
	}

	log := r.logger.With(zap.String("case", tc.Label), zap.Int("worker", workerID))

	text, err := r.render(ctx, tc, log)
	if err != nil {
		log.Error("case aborted by driver error", zap.Error(err))
		return compare.Evaluate(tc, extract.Result{}, err, time.Since(start))
	}

	res := r.extractor.Extract(text)
	if !res.Found {
		log.Debug("no translation span in page text", zap.Int("page_bytes", len(text)))
	}
	result := compare.Evaluate(tc, res, nil, time.Since(start))
	log.Debug("case evaluated",
		zap.String("kind", string(result.Kind)),
		zap.Duration("took", result.Duration))
	return result
}

// render drives the browser and returns the settled page text
func (r *Runner) render(ctx context.Context, tc domain.TestCase, log *zap.Logger) (string, error) {
	sess, err := r.driver.Open(ctx)
	if err != nil {
		return "", driver.Wrap(driver.OpOpen, err)
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			log.Warn("close session", zap.Error(cerr))
		}
	}()

	// A fresh navigation per case keeps output from a previous case out of
	// this one's extraction.
	stage := time.Now()
	if err := sess.Navigate(ctx, r.cfg.Endpoint); err != nil {
		return "", driver.Wrap(driver.OpNavigate, err)
	}
	log.Debug("navigated", zap.Duration("took", time.Since(stage)))

	stage = time.Now()
	if err := sess.FillInput(ctx, r.cfg.InputSelector, tc.Input); err != nil {
		return "", driver.Wrap(driver.OpFill, err)
	}
	log.Debug("input filled", zap.Int("runes", len([]rune(tc.Input))), zap.Duration("took", time.Since(stage)))

	stage = time.Now()
	text, err := r.settle.Settle(ctx, sess)
	if err != nil {
		return "", driver.Wrap(driver.OpSettle, err)
	}
	log.Debug("page settled", zap.String("strategy", r.settle.Name()), zap.Duration("took", time.Since(stage)))
	return text, nil
}
