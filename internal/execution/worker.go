package execution

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"swiftcheck/internal/domain"
)

// State of a suite run
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// CaseRunner evaluates one case
type CaseRunner interface {
	Run(ctx context.Context, tc domain.TestCase, workerID int) domain.CaseResult
}

// WorkerPool manages a pool of workers for running cases. With one worker
// cases run sequentially in repository order.
type WorkerPool struct {
	workers  int
	failFast bool
	runner   CaseRunner
	progress Progress
	logger   *zap.Logger
	state    atomic.Int32
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(workers int, runner CaseRunner, logger *zap.Logger) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkerPool{workers: workers, runner: runner, logger: logger}
}

// SetProgress sets the progress reporter for the worker pool
func (wp *WorkerPool) SetProgress(progress Progress) {
	wp.progress = progress
}

// SetFailFast stops scheduling new cases after the first failure
func (wp *WorkerPool) SetFailFast(failFast bool) {
	wp.failFast = failFast
}

// State returns the current run state
func (wp *WorkerPool) State() State {
	return State(wp.state.Load())
}

type job struct {
	index int
	tc    domain.TestCase
}

// Execute runs every case and returns the results in case order. A failing
// case never stops the others unless fail-fast is set; cases skipped by
// fail-fast or cancellation are absent from the results.
func (wp *WorkerPool) Execute(ctx context.Context, cs []domain.TestCase) ([]domain.CaseResult, time.Duration, error) {
	wp.state.Store(int32(StateRunning))
	defer wp.state.Store(int32(StateCompleted))

	if len(cs) == 0 {
		return nil, 0, nil
	}

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan job)
	go func() {
		defer close(jobs)
		for i, tc := range cs {
			select {
			case <-ctx.Done():
				return
			case jobs <- job{index: i, tc: tc}:
			}
		}
	}()

	slots := make([]domain.CaseResult, len(cs))
	done := make([]bool, len(cs))
	var mu sync.Mutex
	var passed, failed int
	var stopped bool
	startTime := time.Now()

	workerCount := wp.workers
	if workerCount > len(cs) {
		workerCount = len(cs)
	}

	var wg sync.WaitGroup
	for i := 1; i <= workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for j := range jobs {
				result := wp.runner.Run(ctx, j.tc, workerID)

				mu.Lock()
				if stopped {
					mu.Unlock()
					continue
				}
				slots[j.index] = result
				done[j.index] = true
				if result.Passed {
					passed++
				} else {
					failed++
				}
				if wp.progress != nil {
					wp.progress.Record(result)
				}
				if !result.Passed && wp.failFast {
					stopped = true
					cancel()
				}
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if wp.progress != nil {
		wp.progress.Finish()
	}

	results := make([]domain.CaseResult, 0, len(cs))
	for i := range slots {
		if done[i] {
			results = append(results, slots[i])
		}
	}
	wp.logger.Info("suite finished",
		zap.Int("cases", len(cs)),
		zap.Int("evaluated", len(results)),
		zap.Int("passed", passed),
		zap.Int("failed", failed),
		zap.Int("workers", workerCount))

	return results, time.Since(startTime), parent.Err()
}
