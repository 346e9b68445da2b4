package execution

import (
	"context"
	"time"

	"swiftcheck/internal/domain"
)

// Executor executes cases and returns results in case order
type Executor interface {
	Execute(ctx context.Context, cs []domain.TestCase) ([]domain.CaseResult, time.Duration, error)
}

// Progress is told about every finished case while a run is in flight.
// Calls are serialized by the pool.
type Progress interface {
	Record(result domain.CaseResult)
	Finish()
}
