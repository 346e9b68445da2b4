package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"swiftcheck/internal/domain"
)

// Run is one suite run as stored in the history tables
type Run struct {
	ID        string
	StartedAt time.Time
	Endpoint  string
	Settle    string
	Workers   int
	Duration  time.Duration
	Results   []domain.CaseResult
}

// Recorder writes runs to the history database
type Recorder struct {
	db *sql.DB
}

// NewRecorder creates a Recorder on an open database handle
func NewRecorder(db *sql.DB) *Recorder {
	return &Recorder{db: db}
}

// Record inserts the run and all of its case results in one transaction
func (r *Recorder) Record(ctx context.Context, run Run) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	summary := domain.Summarize(run.Results)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, endpoint, settle_strategy, workers, total_cases, passed_cases, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC(), run.Endpoint, run.Settle, run.Workers,
		summary.Total, summary.Passed, run.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO case_results (run_id, position, label, kind, passed, found, expected, candidate, error, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare case insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range run.Results {
		var errText sql.NullString
		if c.Err != nil {
			errText = sql.NullString{String: c.Err.Error(), Valid: true}
		}
		if _, err = stmt.ExecContext(ctx,
			run.ID, i, c.Label, string(c.Kind), c.Passed, c.Found,
			c.Expected, c.Candidate, errText, c.Duration.Milliseconds()); err != nil {
			return fmt.Errorf("insert case %q: %w", c.Label, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit history: %w", err)
	}
	return nil
}

// LastCandidates returns, per label, the candidate recorded by the most
// recent run before excludeRunID. It lets the reporter flag cases whose
// output changed since the previous run.
func (r *Recorder) LastCandidates(ctx context.Context, excludeRunID string) (map[string]string, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id FROM runs WHERE id <> ? ORDER BY started_at DESC LIMIT 1`, excludeRunID)
	var prev string
	if err := row.Scan(&prev); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("find previous run: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT label, candidate FROM case_results WHERE run_id = ?`, prev)
	if err != nil {
		return nil, fmt.Errorf("load previous candidates: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var label, candidate string
		if err := rows.Scan(&label, &candidate); err != nil {
			return nil, err
		}
		out[label] = candidate
	}
	return out, rows.Err()
}
