package storage

import (
	"time"

	"swiftcheck/internal/config"
	"swiftcheck/internal/domain"
)

// Storage persists and loads run results (e.g. for the failures viewer and --failed).
type Storage interface {
	Save(run Run) (*domain.RunOutput, error)
	Load() (*domain.RunOutput, error)
	// SaveOutput writes the full output (e.g. after marking failures resolved).
	SaveOutput(output *domain.RunOutput) error
}

// Run carries everything Save needs to describe one suite run
type Run struct {
	ID       string
	Results  []domain.CaseResult
	Duration time.Duration
	Workers  int
	Endpoint string
	Settle   string
}

// JSONStorage stores results in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
