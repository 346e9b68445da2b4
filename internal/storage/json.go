package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"swiftcheck/internal/domain"
)

// BuildOutput assembles the persisted form of a run
func BuildOutput(run Run) *domain.RunOutput {
	meta := domain.RunMeta{
		RunID:           run.ID,
		Endpoint:        run.Endpoint,
		SettleStrategy:  run.Settle,
		TotalCases:      len(run.Results),
		Duration:        run.Duration.String(),
		DurationSeconds: run.Duration.Seconds(),
		Workers:         run.Workers,
		Timestamp:       time.Now().Format(time.RFC3339),
	}

	details := make([]domain.CaseFailure, 0)
	for _, r := range run.Results {
		if r.Passed {
			meta.PassedCases++
			continue
		}
		meta.FailedCases++
		switch r.Kind {
		case domain.KindDriverError:
			meta.DriverErrors++
		case domain.KindExtractionMiss:
			meta.ExtractionMiss++
		}
		details = append(details, domain.NewCaseFailure(r))
	}

	return &domain.RunOutput{Meta: meta, Details: details}
}

// Save writes run results and failures to the configured JSON output file.
func (s *JSONStorage) Save(run Run) (*domain.RunOutput, error) {
	output := BuildOutput(run)
	if err := s.SaveOutput(output); err != nil {
		return nil, err
	}
	return output, nil
}

// Load reads the last run results from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.RunOutput, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var output domain.RunOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}

// SaveOutput writes the full output to the configured JSON file.
func (s *JSONStorage) SaveOutput(output *domain.RunOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// FailedLabels returns the set of labels that failed in output
func FailedLabels(output *domain.RunOutput) map[string]struct{} {
	labels := make(map[string]struct{}, len(output.Details))
	for _, d := range output.Details {
		labels[d.Label] = struct{}{}
	}
	return labels
}
