package ui

import "swiftcheck/internal/domain"

// Viewer displays run failures in an interactive TUI
type Viewer interface {
	View(results *domain.RunOutput) error
}
