package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"swiftcheck/internal/cases"
	"swiftcheck/internal/cli"
	"swiftcheck/internal/storage"
	"swiftcheck/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	app       *cli.App
	filter    *cases.Filter
	formatter *ui.Formatter
	storage   storage.Storage
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	app *cli.App,
	filter *cases.Filter,
	formatter *ui.Formatter,
	st storage.Storage,
) *ListCommand {
	return &ListCommand{
		app:       app,
		filter:    filter,
		formatter: formatter,
		storage:   st,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg := lc.app.Config
	cs, err := cases.Load(cfg.CasesFile)
	if err != nil {
		return err
	}

	cs = lc.filter.FilterByLabel(cs, cfg.Flags.Filter)

	if len(cs) == 0 {
		color.Yellow("No cases found")
		return nil
	}

	// Mark cases that failed last run; a missing results file just means no markers.
	var failed map[string]struct{}
	if output, err := lc.storage.Load(); err == nil {
		failed = storage.FailedLabels(output)
	} else {
		lc.app.Logger.Debug("no previous run to mark failures from", zap.Error(err))
	}

	lc.formatter.WithOutput(cmd.OutOrStdout()).PrintCaseList(cs, cfg.Flags.ShowIO, failed)
	return nil
}
