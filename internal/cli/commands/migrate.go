package commands

import (
	"context"
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"swiftcheck/internal/cli"
	"swiftcheck/internal/history"
)

// MigrateCommand handles the migrate command
type MigrateCommand struct {
	app *cli.App
}

// NewMigrateCommand creates a new MigrateCommand
func NewMigrateCommand(app *cli.App) *MigrateCommand {
	return &MigrateCommand{app: app}
}

// Execute runs the command
func (mc *MigrateCommand) Execute(cmd *cobra.Command, args []string) error {
	dsn := mc.app.Config.HistoryDSN
	if dsn == "" {
		return errors.New("no history DSN configured (use --history-dsn or SWIFTCHECK_HISTORY_DSN)")
	}
	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	if err := history.NewDatabaseManager(dsn).Migrate(ctx); err != nil {
		return err
	}
	color.Green("✓ History database is up to date")
	return nil
}
