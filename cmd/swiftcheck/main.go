package main

import (
	"errors"
	"fmt"
	"os"

	"swiftcheck/internal/cli"
	"swiftcheck/internal/cli/commands"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "swiftcheck",
		Short:         "Singlish to Sinhala translator regression checker",
		Long:          `Drives the transliteration web UI with a fixed suite of Singlish inputs, extracts the rendered Sinhala output from the page and compares it byte for byte with the expected text.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Config is filled in once flags are parsed
	app := cli.NewApp()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(app, commands.RodDriverFactory)

	// Register all commands
	cmds.Register(rootCmd, &flags, app)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, commands.ErrSuiteFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
