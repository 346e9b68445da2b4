package commands

import (
	"time"

	"github.com/spf13/cobra"

	"swiftcheck/internal/cases"
	"swiftcheck/internal/cli"
	"swiftcheck/internal/config"
	"swiftcheck/internal/storage"
	"swiftcheck/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Migrate  *MigrateCommand
	Failures *FailuresCommand
	Extract  *ExtractCommand
}

// NewCommands creates all commands with dependencies. app.Config is filled
// in place once flags are parsed, so dependencies holding it see the final values.
// newDriver builds the browser driver for run.
func NewCommands(app *cli.App, newDriver DriverFactory) *Commands {
	filter := cases.NewFilter()
	jsonStorage := storage.NewJSONStorage(app.Config)
	formatter := ui.NewFormatter(nil)
	failureViewer := ui.NewFailureViewer(jsonStorage)

	return &Commands{
		Run:      NewRunCommand(app, newDriver, filter, jsonStorage, formatter, failureViewer),
		List:     NewListCommand(app, filter, formatter, jsonStorage),
		Migrate:  NewMigrateCommand(app),
		Failures: NewFailuresCommand(jsonStorage, failureViewer),
		Extract:  NewExtractCommand(app),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, app *cli.App) {
	rootCmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "Config file (default ./swiftcheck.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&flags.EnvFile, "env-file", config.DefaultEnvFile, "Dotenv file loaded before reading SWIFTCHECK_* variables")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String(config.KeyOutputDir, config.DefaultOutputJSONDir, "Directory of the results file")
	rootCmd.PersistentFlags().String(config.KeyOutputFile, config.DefaultOutputJSONFile, "Name of the results file")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.Load(cmd, flags)
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		app.Sync()
	}

	// Run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the translation cases against the translator",
		Long:  "Drive the translator UI for every case, extract the rendered Sinhala output and compare it with the expected text",
		RunE:  c.Run.Execute,
	}
	rf := runCmd.Flags()
	rf.IntP(config.KeyWorkers, "p", config.DefaultWorkers, "Number of cases evaluated in parallel")
	rf.StringVarP(&flags.Filter, "filter", "f", "", "Filter cases by label pattern (supports wildcards, e.g., 'Test 1*')")
	rf.String(config.KeyCases, "", "YAML cases file (default: the embedded suite)")
	rf.String(config.KeyEndpoint, config.DefaultEndpoint, "Translator URL")
	rf.String(config.KeyInputSelector, config.DefaultInputSelector, "CSS selector of the input control")
	rf.String(config.KeyAnchor, config.DefaultAnchor, "Label preceding the translated output")
	rf.StringSlice(config.KeyTerminators, config.DefaultTerminators, "Labels that end the translated output")
	rf.String(config.KeySettle, config.DefaultSettle, "Settle strategy: fixed or polling")
	rf.Duration(config.KeySettleDelay, config.DefaultSettleDelay, "Wait before reading the page (fixed)")
	rf.Duration(config.KeyPollInterval, config.DefaultPollInterval, "Time between page reads (polling)")
	rf.Duration(config.KeyPollTimeout, config.DefaultPollTimeout, "Upper bound on the settle wait (polling)")
	rf.Duration(config.KeyCaseTimeout, config.DefaultCaseTimeout, "Upper bound on a whole case")
	rf.Duration(config.KeyNavigationTimeout, config.DefaultNavigationTimeout, "Upper bound on page load and element lookup")
	rf.Bool(config.KeyHeadless, true, "Run the browser headless")
	rf.String(config.KeyBrowserBin, "", "Browser binary (default: found or downloaded by rod)")
	rf.String(config.KeyDebuggerURL, "", "Connect to a running browser instead of launching one")
	rf.StringSlice(config.KeyBrowserArgs, nil, "Extra browser launch flags, e.g. no-sandbox or lang=si")
	rf.String(config.KeyHistoryDSN, "", "MySQL DSN of the run history (empty disables history)")
	rf.BoolVar(&flags.FailFast, "fail-fast", false, "Stop on first case failure")
	rf.BoolVar(&flags.OnlyFailed, "failed", false, "Run only cases that failed in the last run (from the results file)")
	rf.BoolVar(&flags.OpenFailures, "open-failures", false, "Open the failures viewer when the run finishes with failures")
	rf.BoolVar(&flags.NoProgress, "no-progress", false, "Disable the progress bar")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the translation cases",
		Long:  "List the cases of the suite without executing them",
		RunE:  c.List.Execute,
	}
	listCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Filter cases by label pattern (supports wildcards, e.g., 'Test 1*')")
	listCmd.Flags().String(config.KeyCases, "", "YAML cases file (default: the embedded suite)")
	listCmd.Flags().BoolVarP(&flags.ShowIO, "show-io", "c", false, "Show the input and expected output of each case")
	rootCmd.AddCommand(listCmd)

	// Migrate command
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the run history database",
		Long:  "Create the MySQL database named in the history DSN and its tables",
		RunE:  c.Migrate.Execute,
	}
	migrateCmd.Flags().String(config.KeyHistoryDSN, "", "MySQL DSN of the run history")
	migrateCmd.Flags().Duration("timeout", 30*time.Second, "Upper bound on the migration")
	rootCmd.AddCommand(migrateCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:     "failures",
		Aliases: []string{"faills"},
		Short:   "View case failures interactively",
		Long:    "Display case failures from the last run in an interactive viewer",
		RunE:    c.Failures.Execute,
	}
	rootCmd.AddCommand(failuresCmd)

	// Extract command
	extractCmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Extract the translation from saved page text",
		Long:  "Read page text from a file (or stdin) and print what the extractor finds, to check anchor and terminators against a changed UI",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.Extract.Execute,
	}
	extractCmd.Flags().String(config.KeyAnchor, config.DefaultAnchor, "Label preceding the translated output")
	extractCmd.Flags().StringSlice(config.KeyTerminators, config.DefaultTerminators, "Labels that end the translated output")
	rootCmd.AddCommand(extractCmd)
}
