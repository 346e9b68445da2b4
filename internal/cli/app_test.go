package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"swiftcheck/internal/config"
)

func newCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{Use: "run", RunE: func(*cobra.Command, []string) error { return nil }}
	cmd.Flags().StringVar(&flags.ConfigFile, "config", "", "")
	cmd.Flags().StringVar(&flags.EnvFile, "env-file", "", "")
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "")
	cmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "")
	cmd.Flags().IntP(config.KeyWorkers, "p", config.DefaultWorkers, "")
	cmd.Flags().String(config.KeySettle, config.DefaultSettle, "")
	cmd.Flags().Duration(config.KeySettleDelay, config.DefaultSettleDelay, "")
	return cmd
}

func TestAppLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "swiftcheck.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("workers: 3\nsettle: polling\nsettle-delay: 2s\n"), 0o644))
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SWIFTCHECK_SETTLE_DELAY=4s\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("SWIFTCHECK_SETTLE_DELAY") })

	var flags Flags
	cmd := newCommand(&flags)
	require.NoError(t, cmd.ParseFlags([]string{"--config", cfgFile, "--env-file", envFile, "-p", "5", "-f", "Test 1*"}))

	app := NewApp()
	cfgPtr := app.Config
	require.NoError(t, app.Load(cmd, &flags))
	defer app.Sync()

	require.Same(t, cfgPtr, app.Config, "Load must fill the config in place")
	require.Equal(t, 5, app.Config.Workers, "flag wins over file")
	require.Equal(t, 4*time.Second, app.Config.SettleDelay, "env wins over file")
	require.Equal(t, "polling", app.Config.Settle, "file wins over default")
	require.Equal(t, config.DefaultEndpoint, app.Config.Endpoint)
	require.Equal(t, "Test 1*", app.Config.Flags.Filter)
}

func TestAppLoadMissingConfigFile(t *testing.T) {
	var flags Flags
	cmd := newCommand(&flags)
	require.NoError(t, cmd.ParseFlags([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml")}))

	err := NewApp().Load(cmd, &flags)
	require.Error(t, err)
	require.Contains(t, err.Error(), "read config")
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(true)
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(-1), "verbose logger should enable debug")

	logger, err = NewLogger(false)
	require.NoError(t, err)
	require.False(t, logger.Core().Enabled(-1))
}
