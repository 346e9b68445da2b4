package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"swiftcheck/internal/config"
)

// App carries what every command needs once flags are parsed
type App struct {
	Config *config.Config
	Logger *zap.Logger
}

// NewApp returns an App with default configuration and a no-op logger
func NewApp() *App {
	return &App{Config: config.New(), Logger: zap.NewNop()}
}

// Load builds the configuration for cmd: .env first, then the optional
// config file, SWIFTCHECK_* variables and the command's flags.
func (a *App) Load(cmd *cobra.Command, flags *Flags) error {
	envFile := flags.EnvFile
	if envFile == "" {
		envFile = config.DefaultEnvFile
	}
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}

	v := config.NewViper()
	if err := config.ReadFile(v, flags.ConfigFile); err != nil {
		return err
	}
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}

	cfg := config.FromViper(v)
	cfg.Flags = flags.ToConfigFlags()
	*a.Config = *cfg

	logger, err := NewLogger(flags.Verbose)
	if err != nil {
		return err
	}
	a.Logger = logger
	a.Logger.Debug("configuration loaded",
		zap.String("config_file", v.ConfigFileUsed()),
		zap.String("endpoint", cfg.Endpoint),
		zap.String("settle", cfg.Settle),
		zap.Int("workers", cfg.Workers),
	)
	return nil
}

// Sync flushes buffered log entries
func (a *App) Sync() {
	_ = a.Logger.Sync()
}

// NewLogger builds the process logger. Verbose switches to debug level.
func NewLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
