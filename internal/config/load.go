package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Keys shared by viper, environment variables and flag names
const (
	KeyEndpoint          = "endpoint"
	KeyInputSelector     = "input-selector"
	KeyAnchor            = "anchor"
	KeyTerminators       = "terminators"
	KeySettle            = "settle"
	KeySettleDelay       = "settle-delay"
	KeyPollInterval      = "poll-interval"
	KeyPollTimeout       = "poll-timeout"
	KeyWorkers           = "workers"
	KeyCaseTimeout       = "case-timeout"
	KeyNavigationTimeout = "navigation-timeout"
	KeyHeadless          = "headless"
	KeyBrowserBin        = "browser-bin"
	KeyDebuggerURL       = "debugger-url"
	KeyBrowserArgs       = "browser-args"
	KeyCases             = "cases"
	KeyOutputFile        = "output-file"
	KeyOutputDir         = "output-dir"
	KeyHistoryDSN        = "history-dsn"
)

// LoadDotEnv loads a .env file into the process environment. A missing file
// is not an error; variables already set win over the file.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// NewViper returns a viper instance with defaults and SWIFTCHECK_* env binding
func NewViper() *viper.Viper {
	d := New()
	v := viper.New()
	v.SetDefault(KeyEndpoint, d.Endpoint)
	v.SetDefault(KeyInputSelector, d.InputSelector)
	v.SetDefault(KeyAnchor, d.Anchor)
	v.SetDefault(KeyTerminators, d.Terminators)
	v.SetDefault(KeySettle, d.Settle)
	v.SetDefault(KeySettleDelay, d.SettleDelay)
	v.SetDefault(KeyPollInterval, d.PollInterval)
	v.SetDefault(KeyPollTimeout, d.PollTimeout)
	v.SetDefault(KeyWorkers, d.Workers)
	v.SetDefault(KeyCaseTimeout, d.CaseTimeout)
	v.SetDefault(KeyNavigationTimeout, d.NavigationTimeout)
	v.SetDefault(KeyHeadless, d.Headless)
	v.SetDefault(KeyOutputFile, d.OutputJSONFile)
	v.SetDefault(KeyOutputDir, d.OutputJSONDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile merges an optional config file. With an empty path viper looks
// for swiftcheck.yaml in the working directory and tolerates its absence.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName("swiftcheck")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// BindFlags binds every flag in fs whose name is a config key
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		err = v.BindPFlag(f.Name, f)
	})
	return err
}

// FromViper builds a Config from the layered settings. Flags are left empty.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Endpoint:          v.GetString(KeyEndpoint),
		InputSelector:     v.GetString(KeyInputSelector),
		Anchor:            v.GetString(KeyAnchor),
		Terminators:       stringSlice(v, KeyTerminators),
		Settle:            v.GetString(KeySettle),
		SettleDelay:       v.GetDuration(KeySettleDelay),
		PollInterval:      v.GetDuration(KeyPollInterval),
		PollTimeout:       v.GetDuration(KeyPollTimeout),
		Workers:           v.GetInt(KeyWorkers),
		CaseTimeout:       v.GetDuration(KeyCaseTimeout),
		NavigationTimeout: v.GetDuration(KeyNavigationTimeout),
		Headless:          v.GetBool(KeyHeadless),
		BrowserBin:        v.GetString(KeyBrowserBin),
		DebuggerURL:       v.GetString(KeyDebuggerURL),
		BrowserArgs:       stringSlice(v, KeyBrowserArgs),
		CasesFile:         v.GetString(KeyCases),
		OutputJSONFile:    v.GetString(KeyOutputFile),
		OutputJSONDir:     v.GetString(KeyOutputDir),
		HistoryDSN:        v.GetString(KeyHistoryDSN),
	}
}

// stringSlice reads a list key. Environment variables arrive as a single
// string and are split on commas, matching the flag syntax.
func stringSlice(v *viper.Viper, key string) []string {
	raw, ok := v.Get(key).(string)
	if !ok {
		return v.GetStringSlice(key)
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
