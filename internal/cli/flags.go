package cli

import "swiftcheck/internal/config"

// Flags holds command-line flags that are not configuration keys.
// Configuration flags (endpoint, workers, settle, ...) are bound through viper.
type Flags struct {
	ConfigFile   string
	EnvFile      string
	Verbose      bool
	Filter       string
	FailFast     bool
	OnlyFailed   bool
	OpenFailures bool
	NoProgress   bool
	ShowIO       bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Filter:       f.Filter,
		FailFast:     f.FailFast,
		OnlyFailed:   f.OnlyFailed,
		OpenFailures: f.OpenFailures,
		NoProgress:   f.NoProgress,
		ShowIO:       f.ShowIO,
		Verbose:      f.Verbose,
	}
}
