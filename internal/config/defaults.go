package config

import "time"

const (
	// DefaultEndpoint is the translator page under test
	DefaultEndpoint = "https://www.swifttranslator.com/"
	// DefaultInputSelector locates the Singlish input control
	DefaultInputSelector = "textarea"
	// DefaultAnchor precedes the Sinhala output in the page text
	DefaultAnchor = "Sinhala"
	// DefaultSettle is the settle strategy name
	DefaultSettle = "fixed"
	// DefaultSettleDelay matches the service's observed latency
	DefaultSettleDelay = 6 * time.Second
	// DefaultPollInterval is the time between reads of the polling strategy
	DefaultPollInterval = 500 * time.Millisecond
	// DefaultPollTimeout bounds the polling strategy
	DefaultPollTimeout = 15 * time.Second
	// DefaultWorkers runs cases sequentially
	DefaultWorkers = 1
	// DefaultCaseTimeout bounds one whole case
	DefaultCaseTimeout = 60 * time.Second
	// DefaultNavigationTimeout bounds page loads and element lookups
	DefaultNavigationTimeout = 30 * time.Second
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "run-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "storage"
	// DefaultEnvFile is loaded before environment variables are read
	DefaultEnvFile = ".env"
	// EnvPrefix prefixes every environment variable
	EnvPrefix = "SWIFTCHECK"
)

// DefaultTerminators close the output region in the page text
var DefaultTerminators = []string{"🔁", "Clear", "English"}
