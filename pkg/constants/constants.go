// Package constants provides shared constants for the feasibility application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12.0

	// DiscountRate is the fixed annual discount rate used by the NPV approximation
	DiscountRate = 0.10

	// DefaultEffectivePeriodMonths is the denominator period used by the payback
	// approximation when both timeline fields are zero
	DefaultEffectivePeriodMonths = 12.0

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
)

// Storage constants
const (
	// StorageNamespace is the single key under which the study collection is persisted
	StorageNamespace = "feasibility-studies"

	// DefaultStoragePath is the default file store location
	DefaultStoragePath = "data/studies.json"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for imported workbooks (10 MB)
	DefaultMaxUploadSizeBytes int64 = 10 * 1024 * 1024
)
