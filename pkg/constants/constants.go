// Package constants provides shared constants for the feasibility application.
package constants

// DateTimeLayout is the format expected for scenario start dates in config
// files and is also the machine-readable month format in CSV output.
const DateTimeLayout = "2006-01"

// MonthLabelLayout is the human month/year label attached to cashflow rows.
const MonthLabelLayout = "Jan 2006"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DefaultProjectLengthMonths is the cashflow horizon used when a scenario
	// does not set one
	DefaultProjectLengthMonths = 24

	// MaxProjectLengthMonths is the longest horizon the validator accepts
	// without a warning and the default cap applied by the server
	MaxProjectLengthMonths = 600

	// DefaultQuantity is the line item multiplier used when none is given
	DefaultQuantity = 1

	// DefaultSpanMonths is the cashflow span used when none is given
	DefaultSpanMonths = 1

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100
)

// GST constants
const (
	// GSTRatePercent is the flat goods and services tax rate
	GSTRatePercent = 10

	// MarginSchemeDivisor converts a GST-inclusive margin into its GST
	// component (1/11th for a 10% rate)
	MarginSchemeDivisor = 11
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatXLSX writes an Excel workbook to a file
	OutputFormatXLSX = "xlsx"

	// OutputFormatPDF writes a PDF report to a file
	OutputFormatPDF = "pdf"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// EnvServerAddress overrides the server listen address
	EnvServerAddress = "FEASIBILITY_ADDRESS"

	// EnvLogLevel overrides the server log level
	EnvLogLevel = "FEASIBILITY_LOG_LEVEL"

	// EnvMaxUploadSize overrides the upload size limit, e.g. "512K"
	EnvMaxUploadSize = "FEASIBILITY_MAX_UPLOAD_SIZE"

	// EnvMaxProjectMonths overrides the longest horizon the server evaluates
	EnvMaxProjectMonths = "FEASIBILITY_MAX_PROJECT_MONTHS"

	// RequestIDHeader carries the per-request identifier on responses
	RequestIDHeader = "X-Request-ID"
)
