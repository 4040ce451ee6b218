package parser

import (
	"fjacquet/xact-rollup/internal/logging"
	"fjacquet/xact-rollup/internal/models"
)

// EstimateParser defines the interface for all estimate parser implementations.
// One implementation exists per source format; the factory package selects one
// from the file extension or an explicit format flag.
type EstimateParser interface {
	// ParseFile reads the file at the given path and returns the estimate it
	// contains. Implementations return the typed errors from
	// internal/parsererror for format and extraction failures; malformed
	// values inside a row are coerced and recorded as estimate warnings
	// instead of failing the file.
	ParseFile(filePath string) (*models.Estimate, error)

	// ValidateFormat reports whether the file looks like this parser's
	// format. A false result without error means the file is readable but
	// belongs to another parser.
	ValidateFormat(filePath string) (bool, error)

	// ConvertToCSV parses the input file and writes its line items to the
	// standard CSV layout.
	ConvertToCSV(inputFile, outputFile string) error

	// SetLogger configures the parser's logging instance.
	SetLogger(logger logging.Logger)
}

// LoggerConfigurable is implemented by components whose logger can be swapped
// after construction.
type LoggerConfigurable interface {
	SetLogger(logger logging.Logger)
}
