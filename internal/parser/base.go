// Package parser provides the base parser functionality and common interfaces.
package parser

import (
	"fjacquet/xact-rollup/internal/common"
	"fjacquet/xact-rollup/internal/logging"
	"fjacquet/xact-rollup/internal/models"
)

// BaseParser provides common functionality for all parser implementations.
// It implements the LoggerConfigurable interface and provides shared methods
// that eliminate code duplication across different parser types.
//
// Parsers should embed BaseParser to inherit common functionality:
//
//	type MyParser struct {
//		BaseParser
//		// parser-specific fields
//	}
type BaseParser struct {
	logger logging.Logger
}

// NewBaseParser creates a new BaseParser instance with the provided logger.
// If logger is nil, a default logger will be used.
func NewBaseParser(logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.GetLogger()
	}

	return BaseParser{
		logger: logger,
	}
}

// SetLogger implements the LoggerConfigurable interface.
func (b *BaseParser) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// GetLogger returns the current logger instance.
// This is a helper method for parser implementations to access the logger.
func (b *BaseParser) GetLogger() logging.Logger {
	return b.logger
}

// WriteToCSV provides common CSV writing functionality for all parsers.
// This method uses the standardized WriteLineItemsToCSV function from the
// common package to ensure consistent CSV output format across all parsers.
func (b *BaseParser) WriteToCSV(items []models.LineItem, csvFile string) error {
	b.logger.Info("Writing line items to CSV using common writer",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(items)})

	return common.WriteLineItemsToCSV(items, csvFile)
}
