package xactxml

import (
	"fjacquet/xact-rollup/internal/logging"
	"fjacquet/xact-rollup/internal/models"
	"fjacquet/xact-rollup/internal/parser"
)

// Adapter implements the parser.EstimateParser interface for estimate XML files.
type Adapter struct {
	parser.BaseParser
}

// NewAdapter creates a new adapter for the xactxml parser.
func NewAdapter(logger logging.Logger) *Adapter {
	return &Adapter{
		BaseParser: parser.NewBaseParser(logger),
	}
}

// ParseFile implements parser.EstimateParser.ParseFile
// by delegating to the package-level function.
func (a *Adapter) ParseFile(filePath string) (*models.Estimate, error) {
	return ParseFileWithLogger(filePath, a.GetLogger())
}

// ValidateFormat implements parser.EstimateParser.ValidateFormat
// by delegating to the package-level function.
func (a *Adapter) ValidateFormat(filePath string) (bool, error) {
	return ValidateFormatWithLogger(filePath, a.GetLogger())
}

// ConvertToCSV implements parser.EstimateParser.ConvertToCSV
// by delegating to the package-level function.
func (a *Adapter) ConvertToCSV(inputFile, outputFile string) error {
	return ConvertToCSV(inputFile, outputFile)
}
