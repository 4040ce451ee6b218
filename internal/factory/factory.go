package factory

import (
	"io"
	"path/filepath"
	"strings"

	"fjacquet/xact-rollup/internal/csvestimate"
	"fjacquet/xact-rollup/internal/jsonestimate"
	"fjacquet/xact-rollup/internal/logging"
	"fjacquet/xact-rollup/internal/models"
	"fjacquet/xact-rollup/internal/parser"
	"fjacquet/xact-rollup/internal/parsererror"
	"fjacquet/xact-rollup/internal/xactxml"
	"fjacquet/xact-rollup/internal/xlsxestimate"
)

// ParserType defines the types of parsers available.
type ParserType string

const (
	CSV  ParserType = models.FormatCSV
	JSON ParserType = models.FormatJSON
	XLSX ParserType = models.FormatXLSX
	XML  ParserType = models.FormatXML
)

// ParseType normalizes a user-supplied format name to a ParserType.
func ParseType(format string) (ParserType, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case string(CSV):
		return CSV, nil
	case string(JSON):
		return JSON, nil
	case string(XLSX):
		return XLSX, nil
	case string(XML):
		return XML, nil
	default:
		return "", &parsererror.UnsupportedFormatError{Format: format}
	}
}

// DetectType infers the parser type from a file's extension.
func DetectType(filePath string) (ParserType, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filePath)), ".")
	if ext == "" {
		return "", &parsererror.UnsupportedFormatError{Format: filePath}
	}
	return ParseType(ext)
}

// GetParser returns a new instance of the appropriate parser for the given type.
// It acts as a factory for creating EstimateParser implementations.
// Deprecated: Use GetParserWithLogger instead for dependency injection.
func GetParser(parserType ParserType) (parser.EstimateParser, error) {
	logger := logging.GetLogger()
	return GetParserWithLogger(parserType, logger)
}

// GetParserWithLogger returns a new instance of the appropriate parser for the given type
// with the provided logger for dependency injection.
func GetParserWithLogger(parserType ParserType, logger logging.Logger) (parser.EstimateParser, error) {
	switch parserType {
	case CSV:
		return csvestimate.NewAdapter(logger), nil
	case JSON:
		return jsonestimate.NewAdapter(logger), nil
	case XLSX:
		return xlsxestimate.NewAdapter(logger), nil
	case XML:
		return xactxml.NewAdapter(logger), nil
	default:
		return nil, &parsererror.UnsupportedFormatError{Format: string(parserType)}
	}
}

// GetParserForFile returns a parser for the given file, honoring an explicit
// format override when provided and falling back to the file extension.
func GetParserForFile(filePath, format string, logger logging.Logger) (parser.EstimateParser, error) {
	var (
		parserType ParserType
		err        error
	)
	if strings.TrimSpace(format) != "" {
		parserType, err = ParseType(format)
	} else {
		parserType, err = DetectType(filePath)
	}
	if err != nil {
		return nil, err
	}

	return GetParserWithLogger(parserType, logger)
}

// ParseReader parses an estimate straight from a reader, for callers that
// hold the content in memory rather than on disk (file uploads).
func ParseReader(parserType ParserType, r io.Reader, logger logging.Logger) (*models.Estimate, error) {
	switch parserType {
	case CSV:
		return csvestimate.Parse(r, logger)
	case JSON:
		return jsonestimate.Parse(r, logger)
	case XLSX:
		return xlsxestimate.Parse(r, logger)
	case XML:
		return xactxml.Parse(r, logger)
	default:
		return nil, &parsererror.UnsupportedFormatError{Format: string(parserType)}
	}
}
