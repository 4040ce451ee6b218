// Package csvestimate parses line-item CSV exports of insurance estimates.
// Rows use the standard wire columns (line_number, room, description,
// quantity, unit, unit_price, tax, o_and_p, rcv, depreciation, acv); a
// category column is accepted so previously exported files can be read back.
package csvestimate

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"fjacquet/xact-rollup/internal/common"
	"fjacquet/xact-rollup/internal/currencyutils"
	"fjacquet/xact-rollup/internal/logging"
	"fjacquet/xact-rollup/internal/models"
	"fjacquet/xact-rollup/internal/parsererror"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// EstimateCSVRow represents a single row in an estimate CSV file.
// All cells stay strings so malformed values can be coerced instead of
// failing the unmarshal.
type EstimateCSVRow struct {
	LineNumber   string `csv:"line_number"`
	Room         string `csv:"room"`
	Description  string `csv:"description"`
	Quantity     string `csv:"quantity"`
	Unit         string `csv:"unit"`
	UnitPrice    string `csv:"unit_price"`
	Tax          string `csv:"tax"`
	OAndP        string `csv:"o_and_p"`
	RCV          string `csv:"rcv"`
	Depreciation string `csv:"depreciation"`
	ACV          string `csv:"acv"`
	Category     string `csv:"category"`
}

// requiredColumns are the headers a file must carry to be treated as an
// estimate CSV. The remaining wire columns are optional and default to zero.
var requiredColumns = []string{"description", "quantity", "unit", "rcv"}

// Parse parses estimate CSV data from an io.Reader and returns the estimate.
func Parse(r io.Reader, logger logging.Logger) (*models.Estimate, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	logger.Info("Parsing estimate CSV from reader")

	reader := csv.NewReader(r)
	reader.Comma = common.Delimiter

	var rows []*EstimateCSVRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		logger.WithError(err).Error("Failed to read estimate CSV from reader")
		return nil, fmt.Errorf("error reading estimate CSV: %w", err)
	}

	estimate := buildEstimate(rows, logger)
	estimate.Format = models.FormatCSV

	logger.Info("Successfully parsed estimate CSV",
		logging.Field{Key: logging.FieldCount, Value: len(estimate.LineItems)})
	return estimate, nil
}

// ParseFile parses an estimate CSV file and returns the estimate it contains.
// This is the main entry point for parsing estimate CSV files.
func ParseFile(filePath string) (*models.Estimate, error) {
	return ParseFileWithLogger(filePath, nil)
}

// ParseFileWithLogger parses an estimate CSV file with the provided logger.
func ParseFileWithLogger(filePath string, logger logging.Logger) (*models.Estimate, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	logger.WithField(logging.FieldFile, filePath).Info("Parsing estimate CSV file")

	// Check if the file format is valid
	valid, err := ValidateFormatWithLogger(filePath, logger)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	if !valid {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       filePath,
			ExpectedFormat: "estimate CSV",
			Msg:            "required columns missing",
		}
	}

	rowPtrs, err := common.ReadCSVFile[EstimateCSVRow](filePath, logger)
	if err != nil {
		logger.WithError(err).Error("Failed to read estimate CSV file")
		return nil, fmt.Errorf("error reading estimate CSV: %w", err)
	}

	rows := make([]*EstimateCSVRow, 0, len(rowPtrs))
	for i := range rowPtrs {
		rows = append(rows, &rowPtrs[i])
	}

	estimate := buildEstimate(rows, logger)
	estimate.SourceFile = filePath
	estimate.Format = models.FormatCSV

	logger.Info("Successfully parsed estimate CSV file",
		logging.Field{Key: logging.FieldCount, Value: len(estimate.LineItems)})
	return estimate, nil
}

// buildEstimate converts raw CSV rows into line items, skipping fully empty
// rows and coercing malformed numerics to zero with a recorded warning.
// CSV files carry no document header, so the header stays empty.
func buildEstimate(rows []*EstimateCSVRow, logger logging.Logger) *models.Estimate {
	items := make([]models.LineItem, 0, len(rows))
	warnings := make([]string, 0)

	for i, row := range rows {
		if row == nil || isEmptyRow(*row) {
			continue
		}

		item := convertRowToLineItem(*row, i+1, &warnings)
		items = append(items, item)
	}

	if len(warnings) > 0 {
		logger.Warn("Coerced malformed values while parsing estimate CSV",
			logging.Field{Key: logging.FieldCount, Value: len(warnings)})
	}

	return &models.Estimate{
		LineItems: items,
		Warnings:  warnings,
	}
}

// isEmptyRow reports whether the row carries no usable content. Extraction
// tools pad sheets with blank separator rows; those are not line items.
func isEmptyRow(row EstimateCSVRow) bool {
	return strings.TrimSpace(row.Description) == "" &&
		strings.TrimSpace(row.Quantity) == "" &&
		strings.TrimSpace(row.UnitPrice) == "" &&
		strings.TrimSpace(row.RCV) == ""
}

// convertRowToLineItem converts an EstimateCSVRow to a LineItem. The ordinal
// is used when the line_number cell is absent or unusable.
func convertRowToLineItem(row EstimateCSVRow, ordinal int, warnings *[]string) models.LineItem {
	lineNumber := ordinal
	if raw := strings.TrimSpace(row.LineNumber); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			lineNumber = n
		}
	}

	quantity := coerceCell("quantity", row.Quantity, lineNumber, warnings)
	unitPrice := coerceCell("unit_price", row.UnitPrice, lineNumber, warnings)
	tax := coerceCell("tax", row.Tax, lineNumber, warnings)
	oAndP := coerceCell("o_and_p", row.OAndP, lineNumber, warnings)
	rcv := coerceCell("rcv", row.RCV, lineNumber, warnings)
	depreciation := coerceCell("depreciation", row.Depreciation, lineNumber, warnings)

	// An absent acv cell is derived from rcv - depreciation; a malformed one
	// is coerced like any other amount.
	var acv decimal.Decimal
	if strings.TrimSpace(row.ACV) == "" {
		acv = rcv.Sub(depreciation)
	} else {
		acv = coerceCell("acv", row.ACV, lineNumber, warnings)
	}

	return models.LineItem{
		LineNumber:   lineNumber,
		Room:         strings.TrimSpace(row.Room),
		Description:  strings.TrimSpace(row.Description),
		Quantity:     quantity,
		Unit:         strings.TrimSpace(row.Unit),
		UnitPrice:    unitPrice,
		Tax:          tax,
		OAndP:        oAndP,
		RCV:          rcv,
		Depreciation: depreciation,
		ACV:          acv,
		Category:     strings.TrimSpace(row.Category),
	}
}

// coerceCell parses a monetary or quantity cell. Empty cells default to zero
// silently; non-empty unparseable cells are coerced to zero and recorded.
func coerceCell(field, raw string, lineNumber int, warnings *[]string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}

	amount, ok := currencyutils.CoerceAmount(raw)
	if !ok {
		*warnings = append(*warnings,
			fmt.Sprintf("line %d: %s value %q coerced to zero", lineNumber, field, raw))
	}
	return amount
}

// ValidateFormat checks if the file is a valid estimate CSV file.
func ValidateFormat(filePath string) (bool, error) {
	return ValidateFormatWithLogger(filePath, nil)
}

// ValidateFormatWithLogger checks if the file is a valid estimate CSV file with logger.
func ValidateFormatWithLogger(filePath string, logger logging.Logger) (bool, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	logger.Info("Validating estimate CSV format",
		logging.Field{Key: logging.FieldFile, Value: filePath})

	file, err := os.Open(filePath) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		logger.WithError(err).Error("Failed to open file for validation")
		return false, &parsererror.FileError{Path: filePath, Op: "open", Err: err}
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	reader := csv.NewReader(file)
	reader.Comma = common.Delimiter

	// Read header
	header, err := reader.Read()
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		logger.WithError(err).Error("Failed to read CSV header")
		return false, nil
	}

	// Check if required columns exist, header case does not matter
	columnMap := make(map[string]bool, len(header))
	for _, col := range header {
		columnMap[strings.ToLower(strings.TrimSpace(col))] = true
	}

	for _, required := range requiredColumns {
		if !columnMap[required] {
			logger.Info("Required column not found",
				logging.Field{Key: "column", Value: required})
			return false, nil
		}
	}

	return true, nil
}

// ConvertToCSV converts an estimate CSV file to the standard CSV format.
// This is a convenience function that combines ParseFile and the common writer.
func ConvertToCSV(inputFile, outputFile string) error {
	return common.GeneralizedConvertToCSV(inputFile, outputFile, ParseFile, ValidateFormat)
}
