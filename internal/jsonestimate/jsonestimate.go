// Package jsonestimate parses the extraction collaborator's JSON payload:
// an object with a header block and a line_items array. A previously
// produced response document carries the same two keys at its top level, so
// repricing can feed one straight back in; the derived fields it also
// carries (categories, totals, metadata) are ignored.
package jsonestimate

import (
	"encoding/json"
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
	"fjacquet/xact-rollup/internal/textutils"

	"github.com/shopspring/decimal"
)

// jsonPayload is the tolerant decode shape. Numeric cells stay raw so
// malformed values can be coerced instead of failing the whole document.
type jsonPayload struct {
	Header    *jsonHeader    `json:"header"`
	LineItems []jsonLineItem `json:"line_items"`
}

type jsonHeader struct {
	InsuredName     string          `json:"insured_name"`
	PropertyAddress string          `json:"property_address"`
	ClaimNumber     string          `json:"claim_number"`
	PolicyNumber    string          `json:"policy_number"`
	DateOfLoss      string          `json:"date_of_loss"`
	Deductible      json.RawMessage `json:"deductible"`
}

type jsonLineItem struct {
	LineNumber   json.RawMessage `json:"line_number"`
	Room         string          `json:"room"`
	Description  string          `json:"description"`
	Quantity     json.RawMessage `json:"quantity"`
	Unit         string          `json:"unit"`
	UnitPrice    json.RawMessage `json:"unit_price"`
	Tax          json.RawMessage `json:"tax"`
	OAndP        json.RawMessage `json:"o_and_p"`
	RCV          json.RawMessage `json:"rcv"`
	Depreciation json.RawMessage `json:"depreciation"`
	ACV          json.RawMessage `json:"acv"`
	Category     string          `json:"category"`
}

// Parse parses estimate JSON from an io.Reader and returns the estimate.
func Parse(r io.Reader, logger logging.Logger) (*models.Estimate, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	logger.Info("Parsing estimate JSON from reader")

	var payload jsonPayload
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		logger.WithError(err).Error("Failed to decode estimate JSON")
		return nil, fmt.Errorf("error decoding estimate JSON: %w", err)
	}

	estimate := buildEstimate(&payload, logger)
	estimate.Format = models.FormatJSON

	logger.Info("Successfully parsed estimate JSON",
		logging.Field{Key: logging.FieldCount, Value: len(estimate.LineItems)})
	return estimate, nil
}

// ParseFile parses an estimate JSON file and returns the estimate it contains.
// This is the main entry point for parsing estimate JSON files.
func ParseFile(filePath string) (*models.Estimate, error) {
	return ParseFileWithLogger(filePath, nil)
}

// ParseFileWithLogger parses an estimate JSON file with the provided logger.
func ParseFileWithLogger(filePath string, logger logging.Logger) (*models.Estimate, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	logger.WithField(logging.FieldFile, filePath).Info("Parsing estimate JSON file")

	// Check if the file format is valid
	valid, err := ValidateFormatWithLogger(filePath, logger)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	if !valid {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       filePath,
			ExpectedFormat: "estimate JSON",
			Msg:            "line_items key missing",
		}
	}

	data, err := os.ReadFile(filePath) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		logger.WithError(err).Error("Failed to read estimate JSON file")
		return nil, &parsererror.FileError{Path: filePath, Op: "read", Err: err}
	}

	var payload jsonPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		logger.WithError(err).Error("Failed to decode estimate JSON")
		return nil, fmt.Errorf("error decoding estimate JSON: %w", err)
	}

	estimate := buildEstimate(&payload, logger)
	estimate.SourceFile = filePath
	estimate.Format = models.FormatJSON

	logger.Info("Successfully parsed estimate JSON file",
		logging.Field{Key: logging.FieldCount, Value: len(estimate.LineItems)})
	return estimate, nil
}

// buildEstimate converts the decoded payload into line items, coercing
// malformed numerics to zero with a recorded warning.
func buildEstimate(payload *jsonPayload, logger logging.Logger) *models.Estimate {
	items := make([]models.LineItem, 0, len(payload.LineItems))
	warnings := make([]string, 0)

	header := convertHeader(payload.Header, &warnings)

	for i, raw := range payload.LineItems {
		items = append(items, convertLineItem(raw, i+1, &warnings))
	}

	if len(warnings) > 0 {
		logger.Warn("Coerced malformed values while parsing estimate JSON",
			logging.Field{Key: logging.FieldCount, Value: len(warnings)})
	}

	return &models.Estimate{
		Header:    header,
		LineItems: items,
		Warnings:  warnings,
	}
}

func convertHeader(h *jsonHeader, warnings *[]string) models.EstimateHeader {
	if h == nil {
		return models.EstimateHeader{}
	}

	deductible, ok := decodeAmount(h.Deductible)
	if !ok {
		*warnings = append(*warnings,
			fmt.Sprintf("header: deductible value %q coerced to zero", displayValue(h.Deductible)))
		deductible = decimal.Zero
	}

	return models.EstimateHeader{
		InsuredName:     strings.TrimSpace(h.InsuredName),
		PropertyAddress: strings.TrimSpace(h.PropertyAddress),
		ClaimNumber:     strings.TrimSpace(h.ClaimNumber),
		PolicyNumber:    strings.TrimSpace(h.PolicyNumber),
		DateOfLoss:      textutils.NormalizeDate(h.DateOfLoss),
		Deductible:      deductible,
	}
}

// convertLineItem converts a decoded payload item to a LineItem. The ordinal
// is used when the line_number value is absent or unusable.
func convertLineItem(raw jsonLineItem, ordinal int, warnings *[]string) models.LineItem {
	lineNumber := resolveLineNumber(raw.LineNumber, ordinal)

	quantity := coerceValue("quantity", raw.Quantity, lineNumber, warnings)
	unitPrice := coerceValue("unit_price", raw.UnitPrice, lineNumber, warnings)
	tax := coerceValue("tax", raw.Tax, lineNumber, warnings)
	oAndP := coerceValue("o_and_p", raw.OAndP, lineNumber, warnings)
	rcv := coerceValue("rcv", raw.RCV, lineNumber, warnings)
	depreciation := coerceValue("depreciation", raw.Depreciation, lineNumber, warnings)

	// An absent acv is derived from rcv - depreciation; a malformed one is
	// coerced like any other amount.
	var acv decimal.Decimal
	if isAbsent(raw.ACV) {
		acv = rcv.Sub(depreciation)
	} else {
		acv = coerceValue("acv", raw.ACV, lineNumber, warnings)
	}

	return models.LineItem{
		LineNumber:   lineNumber,
		Room:         strings.TrimSpace(raw.Room),
		Description:  strings.TrimSpace(raw.Description),
		Quantity:     quantity,
		Unit:         strings.TrimSpace(raw.Unit),
		UnitPrice:    unitPrice,
		Tax:          tax,
		OAndP:        oAndP,
		RCV:          rcv,
		Depreciation: depreciation,
		ACV:          acv,
		Category:     strings.TrimSpace(raw.Category),
	}
}

// isAbsent reports whether a raw JSON value was missing or null.
func isAbsent(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed == "" || trimmed == "null"
}

// coerceValue parses a monetary or quantity value. Absent values default to
// zero silently; present unparseable values are coerced and recorded.
func coerceValue(field string, raw json.RawMessage, lineNumber int, warnings *[]string) decimal.Decimal {
	amount, ok := decodeAmount(raw)
	if !ok {
		*warnings = append(*warnings,
			fmt.Sprintf("line %d: %s value %q coerced to zero", lineNumber, field, displayValue(raw)))
		return decimal.Zero
	}
	return amount
}

// decodeAmount interprets a raw JSON value as a decimal amount. It accepts
// bare numbers, numeric strings and currency-formatted strings. The second
// return is false when the value had to be coerced to zero.
func decodeAmount(raw json.RawMessage) (decimal.Decimal, bool) {
	if isAbsent(raw) {
		return decimal.Zero, true
	}

	var d decimal.Decimal
	if err := json.Unmarshal(raw, &d); err == nil {
		return d, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return currencyutils.CoerceAmount(s)
	}

	return decimal.Zero, false
}

// displayValue renders a raw JSON value for a warning message. Strings are
// shown without their JSON quotes.
func displayValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func resolveLineNumber(raw json.RawMessage, ordinal int) int {
	if isAbsent(raw) {
		return ordinal
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil && n > 0 {
		return n
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if parsed, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && parsed > 0 {
			return parsed
		}
	}

	return ordinal
}

// ValidateFormat checks if the file is a valid estimate JSON file.
func ValidateFormat(filePath string) (bool, error) {
	return ValidateFormatWithLogger(filePath, nil)
}

// ValidateFormatWithLogger checks if the file is a valid estimate JSON file with logger.
func ValidateFormatWithLogger(filePath string, logger logging.Logger) (bool, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	logger.Info("Validating estimate JSON format",
		logging.Field{Key: logging.FieldFile, Value: filePath})

	data, err := os.ReadFile(filePath) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		logger.WithError(err).Error("Failed to read file for validation")
		return false, &parsererror.FileError{Path: filePath, Op: "read", Err: err}
	}

	var probe struct {
		LineItems json.RawMessage `json:"line_items"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		logger.WithError(err).Info("File is not valid JSON")
		return false, nil
	}

	if len(probe.LineItems) == 0 {
		logger.Info("Required key not found", logging.Field{Key: "key", Value: "line_items"})
		return false, nil
	}

	return true, nil
}

// ConvertToCSV converts an estimate JSON file to the standard CSV format.
// This is a convenience function that combines ParseFile and the common writer.
func ConvertToCSV(inputFile, outputFile string) error {
	return common.GeneralizedConvertToCSV(inputFile, outputFile, ParseFile, ValidateFormat)
}
