// Package xactxml parses XML exports of insurance estimates. The document
// shape is <Estimate> with a <Header> claim block and a <LineItems> list of
// <Item> elements; fields are located with XPath queries so unknown sibling
// elements never break the parse.
package xactxml

import (
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
	"fjacquet/xact-rollup/internal/xmlutils"

	"github.com/shopspring/decimal"
	"gopkg.in/xmlpath.v2"
)

var xpaths = xmlutils.DefaultEstimateXPaths()

var itemsPath = xmlpath.MustCompile(xpaths.Items)

// Parse parses estimate XML from an io.Reader and returns the estimate.
func Parse(r io.Reader, logger logging.Logger) (*models.Estimate, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	logger.Info("Parsing estimate XML from reader")

	root, err := xmlutils.LoadXML(r)
	if err != nil {
		logger.WithError(err).Error("Failed to parse estimate XML")
		return nil, fmt.Errorf("error parsing estimate XML: %w", err)
	}

	estimate, err := buildEstimate(root, logger)
	if err != nil {
		return nil, err
	}
	estimate.Format = models.FormatXML

	logger.Info("Successfully parsed estimate XML",
		logging.Field{Key: logging.FieldCount, Value: len(estimate.LineItems)})
	return estimate, nil
}

// ParseFile parses an estimate XML file and returns the estimate it contains.
// This is the main entry point for parsing estimate XML files.
func ParseFile(filePath string) (*models.Estimate, error) {
	return ParseFileWithLogger(filePath, nil)
}

// ParseFileWithLogger parses an estimate XML file with the provided logger.
func ParseFileWithLogger(filePath string, logger logging.Logger) (*models.Estimate, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	logger.WithField(logging.FieldFile, filePath).Info("Parsing estimate XML file")

	// Check if the file format is valid
	valid, err := ValidateFormatWithLogger(filePath, logger)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	if !valid {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       filePath,
			ExpectedFormat: "estimate XML",
			Msg:            "Estimate/LineItems document structure missing",
		}
	}

	root, err := xmlutils.LoadXMLFile(filePath)
	if err != nil {
		logger.WithError(err).Error("Failed to load estimate XML file")
		return nil, fmt.Errorf("error loading estimate XML: %w", err)
	}

	estimate, err := buildEstimate(root, logger)
	if err != nil {
		return nil, err
	}
	estimate.SourceFile = filePath
	estimate.Format = models.FormatXML

	logger.Info("Successfully parsed estimate XML file",
		logging.Field{Key: logging.FieldCount, Value: len(estimate.LineItems)})
	return estimate, nil
}

// buildEstimate walks the parsed document into an estimate, coercing
// malformed numerics to zero with a recorded warning.
func buildEstimate(root *xmlpath.Node, logger logging.Logger) (*models.Estimate, error) {
	found, err := xmlutils.Exists(root, xpaths.ItemsContainer)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &parsererror.InvalidFormatError{
			ExpectedFormat: "estimate XML",
			Msg:            "Estimate/LineItems document structure missing",
		}
	}

	warnings := make([]string, 0)

	header, err := extractHeader(root, &warnings)
	if err != nil {
		return nil, err
	}

	items := make([]models.LineItem, 0)
	ordinal := 0
	iter := itemsPath.Iter(root)
	for iter.Next() {
		ordinal++
		item, err := extractItem(iter.Node(), ordinal, &warnings)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if len(warnings) > 0 {
		logger.Warn("Coerced malformed values while parsing estimate XML",
			logging.Field{Key: logging.FieldCount, Value: len(warnings)})
	}

	return &models.Estimate{
		Header:    header,
		LineItems: items,
		Warnings:  warnings,
	}, nil
}

func extractHeader(root *xmlpath.Node, warnings *[]string) (models.EstimateHeader, error) {
	header := models.EstimateHeader{}

	fields := []struct {
		xpath string
		dst   *string
	}{
		{xpaths.Header.InsuredName, &header.InsuredName},
		{xpaths.Header.PropertyAddress, &header.PropertyAddress},
		{xpaths.Header.ClaimNumber, &header.ClaimNumber},
		{xpaths.Header.PolicyNumber, &header.PolicyNumber},
	}
	for _, field := range fields {
		value, err := xmlutils.ExtractFirst(root, field.xpath)
		if err != nil {
			return header, err
		}
		*field.dst = strings.TrimSpace(value)
	}

	dateOfLoss, err := xmlutils.ExtractFirst(root, xpaths.Header.DateOfLoss)
	if err != nil {
		return header, err
	}
	header.DateOfLoss = textutils.NormalizeDate(dateOfLoss)

	rawDeductible, err := xmlutils.ExtractFirst(root, xpaths.Header.Deductible)
	if err != nil {
		return header, err
	}
	if rawDeductible = strings.TrimSpace(rawDeductible); rawDeductible != "" {
		deductible, ok := currencyutils.CoerceAmount(rawDeductible)
		if !ok {
			*warnings = append(*warnings,
				fmt.Sprintf("header: deductible value %q coerced to zero", rawDeductible))
		}
		header.Deductible = deductible
	}

	return header, nil
}

// extractItem converts one <Item> node to a LineItem. The ordinal is used
// when the LineNumber element is absent or unusable.
func extractItem(node *xmlpath.Node, ordinal int, warnings *[]string) (models.LineItem, error) {
	text := func(xpath string) (string, error) {
		value, err := xmlutils.ExtractFirst(node, xpath)
		return strings.TrimSpace(value), err
	}

	rawLineNumber, err := text(xpaths.Item.LineNumber)
	if err != nil {
		return models.LineItem{}, err
	}
	lineNumber := ordinal
	if n, convErr := strconv.Atoi(rawLineNumber); convErr == nil && n > 0 {
		lineNumber = n
	}

	item := models.LineItem{LineNumber: lineNumber}

	if item.Room, err = text(xpaths.Item.Room); err != nil {
		return item, err
	}
	if item.Description, err = text(xpaths.Item.Description); err != nil {
		return item, err
	}
	if item.Unit, err = text(xpaths.Item.Unit); err != nil {
		return item, err
	}
	if item.Category, err = text(xpaths.Item.Category); err != nil {
		return item, err
	}

	amounts := []struct {
		name  string
		xpath string
		dst   *decimal.Decimal
	}{
		{"quantity", xpaths.Item.Quantity, &item.Quantity},
		{"unit_price", xpaths.Item.UnitPrice, &item.UnitPrice},
		{"tax", xpaths.Item.Tax, &item.Tax},
		{"o_and_p", xpaths.Item.OAndP, &item.OAndP},
		{"rcv", xpaths.Item.RCV, &item.RCV},
		{"depreciation", xpaths.Item.Depreciation, &item.Depreciation},
	}
	for _, amount := range amounts {
		raw, err := text(amount.xpath)
		if err != nil {
			return item, err
		}
		*amount.dst = coerceValue(amount.name, raw, lineNumber, warnings)
	}

	// An absent ACV element is derived from rcv - depreciation; a malformed
	// one is coerced like any other amount.
	rawACV, err := text(xpaths.Item.ACV)
	if err != nil {
		return item, err
	}
	if rawACV == "" {
		item.ACV = item.RCV.Sub(item.Depreciation)
	} else {
		item.ACV = coerceValue("acv", rawACV, lineNumber, warnings)
	}

	return item, nil
}

// coerceValue parses a monetary or quantity value. Empty values default to
// zero silently; non-empty unparseable values are coerced and recorded.
func coerceValue(field, raw string, lineNumber int, warnings *[]string) decimal.Decimal {
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

// ValidateFormat checks if the file is a valid estimate XML file.
func ValidateFormat(filePath string) (bool, error) {
	return ValidateFormatWithLogger(filePath, nil)
}

// ValidateFormatWithLogger checks if the file is a valid estimate XML file with logger.
func ValidateFormatWithLogger(filePath string, logger logging.Logger) (bool, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	logger.Info("Validating estimate XML format",
		logging.Field{Key: logging.FieldFile, Value: filePath})

	if _, err := os.Stat(filePath); err != nil {
		logger.WithError(err).Error("Failed to stat file for validation")
		return false, &parsererror.FileError{Path: filePath, Op: "stat", Err: err}
	}

	root, err := xmlutils.LoadXMLFile(filePath)
	if err != nil {
		logger.WithError(err).Info("File is not well-formed XML")
		return false, nil
	}

	for _, xpath := range []string{xpaths.Root, xpaths.ItemsContainer} {
		found, err := xmlutils.Exists(root, xpath)
		if err != nil {
			return false, err
		}
		if !found {
			logger.Info("Required element not found",
				logging.Field{Key: "xpath", Value: xpath})
			return false, nil
		}
	}

	return true, nil
}

// ConvertToCSV converts an estimate XML file to the standard CSV format.
// This is a convenience function that combines ParseFile and the common writer.
func ConvertToCSV(inputFile, outputFile string) error {
	return common.GeneralizedConvertToCSV(inputFile, outputFile, ParseFile, ValidateFormat)
}
