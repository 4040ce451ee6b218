// Package common provides shared functionality across different parsers.
package common

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/xact-rollup/internal/logging"
	"fjacquet/xact-rollup/internal/models"

	"github.com/gocarina/gocsv"
)

var log = logging.GetLogger()

// Global CSV delimiter - can be configured via centralized config or environment variable
var Delimiter rune = ','

func init() {
	// Fallback to environment variable for backward compatibility
	if val := os.Getenv("CSV_DELIMITER"); val != "" {
		// Use first rune only
		SetDelimiter([]rune(val)[0])
	}
}

// SetDelimiter allows setting the delimiter for CSV output
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// SetLogger allows setting a custom logger
func SetLogger(logger logging.Logger) {
	if logger == nil {
		return // Don't change the logger if nil is passed
	}
	log = logger
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
// This is a generic function that can be used by any parser.
// TCSVRow is the struct type that maps to the CSV columns.
func ReadCSVFile[TCSVRow any](filePath string, logger logging.Logger) ([]TCSVRow, error) {
	if logger == nil {
		logger = log
	}
	logger.WithField(logging.FieldFile, filePath).Info("Reading CSV file")

	// Open the file
	file, err := os.Open(filePath) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		logger.WithError(err).Error("Failed to open CSV file")
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	// Parse the CSV into structs using the configured delimiter
	reader := csv.NewReader(file)
	reader.Comma = Delimiter

	var rows []TCSVRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		logger.WithError(err).Error("Failed to parse CSV file")
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	logger.WithField(logging.FieldCount, len(rows)).Info("Successfully read CSV data")
	return rows, nil
}

// WriteLineItemsToCSV writes line items to a CSV file in a standardized format.
// All parsers and exporters should use this function to ensure consistent CSV
// output.
//
// Monetary columns are rounded to two decimal places before writing.
func WriteLineItemsToCSV(items []models.LineItem, csvFile string) error {
	if items == nil {
		return fmt.Errorf("cannot write nil line items to CSV")
	}

	log.Info("Writing line items to CSV file",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(items)})

	// Create the directory if it doesn't exist
	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		log.WithError(err).Error("Failed to create directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	// Create the file
	file, err := os.Create(csvFile) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		log.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	// Round monetary values at the export boundary
	for i := range items {
		items[i].UnitPrice = items[i].UnitPrice.Round(2)
		items[i].Tax = items[i].Tax.Round(2)
		items[i].OAndP = items[i].OAndP.Round(2)
		items[i].RCV = items[i].RCV.Round(2)
		items[i].Depreciation = items[i].Depreciation.Round(2)
		items[i].ACV = items[i].ACV.Round(2)
	}

	// Configure CSV writer with custom delimiter
	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter

	// Marshal the line items
	if err := gocsv.MarshalCSV(&items, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		log.WithError(err).Error("Failed to marshal line items to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	log.Info("Successfully wrote line items to CSV file",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(items)})

	return nil
}

// ExportLineItemsToCSV exports a slice of line items to a CSV file
func ExportLineItemsToCSV(items []models.LineItem, csvFile string) error {
	if items == nil {
		return fmt.Errorf("cannot write nil line items to CSV")
	}

	log.Info("Exporting line items to CSV file using WriteLineItemsToCSV",
		logging.Field{Key: logging.FieldCount, Value: len(items)},
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: "delimiter", Value: string(Delimiter)})

	// Use the primary function for writing line items to ensure consistency
	return WriteLineItemsToCSV(items, csvFile)
}

// GeneralizedConvertToCSV is a utility function that combines parsing and writing to CSV.
// This is used by parsers implementing the standard interface.
func GeneralizedConvertToCSV(
	inputFile string,
	outputFile string,
	parseFunc func(string) (*models.Estimate, error),
	validateFunc func(string) (bool, error),
) error {
	log.Info("Converting file to CSV",
		logging.Field{Key: logging.FieldInputFile, Value: inputFile},
		logging.Field{Key: logging.FieldOutputFile, Value: outputFile})

	// Check if input file exists
	if _, err := os.Stat(inputFile); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", inputFile)
	}

	// Validate the file format if a validate function is provided
	if validateFunc != nil {
		isValid, err := validateFunc(inputFile)
		if err != nil {
			return fmt.Errorf("error validating file format: %w", err)
		}
		if !isValid {
			return fmt.Errorf("invalid file format: %s", inputFile)
		}
	}

	// Parse the input file
	estimate, err := parseFunc(inputFile)
	if err != nil {
		return fmt.Errorf("error parsing file: %w", err)
	}

	// Write line items to CSV
	if err := WriteLineItemsToCSV(estimate.LineItems, outputFile); err != nil {
		return fmt.Errorf("error writing line items to CSV: %w", err)
	}

	log.Info("Successfully converted file to CSV",
		logging.Field{Key: logging.FieldInputFile, Value: inputFile},
		logging.Field{Key: logging.FieldOutputFile, Value: outputFile},
		logging.Field{Key: logging.FieldCount, Value: len(estimate.LineItems)})

	return nil
}
