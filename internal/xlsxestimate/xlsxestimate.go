// Package xlsxestimate parses spreadsheet exports of insurance estimates and
// writes the XLSX report workbook. The first sheet carries the line-item
// table; its column header row uses the same names as the CSV wire format.
// Rows above the column header may hold a labeled claim block (insured,
// claim number, date of loss, deductible) which is scraped into the estimate
// header.
package xlsxestimate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"fjacquet/xact-rollup/internal/common"
	"fjacquet/xact-rollup/internal/currencyutils"
	"fjacquet/xact-rollup/internal/logging"
	"fjacquet/xact-rollup/internal/models"
	"fjacquet/xact-rollup/internal/parsererror"
	"fjacquet/xact-rollup/internal/textutils"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// requiredColumns are the headers the line-item table must carry. The
// remaining wire columns are optional and default to zero.
var requiredColumns = []string{"description", "quantity", "unit", "rcv"}

// Parse parses estimate XLSX data from an io.Reader and returns the estimate.
func Parse(r io.Reader, logger logging.Logger) (*models.Estimate, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	logger.Info("Parsing estimate XLSX from reader")

	workbook, err := excelize.OpenReader(r)
	if err != nil {
		logger.WithError(err).Error("Failed to open XLSX data")
		return nil, fmt.Errorf("error opening XLSX data: %w", err)
	}
	defer closeWorkbook(workbook, logger)

	estimate, err := parseWorkbook(workbook, logger)
	if err != nil {
		return nil, err
	}
	estimate.Format = models.FormatXLSX

	logger.Info("Successfully parsed estimate XLSX",
		logging.Field{Key: logging.FieldCount, Value: len(estimate.LineItems)})
	return estimate, nil
}

// ParseFile parses an estimate XLSX file and returns the estimate it contains.
// This is the main entry point for parsing estimate XLSX files.
func ParseFile(filePath string) (*models.Estimate, error) {
	return ParseFileWithLogger(filePath, nil)
}

// ParseFileWithLogger parses an estimate XLSX file with the provided logger.
func ParseFileWithLogger(filePath string, logger logging.Logger) (*models.Estimate, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	logger.WithField(logging.FieldFile, filePath).Info("Parsing estimate XLSX file")

	// Check if the file format is valid
	valid, err := ValidateFormatWithLogger(filePath, logger)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	if !valid {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       filePath,
			ExpectedFormat: "estimate XLSX",
			Msg:            "required columns missing",
		}
	}

	workbook, err := excelize.OpenFile(filePath)
	if err != nil {
		logger.WithError(err).Error("Failed to open XLSX file")
		return nil, &parsererror.FileError{Path: filePath, Op: "open", Err: err}
	}
	defer closeWorkbook(workbook, logger)

	estimate, err := parseWorkbook(workbook, logger)
	if err != nil {
		return nil, err
	}
	estimate.SourceFile = filePath
	estimate.Format = models.FormatXLSX

	logger.Info("Successfully parsed estimate XLSX file",
		logging.Field{Key: logging.FieldCount, Value: len(estimate.LineItems)})
	return estimate, nil
}

// parseWorkbook reads the first sheet of an opened workbook into an estimate.
func parseWorkbook(workbook *excelize.File, logger logging.Logger) (*models.Estimate, error) {
	sheetName := workbook.GetSheetName(0)
	rows, err := workbook.GetRows(sheetName)
	if err != nil {
		logger.WithError(err).Error("Failed to read XLSX rows")
		return nil, fmt.Errorf("error reading XLSX rows: %w", err)
	}

	headerIdx, columns := findHeaderRow(rows)
	if headerIdx < 0 {
		return nil, &parsererror.InvalidFormatError{
			ExpectedFormat: "estimate XLSX",
			Msg:            "required columns missing",
		}
	}

	warnings := make([]string, 0)
	header := scrapeClaimBlock(rows[:headerIdx], &warnings)

	items := make([]models.LineItem, 0, len(rows)-headerIdx-1)
	for r := headerIdx + 1; r < len(rows); r++ {
		row := rows[r]
		if isEmptyRow(row, columns) {
			continue
		}
		items = append(items, convertRow(row, columns, r-headerIdx, &warnings))
	}

	if len(warnings) > 0 {
		logger.Warn("Coerced malformed values while parsing estimate XLSX",
			logging.Field{Key: logging.FieldCount, Value: len(warnings)})
	}

	return &models.Estimate{
		Header:    header,
		LineItems: items,
		Warnings:  warnings,
	}, nil
}

// findHeaderRow locates the column header row and returns its index along
// with a lower-cased column name to cell index map. Returns -1 when no row
// carries all required columns.
func findHeaderRow(rows [][]string) (int, map[string]int) {
	for i, row := range rows {
		columns := make(map[string]int, len(row))
		for j, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name == "" {
				continue
			}
			if _, seen := columns[name]; !seen {
				columns[name] = j
			}
		}

		found := true
		for _, required := range requiredColumns {
			if _, ok := columns[required]; !ok {
				found = false
				break
			}
		}
		if found {
			return i, columns
		}
	}

	return -1, nil
}

// scrapeClaimBlock extracts header fields from the free-form rows above the
// column header. Spreadsheets exported by adjusters commonly lead with a
// labeled block like "Claim Number: ABC-123".
func scrapeClaimBlock(rows [][]string, warnings *[]string) models.EstimateHeader {
	if len(rows) == 0 {
		return models.EstimateHeader{}
	}

	// Each cell becomes its own line so one labeled value cannot swallow the
	// next label on the same row.
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		for _, cell := range row {
			if trimmed := strings.TrimSpace(cell); trimmed != "" {
				lines = append(lines, trimmed)
			}
		}
	}
	text := strings.Join(lines, "\n")

	header := models.EstimateHeader{
		InsuredName:     textutils.ExtractInsuredName(text),
		PropertyAddress: textutils.ExtractPropertyAddress(text),
		ClaimNumber:     textutils.ExtractClaimNumber(text),
		PolicyNumber:    textutils.ExtractPolicyNumber(text),
		DateOfLoss:      textutils.NormalizeDate(textutils.ExtractDateOfLoss(text)),
	}

	if raw := textutils.ExtractDeductible(text); raw != "" {
		deductible, ok := currencyutils.CoerceAmount(raw)
		if !ok {
			*warnings = append(*warnings,
				fmt.Sprintf("header: deductible value %q coerced to zero", raw))
		}
		header.Deductible = deductible
	}

	return header
}

// cellAt returns the trimmed cell under the named column. GetRows drops
// trailing empty cells, so rows can be shorter than the header.
func cellAt(row []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// isEmptyRow reports whether the row carries no usable content.
func isEmptyRow(row []string, columns map[string]int) bool {
	return cellAt(row, columns, "description") == "" &&
		cellAt(row, columns, "quantity") == "" &&
		cellAt(row, columns, "unit_price") == "" &&
		cellAt(row, columns, "rcv") == ""
}

// convertRow converts a sheet row to a LineItem. The ordinal is used when
// the line_number cell is absent or unusable.
func convertRow(row []string, columns map[string]int, ordinal int, warnings *[]string) models.LineItem {
	lineNumber := ordinal
	if raw := cellAt(row, columns, "line_number"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			lineNumber = n
		}
	}

	quantity := coerceCell("quantity", cellAt(row, columns, "quantity"), lineNumber, warnings)
	unitPrice := coerceCell("unit_price", cellAt(row, columns, "unit_price"), lineNumber, warnings)
	tax := coerceCell("tax", cellAt(row, columns, "tax"), lineNumber, warnings)
	oAndP := coerceCell("o_and_p", cellAt(row, columns, "o_and_p"), lineNumber, warnings)
	rcv := coerceCell("rcv", cellAt(row, columns, "rcv"), lineNumber, warnings)
	depreciation := coerceCell("depreciation", cellAt(row, columns, "depreciation"), lineNumber, warnings)

	var acv decimal.Decimal
	if raw := cellAt(row, columns, "acv"); raw == "" {
		acv = rcv.Sub(depreciation)
	} else {
		acv = coerceCell("acv", raw, lineNumber, warnings)
	}

	return models.LineItem{
		LineNumber:   lineNumber,
		Room:         cellAt(row, columns, "room"),
		Description:  cellAt(row, columns, "description"),
		Quantity:     quantity,
		Unit:         cellAt(row, columns, "unit"),
		UnitPrice:    unitPrice,
		Tax:          tax,
		OAndP:        oAndP,
		RCV:          rcv,
		Depreciation: depreciation,
		ACV:          acv,
		Category:     cellAt(row, columns, "category"),
	}
}

// coerceCell parses a monetary or quantity cell. Empty cells default to zero
// silently; non-empty unparseable cells are coerced to zero and recorded.
func coerceCell(field, raw string, lineNumber int, warnings *[]string) decimal.Decimal {
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

// ValidateFormat checks if the file is a valid estimate XLSX file.
func ValidateFormat(filePath string) (bool, error) {
	return ValidateFormatWithLogger(filePath, nil)
}

// ValidateFormatWithLogger checks if the file is a valid estimate XLSX file with logger.
func ValidateFormatWithLogger(filePath string, logger logging.Logger) (bool, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	logger.Info("Validating estimate XLSX format",
		logging.Field{Key: logging.FieldFile, Value: filePath})

	if _, err := os.Stat(filePath); err != nil {
		logger.WithError(err).Error("Failed to stat file for validation")
		return false, &parsererror.FileError{Path: filePath, Op: "stat", Err: err}
	}

	workbook, err := excelize.OpenFile(filePath)
	if err != nil {
		logger.WithError(err).Info("File is not a readable workbook")
		return false, nil
	}
	defer closeWorkbook(workbook, logger)

	rows, err := workbook.GetRows(workbook.GetSheetName(0))
	if err != nil {
		logger.WithError(err).Info("Failed to read rows during validation")
		return false, nil
	}

	headerIdx, _ := findHeaderRow(rows)
	if headerIdx < 0 {
		logger.Info("Required columns not found in any row")
		return false, nil
	}

	return true, nil
}

// ConvertToCSV converts an estimate XLSX file to the standard CSV format.
// This is a convenience function that combines ParseFile and the common writer.
func ConvertToCSV(inputFile, outputFile string) error {
	return common.GeneralizedConvertToCSV(inputFile, outputFile, ParseFile, ValidateFormat)
}

func closeWorkbook(workbook *excelize.File, logger logging.Logger) {
	if err := workbook.Close(); err != nil {
		logger.WithError(err).Warn("Failed to close workbook")
	}
}

const (
	summarySheet   = "Summary"
	lineItemsSheet = "Line Items"
)

// WriteWorkbook writes a processed estimate to an XLSX workbook with a
// category summary sheet and a line-items sheet.
func WriteWorkbook(estimate *models.ProcessedEstimate, filePath string) error {
	return WriteWorkbookWithLogger(estimate, filePath, nil)
}

// WriteWorkbookWithLogger writes the report workbook with the provided logger.
func WriteWorkbookWithLogger(estimate *models.ProcessedEstimate, filePath string, logger logging.Logger) error {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if estimate == nil {
		return fmt.Errorf("cannot write nil estimate to workbook")
	}

	logger.Info("Writing estimate workbook",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(estimate.LineItems)})

	if dir := filepath.Dir(filePath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	workbook := excelize.NewFile()
	defer closeWorkbook(workbook, logger)

	if err := workbook.SetSheetName(workbook.GetSheetName(0), summarySheet); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}
	if err := writeSummarySheet(workbook, estimate); err != nil {
		return err
	}

	if _, err := workbook.NewSheet(lineItemsSheet); err != nil {
		return fmt.Errorf("failed to create line items sheet: %w", err)
	}
	if err := writeLineItemsSheet(workbook, estimate.LineItems); err != nil {
		return err
	}

	if err := workbook.SaveAs(filePath); err != nil {
		logger.WithError(err).Error("Failed to save workbook")
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

func writeSummarySheet(workbook *excelize.File, estimate *models.ProcessedEstimate) error {
	header := []interface{}{"category", "rcv", "depreciation", "acv", "item_count"}
	if err := workbook.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}

	rowIdx := 2
	for _, category := range estimate.Categories {
		row := []interface{}{
			category.Name,
			category.RCV.InexactFloat64(),
			category.Depreciation.InexactFloat64(),
			category.ACV.InexactFloat64(),
			category.ItemCount,
		}
		if err := workbook.SetSheetRow(summarySheet, fmt.Sprintf("A%d", rowIdx), &row); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
		rowIdx++
	}

	totals := []interface{}{
		"TOTAL",
		estimate.Totals.RCV.InexactFloat64(),
		estimate.Totals.Depreciation.InexactFloat64(),
		estimate.Totals.ACV.InexactFloat64(),
		estimate.Metadata.TotalLineItems,
	}
	if err := workbook.SetSheetRow(summarySheet, fmt.Sprintf("A%d", rowIdx), &totals); err != nil {
		return fmt.Errorf("failed to write summary totals: %w", err)
	}

	return nil
}

func writeLineItemsSheet(workbook *excelize.File, items []models.LineItem) error {
	header := []interface{}{
		"line_number", "room", "description", "quantity", "unit",
		"unit_price", "tax", "o_and_p", "rcv", "depreciation", "acv", "category",
	}
	if err := workbook.SetSheetRow(lineItemsSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write line items header: %w", err)
	}

	for i, item := range items {
		row := []interface{}{
			item.LineNumber,
			item.Room,
			item.Description,
			item.Quantity.InexactFloat64(),
			item.Unit,
			item.UnitPrice.InexactFloat64(),
			item.Tax.InexactFloat64(),
			item.OAndP.InexactFloat64(),
			item.RCV.InexactFloat64(),
			item.Depreciation.InexactFloat64(),
			item.ACV.InexactFloat64(),
			item.Category,
		}
		if err := workbook.SetSheetRow(lineItemsSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return fmt.Errorf("failed to write line item row: %w", err)
		}
	}

	return nil
}
