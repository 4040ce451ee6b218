package xlsxestimate

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/xact-rollup/internal/models"
	"fjacquet/xact-rollup/internal/parser"
	"fjacquet/xact-rollup/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeTestWorkbook builds an xlsx file from raw sheet rows.
func writeTestWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	workbook := excelize.NewFile()
	defer func() {
		require.NoError(t, workbook.Close())
	}()

	sheet := workbook.GetSheetName(0)
	for i := range rows {
		require.NoError(t, workbook.SetSheetRow(sheet, fmt.Sprintf("A%d", i+1), &rows[i]))
	}

	path := filepath.Join(t.TempDir(), "estimate.xlsx")
	require.NoError(t, workbook.SaveAs(path))
	return path
}

func itemHeaderRow() []interface{} {
	return []interface{}{
		"line_number", "room", "description", "quantity", "unit",
		"unit_price", "tax", "o_and_p", "rcv", "depreciation", "acv",
	}
}

func TestParseFile(t *testing.T) {
	path := writeTestWorkbook(t, [][]interface{}{
		{"Insured: Jane Doe"},
		{"Claim Number: CLM-2024-001", "Date of Loss: 3/15/2024"},
		{"Deductible: $1,000.00"},
		{},
		itemHeaderRow(),
		{1, "Kitchen", "Paint walls and ceiling", 200, "SF", 0.95, 9.12, 38.47, 237.59, 47.42, 190.17},
		{2, "Bathroom", "Clean subfloor", 50, "SF", 0.55, 1.32, 5.5, 34.32, 6.86, 27.46},
	})

	estimate, err := ParseFile(path)
	require.NoError(t, err)
	require.NotNil(t, estimate)

	assert.Equal(t, path, estimate.SourceFile)
	assert.Equal(t, "xlsx", estimate.Format)
	assert.Empty(t, estimate.Warnings)

	assert.Equal(t, "Jane Doe", estimate.Header.InsuredName)
	assert.Equal(t, "CLM-2024-001", estimate.Header.ClaimNumber)
	assert.Equal(t, "2024-03-15", estimate.Header.DateOfLoss)
	assert.Equal(t, "1000", estimate.Header.Deductible.String())

	require.Len(t, estimate.LineItems, 2)

	first := estimate.LineItems[0]
	assert.Equal(t, 1, first.LineNumber)
	assert.Equal(t, "Kitchen", first.Room)
	assert.Equal(t, "Paint walls and ceiling", first.Description)
	assert.Equal(t, "200", first.Quantity.String())
	assert.Equal(t, "SF", first.Unit)
	assert.Equal(t, "0.95", first.UnitPrice.String())
	assert.Equal(t, "237.59", first.RCV.String())
	assert.Equal(t, "47.42", first.Depreciation.String())
	assert.Equal(t, "190.17", first.ACV.String())
}

func TestParseFileHeaderOnFirstRow(t *testing.T) {
	path := writeTestWorkbook(t, [][]interface{}{
		itemHeaderRow(),
		{1, "Kitchen", "Hang drywall", 10, "SF", 2.5, 0, 0, 100.25, 20.1, 80.15},
	})

	estimate, err := ParseFile(path)
	require.NoError(t, err)

	assert.Empty(t, estimate.Header.ClaimNumber)
	assert.True(t, estimate.Header.Deductible.IsZero())
	require.Len(t, estimate.LineItems, 1)
	assert.Equal(t, "Hang drywall", estimate.LineItems[0].Description)
}

func TestParseFileSkipsBlankRows(t *testing.T) {
	path := writeTestWorkbook(t, [][]interface{}{
		itemHeaderRow(),
		{1, "Kitchen", "Paint walls and ceiling", 200, "SF", 0.95, 0, 0, 190, 0, 190},
		{},
		{nil, "", "", "", ""},
		{2, "Kitchen", "Clean subfloor", 50, "SF", 0.55, 0, 0, 27.5, 0, 27.5},
	})

	estimate, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, estimate.LineItems, 2)
}

func TestParseFileDerivesACVWhenEmpty(t *testing.T) {
	path := writeTestWorkbook(t, [][]interface{}{
		itemHeaderRow(),
		{1, "Kitchen", "Hang drywall", 10, "SF", 2.5, 0, 0, 100.25, 20.1, nil},
	})

	estimate, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, estimate.LineItems, 1)

	assert.Equal(t, "80.15", estimate.LineItems[0].ACV.String())
}

func TestParseFileCoercesMalformedValues(t *testing.T) {
	path := writeTestWorkbook(t, [][]interface{}{
		itemHeaderRow(),
		{5, "Den", "Detach and reset ceiling fan", 1, "EA", "oops", 0, 0, "abc", 0, 75},
	})

	estimate, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, estimate.LineItems, 1)

	item := estimate.LineItems[0]
	assert.True(t, item.UnitPrice.IsZero())
	assert.True(t, item.RCV.IsZero())
	assert.Equal(t, "75", item.ACV.String())

	require.Len(t, estimate.Warnings, 2)
	assert.Contains(t, estimate.Warnings, `line 5: unit_price value "oops" coerced to zero`)
	assert.Contains(t, estimate.Warnings, `line 5: rcv value "abc" coerced to zero`)
}

func TestParseFileMissingColumns(t *testing.T) {
	path := writeTestWorkbook(t, [][]interface{}{
		{"name", "total"},
		{"Widget", 42},
	})

	_, err := ParseFile(path)
	require.Error(t, err)

	var formatErr *parsererror.InvalidFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, path, formatErr.FilePath)
}

func TestValidateFormat(t *testing.T) {
	validPath := writeTestWorkbook(t, [][]interface{}{
		itemHeaderRow(),
		{1, "Kitchen", "Paint walls and ceiling", 200, "SF", 0.95, 0, 0, 190, 0, 190},
	})

	valid, err := ValidateFormat(validPath)
	require.NoError(t, err)
	assert.True(t, valid)

	invalidPath := writeTestWorkbook(t, [][]interface{}{
		{"name", "total"},
	})

	valid, err = ValidateFormat(invalidPath)
	require.NoError(t, err)
	assert.False(t, valid)

	// A plain text file is not a workbook
	textPath := filepath.Join(t.TempDir(), "estimate.xlsx")
	require.NoError(t, os.WriteFile(textPath, []byte("description,quantity,unit,rcv\n"), 0600))

	valid, err = ValidateFormat(textPath)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestValidateFormatMissingFile(t *testing.T) {
	valid, err := ValidateFormat(filepath.Join(t.TempDir(), "nope.xlsx"))
	require.Error(t, err)
	assert.False(t, valid)
}

func TestConvertToCSV(t *testing.T) {
	inputFile := writeTestWorkbook(t, [][]interface{}{
		itemHeaderRow(),
		{1, "Kitchen", "Paint walls and ceiling", 200, "SF", 0.95, 9.12, 38.47, 237.59, 47.42, 190.17},
	})
	outputFile := filepath.Join(t.TempDir(), "output.csv")

	err := ConvertToCSV(inputFile, outputFile)
	require.NoError(t, err)

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	output := string(data)
	assert.Contains(t, output, "line_number,room,description")
	assert.Contains(t, output, "Paint walls and ceiling")
	assert.Contains(t, output, "237.59")
}

func TestWriteWorkbook(t *testing.T) {
	estimate := &models.ProcessedEstimate{
		Success: true,
		LineItems: []models.LineItem{
			{
				LineNumber:  1,
				Room:        "Kitchen",
				Description: "Paint walls and ceiling",
				Quantity:    decimal.NewFromInt(200),
				Unit:        "SF",
				UnitPrice:   decimal.RequireFromString("0.95"),
				RCV:         decimal.RequireFromString("237.59"),
				ACV:         decimal.RequireFromString("237.59"),
				Category:    models.CategoryPainting,
			},
		},
		Categories: []models.Category{
			{
				Name:         models.CategoryPainting,
				RCV:          decimal.RequireFromString("237.59"),
				Depreciation: decimal.Zero,
				ACV:          decimal.RequireFromString("237.59"),
				ItemCount:    1,
				UniqueItems:  []string{"Paint walls and ceiling"},
			},
		},
		Totals: models.EstimateTotals{
			RCV:      decimal.RequireFromString("237.59"),
			ACV:      decimal.RequireFromString("237.59"),
			NetClaim: decimal.RequireFromString("237.59"),
		},
		Metadata: models.EstimateMetadata{
			TotalLineItems:  1,
			TotalCategories: 1,
			Rooms:           []string{"Kitchen"},
		},
	}

	path := filepath.Join(t.TempDir(), "reports", "estimate.xlsx")

	err := WriteWorkbook(estimate, path)
	require.NoError(t, err)

	workbook, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, workbook.Close())
	}()

	assert.ElementsMatch(t, []string{"Summary", "Line Items"}, workbook.GetSheetList())

	category, err := workbook.GetCellValue("Summary", "A2")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryPainting, category)

	total, err := workbook.GetCellValue("Summary", "A3")
	require.NoError(t, err)
	assert.Equal(t, "TOTAL", total)

	description, err := workbook.GetCellValue("Line Items", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Paint walls and ceiling", description)

	label, err := workbook.GetCellValue("Line Items", "L2")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryPainting, label)
}

func TestWriteWorkbookNilEstimate(t *testing.T) {
	err := WriteWorkbook(nil, filepath.Join(t.TempDir(), "estimate.xlsx"))
	require.Error(t, err)
}

func TestAdapterImplementsEstimateParser(t *testing.T) {
	var _ parser.EstimateParser = &Adapter{}

	path := writeTestWorkbook(t, [][]interface{}{
		itemHeaderRow(),
		{1, "Kitchen", "Paint walls and ceiling", 200, "SF", 0.95, 0, 0, 190, 0, 190},
	})

	adapter := NewAdapter(nil)

	valid, err := adapter.ValidateFormat(path)
	require.NoError(t, err)
	assert.True(t, valid)

	estimate, err := adapter.ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, estimate.LineItems, 1)
}
