// Package integration exercises the whole path from an estimate file on
// disk through parsing, the pipeline and the report formats.
package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/xact-rollup/internal/categorizer"
	"fjacquet/xact-rollup/internal/engine"
	"fjacquet/xact-rollup/internal/factory"
	"fjacquet/xact-rollup/internal/jsonestimate"
	"fjacquet/xact-rollup/internal/logging"
	"fjacquet/xact-rollup/internal/models"
	"fjacquet/xact-rollup/internal/report"
	"fjacquet/xact-rollup/internal/xactxml"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const estimateJSON = `{
	"header": {
		"insured_name": "Jane Holder",
		"property_address": "12 Elm St",
		"claim_number": "CLM-2024-0042",
		"policy_number": "HO-339201",
		"date_of_loss": "03/14/2024",
		"deductible": 1000
	},
	"line_items": [
		{"line_number": 1, "room": "Kitchen", "description": "Muck out and clean subfloor", "quantity": 120, "unit": "SF", "rcv": 180.00, "depreciation": 0, "acv": 180.00},
		{"line_number": 2, "room": "Kitchen", "description": "Tear out wet drywall and bag for disposal", "quantity": 80, "unit": "SF", "rcv": 96.00, "depreciation": 0, "acv": 96.00},
		{"line_number": 3, "room": "Kitchen", "description": "Air mover per 24 hour period", "quantity": 6, "unit": "EA", "rcv": 210.00, "depreciation": 0, "acv": 210.00},
		{"line_number": 4, "room": "Kitchen", "description": "Tarp roof opening", "quantity": 1, "unit": "EA", "rcv": 350.00, "depreciation": 0, "acv": 350.00},
		{"line_number": 5, "room": "Kitchen", "description": "R&R exterior insulated door with new hardware", "quantity": 1, "unit": "EA", "rcv": 825.00, "depreciation": 82.50, "acv": 742.50},
		{"line_number": 6, "room": "Bathroom", "description": "Remove base cabinets", "quantity": 16, "unit": "LF", "rcv": 120.00, "depreciation": 0, "acv": 120.00},
		{"line_number": 7, "room": "Bathroom", "description": "Remove base cabinets", "quantity": 16, "unit": "LF", "rcv": 480.00, "depreciation": 0, "acv": 480.00},
		{"line_number": 8, "room": "Bathroom", "description": "Paint walls, two coats", "quantity": 240, "unit": "SF", "rcv": 264.00, "depreciation": 26.40, "acv": 237.60},
		{"line_number": 9, "room": "Bathroom", "description": "Contents manipulation charge", "quantity": 1, "unit": "EA", "rcv": 75.00, "depreciation": 0, "acv": 75.00}
	]
}`

const estimateCSV = `line_number,room,description,quantity,unit,unit_price,tax,o_and_p,rcv,depreciation,acv
1,Kitchen,Muck out and clean subfloor,120,SF,1.50,0,0,180.00,0,180.00
2,Kitchen,"Paint walls, two coats",240,SF,1.10,0,0,264.00,26.40,237.60
`

func newTestEngine() *engine.Engine {
	logger := &logging.MockLogger{}
	return engine.New(categorizer.NewCategorizer(nil, nil, nil, logger), logger)
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func processFile(t *testing.T, path string) *models.ProcessedEstimate {
	t.Helper()
	logger := &logging.MockLogger{}

	p, err := factory.GetParserForFile(path, "", logger)
	require.NoError(t, err)

	estimate, err := p.ParseFile(path)
	require.NoError(t, err)

	processed, err := newTestEngine().Process(context.Background(), estimate)
	require.NoError(t, err)
	return processed
}

func TestJSONFileThroughPipeline(t *testing.T) {
	processed := processFile(t, writeTempFile(t, "estimate.json", estimateJSON))

	assert.True(t, processed.Success)
	assert.Equal(t, "CLM-2024-0042", processed.Header.ClaimNumber)
	assert.Equal(t, "2024-03-14", processed.Header.DateOfLoss)

	// The repeated cabinet row is an extraction artifact: first kept, later
	// dropped with its value.
	require.Len(t, processed.LineItems, 8)
	assert.Equal(t, 1, processed.Metadata.DuplicatesRemoved)

	// Priority block leads in its literal order, the tail is lexicographic.
	names := make([]string, 0, len(processed.Categories))
	for _, c := range processed.Categories {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{
		models.CategoryCleaning,
		models.CategoryGeneralDemolition,
		models.CategoryWaterExtraction,
		models.CategoryTemporaryRepairs,
		models.CategoryDoors,
		models.CategoryGeneral,
		models.CategoryPainting,
	}, names)

	// Partition invariant: every retained item lands in exactly one bucket.
	itemCount := 0
	for _, c := range processed.Categories {
		itemCount += c.ItemCount
	}
	assert.Equal(t, len(processed.LineItems), itemCount)

	// Rollup invariant: category rcv is the exact sum over member items.
	perCategory := make(map[string]decimal.Decimal)
	for i := range processed.LineItems {
		item := processed.LineItems[i]
		perCategory[item.Category] = perCategory[item.Category].Add(item.RCV)
	}
	for _, c := range processed.Categories {
		assert.True(t, c.RCV.Equal(perCategory[c.Name]),
			"category %s: want %s, got %s", c.Name, perCategory[c.Name], c.RCV)
	}

	// Totals: the dropped duplicate's 480.00 never reaches the rollup.
	assert.True(t, processed.Totals.RCV.Equal(decimal.RequireFromString("2120.00")),
		"got %s", processed.Totals.RCV)
	assert.True(t, processed.Totals.NetClaim.Equal(
		processed.Totals.ACV.Sub(processed.Totals.Deductible)))

	assert.Equal(t, []string{"Kitchen", "Bathroom"}, processed.Metadata.Rooms)
}

func TestCSVFileThroughPipeline(t *testing.T) {
	processed := processFile(t, writeTempFile(t, "estimate.csv", estimateCSV))

	require.Len(t, processed.LineItems, 2)
	assert.Equal(t, models.CategoryCleaning, processed.LineItems[0].Category)
	assert.Equal(t, models.CategoryPainting, processed.LineItems[1].Category)
	assert.True(t, processed.Totals.RCV.Equal(decimal.RequireFromString("444.00")))
}

func TestProcessReportFeedsReprice(t *testing.T) {
	logger := &logging.MockLogger{}
	eng := newTestEngine()
	processed := processFile(t, writeTempFile(t, "estimate.json", estimateJSON))

	// Write the canonical JSON report and read it back through the JSON
	// parser, the way the reprice command consumes process output.
	reportPath := filepath.Join(t.TempDir(), "processed.json")
	generator := report.NewReportGenerator(logger)
	require.NoError(t, generator.WriteReport(processed, models.FormatJSON, reportPath))

	reparsed, err := jsonestimate.ParseFileWithLogger(reportPath, logger)
	require.NoError(t, err)
	require.Len(t, reparsed.LineItems, len(processed.LineItems))

	// Labels assigned by the first pass survive the round trip.
	for i := range reparsed.LineItems {
		assert.Equal(t, processed.LineItems[i].Category, reparsed.LineItems[i].Category)
	}

	override := decimal.RequireFromString("500.00")
	revised, count, err := eng.Reprice(context.Background(),
		&models.ProcessedEstimate{Header: reparsed.Header, LineItems: reparsed.LineItems},
		map[string]decimal.Decimal{models.CategoryCleaning: override})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Conservation: the category total now equals the override.
	var cleaningTotal decimal.Decimal
	for i := range revised.LineItems {
		if revised.LineItems[i].Category == models.CategoryCleaning {
			cleaningTotal = cleaningTotal.Add(revised.LineItems[i].RCV)
		}
	}
	assert.True(t, cleaningTotal.Equal(override), "got %s", cleaningTotal)

	// Untouched categories keep their values.
	for i := range revised.LineItems {
		if revised.LineItems[i].Category != models.CategoryCleaning {
			assert.Nil(t, revised.LineItems[i].Adjustment)
		}
	}
}

func TestXMLReportRoundTrip(t *testing.T) {
	logger := &logging.MockLogger{}
	processed := processFile(t, writeTempFile(t, "estimate.json", estimateJSON))

	reportPath := filepath.Join(t.TempDir(), "processed.xml")
	generator := report.NewReportGenerator(logger)
	require.NoError(t, generator.WriteReport(processed, models.FormatXML, reportPath))

	reparsed, err := xactxml.ParseFileWithLogger(reportPath, logger)
	require.NoError(t, err)
	require.Len(t, reparsed.LineItems, len(processed.LineItems))
	assert.Equal(t, processed.Header.ClaimNumber, reparsed.Header.ClaimNumber)

	for i := range reparsed.LineItems {
		assert.True(t, reparsed.LineItems[i].RCV.Equal(processed.LineItems[i].RCV))
		assert.Equal(t, processed.LineItems[i].Category, reparsed.LineItems[i].Category)
	}
}
