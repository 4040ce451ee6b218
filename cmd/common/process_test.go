package common_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/xact-rollup/cmd/common"
	"fjacquet/xact-rollup/internal/categorizer"
	"fjacquet/xact-rollup/internal/engine"
	"fjacquet/xact-rollup/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const estimateJSON = `{
	"header": {"claim_number": "CLM-2024-0042", "deductible": 100},
	"line_items": [
		{"line_number": 1, "description": "Clean subfloor, heavy", "quantity": 120, "unit": "SF", "rcv": 54.00},
		{"line_number": 2, "description": "Paint walls and ceiling", "quantity": 200, "unit": "SF", "rcv": 220.00, "depreciation": 22.00}
	]
}`

func writeTempEstimate(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadEstimate(t *testing.T) {
	logger := &logging.MockLogger{}
	path := writeTempEstimate(t, "estimate.json", estimateJSON)

	estimate, err := common.LoadEstimate(path, "", true, logger)
	require.NoError(t, err)
	require.NotNil(t, estimate)
	assert.Equal(t, "CLM-2024-0042", estimate.Header.ClaimNumber)
	assert.Len(t, estimate.LineItems, 2)
}

func TestLoadEstimateMissingInput(t *testing.T) {
	logger := &logging.MockLogger{}

	_, err := common.LoadEstimate("", "", false, logger)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "input file is required")
}

func TestLoadEstimateNonexistentFile(t *testing.T) {
	logger := &logging.MockLogger{}

	_, err := common.LoadEstimate(filepath.Join(t.TempDir(), "missing.json"), "", false, logger)
	assert.Error(t, err)
}

func TestLoadEstimateUnknownExtension(t *testing.T) {
	logger := &logging.MockLogger{}
	path := writeTempEstimate(t, "estimate.docx", estimateJSON)

	_, err := common.LoadEstimate(path, "", false, logger)
	assert.Error(t, err)
}

func TestLoadEstimateFormatOverride(t *testing.T) {
	logger := &logging.MockLogger{}
	// Extension lies; the explicit format wins.
	path := writeTempEstimate(t, "estimate.dat", estimateJSON)

	estimate, err := common.LoadEstimate(path, "json", false, logger)
	require.NoError(t, err)
	assert.Len(t, estimate.LineItems, 2)
}

func TestProcessEstimateFile(t *testing.T) {
	logger := &logging.MockLogger{}
	eng := engine.New(categorizer.NewCategorizer(nil, nil, nil, logger), logger)
	path := writeTempEstimate(t, "estimate.json", estimateJSON)

	processed, err := common.ProcessEstimateFile(context.Background(), eng, path, "", false, logger)
	require.NoError(t, err)
	assert.True(t, processed.Success)
	assert.Equal(t, 2, processed.Metadata.TotalLineItems)
	assert.Len(t, processed.Categories, 2)
}
