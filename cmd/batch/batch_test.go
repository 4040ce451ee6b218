package batch_test

import (
	"testing"

	"fjacquet/xact-rollup/cmd/batch"
	"fjacquet/xact-rollup/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestBatchCommand_Metadata(t *testing.T) {
	assert.Equal(t, "batch", batch.Cmd.Use)
	assert.Contains(t, batch.Cmd.Short, "Batch process")
	assert.Contains(t, batch.Cmd.Long, "run summary")
	assert.NotNil(t, batch.Cmd.Run)
}

func TestBatchCommand_Flags(t *testing.T) {
	inputDirFlag := batch.Cmd.Flags().Lookup("input-dir")
	assert.NotNil(t, inputDirFlag)
	assert.Equal(t, "d", inputDirFlag.Shorthand)

	reportFormatFlag := batch.Cmd.Flags().Lookup("report-format")
	assert.NotNil(t, reportFormatFlag)
	assert.Equal(t, models.FormatJSON, reportFormatFlag.DefValue)
}
