package validate_test

import (
	"testing"

	"fjacquet/xact-rollup/cmd/validate"

	"github.com/stretchr/testify/assert"
)

func TestValidateCommand_Metadata(t *testing.T) {
	assert.Equal(t, "validate", validate.Cmd.Use)
	assert.Contains(t, validate.Cmd.Short, "quality checks")
	assert.Contains(t, validate.Cmd.Long, "error-severity findings")
	assert.NotNil(t, validate.Cmd.Run)
}
