package container

import (
	"context"
	"testing"

	"fjacquet/xact-rollup/internal/config"
	"fjacquet/xact-rollup/internal/factory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Rules.File = "rules.yaml"
	cfg.Server.Port = 8080
	cfg.Server.MaxFileSizeMB = 10
	return cfg
}

func TestNewContainerNilConfig(t *testing.T) {
	c, err := NewContainer(context.Background(), nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "configuration cannot be nil")
	assert.Nil(t, c)
}

func TestNewContainerWithoutAI(t *testing.T) {
	c, err := NewContainer(context.Background(), testConfig())
	require.NoError(t, err)
	require.NotNil(t, c)

	// Verify all dependencies are created
	assert.NotNil(t, c.GetLogger())
	assert.NotNil(t, c.GetConfig())
	assert.NotNil(t, c.GetStore())
	assert.NotNil(t, c.GetRuleTable())
	assert.NotNil(t, c.GetCategorizer())
	assert.NotNil(t, c.GetEngine())
	assert.NotNil(t, c.GetReviewer())
	assert.NotNil(t, c.GetReportGenerator())
	assert.NotNil(t, c.GetBatchRunner())

	// AI client stays nil when not enabled
	assert.Nil(t, c.GetAIClient())

	assert.NoError(t, c.Close())
}

func TestNewContainerWithAI(t *testing.T) {
	cfg := testConfig()
	cfg.AI.Enabled = true
	cfg.AI.APIKey = "test-api-key"
	cfg.AI.Model = "gemini-1.5-flash"
	cfg.AI.TimeoutSeconds = 30

	c, err := NewContainer(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, c)

	assert.NotNil(t, c.GetAIClient())
	assert.NoError(t, c.Close())
}

func TestContainerParserRegistry(t *testing.T) {
	c, err := NewContainer(context.Background(), testConfig())
	require.NoError(t, err)

	expected := []factory.ParserType{factory.CSV, factory.JSON, factory.XLSX, factory.XML}
	parsers := c.GetParsers()
	assert.Len(t, parsers, len(expected))

	for _, pt := range expected {
		p, err := c.GetParser(pt)
		assert.NoError(t, err)
		assert.NotNil(t, p)
	}

	_, err = c.GetParser(factory.ParserType("camt"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown parser type")
}

func TestGetParsersReturnsCopy(t *testing.T) {
	c, err := NewContainer(context.Background(), testConfig())
	require.NoError(t, err)

	parsers := c.GetParsers()
	delete(parsers, factory.CSV)

	// The registry itself is unchanged
	p, err := c.GetParser(factory.CSV)
	assert.NoError(t, err)
	assert.NotNil(t, p)
}
