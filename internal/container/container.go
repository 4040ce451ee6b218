// Package container provides dependency injection for the application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"time"

	"fjacquet/xact-rollup/internal/batch"
	"fjacquet/xact-rollup/internal/categorizer"
	"fjacquet/xact-rollup/internal/config"
	"fjacquet/xact-rollup/internal/csvestimate"
	"fjacquet/xact-rollup/internal/dedup"
	"fjacquet/xact-rollup/internal/engine"
	"fjacquet/xact-rollup/internal/factory"
	"fjacquet/xact-rollup/internal/jsonestimate"
	"fjacquet/xact-rollup/internal/logging"
	"fjacquet/xact-rollup/internal/parser"
	"fjacquet/xact-rollup/internal/report"
	"fjacquet/xact-rollup/internal/reprice"
	"fjacquet/xact-rollup/internal/reviewer"
	"fjacquet/xact-rollup/internal/rules"
	"fjacquet/xact-rollup/internal/store"
	"fjacquet/xact-rollup/internal/xactxml"
	"fjacquet/xact-rollup/internal/xlsxestimate"
)

// Container holds all application dependencies and provides methods to access
// them. It acts as the central registry for dependency injection, ensuring
// that all components receive their required dependencies through
// constructors.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods. This prevents accidental modification
// of dependencies after initialization.
type Container struct {
	// Core dependencies (private for immutability)
	logger      logging.Logger
	config      *config.Config
	store       *store.RuleStore
	table       *rules.Table
	aiClient    categorizer.AIClient
	gemini      *categorizer.GeminiClient // kept for Close, nil when AI is off
	categorizer *categorizer.Categorizer
	engine      *engine.Engine
	reviewer    *reviewer.Reviewer
	reports     *report.ReportGenerator
	batchRunner *batch.Runner

	// Parser registry keyed by the factory's format names
	parsers map[factory.ParserType]parser.EstimateParser
}

// NewContainer creates and wires all application dependencies.
// This is the main entry point for dependency injection in the application.
//
// The context is used for AI client setup only; pass the process context so
// a cancelled startup does not leak the API connection.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Create logger first as it's needed by other components
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	// Rule table and keyword extension store
	ruleStore := store.NewRuleStore(cfg.Rules.File)
	store.SetLogger(logger)
	dedup.SetLogger(logger)
	reprice.SetLogger(logger)
	table := rules.NewTable()

	// AI suggestion client (if enabled). A failed client setup degrades to
	// rule-only classification instead of failing the whole program.
	var aiClient categorizer.AIClient
	var gemini *categorizer.GeminiClient
	if cfg.AI.Enabled && cfg.AI.APIKey != "" {
		client, err := categorizer.NewGeminiClient(ctx, cfg.AI.APIKey, cfg.AI.Model, logger)
		if err != nil {
			logger.WithError(err).Warn("AI categorization disabled")
		} else {
			gemini = client
			aiClient = client
			if cfg.AI.TimeoutSeconds > 0 {
				aiClient = categorizer.NewTimeoutClient(client, time.Duration(cfg.AI.TimeoutSeconds)*time.Second)
			}
			logger.Info("AI categorization enabled",
				logging.Field{Key: "model", Value: cfg.AI.Model})
		}
	} else {
		logger.Info("AI categorization disabled")
	}

	// Classification and pipeline
	cat := categorizer.NewCategorizer(table, ruleStore, aiClient, logger)
	eng := engine.New(cat, logger)

	// Parsers with dependency injection
	parsers := map[factory.ParserType]parser.EstimateParser{
		factory.CSV:  csvestimate.NewAdapter(logger),
		factory.JSON: jsonestimate.NewAdapter(logger),
		factory.XLSX: xlsxestimate.NewAdapter(logger),
		factory.XML:  xactxml.NewAdapter(logger),
	}

	logger.Info("Container initialized successfully",
		logging.Field{Key: "parsers_count", Value: len(parsers)},
		logging.Field{Key: "ai_enabled", Value: aiClient != nil})

	return &Container{
		logger:      logger,
		config:      cfg,
		store:       ruleStore,
		table:       table,
		aiClient:    aiClient,
		gemini:      gemini,
		categorizer: cat,
		engine:      eng,
		reviewer:    reviewer.NewReviewer(logger),
		reports:     report.NewReportGenerator(logger),
		batchRunner: batch.NewRunner(eng, logger),
		parsers:     parsers,
	}, nil
}

// GetParser returns a parser for the given format.
// This method provides type-safe access to parser instances.
func (c *Container) GetParser(pt factory.ParserType) (parser.EstimateParser, error) {
	p, ok := c.parsers[pt]
	if !ok {
		return nil, fmt.Errorf("unknown parser type: %s", pt)
	}
	return p, nil
}

// GetParsers returns a copy of the parser registry.
// This prevents external modification of the internal parser map.
func (c *Container) GetParsers() map[factory.ParserType]parser.EstimateParser {
	result := make(map[factory.ParserType]parser.EstimateParser, len(c.parsers))
	for k, v := range c.parsers {
		result[k] = v
	}
	return result
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetCategorizer returns the container's categorizer instance.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetEngine returns the container's pipeline engine instance.
func (c *Container) GetEngine() *engine.Engine {
	return c.engine
}

// GetReviewer returns the container's estimate reviewer instance.
func (c *Container) GetReviewer() *reviewer.Reviewer {
	return c.reviewer
}

// GetReportGenerator returns the container's report generator instance.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.reports
}

// GetBatchRunner returns the container's batch runner instance.
func (c *Container) GetBatchRunner() *batch.Runner {
	return c.batchRunner
}

// GetStore returns the container's rule store instance.
func (c *Container) GetStore() *store.RuleStore {
	return c.store
}

// GetRuleTable returns the container's category rule table.
func (c *Container) GetRuleTable() *rules.Table {
	return c.table
}

// GetAIClient returns the container's AI client instance.
// Returns nil if AI is not enabled.
func (c *Container) GetAIClient() categorizer.AIClient {
	return c.aiClient
}

// Close performs cleanup of container resources.
// This method should be called when the container is no longer needed.
func (c *Container) Close() error {
	if c.gemini != nil {
		if err := c.gemini.Close(); err != nil {
			c.logger.WithError(err).Warn("Failed to close AI client")
			return err
		}
	}
	c.logger.Info("Container closed")
	return nil
}
