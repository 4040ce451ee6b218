// Package engine runs the processing pipeline over parsed estimates:
// deduplicate, classify, aggregate, sequence and total into one response
// document. It also drives price redistribution over an already processed
// estimate, rebuilding the derived category view afterwards.
package engine

import (
	"context"
	"fmt"

	"fjacquet/xact-rollup/internal/categorizer"
	"fjacquet/xact-rollup/internal/dedup"
	"fjacquet/xact-rollup/internal/logging"
	"fjacquet/xact-rollup/internal/models"
	"fjacquet/xact-rollup/internal/reprice"
	"fjacquet/xact-rollup/internal/rollup"

	"github.com/shopspring/decimal"
)

// Engine orchestrates the pipeline stages over one estimate at a time.
// Concurrent calls are safe; each invocation works on its own slices and the
// categorizer guards its shared cache internally.
type Engine struct {
	categorizer *categorizer.Categorizer
	logger      logging.Logger
}

// New creates an Engine around the given categorizer.
func New(c *categorizer.Categorizer, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Engine{categorizer: c, logger: logger}
}

// Process runs the full pipeline: deduplicate, classify every item, build the
// ordered category view and the document totals. An estimate with no line
// items is valid and produces an empty, successful document.
func (e *Engine) Process(ctx context.Context, estimate *models.Estimate) (*models.ProcessedEstimate, error) {
	if estimate == nil {
		return nil, fmt.Errorf("no estimate to process")
	}

	items, removed := dedup.Deduplicate(estimate.LineItems)

	items, err := e.categorizer.CategorizeAll(ctx, items)
	if err != nil {
		return nil, fmt.Errorf("classifying line items: %w", err)
	}

	categories := rollup.Sequence(rollup.Aggregate(items))
	totals := rollup.Totals(items, estimate.Header.Deductible)

	processed := &models.ProcessedEstimate{
		Success:    true,
		Header:     estimate.Header,
		LineItems:  items,
		Categories: categories,
		Totals:     totals,
		Metadata: models.EstimateMetadata{
			TotalLineItems:    len(items),
			TotalCategories:   len(categories),
			Rooms:             rollup.Rooms(items),
			DuplicatesRemoved: removed,
			Warnings:          estimate.Warnings,
		},
	}

	e.logger.Info("Processed estimate",
		logging.Field{Key: logging.FieldClaimNumber, Value: estimate.Header.ClaimNumber},
		logging.Field{Key: logging.FieldCount, Value: len(items)},
		logging.Field{Key: "categories", Value: len(categories)},
		logging.Field{Key: "duplicates_removed", Value: removed})

	return processed, nil
}

// Reprice applies category total overrides to a processed estimate and
// rebuilds categories and totals from the revised items. Items arriving
// without a category label (a raw payload posted straight to reprice) are
// classified first; existing labels, including user overrides, are kept.
// Returns the revised document and the number of revised items.
func (e *Engine) Reprice(ctx context.Context, processed *models.ProcessedEstimate, overrides map[string]decimal.Decimal) (*models.ProcessedEstimate, int, error) {
	if processed == nil {
		return nil, 0, fmt.Errorf("no estimate to reprice")
	}

	for i := range processed.LineItems {
		if processed.LineItems[i].Category != "" {
			continue
		}
		label, err := e.categorizer.Categorize(ctx, processed.LineItems[i])
		if err != nil {
			return nil, 0, fmt.Errorf("classifying line items: %w", err)
		}
		processed.LineItems[i].Category = label
	}

	revised := reprice.Redistribute(processed.LineItems, overrides)

	categories := rollup.Sequence(rollup.Aggregate(processed.LineItems))
	processed.Categories = categories
	processed.Totals = rollup.Totals(processed.LineItems, processed.Header.Deductible)
	processed.Metadata.TotalLineItems = len(processed.LineItems)
	processed.Metadata.TotalCategories = len(categories)
	processed.Metadata.Rooms = rollup.Rooms(processed.LineItems)
	processed.Success = true

	e.logger.Info("Repriced estimate",
		logging.Field{Key: logging.FieldClaimNumber, Value: processed.Header.ClaimNumber},
		logging.Field{Key: logging.FieldCount, Value: revised},
		logging.Field{Key: "overrides", Value: len(overrides)})

	return processed, revised, nil
}

// Stats returns the categorizer's classification statistics snapshot.
func (e *Engine) Stats() models.ClassificationStats {
	return e.categorizer.Stats()
}

// ResetStats clears the classification statistics, e.g. between batch files.
func (e *Engine) ResetStats() {
	e.categorizer.ResetStats()
}

// LogStats writes a classification summary at info level.
func (e *Engine) LogStats() {
	e.categorizer.LogStats()
}
