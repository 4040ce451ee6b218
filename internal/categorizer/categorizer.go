// Package categorizer assigns exactly one category label to each estimate
// line item. Strategies run in a fixed chain:
//  1. Keyword rule table, which always yields a label (GENERAL fallback)
//  2. Optional AI suggestion for items the rules could not claim
//
// Results are memoized per normalized description for the life of the
// process, so repeated descriptions inside a large estimate are classified
// once.
package categorizer

import (
	"context"
	"sync"

	"fjacquet/xact-rollup/internal/logging"
	"fjacquet/xact-rollup/internal/models"
	"fjacquet/xact-rollup/internal/rules"
	"fjacquet/xact-rollup/internal/textutils"
)

// cacheEntry keeps the label with the strategy that produced it so repeat
// lookups count toward the same statistics bucket.
type cacheEntry struct {
	Category string
	Source   string
}

// Categorizer runs the strategy chain over line items.
type Categorizer struct {
	strategies []Strategy
	cache      map[string]cacheEntry
	cacheMu    sync.RWMutex
	stats      models.ClassificationStats
	statsMu    sync.Mutex
	logger     logging.Logger
}

// NewCategorizer creates a Categorizer with the standard chain. The table may
// be nil (built-in rules are used); aiClient may be nil (the AI step is
// skipped entirely).
func NewCategorizer(table *rules.Table, store CategoryStoreInterface, aiClient AIClient, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.GetLogger()
	}

	return &Categorizer{
		strategies: []Strategy{
			NewKeywordStrategy(table, store, logger),
			NewAIStrategy(aiClient, logger),
		},
		cache:  make(map[string]cacheEntry),
		logger: logger,
	}
}

// Categorize assigns one category label to the line item. The label is always
// a member of the category vocabulary; descriptions nothing claims come back
// as GENERAL. The returned error is reserved for strategy contract violations
// and is nil in normal operation, strategy failures degrade to the keyword
// result.
func (c *Categorizer) Categorize(ctx context.Context, item models.LineItem) (string, error) {
	key := textutils.NormalizeDescription(item.Description)

	c.cacheMu.RLock()
	entry, ok := c.cache[key]
	c.cacheMu.RUnlock()
	if ok {
		c.record(entry.Source)
		return entry.Category, nil
	}

	category := models.CategoryGeneral
	source := ""
	for _, s := range c.strategies {
		label, matched, err := s.Categorize(ctx, item)
		if err != nil {
			c.logger.WithError(err).Warn("Categorization strategy failed",
				logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
				logging.Field{Key: logging.FieldLineNumber, Value: item.LineNumber})
			continue
		}
		if matched {
			category = label
			source = s.Name()
			break
		}
		if label != "" {
			// Unclaimed proposal (keyword fallback), kept unless refined.
			category = label
		}
	}

	// Last writer wins on racing inserts for the same key.
	c.cacheMu.Lock()
	c.cache[key] = cacheEntry{Category: category, Source: source}
	c.cacheMu.Unlock()

	c.record(source)
	return category, nil
}

// CategorizeAll labels every item in place and returns the slice.
func (c *Categorizer) CategorizeAll(ctx context.Context, items []models.LineItem) ([]models.LineItem, error) {
	for i := range items {
		category, err := c.Categorize(ctx, items[i])
		if err != nil {
			return items, err
		}
		items[i].Category = category
	}
	return items, nil
}

// record attributes one classified item to the stats bucket of its source.
func (c *Categorizer) record(source string) {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()

	c.stats.IncrementTotal()
	switch source {
	case "":
		c.stats.IncrementFallback()
	case "AI":
		c.stats.IncrementAI()
	default:
		c.stats.IncrementKeyword()
	}
}

// Stats returns a snapshot of the classification statistics.
func (c *Categorizer) Stats() models.ClassificationStats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return c.stats
}

// ResetStats clears the classification statistics, e.g. between batch files.
func (c *Categorizer) ResetStats() {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	c.stats = models.ClassificationStats{}
}

// LogStats writes the summary line for the current statistics snapshot.
func (c *Categorizer) LogStats() {
	c.Stats().LogSummary(c.logger)
}

// CacheSize reports the number of memoized descriptions.
func (c *Categorizer) CacheSize() int {
	c.cacheMu.RLock()
	defer c.cacheMu.RUnlock()
	return len(c.cache)
}
