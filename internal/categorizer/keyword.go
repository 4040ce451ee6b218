package categorizer

import (
	"context"

	"fjacquet/xact-rollup/internal/logging"
	"fjacquet/xact-rollup/internal/models"
	"fjacquet/xact-rollup/internal/rules"
)

// KeywordStrategy categorizes line items with the ordered rule table.
// It always produces a label: descriptions no rule claims fall to GENERAL
// with matched=false so a later strategy may refine them.
type KeywordStrategy struct {
	table  *rules.Table
	logger logging.Logger
}

// NewKeywordStrategy creates a KeywordStrategy over the given table. When a
// store is provided, user keyword extensions are merged into the table before
// first use.
func NewKeywordStrategy(table *rules.Table, store CategoryStoreInterface, logger logging.Logger) *KeywordStrategy {
	if table == nil {
		table = rules.NewTable()
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	s := &KeywordStrategy{
		table:  table,
		logger: logger,
	}

	if store != nil {
		cfg, err := store.LoadCategories()
		if err != nil {
			s.logger.WithError(err).Warn("Failed to load keyword extensions")
		} else if len(cfg.Categories) > 0 {
			s.table.Extend(cfg)
			s.logger.Debug("Merged keyword extensions into rule table",
				logging.Field{Key: logging.FieldCount, Value: len(cfg.Categories)})
		}
	}

	return s
}

// Name returns the name of this strategy for logging and debugging.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Categorize runs the rule table over the item description.
func (s *KeywordStrategy) Categorize(ctx context.Context, item models.LineItem) (string, bool, error) {
	category, matched := s.table.Match(item.Description)

	if matched {
		s.logger.Debug("Line item categorized by keyword rule",
			logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
			logging.Field{Key: logging.FieldCategory, Value: category},
			logging.Field{Key: logging.FieldLineNumber, Value: item.LineNumber})
	}

	return category, matched, nil
}
