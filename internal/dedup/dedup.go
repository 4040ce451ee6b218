// Package dedup removes duplicated line items. Table extraction tends to emit
// the same entry twice when a row spans a page break, so items whose
// normalized description, quantity and unit coincide are treated as one.
package dedup

import (
	"fjacquet/xact-rollup/internal/logging"
	"fjacquet/xact-rollup/internal/models"
	"fjacquet/xact-rollup/internal/textutils"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// itemKey identifies a line item for duplicate detection. Quantity is keyed
// by its canonical decimal string so 16 and 16.00 collide.
type itemKey struct {
	description string
	quantity    string
	unit        string
}

func keyFor(item models.LineItem) itemKey {
	return itemKey{
		description: textutils.NormalizeDescription(item.Description),
		quantity:    item.Quantity.String(),
		unit:        textutils.NormalizeUnit(item.Unit),
	}
}

// Deduplicate returns the items with later duplicates removed, preserving
// input order, along with the number removed. The first occurrence wins and
// keeps its financial values; duplicates are dropped, never merged.
func Deduplicate(items []models.LineItem) ([]models.LineItem, int) {
	seen := make(map[itemKey]struct{}, len(items))
	unique := make([]models.LineItem, 0, len(items))

	for _, item := range items {
		key := keyFor(item)
		if _, ok := seen[key]; ok {
			log.Debug("Removing duplicate line item",
				logging.Field{Key: logging.FieldLineNumber, Value: item.LineNumber},
				logging.Field{Key: "description", Value: item.Description})
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, item)
	}

	removed := len(items) - len(unique)
	if removed > 0 {
		log.Info("Removed duplicate line items",
			logging.Field{Key: logging.FieldCount, Value: removed})
	}

	return unique, removed
}
