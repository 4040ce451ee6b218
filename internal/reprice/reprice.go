// Package reprice redistributes a user-entered category total across the
// category's line items, proportionally to each item's original share. Items
// keep their depreciation schedule; only replacement cost and unit price are
// revised, with the originals recorded alongside.
package reprice

import (
	"fjacquet/xact-rollup/internal/logging"
	"fjacquet/xact-rollup/internal/models"

	"github.com/shopspring/decimal"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// Redistribute applies the override map to the items in place and returns
// the number of revised items. Per overridden category, each member item's
// new rcv is its proportional share of the override total; zero-rcv items
// receive zero share. Categories whose current total or override is not
// positive are left untouched, a blank or zero user entry means "no change
// requested". Override keys matching no item's category are ignored with a
// warning. Revised values are rounded to two decimal places.
func Redistribute(items []models.LineItem, overrides map[string]decimal.Decimal) int {
	if len(overrides) == 0 || len(items) == 0 {
		return 0
	}

	categoryTotals := make(map[string]decimal.Decimal, len(overrides))
	for i := range items {
		name := items[i].Category
		categoryTotals[name] = categoryTotals[name].Add(items[i].RCV)
	}

	revised := 0
	for name, override := range overrides {
		categoryTotal, present := categoryTotals[name]
		if !present {
			log.Warn("Ignoring override for unknown category",
				logging.Field{Key: logging.FieldCategory, Value: name})
			continue
		}

		if categoryTotal.LessThanOrEqual(decimal.Zero) || override.LessThanOrEqual(decimal.Zero) {
			log.Debug("Skipping redistribution with non-positive totals",
				logging.Field{Key: logging.FieldCategory, Value: name},
				logging.Field{Key: "category_total", Value: categoryTotal.String()},
				logging.Field{Key: "override", Value: override.String()})
			continue
		}

		count := 0
		for i := range items {
			if items[i].Category != name {
				continue
			}

			item := &items[i]
			originalRCV := item.RCV
			originalUnitPrice := item.UnitPrice

			// newRcv = override x (rcv / categoryTotal), multiplied before
			// dividing so precision is lost only at the final rounding.
			newRCV := override.Mul(originalRCV).DivRound(categoryTotal, 2)
			newUnitPrice := decimal.Zero
			if item.Quantity.IsPositive() {
				newUnitPrice = newRCV.DivRound(item.Quantity, 2)
			}
			adjustment := newRCV.Sub(originalRCV)

			item.OriginalRCV = &originalRCV
			item.OriginalUnitPrice = &originalUnitPrice
			item.Adjustment = &adjustment
			item.RCV = newRCV
			item.UnitPrice = newUnitPrice
			count++
		}

		revised += count
		log.Info("Redistributed category total",
			logging.Field{Key: logging.FieldCategory, Value: name},
			logging.Field{Key: "override", Value: override.String()},
			logging.Field{Key: logging.FieldCount, Value: count})
	}

	return revised
}
