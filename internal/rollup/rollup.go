// Package rollup derives the category view of a processed estimate: grouping
// classified line items into per-category financial summaries, ordering those
// summaries for presentation, and computing document totals. Category records
// are always rebuilt from the current item set, never incrementally patched.
package rollup

import (
	"slices"
	"sort"
	"strings"

	"fjacquet/xact-rollup/internal/models"

	"github.com/shopspring/decimal"
)

// priorityOrder lists the categories presented ahead of everything else, in
// this literal order. It reflects the split between the emergency-response
// contract and the rebuild contract.
var priorityOrder = []string{
	models.CategoryCleaning,
	models.CategoryGeneralDemolition,
	models.CategoryWaterExtraction,
	models.CategoryTemporaryRepairs,
}

// Aggregate groups the items by category in one pass. Per group it sums rcv,
// depreciation and acv independently, counts members, and collects distinct
// descriptions in first-seen order. Categories no item carries are not
// emitted. The result keeps first-seen group order; use Sequence for the
// presentation order.
func Aggregate(items []models.LineItem) []models.Category {
	index := make(map[string]int, len(items))
	categories := make([]models.Category, 0)

	for i := range items {
		name := items[i].Category
		if name == "" {
			name = models.CategoryGeneral
		}

		idx, ok := index[name]
		if !ok {
			idx = len(categories)
			index[name] = idx
			categories = append(categories, models.Category{Name: name})
		}

		c := &categories[idx]
		c.RCV = c.RCV.Add(items[i].RCV)
		c.Depreciation = c.Depreciation.Add(items[i].Depreciation)
		c.ACV = c.ACV.Add(items[i].ACV)
		c.ItemCount++

		description := strings.TrimSpace(items[i].Description)
		if description != "" && !slices.Contains(c.UniqueItems, description) {
			c.UniqueItems = append(c.UniqueItems, description)
		}
	}

	return categories
}

// Sequence returns the categories in presentation order: present priority
// categories first in their literal order (absent ones skipped), then every
// other category sorted lexicographically by name.
func Sequence(categories []models.Category) []models.Category {
	out := make([]models.Category, len(categories))
	copy(out, categories)

	sort.SliceStable(out, func(i, j int) bool {
		pi, iPriority := priorityIndex(out[i].Name)
		pj, jPriority := priorityIndex(out[j].Name)

		if iPriority != jPriority {
			return iPriority
		}
		if iPriority {
			return pi < pj
		}
		return out[i].Name < out[j].Name
	})

	return out
}

func priorityIndex(name string) (int, bool) {
	for i, p := range priorityOrder {
		if p == name {
			return i, true
		}
	}
	return 0, false
}

// Totals sums the retained items and applies the header deductible.
// Monetary results are rounded to two decimal places here, at the response
// boundary.
func Totals(items []models.LineItem, deductible decimal.Decimal) models.EstimateTotals {
	var rcv, depreciation, acv decimal.Decimal
	for i := range items {
		rcv = rcv.Add(items[i].RCV)
		depreciation = depreciation.Add(items[i].Depreciation)
		acv = acv.Add(items[i].ACV)
	}

	rcv = rcv.Round(2)
	depreciation = depreciation.Round(2)
	acv = acv.Round(2)
	deductible = deductible.Round(2)

	return models.EstimateTotals{
		RCV:          rcv,
		Depreciation: depreciation,
		ACV:          acv,
		Deductible:   deductible,
		NetClaim:     acv.Sub(deductible),
	}
}

// Rooms returns the distinct non-empty room labels in first-seen order.
func Rooms(items []models.LineItem) []string {
	seen := make(map[string]struct{}, len(items))
	rooms := make([]string, 0)

	for i := range items {
		room := strings.TrimSpace(items[i].Room)
		if room == "" {
			continue
		}
		if _, ok := seen[room]; ok {
			continue
		}
		seen[room] = struct{}{}
		rooms = append(rooms, room)
	}

	return rooms
}
