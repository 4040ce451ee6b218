package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineItemExtendedTotal(t *testing.T) {
	item := LineItem{
		Quantity:  decimal.NewFromInt(16),
		UnitPrice: decimal.NewFromFloat(5.25),
		Tax:       decimal.NewFromFloat(4.20),
		OAndP:     decimal.NewFromFloat(16.80),
	}

	assert.True(t, decimal.NewFromFloat(105).Equal(item.ExtendedTotal()))
}

func TestLineItemImpliedACV(t *testing.T) {
	item := LineItem{
		RCV:          decimal.NewFromFloat(500),
		Depreciation: decimal.NewFromFloat(125.50),
	}

	assert.True(t, decimal.NewFromFloat(374.50).Equal(item.ImpliedACV()))
}

func TestLineItemIsRepriced(t *testing.T) {
	item := LineItem{RCV: decimal.NewFromInt(500)}
	assert.False(t, item.IsRepriced())

	original := decimal.NewFromInt(500)
	item.OriginalRCV = &original
	assert.True(t, item.IsRepriced())
}

func TestLineItemJSONOmitsRepriceFieldsUntilSet(t *testing.T) {
	item := LineItem{
		LineNumber:  1,
		Description: "Remove base cabinets",
		Quantity:    decimal.NewFromInt(16),
		Unit:        "LF",
		RCV:         decimal.NewFromFloat(105),
	}

	data, err := json.Marshal(item)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "original_rcv")
	assert.NotContains(t, string(data), "adjustment")

	original := decimal.NewFromFloat(105)
	adjustment := decimal.NewFromFloat(21)
	item.OriginalRCV = &original
	item.Adjustment = &adjustment

	data, err = json.Marshal(item)
	require.NoError(t, err)

	assert.Contains(t, string(data), "original_rcv")
	assert.Contains(t, string(data), "adjustment")
}

func TestIsValidCategory(t *testing.T) {
	tests := []struct {
		name     string
		category string
		valid    bool
	}{
		{"priority category", CategoryCleaning, true},
		{"trade category", CategoryDoors, true},
		{"fallback category", CategoryGeneral, true},
		{"compound label", CategorySoffitFasciaGutter, true},
		{"lower case rejected", "cleaning", false},
		{"unknown label", "LANDSCAPING", false},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidCategory(tt.category))
		})
	}
}

func TestAllCategoriesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range AllCategories {
		assert.False(t, seen[c], "duplicate category %s", c)
		seen[c] = true
	}
	assert.Len(t, AllCategories, 35)
}
