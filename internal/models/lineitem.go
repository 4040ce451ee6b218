// Package models provides the data structures used throughout the application.
package models

import (
	"github.com/shopspring/decimal"
)

// LineItem represents a single billed entry from an insurance estimate
type LineItem struct {
	LineNumber   int             `csv:"line_number" json:"line_number"`     // Position within the source document
	Room         string          `csv:"room" json:"room"`                   // Free-text location label, may be empty
	Description  string          `csv:"description" json:"description"`     // Description of the work or material
	Quantity     decimal.Decimal `csv:"quantity" json:"quantity"`           // Billed quantity
	Unit         string          `csv:"unit" json:"unit"`                   // Unit code (SF, LF, EA, HR, ...)
	UnitPrice    decimal.Decimal `csv:"unit_price" json:"unit_price"`       // Price per unit
	Tax          decimal.Decimal `csv:"tax" json:"tax"`                     // Tax portion
	OAndP        decimal.Decimal `csv:"o_and_p" json:"o_and_p"`             // Overhead & profit portion
	RCV          decimal.Decimal `csv:"rcv" json:"rcv"`                     // Replacement cost value
	Depreciation decimal.Decimal `csv:"depreciation" json:"depreciation"`   // Depreciation withheld
	ACV          decimal.Decimal `csv:"acv" json:"acv"`                     // Actual cash value (rcv - depreciation)
	Category     string          `csv:"category" json:"category,omitempty"` // Category label, set by classification

	// Set by price redistribution only, omitted until then
	OriginalRCV       *decimal.Decimal `csv:"-" json:"original_rcv,omitempty"`
	OriginalUnitPrice *decimal.Decimal `csv:"-" json:"original_unit_price,omitempty"`
	Adjustment        *decimal.Decimal `csv:"-" json:"adjustment,omitempty"`
}

// ExtendedTotal returns quantity x unit price plus tax and overhead & profit.
// This is the value the RCV column is expected to carry.
func (li *LineItem) ExtendedTotal() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice).Add(li.Tax).Add(li.OAndP)
}

// ImpliedACV returns rcv minus depreciation.
func (li *LineItem) ImpliedACV() decimal.Decimal {
	return li.RCV.Sub(li.Depreciation)
}

// IsRepriced returns true once redistribution has revised this item.
func (li *LineItem) IsRepriced() bool {
	return li.OriginalRCV != nil
}
