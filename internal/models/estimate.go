package models

import (
	"github.com/shopspring/decimal"
)

// EstimateHeader holds the document-level claim fields of an estimate.
// All fields are optional; missing values stay empty or zero.
type EstimateHeader struct {
	InsuredName     string          `json:"insured_name" yaml:"insured_name"`
	PropertyAddress string          `json:"property_address" yaml:"property_address"`
	ClaimNumber     string          `json:"claim_number" yaml:"claim_number"`
	PolicyNumber    string          `json:"policy_number" yaml:"policy_number"`
	DateOfLoss      string          `json:"date_of_loss" yaml:"date_of_loss"` // Normalized to YYYY-MM-DD when parseable
	Deductible      decimal.Decimal `json:"deductible" yaml:"deductible"`
}

// Estimate is the raw parser output: a header plus the ordered line items,
// before deduplication and classification.
type Estimate struct {
	Header    EstimateHeader `json:"header"`
	LineItems []LineItem     `json:"line_items"`

	// Provenance, set by the parser that produced the estimate
	SourceFile string `json:"-"`
	Format     string `json:"-"`

	// Parse warnings (coerced numerics and the like), surfaced later in the
	// response metadata
	Warnings []string `json:"-"`
}

// Category is a derived aggregation bucket over classified line items.
// It is always recomputed from the current item set, never patched.
type Category struct {
	Name         string          `json:"name"`
	RCV          decimal.Decimal `json:"rcv"`
	Depreciation decimal.Decimal `json:"depreciation"`
	ACV          decimal.Decimal `json:"acv"`
	ItemCount    int             `json:"item_count"`
	UniqueItems  []string        `json:"unique_items"` // Distinct descriptions, first-appearance order
}

// EstimateTotals holds document-level sums across retained line items.
type EstimateTotals struct {
	RCV          decimal.Decimal `json:"rcv"`
	Depreciation decimal.Decimal `json:"depreciation"`
	ACV          decimal.Decimal `json:"acv"`
	Deductible   decimal.Decimal `json:"deductible"`
	NetClaim     decimal.Decimal `json:"net_claim"` // acv - deductible
}

// EstimateMetadata describes the processing run.
type EstimateMetadata struct {
	TotalLineItems    int      `json:"total_line_items"`
	TotalCategories   int      `json:"total_categories"`
	Rooms             []string `json:"rooms"` // Distinct non-empty room labels, first-seen order
	DuplicatesRemoved int      `json:"duplicates_removed"`
	Warnings          []string `json:"warnings,omitempty"`
}

// ProcessedEstimate is the response document produced by the engine.
type ProcessedEstimate struct {
	Success    bool             `json:"success"`
	Header     EstimateHeader   `json:"header"`
	LineItems  []LineItem       `json:"line_items"`
	Categories []Category       `json:"categories"`
	Totals     EstimateTotals   `json:"totals"`
	Metadata   EstimateMetadata `json:"metadata"`
}

// RepriceRequest is the payload for a price-redistribution run: a processed
// (or raw) estimate plus the user's category total overrides.
type RepriceRequest struct {
	Estimate  *ProcessedEstimate         `json:"estimate"`
	Overrides map[string]decimal.Decimal `json:"overrides"`
}
