// Package xmlutils provides XML-related utility functions used throughout the application.
package xmlutils

// EstimateXPaths contains all XPath expressions used for estimate XML parsing.
// Header paths are absolute; Item paths are relative to one Item node.
type EstimateXPaths struct {
	// Root matches the document root element.
	Root string

	// Items matches every line item node.
	Items string

	// ItemsContainer matches the element holding the line items. Present even
	// when the estimate has no items.
	ItemsContainer string

	// Header contains XPath expressions for the document-level claim block.
	Header struct {
		InsuredName     string
		PropertyAddress string
		ClaimNumber     string
		PolicyNumber    string
		DateOfLoss      string
		Deductible      string
	}

	// Item contains XPath expressions for one line item, relative to its node.
	Item struct {
		LineNumber   string
		Room         string
		Description  string
		Quantity     string
		Unit         string
		UnitPrice    string
		Tax          string
		OAndP        string
		RCV          string
		Depreciation string
		ACV          string
		Category     string
	}
}

// DefaultEstimateXPaths returns an EstimateXPaths struct with the default
// XPath expressions for an <Estimate><Header/><LineItems><Item> document.
func DefaultEstimateXPaths() EstimateXPaths {
	paths := EstimateXPaths{}

	paths.Root = "/Estimate"
	paths.Items = "/Estimate/LineItems/Item"
	paths.ItemsContainer = "/Estimate/LineItems"

	paths.Header.InsuredName = "/Estimate/Header/InsuredName"
	paths.Header.PropertyAddress = "/Estimate/Header/PropertyAddress"
	paths.Header.ClaimNumber = "/Estimate/Header/ClaimNumber"
	paths.Header.PolicyNumber = "/Estimate/Header/PolicyNumber"
	paths.Header.DateOfLoss = "/Estimate/Header/DateOfLoss"
	paths.Header.Deductible = "/Estimate/Header/Deductible"

	paths.Item.LineNumber = "LineNumber"
	paths.Item.Room = "Room"
	paths.Item.Description = "Description"
	paths.Item.Quantity = "Quantity"
	paths.Item.Unit = "Unit"
	paths.Item.UnitPrice = "UnitPrice"
	paths.Item.Tax = "Tax"
	paths.Item.OAndP = "OAndP"
	paths.Item.RCV = "RCV"
	paths.Item.Depreciation = "Depreciation"
	paths.Item.ACV = "ACV"
	paths.Item.Category = "Category"

	return paths
}
