// Package report renders processed estimates as JSON or XML report documents
// and writes them to disk.
package report

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/xact-rollup/internal/logging"
	"fjacquet/xact-rollup/internal/models"

	"github.com/shopspring/decimal"
)

// ReportGenerator provides functionality to generate estimate reports in
// various formats.
type ReportGenerator struct {
	logger logging.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator. A nil logger
// falls back to the shared application logger.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &ReportGenerator{logger: logger}
}

// GenerateReport generates an estimate report in the specified format (json or xml).
// It returns the report as a byte slice and an error if generation fails or the
// format is unsupported.
func (g *ReportGenerator) GenerateReport(estimate *models.ProcessedEstimate, format string) ([]byte, error) {
	if estimate == nil {
		return nil, fmt.Errorf("cannot generate report from nil estimate")
	}
	switch format {
	case models.FormatJSON:
		return g.generateJSONReport(estimate)
	case models.FormatXML:
		return g.generateXMLReport(estimate)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// WriteReport generates the report and writes it to the given path, creating
// parent directories as needed.
func (g *ReportGenerator) WriteReport(estimate *models.ProcessedEstimate, format, path string) error {
	data, err := g.GenerateReport(estimate, format)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, models.PermissionReportFile); err != nil {
		g.logger.WithError(err).WithField(logging.FieldOutputFile, path).Error("Failed to write report")
		return fmt.Errorf("failed to write report: %w", err)
	}

	g.logger.Info("Report written",
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldFormat, Value: format})
	return nil
}

// generateJSONReport generates an estimate report in JSON format.
func (g *ReportGenerator) generateJSONReport(estimate *models.ProcessedEstimate) ([]byte, error) {
	jsonReport, err := json.MarshalIndent(estimate, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return jsonReport, nil
}

// generateXMLReport generates an estimate report in XML format. The document
// uses the same Estimate/Header/LineItems/Item element layout the XML parser
// reads, so an XML report can be fed back through the pipeline.
func (g *ReportGenerator) generateXMLReport(estimate *models.ProcessedEstimate) ([]byte, error) {
	xmlReport, err := xml.MarshalIndent(newXMLEstimate(estimate), "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal XML report")
		return nil, fmt.Errorf("failed to marshal XML report: %w", err)
	}
	return []byte(xml.Header + string(xmlReport)), nil
}

type xmlEstimate struct {
	XMLName    xml.Name      `xml:"Estimate"`
	Success    bool          `xml:"Success"`
	Header     xmlHeader     `xml:"Header"`
	LineItems  xmlLineItems  `xml:"LineItems"`
	Categories []xmlCategory `xml:"Categories>Category"`
	Totals     xmlTotals     `xml:"Totals"`
	Metadata   xmlMetadata   `xml:"Metadata"`
}

type xmlHeader struct {
	InsuredName     string          `xml:"InsuredName"`
	PropertyAddress string          `xml:"PropertyAddress"`
	ClaimNumber     string          `xml:"ClaimNumber"`
	PolicyNumber    string          `xml:"PolicyNumber"`
	DateOfLoss      string          `xml:"DateOfLoss"`
	Deductible      decimal.Decimal `xml:"Deductible"`
}

// xmlLineItems keeps the <LineItems> container present even when the estimate
// has no items, so the document still validates as estimate XML.
type xmlLineItems struct {
	Items []xmlLineItem `xml:"Item"`
}

type xmlLineItem struct {
	LineNumber   int             `xml:"LineNumber"`
	Room         string          `xml:"Room"`
	Description  string          `xml:"Description"`
	Quantity     decimal.Decimal `xml:"Quantity"`
	Unit         string          `xml:"Unit"`
	UnitPrice    decimal.Decimal `xml:"UnitPrice"`
	Tax          decimal.Decimal `xml:"Tax"`
	OAndP        decimal.Decimal `xml:"OAndP"`
	RCV          decimal.Decimal `xml:"RCV"`
	Depreciation decimal.Decimal `xml:"Depreciation"`
	ACV          decimal.Decimal `xml:"ACV"`
	Category     string          `xml:"Category"`
}

type xmlCategory struct {
	Name         string          `xml:"Name"`
	RCV          decimal.Decimal `xml:"RCV"`
	Depreciation decimal.Decimal `xml:"Depreciation"`
	ACV          decimal.Decimal `xml:"ACV"`
	ItemCount    int             `xml:"ItemCount"`
	UniqueItems  []string        `xml:"UniqueItems>Item"`
}

type xmlTotals struct {
	RCV          decimal.Decimal `xml:"RCV"`
	Depreciation decimal.Decimal `xml:"Depreciation"`
	ACV          decimal.Decimal `xml:"ACV"`
	Deductible   decimal.Decimal `xml:"Deductible"`
	NetClaim     decimal.Decimal `xml:"NetClaim"`
}

type xmlMetadata struct {
	TotalLineItems    int      `xml:"TotalLineItems"`
	TotalCategories   int      `xml:"TotalCategories"`
	Rooms             []string `xml:"Rooms>Room"`
	DuplicatesRemoved int      `xml:"DuplicatesRemoved"`
	Warnings          []string `xml:"Warnings>Warning"`
}

func newXMLEstimate(estimate *models.ProcessedEstimate) xmlEstimate {
	doc := xmlEstimate{
		Success: estimate.Success,
		Header: xmlHeader{
			InsuredName:     estimate.Header.InsuredName,
			PropertyAddress: estimate.Header.PropertyAddress,
			ClaimNumber:     estimate.Header.ClaimNumber,
			PolicyNumber:    estimate.Header.PolicyNumber,
			DateOfLoss:      estimate.Header.DateOfLoss,
			Deductible:      estimate.Header.Deductible,
		},
		Totals: xmlTotals{
			RCV:          estimate.Totals.RCV,
			Depreciation: estimate.Totals.Depreciation,
			ACV:          estimate.Totals.ACV,
			Deductible:   estimate.Totals.Deductible,
			NetClaim:     estimate.Totals.NetClaim,
		},
		Metadata: xmlMetadata{
			TotalLineItems:    estimate.Metadata.TotalLineItems,
			TotalCategories:   estimate.Metadata.TotalCategories,
			Rooms:             estimate.Metadata.Rooms,
			DuplicatesRemoved: estimate.Metadata.DuplicatesRemoved,
			Warnings:          estimate.Metadata.Warnings,
		},
	}
	for _, item := range estimate.LineItems {
		doc.LineItems.Items = append(doc.LineItems.Items, xmlLineItem{
			LineNumber:   item.LineNumber,
			Room:         item.Room,
			Description:  item.Description,
			Quantity:     item.Quantity,
			Unit:         item.Unit,
			UnitPrice:    item.UnitPrice,
			Tax:          item.Tax,
			OAndP:        item.OAndP,
			RCV:          item.RCV,
			Depreciation: item.Depreciation,
			ACV:          item.ACV,
			Category:     item.Category,
		})
	}
	for _, cat := range estimate.Categories {
		doc.Categories = append(doc.Categories, xmlCategory{
			Name:         cat.Name,
			RCV:          cat.RCV,
			Depreciation: cat.Depreciation,
			ACV:          cat.ACV,
			ItemCount:    cat.ItemCount,
			UniqueItems:  cat.UniqueItems,
		})
	}
	return doc
}
