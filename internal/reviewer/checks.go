package reviewer

import (
	"fmt"

	"fjacquet/xact-rollup/internal/models"

	"github.com/shopspring/decimal"
)

// estimateCheck inspects one aspect of a processed estimate and returns its
// findings. Checks never mutate the estimate.
type estimateCheck func(estimate *models.ProcessedEstimate) []models.Finding

// centTolerance absorbs rounding differences between reported and derived acv.
var centTolerance = decimal.New(1, -2)

// defaultChecks returns the review rules in the order their findings appear.
func defaultChecks() []estimateCheck {
	return []estimateCheck{
		checkCoercedValues,
		checkUncategorizedItems,
		checkACVConsistency,
		checkZeroQuantity,
		checkClaimFields,
		checkDeductible,
		checkDuplicatesRemoved,
	}
}

// checkCoercedValues surfaces the parse-stage coercion warnings carried in the
// response metadata.
func checkCoercedValues(estimate *models.ProcessedEstimate) []models.Finding {
	var findings []models.Finding
	for _, warning := range estimate.Metadata.Warnings {
		findings = append(findings, models.Finding{
			Severity: models.SeverityWarning,
			Code:     models.FindingCodeCoercedValue,
			Message:  warning,
		})
	}
	return findings
}

// checkUncategorizedItems flags items that resolved to the GENERAL fallback.
func checkUncategorizedItems(estimate *models.ProcessedEstimate) []models.Finding {
	var findings []models.Finding
	for _, item := range estimate.LineItems {
		if item.Category != models.CategoryGeneral {
			continue
		}
		findings = append(findings, models.Finding{
			Severity:   models.SeverityWarning,
			Code:       models.FindingCodeUncategorized,
			Message:    fmt.Sprintf("line %d: %q did not match any category rule", item.LineNumber, item.Description),
			LineNumber: item.LineNumber,
		})
	}
	return findings
}

// checkACVConsistency flags items whose reported acv drifts from
// rcv - depreciation by more than one cent.
func checkACVConsistency(estimate *models.ProcessedEstimate) []models.Finding {
	var findings []models.Finding
	for _, item := range estimate.LineItems {
		diff := item.ACV.Sub(item.ImpliedACV()).Abs()
		if diff.LessThanOrEqual(centTolerance) {
			continue
		}
		findings = append(findings, models.Finding{
			Severity:   models.SeverityWarning,
			Code:       models.FindingCodeACVMismatch,
			Message:    fmt.Sprintf("line %d: acv %s does not equal rcv %s minus depreciation %s", item.LineNumber, item.ACV, item.RCV, item.Depreciation),
			LineNumber: item.LineNumber,
		})
	}
	return findings
}

// checkZeroQuantity flags items billing a positive rcv against no quantity.
func checkZeroQuantity(estimate *models.ProcessedEstimate) []models.Finding {
	var findings []models.Finding
	for _, item := range estimate.LineItems {
		if !item.RCV.IsPositive() || !item.Quantity.IsZero() {
			continue
		}
		findings = append(findings, models.Finding{
			Severity:   models.SeverityWarning,
			Code:       models.FindingCodeZeroQuantity,
			Message:    fmt.Sprintf("line %d: rcv %s billed with zero quantity", item.LineNumber, item.RCV),
			LineNumber: item.LineNumber,
		})
	}
	return findings
}

// checkClaimFields flags missing claim identification in the header.
func checkClaimFields(estimate *models.ProcessedEstimate) []models.Finding {
	var findings []models.Finding
	if estimate.Header.ClaimNumber == "" {
		findings = append(findings, models.Finding{
			Severity: models.SeverityWarning,
			Code:     models.FindingCodeMissingClaimField,
			Message:  "header is missing claim_number",
		})
	}
	if estimate.Header.DateOfLoss == "" {
		findings = append(findings, models.Finding{
			Severity: models.SeverityWarning,
			Code:     models.FindingCodeMissingClaimField,
			Message:  "header is missing date_of_loss",
		})
	}
	return findings
}

// checkDeductible flags a negative header deductible.
func checkDeductible(estimate *models.ProcessedEstimate) []models.Finding {
	if !estimate.Header.Deductible.IsNegative() {
		return nil
	}
	return []models.Finding{{
		Severity: models.SeverityError,
		Code:     models.FindingCodeNegativeDeduct,
		Message:  fmt.Sprintf("header deductible %s is negative", estimate.Header.Deductible),
	}}
}

// checkDuplicatesRemoved surfaces dropped duplicate rows as a warning.
func checkDuplicatesRemoved(estimate *models.ProcessedEstimate) []models.Finding {
	if estimate.Metadata.DuplicatesRemoved == 0 {
		return nil
	}
	return []models.Finding{{
		Severity: models.SeverityWarning,
		Code:     models.FindingCodeDuplicatesDropped,
		Message:  fmt.Sprintf("%d duplicate line items removed before aggregation", estimate.Metadata.DuplicatesRemoved),
	}}
}
