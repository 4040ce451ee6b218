// Package reviewer runs rule-based quality checks over processed estimates
// and reports findings as warnings and errors.
package reviewer

import (
	"fmt"

	"fjacquet/xact-rollup/internal/logging"
	"fjacquet/xact-rollup/internal/models"
)

// Reviewer orchestrates the estimate review process.
type Reviewer struct {
	logger logging.Logger
	checks []estimateCheck
}

// NewReviewer creates a new instance of Reviewer with the default rule set.
func NewReviewer(logger logging.Logger) *Reviewer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Reviewer{
		logger: logger.WithField("component", "Reviewer"),
		checks: defaultChecks(),
	}
}

// Review runs every check against the estimate and returns the report.
// A nil or item-less estimate short-circuits to a single error finding.
func (r *Reviewer) Review(estimate *models.ProcessedEstimate, filePath string) *models.ReviewReport {
	report := models.NewReviewReport(filePath)

	if estimate == nil || len(estimate.LineItems) == 0 {
		report.AddFinding(models.Finding{
			Severity: models.SeverityError,
			Code:     models.FindingCodeEmptyEstimate,
			Message:  "estimate contains no line items",
		})
		return report
	}

	for _, check := range r.checks {
		for _, finding := range check(estimate) {
			report.AddFinding(finding)
		}
	}

	r.logger.Info("Estimate review complete",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(report.Findings)},
		logging.Field{Key: "valid", Value: report.Valid})
	return report
}

// ReviewFailure builds a report for input that could not be parsed at all.
func (r *Reviewer) ReviewFailure(filePath string, cause error) *models.ReviewReport {
	report := models.NewReviewReport(filePath)
	report.AddFinding(models.Finding{
		Severity: models.SeverityError,
		Code:     models.FindingCodeEmptyEstimate,
		Message:  fmt.Sprintf("estimate could not be parsed: %v", cause),
	})
	return report
}
