package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReviewReport(t *testing.T) {
	report := NewReviewReport("/data/estimate.csv")

	assert.NotEmpty(t, report.ReportID)
	assert.False(t, report.Timestamp.IsZero())
	assert.Equal(t, "/data/estimate.csv", report.FilePath)
	assert.True(t, report.Valid)
	assert.Empty(t, report.Findings)
}

func TestReviewReportAddFinding(t *testing.T) {
	report := NewReviewReport("")

	report.AddFinding(Finding{
		Severity: SeverityWarning,
		Code:     FindingCodeZeroQuantity,
		Message:  "line 3 has positive RCV with zero quantity",
	})
	assert.True(t, report.Valid, "warnings keep the report valid")

	report.AddFinding(Finding{
		Severity: SeverityError,
		Code:     FindingCodeNegativeDeduct,
		Message:  "deductible is negative",
	})
	assert.False(t, report.Valid, "an error finding invalidates the report")
	assert.Len(t, report.Findings, 2)
}

func TestReviewReportSeverityBuckets(t *testing.T) {
	report := NewReviewReport("")
	report.AddFinding(Finding{Severity: SeverityWarning, Code: FindingCodeUncategorized, Message: "w1"})
	report.AddFinding(Finding{Severity: SeverityError, Code: FindingCodeEmptyEstimate, Message: "e1"})
	report.AddFinding(Finding{Severity: SeverityWarning, Code: FindingCodeACVMismatch, Message: "w2"})

	assert.Equal(t, []string{"w1", "w2"}, report.Warnings())
	assert.Equal(t, []string{"e1"}, report.Errors())
}

func TestReviewReportEmptyBuckets(t *testing.T) {
	report := NewReviewReport("")
	assert.Empty(t, report.Warnings())
	assert.Empty(t, report.Errors())
}
