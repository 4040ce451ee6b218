package models

import (
	"time"

	"github.com/google/uuid"
)

// FindingSeverity defines the severity of a review finding.
type FindingSeverity string

const (
	// SeverityWarning flags a quality issue that does not invalidate the estimate.
	SeverityWarning FindingSeverity = "warning"
	// SeverityError flags an issue that makes the estimate invalid.
	SeverityError FindingSeverity = "error"
)

// Review finding codes.
const (
	FindingCodeEmptyEstimate     = "EMPTY_ESTIMATE"
	FindingCodeCoercedValue      = "COERCED_VALUE"
	FindingCodeUncategorized     = "UNCATEGORIZED_ITEM"
	FindingCodeACVMismatch       = "ACV_MISMATCH"
	FindingCodeZeroQuantity      = "ZERO_QUANTITY"
	FindingCodeMissingClaimField = "MISSING_CLAIM_FIELD"
	FindingCodeNegativeDeduct    = "NEGATIVE_DEDUCTIBLE"
	FindingCodeDuplicatesDropped = "DUPLICATES_DROPPED"
)

// Finding details a single quality issue discovered while reviewing an estimate.
type Finding struct {
	Severity   FindingSeverity `json:"severity" yaml:"severity"`
	Code       string          `json:"code" yaml:"code"`
	Message    string          `json:"message" yaml:"message"`
	LineNumber int             `json:"line_number,omitempty" yaml:"line_number,omitempty"`
}

// ReviewReport represents the outcome of a rule-based estimate review.
type ReviewReport struct {
	ReportID  string    `json:"report_id" yaml:"report_id"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	FilePath  string    `json:"file_path,omitempty" yaml:"file_path,omitempty"`
	Valid     bool      `json:"valid" yaml:"valid"`
	Findings  []Finding `json:"findings" yaml:"findings"`
}

// NewReviewReport creates a ReviewReport with a generated ID and timestamp.
// It starts valid; adding an error finding flips it.
func NewReviewReport(filePath string) *ReviewReport {
	return &ReviewReport{
		ReportID:  uuid.New().String(),
		Timestamp: time.Now(),
		FilePath:  filePath,
		Valid:     true,
		Findings:  []Finding{},
	}
}

// AddFinding appends a finding and updates validity.
func (r *ReviewReport) AddFinding(f Finding) {
	r.Findings = append(r.Findings, f)
	if f.Severity == SeverityError {
		r.Valid = false
	}
}

// Warnings returns the messages of all warning-severity findings.
func (r *ReviewReport) Warnings() []string {
	return r.messagesBySeverity(SeverityWarning)
}

// Errors returns the messages of all error-severity findings.
func (r *ReviewReport) Errors() []string {
	return r.messagesBySeverity(SeverityError)
}

func (r *ReviewReport) messagesBySeverity(severity FindingSeverity) []string {
	messages := []string{}
	for _, f := range r.Findings {
		if f.Severity == severity {
			messages = append(messages, f.Message)
		}
	}
	return messages
}
