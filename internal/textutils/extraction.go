// Package textutils provides text normalization and extraction utilities.
package textutils

import (
	"regexp"
	"strings"
	"time"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// CollapseWhitespace replaces runs of whitespace with a single space and trims
// leading and trailing whitespace.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// NormalizeDescription normalizes a line-item description for comparison.
// The result is upper-cased with collapsed whitespace, suitable as a
// duplicate key or cache key.
func NormalizeDescription(s string) string {
	return strings.ToUpper(CollapseWhitespace(s))
}

// NormalizeUnit normalizes a unit code (SF, LF, EA, ...) for comparison.
func NormalizeUnit(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ExtractLabeledValue extracts the value following any of the given labels
// in a block of text, e.g. "Claim Number: ABC-123".
func ExtractLabeledValue(text string, labels ...string) string {
	for _, label := range labels {
		pattern := `(?i)` + regexp.QuoteMeta(label) + `[:\s]\s*([^\n;]+)`
		matches := regexp.MustCompile(pattern).FindStringSubmatch(text)
		if len(matches) > 1 {
			return strings.TrimSpace(matches[1])
		}
	}

	return ""
}

// dateLayouts are the input date formats accepted by NormalizeDate, in the
// order they are tried. Claim documents most commonly carry US-style dates.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"1/2/2006",
	"1/2/06",
	"1-2-2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// NormalizeDate normalizes a date string to YYYY-MM-DD. Strings that match
// none of the known layouts are returned unchanged after trimming.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}

	return s
}

// ExtractClaimNumber attempts to extract a claim number from header text.
func ExtractClaimNumber(text string) string {
	return ExtractLabeledValue(text, "Claim Number", "Claim #", "Claim No", "Claim")
}

// ExtractPolicyNumber attempts to extract a policy number from header text.
func ExtractPolicyNumber(text string) string {
	return ExtractLabeledValue(text, "Policy Number", "Policy #", "Policy No", "Policy")
}

// ExtractDateOfLoss attempts to extract the date of loss from header text.
func ExtractDateOfLoss(text string) string {
	return ExtractLabeledValue(text, "Date of Loss", "Loss Date", "DOL")
}

// ExtractInsuredName attempts to extract the insured party's name from header text.
func ExtractInsuredName(text string) string {
	return ExtractLabeledValue(text, "Insured Name", "Insured", "Name of Insured")
}

// ExtractPropertyAddress attempts to extract the property address from header text.
func ExtractPropertyAddress(text string) string {
	return ExtractLabeledValue(text, "Property Address", "Property", "Loss Address", "Address")
}

// ExtractDeductible attempts to extract the deductible amount from header text.
// The returned string still needs numeric coercion.
func ExtractDeductible(text string) string {
	return ExtractLabeledValue(text, "Deductible", "Ded")
}
