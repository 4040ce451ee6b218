// Package dateutils provides common date and time operations used throughout the application.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO     = "2006-01-02"
	DateLayoutUS      = "01/02/2006"
	DateLayoutUSLoose = "1/2/2006"
	DateLayoutFull    = "2006-01-02 15:04:05"
	DateLayoutMonth   = "January 2, 2006"
)

// CommonFormats is a list of standard formats to try when parsing dates.
// US layouts come first since carrier estimates are typically written with them.
var CommonFormats = []string{
	DateLayoutUSLoose,
	DateLayoutISO,
	DateLayoutFull,
	DateLayoutMonth,
	"Jan 2, 2006",
	"2 January 2006",
	"02 Jan 2006",
	"1-2-2006",
	"2006/01/02",
	time.RFC3339,
}

// ParseDate attempts to parse a date string using multiple common formats
// Returns the parsed time and the detected format
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// NormalizeDateOfLoss normalizes a date-of-loss string to ISO format (YYYY-MM-DD).
// Empty input stays empty. When the value cannot be parsed the original string
// is returned unchanged and the second return value is false, so callers can
// record a warning.
func NormalizeDateOfLoss(dateStr string) (string, bool) {
	if strings.TrimSpace(dateStr) == "" {
		return "", true
	}

	t, _, err := ParseDate(dateStr)
	if err != nil {
		return dateStr, false
	}
	return ToISODate(t), true
}

// FormatDate formats a time.Time value according to the specified layout
// If no layout is provided, DateLayoutISO is used
func FormatDate(date time.Time, layout string) string {
	if layout == "" {
		layout = DateLayoutISO
	}
	return date.Format(layout)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// CleanDateString removes unwanted characters and normalizes a date string
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)

	re := regexp.MustCompile(`\s+`)
	dateStr = re.ReplaceAllString(dateStr, " ")

	return dateStr
}

// IsFutureDate checks if a date falls after today
func IsFutureDate(date time.Time) bool {
	return CompareDates(date, time.Now()) > 0
}

// CompareDates compares two dates and returns:
//
//	-1 if date1 is before date2
//	 0 if date1 is equal to date2
//	 1 if date1 is after date2
func CompareDates(date1, date2 time.Time) int {
	// Normalize dates to remove time component
	date1 = time.Date(date1.Year(), date1.Month(), date1.Day(), 0, 0, 0, 0, time.UTC)
	date2 = time.Date(date2.Year(), date2.Month(), date2.Day(), 0, 0, 0, 0, time.UTC)

	if date1.Before(date2) {
		return -1
	} else if date1.After(date2) {
		return 1
	} else {
		return 0
	}
}
