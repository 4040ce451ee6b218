// Package currencyutils provides common currency and decimal operations used throughout the application.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"fjacquet/xact-rollup/internal/logging"

	"github.com/shopspring/decimal"
)

var log = logging.GetLogger()

// SetLogger sets a custom logger for this package
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

var currencySymbolRe = regexp.MustCompile(`[€$£¥\s]|USD`)

// ParseAmount parses a string representation of a monetary amount into a decimal value.
// It handles formats like "$1,234.56", "1234.56", "(123.45)" and "-123.45".
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	// Return zero for empty strings
	if strings.TrimSpace(amountStr) == "" {
		return decimal.Zero, nil
	}

	standardized := StandardizeAmount(amountStr)

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}

	return amount, nil
}

// CoerceAmount parses a monetary string and coerces unparseable values to zero.
// The second return value is false when the value was coerced, so callers can
// record a warning.
func CoerceAmount(amountStr string) (decimal.Decimal, bool) {
	amount, err := ParseAmount(amountStr)
	if err != nil {
		log.WithFields(logging.Field{Key: "value", Value: amountStr}).
			Warn("Monetary value could not be parsed, coercing to zero")
		return decimal.Zero, false
	}
	return amount, true
}

// StandardizeAmount converts various currency string formats to a standard format
// that can be parsed by decimal.NewFromString.
// Handles patterns like "$1,234.56", "USD 1234.56", "(500.00)", "1'234.56" and "1.234,56".
func StandardizeAmount(amountStr string) string {
	amountStr = strings.TrimSpace(amountStr)

	// Accounting notation wraps negative amounts in parentheses
	negative := false
	if strings.HasPrefix(amountStr, "(") && strings.HasSuffix(amountStr, ")") {
		negative = true
		amountStr = amountStr[1 : len(amountStr)-1]
	}

	// Remove currency symbols, codes and whitespace
	amountStr = currencySymbolRe.ReplaceAllString(amountStr, "")

	if strings.Contains(amountStr, ",") && strings.Contains(amountStr, ".") {
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// European format (1.234,56)
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// US format (1,234.56)
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	} else if strings.Contains(amountStr, ",") {
		// Comma alone is either a decimal separator (123,45) or a thousand separator (1,234)
		parts := strings.Split(amountStr, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	}

	// Remove apostrophes used as thousand separators (1'234.56)
	amountStr = strings.ReplaceAll(amountStr, "'", "")

	if negative && !strings.HasPrefix(amountStr, "-") {
		amountStr = "-" + amountStr
	}

	return amountStr
}

// FormatAmount formats a decimal amount with two decimal places.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatUSD formats a decimal amount as a US dollar string like "$1234.56".
func FormatUSD(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// IsNegative checks if an amount is negative
func IsNegative(amount decimal.Decimal) bool {
	return amount.LessThan(decimal.Zero)
}

// IsPositive checks if an amount is positive
func IsPositive(amount decimal.Decimal) bool {
	return amount.GreaterThan(decimal.Zero)
}

// IsZero checks if an amount is zero
func IsZero(amount decimal.Decimal) bool {
	return amount.Equal(decimal.Zero)
}

// ExtendedTotal computes quantity x unit price plus tax and overhead & profit.
// It is the expected replacement cost value of a line item.
func ExtendedTotal(quantity, unitPrice, tax, oAndP decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice).Add(tax).Add(oAndP)
}
