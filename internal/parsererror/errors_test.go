package parsererror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		expected string
	}{
		{
			name: "basic parse error",
			err: &ParseError{
				Parser: "csv",
				Field:  "rcv",
				Value:  "abc",
				Err:    errors.New("invalid decimal"),
			},
			expected: "csv: failed to parse rcv='abc': invalid decimal",
		},
		{
			name: "parse error with empty value",
			err: &ParseError{
				Parser: "xlsx",
				Field:  "quantity",
				Value:  "",
				Err:    errors.New("empty quantity"),
			},
			expected: "xlsx: failed to parse quantity='': empty quantity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestParseError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	parseErr := &ParseError{
		Parser: "json",
		Field:  "deductible",
		Value:  "n/a",
		Err:    originalErr,
	}

	assert.Equal(t, originalErr, parseErr.Unwrap())
	assert.True(t, errors.Is(parseErr, originalErr))
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ValidationError
		expected string
	}{
		{
			name: "basic validation error",
			err: &ValidationError{
				FilePath: "/path/to/estimate.xml",
				Reason:   "not a valid estimate document",
			},
			expected: "validation failed for /path/to/estimate.xml: not a valid estimate document",
		},
		{
			name: "validation error for empty document",
			err: &ValidationError{
				FilePath: "/path/to/empty.csv",
				Reason:   "no line items found",
			},
			expected: "validation failed for /path/to/empty.csv: no line items found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	underlyingErr := errors.New("underlying error")
	valErr := &ValidationError{
		FilePath: "/path/to/estimate.xml",
		Reason:   "invalid format",
		Err:      underlyingErr,
	}

	assert.Equal(t, underlyingErr, valErr.Unwrap())

	valErrNoWrap := &ValidationError{
		FilePath: "/path/to/estimate.xml",
		Reason:   "invalid format",
	}
	assert.Nil(t, valErrNoWrap.Unwrap())
}

func TestCategorizationError(t *testing.T) {
	tests := []struct {
		name     string
		err      *CategorizationError
		expected string
	}{
		{
			name: "ai strategy failure",
			err: &CategorizationError{
				Description: "R&R drywall ceiling",
				Strategy:    "AI",
				Err:         errors.New("API timeout"),
			},
			expected: `categorization failed for "R&R drywall ceiling" using AI: API timeout`,
		},
		{
			name: "keyword strategy failure",
			err: &CategorizationError{
				Description: "Unknown line",
				Strategy:    "Keyword",
				Err:         errors.New("rule table not loaded"),
			},
			expected: `categorization failed for "Unknown line" using Keyword: rule table not loaded`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestCategorizationError_Unwrap(t *testing.T) {
	originalErr := errors.New("network error")
	catErr := &CategorizationError{
		Description: "Clean carpet",
		Strategy:    "AI",
		Err:         originalErr,
	}

	assert.Equal(t, originalErr, catErr.Unwrap())
	assert.True(t, errors.Is(catErr, originalErr))
}

func TestInvalidFormatError(t *testing.T) {
	tests := []struct {
		name     string
		err      *InvalidFormatError
		expected string
	}{
		{
			name: "with content snippet",
			err: &InvalidFormatError{
				FilePath:             "/path/to/file.xml",
				ExpectedFormat:       "Estimate XML",
				ActualContentSnippet: "{\"line_items\":",
				Msg:                  "file appears to be JSON",
			},
			expected: "invalid format in file '/path/to/file.xml': file appears to be JSON. Expected: Estimate XML. Content snippet: '{\"line_items\":'",
		},
		{
			name: "without content snippet",
			err: &InvalidFormatError{
				FilePath:       "/path/to/file.csv",
				ExpectedFormat: "line-item CSV",
				Msg:            "missing required headers",
			},
			expected: "invalid format in file '/path/to/file.csv': missing required headers. Expected: line-item CSV",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestUnsupportedFormatError(t *testing.T) {
	err := &UnsupportedFormatError{Format: "docx"}
	assert.Equal(t, "unsupported estimate format: docx", err.Error())
}

func TestDataExtractionError(t *testing.T) {
	err := &DataExtractionError{
		FilePath:  "/path/to/file.xlsx",
		FieldName: "unit_price",
		Reason:    "unsupported number format",
		Msg:       "could not parse amount",
	}
	expected := "data extraction failed in file '/path/to/file.xlsx' for field 'unit_price': could not parse amount. Reason: unsupported number format"
	assert.Equal(t, expected, err.Error())
}

func TestErrorTypeAssertions(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected interface{}
	}{
		{
			name:     "ParseError",
			err:      &ParseError{Parser: "csv", Field: "rcv", Value: "x", Err: errors.New("test")},
			expected: &ParseError{},
		},
		{
			name:     "ValidationError",
			err:      &ValidationError{FilePath: "f", Reason: "r"},
			expected: &ValidationError{},
		},
		{
			name:     "CategorizationError",
			err:      &CategorizationError{Description: "d", Strategy: "s", Err: errors.New("test")},
			expected: &CategorizationError{},
		},
		{
			name:     "InvalidFormatError",
			err:      &InvalidFormatError{FilePath: "f", ExpectedFormat: "csv", Msg: "m"},
			expected: &InvalidFormatError{},
		},
		{
			name:     "UnsupportedFormatError",
			err:      &UnsupportedFormatError{Format: "docx"},
			expected: &UnsupportedFormatError{},
		},
		{
			name:     "FileError",
			err:      &FileError{Path: "f", Op: "open", Err: errors.New("test")},
			expected: &FileError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.IsType(t, tt.expected, tt.err)
		})
	}
}

func TestFileError(t *testing.T) {
	originalErr := errors.New("permission denied")
	fileErr := &FileError{
		Path: "/data/estimate.csv",
		Op:   "open",
		Err:  originalErr,
	}

	assert.Equal(t, "file open failed for '/data/estimate.csv': permission denied", fileErr.Error())
	assert.Equal(t, originalErr, fileErr.Unwrap())
	assert.True(t, errors.Is(fileErr, originalErr))
}
