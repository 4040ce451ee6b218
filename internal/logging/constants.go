package logging

// Standardized field names for structured logging.
// These constants ensure consistency across the application's log output,
// making logs easier to parse, filter, and analyze.
const (
	FieldFile        = "file_path"
	FieldParser      = "parser"
	FieldFormat      = "format"
	FieldLineNumber  = "line_number"
	FieldCategory    = "category"
	FieldRoom        = "room"
	FieldClaimNumber = "claim_number"
	FieldReason      = "reason"
	FieldOperation   = "operation"
	FieldStatus      = "status"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
	FieldCount       = "count"
	FieldStrategy    = "strategy"
	FieldRequestID   = "request_id"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
)
