package logger

// Standard field names for consistent structured logging across iostub.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Components
	FieldComponent = "component"
	FieldOperation = "operation"

	// Registry
	FieldModality = "modality"
	FieldSuffix   = "suffix"
	FieldHandler  = "handler"

	// Generation
	FieldPath       = "path"
	FieldStubFile   = "stub_file"
	FieldTypeString = "type"

	// Errors
	FieldError = "error"

	// Counts
	FieldCount = "count"
)
