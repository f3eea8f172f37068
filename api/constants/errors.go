package constants

import "fmt"

// ============================================================================
// FILE UPLOAD ERRORS
// ============================================================================

const (
	ErrNoFileUploaded    = "No file uploaded"
	ErrInvalidFileFormat = "Invalid file type. Only Excel files are allowed"
	ErrFileTooLarge      = "File size exceeds the maximum limit of %d MB"
	ErrFileParsingFailed = "Failed to parse file contents. Please check the file format"
	ErrFileSaveFailed    = "Failed to store uploaded file"
)

// ============================================================================
// REPORT ERRORS
// ============================================================================

const (
	ErrReportNotFound     = "Report not found"
	ErrReportWriteFailed  = "Failed to write report file"
	ErrExportFailed       = "Failed to build export workbook"
	ErrOutputFileNotFound = "File not found"
)

// ============================================================================
// INPUT VALIDATION ERRORS
// ============================================================================

const (
	ErrMissingRequiredField = "Required field '%s' is missing"
	ErrInvalidFieldValue    = "Invalid value for field '%s': %s"
	ErrInvalidDateFormat    = "Invalid date format for '%s'. Expected format: YYYY-MM-DD"
	ErrInvalidPercent       = "Percent for merchant '%s' must be between 0 and 100"
)

// ============================================================================
// GENERAL ERRORS
// ============================================================================

const (
	ErrInternalServer = "Internal server error. Please contact support"
	ErrInvalidRequest = "Invalid request. Please check your input"
)

// ============================================================================
// HELPER FUNCTIONS TO FORMAT ERRORS WITH CONTEXT
// ============================================================================

// FormatFieldError formats an error for a specific field
func FormatFieldError(fieldName string, reason string) string {
	return fmt.Sprintf(ErrInvalidFieldValue, fieldName, reason)
}

// FormatMissingFieldError formats a missing field error
func FormatMissingFieldError(fieldName string) string {
	return fmt.Sprintf(ErrMissingRequiredField, fieldName)
}

// FormatDateError formats an invalid date error for a field
func FormatDateError(fieldName string) string {
	return fmt.Sprintf(ErrInvalidDateFormat, fieldName)
}
