package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Holder error codes (HOLDER_*)
const (
	HolderNotSelected ErrorCode = "HOLDER_001"
	HolderNoData      ErrorCode = "HOLDER_002"
)

// Fetch error codes (FETCH_*)
const (
	FetchTransportFailed ErrorCode = "FETCH_001"
	FetchBadStatus       ErrorCode = "FETCH_002"
	FetchMalformedBody   ErrorCode = "FETCH_003"
	FetchInFlight        ErrorCode = "FETCH_004"
)

// Upload error codes (UPLOAD_*)
const (
	UploadFailed      ErrorCode = "UPLOAD_001"
	UploadMissingFile ErrorCode = "UPLOAD_002"
	UploadNotPDF      ErrorCode = "UPLOAD_003"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral         ErrorCode = "VALIDATION_001"
	ValidationInvalidViewMode ErrorCode = "VALIDATION_002"
	ValidationInvalidTopN     ErrorCode = "VALIDATION_003"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError     ErrorCode = "SYSTEM_001"
	SystemRateLimitExceeded ErrorCode = "SYSTEM_002"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Holder errors
	HolderNotSelected: "No account holder is selected",
	HolderNoData:      "No data available for this account holder",

	// Fetch errors
	FetchTransportFailed: "Failed to reach the analysis backend",
	FetchBadStatus:       "The analysis backend rejected the request",
	FetchMalformedBody:   "The analysis backend returned an unreadable payload",
	FetchInFlight:        "A fetch for this view is still in progress",

	// Upload errors
	UploadFailed:      "There was an error processing the uploaded file",
	UploadMissingFile: "No file was attached to the upload",
	UploadNotPDF:      "Only PDF statements can be uploaded",

	// Validation errors
	ValidationGeneral:         "Validation failed",
	ValidationInvalidViewMode: "Unknown view mode",
	ValidationInvalidTopN:     "Category limit must be a positive integer",

	// System errors
	SystemInternalError:     "An unexpected error occurred. Please contact support with trace ID",
	SystemRateLimitExceeded: "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
