package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidCredentials     ErrorCode = "AUTH_001"
	AuthMissingToken           ErrorCode = "AUTH_002"
	AuthExpiredToken           ErrorCode = "AUTH_003"
	AuthInvalidTokenFormat     ErrorCode = "AUTH_004"
	AuthInsufficientPermission ErrorCode = "AUTH_005"
	AuthAccountLocked          ErrorCode = "AUTH_006"
	AuthEmailAlreadyRegistered ErrorCode = "AUTH_007"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
	ValidationInvalidDate   ErrorCode = "VALIDATION_005"
)

// Cashflow entry error codes (ENTRY_*)
const (
	EntryNotFound      ErrorCode = "ENTRY_001"
	EntryInvalidKind   ErrorCode = "ENTRY_002"
	EntryInvalidAmount ErrorCode = "ENTRY_003"
	EntryInvalidDate   ErrorCode = "ENTRY_004"
	EntryNotOwned      ErrorCode = "ENTRY_005"
)

// Reporting error codes (REPORT_*)
const (
	ReportInvalidWindow ErrorCode = "REPORT_001"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	AuthInvalidCredentials:     "Invalid email or password",
	AuthMissingToken:           "Authorization token is required",
	AuthExpiredToken:           "Authorization token has expired",
	AuthInvalidTokenFormat:     "Invalid authorization token format",
	AuthInsufficientPermission: "Insufficient permissions to access this resource",
	AuthAccountLocked:          "Account is locked due to too many failed login attempts",
	AuthEmailAlreadyRegistered: "An account with this email already exists",

	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationOutOfRange:    "Field value is out of allowed range",
	ValidationInvalidDate:   "Invalid date format or range",

	EntryNotFound:      "Cashflow entry not found",
	EntryInvalidKind:   "Entry kind must be income or expense",
	EntryInvalidAmount: "Invalid entry amount",
	EntryInvalidDate:   "Invalid entry date",
	EntryNotOwned:      "Cashflow entry belongs to another user",

	ReportInvalidWindow: "Report window must be a positive number of days",

	SystemInternalError:      "An internal error occurred",
	SystemDatabaseError:      "A database error occurred",
	SystemServiceUnavailable: "Service is temporarily unavailable",
	SystemRateLimitExceeded:  "Too many requests, please try again later",
}

// GetErrorMessage returns the default message for an error code
func GetErrorMessage(code ErrorCode) string {
	if message, exists := errorMessages[code]; exists {
		return message
	}
	return "An unexpected error occurred"
}
