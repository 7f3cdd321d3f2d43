package apperrors

// ErrorCode is the stable, machine-readable error identifier returned to clients.
type ErrorCode string

// Cross-cutting codes.
const (
	// System and unknown failures
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Generic business-logic codes
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeRateLimited      ErrorCode = "RATE_LIMITED"

	// Authentication and authorization
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	CodeForbidden        ErrorCode = "FORBIDDEN"
	CodeMissingToken     ErrorCode = "MISSING_TOKEN"
	CodeMalformedToken   ErrorCode = "MALFORMED_TOKEN"
	CodeTokenExpired     ErrorCode = "TOKEN_EXPIRED"
	CodeInvalidSignature ErrorCode = "INVALID_SIGNATURE"
	CodeInvalidToken     ErrorCode = "INVALID_TOKEN"
	CodeSessionRevoked   ErrorCode = "SESSION_REVOKED"
)

// Domain codes, kept wire-compatible with the mobile clients.
const (
	CodeMissingFields       ErrorCode = "MISSING_FIELDS"
	CodeInvalidEmail        ErrorCode = "INVALID_EMAIL"
	CodePhoneMismatch       ErrorCode = "PHONE_MISMATCH"
	CodeConflictingIdentity ErrorCode = "CONFLICTING_IDENTITY"
	CodeUserNotFound        ErrorCode = "USER_NOT_FOUND"
	CodeUserInactive        ErrorCode = "USER_INACTIVE"
	CodeNoFile              ErrorCode = "NO_FILE"
	CodeInvalidFileType     ErrorCode = "INVALID_FILE_TYPE"
	CodeProcessingError     ErrorCode = "PROCESSING_ERROR"
)
