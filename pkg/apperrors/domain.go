package apperrors

import (
	"net/http"
)

/*
Factories and predefined variables for domain errors. The HTTP codes mirror
what the mobile clients already expect: identity conflicts come back as 400,
not 409, because released client versions treat any 4xx other than 400/401 as
a hard failure.
*/

// =========================================================================
// Factories (wrap repository/collaborator errors)
// =========================================================================

// ErrNotFound converts a repository miss (e.g. gorm.ErrRecordNotFound) into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrDatabase wraps a datastore failure after the transaction has rolled back.
func ErrDatabase(err error) *AppError {
	return Wrap(err, CodeDatabaseError, "storage", "Datastore operation failed", http.StatusInternalServerError)
}

// ErrIdentityProvider wraps a failure talking to the external identity provider.
func ErrIdentityProvider(err error) *AppError {
	return Wrap(err, CodeExternalServiceError, "identity", "Identity verification service unavailable", http.StatusUnauthorized)
}

// =========================================================================
// Auth flow
// =========================================================================

var ErrMissingToken = New(
	CodeMissingToken,
	"auth",
	"Authentication token required",
	http.StatusUnauthorized,
)

var ErrMalformedToken = New(
	CodeMalformedToken,
	"auth",
	"Authorization header is malformed",
	http.StatusUnauthorized,
)

var ErrTokenExpired = New(
	CodeTokenExpired,
	"auth",
	"Authentication token has expired",
	http.StatusUnauthorized,
)

var ErrInvalidSignature = New(
	CodeInvalidSignature,
	"auth",
	"Authentication token signature is invalid",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid authentication token",
	http.StatusUnauthorized,
)

var ErrSessionRevoked = New(
	CodeSessionRevoked,
	"auth",
	"Session has been revoked",
	http.StatusUnauthorized,
)

// =========================================================================
// User directory
// =========================================================================

// ErrMissingFields reports which required registration fields were absent.
func ErrMissingFields(fields []string) *AppError {
	return New(CodeMissingFields, "user", "All fields are required", http.StatusBadRequest).
		WithDetails(map[string]interface{}{"missing": fields})
}

var ErrInvalidEmail = New(
	CodeInvalidEmail,
	"user",
	"Invalid email address",
	http.StatusBadRequest,
)

var ErrPhoneMismatch = New(
	CodePhoneMismatch,
	"user",
	"Phone number verification failed",
	http.StatusUnauthorized,
)

// ErrConflictingIdentity fires when an email or phone is already bound to a
// different external identity. 400 for client compatibility, see file comment.
var ErrConflictingIdentity = New(
	CodeConflictingIdentity,
	"user",
	"Email or phone number already registered to another account",
	http.StatusBadRequest,
)

var ErrUserNotFound = New(
	CodeUserNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

var ErrUserInactive = New(
	CodeUserInactive,
	"user",
	"User not found or inactive",
	http.StatusUnauthorized,
)

// =========================================================================
// Uploads & analysis
// =========================================================================

// ErrNoFile fires when the expected multipart field is absent or empty.
func ErrNoFile(field string) *AppError {
	return New(CodeNoFile, "upload", "No "+field+" file provided", http.StatusBadRequest)
}

// ErrInvalidFileType reports the allowed extensions back to the client.
func ErrInvalidFileType(allowed []string) *AppError {
	return New(CodeInvalidFileType, "upload", "Invalid file type", http.StatusBadRequest).
		WithDetails(map[string]interface{}{"allowed": allowed})
}

// ErrProcessing wraps an analyzer or storage failure during upload handling.
func ErrProcessing(err error) *AppError {
	return Wrap(err, CodeProcessingError, "diagnosis", "Failed to process file", http.StatusInternalServerError)
}

var ErrRateLimited = New(
	CodeRateLimited,
	"ratelimit",
	"Too many requests, slow down",
	http.StatusTooManyRequests,
)
