package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Error codes shared by the service layer and the HTTP API.
const (
	CodeValidation       = "ValidationError"
	CodePersistence      = "PersistenceError"
	CodeResourceNotFound = "ResourceNotFound"
	CodeInvalidRequest   = "InvalidRequest"
	CodeInternal         = "InternalError"
)

// StandardError represents a standardized error response
type StandardError struct {
	Code    string `json:"error"`   // Error code/type (e.g., "ValidationError", "PersistenceError")
	Message string `json:"message"` // Human-readable error message
	Details string `json:"details"` // Additional details (field name, operation, cause)
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *StandardError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause, if any
func (e *StandardError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the appropriate HTTP status code for the error
func (e *StandardError) HTTPStatus() int {
	switch e.Code {
	case CodeInvalidRequest, CodeValidation:
		return http.StatusBadRequest
	case CodeResourceNotFound:
		return http.StatusNotFound
	case CodePersistence, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// NewStandardError creates a new StandardError
func NewStandardError(errorCode, message, details string) *StandardError {
	return &StandardError{
		Code:    errorCode,
		Message: message,
		Details: details,
	}
}

// Common error constructors
func NewInvalidRequest(message, details string) *StandardError {
	return NewStandardError(CodeInvalidRequest, message, details)
}

// NewValidationError reports a violated business rule. The message is shown to the user as-is.
func NewValidationError(message, field string) *StandardError {
	details := ""
	if field != "" {
		details = fmt.Sprintf("Field: %s", field)
	}
	return NewStandardError(CodeValidation, message, details)
}

func NewNotFound(resource string, id int64) *StandardError {
	return NewStandardError(CodeResourceNotFound, fmt.Sprintf("%s not found with ID: %d", resource, id),
		fmt.Sprintf("%s ID: %d", resource, id))
}

// NewPersistenceError wraps a storage failure. message describes what failed;
// err is the driver error or a repository sentinel.
func NewPersistenceError(message string, err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &StandardError{
		Code:    CodePersistence,
		Message: message,
		Details: details,
		Err:     err,
	}
}

func NewInternalError(message string, err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &StandardError{
		Code:    CodeInternal,
		Message: message,
		Details: details,
		Err:     err,
	}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	return hasCode(err, CodeValidation)
}

// IsPersistence reports whether err carries a PersistenceError.
func IsPersistence(err error) bool {
	return hasCode(err, CodePersistence)
}

// IsNotFound reports whether err carries a ResourceNotFound error.
func IsNotFound(err error) bool {
	return hasCode(err, CodeResourceNotFound)
}

// As returns the first StandardError in err's chain.
func As(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

func hasCode(err error, code string) bool {
	stdErr, ok := As(err)
	return ok && stdErr.Code == code
}
