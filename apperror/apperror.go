// Package apperror defines a centralized system for application-specific errors.
// Every layer (repositories, services, handlers) reports failures as *AppError values so
// that the HTTP boundary can map them to a status code and a stable JSON body in one place.
package apperror

import (
	"errors"
	"fmt"
	// `net/http` is used for HTTP status codes.
	"net/http"
)

// ErrorType is an enumeration (using `iota`) for the categories of application errors.
type ErrorType int

const (
	// UnknownError is for unspecified errors
	UnknownError ErrorType = iota
	// DatabaseError represents an error originating from the database
	DatabaseError
	// ConfigError represents an error related to application configuration
	ConfigError
	// AuthError represents an authentication error (missing/invalid token, invalid credentials)
	AuthError
	// NotFoundError represents a resource not found error
	NotFoundError
	// ValidationError represents an input validation error (missing required field)
	ValidationError
	// BadRequestError represents a generic bad request (malformed body, wrong parameter type)
	BadRequestError
	// InternalError represents a generic internal server error
	InternalError
	// MigrationError represents an error during database migrations
	MigrationError
	// ConflictError represents a conflict, e.g., a user with this email already exists
	ConflictError
	// UnavailableError represents a dependency that is not reachable (health checks)
	UnavailableError
)

// AppError is the custom error type for the application.
// It allows wrapping an underlying error (`Err`) for more detailed debugging while keeping
// the user-facing `Message` stable.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error // Underlying error
}

// Error returns the string representation of the error, satisfying the `error` interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error so `errors.Is` and `errors.As` can inspect the chain.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code appropriate for the error type
func (e *AppError) StatusCode() int {
	switch e.Type {
	case DatabaseError, ConfigError, InternalError, MigrationError:
		return http.StatusInternalServerError
	case AuthError:
		// Authentication problems are always 401 and always generic, so callers cannot tell
		// "no such user" from "wrong password" or "expired token" from "bad signature".
		return http.StatusUnauthorized
	case NotFoundError:
		return http.StatusNotFound
	case ValidationError, BadRequestError:
		return http.StatusBadRequest
	case ConflictError:
		return http.StatusConflict
	case UnavailableError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// IsServerError reports whether the error maps to a 5xx status.
func (e *AppError) IsServerError() bool {
	return e.StatusCode() >= http.StatusInternalServerError
}

// Cause returns the message of the underlying error, or the AppError message when nothing is wrapped.
// It is what verbose error responses expose to clients.
func (e *AppError) Cause() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewAppError creates a new AppError. This is a generic constructor.
func NewAppError(errType ErrorType, message string, underlyingError error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     underlyingError,
	}
}

// Constructor functions for specific error types.
// `NewDatabaseError("message", err)` reads better than `NewAppError(DatabaseError, "message", err)`.

// NewDatabaseError creates a new DatabaseError
func NewDatabaseError(message string, underlyingError error) *AppError {
	return NewAppError(DatabaseError, message, underlyingError)
}

// NewConfigError creates a new ConfigError
func NewConfigError(message string, underlyingError error) *AppError {
	return NewAppError(ConfigError, message, underlyingError)
}

// NewAuthError creates a new AuthError (for authentication issues)
func NewAuthError(message string, underlyingError error) *AppError {
	return NewAppError(AuthError, message, underlyingError)
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(message string, underlyingError error) *AppError {
	return NewAppError(NotFoundError, message, underlyingError)
}

// NewValidationError creates a new ValidationError
func NewValidationError(message string, underlyingError error) *AppError {
	return NewAppError(ValidationError, message, underlyingError)
}

// NewBadRequestError creates a new BadRequestError
func NewBadRequestError(message string, underlyingError error) *AppError {
	return NewAppError(BadRequestError, message, underlyingError)
}

// NewInternalError creates a new InternalError
func NewInternalError(message string, underlyingError error) *AppError {
	return NewAppError(InternalError, message, underlyingError)
}

// NewMigrationError creates a new MigrationError
func NewMigrationError(message string, underlyingError error) *AppError {
	return NewAppError(MigrationError, message, underlyingError)
}

// NewConflictError creates a new ConflictError
func NewConflictError(message string, underlyingError error) *AppError {
	return NewAppError(ConflictError, message, underlyingError)
}

// NewUnavailableError creates a new UnavailableError
func NewUnavailableError(message string, underlyingError error) *AppError {
	return NewAppError(UnavailableError, message, underlyingError)
}

// ErrorResponse represents the error payload for API clients.
// `statusCode` mirrors the HTTP status so clients that only look at the body still see it.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode" example:"400"`
	Message    string `json:"message,omitempty" example:"Internal Server Error"`
	Error      string `json:"error" example:"universityId is required"`
}

// ToResponse converts an AppError to an ErrorResponse.
// Only the user-facing `Message` is included, never the underlying `Err` details.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{StatusCode: e.StatusCode(), Error: e.Message}
}

// FromError converts a generic error to an *AppError, searching the wrap chain.
// It returns the *AppError and true if one was found, otherwise nil and false.
func FromError(err error) (*AppError, bool) {
	if err == nil {
		return nil, false
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// Helper functions to check error types.
// These use `errors.As` so they keep working when errors are wrapped.

// IsNotFound checks if an error is a NotFound error
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == NotFoundError
}

// IsAuthError checks if an error is an AuthError (authentication problem)
func IsAuthError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == AuthError
}

// IsValidationError checks if an error is a Validation error
func IsValidationError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ValidationError
}

// IsConflictError checks if an error is a Conflict error
func IsConflictError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ConflictError
}
