package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidEmotion is returned when an emotion is outside the fixed enumeration.
	ErrInvalidEmotion = errors.New("emotion must be one of Happy, Sad, Angry, Neutral, Surprised, Stressed")
	// ErrConfidenceOutOfRange is returned when a confidence is not within [0,1].
	ErrConfidenceOutOfRange = errors.New("confidence must be between 0 and 1")
	// ErrInvalidProfile is returned when a profile id is malformed.
	ErrInvalidProfile = errors.New("invalid profile id")
	// ErrUnknownPanel is returned when a panel id is not recognised.
	ErrUnknownPanel = errors.New("unknown panel")
	// ErrRequired is returned when a required field is blank.
	ErrRequired = errors.New("field is required")
	// ErrStaleSession is returned when work tagged with an ended session arrives.
	ErrStaleSession = errors.New("session has ended")
	// ErrNotLoggedIn is returned when an operation needs a current user.
	ErrNotLoggedIn = errors.New("no user is logged in")
	// ErrTokenRevoked is returned when a session token no longer belongs to the current user.
	ErrTokenRevoked = errors.New("session token is no longer valid")
	// ErrMalformedResponse is returned when the guidance service replies with unusable content.
	ErrMalformedResponse = errors.New("malformed guidance response")
)

// ValidationError reports invalid input for a single field.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError wraps err for field.
func NewValidationError(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}

// DeserializationError reports a persisted value that could not be decoded.
type DeserializationError struct {
	Key string
	Err error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Key, e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}

// StorageError reports a failed read or write against the key-value store.
type StorageError struct {
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ServiceError reports a failed call to the guidance service after retries.
type ServiceError struct {
	Op       string
	Attempts int
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("guidance %s failed after %d attempt(s): %v", e.Op, e.Attempts, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Retryable bool   `json:"retryable,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Retryable  bool
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:     e.Message,
		Code:      e.Code,
		Retryable: e.Retryable,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var (
		validationErr *ValidationError
		decodeErr     *DeserializationError
		serviceErr    *ServiceError
		storageErr    *StorageError
	)
	switch {
	case errors.As(err, &validationErr):
		return NewHTTPError(http.StatusBadRequest, validationErr.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrStaleSession):
		return NewHTTPError(http.StatusConflict, err.Error(), "STALE_SESSION")
	case errors.Is(err, ErrNotLoggedIn), errors.Is(err, ErrTokenRevoked):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "SESSION_ENDED")
	case errors.As(err, &serviceErr):
		httpErr := NewHTTPError(http.StatusBadGateway, "guidance service unavailable, please retry", "SERVICE_ERROR")
		httpErr.Retryable = true
		return httpErr
	case errors.As(err, &storageErr):
		return NewHTTPError(http.StatusInternalServerError, "storage unavailable", "STORAGE_ERROR")
	case errors.As(err, &decodeErr):
		return NewHTTPError(http.StatusInternalServerError, "stored data could not be read", "DESERIALIZATION_ERROR")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
