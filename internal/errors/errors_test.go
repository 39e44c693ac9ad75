package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedCode   string
		expectedStatus int
		retryable      bool
	}{
		{
			name:           "validation",
			err:            NewValidationError("emotion", ErrInvalidEmotion),
			expectedCode:   "VALIDATION_ERROR",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "wrapped validation",
			err:            fmt.Errorf("record mood: %w", NewValidationError("confidence", ErrConfidenceOutOfRange)),
			expectedCode:   "VALIDATION_ERROR",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "stale session",
			err:            fmt.Errorf("apply detection: %w", ErrStaleSession),
			expectedCode:   "STALE_SESSION",
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "not logged in",
			err:            ErrNotLoggedIn,
			expectedCode:   "SESSION_ENDED",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "service",
			err:            &ServiceError{Op: "chat", Attempts: 3, Err: ErrMalformedResponse},
			expectedCode:   "SERVICE_ERROR",
			expectedStatus: http.StatusBadGateway,
			retryable:      true,
		},
		{
			name:           "deserialization",
			err:            &DeserializationError{Key: "default:emotiguide_history", Err: errors.New("unexpected end of JSON input")},
			expectedCode:   "DESERIALIZATION_ERROR",
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "storage",
			err:            fmt.Errorf("record mood: %w", &StorageError{Key: "default:emotiguide_history", Err: errors.New("connection refused")}),
			expectedCode:   "STORAGE_ERROR",
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "revoked token",
			err:            ErrTokenRevoked,
			expectedCode:   "SESSION_ENDED",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unknown",
			err:            errors.New("boom"),
			expectedCode:   "INTERNAL_ERROR",
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.expectedStatus, httpErr.StatusCode)
			assert.Equal(t, tt.expectedCode, httpErr.Code)
			assert.Equal(t, tt.retryable, httpErr.ToErrorResponse().Retryable)
		})
	}
}

func TestValidationErrorUnwrap(t *testing.T) {
	err := NewValidationError("emotion", ErrInvalidEmotion)
	assert.True(t, errors.Is(err, ErrInvalidEmotion))
	assert.Equal(t, "emotion: "+ErrInvalidEmotion.Error(), err.Error())
}
