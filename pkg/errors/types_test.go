package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorWrapping(t *testing.T) {
	cause := errors.New("connection refused")
	err := UpstreamError("elevenlabs", cause)

	assert.Equal(t, ErrCodeUpstreamUnavailable, err.Code)
	assert.Contains(t, err.Error(), "elevenlabs")
	assert.Contains(t, err.Error(), "connection refused")
	assert.ErrorIs(t, err, cause)
}

func TestGetHTTPCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "synthesis failure maps to bad gateway",
			err:      New(ErrCodeSynthesisFailed, "synthesize announcement"),
			expected: http.StatusBadGateway,
		},
		{
			name:     "delivery failure maps to bad gateway",
			err:      DeliveryError("azuracast", errors.New("503")),
			expected: http.StatusBadGateway,
		},
		{
			name:     "missing field maps to bad request",
			err:      MissingFieldError("ip"),
			expected: http.StatusBadRequest,
		},
		{
			name:     "rate limit maps to 429",
			err:      New(ErrCodeAPIRateLimit, "slow down"),
			expected: http.StatusTooManyRequests,
		},
		{
			name:     "plain error maps to internal",
			err:      errors.New("boom"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPCode(tt.err))
		})
	}
}

func TestIsAndGetCode(t *testing.T) {
	err := MissingConfig("azuracast.api_key")

	assert.True(t, Is(err, ErrCodeConfigRequired))
	assert.False(t, Is(err, ErrCodeNotFound))
	assert.Equal(t, ErrCodeConfigRequired, GetCode(err))
	assert.Equal(t, ErrCodeInternal, GetCode(errors.New("plain")))
}
