package voice

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured indicates the API key or voice ID is missing.
	ErrNotConfigured = errors.New("elevenlabs api key or voice id not configured")

	// ErrEmptyText indicates there was nothing to synthesize.
	ErrEmptyText = errors.New("synthesis text is empty")
)

// SynthesisError carries the provider's raw diagnostic payload so an
// operator can see exactly why a request was rejected.
type SynthesisError struct {
	StatusCode int
	Body       string
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("elevenlabs rejected synthesis: status %d: %s", e.StatusCode, e.Body)
}
