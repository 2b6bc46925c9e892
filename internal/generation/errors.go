package generation

import (
	"errors"
	"fmt"
)

var (
	ErrMissingCredential = errors.New("missing API credential")
	ErrEmptyPrompt       = errors.New("prompt is empty")
	ErrEmptyGeneration   = errors.New("generation returned no usable markup")
	ErrUpstream          = errors.New("upstream generation error")
)

// UpstreamError is a non-success reply (or transport failure, Status 0) from the
// completion endpoint. It matches ErrUpstream with errors.Is.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("upstream generation error: %s", e.Message)
	}
	return fmt.Sprintf("upstream generation error (status %d): %s", e.Status, e.Message)
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}
