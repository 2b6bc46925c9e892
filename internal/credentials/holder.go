package credentials

import (
	"context"
	"errors"
)

var ErrBlankCredential = errors.New("credential is blank")

// Holder is the per-session slot for the user's generation API key. It performs no
// validation of the key; a wrong key surfaces as an upstream authorization failure.
type Holder interface {
	// Set stores key for the session. Blank input is rejected with ErrBlankCredential
	// and leaves any stored key untouched.
	Set(ctx context.Context, sessionID, key string) error
	IsSet(ctx context.Context, sessionID string) (bool, error)
	// Get returns the stored key, or "" when none is set.
	Get(ctx context.Context, sessionID string) (string, error)
	// Clear removes the key (sign-out).
	Clear(ctx context.Context, sessionID string) error
}
