package auth

import (
	"context"
	"errors"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is a verified caller.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
}

// Verifier turns a bearer token into an Identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
	// Provider names the identity source, stored alongside synced users.
	Provider() string
}
