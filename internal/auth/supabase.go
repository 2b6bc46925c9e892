package auth

import (
	"context"
	"fmt"

	"github.com/supabase-community/supabase-go"
)

// SupabaseVerifier checks Supabase access tokens against GoTrue.
type SupabaseVerifier struct {
	client *supabase.Client
}

// NewSupabaseVerifier uses the service role key, as recommended for backend validation.
func NewSupabaseVerifier(projectURL, serviceKey string) (*SupabaseVerifier, error) {
	client, err := supabase.NewClient(projectURL, serviceKey, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to create Supabase client: %w", err)
	}
	return &SupabaseVerifier{client: client}, nil
}

func (v *SupabaseVerifier) Provider() string { return "supabase" }

// Verify asks GoTrue for the token's user. GetUser takes no context, so ctx is only
// checked up front.
func (v *SupabaseVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	user, err := v.client.Auth.WithToken(token).GetUser()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id := &Identity{UID: user.ID.String(), Email: user.Email}
	if name, ok := user.UserMetadata["full_name"].(string); ok {
		id.DisplayName = name
	}
	if avatar, ok := user.UserMetadata["avatar_url"].(string); ok {
		id.PhotoURL = avatar
	}
	return id, nil
}
