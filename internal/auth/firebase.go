package auth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// InitializeFirebase initializes the Firebase Admin SDK and returns an Auth client
func InitializeFirebase(ctx context.Context, credentialsPath string) (*fbauth.Client, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required")
	}

	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}

	return authClient, nil
}

type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// FirebaseVerifier checks Firebase ID tokens.
type FirebaseVerifier struct {
	client idTokenVerifier
}

func NewFirebaseVerifier(client *fbauth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (v *FirebaseVerifier) Provider() string { return "firebase" }

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id := &Identity{UID: decoded.UID}
	if email, ok := decoded.Claims["email"].(string); ok {
		id.Email = email
	}
	if name, ok := decoded.Claims["name"].(string); ok {
		id.DisplayName = name
	}
	if picture, ok := decoded.Claims["picture"].(string); ok {
		id.PhotoURL = picture
	}
	return id, nil
}
