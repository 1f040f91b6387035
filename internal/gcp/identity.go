package gcp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	"github.com/chethancinemas/cinema-admin/internal/auth"
)

// IdentityClient verifies email/password credentials against the hosted
// identity service. It implements auth.Authenticator.
type IdentityClient struct {
	relyingparty *identitytoolkit.RelyingpartyService
}

// NewIdentityClient dials the identity service with the project API key.
func NewIdentityClient(ctx context.Context, apiKey string) (*IdentityClient, error) {
	svc, err := identitytoolkit.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Identity Toolkit client: %w", err)
	}
	return &IdentityClient{relyingparty: svc.Relyingparty}, nil
}

// SignIn exchanges credentials for a resolved identity. Every failure
// collapses to auth.ErrInvalidCredentials: callers must not be able to
// tell a wrong password from an unknown account.
func (c *IdentityClient) SignIn(ctx context.Context, email, password string) (*auth.Identity, error) {
	resp, err := c.relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		slog.Debug("password sign-in rejected", "email", email, "error", err)
		return nil, auth.ErrInvalidCredentials
	}

	return &auth.Identity{
		UID:       resp.LocalId,
		Email:     resp.Email,
		IDToken:   resp.IdToken,
		ExpiresAt: time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second),
	}, nil
}

// VerifyToken asks the identity service which account an ID token belongs
// to. The token's own claims are never decoded here: a token the platform
// does not vouch for resolves to nothing, however well-formed it looks.
func (c *IdentityClient) VerifyToken(ctx context.Context, idToken string) (*auth.Identity, error) {
	resp, err := c.relyingparty.GetAccountInfo(&identitytoolkit.IdentitytoolkitRelyingpartyGetAccountInfoRequest{
		IdToken: idToken,
	}).Context(ctx).Do()
	if err != nil {
		slog.Debug("ID token rejected by identity service", "error", err)
		return nil, auth.ErrInvalidToken
	}
	if len(resp.Users) == 0 {
		return nil, auth.ErrInvalidToken
	}

	user := resp.Users[0]
	return &auth.Identity{
		UID:     user.LocalId,
		Email:   user.Email,
		IDToken: idToken,
	}, nil
}
