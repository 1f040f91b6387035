// Package auth holds the admin identity gate: password sign-in against
// the hosted identity service, the allow-list authorization policy, and
// session tokens for the admin API.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/chethancinemas/cinema-admin/internal/models"
)

var (
	// ErrInvalidCredentials covers both bad credentials and a non-admin
	// identity; the two are deliberately indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
)

// Identity is a resolved identity as returned by the identity service.
type Identity struct {
	UID       string
	Email     string
	IDToken   string
	ExpiresAt time.Time
}

// Authenticator resolves identities with the identity service. Both
// paths are server-side round trips: credentials and tokens alike are
// only trusted once the platform has vouched for them.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*Identity, error)
	// VerifyToken checks an identity-service ID token with the platform
	// and returns the account it belongs to. Claims inside the token are
	// never read locally.
	VerifyToken(ctx context.Context, idToken string) (*Identity, error)
}

// ProfileStore persists and observes admin profile documents.
type ProfileStore interface {
	// RecordLogin upserts admins/<uid>: first login creates the profile,
	// later logins stamp lastLogin only.
	RecordLogin(ctx context.Context, uid, email string) error
	// Watch streams snapshots of admins/<uid> until ctx is done.
	Watch(ctx context.Context, uid string) (<-chan models.AdminProfile, error)
}
