// Package identity is the identity provider: credentials, display metadata,
// disabled flag and custom claims per user, keyed by a generated uid.
package identity

import (
	"context"
	"errors"

	"github.com/gogotex/useradmin/internal/models"
)

var (
	// ErrNotFound is returned when no identity matches the uid or email.
	ErrNotFound = errors.New("identity: user not found")
	// ErrEmailExists is returned when creating an identity with an email already in use.
	ErrEmailExists = errors.New("identity: email already exists")
	// ErrInvalidArgument wraps provider-side validation failures (bad email, weak password, reserved claim).
	ErrInvalidArgument = errors.New("identity: invalid argument")
	// ErrInvalidCredentials is returned by VerifyPassword for an unknown email or wrong password.
	ErrInvalidCredentials = errors.New("identity: invalid credentials")
)

// UserToCreate carries the fields of a new identity.
type UserToCreate struct {
	Email       string
	Password    string
	DisplayName string
	Disabled    bool
}

// UserToUpdate carries optional changes. Nil fields are left untouched.
type UserToUpdate struct {
	DisplayName *string
	Disabled    *bool
	Password    *string
}

// Provider abstracts identity storage. Implementations: MongoProvider for
// deployments, MemoryProvider for tests and local development.
type Provider interface {
	CreateUser(ctx context.Context, u *UserToCreate) (*models.Identity, error)
	UpdateUser(ctx context.Context, uid string, u *UserToUpdate) (*models.Identity, error)
	GetUser(ctx context.Context, uid string) (*models.Identity, error)
	GetUserByEmail(ctx context.Context, email string) (*models.Identity, error)
	// SetCustomUserClaims replaces the whole claim set; it does not merge.
	SetCustomUserClaims(ctx context.Context, uid string, claims map[string]interface{}) error
}

// Authenticator checks a password against the stored hash.
type Authenticator interface {
	VerifyPassword(ctx context.Context, email, password string) (*models.Identity, error)
}
