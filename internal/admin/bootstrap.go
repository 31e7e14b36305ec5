package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogotex/useradmin/internal/identity"
	"github.com/gogotex/useradmin/internal/models"
	"github.com/gogotex/useradmin/internal/profiles"
)

// BootstrapRequest describes the first administrator. Password is only used
// when the identity does not exist yet.
type BootstrapRequest struct {
	Email    string
	Password string
	Name     string
}

// Bootstrap grants {admin: true} to req.Email without the admin guard. It is
// the operator path for creating the first administrator, which the guarded
// SetAdminRole cannot do. A missing identity is created together with its
// profile when req.Password is set. Returns the uid and whether it was created.
func Bootstrap(ctx context.Context, ids identity.Provider, p profiles.Repository, req BootstrapRequest) (string, bool, error) {
	rec, err := ids.GetUserByEmail(ctx, req.Email)
	created := false
	switch {
	case err == nil:
	case errors.Is(err, identity.ErrNotFound) && req.Password != "":
		rec, err = ids.CreateUser(ctx, &identity.UserToCreate{Email: req.Email, Password: req.Password, DisplayName: req.Name})
		if err != nil {
			return "", false, fmt.Errorf("create identity: %w", err)
		}
		created = true
		if err := p.Create(ctx, &models.Profile{
			UID:      rec.UID,
			Name:     req.Name,
			Email:    rec.Email,
			Role:     "admin",
			IsActive: true,
		}); err != nil {
			return rec.UID, created, fmt.Errorf("create profile: %w", err)
		}
	case errors.Is(err, identity.ErrNotFound):
		return "", false, fmt.Errorf("no identity for %s; pass a password to create it: %w", req.Email, err)
	default:
		return "", false, fmt.Errorf("lookup identity: %w", err)
	}

	if err := ids.SetCustomUserClaims(ctx, rec.UID, map[string]interface{}{"admin": true}); err != nil {
		return rec.UID, created, fmt.Errorf("set admin claim: %w", err)
	}
	return rec.UID, created, nil
}
