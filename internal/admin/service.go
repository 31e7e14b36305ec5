// Package admin implements the privileged user-management operations.
//
// Every operation runs the same sequence: admin guard, then its external
// writes strictly in order, then a translate step that logs the provider
// error and returns a generic callable error. The two writes are not
// atomic; a failure after the first write leaves that write in place.
package admin

import (
	"context"
	"fmt"

	"github.com/gogotex/useradmin/internal/audit"
	"github.com/gogotex/useradmin/internal/authz"
	"github.com/gogotex/useradmin/internal/callable"
	"github.com/gogotex/useradmin/internal/identity"
	"github.com/gogotex/useradmin/internal/models"
	"github.com/gogotex/useradmin/internal/profiles"
	"github.com/gogotex/useradmin/pkg/logger"
)

// Operation names, also used as route paths and metric labels.
const (
	OpCreateUser          = "createUser"
	OpSetUserActiveStatus = "setUserActiveStatus"
	OpUpdateUser          = "updateUser"
	OpSetAdminRole        = "setAdminRole"
)

type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type SetUserActiveStatusRequest struct {
	UID      string `json:"uid"`
	IsActive bool   `json:"isActive"`
}

type UpdateUserRequest struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

type SetAdminRoleRequest struct {
	Email string `json:"email"`
}

// ResultResponse is returned by CreateUser, SetUserActiveStatus and UpdateUser.
type ResultResponse struct {
	Result string `json:"result"`
}

// MessageResponse is returned by SetAdminRole.
type MessageResponse struct {
	Message string `json:"message"`
}

// Service holds the shared provider handles. It keeps no per-call state and
// is safe for concurrent use.
type Service struct {
	identities identity.Provider
	profiles   profiles.Repository
	audit      audit.Recorder
}

// NewService wires the service. rec may be nil to disable auditing.
func NewService(ids identity.Provider, p profiles.Repository, rec audit.Recorder) *Service {
	return &Service{identities: ids, profiles: p, audit: rec}
}

// CreateUser creates the identity, then its profile document.
func (s *Service) CreateUser(ctx context.Context, claims *authz.Claims, req CreateUserRequest) (ResultResponse, error) {
	if err := callable.RequireAdmin(claims, "Only administrators can create users."); err != nil {
		denied(OpCreateUser, claims, req.Email)
		return ResultResponse{}, err
	}

	err := func() error {
		rec, err := s.identities.CreateUser(ctx, &identity.UserToCreate{
			Email:       req.Email,
			Password:    req.Password,
			DisplayName: req.Name,
		})
		if err != nil {
			return err
		}
		return s.profiles.Create(ctx, &models.Profile{
			UID:      rec.UID,
			Name:     req.Name,
			Email:    req.Email,
			Phone:    req.Phone,
			Role:     req.Role,
			IsActive: true,
		})
	}()
	if err != nil {
		logger.Errorw("error creating user", "email", req.Email, "error", err)
		err = callable.Internal("An error occurred while creating the user.")
	}
	s.record(ctx, OpCreateUser, claims, req.Email, err)
	if err != nil {
		return ResultResponse{}, err
	}
	return ResultResponse{Result: fmt.Sprintf("User %s created successfully.", req.Email)}, nil
}

// SetUserActiveStatus sets identity.disabled = !isActive, then profile.isActive.
func (s *Service) SetUserActiveStatus(ctx context.Context, claims *authz.Claims, req SetUserActiveStatusRequest) (ResultResponse, error) {
	if err := callable.RequireAdmin(claims, "Only administrators can modify users."); err != nil {
		denied(OpSetUserActiveStatus, claims, req.UID)
		return ResultResponse{}, err
	}

	err := func() error {
		disabled := !req.IsActive
		if _, err := s.identities.UpdateUser(ctx, req.UID, &identity.UserToUpdate{Disabled: &disabled}); err != nil {
			return err
		}
		active := req.IsActive
		return s.profiles.Update(ctx, req.UID, models.ProfileUpdate{IsActive: &active})
	}()
	if err != nil {
		logger.Errorw("error updating user status", "uid", req.UID, "error", err)
		err = callable.Internal("An error occurred while updating the user.")
	}
	s.record(ctx, OpSetUserActiveStatus, claims, req.UID, err)
	if err != nil {
		return ResultResponse{}, err
	}
	return ResultResponse{Result: fmt.Sprintf("User %s status updated.", req.UID)}, nil
}

// UpdateUser writes name/phone/role to the profile, then mirrors the name
// into the identity's display name.
func (s *Service) UpdateUser(ctx context.Context, claims *authz.Claims, req UpdateUserRequest) (ResultResponse, error) {
	if err := callable.RequireAdmin(claims, "Only administrators can update users."); err != nil {
		denied(OpUpdateUser, claims, req.UID)
		return ResultResponse{}, err
	}

	err := func() error {
		name, phone, role := req.Name, req.Phone, req.Role
		if err := s.profiles.Update(ctx, req.UID, models.ProfileUpdate{Name: &name, Phone: &phone, Role: &role}); err != nil {
			return err
		}
		_, err := s.identities.UpdateUser(ctx, req.UID, &identity.UserToUpdate{DisplayName: &name})
		return err
	}()
	if err != nil {
		logger.Errorw("error updating user", "uid", req.UID, "error", err)
		err = callable.Internal("An error occurred while updating the user.")
	}
	s.record(ctx, OpUpdateUser, claims, req.UID, err)
	if err != nil {
		return ResultResponse{}, err
	}
	return ResultResponse{Result: fmt.Sprintf("User %s updated.", req.UID)}, nil
}

// SetAdminRole replaces the custom claims of the identity with {admin: true}.
// Claims set previously are dropped.
func (s *Service) SetAdminRole(ctx context.Context, claims *authz.Claims, req SetAdminRoleRequest) (MessageResponse, error) {
	if err := callable.RequireAdmin(claims, "Action not allowed."); err != nil {
		denied(OpSetAdminRole, claims, req.Email)
		return MessageResponse{}, err
	}

	err := func() error {
		rec, err := s.identities.GetUserByEmail(ctx, req.Email)
		if err != nil {
			return err
		}
		return s.identities.SetCustomUserClaims(ctx, rec.UID, map[string]interface{}{"admin": true})
	}()
	if err != nil {
		logger.Errorw("error assigning admin role", "email", req.Email, "error", err)
		err = callable.Internal("An error occurred while assigning the role.")
	}
	s.record(ctx, OpSetAdminRole, claims, req.Email, err)
	if err != nil {
		return MessageResponse{}, err
	}
	return MessageResponse{Message: fmt.Sprintf("Success! %s is now an administrator.", req.Email)}, nil
}

// denied logs a rejected call. Nothing is written anywhere: a caller without
// the admin claim never reaches an external store, the audit trail included.
func denied(op string, claims *authz.Claims, target string) {
	logger.Warnw("admin operation denied", "operation", op, "actor", actorOf(claims), "target", target)
}

func actorOf(claims *authz.Claims) string {
	if claims != nil && claims.Subject != "" {
		return claims.Subject
	}
	return "anonymous"
}

// record is best-effort: a failing audit store never changes the result.
func (s *Service) record(ctx context.Context, op string, claims *authz.Claims, target string, err error) {
	if s.audit == nil {
		return
	}
	actor := actorOf(claims)
	e := &audit.Entry{Operation: op, Actor: actor, Target: target, Status: callable.CodeOf(err).Status()}
	if aerr := s.audit.Record(ctx, e); aerr != nil {
		logger.Warnf("audit: failed to record %s by %s: %v", op, actor, aerr)
	}
}
