package identity

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gogotex/useradmin/internal/models"
	"github.com/google/uuid"
)

// MemoryProvider keeps identities in process memory. Used by unit tests and
// when the service runs without MongoDB.
type MemoryProvider struct {
	mu      sync.RWMutex
	byUID   map[string]*models.Identity
	byEmail map[string]string
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		byUID:   make(map[string]*models.Identity),
		byEmail: make(map[string]string),
	}
}

func (m *MemoryProvider) CreateUser(_ context.Context, u *UserToCreate) (*models.Identity, error) {
	if err := checkNewUser(u); err != nil {
		return nil, err
	}
	hash, err := hashPassword(u.Password)
	if err != nil {
		return nil, err
	}
	email := normalizeEmail(u.Email)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[email]; ok {
		return nil, fmt.Errorf("%w: %s", ErrEmailExists, email)
	}
	now := time.Now().UTC()
	rec := &models.Identity{
		UID:          uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  u.DisplayName,
		Disabled:     u.Disabled,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.byUID[rec.UID] = rec
	m.byEmail[email] = rec.UID
	return clone(rec), nil
}

func (m *MemoryProvider) UpdateUser(_ context.Context, uid string, u *UserToUpdate) (*models.Identity, error) {
	var hash string
	if u != nil && u.Password != nil {
		if err := checkPassword(*u.Password); err != nil {
			return nil, err
		}
		h, err := hashPassword(*u.Password)
		if err != nil {
			return nil, err
		}
		hash = h
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.byUID[uid]
	if !ok {
		return nil, fmt.Errorf("%w: uid %s", ErrNotFound, uid)
	}
	if u != nil {
		if u.DisplayName != nil {
			rec.DisplayName = *u.DisplayName
		}
		if u.Disabled != nil {
			rec.Disabled = *u.Disabled
		}
		if hash != "" {
			rec.PasswordHash = hash
		}
	}
	rec.UpdatedAt = time.Now().UTC()
	return clone(rec), nil
}

func (m *MemoryProvider) GetUser(_ context.Context, uid string) (*models.Identity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.byUID[uid]
	if !ok {
		return nil, fmt.Errorf("%w: uid %s", ErrNotFound, uid)
	}
	return clone(rec), nil
}

func (m *MemoryProvider) GetUserByEmail(_ context.Context, email string) (*models.Identity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	uid, ok := m.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, fmt.Errorf("%w: email %s", ErrNotFound, email)
	}
	return clone(m.byUID[uid]), nil
}

func (m *MemoryProvider) SetCustomUserClaims(_ context.Context, uid string, claims map[string]interface{}) error {
	if err := checkClaims(claims); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.byUID[uid]
	if !ok {
		return fmt.Errorf("%w: uid %s", ErrNotFound, uid)
	}
	rec.CustomClaims = copyClaims(claims)
	rec.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *MemoryProvider) VerifyPassword(ctx context.Context, email, password string) (*models.Identity, error) {
	rec, err := m.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !passwordMatches(password, rec.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return rec, nil
}

func clone(rec *models.Identity) *models.Identity {
	c := *rec
	c.CustomClaims = copyClaims(rec.CustomClaims)
	return &c
}
