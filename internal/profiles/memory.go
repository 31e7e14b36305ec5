package profiles

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gogotex/useradmin/internal/models"
)

// MemoryRepository is an in-memory Repository for unit tests and local runs.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*models.Profile
	now   func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]*models.Profile), now: func() time.Time { return time.Now().UTC() }}
}

func (m *MemoryRepository) Create(_ context.Context, p *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = p.UID
	p.CreatedAt = m.now()
	c := *p
	m.store[p.UID] = &c
	return nil
}

func (m *MemoryRepository) Update(_ context.Context, uid string, u models.ProfileUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[uid]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, uid)
	}
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Phone != nil {
		p.Phone = *u.Phone
	}
	if u.Role != nil {
		p.Role = *u.Role
	}
	if u.IsActive != nil {
		p.IsActive = *u.IsActive
	}
	return nil
}

func (m *MemoryRepository) Get(_ context.Context, uid string) (*models.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[uid]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, uid)
	}
	c := *p
	return &c, nil
}
