package sessions

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Service issues and validates refresh sessions. Repositories only ever see
// the SHA-256 digest of a refresh token, never the token itself.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(r Repository) *Service {
	return &Service{repo: r, now: func() time.Time { return time.Now().UTC() }}
}

// Digest returns the storage key for a refresh token.
func Digest(refresh string) string {
	sum := sha256.Sum256([]byte(refresh))
	return hex.EncodeToString(sum[:])
}

// CreateSession stores a new refresh session for uid and returns the refresh token
func (s *Service) CreateSession(ctx context.Context, uid string, ttl time.Duration) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	refresh := hex.EncodeToString(b)
	now := s.now()
	sess := &Session{
		RefreshToken: Digest(refresh),
		UID:          uid,
		CreatedAt:    now,
		ExpiresAt:    now.Add(ttl),
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return "", err
	}
	return refresh, nil
}

// ValidateRefresh returns the session if refresh token is valid and not expired.
// A nil session with nil error means the token is unknown or expired.
func (s *Service) ValidateRefresh(ctx context.Context, refresh string) (*Session, error) {
	key := Digest(refresh)
	sess, err := s.repo.GetByRefresh(ctx, key)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}
	if s.now().After(sess.ExpiresAt) {
		_ = s.repo.DeleteByRefresh(ctx, key)
		return nil, nil
	}
	return sess, nil
}

func (s *Service) DeleteRefresh(ctx context.Context, refresh string) error {
	return s.repo.DeleteByRefresh(ctx, Digest(refresh))
}

// RevokeAll ends every refresh session of uid.
func (s *Service) RevokeAll(ctx context.Context, uid string) error {
	return s.repo.DeleteByUID(ctx, uid)
}
