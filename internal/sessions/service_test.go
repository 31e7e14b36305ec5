package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fake repo for testing
type fakeRepo struct {
	store map[string]*Session
}

func (f *fakeRepo) Create(ctx context.Context, s *Session) error {
	if f.store == nil {
		f.store = map[string]*Session{}
	}
	f.store[s.RefreshToken] = s
	return nil
}

func (f *fakeRepo) GetByRefresh(ctx context.Context, digest string) (*Session, error) {
	s, ok := f.store[digest]
	if !ok {
		return nil, nil
	}
	return s, nil
}

func (f *fakeRepo) DeleteByRefresh(ctx context.Context, digest string) error {
	delete(f.store, digest)
	return nil
}

func (f *fakeRepo) DeleteByUID(ctx context.Context, uid string) error {
	for k, s := range f.store {
		if s.UID == uid {
			delete(f.store, k)
		}
	}
	return nil
}

func TestCreateAndValidateSession(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	r, err := svc.CreateSession(ctx, "uid-1", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, r)

	// only the digest is stored
	_, rawStored := repo.store[r]
	require.False(t, rawStored)
	require.Contains(t, repo.store, Digest(r))

	sess, err := svc.ValidateRefresh(ctx, r)
	require.NoError(t, err)
	require.NotNil(t, sess)
	require.Equal(t, "uid-1", sess.UID)

	require.NoError(t, svc.DeleteRefresh(ctx, r))
	sess2, err := svc.ValidateRefresh(ctx, r)
	require.NoError(t, err)
	require.Nil(t, sess2)
}

func TestValidateRefresh_Expired(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	r, err := svc.CreateSession(ctx, "uid-2", time.Minute)
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().UTC().Add(2 * time.Minute) }
	sess, err := svc.ValidateRefresh(ctx, r)
	require.NoError(t, err)
	require.Nil(t, sess)
	require.Empty(t, repo.store, "expired session should be removed")
}

func TestService_WithMemoryRepository(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	r, err := svc.CreateSession(ctx, "uid-3", time.Hour)
	require.NoError(t, err)

	sess, err := svc.ValidateRefresh(ctx, r)
	require.NoError(t, err)
	require.NotNil(t, sess)
	require.Equal(t, "uid-3", sess.UID)

	sess, err = svc.ValidateRefresh(ctx, "unknown")
	require.NoError(t, err)
	require.Nil(t, sess)
}

func TestRevokeAll(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	a, err := svc.CreateSession(ctx, "uid-4", time.Hour)
	require.NoError(t, err)
	b, err := svc.CreateSession(ctx, "uid-4", time.Hour)
	require.NoError(t, err)
	other, err := svc.CreateSession(ctx, "uid-5", time.Hour)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeAll(ctx, "uid-4"))
	for _, r := range []string{a, b} {
		sess, err := svc.ValidateRefresh(ctx, r)
		require.NoError(t, err)
		require.Nil(t, sess)
	}
	sess, err := svc.ValidateRefresh(ctx, other)
	require.NoError(t, err)
	require.NotNil(t, sess)
}
