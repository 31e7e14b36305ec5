package admin

import (
	"context"
	"testing"

	"github.com/gogotex/useradmin/internal/identity"
	"github.com/gogotex/useradmin/internal/profiles"
	"github.com/stretchr/testify/require"
)

func TestBootstrap_CreatesAdmin(t *testing.T) {
	ctx := context.Background()
	ids := identity.NewMemoryProvider()
	p := profiles.NewMemoryRepository()

	uid, created, err := Bootstrap(ctx, ids, p, BootstrapRequest{Email: "root@example.com", Password: "changeme", Name: "Root"})
	require.NoError(t, err)
	require.True(t, created)

	rec, err := ids.GetUser(ctx, uid)
	require.NoError(t, err)
	require.True(t, rec.IsAdmin())

	prof, err := p.Get(ctx, uid)
	require.NoError(t, err)
	require.True(t, prof.IsActive)
	require.Equal(t, "Root", prof.Name)
}

func TestBootstrap_PromotesExisting(t *testing.T) {
	ctx := context.Background()
	ids := identity.NewMemoryProvider()
	existing, err := ids.CreateUser(ctx, &identity.UserToCreate{Email: "ops@example.com", Password: "password"})
	require.NoError(t, err)
	require.NoError(t, ids.SetCustomUserClaims(ctx, existing.UID, map[string]interface{}{"team": "ops"}))

	uid, created, err := Bootstrap(ctx, ids, profiles.NewMemoryRepository(), BootstrapRequest{Email: "ops@example.com"})
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, existing.UID, uid)

	rec, err := ids.GetUser(ctx, uid)
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{"admin": true}, rec.CustomClaims)
}

func TestBootstrap_MissingWithoutPassword(t *testing.T) {
	_, _, err := Bootstrap(context.Background(), identity.NewMemoryProvider(), profiles.NewMemoryRepository(), BootstrapRequest{Email: "nobody@example.com"})
	require.ErrorIs(t, err, identity.ErrNotFound)
}
