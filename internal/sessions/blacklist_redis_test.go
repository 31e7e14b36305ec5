package sessions

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestBlacklist_LoggedOutAdminTokenRevokedUntilExpiry(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	SetBlacklistClient(redis.NewClient(&redis.Options{Addr: m.Addr()}))
	t.Cleanup(func() { SetBlacklistClient(nil) })

	ctx := context.Background()
	adminAccess := "eyJhbGciOiJIUzI1NiJ9.admin.sig"
	require.NoError(t, BlacklistAccessToken(ctx, adminAccess, 15*time.Minute))

	revoked, err := IsAccessTokenBlacklisted(ctx, adminAccess)
	require.NoError(t, err)
	require.True(t, revoked)
	require.True(t, m.Exists(blacklistPrefix+Digest(adminAccess)))
	require.False(t, m.Exists(blacklistPrefix+adminAccess), "raw token must not be used as key")

	other, err := IsAccessTokenBlacklisted(ctx, "eyJhbGciOiJIUzI1NiJ9.staff.sig")
	require.NoError(t, err)
	require.False(t, other)

	// the entry lives only as long as the token would have
	m.FastForward(16 * time.Minute)
	revoked, err = IsAccessTokenBlacklisted(ctx, adminAccess)
	require.NoError(t, err)
	require.False(t, revoked)
}

func TestBlacklist_WithoutRedisNothingIsRevoked(t *testing.T) {
	SetBlacklistClient(nil)
	ctx := context.Background()
	require.NoError(t, BlacklistAccessToken(ctx, "staff-token", time.Minute))
	revoked, err := IsAccessTokenBlacklisted(ctx, "staff-token")
	require.NoError(t, err)
	require.False(t, revoked)
}
