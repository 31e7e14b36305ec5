package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/useradmin/internal/admin"
	"github.com/gogotex/useradmin/internal/audit"
	"github.com/gogotex/useradmin/internal/config"
	"github.com/gogotex/useradmin/internal/identity"
	"github.com/gogotex/useradmin/internal/models"
	"github.com/gogotex/useradmin/internal/profiles"
	"github.com/gogotex/useradmin/internal/tokens"
	"github.com/gogotex/useradmin/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adminFixture struct {
	cfg      *config.Config
	ids      *identity.MemoryProvider
	profiles *profiles.MemoryRepository
	audit    *audit.MemoryRecorder
	router   *gin.Engine
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.JWT.Secret = "admin-test-secret-32-bytes-xxxxxxx"
	cfg.JWT.Issuer = "useradmin"

	f := &adminFixture{
		cfg:      cfg,
		ids:      identity.NewMemoryProvider(),
		profiles: profiles.NewMemoryRepository(),
		audit:    audit.NewMemoryRecorder(),
		router:   gin.New(),
	}
	f.router.Use(middleware.AuthMiddleware(tokens.NewVerifier(cfg)))
	NewAdminHandler(admin.NewService(f.ids, f.profiles, f.audit)).Register(f.router)
	return f
}

// token mints an access token for a fresh identity with the given claims.
func (f *adminFixture) token(t *testing.T, email string, claims map[string]interface{}) string {
	t.Helper()
	ctx := context.Background()
	id, err := f.ids.CreateUser(ctx, &identity.UserToCreate{Email: email, Password: "password1"})
	require.NoError(t, err)
	if claims != nil {
		require.NoError(t, f.ids.SetCustomUserClaims(ctx, id.UID, claims))
		id, err = f.ids.GetUser(ctx, id.UID)
		require.NoError(t, err)
	}
	raw, err := tokens.GenerateAccessToken(f.cfg, id, time.Minute)
	require.NoError(t, err)
	return raw
}

func (f *adminFixture) call(t *testing.T, method, op, bearer, body string) (*httptest.ResponseRecorder, map[string]map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, "/"+op, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	var got map[string]map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	return w, got
}

func TestAdmin_CreateUser(t *testing.T) {
	f := newAdminFixture(t)
	adminTok := f.token(t, "root@example.com", map[string]interface{}{"admin": true})

	body := `{"data":{"email":"bob@example.com","password":"hunter22","name":"Bob","phone":"555","role":"staff"}}`
	w, got := f.call(t, http.MethodPost, admin.OpCreateUser, adminTok, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "User bob@example.com created successfully.", got["result"]["result"])

	id, err := f.ids.GetUserByEmail(context.Background(), "bob@example.com")
	require.NoError(t, err)
	p, err := f.profiles.Get(context.Background(), id.UID)
	require.NoError(t, err)
	assert.Equal(t, id.UID, p.ID)
	assert.True(t, p.IsActive)
	assert.Equal(t, "staff", p.Role)
}

func TestAdmin_DeniedWithoutAdminClaim(t *testing.T) {
	f := newAdminFixture(t)
	userTok := f.token(t, "user@example.com", nil)
	stringTok := f.token(t, "str@example.com", map[string]interface{}{"admin": "true"})

	cases := []struct {
		name   string
		bearer string
	}{
		{"no credential", ""},
		{"no admin claim", userTok},
		{"string admin claim", stringTok},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, got := f.call(t, http.MethodPost, admin.OpSetAdminRole, tc.bearer, `{"data":{"email":"user@example.com"}}`)
			require.Equal(t, http.StatusForbidden, w.Code)
			assert.Equal(t, "PERMISSION_DENIED", got["error"]["status"])
			assert.Equal(t, "Action not allowed.", got["error"]["message"])
		})
	}

	id, err := f.ids.GetUserByEmail(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.False(t, id.IsAdmin())
	assert.Empty(t, f.audit.Entries(), "denied calls write nothing")
}

func TestAdmin_InvalidTokenIsUnauthenticated(t *testing.T) {
	f := newAdminFixture(t)
	w, got := f.call(t, http.MethodPost, admin.OpCreateUser, "garbage", `{"data":{}}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHENTICATED", got["error"]["status"])
}

func TestAdmin_SetUserActiveStatusAndUpdateUser(t *testing.T) {
	f := newAdminFixture(t)
	adminTok := f.token(t, "root@example.com", map[string]interface{}{"admin": true})
	_, _ = f.call(t, http.MethodPost, admin.OpCreateUser, adminTok,
		`{"data":{"email":"bob@example.com","password":"hunter22","name":"Bob","phone":"1","role":"staff"}}`)
	id, err := f.ids.GetUserByEmail(context.Background(), "bob@example.com")
	require.NoError(t, err)

	w, got := f.call(t, http.MethodPost, admin.OpSetUserActiveStatus, adminTok, `{"data":{"uid":"`+id.UID+`","isActive":false}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User "+id.UID+" status updated.", got["result"]["result"])

	w, got = f.call(t, http.MethodPost, admin.OpUpdateUser, adminTok, `{"data":{"uid":"`+id.UID+`","name":"Robert","phone":"2","role":"lead"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User "+id.UID+" updated.", got["result"]["result"])

	rec, err := f.ids.GetUser(context.Background(), id.UID)
	require.NoError(t, err)
	assert.True(t, rec.Disabled)
	assert.Equal(t, "Robert", rec.DisplayName)

	p, err := f.profiles.Get(context.Background(), id.UID)
	require.NoError(t, err)
	assert.Equal(t, models.Profile{UID: id.UID, ID: id.UID, Name: "Robert", Email: "bob@example.com", Phone: "2", Role: "lead", IsActive: false, CreatedAt: p.CreatedAt}, *p)
}

func TestAdmin_SetAdminRole(t *testing.T) {
	f := newAdminFixture(t)
	adminTok := f.token(t, "root@example.com", map[string]interface{}{"admin": true})
	f.token(t, "carol@example.com", map[string]interface{}{"editor": true})

	w, got := f.call(t, http.MethodPost, admin.OpSetAdminRole, adminTok, `{"data":{"email":"carol@example.com"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Success! carol@example.com is now an administrator.", got["result"]["message"])

	rec, err := f.ids.GetUserByEmail(context.Background(), "carol@example.com")
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"admin": true}, rec.CustomClaims)
}

func TestAdmin_ProviderErrorIsInternal(t *testing.T) {
	f := newAdminFixture(t)
	adminTok := f.token(t, "root@example.com", map[string]interface{}{"admin": true})

	w, got := f.call(t, http.MethodPost, admin.OpSetAdminRole, adminTok, `{"data":{"email":"ghost@example.com"}}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL", got["error"]["status"])
	assert.NotContains(t, got["error"]["message"], "not found")

	entries := f.audit.Entries()
	require.NotEmpty(t, entries)
	last := entries[len(entries)-1]
	assert.Equal(t, admin.OpSetAdminRole, last.Operation)
	assert.Equal(t, "INTERNAL", last.Status)
}

func TestAdmin_RejectsNonPost(t *testing.T) {
	f := newAdminFixture(t)
	w, got := f.call(t, http.MethodGet, admin.OpCreateUser, "", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ARGUMENT", got["error"]["status"])
}
