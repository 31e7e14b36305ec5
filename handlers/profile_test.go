package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/useradmin/internal/authz"
	"github.com/gogotex/useradmin/internal/models"
	"github.com/gogotex/useradmin/internal/profiles"
	"github.com/stretchr/testify/require"
)

func serveMe(repo profiles.Repository, claims *authz.Claims) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/api/v1/me", func(c *gin.Context) {
		if claims != nil {
			authz.SetClaims(c, claims)
		}
		c.Next()
	}, NewProfileHandler(repo).Me)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))
	return w
}

func TestMe_ReturnsProfile(t *testing.T) {
	repo := profiles.NewMemoryRepository()
	require.NoError(t, repo.Create(context.Background(), &models.Profile{UID: "u1", Name: "Dana", Email: "dana@example.com", IsActive: true}))

	w := serveMe(repo, &authz.Claims{Subject: "u1", Admin: true})
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Profile models.Profile `json:"profile"`
		Admin   bool           `json:"admin"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, "u1", got.Profile.ID)
	require.Equal(t, "Dana", got.Profile.Name)
	require.True(t, got.Admin)
}

func TestMe_NoProfile(t *testing.T) {
	w := serveMe(profiles.NewMemoryRepository(), &authz.Claims{Subject: "missing"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestMe_NoClaims(t *testing.T) {
	w := serveMe(profiles.NewMemoryRepository(), nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
