package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/useradmin/internal/authz"
	"github.com/gogotex/useradmin/internal/profiles"
	"github.com/gogotex/useradmin/pkg/logger"
)

// ProfileHandler serves the caller's own profile document.
type ProfileHandler struct {
	profiles profiles.Repository
}

func NewProfileHandler(p profiles.Repository) *ProfileHandler {
	return &ProfileHandler{profiles: p}
}

// Me returns the profile keyed by the caller's subject. Must run behind
// middleware.RequireAuth.
func (h *ProfileHandler) Me(c *gin.Context) {
	claims := authz.FromContext(c)
	if claims == nil || claims.Subject == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no subject in token"})
		return
	}
	p, err := h.profiles.Get(c.Request.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		logger.Errorf("me: load profile %s: %v", claims.Subject, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profile lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p, "admin": claims.Admin})
}
