package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/useradmin/internal/config"
	"github.com/gogotex/useradmin/internal/identity"
	"github.com/gogotex/useradmin/internal/models"
	"github.com/gogotex/useradmin/internal/sessions"
	"github.com/gogotex/useradmin/internal/tokens"
	"github.com/gogotex/useradmin/pkg/logger"
)

// IdentityStore is the identity provider as seen by the auth endpoints.
type IdentityStore interface {
	identity.Provider
	identity.Authenticator
}

// LoginRequest is the password login body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthHandler issues and revokes the service's own access tokens.
type AuthHandler struct {
	cfg         *config.Config
	identities  IdentityStore
	sessionsSvc *sessions.Service
}

func NewAuthHandler(cfg *config.Config, ids IdentityStore, s *sessions.Service) *AuthHandler {
	return &AuthHandler{cfg: cfg, identities: ids, sessionsSvc: s}
}

// Register routes under /auth
func (h *AuthHandler) Register(rg gin.IRouter) {
	a := rg.Group("/auth")
	a.POST("/login", h.Login)
	a.POST("/refresh", h.Refresh)
	a.POST("/logout", h.Logout)
}

// Login checks email and password against the identity store and returns an
// access token carrying the identity's custom claims plus a refresh token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.identities.VerifyPassword(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		logger.Errorf("login: verify password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "authentication failed"})
		return
	}
	if id.Disabled {
		c.JSON(http.StatusForbidden, gin.H{"error": "account is disabled"})
		return
	}

	rft, err := h.sessionsSvc.CreateSession(c.Request.Context(), id.UID, h.cfg.JWT.RefreshTokenTTL)
	if err != nil {
		logger.Errorf("login: create session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	access, err := h.mint(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create access token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token":  access,
		"refresh_token": rft,
		"expires_in":    int(h.cfg.JWT.AccessTokenTTL.Seconds()),
		"user":          id,
	})
}

// Refresh mints a new access token from the identity's current state, so
// claim changes and disabling take effect at the next refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, err := h.sessionsSvc.ValidateRefresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		logger.Errorf("refresh: validate: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "validation failed"})
		return
	}
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	id, err := h.identities.GetUser(c.Request.Context(), sess.UID)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
			return
		}
		logger.Errorf("refresh: load identity %s: %v", sess.UID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user lookup failed"})
		return
	}
	if id.Disabled {
		if err := h.sessionsSvc.RevokeAll(c.Request.Context(), id.UID); err != nil {
			logger.Warnf("refresh: failed to end sessions of disabled identity %s: %v", id.UID, err)
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "account is disabled"})
		return
	}
	access, err := h.mint(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create access token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": access, "expires_in": int(h.cfg.JWT.AccessTokenTTL.Seconds())})
}

func (h *AuthHandler) mint(id *models.Identity) (string, error) {
	access, err := tokens.GenerateAccessToken(h.cfg, id, h.cfg.JWT.AccessTokenTTL)
	if err != nil {
		logger.Errorf("sign access token for %s: %v", id.UID, err)
	}
	return access, err
}

// Logout invalidates the refresh token and blacklists the presented access
// token until it expires.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if at, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); ok && at != "" {
		if exp, err := tokens.ExpiresAt(at); err == nil {
			if ttl := time.Until(exp); ttl > 0 {
				if err := sessions.BlacklistAccessToken(c.Request.Context(), at, ttl); err != nil {
					logger.Errorf("logout: blacklist access token: %v", err)
					c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to blacklist access token"})
					return
				}
			}
		}
	}
	if err := h.sessionsSvc.DeleteRefresh(c.Request.Context(), req.RefreshToken); err != nil {
		logger.Errorf("logout: delete session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
