package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/useradmin/internal/authz"
	"github.com/gogotex/useradmin/internal/callable"
	"github.com/gogotex/useradmin/internal/sessions"
	"github.com/gogotex/useradmin/pkg/logger"
)

// Token is minimal interface for a verified token that can expose claims
type Token interface {
	Claims(v interface{}) error
}

// Verifier is the minimal interface the middleware depends on
type Verifier interface {
	Verify(ctx context.Context, raw string) (Token, error)
}

// MapClaims is a Token backed by an already decoded claim set.
type MapClaims map[string]interface{}

func (m MapClaims) Claims(v interface{}) error {
	b, err := json.Marshal(map[string]interface{}(m))
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// ChainVerifier tries each verifier in order and returns the first success.
type ChainVerifier []Verifier

func (cv ChainVerifier) Verify(ctx context.Context, raw string) (Token, error) {
	var errs []error
	for _, v := range cv {
		if v == nil {
			continue
		}
		tok, err := v.Verify(ctx, raw)
		if err == nil {
			return tok, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, errors.New("no token verifier configured")
	}
	return nil, errors.Join(errs...)
}

// AuthMiddleware decodes Bearer credentials into authz.Claims.
// A request without an Authorization header continues with no claims so the
// operation's own guard decides; a malformed, invalid or revoked credential
// is rejected with UNAUTHENTICATED.
func AuthMiddleware(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.Next()
			return
		}
		token, ok := strings.CutPrefix(auth, "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			callable.WriteError(c, callable.Unauthenticated("invalid Authorization header"))
			return
		}

		revoked, err := sessions.IsAccessTokenBlacklisted(c.Request.Context(), token)
		if err != nil {
			logger.Warnf("blacklist lookup failed: %v", err)
		}
		if revoked {
			callable.WriteError(c, callable.Unauthenticated("token has been revoked"))
			return
		}

		if ver == nil {
			callable.WriteError(c, callable.Unauthenticated("token verification is not configured"))
			return
		}
		idToken, err := ver.Verify(c.Request.Context(), token)
		if err != nil {
			logger.Debugf("token verification failed: %v", err)
			callable.WriteError(c, callable.Unauthenticated("invalid token"))
			return
		}

		var claims map[string]interface{}
		if err := idToken.Claims(&claims); err != nil {
			logger.Warnf("token claims could not be decoded: %v", err)
			callable.WriteError(c, callable.Unauthenticated("invalid token"))
			return
		}

		authz.SetClaims(c, authz.FromMap(claims))
		c.Next()
	}
}

// RequireAuth rejects requests that reached it without verified claims.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if authz.FromContext(c) == nil {
			callable.WriteError(c, callable.Unauthenticated("missing Authorization header"))
			return
		}
		c.Next()
	}
}
