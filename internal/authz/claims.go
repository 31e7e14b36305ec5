// Package authz holds the typed credential claims decoded once per request.
package authz

import (
	"github.com/gin-gonic/gin"
)

const contextKey = "claims"

// Claims is the typed view of the caller's credential claims.
type Claims struct {
	Subject string
	Email   string
	Name    string
	// Admin is true only when the "admin" claim is the boolean true.
	Admin bool
	// Raw keeps every claim as decoded from the credential.
	Raw map[string]interface{}
}

// FromMap builds Claims from a decoded claim set. A nil map yields nil.
func FromMap(m map[string]interface{}) *Claims {
	if m == nil {
		return nil
	}
	c := &Claims{Raw: m}
	c.Subject, _ = m["sub"].(string)
	c.Email, _ = m["email"].(string)
	c.Name, _ = m["name"].(string)
	if v, ok := m["admin"].(bool); ok {
		c.Admin = v
	}
	return c
}

// IsAdmin is nil-safe.
func (c *Claims) IsAdmin() bool {
	return c != nil && c.Admin
}

// SetClaims stores the claims on the gin context for downstream handlers.
func SetClaims(c *gin.Context, claims *Claims) {
	c.Set(contextKey, claims)
}

// FromContext returns the claims set by the auth middleware, or nil.
func FromContext(c *gin.Context) *Claims {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*Claims)
	return claims
}
