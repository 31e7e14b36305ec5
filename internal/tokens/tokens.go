package tokens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gogotex/useradmin/internal/config"
	"github.com/gogotex/useradmin/internal/models"
	"github.com/gogotex/useradmin/pkg/middleware"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateAccessToken creates a signed HS256 access token for the identity.
// Custom claims are embedded at the top level; the standard claims are set
// afterwards so a custom claim can never replace them.
func GenerateAccessToken(cfg *config.Config, id *models.Identity, ttl time.Duration) (string, error) {
	if id == nil {
		return "", errors.New("tokens: nil identity")
	}
	now := time.Now()
	claims := jwt.MapClaims{}
	for k, v := range id.CustomClaims {
		claims[k] = v
	}
	claims["sub"] = id.UID
	claims["name"] = id.DisplayName
	claims["email"] = id.Email
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(ttl).Unix()
	if cfg.JWT.Issuer != "" {
		claims["iss"] = cfg.JWT.Issuer
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(cfg.JWT.Secret))
}

// Verifier validates access tokens minted by GenerateAccessToken.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewVerifier(cfg *config.Config) *Verifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.JWT.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.JWT.Issuer))
	}
	return &Verifier{secret: []byte(cfg.JWT.Secret), parser: jwt.NewParser(opts...)}
}

func (v *Verifier) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	if len(v.secret) == 0 {
		return nil, errors.New("tokens: signing secret not configured")
	}
	claims := jwt.MapClaims{}
	if _, err := v.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}); err != nil {
		return nil, fmt.Errorf("tokens: %w", err)
	}
	return middleware.MapClaims(claims), nil
}

// ExpiresAt reads the exp claim without verifying the signature. It is only
// used to size blacklist entries for tokens the middleware already accepted.
func ExpiresAt(raw string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, errors.New("exp claim not present")
	}
	return exp.Time, nil
}
