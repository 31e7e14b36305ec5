package identity

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/matthewhartstonge/argon2"
)

const minPasswordLength = 6

var (
	validate   = validator.New()
	hashConfig = argon2.DefaultConfig()
)

// claim names owned by the token layer; custom claims may not shadow them
var reservedClaims = map[string]struct{}{
	"acr": {}, "amr": {}, "at_hash": {}, "aud": {}, "auth_time": {}, "azp": {}, "cnf": {},
	"c_hash": {}, "exp": {}, "iat": {}, "iss": {}, "jti": {}, "nbf": {}, "nonce": {}, "sub": {},
	"email": {}, "name": {},
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("%w: email %q is not a valid address", ErrInvalidArgument, email)
	}
	return nil
}

func checkPassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidArgument, minPasswordLength)
	}
	return nil
}

func checkNewUser(u *UserToCreate) error {
	if u == nil {
		return fmt.Errorf("%w: missing user", ErrInvalidArgument)
	}
	if err := checkEmail(u.Email); err != nil {
		return err
	}
	return checkPassword(u.Password)
}

func checkClaims(claims map[string]interface{}) error {
	for k := range claims {
		if _, ok := reservedClaims[k]; ok {
			return fmt.Errorf("%w: claim %q is reserved", ErrInvalidArgument, k)
		}
	}
	return nil
}

func hashPassword(password string) (string, error) {
	encoded, err := hashConfig.HashEncoded([]byte(password))
	if err != nil {
		return "", fmt.Errorf("identity: hash password: %w", err)
	}
	return string(encoded), nil
}

func passwordMatches(password, encoded string) bool {
	if encoded == "" {
		return false
	}
	ok, err := argon2.VerifyEncoded([]byte(password), []byte(encoded))
	return err == nil && ok
}

func copyClaims(in map[string]interface{}) map[string]interface{} {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
