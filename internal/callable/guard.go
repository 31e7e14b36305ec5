package callable

import "github.com/gogotex/useradmin/internal/authz"

// RequireAdmin is the authorization guard shared by every admin operation.
// It succeeds only when the caller's "admin" claim is the boolean true.
func RequireAdmin(claims *authz.Claims, message string) error {
	if claims.IsAdmin() {
		return nil
	}
	return PermissionDenied(message)
}
