// Package auth implements credential verification, bearer token issuance and validation,
// the login endpoint, and the middleware that protects authenticated routes.
//
// Authentication failures are always reported to clients generically ("Invalid credentials"
// for login, "Unauthorized" for protected routes); the concrete reason is only logged.
package auth

import (
	"net/http"
	"strings"

	"github.com/user/unidirectory-go/apperror"
)

var (
	// ErrInvalidCredentials is returned for an unknown email and for a wrong password alike.
	ErrInvalidCredentials = apperror.NewAuthError("Invalid credentials", nil)
	// ErrUnauthorized is returned for a missing, malformed, expired or forged bearer token.
	ErrUnauthorized = apperror.NewAuthError("Unauthorized", nil)
)

// BearerToken extracts the token from an `Authorization: Bearer <token>` header.
// The scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
