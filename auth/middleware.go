package auth

import (
	"context"
	"net/http"

	"github.com/user/unidirectory-go/logging"
	"github.com/user/unidirectory-go/respond"
)

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

// Middleware rejects requests without a valid bearer token with
// 401 {"statusCode":401,"error":"Unauthorized"}, and stores the claims in the request context otherwise.
func Middleware(tokens TokenVerifier, rs *respond.Responder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				rs.Error(w, r, ErrUnauthorized)
				return
			}
			claims, err := tokens.Verify(r.Context(), token)
			if err != nil {
				rs.Error(w, r, ErrUnauthorized)
				return
			}

			ctx := NewContextWithClaims(r.Context(), claims)
			ctx = logging.WithContext(ctx, logging.FromContext(ctx).WithFields(logging.Fields{"user_id": claims.UserID}))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
