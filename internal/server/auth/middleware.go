package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/cvpro/internal/common"
)

type contextKey int

const claimsKey contextKey = 0

// ClaimsFromContext returns the verified claims placed there by Middleware.
// ok is false on unauthenticated requests.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*Claims)
	return c, ok
}

// Middleware verifies the Bearer token on every request and stores the
// claims in the request context. Requests without a valid token get 401;
// expired tokens get a distinct message so clients know to refresh.
func Middleware(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(common.AuthorizationHeaderName)
			if !strings.HasPrefix(header, common.BearerPrefix) {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			claims, err := ParseToken(strings.TrimPrefix(header, common.BearerPrefix), secretKey)
			if err != nil {
				if err == common.ErrTokenExpired {
					http.Error(w, "token expired", http.StatusUnauthorized)
					return
				}
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
		})
	}
}
