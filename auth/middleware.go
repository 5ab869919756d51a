package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"tellsapi/logger"
)

type ctxKeyClaims struct{}

// Middleware rejects requests without a valid bearer token and stores the
// decoded claims in the request context.
func Middleware(codec *TokenCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, "Authorization header is missing")
				return
			}

			parts := strings.Fields(header)
			if len(parts) < 2 {
				unauthorized(w, "Token is missing")
				return
			}

			claims, err := codec.Verify(parts[1])
			if err != nil {
				logger.FromContext(r.Context()).WithError(err).Warn("JWT verification error")
				unauthorized(w, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyClaims{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the claims stored by Middleware.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ctxKeyClaims{}).(*Claims)
	return claims, ok
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
