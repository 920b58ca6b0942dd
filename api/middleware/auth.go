package middleware

import (
	"net/http"
	"strings"

	pkgauth "github.com/liftledger/liftledger-backend/pkg/auth"
	"github.com/liftledger/liftledger-backend/pkg/config"
	"github.com/liftledger/liftledger-backend/pkg/logger"
)

// Auth recovers the caller identity from a bearer token when one is present.
// Verification fails closed: a missing or invalid token leaves the request
// anonymous instead of rejecting it, and the authorization policies decide
// downstream whether an identity is required.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil || claims.Username == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithIdentity(r.Context(), &Identity{
				Username: claims.Username,
				IsAdmin:  claims.IsAdmin,
			})
			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"username": claims.Username,
					"is_admin": claims.IsAdmin,
				})
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}
