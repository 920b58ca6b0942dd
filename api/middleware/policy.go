package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/liftledger/liftledger-backend/api/responses"
	pkgerrors "github.com/liftledger/liftledger-backend/pkg/errors"
	"github.com/liftledger/liftledger-backend/pkg/logger"
)

// Policy is a composable authorization predicate over the caller identity and
// the request. Routes declare policy instead of re-deriving it per handler.
type Policy interface {
	Allow(identity *Identity, r *http.Request) error
}

// PolicyFunc adapts a function to the Policy interface.
type PolicyFunc func(identity *Identity, r *http.Request) error

func (f PolicyFunc) Allow(identity *Identity, r *http.Request) error {
	return f(identity, r)
}

func deny() error {
	return pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized")
}

// LoggedIn requires any authenticated identity.
func LoggedIn() Policy {
	return PolicyFunc(func(identity *Identity, _ *http.Request) error {
		if identity == nil {
			return deny()
		}
		return nil
	})
}

// AdminOnly requires an identity with the admin flag set.
func AdminOnly() Policy {
	return PolicyFunc(func(identity *Identity, _ *http.Request) error {
		if identity == nil || !identity.IsAdmin {
			return deny()
		}
		return nil
	})
}

// SelfOrAdmin requires an admin identity or one whose username matches the
// named route parameter.
func SelfOrAdmin(param string) Policy {
	return PolicyFunc(func(identity *Identity, r *http.Request) error {
		if identity == nil {
			return deny()
		}
		if identity.IsAdmin {
			return nil
		}
		if identity.Username != "" && identity.Username == chi.URLParam(r, param) {
			return nil
		}
		return deny()
	})
}

// Authorize enforces the policy before the handler runs.
func Authorize(policy Policy, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := policy.Allow(IdentityFromContext(r.Context()), r); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
