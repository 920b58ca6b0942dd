package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/liftledger/liftledger-backend/api/responses"
	"github.com/liftledger/liftledger-backend/pkg/db"
	pkgerrors "github.com/liftledger/liftledger-backend/pkg/errors"
	"github.com/liftledger/liftledger-backend/pkg/logger"
)

const readinessTimeout = 2 * time.Second

// HealthLive reports process liveness.
func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness by pinging the hard dependencies. Redis is
// optional; a nil pinger skips the check.
func HealthReady(database db.Pinger, cache db.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		if database == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "database unavailable"))
			return
		}
		if err := database.Ping(ctx); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database ping"))
			return
		}

		if cache != nil {
			if err := cache.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis ping"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
