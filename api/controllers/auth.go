package controllers

import (
	"net/http"

	"github.com/liftledger/liftledger-backend/api/responses"
	"github.com/liftledger/liftledger-backend/api/validators"
	"github.com/liftledger/liftledger-backend/internal/auth"
	pkgerrors "github.com/liftledger/liftledger-backend/pkg/errors"
	"github.com/liftledger/liftledger-backend/pkg/logger"
)

type loginRequest struct {
	Username string `json:"username" validate:"required,min=1,max=30"`
	Password string `json:"password" validate:"required,min=5,max=20"`
}

type registerRequest struct {
	Username  string `json:"username" validate:"required,min=1,max=30"`
	Password  string `json:"password" validate:"required,min=5,max=20"`
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email"`
}

// AuthLogin exchanges credentials for an access token.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body loginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token, err := svc.Login(r.Context(), auth.LoginInput{
			Username: body.Username,
			Password: body.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, token)
	}
}

// AuthRegister creates a non-admin account and returns an access token for it.
func AuthRegister(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body registerRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token, err := svc.Register(r.Context(), auth.RegisterInput{
			Username:  body.Username,
			Password:  body.Password,
			FirstName: body.FirstName,
			LastName:  body.LastName,
			Email:     body.Email,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, token)
	}
}
