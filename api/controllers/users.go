package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/liftledger/liftledger-backend/api/middleware"
	"github.com/liftledger/liftledger-backend/api/responses"
	"github.com/liftledger/liftledger-backend/api/validators"
	"github.com/liftledger/liftledger-backend/internal/users"
	"github.com/liftledger/liftledger-backend/internal/workouts"
	pkgerrors "github.com/liftledger/liftledger-backend/pkg/errors"
	"github.com/liftledger/liftledger-backend/pkg/logger"
)

type createUserRequest struct {
	Username  string `json:"username" validate:"required,min=1,max=30"`
	Password  string `json:"password" validate:"required,min=5,max=20"`
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email"`
	IsAdmin   bool   `json:"isAdmin"`
}

type updateUserRequest struct {
	Password  *string `json:"password" validate:"omitempty,min=5,max=20"`
	FirstName *string `json:"firstName" validate:"omitempty,max=50"`
	LastName  *string `json:"lastName" validate:"omitempty,max=50"`
	Email     *string `json:"email" validate:"omitempty,email"`
	IsAdmin   *bool   `json:"isAdmin"`
}

// userWithWorkouts embeds the user's workout history when any exists.
type userWithWorkouts struct {
	users.UserDTO
	Workouts []workouts.WorkoutDTO `json:"workouts,omitempty"`
}

// ListUsers returns every account.
func ListUsers(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.FindAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"users": list})
	}
}

// CreateUser provisions an account. Unlike self-service registration this
// endpoint may grant the admin role.
func CreateUser(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createUserRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Register(r.Context(), users.RegisterInput{
			Username:  body.Username,
			Password:  body.Password,
			FirstName: body.FirstName,
			LastName:  body.LastName,
			Email:     body.Email,
			IsAdmin:   body.IsAdmin,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"user": user})
	}
}

// GetUser loads one account, embedding the workout history when any exists.
func GetUser(svc users.Service, workoutsSvc workouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		user, err := svc.Get(r.Context(), username)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := userWithWorkouts{UserDTO: *user}
		if workoutsSvc != nil {
			history, err := workoutsSvc.GetAll(r.Context(), username)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if len(history) > 0 {
				payload.Workouts = history
			}
		}

		responses.WriteSuccess(w, map[string]any{"user": payload})
	}
}

// UpdateUser applies a partial update. Only admins may change the admin flag,
// so a user cannot escalate their own account.
func UpdateUser(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		var body updateUserRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if body.IsAdmin != nil {
			identity := middleware.IdentityFromContext(r.Context())
			if identity == nil || !identity.IsAdmin {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized"))
				return
			}
		}

		user, err := svc.Update(r.Context(), username, users.UpdateUserInput{
			Password:  body.Password,
			FirstName: body.FirstName,
			LastName:  body.LastName,
			Email:     body.Email,
			IsAdmin:   body.IsAdmin,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"user": user})
	}
}

// DeleteUser removes an account; the user's workouts cascade.
func DeleteUser(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		if err := svc.Remove(r.Context(), username); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"deleted": username})
	}
}
