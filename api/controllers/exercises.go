package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/liftledger/liftledger-backend/api/responses"
	"github.com/liftledger/liftledger-backend/api/validators"
	"github.com/liftledger/liftledger-backend/internal/exercises"
	pkgerrors "github.com/liftledger/liftledger-backend/pkg/errors"
	"github.com/liftledger/liftledger-backend/pkg/logger"
)

type createExerciseRequest struct {
	Name             string   `json:"name" validate:"required,max=100"`
	BodyPart         string   `json:"bodyPart" validate:"required,max=50"`
	Equipment        string   `json:"equipment" validate:"required,max=50"`
	GifURL           string   `json:"gifUrl" validate:"omitempty,url"`
	Target           string   `json:"target" validate:"required,max=50"`
	SecondaryMuscles []string `json:"secondaryMuscles"`
	Instructions     []string `json:"instructions"`
}

type updateExerciseRequest struct {
	Name             *string   `json:"name" validate:"omitempty,min=1,max=100"`
	BodyPart         *string   `json:"bodyPart" validate:"omitempty,min=1,max=50"`
	Equipment        *string   `json:"equipment" validate:"omitempty,min=1,max=50"`
	GifURL           *string   `json:"gifUrl" validate:"omitempty,url"`
	Target           *string   `json:"target" validate:"omitempty,min=1,max=50"`
	SecondaryMuscles *[]string `json:"secondaryMuscles"`
	Instructions     *[]string `json:"instructions"`
}

func exerciseIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid exercise id")
	}
	return id, nil
}

// ListExercises returns catalog entries, optionally filtered by name substring
// or exact body part.
func ListExercises(svc exercises.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := exercises.Filter{
			Name:     r.URL.Query().Get("name"),
			BodyPart: r.URL.Query().Get("bodyPart"),
		}

		list, err := svc.FindAll(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"exercises": list})
	}
}

// GetExercise loads one catalog entry by id.
func GetExercise(svc exercises.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := exerciseIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		exercise, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"exercise": exercise})
	}
}

// CreateExercise adds a catalog entry.
func CreateExercise(svc exercises.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createExerciseRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		exercise, err := svc.Create(r.Context(), exercises.CreateExerciseInput{
			Name:             body.Name,
			BodyPart:         body.BodyPart,
			Equipment:        body.Equipment,
			GifURL:           body.GifURL,
			Target:           body.Target,
			SecondaryMuscles: body.SecondaryMuscles,
			Instructions:     body.Instructions,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"exercise": exercise})
	}
}

// UpdateExercise applies a partial update to a catalog entry.
func UpdateExercise(svc exercises.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := exerciseIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateExerciseRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		exercise, err := svc.Update(r.Context(), id, exercises.UpdateExerciseInput{
			Name:             body.Name,
			BodyPart:         body.BodyPart,
			Equipment:        body.Equipment,
			GifURL:           body.GifURL,
			Target:           body.Target,
			SecondaryMuscles: body.SecondaryMuscles,
			Instructions:     body.Instructions,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"exercise": exercise})
	}
}

// DeleteExercise removes a catalog entry. Workouts referencing it keep their
// recorded ids as soft references.
func DeleteExercise(svc exercises.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := exerciseIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Remove(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"deleted": id})
	}
}
