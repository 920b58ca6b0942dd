package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/liftledger/liftledger-backend/api/responses"
	"github.com/liftledger/liftledger-backend/api/validators"
	"github.com/liftledger/liftledger-backend/internal/workouts"
	pkgerrors "github.com/liftledger/liftledger-backend/pkg/errors"
	"github.com/liftledger/liftledger-backend/pkg/logger"
)

type createWorkoutRequest struct {
	Exercises []int64 `json:"exercises" validate:"required,min=1"`
	Notes     *string `json:"notes"`
}

type updateWorkoutRequest struct {
	Exercises []int64 `json:"exercises" validate:"required,min=1"`
	Notes     *string `json:"notes"`
}

type workoutDetailEntry struct {
	ExerciseID int64    `json:"exerciseId" validate:"required"`
	Weight     *float64 `json:"weight" validate:"omitempty,gte=0"`
	Reps       *int     `json:"reps" validate:"omitempty,gte=0"`
	Sets       *int     `json:"sets" validate:"omitempty,gte=0"`
}

type updateWorkoutDetailsRequest struct {
	Exercises []workoutDetailEntry `json:"exercises" validate:"required,min=1,dive"`
}

type adminWorkoutsRequest struct {
	Username string `json:"username" validate:"required,min=1,max=30"`
}

func workoutIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid workout id")
	}
	return id, nil
}

// ownedWorkout loads the workout and rejects ids that do not belong to the
// path's user. Cross-user ids surface as not-found rather than forbidden, so
// the response does not confirm the workout exists.
func ownedWorkout(r *http.Request, svc workouts.Service) (*workouts.WorkoutDetailDTO, error) {
	id, err := workoutIDParam(r)
	if err != nil {
		return nil, err
	}

	workout, err := svc.Get(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if workout.Username != chi.URLParam(r, "username") {
		return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "No workout: %d", id)
	}
	return workout, nil
}

// ListWorkouts returns the user's workouts, newest first.
func ListWorkouts(svc workouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		list, err := svc.GetAll(r.Context(), username)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"workouts": list})
	}
}

// CreateWorkout records a new workout for the path's user.
func CreateWorkout(svc workouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		var body createWorkoutRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		workout, err := svc.Create(r.Context(), username, workouts.CreateWorkoutInput{
			Exercises: body.Exercises,
			Notes:     body.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"workout": workout})
	}
}

// GetWorkout loads one workout with its exercises expanded to full catalog
// entries plus recorded detail.
func GetWorkout(svc workouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workout, err := ownedWorkout(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"workout": workout})
	}
}

// UpdateWorkout replaces a workout's exercise sequence and notes. Previously
// recorded per-exercise detail is discarded.
func UpdateWorkout(svc workouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owned, err := ownedWorkout(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateWorkoutRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		workout, err := svc.Update(r.Context(), owned.ID, workouts.UpdateWorkoutInput{
			Exercises: body.Exercises,
			Notes:     body.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"workout": workout})
	}
}

// UpdateWorkoutDetails writes sets/reps/weight onto existing workout-exercise
// pairings in one transactional batch.
func UpdateWorkoutDetails(svc workouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owned, err := ownedWorkout(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateWorkoutDetailsRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries := make([]workouts.ExerciseDetailInput, 0, len(body.Exercises))
		for _, entry := range body.Exercises {
			entries = append(entries, workouts.ExerciseDetailInput{
				ExerciseID: entry.ExerciseID,
				Weight:     entry.Weight,
				Reps:       entry.Reps,
				Sets:       entry.Sets,
			})
		}

		details, err := svc.UpdateExerciseDetails(r.Context(), owned.ID, entries)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"workout": details})
	}
}

// DeleteWorkout removes a workout; join rows cascade.
func DeleteWorkout(svc workouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owned, err := ownedWorkout(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), owned.ID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"deleted": owned.ID})
	}
}

// AdminListWorkouts returns any user's workouts; the target username travels
// in the request body.
func AdminListWorkouts(svc workouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body adminWorkoutsRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.GetAll(r.Context(), body.Username)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"workouts": list})
	}
}
