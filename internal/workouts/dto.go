package workouts

import (
	"time"

	"github.com/liftledger/liftledger-backend/pkg/db/models"
)

// WorkoutDTO is the flat transport shape: exercises stay as the ordered id
// sequence recorded on the workout row.
type WorkoutDTO struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Date      time.Time `json:"date"`
	Exercises []int64   `json:"exercises"`
	Notes     *string   `json:"notes"`
}

// WorkoutExerciseDTO is one expanded pairing: the full catalog entry plus the
// recorded performance detail from the join row.
type WorkoutExerciseDTO struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	BodyPart         string   `json:"bodyPart"`
	Equipment        string   `json:"equipment"`
	GifURL           string   `json:"gifUrl"`
	Target           string   `json:"target"`
	SecondaryMuscles []string `json:"secondaryMuscles"`
	Instructions     []string `json:"instructions"`
	Sets             *int     `json:"sets"`
	Reps             *int     `json:"reps"`
	Weight           *float64 `json:"weight"`
}

// WorkoutDetailDTO is the expanded transport shape returned by Get.
type WorkoutDetailDTO struct {
	ID        int64                `json:"id"`
	Username  string               `json:"username"`
	Date      time.Time            `json:"date"`
	Notes     *string              `json:"notes"`
	Exercises []WorkoutExerciseDTO `json:"exercises"`
}

// CreateWorkoutInput holds the data for a new workout.
type CreateWorkoutInput struct {
	Exercises []int64
	Notes     *string
}

// UpdateWorkoutInput replaces a workout's exercise sequence and notes.
type UpdateWorkoutInput struct {
	Exercises []int64
	Notes     *string
}

// ExerciseDetailInput records performance data for one pairing.
type ExerciseDetailInput struct {
	ExerciseID int64    `json:"exerciseId"`
	Weight     *float64 `json:"weight"`
	Reps       *int     `json:"reps"`
	Sets       *int     `json:"sets"`
}

// ExerciseDetailDTO echoes a persisted pairing detail.
type ExerciseDetailDTO struct {
	ExerciseID int64    `json:"exerciseId"`
	Weight     *float64 `json:"weight"`
	Reps       *int     `json:"reps"`
	Sets       *int     `json:"sets"`
}

// WorkoutDetailsDTO is the result of a detail update: the workout id plus the
// pairings that were written.
type WorkoutDetailsDTO struct {
	WorkoutID int64               `json:"workoutId"`
	Exercises []ExerciseDetailDTO `json:"exercises"`
}

func fromModel(w *models.Workout) *WorkoutDTO {
	if w == nil {
		return nil
	}
	return &WorkoutDTO{
		ID:        w.ID,
		Username:  w.Username,
		Date:      w.Date,
		Exercises: append([]int64(nil), w.Exercises...),
		Notes:     w.Notes,
	}
}

func fromModels(rows []models.Workout) []WorkoutDTO {
	dtos := make([]WorkoutDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *fromModel(&rows[i]))
	}
	return dtos
}
