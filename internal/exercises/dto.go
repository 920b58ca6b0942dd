package exercises

import (
	"github.com/liftledger/liftledger-backend/pkg/db/models"
)

// ExerciseDTO is the transport shape for a catalog entry.
type ExerciseDTO struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	BodyPart         string   `json:"bodyPart"`
	Equipment        string   `json:"equipment"`
	GifURL           string   `json:"gifUrl"`
	Target           string   `json:"target"`
	SecondaryMuscles []string `json:"secondaryMuscles"`
	Instructions     []string `json:"instructions"`
}

// CreateExerciseInput holds the data required to persist a new exercise.
type CreateExerciseInput struct {
	Name             string
	BodyPart         string
	Equipment        string
	GifURL           string
	Target           string
	SecondaryMuscles []string
	Instructions     []string
}

// UpdateExerciseInput captures the allowed fields for partial mutation. Nil
// fields are left untouched.
type UpdateExerciseInput struct {
	Name             *string
	BodyPart         *string
	Equipment        *string
	GifURL           *string
	Target           *string
	SecondaryMuscles *[]string
	Instructions     *[]string
}

// Filter narrows FindAll. Name takes precedence over BodyPart when both are
// supplied.
type Filter struct {
	Name     string
	BodyPart string
}

func FromModel(e *models.Exercise) *ExerciseDTO {
	if e == nil {
		return nil
	}
	return &ExerciseDTO{
		ID:               e.ID,
		Name:             e.Name,
		BodyPart:         e.BodyPart,
		Equipment:        e.Equipment,
		GifURL:           e.GifURL,
		Target:           e.Target,
		SecondaryMuscles: append([]string(nil), e.SecondaryMuscles...),
		Instructions:     append([]string(nil), e.Instructions...),
	}
}

func FromModels(rows []models.Exercise) []ExerciseDTO {
	dtos := make([]ExerciseDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos
}
