package exercises

import (
	"context"
	"fmt"
)

type repository interface {
	Create(ctx context.Context, input CreateExerciseInput) (*ExerciseDTO, error)
	FindAll(ctx context.Context, filter Filter) ([]ExerciseDTO, error)
	FindByID(ctx context.Context, id int64) (*ExerciseDTO, error)
	Update(ctx context.Context, id int64, input UpdateExerciseInput) (*ExerciseDTO, error)
	Delete(ctx context.Context, id int64) error
}

// Service exposes the exercise catalog operations.
type Service interface {
	Create(ctx context.Context, input CreateExerciseInput) (*ExerciseDTO, error)
	FindAll(ctx context.Context, filter Filter) ([]ExerciseDTO, error)
	Get(ctx context.Context, id int64) (*ExerciseDTO, error)
	Update(ctx context.Context, id int64, input UpdateExerciseInput) (*ExerciseDTO, error)
	Remove(ctx context.Context, id int64) error
}

type service struct {
	repo repository
}

// NewService builds an exercises service with the provided repository.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("exercises repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateExerciseInput) (*ExerciseDTO, error) {
	return s.repo.Create(ctx, input)
}

func (s *service) FindAll(ctx context.Context, filter Filter) ([]ExerciseDTO, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *service) Get(ctx context.Context, id int64) (*ExerciseDTO, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id int64, input UpdateExerciseInput) (*ExerciseDTO, error) {
	return s.repo.Update(ctx, id, input)
}

func (s *service) Remove(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
