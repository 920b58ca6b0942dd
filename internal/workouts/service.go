package workouts

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/liftledger/liftledger-backend/pkg/db"
	"github.com/liftledger/liftledger-backend/pkg/db/models"
	pkgerrors "github.com/liftledger/liftledger-backend/pkg/errors"
)

type exercisesRepository interface {
	CountByIDs(ctx context.Context, ids []int64) (int64, error)
}

type usersRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// Service exposes the workout aggregate: the workout row plus its join-table
// mirror, kept in lockstep through transactional writes.
type Service interface {
	Create(ctx context.Context, username string, input CreateWorkoutInput) (*WorkoutDTO, error)
	GetAll(ctx context.Context, username string) ([]WorkoutDTO, error)
	Get(ctx context.Context, id int64) (*WorkoutDetailDTO, error)
	Update(ctx context.Context, id int64, input UpdateWorkoutInput) (*WorkoutDTO, error)
	UpdateExerciseDetails(ctx context.Context, workoutID int64, entries []ExerciseDetailInput) (*WorkoutDetailsDTO, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	client    *db.Client
	repo      *Repository
	exercises exercisesRepository
	users     usersRepository
}

// NewService builds a workouts service with the provided repositories.
func NewService(client *db.Client, repo *Repository, exercises exercisesRepository, users usersRepository) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if repo == nil {
		return nil, fmt.Errorf("workouts repository required")
	}
	if exercises == nil {
		return nil, fmt.Errorf("exercises repository required")
	}
	if users == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{client: client, repo: repo, exercises: exercises, users: users}, nil
}

// validateExercises checks every referenced id against the catalog. Ids are
// deduplicated before the count comparison, so repeating an id in the
// sequence is not a spurious integrity failure.
func (s *service) validateExercises(ctx context.Context, ids []int64) error {
	distinct := dedupe(ids)
	if len(distinct) == 0 {
		return nil
	}
	count, err := s.exercises.CountByIDs(ctx, distinct)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check exercises")
	}
	if count != int64(len(distinct)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "Exercise not found")
	}
	return nil
}

func (s *service) validateUser(ctx context.Context, username string) error {
	if _, err := s.users.FindByUsername(ctx, username); err != nil {
		if db.IsRecordNotFound(err) {
			return pkgerrors.Newf(pkgerrors.CodeNotFound, "No user: %s", username)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	return nil
}

// Create validates the referenced exercises and user, then writes the workout
// row and its join rows in one transaction.
func (s *service) Create(ctx context.Context, username string, input CreateWorkoutInput) (*WorkoutDTO, error) {
	if err := s.validateExercises(ctx, input.Exercises); err != nil {
		return nil, err
	}
	if err := s.validateUser(ctx, username); err != nil {
		return nil, err
	}

	workout := models.Workout{
		Username:  username,
		Date:      time.Now().UTC(),
		Exercises: toInt64Array(input.Exercises),
		Notes:     input.Notes,
	}
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Insert(ctx, &workout); err != nil {
			return err
		}
		return repo.InsertJoinRows(ctx, workout.ID, input.Exercises)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create workout")
	}
	return fromModel(&workout), nil
}

// GetAll returns the user's workouts newest first, exercises as flat id
// sequences.
func (s *service) GetAll(ctx context.Context, username string) ([]WorkoutDTO, error) {
	if err := s.validateUser(ctx, username); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByUsername(ctx, username)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list workouts")
	}
	return fromModels(rows), nil
}

// Get loads one workout with each referenced exercise expanded to its full
// catalog entry plus the pairing's recorded detail.
func (s *service) Get(ctx context.Context, id int64) (*WorkoutDetailDTO, error) {
	workout, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsRecordNotFound(err) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "No workout: %d", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load workout")
	}

	expanded, err := s.repo.ExpandExercises(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "expand exercises")
	}
	return &WorkoutDetailDTO{
		ID:        workout.ID,
		Username:  workout.Username,
		Date:      workout.Date,
		Notes:     workout.Notes,
		Exercises: expanded,
	}, nil
}

// Update is a destructive replace: the exercises sequence and notes are
// overwritten and every join row is rebuilt with null detail, discarding any
// previously recorded sets/reps/weight.
func (s *service) Update(ctx context.Context, id int64, input UpdateWorkoutInput) (*WorkoutDTO, error) {
	if err := s.validateExercises(ctx, input.Exercises); err != nil {
		return nil, err
	}

	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		affected, err := repo.UpdateRow(ctx, id, input.Exercises, input.Notes)
		if err != nil {
			return err
		}
		if affected == 0 {
			return pkgerrors.Newf(pkgerrors.CodeNotFound, "No workout: %d", id)
		}
		if err := repo.DeleteJoinRows(ctx, id); err != nil {
			return err
		}
		return repo.InsertJoinRows(ctx, id, input.Exercises)
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update workout")
	}

	workout, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload workout")
	}
	return fromModel(workout), nil
}

// UpdateExerciseDetails writes sets/reps/weight onto existing pairings. The
// batch is transactional: one missing pairing rolls back every entry.
func (s *service) UpdateExerciseDetails(ctx context.Context, workoutID int64, entries []ExerciseDetailInput) (*WorkoutDetailsDTO, error) {
	details := WorkoutDetailsDTO{
		WorkoutID: workoutID,
		Exercises: make([]ExerciseDetailDTO, 0, len(entries)),
	}

	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for _, entry := range entries {
			affected, err := repo.UpdateJoinDetail(ctx, workoutID, entry.ExerciseID, entry)
			if err != nil {
				return err
			}
			if affected == 0 {
				return pkgerrors.Newf(pkgerrors.CodeNotFound, "No workout: %d or exercise: %d", workoutID, entry.ExerciseID)
			}
			details.Exercises = append(details.Exercises, ExerciseDetailDTO{
				ExerciseID: entry.ExerciseID,
				Weight:     entry.Weight,
				Reps:       entry.Reps,
				Sets:       entry.Sets,
			})
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update workout details")
	}
	return &details, nil
}

// Delete removes the workout row; join rows cascade at the storage layer.
func (s *service) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete workout")
	}
	if affected == 0 {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "No workout: %d", id)
	}
	return nil
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	distinct := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}
	return distinct
}
