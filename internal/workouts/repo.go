package workouts

import (
	"context"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/liftledger/liftledger-backend/pkg/db/models"
)

// Repository exposes workout persistence operations. The service composes
// these into transactional aggregate writes.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a workouts repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a copy of the repository bound to the transaction handle.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Insert persists a new workout row.
func (r *Repository) Insert(ctx context.Context, workout *models.Workout) error {
	return r.db.WithContext(ctx).Create(workout).Error
}

// FindByID loads one workout row.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Workout, error) {
	var workout models.Workout
	if err := r.db.WithContext(ctx).First(&workout, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &workout, nil
}

// ListByUsername returns the user's workouts, newest first.
func (r *Repository) ListByUsername(ctx context.Context, username string) ([]models.Workout, error) {
	var rows []models.Workout
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateRow replaces the exercises sequence and notes of one workout and
// reports how many rows it touched.
func (r *Repository) UpdateRow(ctx context.Context, id int64, exercises []int64, notes *string) (int64, error) {
	result := r.db.WithContext(ctx).Exec(
		"UPDATE workouts SET exercises = ?, notes = ? WHERE id = ?",
		toInt64Array(exercises), notes, id,
	)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Delete removes one workout row and reports how many rows it touched. Join
// rows cascade at the storage layer.
func (r *Repository) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Workout{}, "id = ?", id)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// InsertJoinRows mirrors the exercise sequence into workouts_exercises.
// Duplicate ids collapse to one row at the position of their first
// occurrence; detail fields start null.
func (r *Repository) InsertJoinRows(ctx context.Context, workoutID int64, exercises []int64) error {
	seen := make(map[int64]struct{}, len(exercises))
	position := 0
	for _, exerciseID := range exercises {
		if _, dup := seen[exerciseID]; dup {
			continue
		}
		seen[exerciseID] = struct{}{}
		row := models.WorkoutExercise{
			WorkoutID:  workoutID,
			ExerciseID: exerciseID,
			Position:   position,
		}
		if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
			return err
		}
		position++
	}
	return nil
}

// DeleteJoinRows drops every pairing for one workout.
func (r *Repository) DeleteJoinRows(ctx context.Context, workoutID int64) error {
	return r.db.WithContext(ctx).Delete(&models.WorkoutExercise{}, "workout_id = ?", workoutID).Error
}

// UpdateJoinDetail writes sets/reps/weight onto one pairing and reports how
// many rows it touched.
func (r *Repository) UpdateJoinDetail(ctx context.Context, workoutID, exerciseID int64, detail ExerciseDetailInput) (int64, error) {
	result := r.db.WithContext(ctx).Exec(
		"UPDATE workouts_exercises SET weight = ?, reps = ?, sets = ? WHERE workout_id = ? AND exercise_id = ?",
		detail.Weight, detail.Reps, detail.Sets, workoutID, exerciseID,
	)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// expandedRow is the join projection backing Get: the catalog entry plus the
// pairing's detail.
type expandedRow struct {
	ID               int64          `gorm:"column:id"`
	Name             string         `gorm:"column:name"`
	BodyPart         string         `gorm:"column:body_part"`
	Equipment        string         `gorm:"column:equipment"`
	GifURL           string         `gorm:"column:gif_url"`
	Target           string         `gorm:"column:target"`
	SecondaryMuscles pq.StringArray `gorm:"column:secondary_muscles"`
	Instructions     pq.StringArray `gorm:"column:instructions"`
	Sets             *int           `gorm:"column:sets"`
	Reps             *int           `gorm:"column:reps"`
	Weight           *float64       `gorm:"column:weight"`
}

// ExpandExercises joins the pairings of one workout to the exercise catalog,
// ordered by the position recorded at insert so the expansion matches the
// workout's own exercises sequence.
func (r *Repository) ExpandExercises(ctx context.Context, workoutID int64) ([]WorkoutExerciseDTO, error) {
	var rows []expandedRow
	err := r.db.WithContext(ctx).
		Table("workouts_exercises").
		Select("exercises.id, exercises.name, exercises.body_part, exercises.equipment, exercises.gif_url, exercises.target, exercises.secondary_muscles, exercises.instructions, workouts_exercises.sets, workouts_exercises.reps, workouts_exercises.weight").
		Joins("JOIN exercises ON workouts_exercises.exercise_id = exercises.id").
		Where("workouts_exercises.workout_id = ?", workoutID).
		Order("workouts_exercises.position").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	expanded := make([]WorkoutExerciseDTO, 0, len(rows))
	for _, row := range rows {
		expanded = append(expanded, WorkoutExerciseDTO{
			ID:               row.ID,
			Name:             row.Name,
			BodyPart:         row.BodyPart,
			Equipment:        row.Equipment,
			GifURL:           row.GifURL,
			Target:           row.Target,
			SecondaryMuscles: append([]string(nil), row.SecondaryMuscles...),
			Instructions:     append([]string(nil), row.Instructions...),
			Sets:             row.Sets,
			Reps:             row.Reps,
			Weight:           row.Weight,
		})
	}
	return expanded, nil
}

func toInt64Array(values []int64) pq.Int64Array {
	if values == nil {
		return pq.Int64Array{}
	}
	res := make(pq.Int64Array, len(values))
	copy(res, values)
	return res
}
