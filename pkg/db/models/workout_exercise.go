package models

// WorkoutExercise is one workout↔exercise pairing. Position preserves the
// order of the workout's exercises sequence; sets/reps/weight stay null until
// performance detail is recorded for the pair.
type WorkoutExercise struct {
	WorkoutID  int64    `gorm:"column:workout_id;primaryKey"`
	ExerciseID int64    `gorm:"column:exercise_id;primaryKey"`
	Position   int      `gorm:"column:position;not null"`
	Sets       *int     `gorm:"column:sets"`
	Reps       *int     `gorm:"column:reps"`
	Weight     *float64 `gorm:"column:weight"`
}

func (WorkoutExercise) TableName() string {
	return "workouts_exercises"
}
