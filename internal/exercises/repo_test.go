package exercises

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgerrors "github.com/liftledger/liftledger-backend/pkg/errors"
)

func setupExercisesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS exercises (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL UNIQUE,
  body_part TEXT NOT NULL,
  equipment TEXT NOT NULL,
  gif_url TEXT NOT NULL,
  target TEXT NOT NULL,
  secondary_muscles TEXT NOT NULL DEFAULT '{}',
  instructions TEXT NOT NULL DEFAULT '{}'
);`
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

func seedExercise(t *testing.T, repo *Repository, name, bodyPart string) *ExerciseDTO {
	t.Helper()

	dto, err := repo.Create(context.Background(), CreateExerciseInput{
		Name:             name,
		BodyPart:         bodyPart,
		Equipment:        "barbell",
		GifURL:           "https://example.com/" + name + ".gif",
		Target:           "quads",
		SecondaryMuscles: []string{"glutes", "hamstrings"},
		Instructions:     []string{"setup", "lift"},
	})
	require.NoError(t, err)
	return dto
}

func TestCreateReturnsPersistedExercise(t *testing.T) {
	repo := NewRepository(setupExercisesTestDB(t))

	dto := seedExercise(t, repo, "Back Squat", "upper legs")
	assert.NotZero(t, dto.ID)
	assert.Equal(t, "Back Squat", dto.Name)
	assert.Equal(t, []string{"glutes", "hamstrings"}, dto.SecondaryMuscles)
	assert.Equal(t, []string{"setup", "lift"}, dto.Instructions)
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	repo := NewRepository(setupExercisesTestDB(t))
	seedExercise(t, repo, "Back Squat", "upper legs")

	_, err := repo.Create(context.Background(), CreateExerciseInput{
		Name:     "Back Squat",
		BodyPart: "upper legs",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDuplicate, typed.Code())
	assert.Equal(t, "Duplicate exercise: Back Squat", typed.Message())
}

func TestFindAllFiltersAndOrders(t *testing.T) {
	repo := NewRepository(setupExercisesTestDB(t))
	seedExercise(t, repo, "Back Squat", "upper legs")
	seedExercise(t, repo, "Bench Press", "chest")
	seedExercise(t, repo, "Front Squat", "upper legs")

	all, err := repo.FindAll(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Back Squat", all[0].Name)
	assert.Equal(t, "Bench Press", all[1].Name)
	assert.Equal(t, "Front Squat", all[2].Name)

	byName, err := repo.FindAll(context.Background(), Filter{Name: "squat"})
	require.NoError(t, err)
	require.Len(t, byName, 2)
	assert.Equal(t, "Back Squat", byName[0].Name)
	assert.Equal(t, "Front Squat", byName[1].Name)

	byBodyPart, err := repo.FindAll(context.Background(), Filter{BodyPart: "chest"})
	require.NoError(t, err)
	require.Len(t, byBodyPart, 1)
	assert.Equal(t, "Bench Press", byBodyPart[0].Name)

	// name wins when both filters are supplied
	both, err := repo.FindAll(context.Background(), Filter{Name: "bench", BodyPart: "upper legs"})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "Bench Press", both[0].Name)
}

func TestFindByIDNotFound(t *testing.T) {
	repo := NewRepository(setupExercisesTestDB(t))

	_, err := repo.FindByID(context.Background(), 999)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "No exercise with id: 999", typed.Message())
}

func TestUpdateAppliesPartialFields(t *testing.T) {
	repo := NewRepository(setupExercisesTestDB(t))
	created := seedExercise(t, repo, "Back Squat", "upper legs")

	newTarget := "glutes"
	newMuscles := []string{"core"}
	updated, err := repo.Update(context.Background(), created.ID, UpdateExerciseInput{
		Target:           &newTarget,
		SecondaryMuscles: &newMuscles,
	})
	require.NoError(t, err)
	assert.Equal(t, "glutes", updated.Target)
	assert.Equal(t, []string{"core"}, updated.SecondaryMuscles)
	assert.Equal(t, "Back Squat", updated.Name)
	assert.Equal(t, "upper legs", updated.BodyPart)
}

func TestUpdateRejectsEmptyInput(t *testing.T) {
	repo := NewRepository(setupExercisesTestDB(t))
	created := seedExercise(t, repo, "Back Squat", "upper legs")

	_, err := repo.Update(context.Background(), created.ID, UpdateExerciseInput{})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, "No data", typed.Message())
}

func TestUpdateNotFound(t *testing.T) {
	repo := NewRepository(setupExercisesTestDB(t))

	name := "Anything"
	_, err := repo.Update(context.Background(), 42, UpdateExerciseInput{Name: &name})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "No exercise with id: 42", typed.Message())
}

func TestDeleteRemovesRow(t *testing.T) {
	repo := NewRepository(setupExercisesTestDB(t))
	created := seedExercise(t, repo, "Back Squat", "upper legs")

	require.NoError(t, repo.Delete(context.Background(), created.ID))

	_, err := repo.FindByID(context.Background(), created.ID)
	require.Error(t, err)

	err = repo.Delete(context.Background(), created.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestCountByIDs(t *testing.T) {
	repo := NewRepository(setupExercisesTestDB(t))
	a := seedExercise(t, repo, "Back Squat", "upper legs")
	b := seedExercise(t, repo, "Bench Press", "chest")

	count, err := repo.CountByIDs(context.Background(), []int64{a.ID, b.ID, 999})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, count)
}
