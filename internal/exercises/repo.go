package exercises

import (
	"context"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/liftledger/liftledger-backend/pkg/db"
	"github.com/liftledger/liftledger-backend/pkg/db/models"
	pkgerrors "github.com/liftledger/liftledger-backend/pkg/errors"
	"github.com/liftledger/liftledger-backend/pkg/sqlutil"
)

// updateColumns translates external field names to column names for partial
// updates. Fields absent from the map pass through unchanged.
var updateColumns = map[string]string{
	"bodyPart":         "body_part",
	"gifUrl":           "gif_url",
	"secondaryMuscles": "secondary_muscles",
}

// Repository owns the exercise catalog: CRUD plus filtered search.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an exercises repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new catalog entry, rejecting duplicate names.
func (r *Repository) Create(ctx context.Context, input CreateExerciseInput) (*ExerciseDTO, error) {
	var existing models.Exercise
	err := r.db.WithContext(ctx).Where("name = ?", input.Name).First(&existing).Error
	if err == nil {
		return nil, pkgerrors.Newf(pkgerrors.CodeDuplicate, "Duplicate exercise: %s", input.Name)
	}
	if !db.IsRecordNotFound(err) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check duplicate exercise")
	}

	exercise := models.Exercise{
		Name:             input.Name,
		BodyPart:         input.BodyPart,
		Equipment:        input.Equipment,
		GifURL:           input.GifURL,
		Target:           input.Target,
		SecondaryMuscles: toStringArray(input.SecondaryMuscles),
		Instructions:     toStringArray(input.Instructions),
	}
	if err := r.db.WithContext(ctx).Create(&exercise).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Newf(pkgerrors.CodeDuplicate, "Duplicate exercise: %s", input.Name)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert exercise")
	}
	return FromModel(&exercise), nil
}

// FindAll returns catalog entries ordered by name. When a name substring is
// supplied it wins over the body-part filter; the match is case-insensitive.
func (r *Repository) FindAll(ctx context.Context, filter Filter) ([]ExerciseDTO, error) {
	query := r.db.WithContext(ctx).Model(&models.Exercise{})
	if filter.Name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	} else if filter.BodyPart != "" {
		query = query.Where("body_part = ?", filter.BodyPart)
	}

	var rows []models.Exercise
	if err := query.Order("name").Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list exercises")
	}
	return FromModels(rows), nil
}

// FindByID loads one catalog entry.
func (r *Repository) FindByID(ctx context.Context, id int64) (*ExerciseDTO, error) {
	var exercise models.Exercise
	if err := r.db.WithContext(ctx).First(&exercise, "id = ?", id).Error; err != nil {
		if db.IsRecordNotFound(err) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "No exercise with id: %d", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load exercise")
	}
	return FromModel(&exercise), nil
}

// Update applies a partial update and returns the refreshed record. An empty
// input is rejected before touching storage.
func (r *Repository) Update(ctx context.Context, id int64, input UpdateExerciseInput) (*ExerciseDTO, error) {
	update := sqlutil.NewUpdate()
	if input.Name != nil {
		update.Set("name", *input.Name)
	}
	if input.BodyPart != nil {
		update.Set("bodyPart", *input.BodyPart)
	}
	if input.Equipment != nil {
		update.Set("equipment", *input.Equipment)
	}
	if input.GifURL != nil {
		update.Set("gifUrl", *input.GifURL)
	}
	if input.Target != nil {
		update.Set("target", *input.Target)
	}
	if input.SecondaryMuscles != nil {
		update.Set("secondaryMuscles", toStringArray(*input.SecondaryMuscles))
	}
	if input.Instructions != nil {
		update.Set("instructions", toStringArray(*input.Instructions))
	}

	setClause, values, err := update.Compile(updateColumns)
	if err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Exec(
		"UPDATE exercises SET "+setClause+" WHERE id = ?",
		append(values, id)...,
	)
	if result.Error != nil {
		if db.IsUniqueViolation(result.Error, "") && input.Name != nil {
			return nil, pkgerrors.Newf(pkgerrors.CodeDuplicate, "Duplicate exercise: %s", *input.Name)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "update exercise")
	}
	if result.RowsAffected == 0 {
		return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "No exercise with id: %d", id)
	}
	return r.FindByID(ctx, id)
}

// Delete removes a catalog entry by id.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Exercise{}, "id = ?", id)
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "delete exercise")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "No exercise with id: %d", id)
	}
	return nil
}

// CountByIDs reports how many of the provided ids exist in the catalog. The
// workout aggregate uses this for referential-integrity checks.
func (r *Repository) CountByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Exercise{}).Where("id IN ?", ids).Count(&count).Error
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count exercises")
	}
	return count, nil
}

func toStringArray(values []string) pq.StringArray {
	if values == nil {
		return pq.StringArray{}
	}
	res := make(pq.StringArray, len(values))
	copy(res, values)
	return res
}
