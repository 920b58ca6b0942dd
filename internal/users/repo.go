package users

import (
	"context"

	"gorm.io/gorm"

	"github.com/liftledger/liftledger-backend/pkg/db/models"
	"github.com/liftledger/liftledger-backend/pkg/sqlutil"
)

// updateColumns translates external field names to column names for partial
// updates.
var updateColumns = map[string]string{
	"firstName": "first_name",
	"lastName":  "last_name",
	"isAdmin":   "is_admin",
	"updatedAt": "updated_at",
}

// Repository exposes user persistence operations. Business rules (duplicate
// checks, hashing, error mapping) live in the service.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user row.
func (r *Repository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByUsername retrieves one user, password hash included.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAll returns every user ordered by username.
func (r *Repository) FindAll(ctx context.Context) ([]models.User, error) {
	var rows []models.User
	if err := r.db.WithContext(ctx).Order("username").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdatePartial executes a compiled partial update scoped to one username and
// reports how many rows it touched.
func (r *Repository) UpdatePartial(ctx context.Context, username string, update *sqlutil.Update) (int64, error) {
	setClause, values, err := update.Compile(updateColumns)
	if err != nil {
		return 0, err
	}
	result := r.db.WithContext(ctx).Exec(
		"UPDATE users SET "+setClause+" WHERE username = ?",
		append(values, username)...,
	)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Delete removes a user row and reports how many rows it touched.
func (r *Repository) Delete(ctx context.Context, username string) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.User{}, "username = ?", username)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
