package users

import (
	"context"
	"fmt"
	"time"

	"github.com/liftledger/liftledger-backend/pkg/config"
	"github.com/liftledger/liftledger-backend/pkg/db"
	"github.com/liftledger/liftledger-backend/pkg/db/models"
	pkgerrors "github.com/liftledger/liftledger-backend/pkg/errors"
	"github.com/liftledger/liftledger-backend/pkg/security"
	"github.com/liftledger/liftledger-backend/pkg/sqlutil"
)

type repository interface {
	Create(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	UpdatePartial(ctx context.Context, username string, update *sqlutil.Update) (int64, error)
	Delete(ctx context.Context, username string) (int64, error)
}

// Service exposes account operations.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*UserDTO, error)
	Authenticate(ctx context.Context, username, password string) (*UserDTO, error)
	FindAll(ctx context.Context) ([]UserDTO, error)
	Get(ctx context.Context, username string) (*UserDTO, error)
	Update(ctx context.Context, username string, input UpdateUserInput) (*UserDTO, error)
	Remove(ctx context.Context, username string) error
}

type service struct {
	repo        repository
	passwordCfg config.PasswordConfig
}

// NewService builds a users service with the provided repository.
func NewService(repo repository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo, passwordCfg: passwordCfg}, nil
}

// Register creates an account, rejecting duplicate usernames.
func (s *service) Register(ctx context.Context, input RegisterInput) (*UserDTO, error) {
	_, err := s.repo.FindByUsername(ctx, input.Username)
	if err == nil {
		return nil, pkgerrors.Newf(pkgerrors.CodeDuplicate, "Duplicate username: %s", input.Username)
	}
	if !db.IsRecordNotFound(err) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check duplicate username")
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := models.User{
		Username:     input.Username,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		IsAdmin:      input.IsAdmin,
	}
	if err := s.repo.Create(ctx, &user); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Newf(pkgerrors.CodeDuplicate, "Duplicate username: %s", input.Username)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert user")
	}
	return FromModel(&user), nil
}

// Authenticate verifies credentials. The failure message is identical whether
// the username is absent or the password is wrong, so callers cannot probe for
// registered usernames.
func (s *service) Authenticate(ctx context.Context, username, password string) (*UserDTO, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if db.IsRecordNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid username/password")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid username/password")
	}
	return FromModel(user), nil
}

// FindAll returns every account ordered by username.
func (s *service) FindAll(ctx context.Context) ([]UserDTO, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	return FromModels(rows), nil
}

// Get loads one account.
func (s *service) Get(ctx context.Context, username string) (*UserDTO, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if db.IsRecordNotFound(err) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "No user: %s", username)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return FromModel(user), nil
}

// Update applies a partial update. A supplied password is re-hashed and
// updated_at is always stamped, regardless of which fields changed.
func (s *service) Update(ctx context.Context, username string, input UpdateUserInput) (*UserDTO, error) {
	update := sqlutil.NewUpdate()
	if input.Password != nil {
		hash, err := security.HashPassword(*input.Password, s.passwordCfg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		update.Set("password_hash", hash)
	}
	if input.FirstName != nil {
		update.Set("firstName", *input.FirstName)
	}
	if input.LastName != nil {
		update.Set("lastName", *input.LastName)
	}
	if input.Email != nil {
		update.Set("email", *input.Email)
	}
	if input.IsAdmin != nil {
		update.Set("isAdmin", *input.IsAdmin)
	}
	if update.Len() == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "No data")
	}
	update.Set("updatedAt", time.Now().UTC())

	affected, err := s.repo.UpdatePartial(ctx, username, update)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	if affected == 0 {
		return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "No user: %s", username)
	}
	return s.Get(ctx, username)
}

// Remove deletes an account. Workouts owned by the user cascade at the
// storage layer.
func (s *service) Remove(ctx context.Context, username string) error {
	affected, err := s.repo.Delete(ctx, username)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}
	if affected == 0 {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "No user: %s", username)
	}
	return nil
}
