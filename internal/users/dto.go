package users

import (
	"time"

	"github.com/liftledger/liftledger-backend/pkg/db/models"
)

// UserDTO is the transport shape for an account. The password hash never
// leaves the package.
type UserDTO struct {
	Username  string    `json:"username"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RegisterInput holds the data required to create an account. IsAdmin stays
// false unless an admin-created account sets it.
type RegisterInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	IsAdmin   bool
}

// UpdateUserInput captures the allowed fields for partial mutation. A supplied
// password is re-hashed before it reaches storage.
type UpdateUserInput struct {
	Password  *string
	FirstName *string
	LastName  *string
	Email     *string
	IsAdmin   *bool
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func FromModels(rows []models.User) []UserDTO {
	dtos := make([]UserDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos
}
