package models

import (
	"time"
)

// User represents an account. The username is the primary key and the foreign
// key target for workouts; it never changes after registration.
type User struct {
	Username     string    `gorm:"column:username;primaryKey"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	FirstName    string    `gorm:"column:first_name;not null"`
	LastName     string    `gorm:"column:last_name;not null"`
	Email        string    `gorm:"column:email;not null"`
	IsAdmin      bool      `gorm:"column:is_admin;not null;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoCreateTime"`
}
