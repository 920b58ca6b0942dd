package models

import (
	"time"

	"github.com/lib/pq"
)

// Workout is the aggregate root: the exercises column is the authoritative
// ordered id sequence, mirrored into workouts_exercises rows.
type Workout struct {
	ID        int64         `gorm:"column:id;primaryKey;autoIncrement"`
	Username  string        `gorm:"column:username;not null;index"`
	Date      time.Time     `gorm:"column:date;not null"`
	Exercises pq.Int64Array `gorm:"type:bigint[];column:exercises;not null"`
	Notes     *string       `gorm:"column:notes"`
}
