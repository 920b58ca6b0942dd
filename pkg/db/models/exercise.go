package models

import (
	"github.com/lib/pq"
)

// Exercise is a catalog entry. Names are unique (case-sensitive); searches
// are case-insensitive.
type Exercise struct {
	ID               int64          `gorm:"column:id;primaryKey;autoIncrement"`
	Name             string         `gorm:"column:name;not null;uniqueIndex"`
	BodyPart         string         `gorm:"column:body_part;not null"`
	Equipment        string         `gorm:"column:equipment;not null"`
	GifURL           string         `gorm:"column:gif_url;not null"`
	Target           string         `gorm:"column:target;not null"`
	SecondaryMuscles pq.StringArray `gorm:"type:text[];column:secondary_muscles;not null"`
	Instructions     pq.StringArray `gorm:"type:text[];column:instructions;not null"`
}
