package models

import (
	"time"

	"gorm.io/gorm"
)

// CoachReport stores a generated report together with the context it was
// built from, so the share endpoint can re-render it later.
type CoachReport struct {
	gorm.Model
	UserID uint      `gorm:"index;not null"`
	Date   time.Time `gorm:"index;not null"`

	Style   string `gorm:"size:20"` // coach persona used
	Content string `gorm:"type:text"`

	Mood           int
	AchievementPct int
	CheckedNames   string `gorm:"type:text"` // comma-separated
	MissedNames    string `gorm:"type:text"`

	City        string
	WeatherDesc string
	DogBreed    string
}
