package models

import (
	"time"

	"gorm.io/gorm"
)

type Habit struct {
	gorm.Model
	UserID        uint   `gorm:"index;not null"`
	Name          string `gorm:"not null"`
	Emoji         string `gorm:"size:8"`
	Category      string
	TargetPerWeek int       // e.g. 7 = every day, 3 = three times a week
	StartDate     time.Time // truncate to YYYY-MM-DD
	Archived      bool      `gorm:"default:false"`
}
