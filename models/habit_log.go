package models

import (
	"time"

	"gorm.io/gorm"
)

// HabitLog records one check event. At most one row exists per
// (habit_id, date); the write path upserts instead of appending.
type HabitLog struct {
	gorm.Model
	UserID  uint      `gorm:"index;not null"`
	HabitID uint      `gorm:"index;not null"`
	Date    time.Time `gorm:"index;not null"` // truncate to YYYY-MM-DD
	Checked bool
}
