package models

import (
	"time"

	"gorm.io/gorm"
)

// DailyCheckin is the per-day rollup shown on the 7-day chart:
// mood plus how many habits were done out of how many existed.
type DailyCheckin struct {
	gorm.Model
	UserID uint      `gorm:"index;not null"`
	Date   time.Time `gorm:"index;not null"` // truncate to YYYY-MM-DD

	Mood         int // 1..10
	CheckedCount int
	TotalCount   int
	Pct          int // 0..100
}
