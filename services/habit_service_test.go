package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/hyunvinlim-art/habit-tracker/config"
	"github.com/hyunvinlim-art/habit-tracker/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB swaps config.DB for an in-memory sqlite database. Each test
// gets its own named database so tests cannot see each other's rows.
func newTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Habit{},
		&models.HabitLog{},
		&models.DailyCheckin{},
		&models.Alert{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	config.DB = db
	InitAlertDeps(db, nil, nil)
}

func TestUpsertHabitLogOverwrites(t *testing.T) {
	newTestDB(t)

	h, err := CreateHabit(1, "Stretch", "🧘", "health", 7, time.Time{})
	if err != nil {
		t.Fatalf("CreateHabit: %v", err)
	}
	day := time.Date(2025, 3, 15, 0, 0, 0, 0, time.Local)

	if err := UpsertHabitLog(1, h.ID, day, true); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := UpsertHabitLog(1, h.ID, day, false); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var rows []models.HabitLog
	if err := config.DB.Where("habit_id = ?", h.ID).Find(&rows).Error; err != nil {
		t.Fatalf("find logs: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("want one row per habit and day, got %d", len(rows))
	}
	if rows[0].Checked {
		t.Errorf("wrote checked=false last, row still has checked=true")
	}

	// flipping back on must work too
	if err := UpsertHabitLog(1, h.ID, day, true); err != nil {
		t.Fatalf("third upsert: %v", err)
	}
	if err := config.DB.Where("habit_id = ?", h.ID).Find(&rows).Error; err != nil {
		t.Fatalf("find logs: %v", err)
	}
	if len(rows) != 1 || !rows[0].Checked {
		t.Errorf("want single row with checked=true, got %d rows, checked=%v",
			len(rows), rows[0].Checked)
	}
}

func TestUpsertHabitLogRejectsForeignHabit(t *testing.T) {
	newTestDB(t)

	h, err := CreateHabit(1, "Read", "", "", 7, time.Time{})
	if err != nil {
		t.Fatalf("CreateHabit: %v", err)
	}
	day := time.Date(2025, 3, 15, 0, 0, 0, 0, time.Local)

	if err := UpsertHabitLog(2, h.ID, day, true); err == nil {
		t.Errorf("expected error logging another user's habit")
	}
}
