package services

import (
	"testing"
	"time"

	"github.com/hyunvinlim-art/habit-tracker/config"
	"github.com/hyunvinlim-art/habit-tracker/models"
)

func TestSaveCheckinRecomputesRollup(t *testing.T) {
	newTestDB(t)

	h, err := CreateHabit(1, "Run", "🏃", "fitness", 7, time.Time{})
	if err != nil {
		t.Fatalf("CreateHabit: %v", err)
	}
	day := time.Date(2025, 3, 15, 0, 0, 0, 0, time.Local)

	if err := UpsertHabitLog(1, h.ID, day, true); err != nil {
		t.Fatalf("upsert log: %v", err)
	}
	ci, err := SaveCheckin(1, day, 8)
	if err != nil {
		t.Fatalf("first SaveCheckin: %v", err)
	}
	if ci.CheckedCount != 1 || ci.Pct != 100 {
		t.Fatalf("want CheckedCount=1 Pct=100, got CheckedCount=%d Pct=%d",
			ci.CheckedCount, ci.Pct)
	}

	// un-check the habit, then re-save: the rollup must drop to zero
	if err := UpsertHabitLog(1, h.ID, day, false); err != nil {
		t.Fatalf("upsert log: %v", err)
	}
	ci, err = SaveCheckin(1, day, 4)
	if err != nil {
		t.Fatalf("second SaveCheckin: %v", err)
	}
	if ci.CheckedCount != 0 || ci.Pct != 0 {
		t.Errorf("stale rollup survived: want CheckedCount=0 Pct=0, got CheckedCount=%d Pct=%d",
			ci.CheckedCount, ci.Pct)
	}
	if ci.Mood != 4 {
		t.Errorf("want mood 4 after re-save, got %d", ci.Mood)
	}

	var rows []models.DailyCheckin
	if err := config.DB.Where("user_id = ?", uint(1)).Find(&rows).Error; err != nil {
		t.Fatalf("find checkins: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("want one check-in row per user and day, got %d", len(rows))
	}
}

func TestSaveCheckinRejectsBadMood(t *testing.T) {
	newTestDB(t)
	for _, mood := range []int{0, 11, -3} {
		if _, err := SaveCheckin(1, time.Now(), mood); err == nil {
			t.Errorf("mood %d: expected validation error", mood)
		}
	}
}

func TestStreakMilestoneAlertFiresOncePerDay(t *testing.T) {
	newTestDB(t)

	h, err := CreateHabit(1, "Meditate", "", "", 7, time.Time{})
	if err != nil {
		t.Fatalf("CreateHabit: %v", err)
	}
	ref := time.Date(2025, 3, 15, 0, 0, 0, 0, time.Local)
	for i := 0; i < 7; i++ {
		if err := UpsertHabitLog(1, h.ID, ref.AddDate(0, 0, -i), true); err != nil {
			t.Fatalf("upsert log: %v", err)
		}
	}

	// mood edits re-save the day's check-in; the milestone must not re-fire
	if _, err := SaveCheckin(1, ref, 7); err != nil {
		t.Fatalf("first SaveCheckin: %v", err)
	}
	if _, err := SaveCheckin(1, ref, 9); err != nil {
		t.Fatalf("second SaveCheckin: %v", err)
	}

	var n int64
	if err := config.DB.Model(&models.Alert{}).
		Where("user_id = ? AND type = ?", uint(1), "streak.milestone").
		Count(&n).Error; err != nil {
		t.Fatalf("count alerts: %v", err)
	}
	if n != 1 {
		t.Errorf("want exactly one milestone alert, got %d", n)
	}
}
