package services

import (
	"errors"
	"time"

	"github.com/hyunvinlim-art/habit-tracker/config"
	"github.com/hyunvinlim-art/habit-tracker/models"

	"gorm.io/gorm"
)

func dayStartLocal(t time.Time) time.Time {
	loc := time.Local
	tt := t.In(loc)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, loc)
}

func CreateHabit(userID uint, name, emoji, category string, targetPerWeek int, startDate time.Time) (*models.Habit, error) {
	if name == "" {
		return nil, errors.New("habit name is required")
	}
	if targetPerWeek <= 0 || targetPerWeek > 7 {
		targetPerWeek = 7
	}
	if startDate.IsZero() {
		startDate = time.Now()
	}

	h := models.Habit{
		UserID:        userID,
		Name:          name,
		Emoji:         emoji,
		Category:      category,
		TargetPerWeek: targetPerWeek,
		StartDate:     dayStartLocal(startDate),
	}
	if err := config.DB.Create(&h).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

func ListHabits(userID uint, includeArchived bool) ([]models.Habit, error) {
	q := config.DB.Where("user_id = ?", userID)
	if !includeArchived {
		q = q.Where("archived = ?", false)
	}

	var habits []models.Habit
	err := q.Order("created_at asc").Find(&habits).Error
	return habits, err
}

func findUserHabit(userID, habitID uint) (*models.Habit, error) {
	var h models.Habit
	err := config.DB.Where("id = ? AND user_id = ?", habitID, userID).First(&h).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("habit not found")
		}
		return nil, err
	}
	return &h, nil
}

func ArchiveHabit(userID, habitID uint) error {
	h, err := findUserHabit(userID, habitID)
	if err != nil {
		return err
	}
	h.Archived = true
	return config.DB.Save(h).Error
}

func DeleteHabit(userID, habitID uint) error {
	h, err := findUserHabit(userID, habitID)
	if err != nil {
		return err
	}
	// drop the habit's log rows with it
	if err := config.DB.Where("habit_id = ?", h.ID).Delete(&models.HabitLog{}).Error; err != nil {
		return err
	}
	return config.DB.Delete(h).Error
}

// UpsertHabitLog writes the authoritative checked value for (habitID, date).
// A second write for the same day overwrites rather than appending, so at
// most one row ever exists per pair.
func UpsertHabitLog(userID, habitID uint, date time.Time, checked bool) error {
	if _, err := findUserHabit(userID, habitID); err != nil {
		return err
	}
	start := dayStartLocal(date)

	entry := models.HabitLog{
		UserID:  userID,
		HabitID: habitID,
		Date:    start,
		Checked: checked,
	}
	// Assign takes a map, not the struct: GORM skips zero-value struct
	// fields on update, which would make checked=false unwritable.
	return config.DB.
		Where("habit_id = ? AND date = ?", habitID, start).
		Assign(map[string]interface{}{"checked": checked}).
		FirstOrCreate(&entry).Error
}

func ListHabitLogs(userID uint, from, to time.Time) ([]models.HabitLog, error) {
	var logs []models.HabitLog
	err := config.DB.
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, dayStartLocal(from), dayStartLocal(to)).
		Order("date asc").
		Find(&logs).Error
	return logs, err
}

// LogsForStats fetches the log window the statistics engine reads. Streaks
// can span the whole history, so this pulls everything for the user; the
// per-user log stays small (one row per habit per day).
func LogsForStats(userID uint) ([]models.HabitLog, error) {
	var logs []models.HabitLog
	err := config.DB.Where("user_id = ?", userID).Find(&logs).Error
	return logs, err
}
