package services

import (
	"fmt"
	"time"

	"github.com/hyunvinlim-art/habit-tracker/config"
	"github.com/hyunvinlim-art/habit-tracker/models"
	"github.com/hyunvinlim-art/habit-tracker/utils"

	"gorm.io/gorm"
)

// streak lengths that trigger a celebration alert
var streakMilestones = []int{7, 30, 100}

// SaveCheckin rolls the day's habit state plus mood into a DailyCheckin row
// (one per user+day, upsert) and emits alerts for streak milestones crossed
// by today's checks.
func SaveCheckin(userID uint, date time.Time, mood int) (*models.DailyCheckin, error) {
	if mood < 1 || mood > 10 {
		return nil, fmt.Errorf("mood must be between 1 and 10, got %d", mood)
	}
	start := dayStartLocal(date)

	habits, err := ListHabits(userID, false)
	if err != nil {
		return nil, err
	}
	logs, err := LogsForStats(userID)
	if err != nil {
		return nil, err
	}

	done, total := utils.CalcDailyProgress(logs, habits, start)

	checkin := models.DailyCheckin{
		UserID:       userID,
		Date:         start,
		Mood:         mood,
		CheckedCount: done,
		TotalCount:   total,
		Pct:          utils.SafePct(done, total),
	}
	// map-based Assign so a rollup that drops back to zero still overwrites
	// the stored row (GORM ignores zero-value struct fields on update)
	if err := config.DB.
		Where("user_id = ? AND date = ?", userID, start).
		Assign(map[string]interface{}{
			"mood":          mood,
			"checked_count": done,
			"total_count":   total,
			"pct":           checkin.Pct,
		}).
		FirstOrCreate(&checkin).Error; err != nil {
		return nil, err
	}

	notifyStreaks(userID, habits, logs, start)

	return &checkin, nil
}

func notifyStreaks(userID uint, habits []models.Habit, logs []models.HabitLog, asOf time.Time) {
	for _, h := range habits {
		streak := utils.CalcStreak(logs, h.ID, asOf)
		for _, m := range streakMilestones {
			if streak == m {
				emitAlertOnce(userID, "streak.milestone",
					fmt.Sprintf("%s: %d-day streak! Keep it going.", h.Name, streak))
			}
		}
		// a streak that just died: yesterday had one, today is unchecked
		if streak == 0 && utils.CalcStreak(logs, h.ID, asOf.AddDate(0, 0, -1)) >= 3 {
			emitAlertOnce(userID, "streak.broken",
				fmt.Sprintf("%s: your streak ended. Start a new one today.", h.Name))
		}
	}
}

// emitAlertOnce suppresses repeats of the same alert within the current day.
// Check-ins are editable (mood tweaks re-save the row), and a 7-day streak
// stays at 7 all day, so without this every re-save would re-push the
// milestone.
func emitAlertOnce(userID uint, typ, message string) {
	var n int64
	config.DB.Model(&models.Alert{}).
		Where("user_id = ? AND type = ? AND message = ? AND created_at >= ?",
			userID, typ, message, dayStartLocal(time.Now())).
		Count(&n)
	if n > 0 {
		return
	}
	EmitAlert(userID, typ, message)
}

type CheckinHistoryRow struct {
	Date         string `json:"date"`
	Pct          int    `json:"pct"`
	Mood         int    `json:"mood"`
	CheckedCount int    `json:"checked_count"`
}

// CheckinHistory returns the trailing `days` rows ending at asOf, oldest
// first, with missing days zero-filled so the chart always has a full axis.
func CheckinHistory(userID uint, asOf time.Time, days int) ([]CheckinHistoryRow, error) {
	if days <= 0 {
		days = 7
	}
	end := dayStartLocal(asOf)
	from := end.AddDate(0, 0, -(days - 1))

	var rows []models.DailyCheckin
	if err := config.DB.
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, end).
		Order("date asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	idx := map[string]models.DailyCheckin{}
	for _, r := range rows {
		idx[r.Date.Format("2006-01-02")] = r
	}

	out := make([]CheckinHistoryRow, 0, days)
	for d := from; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		r := idx[key] // zero value if the day was never saved
		out = append(out, CheckinHistoryRow{
			Date:         key,
			Pct:          r.Pct,
			Mood:         r.Mood,
			CheckedCount: r.CheckedCount,
		})
	}
	return out, nil
}

// LatestCheckin returns the newest saved check-in, or nil when none exists.
func LatestCheckin(userID uint) (*models.DailyCheckin, error) {
	var row models.DailyCheckin
	err := config.DB.
		Where("user_id = ?", userID).
		Order("date desc").
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
