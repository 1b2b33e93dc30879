package utils

import (
	"time"

	"github.com/hyunvinlim-art/habit-tracker/models"
)

// Habit statistics engine. Every function here is a pure function of the
// logs/habits it receives plus an explicit reference date; handlers pass
// time.Now(), tests pass a fixed date. A day with no log row counts the
// same as an explicit checked=false row.

const dateKeyLayout = "2006-01-02"

func dateKey(t time.Time) string { return t.Format(dateKeyLayout) }

// indexLogs builds a (date, habit) -> checked lookup. Later rows overwrite
// earlier ones for the same key, so a log that somehow carries duplicates
// still resolves to a single authoritative value.
func indexLogs(logs []models.HabitLog) map[string]map[uint]bool {
	idx := make(map[string]map[uint]bool)
	for _, l := range logs {
		key := dateKey(l.Date)
		if idx[key] == nil {
			idx[key] = make(map[uint]bool)
		}
		idx[key][l.HabitID] = l.Checked
	}
	return idx
}

func checkedOn(idx map[string]map[uint]bool, habitID uint, day time.Time) bool {
	byHabit := idx[dateKey(day)]
	if byHabit == nil {
		return false
	}
	return byHabit[habitID]
}

// CalcStreak counts consecutive checked days walking backward from asOf,
// asOf included. The first unchecked or missing day breaks the streak, so
// an unchecked asOf yields 0 regardless of history.
func CalcStreak(logs []models.HabitLog, habitID uint, asOf time.Time) int {
	idx := indexLogs(logs)

	streak := 0
	for day := asOf; checkedOn(idx, habitID, day); day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// HabitSuccessRate returns the fraction of the trailing `days` calendar days
// (asOf inclusive) on which the habit was checked. The denominator is always
// `days`: days before the habit existed simply count as unchecked.
func HabitSuccessRate(logs []models.HabitLog, habitID uint, asOf time.Time, days int) float64 {
	if days <= 0 {
		return 0.0
	}
	idx := indexLogs(logs)

	done := 0
	for i := 0; i < days; i++ {
		if checkedOn(idx, habitID, asOf.AddDate(0, 0, -i)) {
			done++
		}
	}
	return float64(done) / float64(days)
}

// HabitSuccessRate7Days is the fixed 7-day window used across the UI.
func HabitSuccessRate7Days(logs []models.HabitLog, habitID uint, asOf time.Time) float64 {
	return HabitSuccessRate(logs, habitID, asOf, 7)
}

// CalcSuccessRate aggregates over all habits: done / (habits × days).
// Returns 0.0 when there are no habits.
func CalcSuccessRate(logs []models.HabitLog, habits []models.Habit, asOf time.Time, days int) float64 {
	if len(habits) == 0 || days <= 0 {
		return 0.0
	}
	idx := indexLogs(logs)

	done := 0
	for _, h := range habits {
		for i := 0; i < days; i++ {
			if checkedOn(idx, h.ID, asOf.AddDate(0, 0, -i)) {
				done++
			}
		}
	}
	return float64(done) / float64(len(habits)*days)
}

// Calc7DaySuccessRate is the aggregate counterpart of HabitSuccessRate7Days.
func Calc7DaySuccessRate(logs []models.HabitLog, habits []models.Habit, asOf time.Time) float64 {
	return CalcSuccessRate(logs, habits, asOf, 7)
}

// CalcDailyProgress returns (done, total) for a single date. Total is the
// number of habits supplied; (0,0) when there are none.
func CalcDailyProgress(logs []models.HabitLog, habits []models.Habit, date time.Time) (done, total int) {
	total = len(habits)
	if total == 0 {
		return 0, 0
	}
	idx := indexLogs(logs)

	for _, h := range habits {
		if checkedOn(idx, h.ID, date) {
			done++
		}
	}
	return done, total
}

// SafePct mirrors the achievement percentage shown in the UI: x of total as
// a rounded integer percent, 0 when total is 0.
func SafePct(x, total int) int {
	if total <= 0 {
		return 0
	}
	return int(float64(x)/float64(total)*100 + 0.5)
}
