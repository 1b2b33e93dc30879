package utils

import (
	"testing"
	"time"

	"github.com/hyunvinlim-art/habit-tracker/models"
)

var statsRef = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

// day returns the reference date shifted back n days.
func day(n int) time.Time { return statsRef.AddDate(0, 0, -n) }

func logAt(habitID uint, date time.Time, checked bool) models.HabitLog {
	return models.HabitLog{HabitID: habitID, Date: date, Checked: checked}
}

func habit(id uint, name string) models.Habit {
	h := models.Habit{Name: name}
	h.ID = id
	return h
}

func TestCalcStreak(t *testing.T) {
	tests := []struct {
		name string
		logs []models.HabitLog
		want int
	}{
		{"no logs", nil, 0},
		{"today only", []models.HabitLog{logAt(1, day(0), true)}, 1},
		{"three days then gap", []models.HabitLog{
			logAt(1, day(0), true),
			logAt(1, day(1), true),
			logAt(1, day(2), true),
			// day(3) missing
			logAt(1, day(4), true),
		}, 3},
		{"today unchecked breaks immediately", []models.HabitLog{
			logAt(1, day(0), false),
			logAt(1, day(1), true),
			logAt(1, day(2), true),
		}, 0},
		{"explicit false mid-run", []models.HabitLog{
			logAt(1, day(0), true),
			logAt(1, day(1), false),
			logAt(1, day(2), true),
		}, 1},
		{"long unbroken run", func() []models.HabitLog {
			var ls []models.HabitLog
			for i := 0; i < 30; i++ {
				ls = append(ls, logAt(1, day(i), true))
			}
			return ls
		}(), 30},
		{"other habit does not count", []models.HabitLog{
			logAt(2, day(0), true),
			logAt(2, day(1), true),
		}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcStreak(tt.logs, 1, statsRef)
			if got != tt.want {
				t.Errorf("CalcStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCalcStreak_LogOrderIrrelevant(t *testing.T) {
	logs := []models.HabitLog{
		logAt(1, day(2), true),
		logAt(1, day(0), true),
		logAt(1, day(1), true),
	}
	if got := CalcStreak(logs, 1, statsRef); got != 3 {
		t.Errorf("CalcStreak() with shuffled logs = %d, want 3", got)
	}
}

func TestHabitSuccessRate7Days(t *testing.T) {
	fullWeek := func() []models.HabitLog {
		var ls []models.HabitLog
		for i := 0; i < 7; i++ {
			ls = append(ls, logAt(1, day(i), true))
		}
		return ls
	}

	tests := []struct {
		name string
		logs []models.HabitLog
		want float64
	}{
		{"no logs", nil, 0.0},
		{"every day checked", fullWeek(), 1.0},
		{"all unchecked rows", []models.HabitLog{
			logAt(1, day(0), false),
			logAt(1, day(3), false),
		}, 0.0},
		{"three of seven", []models.HabitLog{
			logAt(1, day(0), true),
			logAt(1, day(2), true),
			logAt(1, day(5), true),
		}, 3.0 / 7.0},
		{"checks outside the window ignored", []models.HabitLog{
			logAt(1, day(7), true),
			logAt(1, day(10), true),
		}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HabitSuccessRate7Days(tt.logs, 1, statsRef)
			if got != tt.want {
				t.Errorf("HabitSuccessRate7Days() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalc7DaySuccessRate(t *testing.T) {
	habits := []models.Habit{habit(1, "water"), habit(2, "run")}

	t.Run("empty everything", func(t *testing.T) {
		if got := Calc7DaySuccessRate(nil, nil, statsRef); got != 0.0 {
			t.Errorf("Calc7DaySuccessRate(nil, nil) = %v, want 0", got)
		}
	})

	t.Run("no habits never divides by zero", func(t *testing.T) {
		logs := []models.HabitLog{logAt(1, day(0), true)}
		if got := Calc7DaySuccessRate(logs, nil, statsRef); got != 0.0 {
			t.Errorf("Calc7DaySuccessRate(logs, nil) = %v, want 0", got)
		}
	})

	t.Run("partial", func(t *testing.T) {
		logs := []models.HabitLog{
			logAt(1, day(0), true),
			logAt(1, day(1), true),
			logAt(2, day(0), true),
		}
		want := 3.0 / 14.0
		if got := Calc7DaySuccessRate(logs, habits, statsRef); got != want {
			t.Errorf("Calc7DaySuccessRate() = %v, want %v", got, want)
		}
	})

	t.Run("perfect week across habits", func(t *testing.T) {
		var logs []models.HabitLog
		for _, h := range habits {
			for i := 0; i < 7; i++ {
				logs = append(logs, logAt(h.ID, day(i), true))
			}
		}
		if got := Calc7DaySuccessRate(logs, habits, statsRef); got != 1.0 {
			t.Errorf("Calc7DaySuccessRate() = %v, want 1", got)
		}
	})
}

func TestCalcDailyProgress(t *testing.T) {
	habits := []models.Habit{
		habit(1, "wake up"), habit(2, "water"), habit(3, "study"), habit(4, "run"),
	}
	logs := []models.HabitLog{
		logAt(1, statsRef, true),
		logAt(2, statsRef, true),
		logAt(3, statsRef, true),
		logAt(4, statsRef, false),
		logAt(4, day(1), true), // wrong day
	}

	done, total := CalcDailyProgress(logs, habits, statsRef)
	if done != 3 || total != 4 {
		t.Errorf("CalcDailyProgress() = (%d,%d), want (3,4)", done, total)
	}

	done, total = CalcDailyProgress(logs, nil, statsRef)
	if done != 0 || total != 0 {
		t.Errorf("CalcDailyProgress() with no habits = (%d,%d), want (0,0)", done, total)
	}
}

// The engine must not mutate its inputs: calling twice with the same data
// yields the same answers.
func TestStatsIdempotent(t *testing.T) {
	habits := []models.Habit{habit(1, "water"), habit(2, "run")}
	logs := []models.HabitLog{
		logAt(1, day(0), true),
		logAt(1, day(1), true),
		logAt(2, day(0), false),
	}

	s1 := CalcStreak(logs, 1, statsRef)
	r1 := Calc7DaySuccessRate(logs, habits, statsRef)
	s2 := CalcStreak(logs, 1, statsRef)
	r2 := Calc7DaySuccessRate(logs, habits, statsRef)

	if s1 != s2 {
		t.Errorf("CalcStreak not stable: %d then %d", s1, s2)
	}
	if r1 != r2 {
		t.Errorf("Calc7DaySuccessRate not stable: %v then %v", r1, r2)
	}
}

// Duplicate (date, habit) rows should never exist, but if they do the last
// row wins rather than the answer being order-dependent garbage.
func TestDuplicateRowsLastWins(t *testing.T) {
	logs := []models.HabitLog{
		logAt(1, day(0), false),
		logAt(1, day(0), true),
	}
	if got := CalcStreak(logs, 1, statsRef); got != 1 {
		t.Errorf("CalcStreak() with duplicate rows = %d, want 1", got)
	}
}

func TestSafePct(t *testing.T) {
	tests := []struct {
		x, total, want int
	}{
		{0, 0, 0},
		{3, 0, 0},
		{0, 5, 0},
		{3, 5, 60},
		{5, 5, 100},
		{1, 3, 33},
		{2, 3, 67},
	}
	for _, tt := range tests {
		if got := SafePct(tt.x, tt.total); got != tt.want {
			t.Errorf("SafePct(%d, %d) = %d, want %d", tt.x, tt.total, got, tt.want)
		}
	}
}
