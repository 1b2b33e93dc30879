package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/hyunvinlim-art/habit-tracker/models"
	"github.com/hyunvinlim-art/habit-tracker/utils"

	"gorm.io/gorm"
)

type AnalyticsService struct{ db *gorm.DB }

func NewAnalyticsService(db *gorm.DB) *AnalyticsService { return &AnalyticsService{db: db} }

// ---------- Summary ----------

type HabitStat struct {
	HabitID        uint    `json:"habit_id"`
	Name           string  `json:"name"`
	Emoji          string  `json:"emoji,omitempty"`
	Category       string  `json:"category,omitempty"`
	Streak         int     `json:"streak"`
	SuccessRate7d  float64 `json:"success_rate_7d"`
	CheckedInRange int     `json:"checked_in_range"`
}

type AnalyticsSummary struct {
	Range struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"range"`

	Habits []HabitStat `json:"habits"`

	Overall struct {
		SuccessRate7d float64 `json:"success_rate_7d"`
		DoneToday     int     `json:"done_today"`
		TotalToday    int     `json:"total_today"`
	} `json:"overall"`

	Metadata struct {
		DaysCounted int `json:"days_counted"`
		HabitCount  int `json:"habit_count"`
	} `json:"metadata"`
}

// Summary reports per-habit streaks and 7-day rates anchored on `to`, plus
// per-habit check counts inside [from, to].
func (s *AnalyticsService) Summary(
	ctx context.Context, userID uint, from, to time.Time,
) (*AnalyticsSummary, error) {

	var habits []models.Habit
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND archived = ?", userID, false).
		Order("created_at ASC").
		Find(&habits).Error; err != nil {
		return nil, err
	}

	// full history: streaks have no upper bound
	var logs []models.HabitLog
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&logs).Error; err != nil {
		return nil, err
	}

	asOf := dayStart(to)

	inRange := map[uint]int{}
	for _, l := range logs {
		if l.Checked && !l.Date.Before(dayStart(from)) && !l.Date.After(dayEnd(to)) {
			inRange[l.HabitID]++
		}
	}

	out := &AnalyticsSummary{}
	out.Range.From = from.Format("2006-01-02")
	out.Range.To = to.Format("2006-01-02")
	out.Metadata.DaysCounted = int(dayStart(to).Sub(dayStart(from)).Hours()/24) + 1
	out.Metadata.HabitCount = len(habits)

	out.Habits = make([]HabitStat, 0, len(habits))
	for _, h := range habits {
		out.Habits = append(out.Habits, HabitStat{
			HabitID:        h.ID,
			Name:           h.Name,
			Emoji:          h.Emoji,
			Category:       h.Category,
			Streak:         utils.CalcStreak(logs, h.ID, asOf),
			SuccessRate7d:  round2(utils.HabitSuccessRate7Days(logs, h.ID, asOf)),
			CheckedInRange: inRange[h.ID],
		})
	}

	done, total := utils.CalcDailyProgress(logs, habits, asOf)
	out.Overall.SuccessRate7d = round2(utils.Calc7DaySuccessRate(logs, habits, asOf))
	out.Overall.DoneToday = done
	out.Overall.TotalToday = total

	return out, nil
}

// ---------- Weekly Overview ----------

type WeeklyOverviewResponse struct {
	WeekStart string `json:"week_start"`
	Mode      string `json:"mode"` // chart|detailed
	Days      any    `json:"days"`
}

type DayChart struct {
	Date string `json:"date"`
	Pct  int    `json:"pct"`
	Done int    `json:"done"`
}

type DayDetailed struct {
	Date   string          `json:"date"`
	Done   int             `json:"done"`
	Total  int             `json:"total"`
	Habits map[string]bool `json:"habits"` // habit name -> checked
}

func (s *AnalyticsService) WeeklyOverview(
	ctx context.Context, userID uint, weekStart time.Time, mode string,
) (*WeeklyOverviewResponse, error) {

	if mode != "chart" && mode != "detailed" {
		return nil, errors.New("mode must be 'chart' or 'detailed'")
	}

	from := dayStart(weekStart)
	to := from.AddDate(0, 0, 6)

	var habits []models.Habit
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND archived = ?", userID, false).
		Order("created_at ASC").
		Find(&habits).Error; err != nil {
		return nil, err
	}

	var logs []models.HabitLog
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, dayEnd(to)).
		Find(&logs).Error; err != nil {
		return nil, err
	}

	// index checked state by yyyy-mm-dd + habit
	idx := map[string]map[uint]bool{}
	for _, l := range logs {
		key := l.Date.Format("2006-01-02")
		if idx[key] == nil {
			idx[key] = map[uint]bool{}
		}
		idx[key][l.HabitID] = l.Checked
	}

	out := &WeeklyOverviewResponse{
		WeekStart: from.Format("2006-01-02"),
		Mode:      mode,
	}

	if mode == "chart" {
		var days []DayChart
		for i := 0; i < 7; i++ {
			d := from.AddDate(0, 0, i)
			key := d.Format("2006-01-02")
			done := 0
			for _, h := range habits {
				if idx[key][h.ID] {
					done++
				}
			}
			days = append(days, DayChart{
				Date: key,
				Done: done,
				Pct:  utils.SafePct(done, len(habits)),
			})
		}
		out.Days = days
		return out, nil
	}

	var days []DayDetailed
	for i := 0; i < 7; i++ {
		d := from.AddDate(0, 0, i)
		key := d.Format("2006-01-02")
		byName := make(map[string]bool, len(habits))
		done := 0
		for _, h := range habits {
			checked := idx[key][h.ID]
			byName[h.Name] = checked
			if checked {
				done++
			}
		}
		days = append(days, DayDetailed{
			Date:   key,
			Done:   done,
			Total:  len(habits),
			Habits: byName,
		})
	}
	out.Days = days
	return out, nil
}

// ---------- internals ----------

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func dayStart(t time.Time) time.Time { return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()) }
func dayEnd(t time.Time) time.Time   { return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location()) }
