// controllers/analytics_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/hyunvinlim-art/habit-tracker/services"
	"github.com/hyunvinlim-art/habit-tracker/utils"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	Svc *services.AnalyticsService
}

func NewAnalyticsController(svc *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Svc: svc}
}

func (h *AnalyticsController) GetAnalyticsSummary(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok { c.JSON(http.StatusUnauthorized, gin.H{"error":"unauthorized"}); return }

	now := time.Now()
	first := now.AddDate(0, 0, -6)

	fromStr := c.DefaultQuery("from", first.Format("2006-01-02"))
	toStr   := c.DefaultQuery("to",   now.Format("2006-01-02"))

	from, err := time.ParseInLocation("2006-01-02", fromStr, now.Location()); if err != nil { c.JSON(400, gin.H{"error":"invalid from date"}); return }
	to,   err := time.ParseInLocation("2006-01-02", toStr,   now.Location()); if err != nil { c.JSON(400, gin.H{"error":"invalid to date"});   return }
	if to.Before(from) { c.JSON(400, gin.H{"error":"`to` must be on/after `from`"}); return }

	out, err := h.Svc.Summary(c.Request.Context(), userID, from, to)
	if err != nil { c.JSON(500, gin.H{"error": err.Error()}); return }
	c.JSON(200, out)
}

func (h *AnalyticsController) GetWeeklyOverview(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok { c.JSON(http.StatusUnauthorized, gin.H{"error":"unauthorized"}); return }

	now := time.Now()
	weekStart := startOfWeek(now)
	if v := c.Query("week_start"); v != "" {
		if ws, err := time.ParseInLocation("2006-01-02", v, now.Location()); err == nil {
			weekStart = startOfWeek(ws)
		} else {
			c.JSON(400, gin.H{"error":"invalid week_start"}); return
		}
	}
	mode := c.DefaultQuery("mode","detailed")

	out, err := h.Svc.WeeklyOverview(c.Request.Context(), userID, weekStart, mode)
	if err != nil { c.JSON(400, gin.H{"error": err.Error()}); return }
	c.JSON(200, out)
}

// GetHabitStreak serves one habit's current streak and 7-day rate, anchored
// on ?date= when supplied (defaults to today).
func (h *AnalyticsController) GetHabitStreak(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok { c.JSON(http.StatusUnauthorized, gin.H{"error":"unauthorized"}); return }

	habitID, idOK := habitIDParam(c)
	if !idOK {
		return
	}

	asOf := time.Now()
	if v := c.Query("date"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, asOf.Location())
		if err != nil {
			c.JSON(400, gin.H{"error": "invalid date"})
			return
		}
		asOf = parsed
	}

	logs, err := services.LogsForStats(userID)
	if err != nil { c.JSON(500, gin.H{"error": err.Error()}); return }

	c.JSON(200, gin.H{
		"habit_id":        habitID,
		"as_of":           asOf.Format("2006-01-02"),
		"streak":          utils.CalcStreak(logs, habitID, asOf),
		"success_rate_7d": utils.HabitSuccessRate7Days(logs, habitID, asOf),
	})
}

// --- helpers ---

func userIDFromCtx(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID") // adjust if your middleware uses another key
	if !ok {
		return 0, false
	}
	switch id := v.(type) {
	case uint:
		return id, true
	case int:
		return uint(id), true
	case int64:
		return uint(id), true
	default:
		return 0, false
	}
}

func startOfWeek(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	tt := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return tt.AddDate(0, 0, -(wd - 1)) // Monday
}
