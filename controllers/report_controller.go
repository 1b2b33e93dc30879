package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/hyunvinlim-art/habit-tracker/config"
	"github.com/hyunvinlim-art/habit-tracker/models"
	"github.com/hyunvinlim-art/habit-tracker/services"
	"github.com/hyunvinlim-art/habit-tracker/utils"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	Reports *services.ReportService
	Weather *services.WeatherService
	Dogs    *services.DogService
}

func NewReportController(rs *services.ReportService, ws *services.WeatherService, ds *services.DogService) *ReportController {
	return &ReportController{Reports: rs, Weather: ws, Dogs: ds}
}

// Generate gathers today's habit state, weather, and a dog, asks the coach
// for a report, and stores the result. Weather and dog are best-effort: a
// failed lookup degrades the prompt instead of failing the request.
func (rc *ReportController) Generate(c *gin.Context) {
	uid := c.GetUint("userID")
	email := c.GetString("email")

	user, err := services.FindUserByEmail(email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	habits, err := services.ListHabits(uid, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	logs, err := services.LogsForStats(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	today := time.Now()
	done, total := utils.CalcDailyProgress(logs, habits, today)

	var checked, missed []string
	idx := map[uint]bool{}
	for _, l := range logs {
		if l.Date.Format("2006-01-02") == today.Format("2006-01-02") {
			idx[l.HabitID] = l.Checked
		}
	}
	for _, h := range habits {
		if idx[h.ID] {
			checked = append(checked, h.Name)
		} else {
			missed = append(missed, h.Name)
		}
	}

	mood := 7
	if latest, err := services.LatestCheckin(uid); err == nil && latest != nil {
		mood = latest.Mood
	}

	weather, err := rc.Weather.CurrentWeather(user.City)
	if err != nil {
		log.Printf("weather lookup failed: %v", err)
	}
	dog, err := rc.Dogs.RandomDog()
	if err != nil {
		log.Printf("dog lookup failed: %v", err)
	}

	in := services.ReportInput{
		CoachStyle:     user.CoachStyle,
		HabitsChecked:  checked,
		HabitsMissed:   missed,
		Mood:           mood,
		AchievementPct: utils.SafePct(done, total),
		Weather:        weather,
		Dog:            dog,
	}

	content, err := rc.Reports.GenerateReport(in)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	report, err := services.SaveReport(uid, today, in, content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"report":  report,
		"weather": weather,
		"dog":     dog,
	})
}

func (rc *ReportController) Latest(c *gin.Context) {
	uid := c.GetUint("userID")

	var report models.CoachReport
	if err := config.DB.
		Where("user_id = ?", uid).
		Order("created_at desc").
		First(&report).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no reports yet"})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (rc *ReportController) Share(c *gin.Context) {
	uid := c.GetUint("userID")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return
	}

	var report models.CoachReport
	if err := config.DB.
		Where("id = ? AND user_id = ?", uint(id), uid).
		First(&report).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"share_text": services.ShareText(&report)})
}
