package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/hyunvinlim-art/habit-tracker/services"

	"github.com/gin-gonic/gin"
)

type CreateHabitInput struct {
	Name          string `json:"name" binding:"required"`
	Emoji         string `json:"emoji"`
	Category      string `json:"category"`
	TargetPerWeek int    `json:"target_per_week"`
	StartDate     string `json:"start_date"` // YYYY-MM-DD, defaults to today
}

func CreateHabit(c *gin.Context) {
	uid := c.GetUint("userID")

	var input CreateHabitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	if input.StartDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", input.StartDate, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date. Use YYYY-MM-DD"})
			return
		}
		start = parsed
	}

	habit, err := services.CreateHabit(uid, input.Name, input.Emoji, input.Category, input.TargetPerWeek, start)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, habit)
}

func ListHabits(c *gin.Context) {
	uid := c.GetUint("userID")
	includeArchived := c.DefaultQuery("include_archived", "false") == "true"

	habits, err := services.ListHabits(uid, includeArchived)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"habits": habits})
}

func habitIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit id"})
		return 0, false
	}
	return uint(id), true
}

func ArchiveHabit(c *gin.Context) {
	uid := c.GetUint("userID")
	id, ok := habitIDParam(c)
	if !ok {
		return
	}

	if err := services.ArchiveHabit(uid, id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func DeleteHabit(c *gin.Context) {
	uid := c.GetUint("userID")
	id, ok := habitIDParam(c)
	if !ok {
		return
	}

	if err := services.DeleteHabit(uid, id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type LogHabitInput struct {
	Date    string `json:"date"` // YYYY-MM-DD, defaults to today
	Checked *bool  `json:"checked" binding:"required"`
}

// LogHabit upserts the check state for one habit on one day.
func LogHabit(c *gin.Context) {
	uid := c.GetUint("userID")
	id, ok := habitIDParam(c)
	if !ok {
		return
	}

	var input LogHabitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date := time.Now()
	if input.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", input.Date, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date. Use YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	if err := services.UpsertHabitLog(uid, id, date, *input.Checked); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func ListLogs(c *gin.Context) {
	uid := c.GetUint("userID")

	now := time.Now()
	fromStr := c.DefaultQuery("from", now.AddDate(0, 0, -6).Format("2006-01-02"))
	toStr := c.DefaultQuery("to", now.Format("2006-01-02"))

	from, err := time.ParseInLocation("2006-01-02", fromStr, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
		return
	}
	to, err := time.ParseInLocation("2006-01-02", toStr, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "`to` must be on/after `from`"})
		return
	}

	logs, err := services.ListHabitLogs(uid, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
