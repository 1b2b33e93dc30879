package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/hyunvinlim-art/habit-tracker/services"

	"github.com/gin-gonic/gin"
)

type CheckinInput struct {
	Mood int    `json:"mood" binding:"required"`
	Date string `json:"date"` // YYYY-MM-DD, defaults to today
}

// SaveCheckin rolls today's habit state + mood into the daily history row.
func SaveCheckin(c *gin.Context) {
	uid := c.GetUint("userID")

	var input CheckinInput
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

	checkin, err := services.SaveCheckin(uid, date, input.Mood)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, checkin)
}

// CheckinHistory serves the trailing bar-chart rows (default 7 days).
func CheckinHistory(c *gin.Context) {
	uid := c.GetUint("userID")

	days := 7
	if v := c.Query("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 || parsed > 90 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 90"})
			return
		}
		days = parsed
	}

	rows, err := services.CheckinHistory(uid, time.Now(), days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": rows})
}
