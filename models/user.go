package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email     string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	FirstName string
	LastName  string

	// City is the OpenWeatherMap query in "City,CC" form (e.g. "Seoul,KR").
	City       string `gorm:"default:'Seoul,KR'"`
	CoachStyle string `gorm:"size:20;default:'mentor'"` // "spartan" | "mentor" | "gamemaster"

	ProfilePicture string
	Onboarded      bool
	Disabled       bool

	MFAEnabled    bool
	MFACode       string
	ResetToken    string
	ResetTokenExp time.Time
}
