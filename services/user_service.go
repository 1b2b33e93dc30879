package services

import (
	"errors"
	"fmt"

	"github.com/hyunvinlim-art/habit-tracker/config"
	"github.com/hyunvinlim-art/habit-tracker/models"
	"github.com/hyunvinlim-art/habit-tracker/utils"
)

type ProfileInput struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	City           string `json:"city"`        // "City,CC" for weather lookups
	CoachStyle     string `json:"coach_style"` // "spartan" | "mentor" | "gamemaster"
	ProfilePicture string `json:"profile_picture"`
	Onboarded      bool   `json:"onboarded"`
}

func GetUserProfile(email string) (map[string]interface{}, error) {
	var user models.User
	result := config.DB.Where("email = ? AND disabled = ?", email, false).First(&user)
	if result.Error != nil {
		return nil, errors.New("user not found or disabled")
	}

	return map[string]interface{}{
		"id":              user.ID,
		"email":           user.Email,
		"first_name":      user.FirstName,
		"last_name":       user.LastName,
		"city":            user.City,
		"coach_style":     user.CoachStyle,
		"profile_picture": user.ProfilePicture,
		"mfa_enabled":     user.MFAEnabled,
		"onboarded":       user.Onboarded,
	}, nil
}

func UpdateUserProfile(email string, input ProfileInput) error {
	var user models.User
	result := config.DB.Where("email = ? AND disabled = ?", email, false).First(&user)
	if result.Error != nil {
		return errors.New("user not found or disabled")
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.City != "" {
		user.City = input.City
	}
	if input.CoachStyle != "" {
		if _, ok := systemPrompts[input.CoachStyle]; !ok {
			return fmt.Errorf("unknown coach style %q", input.CoachStyle)
		}
		user.CoachStyle = input.CoachStyle
	}
	if input.ProfilePicture != "" {
		url, err := utils.UploadBase64ImageToS3(input.ProfilePicture, user.Email)
		if err != nil {
			return fmt.Errorf("failed to upload image: %v", err)
		}
		user.ProfilePicture = url
	}

	user.Onboarded = input.Onboarded

	return config.DB.Save(&user).Error
}

func FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	result := config.DB.First(&user, "email = ?", email)
	if result.Error != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}

func DeleteUser(email string) error {
	var user models.User
	result := config.DB.First(&user, "email = ?", email)
	if result.Error != nil {
		return result.Error
	}
	user.Disabled = true
	return config.DB.Save(&user).Error
}
