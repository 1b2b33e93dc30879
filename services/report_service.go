package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/hyunvinlim-art/habit-tracker/config"
	"github.com/hyunvinlim-art/habit-tracker/models"
)

type ReportService struct {
	client  *http.Client
	token   string
	baseURL string
	model   string
}

func NewReportService() *ReportService {
	base := os.Getenv("OPENAI_BASE_URL")
	if base == "" {
		base = "https://api.openai.com"
	}
	return &ReportService{
		client:  &http.Client{Timeout: 30 * time.Second}, // reports take a while
		token:   os.Getenv("OPENAI_API_KEY"),
		baseURL: base,
		model:   "gpt-5-mini",
	}
}

// coach personas; key is stored on the user profile
var systemPrompts = map[string]string{
	"spartan": `You are a strict, no-nonsense spartan coach.
Your tone is short and firm and you accept no excuses.
You are never aggressive or insulting. You give cold, honest encouragement.`,
	"mentor": `You are a warm and caring mentor.
You respect and empathize with the user and celebrate even small wins.
You give gentle, practical advice.`,
	"gamemaster": `You are the game master of an RPG world.
The user is the player and their habits are quests.
Interpret weather, mood, and habits as game elements and keep it fun.
A little cheese is fine, but do not run long.`,
}

const outputFormatGuide = `
Your output must follow this exact format.

[Condition Grade] S/A/B/C/D (exactly one)

[Habit Analysis]
- (core summary, three lines max)
- Separate the habits that were done from the ones that were missed.

[Weather Comment]
- If weather is present: 1-2 sentences of weather-based advice.
- If not: write only "No weather data."

[Tomorrow's Missions]
- Three concrete missions, tied to the tracked habits.

[One-liner of the Day]
- A single sentence.`

// ReportInput is everything the prompt is built from.
type ReportInput struct {
	CoachStyle     string
	HabitsChecked  []string
	HabitsMissed   []string
	Mood           int
	AchievementPct int
	Weather        *Weather
	Dog            *Dog
}

func buildUserPrompt(in ReportInput) string {
	checked := "none"
	if len(in.HabitsChecked) > 0 {
		checked = strings.Join(in.HabitsChecked, ", ")
	}
	missed := "none"
	if len(in.HabitsMissed) > 0 {
		missed = strings.Join(in.HabitsMissed, ", ")
	}

	weatherText := "No weather data."
	if in.Weather != nil {
		windTxt := "no data"
		if in.Weather.WindMps != nil {
			windTxt = fmt.Sprintf("%gm/s", *in.Weather.WindMps)
		}
		weatherText = fmt.Sprintf(
			"- City: %s\n- Conditions: %s\n- Temperature: %.1f°C (feels like %.1f°C)\n- Humidity: %d%%\n- Wind: %s",
			in.Weather.City, in.Weather.Description,
			in.Weather.TempC, in.Weather.FeelsLikeC,
			in.Weather.Humidity, windTxt,
		)
	}

	dogText := "No dog data."
	if in.Dog != nil {
		dogText = fmt.Sprintf("- Breed (guessed): %s", in.Dog.Breed)
	}

	var sb bytes.Buffer
	sb.WriteString("Today's check-in data:\n\n")
	sb.WriteString("[Habits]\n")
	sb.WriteString(fmt.Sprintf("- Done: %s\n", checked))
	sb.WriteString(fmt.Sprintf("- Missed: %s\n", missed))
	sb.WriteString(fmt.Sprintf("- Achievement: %d%%\n\n", in.AchievementPct))
	sb.WriteString(fmt.Sprintf("[Mood]\n- Score: %d/10\n\n", in.Mood))
	sb.WriteString(fmt.Sprintf("[Weather]\n%s\n\n", weatherText))
	sb.WriteString(fmt.Sprintf("[Dog]\n%s\n\n", dogText))
	sb.WriteString("Requirements:\n")
	sb.WriteString("- No exaggeration; give realistic advice.\n")
	sb.WriteString("- Keep it to roughly 12-18 lines total.\n")
	sb.WriteString("- Be concrete enough that the user can change today's behavior.\n")
	sb.WriteString(outputFormatGuide)
	return strings.TrimSpace(sb.String())
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateReport builds the coaching prompt and calls the chat completions
// API. The coach persona falls back to "mentor" for unknown styles.
func (r *ReportService) GenerateReport(in ReportInput) (string, error) {
	if r.token == "" {
		return "", fmt.Errorf("OPENAI_API_KEY not set")
	}

	system, ok := systemPrompts[in.CoachStyle]
	if !ok {
		system = systemPrompts["mentor"]
	}

	payload := chatRequest{
		Model:       r.model,
		Temperature: 0.7,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: buildUserPrompt(in)},
		},
	}
	b, _ := json.Marshal(payload)

	req, _ := http.NewRequest("POST", r.baseURL+"/v1/chat/completions", bytes.NewReader(b))
	req.Header.Set("Authorization", "Bearer "+r.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai request error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read openai response error: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// surface the API's own error message when it has one
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(respBytes, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("openai api error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("openai api error (%d): %s", resp.StatusCode, string(respBytes))
	}

	var out chatResponse
	if err := json.Unmarshal(respBytes, &out); err != nil {
		bodyPreview := string(respBytes)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200] + "..."
		}
		return "", fmt.Errorf("decode openai response error: %v | body: %s", err, bodyPreview)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("empty report from openai")
	}

	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

// SaveReport persists a generated report with its context snapshot.
func SaveReport(userID uint, date time.Time, in ReportInput, content string) (*models.CoachReport, error) {
	report := models.CoachReport{
		UserID:         userID,
		Date:           dayStartLocal(date),
		Style:          in.CoachStyle,
		Content:        content,
		Mood:           in.Mood,
		AchievementPct: in.AchievementPct,
		CheckedNames:   strings.Join(in.HabitsChecked, ","),
		MissedNames:    strings.Join(in.HabitsMissed, ","),
	}
	if in.Weather != nil {
		report.City = in.Weather.City
		report.WeatherDesc = in.Weather.Description
	}
	if in.Dog != nil {
		report.DogBreed = in.Dog.Breed
	}
	if err := config.DB.Create(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// ShareText renders a report as the copy-pasteable share block.
func ShareText(r *models.CoachReport) string {
	checked := r.CheckedNames
	if checked == "" {
		checked = "none"
	}
	missed := r.MissedNames
	if missed == "" {
		missed = "none"
	}
	city := r.City
	if city == "" {
		city = "no data"
	}

	return strings.TrimSpace(fmt.Sprintf(`[AI Habit Tracker Share]

- Date: %s
- City: %s
- Coach: %s
- Achievement: %d%%
- Done: %s
- Missed: %s
- Mood: %d/10

--- AI Report ---
%s`,
		r.Date.Format("2006-01-02"), city, r.Style,
		r.AchievementPct, checked, missed, r.Mood, r.Content))
}
