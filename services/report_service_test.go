package services

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hyunvinlim-art/habit-tracker/models"
)

func TestBuildUserPrompt(t *testing.T) {
	wind := 3.4
	in := ReportInput{
		CoachStyle:     "mentor",
		HabitsChecked:  []string{"drink water", "study"},
		HabitsMissed:   []string{"workout"},
		Mood:           7,
		AchievementPct: 40,
		Weather: &Weather{
			City: "Seoul,KR", Description: "light rain",
			TempC: 12.3, FeelsLikeC: 10.8, Humidity: 81, WindMps: &wind,
		},
		Dog: &Dog{Breed: "hound afghan"},
	}

	prompt := buildUserPrompt(in)

	for _, want := range []string{
		"drink water, study",
		"workout",
		"Achievement: 40%",
		"Score: 7/10",
		"light rain",
		"hound afghan",
		"[Condition Grade]",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildUserPrompt_Degraded(t *testing.T) {
	in := ReportInput{
		CoachStyle:     "spartan",
		Mood:           3,
		AchievementPct: 0,
	}
	prompt := buildUserPrompt(in)

	if !strings.Contains(prompt, "No weather data.") {
		t.Error("prompt should note missing weather")
	}
	if !strings.Contains(prompt, "No dog data.") {
		t.Error("prompt should note missing dog")
	}
	if !strings.Contains(prompt, "- Done: none") || !strings.Contains(prompt, "- Missed: none") {
		t.Error("prompt should mark empty habit lists as none")
	}
}

func TestGenerateReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("authorization = %q", got)
		}

		body, _ := io.ReadAll(r.Body)
		var req chatRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("expected system+user messages, got %+v", req.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"  [Condition Grade] B\nKeep going.  "}}]}`))
	}))
	defer srv.Close()

	svc := &ReportService{
		client:  &http.Client{Timeout: time.Second},
		token:   "test-token",
		baseURL: srv.URL,
		model:   "gpt-5-mini",
	}

	got, err := svc.GenerateReport(ReportInput{CoachStyle: "gamemaster", Mood: 5})
	if err != nil {
		t.Fatalf("GenerateReport: %v", err)
	}
	if got != "[Condition Grade] B\nKeep going." {
		t.Errorf("content = %q", got)
	}
}

func TestGenerateReport_MissingKey(t *testing.T) {
	svc := &ReportService{client: &http.Client{Timeout: time.Second}, baseURL: "http://unused"}
	if _, err := svc.GenerateReport(ReportInput{}); err == nil {
		t.Fatal("expected error when API key is unset")
	}
}

func TestGenerateReport_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limit reached"}}`))
	}))
	defer srv.Close()

	svc := &ReportService{client: &http.Client{Timeout: time.Second}, token: "t", baseURL: srv.URL, model: "gpt-5-mini"}
	_, err := svc.GenerateReport(ReportInput{})
	if err == nil {
		t.Fatal("expected error on 429 response")
	}
	if !strings.Contains(err.Error(), "rate limit reached") {
		t.Errorf("error should surface the API message, got %v", err)
	}
}

func TestShareText(t *testing.T) {
	r := &models.CoachReport{
		Date:           time.Date(2025, 3, 15, 0, 0, 0, 0, time.Local),
		Style:          "mentor",
		Content:        "[Condition Grade] A\nGood day.",
		Mood:           8,
		AchievementPct: 80,
		CheckedNames:   "water,study",
		MissedNames:    "",
		City:           "Seoul,KR",
	}

	text := ShareText(r)
	for _, want := range []string{
		"Date: 2025-03-15",
		"City: Seoul,KR",
		"Coach: mentor",
		"Achievement: 80%",
		"Done: water,study",
		"Missed: none",
		"Mood: 8/10",
		"[Condition Grade] A",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("share text missing %q", want)
		}
	}
}
