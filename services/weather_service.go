package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

type WeatherService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewWeatherService initializes the OpenWeatherMap client
func NewWeatherService() *WeatherService {
	return &WeatherService{
		apiKey:  os.Getenv("OPENWEATHER_API_KEY"),
		baseURL: "https://api.openweathermap.org",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type Weather struct {
	City        string   `json:"city"`
	Description string   `json:"description"`
	TempC       float64  `json:"temp_c"`
	FeelsLikeC  float64  `json:"feels_like_c"`
	Humidity    int      `json:"humidity"`
	WindMps     *float64 `json:"wind_mps,omitempty"`
}

type currentWeatherResponse struct {
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
}

// CurrentWeather fetches current conditions for a "City,CC" query in metric
// units. Callers treat weather as optional and degrade on error.
func (s *WeatherService) CurrentWeather(city string) (*Weather, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("OPENWEATHER_API_KEY not set")
	}

	lang := os.Getenv("OPENWEATHER_LANG")
	if lang == "" {
		lang = "kr"
	}

	u := fmt.Sprintf(
		"%s/data/2.5/weather?q=%s&appid=%s&units=metric&lang=%s",
		s.baseURL, url.QueryEscape(city), s.apiKey, lang,
	)

	resp, err := s.client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("failed to call OpenWeatherMap: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read weather response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openweathermap API error %d: %s", resp.StatusCode, string(body))
	}

	var wr currentWeatherResponse
	if err := json.Unmarshal(body, &wr); err != nil {
		return nil, fmt.Errorf("failed to parse weather JSON: %w", err)
	}
	if len(wr.Weather) == 0 {
		return nil, fmt.Errorf("weather response missing conditions")
	}

	return &Weather{
		City:        city,
		Description: wr.Weather[0].Description,
		TempC:       wr.Main.Temp,
		FeelsLikeC:  wr.Main.FeelsLike,
		Humidity:    wr.Main.Humidity,
		WindMps:     wr.Wind.Speed,
	}, nil
}
