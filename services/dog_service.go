package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type DogService struct {
	baseURL string
	client  *http.Client
}

// NewDogService initializes the Dog CEO client (keyless public API)
func NewDogService() *DogService {
	return &DogService{
		baseURL: "https://dog.ceo",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type Dog struct {
	ImageURL string `json:"image_url"`
	Breed    string `json:"breed"`
}

type dogImageResponse struct {
	Message string `json:"message"` // image URL
	Status  string `json:"status"`
}

// RandomDog fetches a random dog photo. The breed is derived from the
// /breeds/<slug>/ path segment of the image URL; "unknown" when absent.
func (s *DogService) RandomDog() (*Dog, error) {
	resp, err := s.client.Get(s.baseURL + "/api/breeds/image/random")
	if err != nil {
		return nil, fmt.Errorf("failed to call Dog CEO API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read dog response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dog CEO API error %d: %s", resp.StatusCode, string(body))
	}

	var dr dogImageResponse
	if err := json.Unmarshal(body, &dr); err != nil {
		return nil, fmt.Errorf("failed to parse dog JSON: %w", err)
	}
	if dr.Message == "" {
		return nil, fmt.Errorf("dog response missing image url")
	}

	return &Dog{
		ImageURL: dr.Message,
		Breed:    breedFromURL(dr.Message),
	}, nil
}

// e.g. https://images.dog.ceo/breeds/hound-afghan/n02088094_1003.jpg
func breedFromURL(imageURL string) string {
	_, after, found := strings.Cut(imageURL, "/breeds/")
	if !found {
		return "unknown"
	}
	slug, _, _ := strings.Cut(after, "/")
	if slug == "" {
		return "unknown"
	}
	return strings.ReplaceAll(slug, "-", " ")
}
