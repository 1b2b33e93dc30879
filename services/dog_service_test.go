package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestBreedFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://images.dog.ceo/breeds/hound-afghan/n02088094_1003.jpg", "hound afghan"},
		{"https://images.dog.ceo/breeds/pug/n02110958_1975.jpg", "pug"},
		{"https://images.dog.ceo/breeds/terrier-norwich/pic.jpg", "terrier norwich"},
		{"https://example.com/no-breed-segment.jpg", "unknown"},
		{"", "unknown"},
	}
	for _, tt := range tests {
		if got := breedFromURL(tt.url); got != tt.want {
			t.Errorf("breedFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestRandomDog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/breeds/image/random" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"https://images.dog.ceo/breeds/hound-afghan/n02088094_1003.jpg","status":"success"}`))
	}))
	defer srv.Close()

	svc := &DogService{baseURL: srv.URL, client: &http.Client{Timeout: time.Second}}
	dog, err := svc.RandomDog()
	if err != nil {
		t.Fatalf("RandomDog: %v", err)
	}
	if dog.Breed != "hound afghan" {
		t.Errorf("breed = %q, want %q", dog.Breed, "hound afghan")
	}
	if dog.ImageURL == "" {
		t.Error("image url missing")
	}
}

func TestRandomDog_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	svc := &DogService{baseURL: srv.URL, client: &http.Client{Timeout: time.Second}}
	if _, err := svc.RandomDog(); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}
