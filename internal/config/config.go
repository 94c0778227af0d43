// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the server needs from the environment.
type Config struct {
	Addr string

	OpenAISecret      string
	GeminiSecret      string
	ExtractorProvider string // "openai" (default) or "gemini"

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	Timezone string
}

// LoadConfig reads a .env file if present, then the environment. Missing
// optional keys fall back to defaults; credentials are validated at the
// point of use, not here.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment")
	}

	cfg := Config{
		Addr:               os.Getenv("ADDR"),
		OpenAISecret:       os.Getenv("OPENAI_SECRET_KEY"),
		GeminiSecret:       os.Getenv("GEMINI_SECRET_KEY"),
		ExtractorProvider:  os.Getenv("EXTRACTOR_PROVIDER"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		Timezone:           os.Getenv("CALENDAR_TIMEZONE"),
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.ExtractorProvider == "" {
		cfg.ExtractorProvider = "openai"
	}
	if cfg.GoogleRedirectURL == "" {
		cfg.GoogleRedirectURL = "http://localhost:8080/auth/google/callback"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "America/New_York"
	}
	return cfg
}

// Location resolves the configured timezone. All event timestamps are
// emitted in this one zone; there is no per-event timezone negotiation.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
