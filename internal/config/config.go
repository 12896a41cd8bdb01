package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// WeatherAPIKey authenticates against the weather data provider.
	WeatherAPIKey string

	// TranslationAPIKey authenticates against the translation provider.
	TranslationAPIKey string

	// TargetLanguage is the language city names are localized into.
	TargetLanguage string

	// WeatherLanguage is the description language requested from the weather
	// provider, applied to both the current-weather and forecast calls.
	WeatherLanguage string

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration

	// SessionTTL is how long an idle session is kept before the janitor
	// reclaims it.
	SessionTTL time.Duration

	// JanitorInterval controls how often idle sessions are swept.
	JanitorInterval time.Duration

	Port string
}

// Load reads configuration from the environment. Both API keys are required:
// a missing key is a configuration error surfaced here, before any fetch is
// attempted.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.WeatherAPIKey = os.Getenv("WEATHER_API_KEY")
	if cfg.WeatherAPIKey == "" {
		return nil, fmt.Errorf("WEATHER_API_KEY is required")
	}
	cfg.TranslationAPIKey = os.Getenv("TRANSLATION_API_KEY")
	if cfg.TranslationAPIKey == "" {
		return nil, fmt.Errorf("TRANSLATION_API_KEY is required")
	}

	cfg.TargetLanguage = getenvDefault("TARGET_LANGUAGE", "ja")
	cfg.WeatherLanguage = getenvDefault("WEATHER_LANGUAGE", "ja")

	timeout, err := getenvDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	ttl, err := getenvDuration("SESSION_TTL", "30m")
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	cfg.SessionTTL = ttl

	sweep, err := getenvDuration("JANITOR_INTERVAL", "5m")
	if err != nil {
		return nil, fmt.Errorf("invalid JANITOR_INTERVAL: %w", err)
	}
	cfg.JanitorInterval = sweep

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	return time.ParseDuration(getenvDefault(key, def))
}
