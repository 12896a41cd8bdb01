package weather

import (
	"context"
	"errors"
)

var (
	// ErrMissingLocation indicates a fetch was requested with neither
	// coordinates nor a selected candidate. Callers are expected to supply
	// one of the two; this is a contract violation, not a user-facing state.
	ErrMissingLocation = errors.New("neither coordinates nor a city candidate was supplied")

	// ErrLocationUnavailable indicates the geolocation provider denied the
	// request or could not determine a position.
	ErrLocationUnavailable = errors.New("current location unavailable")
)

// Provider abstracts the weather data source (OpenWeatherMap in production).
// Descriptions use metric units and a single configured language on both
// weather calls.
type Provider interface {
	CurrentWeather(ctx context.Context, coords Coordinates) (WeatherSnapshot, error)
	Forecast(ctx context.Context, coords Coordinates) (ForecastSeries, error)
	FindCities(ctx context.Context, query string, limit int) ([]CityCandidate, error)
}

// Translator localizes place names into the target display language.
type Translator interface {
	Translate(ctx context.Context, text, target string) (string, error)
}

// Locator is the host-environment geolocation capability: a single-shot
// position lookup, not continuous tracking.
type Locator interface {
	Locate(ctx context.Context) (Coordinates, error)
}
