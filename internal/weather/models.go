package weather

import (
	"time"
)

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CityCandidate is a city returned by name search, not yet confirmed as the
// active location. Candidate lists are replaced wholesale on every search,
// never merged.
type CityCandidate struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	CountryCode string      `json:"countryCode"`
	Coordinates Coordinates `json:"coordinates"`
}

// WeatherSnapshot is a single point-in-time current-weather reading.
//
// DisplayName starts as the provider's raw place name. On the city-selected
// path it is overwritten with the localized name (or the original name if
// localization fails) before the snapshot is published or recorded in
// history; a snapshot is never exposed with a provisional name.
type WeatherSnapshot struct {
	DisplayName string  `json:"displayName"`
	Condition   string  `json:"condition"` // primary condition group, e.g. "Clouds"
	Description string  `json:"description"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feelsLike"`
	TempMin     float64 `json:"tempMin"`
	TempMax     float64 `json:"tempMax"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
}

// ForecastPoint is one forecast sample at 3-hour granularity.
type ForecastPoint struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature"`
	TempMin     float64   `json:"tempMin"`
	TempMax     float64   `json:"tempMax"`
	Description string    `json:"description"`
}

// ForecastSeries is a provider-ordered (chronological, ascending) sequence of
// forecast points covering five days in 3-hour steps.
type ForecastSeries []ForecastPoint

// HistoryEntry records one completed lookup. Entries are immutable after
// creation; the ID is a creation-time monotonic token assigned by the store.
type HistoryEntry struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Snapshot WeatherSnapshot `json:"snapshot"`
	Series   ForecastSeries  `json:"series"`
}

// SessionState is the published view of a session. The presentation layer
// only ever reads it; all mutation happens inside the session.
//
// CurrentSnapshot and CurrentSeries are always set or cleared together.
// ErrorMessage is cleared at the start of every fetch attempt.
type SessionState struct {
	SearchTerm        string           `json:"searchTerm"`
	Candidates        []CityCandidate  `json:"candidates"`
	SelectedCandidate *CityCandidate   `json:"selectedCandidate,omitempty"`
	CurrentSnapshot   *WeatherSnapshot `json:"currentSnapshot,omitempty"`
	CurrentSeries     ForecastSeries   `json:"currentSeries,omitempty"`
	ErrorMessage      string           `json:"errorMessage,omitempty"`
	History           []HistoryEntry   `json:"history"`
}
