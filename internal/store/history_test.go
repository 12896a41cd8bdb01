package store

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"weather-lookup-service/internal/weather"
)

func sampleSeries(base time.Time) weather.ForecastSeries {
	return weather.ForecastSeries{
		{Timestamp: base, Temperature: 12.5, Description: "clear sky"},
		{Timestamp: base.Add(3 * time.Hour), Temperature: 14.0, Description: "few clouds"},
	}
}

func TestAppendPreservesOrderWithMonotonicIDs(t *testing.T) {
	s := NewHistoryStore()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	first := s.Append("Tokyo", weather.WeatherSnapshot{DisplayName: "Tokyo"}, sampleSeries(base))
	second := s.Append("Paris", weather.WeatherSnapshot{DisplayName: "Paris"}, sampleSeries(base))
	// Revisiting the same city must create a new entry, not dedupe.
	third := s.Append("Tokyo", weather.WeatherSnapshot{DisplayName: "Tokyo"}, sampleSeries(base))

	if s.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", s.Len())
	}
	if !(first.ID < second.ID && second.ID < third.ID) {
		t.Fatalf("ids are not strictly increasing: %d, %d, %d", first.ID, second.ID, third.ID)
	}

	entries := s.Entries()
	for i, want := range []string{"Tokyo", "Paris", "Tokyo"} {
		if entries[i].Name != want {
			t.Errorf("entry %d name = %q, want %q", i, entries[i].Name, want)
		}
	}
}

func TestRestoreReturnsStoredEntry(t *testing.T) {
	s := NewHistoryStore()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	snapshot := weather.WeatherSnapshot{
		DisplayName: "東京",
		Condition:   "Clear",
		Description: "clear sky",
		Temperature: 23.4,
	}
	series := sampleSeries(base)

	stored := s.Append("東京", snapshot, series)

	got, err := s.Restore(stored.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got.Snapshot, snapshot) {
		t.Fatalf("restored snapshot = %+v, want %+v", got.Snapshot, snapshot)
	}
	if !reflect.DeepEqual(got.Series, series) {
		t.Fatalf("restored series = %+v, want %+v", got.Series, series)
	}
}

func TestRestoreUnknownID(t *testing.T) {
	s := NewHistoryStore()
	if _, err := s.Restore(42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
