package store

import (
	"errors"
	"sync"
	"time"

	"weather-lookup-service/internal/weather"
)

var (
	// ErrNotFound is returned when no history entry exists for a given id.
	ErrNotFound = errors.New("no history entry with requested id")
)

// HistoryStore is an append-only, insertion-ordered record of completed
// weather lookups. Entries are never mutated, removed, or deduplicated:
// revisiting a city creates a new entry.
type HistoryStore struct {
	mu      sync.RWMutex
	entries []weather.HistoryEntry
	lastID  int64
}

func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// Append records a completed lookup and returns the stored entry. IDs are
// creation-time milliseconds, bumped on collision so they stay strictly
// increasing within the store.
func (s *HistoryStore) Append(name string, snapshot weather.WeatherSnapshot, series weather.ForecastSeries) weather.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	entry := weather.HistoryEntry{
		ID:       id,
		Name:     name,
		Snapshot: snapshot,
		Series:   append(weather.ForecastSeries(nil), series...),
	}
	s.entries = append(s.entries, entry)
	return entry
}

// Restore returns the entry with the given id. It never touches an external
// provider; the stored snapshot and series are returned as recorded.
func (s *HistoryStore) Restore(id int64) (weather.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, entry := range s.entries {
		if entry.ID == id {
			return entry, nil
		}
	}
	return weather.HistoryEntry{}, ErrNotFound
}

// Entries returns a copy of the history in insertion order.
func (s *HistoryStore) Entries() []weather.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]weather.HistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len reports the number of recorded lookups.
func (s *HistoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
