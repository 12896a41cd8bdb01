// Package session implements the weather query orchestrator: one Session per
// browser session, owning the published state and the lookup history.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"weather-lookup-service/internal/store"
	"weather-lookup-service/internal/weather"
)

// MaxCandidates caps the number of cities returned per search.
const MaxCandidates = 5

// ErrNoSuchCandidate is returned when a selected candidate id is not in the
// current candidate list (the list is replaced on every search).
var ErrNoSuchCandidate = errors.New("candidate not in current search results")

// Session owns one user's session state. All state mutation happens here,
// serialized behind the mutex; the presentation layer only reads State().
// Provider calls run outside the lock.
type Session struct {
	provider   weather.Provider
	translator weather.Translator
	locator    weather.Locator
	targetLang string
	history    *store.HistoryStore

	mu         sync.Mutex
	searchTerm string
	candidates []weather.CityCandidate
	selected   *weather.CityCandidate
	snapshot   *weather.WeatherSnapshot
	series     weather.ForecastSeries
	errMsg     string
}

func New(provider weather.Provider, translator weather.Translator, locator weather.Locator, targetLang string) *Session {
	return &Session{
		provider:   provider,
		translator: translator,
		locator:    locator,
		targetLang: targetLang,
		history:    store.NewHistoryStore(),
	}
}

// Start resolves the current location once and, on success, runs the initial
// fetch. A denied or failed geolocation attempt leaves a persistent error
// state; there is no retry loop.
func (s *Session) Start(ctx context.Context) {
	coords, err := s.locator.Locate(ctx)
	if err != nil {
		log.Printf("session: geolocation failed: %v", err)
		s.mu.Lock()
		s.errMsg = "current location could not be determined"
		s.mu.Unlock()
		return
	}
	if err := s.Fetch(ctx, &coords, nil); err != nil {
		log.Printf("session: initial fetch failed: %v", err)
	}
}

// Search updates the search term and replaces the candidate list with the
// provider's results. A whitespace-only term clears the candidates without a
// provider call. Responses are applied last-term-wins: a result that arrives
// after a newer term has been issued is discarded.
func (s *Session) Search(ctx context.Context, term string) error {
	s.mu.Lock()
	s.searchTerm = term
	if strings.TrimSpace(term) == "" {
		s.candidates = nil
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	candidates, err := s.provider.FindCities(ctx, term, MaxCandidates)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.searchTerm != term {
		// A newer search superseded this one while it was in flight.
		return nil
	}
	if err != nil {
		s.candidates = nil
		s.errMsg = fmt.Sprintf("city search failed: %v", err)
		return err
	}
	s.candidates = candidates
	return nil
}

// SelectCandidate resolves a candidate from the current list and fetches
// weather for its coordinates.
func (s *Session) SelectCandidate(ctx context.Context, candidateID int64) error {
	s.mu.Lock()
	var selected *weather.CityCandidate
	for i := range s.candidates {
		if s.candidates[i].ID == candidateID {
			c := s.candidates[i]
			selected = &c
			break
		}
	}
	s.mu.Unlock()

	if selected == nil {
		return ErrNoSuchCandidate
	}
	return s.Fetch(ctx, nil, selected)
}

// Fetch runs one weather lookup: current conditions and forecast retrieved
// concurrently for the same coordinates, committed all-or-nothing. On the
// candidate path the display name is localized first, falling back to the
// untranslated name if localization fails; localization never fails the
// lookup. Every successful fetch appends exactly one history entry; a failed
// fetch clears the published weather and leaves history untouched.
func (s *Session) Fetch(ctx context.Context, coords *weather.Coordinates, origin *weather.CityCandidate) error {
	if coords == nil && origin == nil {
		return weather.ErrMissingLocation
	}
	var target weather.Coordinates
	if origin != nil {
		target = origin.Coordinates
	} else {
		target = *coords
	}

	s.mu.Lock()
	s.errMsg = ""
	s.mu.Unlock()

	var (
		wg          sync.WaitGroup
		snapshot    weather.WeatherSnapshot
		series      weather.ForecastSeries
		snapshotErr error
		seriesErr   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		snapshot, snapshotErr = s.provider.CurrentWeather(ctx, target)
	}()
	go func() {
		defer wg.Done()
		series, seriesErr = s.provider.Forecast(ctx, target)
	}()
	wg.Wait()

	if snapshotErr != nil || seriesErr != nil {
		err := snapshotErr
		if err == nil {
			err = seriesErr
		}
		s.mu.Lock()
		s.snapshot = nil
		s.series = nil
		s.errMsg = fmt.Sprintf("failed to fetch weather data: %v", err)
		s.mu.Unlock()
		return err
	}

	if origin != nil {
		name, err := s.translator.Translate(ctx, origin.Name, s.targetLang)
		if err != nil {
			log.Printf("session: translation of %q failed, keeping original name: %v", origin.Name, err)
			name = origin.Name
		}
		snapshot.DisplayName = name
	}

	s.history.Append(snapshot.DisplayName, snapshot, series)

	s.mu.Lock()
	s.snapshot = &snapshot
	s.series = series
	s.selected = origin
	s.mu.Unlock()
	return nil
}

// RestoreHistory republishes a prior lookup without fetching. This is the
// only read path that never calls a provider.
func (s *Session) RestoreHistory(entryID int64) error {
	entry, err := s.history.Restore(entryID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	snapshot := entry.Snapshot
	s.snapshot = &snapshot
	s.series = entry.Series
	s.errMsg = ""
	s.mu.Unlock()
	return nil
}

// State returns a copy of the latest published session state.
func (s *Session) State() weather.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := weather.SessionState{
		SearchTerm:   s.searchTerm,
		Candidates:   append([]weather.CityCandidate(nil), s.candidates...),
		ErrorMessage: s.errMsg,
		History:      s.history.Entries(),
	}
	if s.selected != nil {
		selected := *s.selected
		state.SelectedCandidate = &selected
	}
	if s.snapshot != nil {
		snapshot := *s.snapshot
		state.CurrentSnapshot = &snapshot
		state.CurrentSeries = append(weather.ForecastSeries(nil), s.series...)
	}
	return state
}
