package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"

	"weather-lookup-service/internal/weather"
)

// IPLocator resolves the host's approximate position from its public IP
// address. It stands in for browser geolocation: a single-shot lookup whose
// failure surfaces as weather.ErrLocationUnavailable.
type IPLocator struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewIPLocator(client *http.Client) *IPLocator {
	return &IPLocator{
		baseURL: "http://ip-api.com/json",
		httpCfg: defaultHTTPConfig(client),
		circuit: newCircuit("iplocator"),
	}
}

// Locate performs one position lookup.
func (l *IPLocator) Locate(ctx context.Context) (weather.Coordinates, error) {
	buildRequest := func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, l.baseURL, nil)
	}

	resp, err := doRequestWithResilience(ctx, l.httpCfg, l.circuit, buildRequest)
	if err != nil {
		return weather.Coordinates{}, fmt.Errorf("%w: %v", weather.ErrLocationUnavailable, err)
	}
	defer resp.Body.Close()

	var payload struct {
		Status string  `json:"status"`
		Lat    float64 `json:"lat"`
		Lon    float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Coordinates{}, fmt.Errorf("%w: %v", weather.ErrLocationUnavailable, err)
	}
	if payload.Status != "success" {
		return weather.Coordinates{}, fmt.Errorf("%w: lookup returned status %q", weather.ErrLocationUnavailable, payload.Status)
	}

	return weather.Coordinates{Latitude: payload.Lat, Longitude: payload.Lon}, nil
}
