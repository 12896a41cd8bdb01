package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"weather-lookup-service/internal/weather"
)

// OpenWeatherClient talks to OpenWeatherMap: current weather and 5-day/3-hour
// forecast by coordinates, plus city search by name. All calls use metric
// units and one configured description language; the language is applied to
// both weather calls so current and forecast descriptions always match.
type OpenWeatherClient struct {
	apiKey  string
	lang    string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker

	weatherURL  string
	forecastURL string
	findURL     string
}

func NewOpenWeatherClient(client *http.Client, apiKey, lang string) *OpenWeatherClient {
	return &OpenWeatherClient{
		apiKey:      apiKey,
		lang:        lang,
		httpCfg:     defaultHTTPConfig(client),
		circuit:     newCircuit("openweather"),
		weatherURL:  "https://api.openweathermap.org/data/2.5/weather",
		forecastURL: "https://api.openweathermap.org/data/2.5/forecast",
		findURL:     "https://api.openweathermap.org/data/2.5/find",
	}
}

func (c *OpenWeatherClient) buildGet(endpoint string, values url.Values) func() (*http.Request, error) {
	return func() (*http.Request, error) {
		values.Set("appid", c.apiKey)
		values.Set("units", "metric")
		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", endpoint, values.Encode()), nil)
	}
}

// CurrentWeather fetches the current conditions at the given coordinates.
func (c *OpenWeatherClient) CurrentWeather(ctx context.Context, coords weather.Coordinates) (weather.WeatherSnapshot, error) {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", coords.Latitude))
	values.Set("lon", fmt.Sprintf("%f", coords.Longitude))
	values.Set("lang", c.lang)

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, c.buildGet(c.weatherURL, values))
	if err != nil {
		return weather.WeatherSnapshot{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Name    string `json:"name"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			TempMin   float64 `json:"temp_min"`
			TempMax   float64 `json:"temp_max"`
			Humidity  float64 `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.WeatherSnapshot{}, err
	}
	if len(payload.Weather) == 0 {
		return weather.WeatherSnapshot{}, fmt.Errorf("current weather response has no conditions")
	}

	return weather.WeatherSnapshot{
		DisplayName: payload.Name,
		Condition:   payload.Weather[0].Main,
		Description: payload.Weather[0].Description,
		Temperature: payload.Main.Temp,
		FeelsLike:   payload.Main.FeelsLike,
		TempMin:     payload.Main.TempMin,
		TempMax:     payload.Main.TempMax,
		Humidity:    payload.Main.Humidity,
		WindSpeed:   payload.Wind.Speed,
	}, nil
}

// Forecast fetches the 5-day forecast in 3-hour steps, provider-ordered.
func (c *OpenWeatherClient) Forecast(ctx context.Context, coords weather.Coordinates) (weather.ForecastSeries, error) {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", coords.Latitude))
	values.Set("lon", fmt.Sprintf("%f", coords.Longitude))
	values.Set("lang", c.lang)

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, c.buildGet(c.forecastURL, values))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				Temp    float64 `json:"temp"`
				TempMin float64 `json:"temp_min"`
				TempMax float64 `json:"temp_max"`
			} `json:"main"`
			Weather []struct {
				Description string `json:"description"`
			} `json:"weather"`
		} `json:"list"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if len(payload.List) == 0 {
		return nil, fmt.Errorf("forecast response contains no entries")
	}

	series := make(weather.ForecastSeries, 0, len(payload.List))
	for _, item := range payload.List {
		point := weather.ForecastPoint{
			Timestamp:   time.Unix(item.Dt, 0).UTC(),
			Temperature: item.Main.Temp,
			TempMin:     item.Main.TempMin,
			TempMax:     item.Main.TempMax,
		}
		if len(item.Weather) > 0 {
			point.Description = item.Weather[0].Description
		}
		series = append(series, point)
	}
	return series, nil
}

// FindCities looks up cities matching the query, capped at limit results.
func (c *OpenWeatherClient) FindCities(ctx context.Context, query string, limit int) ([]weather.CityCandidate, error) {
	values := url.Values{}
	values.Set("q", query)
	values.Set("cnt", fmt.Sprintf("%d", limit))

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, c.buildGet(c.findURL, values))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		List []struct {
			ID    int64  `json:"id"`
			Name  string `json:"name"`
			Coord struct {
				Lat float64 `json:"lat"`
				Lon float64 `json:"lon"`
			} `json:"coord"`
			Sys struct {
				Country string `json:"country"`
			} `json:"sys"`
		} `json:"list"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	candidates := make([]weather.CityCandidate, 0, len(payload.List))
	for _, item := range payload.List {
		candidates = append(candidates, weather.CityCandidate{
			ID:          item.ID,
			Name:        item.Name,
			CountryCode: item.Sys.Country,
			Coordinates: weather.Coordinates{
				Latitude:  item.Coord.Lat,
				Longitude: item.Coord.Lon,
			},
		})
	}
	return candidates, nil
}
