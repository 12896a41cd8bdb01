package weather

import (
	"strings"
)

// defaultIcon is shown for any description without a dedicated glyph.
const defaultIcon = "🌡️"

var iconTable = map[string]string{
	"clear sky":        "☀️",
	"few clouds":       "⛅",
	"scattered clouds": "☁️",
	"broken clouds":    "☁️",
	"shower rain":      "🌧️",
	"rain":             "🌧️",
	"thunderstorm":     "⛈️",
	"snow":             "❄️",
	"mist":             "🌫️",
}

// backgroundClasses lists the condition groups the UI has styling for.
var backgroundClasses = map[string]struct{}{
	"clear":        {},
	"clouds":       {},
	"rain":         {},
	"drizzle":      {},
	"thunderstorm": {},
	"snow":         {},
	"mist":         {},
}

// IconFor maps a weather description to a display glyph. The lookup is
// case-insensitive; unknown descriptions get a generic glyph.
func IconFor(description string) string {
	if icon, ok := iconTable[strings.ToLower(description)]; ok {
		return icon
	}
	return defaultIcon
}

// BackgroundClassFor returns the styling key for a snapshot's primary
// condition, or "" when no dedicated style exists.
func BackgroundClassFor(snapshot WeatherSnapshot) string {
	key := strings.ToLower(snapshot.Condition)
	if _, ok := backgroundClasses[key]; ok {
		return key
	}
	return ""
}

// ChartSeries holds the label/value pairs for the temperature chart.
type ChartSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// chartStride picks one forecast point per day given 3-hour granularity.
const chartStride = 8

// ChartSeriesFor samples the forecast for charting: every eighth point in
// chronological order, labelled with a human-readable timestamp. An empty
// forecast yields an empty series.
func ChartSeriesFor(series ForecastSeries) ChartSeries {
	chart := ChartSeries{
		Labels: make([]string, 0, (len(series)+chartStride-1)/chartStride),
		Values: make([]float64, 0, (len(series)+chartStride-1)/chartStride),
	}
	for i := 0; i < len(series); i += chartStride {
		chart.Labels = append(chart.Labels, series[i].Timestamp.Format("Jan 2 15:04"))
		chart.Values = append(chart.Values, series[i].Temperature)
	}
	return chart
}
