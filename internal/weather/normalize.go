package weather

// SMHI parameter names used by the forecast normalizer.
const (
	ParamTemperature = "t"
	ParamSymbol      = "Wsymb2"
	ParamCloudOktas  = "tcc_mean"
)

// MaxForecastDays caps the number of day groups produced by GroupByDay.
const MaxForecastDays = 7

// middayIndex is the hourly entry used as a day's representative symbol.
const middayIndex = 12

// placeCategories are the SMHI search categories that denote inhabited places.
var placeCategories = map[string]struct{}{
	"locality":        {},
	"municipality":    {},
	"populated place": {},
}

// NormalizeForecast converts an SMHI point forecast into a WeatherForecast.
// Missing values fall back to defaults; it never fails.
func NormalizeForecast(raw SMHIResponse, locationName string) WeatherForecast {
	loc := Location{Name: locationName}
	if len(raw.Geometry.Coordinates) > 0 {
		pair := raw.Geometry.Coordinates[0]
		if len(pair) > 0 {
			loc.Longitude = pair[0]
		}
		if len(pair) > 1 {
			loc.Latitude = pair[1]
		}
	}

	forecasts := make([]HourlyForecast, 0, len(raw.TimeSeries))
	for _, ts := range raw.TimeSeries {
		forecasts = append(forecasts, normalizeTimeStep(ts))
	}

	return WeatherForecast{
		Location:  loc,
		Forecasts: forecasts,
	}
}

func normalizeTimeStep(ts TimeSeries) HourlyForecast {
	oktas := paramValue(ts.Parameters, ParamCloudOktas, 0)
	return HourlyForecast{
		Time:          ts.ValidTime,
		Temperature:   paramValue(ts.Parameters, ParamTemperature, 0),
		WeatherSymbol: int(paramValue(ts.Parameters, ParamSymbol, 1)),
		CloudCover:    OktasToPercent(oktas),
	}
}

// OktasToPercent converts cloud cover in eighths (0..8) to a truncated percentage.
func OktasToPercent(oktas float64) int {
	return int(oktas / 8 * 100)
}

// paramValue returns the first value of the first parameter named name.
func paramValue(params []Parameter, name string, def float64) float64 {
	for _, p := range params {
		if p.Name != name {
			continue
		}
		if len(p.Values) == 0 {
			return def
		}
		return p.Values[0]
	}
	return def
}

// GroupByDay splits hourly forecasts into at most MaxForecastDays date groups.
// Groups follow first-appearance order of the date prefix; no sorting is applied.
func GroupByDay(hourly []HourlyForecast) []DailyForecast {
	var (
		order  []string
		groups = make(map[string][]HourlyForecast)
	)

	for _, h := range hourly {
		date := datePrefix(h.Time)
		if _, ok := groups[date]; !ok {
			order = append(order, date)
		}
		groups[date] = append(groups[date], h)
	}

	if len(order) > MaxForecastDays {
		order = order[:MaxForecastDays]
	}

	days := make([]DailyForecast, 0, len(order))
	for _, date := range order {
		entries := groups[date]
		rep := entries[0]
		if len(entries) > middayIndex {
			rep = entries[middayIndex]
		}
		days = append(days, DailyForecast{
			Date:            date,
			WeatherSymbol:   rep.WeatherSymbol,
			HourlyForecasts: entries,
		})
	}
	return days
}

func datePrefix(ts string) string {
	if len(ts) < 10 {
		return ts
	}
	return ts[:10]
}

// NormalizePrimary keeps inhabited places from an SMHI search and drops
// repeated names, keeping the first occurrence.
func NormalizePrimary(places []SMHIPlace) []Location {
	seen := make(map[string]struct{}, len(places))
	out := make([]Location, 0, len(places))
	for _, p := range places {
		if _, ok := placeCategories[p.Category]; !ok {
			continue
		}
		if _, dup := seen[p.Name]; dup {
			continue
		}
		seen[p.Name] = struct{}{}
		out = append(out, Location{
			Name:      p.Name,
			Latitude:  p.Lat,
			Longitude: p.Lon,
		})
	}
	return out
}

// NormalizeFallback maps Open-Meteo geocoding hits to locations.
// The region (admin1) is appended to the name when present.
// No filtering or de-duplication is applied.
func NormalizeFallback(results []GeocodingResult) []Location {
	out := make([]Location, 0, len(results))
	for _, r := range results {
		name := r.Name
		if r.Admin1 != nil {
			name = name + ", " + *r.Admin1
		}
		out = append(out, Location{
			Name:      name,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
		})
	}
	return out
}
