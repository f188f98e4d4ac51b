package httpapi

import (
	"github.com/i474232898/weather-lookup/internal/app"
	"github.com/i474232898/weather-lookup/internal/weather"
)

// stateView is the JSON rendering of a controller state.
type stateView struct {
	State    string            `json:"state"`
	Offline  bool              `json:"offline,omitempty"`
	Message  string            `json:"message,omitempty"`
	Location *weather.Location `json:"location,omitempty"`
	Days     []dayView         `json:"days,omitempty"`
}

type dayView struct {
	weather.DaySummary
	Hourly []hourView `json:"hourly"`
}

type hourView struct {
	weather.HourlyForecast
	Symbol weather.SymbolInfo `json:"symbol"`
}

func renderState(st app.State) stateView {
	switch s := st.(type) {
	case app.Initial, app.Loading:
		return stateView{State: s.Kind()}
	case app.Success:
		loc := s.Forecast.Location
		return stateView{
			State:    s.Kind(),
			Offline:  s.IsOffline,
			Location: &loc,
			Days:     renderDays(s.DailyForecasts),
		}
	case app.Error:
		return stateView{State: s.Kind(), Message: s.Message}
	default:
		panic("httpapi: unhandled state type")
	}
}

func renderDays(days []weather.DailyForecast) []dayView {
	out := make([]dayView, 0, len(days))
	for _, d := range days {
		hours := make([]hourView, 0, len(d.HourlyForecasts))
		for _, h := range d.HourlyForecasts {
			hours = append(hours, hourView{
				HourlyForecast: h,
				Symbol:         weather.DescribeSymbol(h.WeatherSymbol),
			})
		}
		out = append(out, dayView{
			DaySummary: weather.SummarizeDay(d),
			Hourly:     hours,
		})
	}
	return out
}
