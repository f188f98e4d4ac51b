package app

import (
	"github.com/i474232898/weather-lookup/internal/weather"
)

// State is the UI state published by the Controller. The concrete variants
// are Initial, Loading, Success and Error; no other type implements it.
type State interface {
	Kind() string
	isState()
}

// Initial is the state before any forecast was requested.
type Initial struct{}

// Loading is published as soon as a forecast request starts.
type Loading struct{}

// Success carries a forecast and its day groups. IsOffline marks a forecast
// served from the cache because the device had no connectivity.
type Success struct {
	Forecast       weather.WeatherForecast
	DailyForecasts []weather.DailyForecast
	IsOffline      bool
}

// Error carries a human readable failure message.
type Error struct {
	Message string
}

func (Initial) Kind() string { return "initial" }
func (Loading) Kind() string { return "loading" }
func (Success) Kind() string { return "success" }
func (Error) Kind() string   { return "error" }

func (Initial) isState() {}
func (Loading) isState() {}
func (Success) isState() {}
func (Error) isState()   {}
