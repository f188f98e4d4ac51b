package weather

import (
	"context"
)

// ForecastSource abstracts the point forecast endpoint (SMHI pmp3g).
type ForecastSource interface {
	Name() string
	FetchForecast(ctx context.Context, lat, lon float64) (SMHIResponse, error)
}

// LocationProvider abstracts a place search backend (SMHI search, Open-Meteo, Google).
// Implementations return already normalized locations. A nil error with an
// empty slice means the provider answered but had nothing usable.
type LocationProvider interface {
	Name() string
	Search(ctx context.Context, query string) ([]Location, error)
}
