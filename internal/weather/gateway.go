package weather

import (
	"context"
	"fmt"
	"log"
)

// Gateway orchestrates the forecast endpoint and the ordered location providers.
type Gateway struct {
	forecasts ForecastSource
	locators  []LocationProvider
}

// NewGateway creates a new Gateway. Location providers are tried in the given order.
func NewGateway(forecasts ForecastSource, locators ...LocationProvider) *Gateway {
	return &Gateway{
		forecasts: forecasts,
		locators:  locators,
	}
}

// FetchForecast fetches the forecast for a coordinate and normalizes it under name.
func (g *Gateway) FetchForecast(ctx context.Context, lat, lon float64, name string) (WeatherForecast, error) {
	if g.forecasts == nil {
		return WeatherForecast{}, ErrNoProviders
	}

	raw, err := g.forecasts.FetchForecast(ctx, lat, lon)
	if err != nil {
		log.Printf("ERROR: gateway: forecast from %s failed for %q (%f,%f): %v", g.forecasts.Name(), name, lat, lon, err)
		return WeatherForecast{}, fmt.Errorf("fetch forecast: %w", err)
	}

	forecast := NormalizeForecast(raw, name)
	log.Printf("DEBUG: gateway: %d time steps for %q from %s", len(forecast.Forecasts), name, g.forecasts.Name())
	return forecast, nil
}

// SearchLocations runs a waterfall over the location providers.
//
// Every provider but the last must return at least one location to win; its
// failures are logged and skipped. The last provider wins with any successful
// answer, even an empty one. Results are never merged across providers.
func (g *Gateway) SearchLocations(ctx context.Context, query string) ([]Location, error) {
	if len(g.locators) == 0 {
		return nil, ErrNoProviders
	}

	last := len(g.locators) - 1
	for i, p := range g.locators {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		locs, err := p.Search(ctx, query)
		if err != nil {
			log.Printf("INFO: gateway: location provider %s failed for %q, trying next: %v", p.Name(), query, err)
			continue
		}
		if len(locs) == 0 && i != last {
			log.Printf("DEBUG: gateway: location provider %s had no results for %q, trying next", p.Name(), query)
			continue
		}

		log.Printf("DEBUG: gateway: %s found %d locations for %q", p.Name(), len(locs), query)
		return locs, nil
	}

	log.Printf("ERROR: gateway: all %d location providers failed for %q", len(g.locators), query)
	return nil, ErrNoResults
}
