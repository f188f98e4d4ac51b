package providers

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// RateLimitedForecastSource wraps a weather.ForecastSource with a token bucket.
type RateLimitedForecastSource struct {
	source  weather.ForecastSource
	limiter *rate.Limiter
}

// NewRateLimitedForecastSource allows rps requests per second (fractional is
// fine) with the given burst.
func NewRateLimitedForecastSource(source weather.ForecastSource, rps float64, burst int) *RateLimitedForecastSource {
	return &RateLimitedForecastSource{
		source:  source,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *RateLimitedForecastSource) Name() string {
	return r.source.Name()
}

func (r *RateLimitedForecastSource) FetchForecast(ctx context.Context, lat, lon float64) (weather.SMHIResponse, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return weather.SMHIResponse{}, &weather.TransportError{
			Provider: r.source.Name(),
			Err:      fmt.Errorf("rate limit wait canceled: %w", err),
		}
	}
	return r.source.FetchForecast(ctx, lat, lon)
}

// RateLimitedLocationProvider wraps a weather.LocationProvider with a token bucket.
type RateLimitedLocationProvider struct {
	provider weather.LocationProvider
	limiter  *rate.Limiter
}

func NewRateLimitedLocationProvider(provider weather.LocationProvider, rps float64, burst int) *RateLimitedLocationProvider {
	return &RateLimitedLocationProvider{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *RateLimitedLocationProvider) Name() string {
	return r.provider.Name()
}

func (r *RateLimitedLocationProvider) Search(ctx context.Context, query string) ([]weather.Location, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, &weather.TransportError{
			Provider: r.provider.Name(),
			Err:      fmt.Errorf("rate limit wait canceled: %w", err),
		}
	}
	return r.provider.Search(ctx, query)
}
