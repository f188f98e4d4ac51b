package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// DefaultGeocodingURL is the Open-Meteo geocoding host.
const DefaultGeocodingURL = "https://geocoding-api.open-meteo.com"

const (
	geocodingCount    = 10
	geocodingLanguage = "sv"
)

// OpenMeteoGeocodingProvider implements weather.LocationProvider for Open-Meteo geocoding.
type OpenMeteoGeocodingProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoGeocodingProvider(client *http.Client, baseURL string, backoff BackoffConfig) *OpenMeteoGeocodingProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultGeocodingURL
	}

	return &OpenMeteoGeocodingProvider{
		name:    "openmeteo",
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: backoff,
		},
		circuit: newCircuitBreaker("openmeteo-geocoding"),
	}
}

func (p *OpenMeteoGeocodingProvider) Name() string {
	return p.name
}

// Search queries the geocoder. A missing or null results list is an error;
// an empty list is a valid, empty answer.
func (p *OpenMeteoGeocodingProvider) Search(ctx context.Context, query string) ([]weather.Location, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("name", query)
		values.Set("count", strconv.Itoa(geocodingCount))
		values.Set("language", geocodingLanguage)
		values.Set("format", "json")

		u := fmt.Sprintf("%s/v1/search?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.name, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}

	var payload weather.GeocodingResponse
	if err := decodeBody(p.name, resp, &payload); err != nil {
		return nil, err
	}
	if payload.Results == nil {
		return nil, fmt.Errorf("%s: results missing: %w", p.name, weather.ErrEmptyBody)
	}

	return weather.NormalizeFallback(payload.Results), nil
}
