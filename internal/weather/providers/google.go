package providers

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// geocoderMu guards the package-level API key of the geocoder library and
// allows at most one call in flight.
var geocoderMu sync.Mutex

var (
	errGeocoderNoKey = errors.New("google geocoder api key is not configured")
	errGeocoderBusy  = errors.New("google geocoder call already in flight")
)

// GoogleGeocodingProvider implements weather.LocationProvider using the Google
// Geocoding API. It resolves a query to a single best match.
//
// The geocoder library takes no context and no client. A call abandoned by a
// cancelled ctx keeps running until the library returns; while it does, further
// searches skip this tier instead of queueing behind it.
type GoogleGeocodingProvider struct {
	name    string
	apiKey  string
	geocode func(apiKey string, address geocoder.Address) (geocoder.Location, error)
}

func NewGoogleGeocodingProvider(apiKey string) *GoogleGeocodingProvider {
	return &GoogleGeocodingProvider{
		name:    "google",
		apiKey:  apiKey,
		geocode: libraryGeocode,
	}
}

func libraryGeocode(apiKey string, address geocoder.Address) (geocoder.Location, error) {
	geocoder.ApiKey = apiKey
	return geocoder.Geocoding(address)
}

func (p *GoogleGeocodingProvider) Name() string {
	return p.name
}

func (p *GoogleGeocodingProvider) Search(ctx context.Context, query string) ([]weather.Location, error) {
	if p.apiKey == "" {
		return nil, errGeocoderNoKey
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	if !geocoderMu.TryLock() {
		return nil, &weather.TransportError{Provider: p.name, Err: errGeocoderBusy}
	}

	type result struct {
		loc geocoder.Location
		err error
	}
	done := make(chan result, 1)

	go func() {
		defer geocoderMu.Unlock()
		loc, err := p.geocode(p.apiKey, geocoder.Address{City: query})
		done <- result{loc: loc, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, &weather.TransportError{Provider: p.name, Err: ctx.Err()}
	case r := <-done:
		if r.err != nil {
			return nil, &weather.TransportError{Provider: p.name, Err: r.err}
		}
		return []weather.Location{{
			Name:      query,
			Latitude:  r.loc.Latitude,
			Longitude: r.loc.Longitude,
		}}, nil
	}
}
