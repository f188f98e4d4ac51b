package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// DefaultSMHISearchURL is the host of the SMHI place autocomplete.
const DefaultSMHISearchURL = "https://www.smhi.se"

// SMHIPlaceProvider implements weather.LocationProvider on the SMHI autocomplete search.
type SMHIPlaceProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewSMHIPlaceProvider(client *http.Client, baseURL string, backoff BackoffConfig) *SMHIPlaceProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultSMHISearchURL
	}

	return &SMHIPlaceProvider{
		name:    "smhi-search",
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: backoff,
		},
		circuit: newCircuitBreaker("smhi-search"),
	}
}

func (p *SMHIPlaceProvider) Name() string {
	return p.name
}

// Search returns inhabited places matching query, de-duplicated by name.
func (p *SMHIPlaceProvider) Search(ctx context.Context, query string) ([]weather.Location, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		u := fmt.Sprintf("%s/wpta/backend_solr/autocomplete/search/%s", p.baseURL, url.PathEscape(query))
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.name, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}

	var places []weather.SMHIPlace
	if err := decodeBody(p.name, resp, &places); err != nil {
		return nil, err
	}

	return weather.NormalizePrimary(places), nil
}
