package providers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-lookup/internal/common"
	"github.com/i474232898/weather-lookup/internal/weather"
)

// DefaultSMHIForecastURL is the SMHI open data meteorological forecast host.
const DefaultSMHIForecastURL = "https://opendata-download-metfcst.smhi.se"

// SMHIForecastProvider implements weather.ForecastSource for the SMHI pmp3g point forecast.
type SMHIForecastProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewSMHIForecastProvider(client *http.Client, baseURL string, backoff BackoffConfig) *SMHIForecastProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultSMHIForecastURL
	}

	return &SMHIForecastProvider{
		name:    "smhi",
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: backoff,
		},
		circuit: newCircuitBreaker("smhi-forecast"),
	}
}

func (p *SMHIForecastProvider) Name() string {
	return p.name
}

// FetchForecast requests the point forecast. The SMHI path puts longitude before latitude.
func (p *SMHIForecastProvider) FetchForecast(ctx context.Context, lat, lon float64) (weather.SMHIResponse, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		u := fmt.Sprintf("%s/api/category/pmp3g/version/2/geotype/point/lon/%s/lat/%s/data.json",
			p.baseURL, common.FormatCoord(lon), common.FormatCoord(lat))
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.name, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.SMHIResponse{}, err
	}

	var payload weather.SMHIResponse
	if err := decodeBody(p.name, resp, &payload); err != nil {
		return weather.SMHIResponse{}, err
	}
	return payload, nil
}
