package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/i474232898/weather-lookup/internal/app"
	"github.com/i474232898/weather-lookup/internal/config"
	"github.com/i474232898/weather-lookup/internal/store"
	"github.com/i474232898/weather-lookup/internal/weather"
	"github.com/i474232898/weather-lookup/internal/weather/providers"
)

// provideKV opens the configured backend, falling back to memory when it is unusable.
func provideKV(cfg *config.AppConfig) store.KV {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		kv, err := store.NewSQLiteKV(cfg.SQLitePath)
		if err != nil {
			log.Printf("ERROR: sqlite store at %s unavailable, falling back to memory: %v", cfg.SQLitePath, err)
			return store.NewMemoryKV()
		}
		log.Printf("INFO: sqlite store enabled at %s", cfg.SQLitePath)
		return kv
	case config.DriverValkey:
		opt, err := buildValkeyOptions(cfg.ValkeyAddr)
		if err != nil {
			log.Printf("ERROR: invalid valkey configuration, falling back to memory: %v", err)
			return store.NewMemoryKV()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			log.Printf("ERROR: failed to create valkey client, falling back to memory: %v", err)
			return store.NewMemoryKV()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			log.Printf("ERROR: valkey ping failed, falling back to memory: %v", err)
			client.Close()
			return store.NewMemoryKV()
		}
		log.Printf("INFO: valkey store enabled at %s", cfg.ValkeyAddr)
		return store.NewValkeyKV(client, "weather")
	default:
		return store.NewMemoryKV()
	}
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideForecastSource(cfg *config.AppConfig, client *http.Client) weather.ForecastSource {
	var source weather.ForecastSource = providers.NewSMHIForecastProvider(client, cfg.SMHIForecastURL, providers.DefaultBackoff(cfg.ProviderMaxRetries))
	if cfg.ProviderRPS > 0 {
		source = providers.NewRateLimitedForecastSource(source, cfg.ProviderRPS, cfg.ProviderBurst)
	}
	return source
}

// provideLocationProviders returns the search waterfall: SMHI first, the
// optional Google geocoder next and Open-Meteo last.
func provideLocationProviders(cfg *config.AppConfig, client *http.Client) []weather.LocationProvider {
	backoff := providers.DefaultBackoff(cfg.ProviderMaxRetries)

	locators := []weather.LocationProvider{
		providers.NewSMHIPlaceProvider(client, cfg.SMHISearchURL, backoff),
	}
	if cfg.GeocoderAPIKey != "" {
		locators = append(locators, providers.NewGoogleGeocodingProvider(cfg.GeocoderAPIKey))
	}
	locators = append(locators, providers.NewOpenMeteoGeocodingProvider(client, cfg.GeocodingURL, backoff))

	if cfg.ProviderRPS > 0 {
		for i, l := range locators {
			locators[i] = providers.NewRateLimitedLocationProvider(l, cfg.ProviderRPS, cfg.ProviderBurst)
		}
	}
	return locators
}

func provideConnectivity(cfg *config.AppConfig) app.Connectivity {
	if cfg.ForceOffline {
		log.Printf("INFO: FORCE_OFFLINE set; forecasts are served from cache only")
		return app.StaticConnectivity(false)
	}
	return app.NewDialProbe(cfg.ConnectivityProbe, 2*time.Second)
}
