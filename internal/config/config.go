package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/weather-lookup/internal/common"
)

// Storage drivers accepted in STORE_DRIVER.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverValkey = "valkey"
)

type AppConfig struct {
	Port string `validate:"required,numeric"`

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration `validate:"gt=0"`

	// Upstream base URLs; empty means the provider default.
	SMHIForecastURL string `validate:"omitempty,url"`
	SMHISearchURL   string `validate:"omitempty,url"`
	GeocodingURL    string `validate:"omitempty,url"`

	// GeocoderAPIKey enables the Google geocoding tier between SMHI and Open-Meteo.
	GeocoderAPIKey string

	// ProviderMaxRetries is the number of retries after the first attempt (0 = single attempt).
	ProviderMaxRetries int `validate:"gte=0,lte=5"`

	// ProviderRPS throttles each upstream provider (0 = unlimited).
	ProviderRPS   float64 `validate:"gte=0"`
	ProviderBurst int     `validate:"gte=1"`

	// Persistence of the last forecast and favorites.
	StoreDriver string `validate:"oneof=memory sqlite valkey"`
	SQLitePath  string `validate:"required_if=StoreDriver sqlite"`
	ValkeyAddr  string `validate:"required_if=StoreDriver valkey"`

	// RefreshInterval controls how often the current forecast is re-fetched (0 = never).
	RefreshInterval time.Duration `validate:"gte=0"`

	// Connectivity probing; ForceOffline short-circuits every fetch to the cache.
	ConnectivityProbe string
	ForceOffline      bool
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")

	timeout, err := getenvDuration("HTTP_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	cfg.SMHIForecastURL = os.Getenv("SMHI_FORECAST_URL")
	cfg.SMHISearchURL = os.Getenv("SMHI_SEARCH_URL")
	cfg.GeocodingURL = os.Getenv("GEOCODING_URL")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")
	cfg.ProviderMaxRetries = getenvInt("PROVIDER_MAX_RETRIES", 0)
	cfg.ProviderRPS = getenvFloat("PROVIDER_RPS", 0)
	cfg.ProviderBurst = getenvInt("PROVIDER_BURST", 1)

	cfg.StoreDriver = strings.ToLower(getenvDefault("STORE_DRIVER", DriverSQLite))
	cfg.SQLitePath = getenvDefault("SQLITE_PATH", "weather.db")
	cfg.ValkeyAddr = os.Getenv("VALKEY_ADDR")

	refresh, err := getenvDuration("REFRESH_INTERVAL", "15m")
	if err != nil {
		return nil, err
	}
	cfg.RefreshInterval = refresh

	cfg.ConnectivityProbe = os.Getenv("CONNECTIVITY_PROBE")
	cfg.ForceOffline = common.IsTruthy(os.Getenv("FORCE_OFFLINE"))

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
