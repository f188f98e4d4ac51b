package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// Fixed keys of the two persisted records.
const (
	KeyLastForecast = "last_forecast"
	KeyFavorites    = "favorites"
)

// ErrCorruptRecord marks a persisted record that could not be decoded.
// Readers treat it as absence; it is only ever logged.
var ErrCorruptRecord = errors.New("corrupt cached record")

// ForecastCache persists the most recent forecast and the favorites list.
// Every mutation rewrites the whole record.
type ForecastCache struct {
	kv KV
}

// NewForecastCache creates a cache on top of kv.
func NewForecastCache(kv KV) *ForecastCache {
	return &ForecastCache{kv: kv}
}

// SaveLastForecast overwrites the stored forecast. No history is kept.
func (c *ForecastCache) SaveLastForecast(ctx context.Context, forecast weather.WeatherForecast) error {
	payload, err := json.Marshal(forecast)
	if err != nil {
		return fmt.Errorf("encode forecast: %w", err)
	}
	if err := c.kv.Set(ctx, KeyLastForecast, payload); err != nil {
		return fmt.Errorf("save forecast: %w", err)
	}
	return nil
}

// GetLastForecast returns the stored forecast. Missing, unreadable and
// malformed records all report ok=false.
func (c *ForecastCache) GetLastForecast(ctx context.Context) (weather.WeatherForecast, bool) {
	var forecast weather.WeatherForecast
	if err := c.load(ctx, KeyLastForecast, &forecast); err != nil {
		if !errors.Is(err, errMissing) {
			log.Printf("INFO: cache: last forecast unavailable: %v", err)
		}
		return weather.WeatherForecast{}, false
	}
	return forecast, true
}

// Favorites returns the stored favorites in insertion order.
func (c *ForecastCache) Favorites(ctx context.Context) []weather.FavoriteLocation {
	var favorites []weather.FavoriteLocation
	if err := c.load(ctx, KeyFavorites, &favorites); err != nil {
		if !errors.Is(err, errMissing) {
			log.Printf("INFO: cache: favorites unavailable: %v", err)
		}
		return []weather.FavoriteLocation{}
	}
	if favorites == nil {
		favorites = []weather.FavoriteLocation{}
	}
	return favorites
}

// AddFavorite appends location unless a favorite with the same name exists.
// Duplicates are ignored silently; coordinates of the existing entry are kept.
func (c *ForecastCache) AddFavorite(ctx context.Context, location weather.FavoriteLocation) error {
	current, err := c.storedFavorites(ctx)
	if err != nil {
		return err
	}
	for _, f := range current {
		if f.Name == location.Name {
			return nil
		}
	}
	return c.saveFavorites(ctx, append(current, location))
}

// RemoveFavorite drops every favorite named name.
func (c *ForecastCache) RemoveFavorite(ctx context.Context, name string) error {
	current, err := c.storedFavorites(ctx)
	if err != nil {
		return err
	}
	kept := current[:0]
	for _, f := range current {
		if f.Name != name {
			kept = append(kept, f)
		}
	}
	return c.saveFavorites(ctx, kept)
}

// storedFavorites is the read side of a favorites mutation. A missing or
// corrupt record starts an empty list; backend failures abort the mutation so
// the stored list is never overwritten from a failed read.
func (c *ForecastCache) storedFavorites(ctx context.Context) ([]weather.FavoriteLocation, error) {
	var favorites []weather.FavoriteLocation
	err := c.load(ctx, KeyFavorites, &favorites)
	switch {
	case err == nil:
	case errors.Is(err, errMissing):
		return []weather.FavoriteLocation{}, nil
	case errors.Is(err, ErrCorruptRecord):
		log.Printf("INFO: cache: replacing corrupt favorites: %v", err)
		return []weather.FavoriteLocation{}, nil
	default:
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	if favorites == nil {
		favorites = []weather.FavoriteLocation{}
	}
	return favorites, nil
}

func (c *ForecastCache) saveFavorites(ctx context.Context, favorites []weather.FavoriteLocation) error {
	payload, err := json.Marshal(favorites)
	if err != nil {
		return fmt.Errorf("encode favorites: %w", err)
	}
	if err := c.kv.Set(ctx, KeyFavorites, payload); err != nil {
		return fmt.Errorf("save favorites: %w", err)
	}
	return nil
}

var errMissing = errors.New("missing record")

func (c *ForecastCache) load(ctx context.Context, key string, out any) error {
	payload, ok, err := c.kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if !ok || bytes.Equal(bytes.TrimSpace(payload), []byte("null")) {
		return errMissing
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptRecord, key, err)
	}
	return nil
}
