package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// MsgOfflineNoCache is the Error message when there is neither network nor cache.
const MsgOfflineNoCache = "no connectivity and no cached data"

// ErrNothingToRefresh is returned by Refresh before any forecast was requested.
var ErrNothingToRefresh = errors.New("no forecast requested yet")

// Gateway is what the controller needs from the weather gateway.
type Gateway interface {
	FetchForecast(ctx context.Context, lat, lon float64, name string) (weather.WeatherForecast, error)
	SearchLocations(ctx context.Context, query string) ([]weather.Location, error)
}

// Cache is what the controller needs from the forecast cache.
type Cache interface {
	SaveLastForecast(ctx context.Context, forecast weather.WeatherForecast) error
	GetLastForecast(ctx context.Context) (weather.WeatherForecast, bool)
	Favorites(ctx context.Context) []weather.FavoriteLocation
	AddFavorite(ctx context.Context, location weather.FavoriteLocation) error
	RemoveFavorite(ctx context.Context, name string) error
}

type forecastRequest struct {
	lat, lon float64
	name     string
}

// Controller owns the UI state and drives the gateway and cache from user intents.
//
// The state is a single register. Each forecast and search request takes a
// sequence number; a completion that is no longer the latest request is
// dropped instead of overwriting a newer result.
type Controller struct {
	gateway Gateway
	cache   Cache
	network Connectivity

	mu            sync.RWMutex
	state         State
	searchResults []weather.Location
	favorites     []weather.FavoriteLocation
	forecastSeq   uint64
	searchSeq     uint64
	last          *forecastRequest
}

// New constructs a Controller in the Initial state and loads the favorites.
func New(ctx context.Context, gateway Gateway, cache Cache, network Connectivity) *Controller {
	if network == nil {
		network = StaticConnectivity(true)
	}
	c := &Controller{
		gateway:       gateway,
		cache:         cache,
		network:       network,
		state:         Initial{},
		searchResults: []weather.Location{},
	}
	c.loadFavorites(ctx)
	return c
}

// State returns the current UI state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// SearchResults returns the latest location search results.
func (c *Controller) SearchResults() []weather.Location {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneLocations(c.searchResults)
}

// Favorites returns the favorites as last loaded from the cache.
func (c *Controller) Favorites() []weather.FavoriteLocation {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]weather.FavoriteLocation, len(c.favorites))
	copy(out, c.favorites)
	return out
}

// RequestForecast publishes Loading, then Success or Error for the coordinate.
// Without connectivity the cached forecast is served as offline data and the
// network is not touched. The returned state is the one now published.
func (c *Controller) RequestForecast(ctx context.Context, lat, lon float64, name string) State {
	req := &forecastRequest{lat: lat, lon: lon, name: name}
	return c.fetch(ctx, c.beginForecast(req), req)
}

// Refresh repeats the most recent forecast request. A refresh that races a
// newer request is skipped; it never replaces the remembered request.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.RLock()
	last := c.last
	c.mu.RUnlock()

	if last == nil {
		return ErrNothingToRefresh
	}

	seq, ok := c.beginRefresh(last)
	if !ok {
		log.Printf("DEBUG: controller: refresh of %q superseded by a newer request", last.name)
		return nil
	}

	st := c.fetch(ctx, seq, last)
	if e, ok := st.(Error); ok {
		return fmt.Errorf("refresh %q: %s", last.name, e.Message)
	}
	return nil
}

func (c *Controller) fetch(ctx context.Context, seq uint64, req *forecastRequest) State {
	reqID := uuid.NewString()
	lat, lon, name := req.lat, req.lon, req.name

	if !c.network.Online(ctx) {
		log.Printf("INFO: controller[%s]: offline, serving cached forecast", reqID)
		cached, ok := c.cache.GetLastForecast(ctx)
		if !ok {
			return c.publish(seq, Error{Message: MsgOfflineNoCache})
		}
		return c.publish(seq, Success{
			Forecast:       cached,
			DailyForecasts: weather.GroupByDay(cached.Forecasts),
			IsOffline:      true,
		})
	}

	forecast, err := c.gateway.FetchForecast(ctx, lat, lon, name)
	if err != nil {
		log.Printf("ERROR: controller[%s]: forecast for %q failed: %v", reqID, name, err)
		return c.publish(seq, Error{Message: errorMessage(err)})
	}

	if err := c.cache.SaveLastForecast(ctx, forecast); err != nil {
		log.Printf("ERROR: controller[%s]: caching forecast for %q failed: %v", reqID, name, err)
	}

	return c.publish(seq, Success{
		Forecast:       forecast,
		DailyForecasts: weather.GroupByDay(forecast.Forecasts),
		IsOffline:      false,
	})
}

// RequestSearch updates the search results for query. Failures clear the
// results instead of surfacing an Error state.
func (c *Controller) RequestSearch(ctx context.Context, query string) []weather.Location {
	c.mu.Lock()
	c.searchSeq++
	seq := c.searchSeq
	c.mu.Unlock()

	query = strings.TrimSpace(query)
	if query == "" {
		return c.publishSearch(seq, nil)
	}

	locs, err := c.gateway.SearchLocations(ctx, query)
	if err != nil {
		log.Printf("INFO: controller: search for %q failed: %v", query, err)
		return c.publishSearch(seq, nil)
	}
	return c.publishSearch(seq, locs)
}

// ClearSearchResults empties the search results.
func (c *Controller) ClearSearchResults() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchSeq++
	c.searchResults = []weather.Location{}
}

// AddFavorite pins location and reloads the favorites.
func (c *Controller) AddFavorite(ctx context.Context, location weather.Location) error {
	err := c.cache.AddFavorite(ctx, weather.FavoriteLocation(location))
	c.loadFavorites(ctx)
	return err
}

// RemoveFavorite unpins every favorite named name and reloads the favorites.
func (c *Controller) RemoveFavorite(ctx context.Context, name string) error {
	err := c.cache.RemoveFavorite(ctx, name)
	c.loadFavorites(ctx)
	return err
}

// IsFavorite reports whether a favorite named name is loaded.
func (c *Controller) IsFavorite(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, f := range c.favorites {
		if f.Name == name {
			return true
		}
	}
	return false
}

func (c *Controller) loadFavorites(ctx context.Context) {
	favorites := c.cache.Favorites(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.favorites = favorites
}

func (c *Controller) beginForecast(req *forecastRequest) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.forecastSeq++
	c.last = req
	c.state = Loading{}
	return c.forecastSeq
}

// beginRefresh takes a sequence number for last unless a newer request has
// replaced it in the meantime.
func (c *Controller) beginRefresh(last *forecastRequest) (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.last != last {
		return 0, false
	}
	c.forecastSeq++
	c.state = Loading{}
	return c.forecastSeq, true
}

func (c *Controller) publish(seq uint64, st State) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.forecastSeq {
		log.Printf("DEBUG: controller: dropping stale %s result (request %d, latest %d)", st.Kind(), seq, c.forecastSeq)
		return c.state
	}
	c.state = st
	return st
}

func (c *Controller) publishSearch(seq uint64, locs []weather.Location) []weather.Location {
	if locs == nil {
		locs = []weather.Location{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.searchSeq {
		return cloneLocations(c.searchResults)
	}
	c.searchResults = locs
	return cloneLocations(locs)
}

func errorMessage(err error) string {
	if status := weather.StatusOf(err); status != 0 {
		return fmt.Sprintf("API error: %d", status)
	}
	msg := err.Error()
	if msg == "" {
		return "unknown error"
	}
	return msg
}

func cloneLocations(locs []weather.Location) []weather.Location {
	out := make([]weather.Location, len(locs))
	copy(out, locs)
	return out
}
