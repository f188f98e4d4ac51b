package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-lookup/internal/store"
	"github.com/i474232898/weather-lookup/internal/weather"
)

type fakeGateway struct {
	mu            sync.Mutex
	forecast      weather.WeatherForecast
	forecastErr   error
	locations     []weather.Location
	searchErr     error
	forecastCalls int
	searchCalls   int

	// block, when set, is waited on by FetchForecast for the given name.
	block map[string]chan struct{}
}

func (f *fakeGateway) FetchForecast(ctx context.Context, lat, lon float64, name string) (weather.WeatherForecast, error) {
	f.mu.Lock()
	f.forecastCalls++
	ch := f.block[name]
	f.mu.Unlock()

	if ch != nil {
		<-ch
	}
	if f.forecastErr != nil {
		return weather.WeatherForecast{}, f.forecastErr
	}
	fc := f.forecast
	fc.Location = weather.Location{Name: name, Latitude: lat, Longitude: lon}
	return fc, nil
}

func (f *fakeGateway) SearchLocations(context.Context, string) ([]weather.Location, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls++
	return f.locations, f.searchErr
}

func hourly(n int) []weather.HourlyForecast {
	out := make([]weather.HourlyForecast, n)
	for i := range out {
		out[i] = weather.HourlyForecast{Time: "2024-05-01T00:00:00Z", Temperature: float64(i), WeatherSymbol: 1}
	}
	return out
}

func newCache() *store.ForecastCache {
	return store.NewForecastCache(store.NewMemoryKV())
}

func TestInitialState(t *testing.T) {
	c := New(context.Background(), &fakeGateway{}, newCache(), StaticConnectivity(true))

	require.Equal(t, Initial{}, c.State())
	require.Empty(t, c.SearchResults())
	require.Empty(t, c.Favorites())
}

func TestRequestForecastOnlineCachesResult(t *testing.T) {
	ctx := context.Background()
	cache := newCache()
	gw := &fakeGateway{forecast: weather.WeatherForecast{Forecasts: hourly(3)}}
	c := New(ctx, gw, cache, StaticConnectivity(true))

	st := c.RequestForecast(ctx, 55.7, 13.19, "Lund")

	success, ok := st.(Success)
	require.True(t, ok, "got %T", st)
	require.False(t, success.IsOffline)
	require.Equal(t, "Lund", success.Forecast.Location.Name)
	require.Len(t, success.DailyForecasts, 1)
	require.Equal(t, st, c.State())

	cached, ok := cache.GetLastForecast(ctx)
	require.True(t, ok)
	require.Equal(t, success.Forecast, cached)
}

func TestRequestForecastOfflineServesCache(t *testing.T) {
	ctx := context.Background()
	cache := newCache()
	require.NoError(t, cache.SaveLastForecast(ctx, weather.WeatherForecast{
		Location:  weather.Location{Name: "Lund", Latitude: 55.7, Longitude: 13.19},
		Forecasts: hourly(2),
	}))
	gw := &fakeGateway{}
	c := New(ctx, gw, cache, StaticConnectivity(false))

	st := c.RequestForecast(ctx, 59.33, 18.07, "Stockholm")

	success, ok := st.(Success)
	require.True(t, ok, "got %T", st)
	require.True(t, success.IsOffline)
	require.Equal(t, "Lund", success.Forecast.Location.Name)
	require.Zero(t, gw.forecastCalls)
}

func TestRequestForecastOfflineWithoutCache(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{}
	c := New(ctx, gw, newCache(), StaticConnectivity(false))

	st := c.RequestForecast(ctx, 55.7, 13.19, "Lund")

	require.Equal(t, Error{Message: MsgOfflineNoCache}, st)
	require.Zero(t, gw.forecastCalls)
}

func TestRequestForecastFailure(t *testing.T) {
	ctx := context.Background()
	cache := newCache()
	gw := &fakeGateway{forecastErr: &weather.HTTPError{Provider: "smhi", Status: 500}}
	c := New(ctx, gw, cache, StaticConnectivity(true))

	st := c.RequestForecast(ctx, 55.7, 13.19, "Lund")

	require.Equal(t, Error{Message: "API error: 500"}, st)
	_, ok := cache.GetLastForecast(ctx)
	require.False(t, ok)

	gw.forecastErr = errors.New("dial tcp: connection refused")
	st = c.RequestForecast(ctx, 55.7, 13.19, "Lund")
	require.Equal(t, Error{Message: "dial tcp: connection refused"}, st)
}

func TestErrorStateIsNotTerminal(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{forecastErr: errors.New("down")}
	c := New(ctx, gw, newCache(), StaticConnectivity(true))

	require.IsType(t, Error{}, c.RequestForecast(ctx, 1, 1, "x"))

	gw.forecastErr = nil
	require.IsType(t, Success{}, c.RequestForecast(ctx, 1, 1, "x"))
}

func TestStaleForecastIsDropped(t *testing.T) {
	ctx := context.Background()
	slow := make(chan struct{})
	gw := &fakeGateway{
		forecast: weather.WeatherForecast{Forecasts: hourly(1)},
		block:    map[string]chan struct{}{"Slow": slow},
	}
	c := New(ctx, gw, newCache(), StaticConnectivity(true))

	done := make(chan State)
	go func() {
		done <- c.RequestForecast(ctx, 1, 1, "Slow")
	}()

	require.Eventually(t, func() bool {
		gw.mu.Lock()
		defer gw.mu.Unlock()
		return gw.forecastCalls == 1
	}, time.Second, time.Millisecond)

	fast := c.RequestForecast(ctx, 2, 2, "Fast")
	close(slow)
	stale := <-done

	require.Equal(t, "Fast", fast.(Success).Forecast.Location.Name)
	require.Equal(t, fast, stale)
	require.Equal(t, fast, c.State())
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{forecast: weather.WeatherForecast{Forecasts: hourly(1)}}
	c := New(ctx, gw, newCache(), StaticConnectivity(true))

	require.ErrorIs(t, c.Refresh(ctx), ErrNothingToRefresh)

	c.RequestForecast(ctx, 55.7, 13.19, "Lund")
	require.NoError(t, c.Refresh(ctx))
	require.Equal(t, 2, gw.forecastCalls)
	require.Equal(t, "Lund", c.State().(Success).Forecast.Location.Name)

	gw.forecastErr = errors.New("down")
	require.Error(t, c.Refresh(ctx))
}

func TestRequestSearch(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{locations: []weather.Location{{Name: "Lund"}}}
	c := New(ctx, gw, newCache(), StaticConnectivity(true))

	require.Equal(t, []weather.Location{{Name: "Lund"}}, c.RequestSearch(ctx, " Lund "))
	require.Equal(t, []weather.Location{{Name: "Lund"}}, c.SearchResults())

	// Blank queries clear without calling the gateway.
	require.Empty(t, c.RequestSearch(ctx, "   "))
	require.Empty(t, c.SearchResults())
	require.Equal(t, 1, gw.searchCalls)

	// Failures clear the results and leave the forecast state alone.
	c.RequestSearch(ctx, "Lund")
	gw.searchErr = weather.ErrNoResults
	require.Empty(t, c.RequestSearch(ctx, "Xyzzy"))
	require.Empty(t, c.SearchResults())
	require.Equal(t, Initial{}, c.State())
}

func TestClearSearchResults(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{locations: []weather.Location{{Name: "Lund"}}}
	c := New(ctx, gw, newCache(), StaticConnectivity(true))

	c.RequestSearch(ctx, "Lund")
	c.ClearSearchResults()

	require.Empty(t, c.SearchResults())
}

func TestFavorites(t *testing.T) {
	ctx := context.Background()
	cache := newCache()
	require.NoError(t, cache.AddFavorite(ctx, weather.FavoriteLocation{Name: "Kiruna"}))

	c := New(ctx, &fakeGateway{}, cache, StaticConnectivity(true))
	require.True(t, c.IsFavorite("Kiruna"))

	lund := weather.Location{Name: "Lund", Latitude: 55.7, Longitude: 13.19}
	require.NoError(t, c.AddFavorite(ctx, lund))
	require.NoError(t, c.AddFavorite(ctx, lund))

	require.Equal(t, []weather.FavoriteLocation{
		{Name: "Kiruna"},
		weather.FavoriteLocation(lund),
	}, c.Favorites())
	require.Len(t, cache.Favorites(ctx), 2)

	require.NoError(t, c.RemoveFavorite(ctx, "Kiruna"))
	require.False(t, c.IsFavorite("Kiruna"))
	require.True(t, c.IsFavorite("Lund"))
}

func TestRefreshSupersededByNewerRequest(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{forecast: weather.WeatherForecast{Forecasts: hourly(1)}}
	c := New(ctx, gw, newCache(), StaticConnectivity(true))

	c.RequestForecast(ctx, 55.7, 13.19, "Lund")
	c.mu.RLock()
	stale := c.last
	c.mu.RUnlock()

	// A user request lands between the refresh reading last and starting.
	c.RequestForecast(ctx, 67.85, 20.22, "Kiruna")

	_, ok := c.beginRefresh(stale)
	require.False(t, ok)
	require.Equal(t, "Kiruna", c.last.name)
	require.Equal(t, "Kiruna", c.State().(Success).Forecast.Location.Name)
	require.Equal(t, 2, gw.forecastCalls)
}

func TestRefreshKeepsRememberedRequest(t *testing.T) {
	ctx := context.Background()
	slow := make(chan struct{})
	gw := &fakeGateway{
		forecast: weather.WeatherForecast{Forecasts: hourly(1)},
		block:    map[string]chan struct{}{},
	}
	c := New(ctx, gw, newCache(), StaticConnectivity(true))
	c.RequestForecast(ctx, 55.7, 13.19, "Lund")

	gw.mu.Lock()
	gw.block["Lund"] = slow
	gw.mu.Unlock()

	done := make(chan error)
	go func() {
		done <- c.Refresh(ctx)
	}()
	require.Eventually(t, func() bool {
		gw.mu.Lock()
		defer gw.mu.Unlock()
		return gw.forecastCalls == 2
	}, time.Second, time.Millisecond)

	kiruna := c.RequestForecast(ctx, 67.85, 20.22, "Kiruna")
	close(slow)
	require.NoError(t, <-done)

	require.Equal(t, kiruna, c.State())
	require.Equal(t, "Kiruna", c.last.name)
}
