package weather

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeLocator struct {
	name  string
	locs  []Location
	err   error
	calls int
}

func (f *fakeLocator) Name() string { return f.name }

func (f *fakeLocator) Search(_ context.Context, _ string) ([]Location, error) {
	f.calls++
	return f.locs, f.err
}

type fakeForecastSource struct {
	raw      SMHIResponse
	err      error
	lat, lon float64
}

func (f *fakeForecastSource) Name() string { return "fake" }

func (f *fakeForecastSource) FetchForecast(_ context.Context, lat, lon float64) (SMHIResponse, error) {
	f.lat, f.lon = lat, lon
	return f.raw, f.err
}

func TestSearchLocationsPrimaryWins(t *testing.T) {
	primary := &fakeLocator{name: "primary", locs: []Location{{Name: "Lund"}}}
	fallback := &fakeLocator{name: "fallback", locs: []Location{{Name: "Lund, Skåne"}}}
	gw := NewGateway(nil, primary, fallback)

	locs, err := gw.SearchLocations(context.Background(), "Lund")

	require.NoError(t, err)
	require.Equal(t, []Location{{Name: "Lund"}}, locs)
	require.Equal(t, 0, fallback.calls)
}

func TestSearchLocationsFallsBackOnEmptyPrimary(t *testing.T) {
	primary := &fakeLocator{name: "primary", locs: []Location{}}
	fallback := &fakeLocator{name: "fallback", locs: []Location{{Name: "Lund, Skåne"}}}
	gw := NewGateway(nil, primary, fallback)

	locs, err := gw.SearchLocations(context.Background(), "Lund")

	require.NoError(t, err)
	require.Equal(t, []Location{{Name: "Lund, Skåne"}}, locs)
	require.Equal(t, 1, primary.calls)
	require.Equal(t, 1, fallback.calls)
}

func TestSearchLocationsFallsBackOnPrimaryError(t *testing.T) {
	primary := &fakeLocator{name: "primary", err: &HTTPError{Provider: "primary", Status: 503}}
	fallback := &fakeLocator{name: "fallback", locs: []Location{{Name: "Lund"}}}
	gw := NewGateway(nil, primary, fallback)

	locs, err := gw.SearchLocations(context.Background(), "Lund")

	require.NoError(t, err)
	require.Len(t, locs, 1)
	require.Equal(t, 1, fallback.calls)
}

func TestSearchLocationsLastProviderMayBeEmpty(t *testing.T) {
	primary := &fakeLocator{name: "primary", err: errors.New("boom")}
	fallback := &fakeLocator{name: "fallback", locs: []Location{}}
	gw := NewGateway(nil, primary, fallback)

	locs, err := gw.SearchLocations(context.Background(), "Xyzzy")

	require.NoError(t, err)
	require.NotNil(t, locs)
	require.Empty(t, locs)
}

func TestSearchLocationsAllFail(t *testing.T) {
	primary := &fakeLocator{name: "primary", err: &TransportError{Provider: "primary", Err: errors.New("dial")}}
	fallback := &fakeLocator{name: "fallback", err: ErrEmptyBody}
	gw := NewGateway(nil, primary, fallback)

	locs, err := gw.SearchLocations(context.Background(), "Lund")

	require.ErrorIs(t, err, ErrNoResults)
	require.Nil(t, locs)
	require.Equal(t, "no locations found", err.Error())
}

func TestSearchLocationsNeverMerges(t *testing.T) {
	first := &fakeLocator{name: "first", locs: []Location{}}
	second := &fakeLocator{name: "second", locs: []Location{{Name: "A"}}}
	third := &fakeLocator{name: "third", locs: []Location{{Name: "B"}}}
	gw := NewGateway(nil, first, second, third)

	locs, err := gw.SearchLocations(context.Background(), "q")

	require.NoError(t, err)
	require.Equal(t, []Location{{Name: "A"}}, locs)
	require.Equal(t, 0, third.calls)
}

func TestSearchLocationsWithoutProviders(t *testing.T) {
	_, err := NewGateway(nil).SearchLocations(context.Background(), "q")
	require.ErrorIs(t, err, ErrNoProviders)
}

func TestFetchForecast(t *testing.T) {
	src := &fakeForecastSource{raw: SMHIResponse{
		Geometry: Geometry{Coordinates: [][]float64{{13.19, 55.7}}},
		TimeSeries: []TimeSeries{{
			ValidTime:  "2024-05-01T12:00:00Z",
			Parameters: []Parameter{param(ParamTemperature, 11)},
		}},
	}}
	gw := NewGateway(src)

	forecast, err := gw.FetchForecast(context.Background(), 55.7, 13.19, "Lund")

	require.NoError(t, err)
	require.Equal(t, 55.7, src.lat)
	require.Equal(t, 13.19, src.lon)
	require.Equal(t, "Lund", forecast.Location.Name)
	require.Len(t, forecast.Forecasts, 1)
	require.Equal(t, 11.0, forecast.Forecasts[0].Temperature)
}

func TestFetchForecastCarriesStatus(t *testing.T) {
	src := &fakeForecastSource{err: &HTTPError{Provider: "fake", Status: 404}}
	gw := NewGateway(src)

	_, err := gw.FetchForecast(context.Background(), 1, 2, "x")

	require.Error(t, err)
	require.Equal(t, 404, StatusOf(err))
}
