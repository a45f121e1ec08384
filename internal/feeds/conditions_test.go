package feeds

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngmaloney/wx-dashboard/internal/config"
	"github.com/ngmaloney/wx-dashboard/internal/models"
	"github.com/ngmaloney/wx-dashboard/internal/noaa"
	"github.com/ngmaloney/wx-dashboard/internal/observability"
)

var edt = time.FixedZone("EDT", -4*60*60)

func f64(v float64) *float64 { return &v }

func intValue(t *testing.T, p *int) int {
	t.Helper()
	require.NotNil(t, p)
	return *p
}

// fakeForecastClient serves the same forecast for every location except
// the ones listed in fail.
type fakeForecastClient struct {
	forecast *noaa.HourlyForecast
	grid     *noaa.GridpointValues
	fail     map[string]bool
}

func (f *fakeForecastClient) GetHourlyForecast(_ context.Context, loc models.Location) (*noaa.HourlyForecast, error) {
	if f.fail[loc.DisplayName] {
		return nil, errors.New("dial tcp: connection refused")
	}
	return f.forecast, nil
}

func (f *fakeForecastClient) GetGridpointValues(_ context.Context, loc models.Location) (*noaa.GridpointValues, error) {
	if f.grid == nil {
		return nil, errors.New("no gridpoint data")
	}
	return f.grid, nil
}

func hourlyFrom(start time.Time, temps ...float64) *noaa.HourlyForecast {
	fc := &noaa.HourlyForecast{}
	for i, temp := range temps {
		s := start.Add(time.Duration(i) * time.Hour)
		fc.Periods = append(fc.Periods, noaa.HourlyPeriod{
			StartTime:       s,
			EndTime:         s.Add(time.Hour),
			Temperature:     f64(temp),
			TemperatureUnit: "F",
			ShortForecast:   "Sunny",
		})
	}
	return fc
}

func TestConditionsSource_PartialFailure(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 14, 20, 0, 0, edt))
	metrics := observability.NewMetricsForTesting()
	client := &fakeForecastClient{
		forecast: hourlyFrom(time.Date(2025, 6, 1, 13, 0, 0, 0, edt), 83, 84, 85, 86, 85),
		fail:     map[string]bool{"Dalton, GA": true},
	}

	src := NewConditionsSource(client, ConditionsOptions{Zone: edt, ForecastHours: 4},
		WithClock(clock), WithMetrics(metrics))

	locations := config.Default().Locations
	require.Len(t, locations, 6)

	got := src.Fetch(context.Background(), locations)
	require.Len(t, got, 5)

	names := make([]string, len(got))
	for i, c := range got {
		names[i] = c.City
	}
	assert.Equal(t, []string{"Atlanta, GA", "Athens, GA", "Rome, GA", "Gainesville, GA", "Peachtree City, GA"}, names)

	assert.Equal(t, 84, intValue(t, got[0].Current.Temperature))
	assert.Len(t, got[0].Forecast, 4)
	assert.Equal(t, 5.0, testutil.ToFloat64(metrics.ConditionsCities))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.LocationsSkipped.WithLabelValues("error")))
}

func TestConditionsSource_AllFail(t *testing.T) {
	client := &fakeForecastClient{fail: map[string]bool{"Atlanta, GA": true, "Athens, GA": true}}
	src := NewConditionsSource(client, ConditionsOptions{Zone: edt, ForecastHours: 4})

	got := src.Fetch(context.Background(), config.Default().Locations[:2])
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestConditionsSource_GridpointFailureDropsLocation(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 14, 20, 0, 0, edt))
	client := &fakeForecastClient{forecast: hourlyFrom(time.Date(2025, 6, 1, 14, 0, 0, 0, edt), 84)}
	src := NewConditionsSource(client, ConditionsOptions{Zone: edt, ForecastHours: 4, UseGridpointValues: true},
		WithClock(clock))

	assert.Empty(t, src.Fetch(context.Background(), config.Default().Locations[:1]))
}

func TestConditionsSource_NoCurrentHourIsSkipped(t *testing.T) {
	// forecast starts tomorrow, so nothing covers the current hour
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 14, 20, 0, 0, edt))
	metrics := observability.NewMetricsForTesting()
	client := &fakeForecastClient{forecast: hourlyFrom(time.Date(2025, 6, 2, 0, 0, 0, 0, edt), 70, 71, 72)}

	src := NewConditionsSource(client, ConditionsOptions{Zone: edt, ForecastHours: 4},
		WithClock(clock), WithMetrics(metrics))

	got := src.Fetch(context.Background(), config.Default().Locations[:1])
	assert.Empty(t, got)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.LocationsSkipped.WithLabelValues("no_current_period")))
}

func TestConditionsSource_WindowClampedAtEnd(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 15, 59, 0, 0, edt))
	client := &fakeForecastClient{forecast: hourlyFrom(time.Date(2025, 6, 1, 13, 0, 0, 0, edt), 83, 84, 85, 86)}
	src := NewConditionsSource(client, ConditionsOptions{Zone: edt, ForecastHours: 4}, WithClock(clock))

	got := src.Fetch(context.Background(), config.Default().Locations[:1])
	require.Len(t, got, 1)
	require.Len(t, got[0].Forecast, 2)
	assert.Equal(t, 85, intValue(t, got[0].Current.Temperature))
	assert.Equal(t, 86, intValue(t, got[0].Forecast[1].Temperature))
}

func newFixtureClient(t *testing.T) *noaa.NOAAForecastClient {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var file string
		switch r.URL.Path {
		case "/gridpoints/FFC/57,100/forecast/hourly":
			file = "../../testdata/noaa_hourly_response.json"
		case "/gridpoints/FFC/57,100":
			file = "../../testdata/noaa_gridpoint_response.json"
		default:
			http.NotFound(w, r)
			return
		}
		data, _ := os.ReadFile(file)
		w.Write(data)
	}))
	t.Cleanup(server.Close)
	return noaa.NewForecastClient(noaa.WithBaseURL(server.URL))
}

func TestConditionsSource_GridpointValues(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 14, 20, 0, 0, edt))
	src := NewConditionsSource(newFixtureClient(t),
		ConditionsOptions{Zone: edt, ForecastHours: 4, UseGridpointValues: true}, WithClock(clock))

	got := src.Fetch(context.Background(), config.Default().Locations[:1])
	require.Len(t, got, 1)
	atl := got[0]

	assert.Equal(t, "Atlanta, GA", atl.City)
	assert.Equal(t, 84, intValue(t, atl.Current.Temperature))
	assert.Equal(t, 88, intValue(t, atl.Current.ApparentTemperature)) // 31.1C
	assert.Equal(t, "Mostly Sunny", atl.Current.ShortForecast)

	require.Len(t, atl.Forecast, 4)
	assert.True(t, atl.Forecast[0].Time.Equal(time.Date(2025, 6, 1, 14, 0, 0, 0, edt)))
	assert.True(t, atl.Forecast[3].Time.Equal(time.Date(2025, 6, 1, 17, 0, 0, 0, edt)))

	pops := make([]int, 0, 4)
	for _, p := range atl.Forecast {
		pops = append(pops, intValue(t, p.ProbabilityOfPrecipitation))
	}
	assert.Equal(t, []int{12, 12, 45, 45}, pops)

	// the gridpoint feed sent null for 21Z
	assert.Nil(t, atl.Forecast[3].ApparentTemperature)
	assert.Equal(t, "Chance Showers And Thunderstorms", atl.Forecast[2].ShortForecast)
}

func TestConditionsSource_HourlyOnly(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 14, 20, 0, 0, edt))
	src := NewConditionsSource(newFixtureClient(t),
		ConditionsOptions{Zone: edt, ForecastHours: 4}, WithClock(clock))

	got := src.Fetch(context.Background(), config.Default().Locations[:1])
	require.Len(t, got, 1)

	pops := make([]int, 0, 4)
	for _, p := range got[0].Forecast {
		pops = append(pops, intValue(t, p.ProbabilityOfPrecipitation))
		assert.Nil(t, p.ApparentTemperature)
	}
	assert.Equal(t, []int{10, 15, 40, 60}, pops)
}

func TestTopOfHour(t *testing.T) {
	got := topOfHour(time.Date(2025, 6, 1, 18, 59, 59, 0, time.UTC), edt)
	assert.True(t, got.Equal(time.Date(2025, 6, 1, 14, 0, 0, 0, edt)))

	// a half-hour offset zone truncates on its own wall clock
	ist := time.FixedZone("IST", 5*60*60+30*60)
	got = topOfHour(time.Date(2025, 6, 1, 18, 10, 0, 0, time.UTC), ist)
	assert.True(t, got.Equal(time.Date(2025, 6, 1, 23, 0, 0, 0, ist)))
}

func TestToFahrenheit(t *testing.T) {
	tests := []struct {
		name string
		v    *float64
		unit string
		want *int
	}{
		{"nil", nil, "F", nil},
		{"fahrenheit", f64(84), "F", ptr(84)},
		{"fahrenheit rounds", f64(84.5), "wmoUnit:degF", ptr(85)},
		{"celsius", f64(28.9), "C", ptr(84)},
		{"wmo celsius", f64(31.1), "wmoUnit:degC", ptr(88)},
		{"unknown unit taken as F", f64(70.2), "", ptr(70)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toFahrenheit(tt.v, tt.unit))
		})
	}
}

func ptr(v int) *int { return &v }
