package noaa

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngmaloney/wx-dashboard/internal/models"
)

var atlanta = models.Location{DisplayName: "Atlanta, GA", GridID: "FFC", GridX: 57, GridY: 100}

func newFixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
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
		w.Header().Set("Content-Type", "application/geo+json")
		w.Write(data)
	}))
}

func TestNOAAForecastClient_GetHourlyForecast(t *testing.T) {
	server := newFixtureServer(t)
	defer server.Close()

	client := NewForecastClient(WithBaseURL(server.URL))
	forecast, err := client.GetHourlyForecast(context.Background(), atlanta)
	require.NoError(t, err)
	require.Len(t, forecast.Periods, 7)

	p := forecast.Periods[1]
	assert.Equal(t, "Mostly Sunny", p.ShortForecast)
	require.NotNil(t, p.Temperature)
	assert.Equal(t, 84.0, *p.Temperature)
	assert.Equal(t, "F", p.TemperatureUnit)
	require.NotNil(t, p.ProbabilityOfPrecipitation)
	assert.Equal(t, 10.0, *p.ProbabilityOfPrecipitation)
	assert.Nil(t, p.ApparentTemperature)
	assert.Equal(t, time.Hour, p.EndTime.Sub(p.StartTime))

	assert.Nil(t, forecast.Periods[5].ProbabilityOfPrecipitation)
}

func TestNOAAForecastClient_GetGridpointValues(t *testing.T) {
	server := newFixtureServer(t)
	defer server.Close()

	client := NewForecastClient(WithBaseURL(server.URL))
	values, err := client.GetGridpointValues(context.Background(), atlanta)
	require.NoError(t, err)

	assert.Equal(t, "wmoUnit:degC", values.Temperature.UnitCode)
	assert.Len(t, values.Temperature.Values, 4)
	assert.Len(t, values.ApparentTemperature.Values, 4)
	assert.Len(t, values.ProbabilityOfPrecipitation.Values, 2)

	at := time.Date(2025, 6, 1, 20, 30, 0, 0, time.UTC)
	v, ok := values.ApparentTemperature.At(at)
	require.True(t, ok)
	require.NotNil(t, v)
	assert.Equal(t, 31.1, *v)
}

func TestNOAAForecastClient_NotFound(t *testing.T) {
	server := newFixtureServer(t)
	defer server.Close()

	client := NewForecastClient(WithBaseURL(server.URL))
	_, err := client.GetHourlyForecast(context.Background(), models.Location{GridID: "BMX", GridX: 1, GridY: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BMX/1,1")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestHourlyPeriod_Covers(t *testing.T) {
	start := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	p := HourlyPeriod{StartTime: start, EndTime: start.Add(time.Hour)}

	assert.True(t, p.Covers(start))
	assert.True(t, p.Covers(start.Add(59*time.Minute)))
	assert.False(t, p.Covers(start.Add(time.Hour)))
	assert.False(t, p.Covers(start.Add(-time.Second)))
}
