package noaa

import (
	"context"
	"fmt"
	"time"

	"github.com/ngmaloney/wx-dashboard/internal/models"
)

// HourlyPeriod is one period of the hourly forecast
type HourlyPeriod struct {
	StartTime       time.Time
	EndTime         time.Time
	Temperature     *float64
	TemperatureUnit string // "F" or "C"
	ShortForecast   string

	// Optional quantitative values; nil when absent or null.
	ProbabilityOfPrecipitation *float64 // percent
	ApparentTemperature        *float64
	ApparentTemperatureUnit    string // wmoUnit code, e.g. "wmoUnit:degC"
}

// Covers reports whether t falls in [StartTime, EndTime)
func (p HourlyPeriod) Covers(t time.Time) bool {
	return !t.Before(p.StartTime) && t.Before(p.EndTime)
}

// HourlyForecast is the hourly forecast for one grid location
type HourlyForecast struct {
	Periods   []HourlyPeriod
	UpdatedAt time.Time
}

// NOAAForecastClient implements ForecastClient using the NWS gridpoint API
type NOAAForecastClient struct {
	httpClient
}

// NewForecastClient creates a new gridpoint forecast client
func NewForecastClient(opts ...Option) *NOAAForecastClient {
	return &NOAAForecastClient{httpClient: newHTTPClient(opts...)}
}

// GetHourlyForecast retrieves /gridpoints/{id}/{x},{y}/forecast/hourly
func (c *NOAAForecastClient) GetHourlyForecast(ctx context.Context, loc models.Location) (*HourlyForecast, error) {
	url := fmt.Sprintf("%s/gridpoints/%s/forecast/hourly", c.baseURL, loc)

	var forecastResp hourlyResponse
	if err := c.getJSON(ctx, url, &forecastResp); err != nil {
		return nil, fmt.Errorf("hourly forecast for %s: %w", loc, err)
	}

	forecast := &HourlyForecast{
		Periods:   make([]HourlyPeriod, 0, len(forecastResp.Properties.Periods)),
		UpdatedAt: time.Now(),
	}

	for _, p := range forecastResp.Properties.Periods {
		start, err := time.Parse(time.RFC3339, p.StartTime)
		if err != nil {
			continue
		}
		end, err := time.Parse(time.RFC3339, p.EndTime)
		if err != nil {
			end = start.Add(time.Hour)
		}

		period := HourlyPeriod{
			StartTime:       start,
			EndTime:         end,
			Temperature:     p.Temperature,
			TemperatureUnit: p.TemperatureUnit,
			ShortForecast:   p.ShortForecast,
		}
		if p.ProbabilityOfPrecipitation != nil {
			period.ProbabilityOfPrecipitation = p.ProbabilityOfPrecipitation.Value
		}
		if p.ApparentTemperature != nil {
			period.ApparentTemperature = p.ApparentTemperature.Value
			period.ApparentTemperatureUnit = p.ApparentTemperature.UnitCode
		}

		forecast.Periods = append(forecast.Periods, period)
	}

	return forecast, nil
}

// GetGridpointValues retrieves /gridpoints/{id}/{x},{y}
func (c *NOAAForecastClient) GetGridpointValues(ctx context.Context, loc models.Location) (*GridpointValues, error) {
	url := fmt.Sprintf("%s/gridpoints/%s", c.baseURL, loc)

	var gridResp gridpointResponse
	if err := c.getJSON(ctx, url, &gridResp); err != nil {
		return nil, fmt.Errorf("gridpoint values for %s: %w", loc, err)
	}

	props := gridResp.Properties
	return &GridpointValues{
		Temperature:                props.Temperature.toSeries(),
		ApparentTemperature:        props.ApparentTemperature.toSeries(),
		ProbabilityOfPrecipitation: props.ProbabilityOfPrecipitation.toSeries(),
		UpdatedAt:                  time.Now(),
	}, nil
}

// Internal types for NWS gridpoint API responses

type quantitativeValue struct {
	UnitCode string   `json:"unitCode"`
	Value    *float64 `json:"value"`
}

type hourlyResponse struct {
	Properties struct {
		Periods []struct {
			Number                     int                `json:"number"`
			StartTime                  string             `json:"startTime"`
			EndTime                    string             `json:"endTime"`
			Temperature                *float64           `json:"temperature"`
			TemperatureUnit            string             `json:"temperatureUnit"`
			ShortForecast              string             `json:"shortForecast"`
			ProbabilityOfPrecipitation *quantitativeValue `json:"probabilityOfPrecipitation"`
			ApparentTemperature        *quantitativeValue `json:"apparentTemperature"`
		} `json:"periods"`
	} `json:"properties"`
}

type gridpointLayer struct {
	UOM    string `json:"uom"`
	Values []struct {
		ValidTime string   `json:"validTime"`
		Value     *float64 `json:"value"`
	} `json:"values"`
}

type gridpointResponse struct {
	Properties struct {
		Temperature                *gridpointLayer `json:"temperature"`
		ApparentTemperature        *gridpointLayer `json:"apparentTemperature"`
		ProbabilityOfPrecipitation *gridpointLayer `json:"probabilityOfPrecipitation"`
	} `json:"properties"`
}
