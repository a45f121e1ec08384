package feeds

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ngmaloney/wx-dashboard/internal/models"
	"github.com/ngmaloney/wx-dashboard/internal/noaa"
)

// ConditionsOptions controls how a CityConditions record is assembled
type ConditionsOptions struct {
	Zone               *time.Location // zone whose top-of-hour is "now"
	ForecastHours      int            // periods in the forward window, current hour included
	UseGridpointValues bool           // take feels-like and precip from the gridpoint feed
}

// ConditionsSource builds per-city conditions from the hourly forecast feed
// and, optionally, the raw gridpoint feed.
type ConditionsSource struct {
	client noaa.ForecastClient
	opts   ConditionsOptions
	deps
}

// NewConditionsSource creates a conditions source over client
func NewConditionsSource(client noaa.ForecastClient, co ConditionsOptions, opts ...Option) *ConditionsSource {
	if co.Zone == nil {
		co.Zone = time.UTC
	}
	if co.ForecastHours < 1 {
		co.ForecastHours = 1
	}
	return &ConditionsSource{client: client, opts: co, deps: newDeps(opts)}
}

// Fetch requests every location concurrently and returns the ones that
// succeeded, in location order. A location that fails or has no period
// covering the current hour is dropped and logged.
func (s *ConditionsSource) Fetch(ctx context.Context, locations []models.Location) []models.CityConditions {
	hour := topOfHour(s.clock.Now(), s.opts.Zone)

	results := make([]*models.CityConditions, len(locations))
	var g errgroup.Group
	for i, loc := range locations {
		i, loc := i, loc
		g.Go(func() error {
			results[i] = s.fetchOne(ctx, loc, hour)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	out := make([]models.CityConditions, 0, len(locations))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}

	if s.metrics != nil {
		s.metrics.ConditionsCities.Set(float64(len(out)))
	}
	s.logger.WithFields(logrus.Fields{
		"requested": len(locations),
		"ok":        len(out),
	}).Debug("fetched conditions")

	return out
}

func (s *ConditionsSource) fetchOne(ctx context.Context, loc models.Location, hour time.Time) *models.CityConditions {
	log := s.logger.WithFields(logrus.Fields{
		"city": loc.DisplayName,
		"grid": loc.String(),
	})

	start := s.clock.Now()
	forecast, err := s.client.GetHourlyForecast(ctx, loc)
	s.metrics.ObserveFetch("forecast", s.clock.Since(start).Seconds(), err)
	if err != nil {
		log.WithError(err).Error("failed to fetch hourly forecast")
		s.skipped("error")
		return nil
	}

	var grid *noaa.GridpointValues
	if s.opts.UseGridpointValues {
		start = s.clock.Now()
		grid, err = s.client.GetGridpointValues(ctx, loc)
		s.metrics.ObserveFetch("gridpoint", s.clock.Since(start).Seconds(), err)
		if err != nil {
			log.WithError(err).Error("failed to fetch gridpoint values")
			s.skipped("error")
			return nil
		}
	}

	idx := currentPeriod(forecast.Periods, hour)
	if idx < 0 {
		log.WithField("hour", hour.Format(time.RFC3339)).Warn("no forecast period covers the current hour, skipping")
		s.skipped("no_current_period")
		return nil
	}

	end := idx + s.opts.ForecastHours
	if end > len(forecast.Periods) {
		end = len(forecast.Periods)
	}

	city := &models.CityConditions{
		City:     loc.DisplayName,
		Forecast: make([]models.ForecastPeriod, 0, end-idx),
	}
	for _, p := range forecast.Periods[idx:end] {
		city.Forecast = append(city.Forecast, buildPeriod(p, grid))
	}

	cur := city.Forecast[0]
	city.Current = models.CurrentReading{
		Temperature:         cur.Temperature,
		ApparentTemperature: cur.ApparentTemperature,
		ShortForecast:       cur.ShortForecast,
	}
	return city
}

func (s *ConditionsSource) skipped(reason string) {
	if s.metrics != nil {
		s.metrics.LocationsSkipped.WithLabelValues(reason).Inc()
	}
}

func buildPeriod(p noaa.HourlyPeriod, grid *noaa.GridpointValues) models.ForecastPeriod {
	fp := models.ForecastPeriod{
		Time:                       p.StartTime,
		Temperature:                toFahrenheit(p.Temperature, p.TemperatureUnit),
		ApparentTemperature:        toFahrenheit(p.ApparentTemperature, p.ApparentTemperatureUnit),
		ProbabilityOfPrecipitation: roundPtr(p.ProbabilityOfPrecipitation),
		ShortForecast:              p.ShortForecast,
	}
	if grid == nil {
		return fp
	}

	if fp.Temperature == nil {
		if v, ok := grid.Temperature.At(p.StartTime); ok {
			fp.Temperature = toFahrenheit(v, grid.Temperature.UnitCode)
		}
	}
	if v, ok := grid.ApparentTemperature.At(p.StartTime); ok {
		fp.ApparentTemperature = toFahrenheit(v, grid.ApparentTemperature.UnitCode)
	}
	if v, ok := grid.ProbabilityOfPrecipitation.At(p.StartTime); ok {
		fp.ProbabilityOfPrecipitation = roundPtr(v)
	}
	return fp
}

// topOfHour truncates t to the hour as seen on a wall clock in zone
func topOfHour(t time.Time, zone *time.Location) time.Time {
	t = t.In(zone)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, zone)
}

// currentPeriod returns the index of the period covering hour, or -1.
func currentPeriod(periods []noaa.HourlyPeriod, hour time.Time) int {
	for i, p := range periods {
		if p.Covers(hour) {
			return i
		}
	}
	return -1
}

// toFahrenheit converts v to whole degrees Fahrenheit. unit is either the
// hourly feed's "F"/"C" or a wmoUnit code; anything else is taken as Fahrenheit.
func toFahrenheit(v *float64, unit string) *int {
	if v == nil {
		return nil
	}
	var f int
	switch strings.ToLower(unit) {
	case "c", "wmounit:degc":
		f = models.CelsiusToFahrenheit(*v)
	default:
		f = roundHalfUp(*v)
	}
	return &f
}

func roundPtr(v *float64) *int {
	if v == nil {
		return nil
	}
	r := roundHalfUp(*v)
	return &r
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
