package models

import (
	"fmt"
	"math"
	"time"
)

// Location is a configured conditions location on the NWS forecast grid
type Location struct {
	DisplayName string // e.g., "Atlanta, GA"
	GridID      string // forecast office, e.g., "FFC"
	GridX       int
	GridY       int
}

// String returns the grid triple as used in gridpoint URLs
func (l Location) String() string {
	return fmt.Sprintf("%s/%d,%d", l.GridID, l.GridX, l.GridY)
}

// CurrentReading is the reading for the forecast hour covering "now".
// Nil pointers mean the feed had no value for that field.
type CurrentReading struct {
	Temperature         *int // Fahrenheit
	ApparentTemperature *int // Fahrenheit
	ShortForecast       string
}

// ForecastPeriod is one hour of the forward forecast window
type ForecastPeriod struct {
	Time                       time.Time
	Temperature                *int // Fahrenheit
	ApparentTemperature        *int // Fahrenheit
	ProbabilityOfPrecipitation *int // percent
	ShortForecast              string
}

// CityConditions is the current + upcoming forecast for one location
type CityConditions struct {
	City     string
	Current  CurrentReading
	Forecast []ForecastPeriod
}

// CelsiusToFahrenheit converts and rounds half up to a whole degree
func CelsiusToFahrenheit(c float64) int {
	return int(math.Floor(c*9/5 + 32 + 0.5))
}
