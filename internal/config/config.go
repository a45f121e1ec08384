// Package config holds the dashboard's compile-time configuration.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ngmaloney/wx-dashboard/internal/models"
)

// Office is a monitored issuing office. An office with no counties contributes
// every alert it issues; otherwise only alerts naming one of its counties.
type Office struct {
	SenderName string   // matched case-insensitively against the alert's senderName
	Counties   []string // optional county allow-list
}

// LayoutMode selects how the dashboard arranges its panes
type LayoutMode string

const (
	LayoutWide    LayoutMode = "wide"    // alerts and conditions side by side
	LayoutStacked LayoutMode = "stacked" // conditions below alerts
)

// CountyDetail controls whether alert cards list affected counties
type CountyDetail string

const (
	CountyDetailToggle CountyDetail = "toggle"
	CountyDetailAlways CountyDetail = "always"
	CountyDetailNever  CountyDetail = "never"
)

// ViewConfig parameterizes the single dashboard view
type ViewConfig struct {
	Badges       []string // category keys, in display order
	Layout       LayoutMode
	CountyDetail CountyDetail
	Footer       string
}

// Config holds every setting the dashboard needs
type Config struct {
	AlertsURL string
	APIBase   string
	UserAgent string

	Offices   []Office
	Locations []models.Location

	PageSize      int
	ForecastHours int

	AlertRefresh      time.Duration
	ConditionsRefresh time.Duration
	PageInterval      time.Duration
	RotationInterval  time.Duration
	ResumeDelay       time.Duration
	ClockInterval     time.Duration
	HTTPTimeout       time.Duration

	// ReferenceZone is the zone used for the header clock and current-hour matching.
	ReferenceZone      string
	UseGridpointValues bool
	RadarStation       string
	SocialFeedURL      string // optional last entry of the map selector

	View ViewConfig
}

// Default returns the North Georgia configuration.
func Default() *Config {
	return &Config{
		AlertsURL: "https://api.weather.gov/alerts/active",
		APIBase:   "https://api.weather.gov",
		UserAgent: "WxDashboard/1.0 (github.com/ngmaloney/wx-dashboard)",

		Offices: []Office{
			{SenderName: "NWS Peachtree City"},
			{
				SenderName: "NWS Greenville-Spartanburg",
				Counties:   []string{"Rabun", "Habersham", "Stephens", "Franklin", "Hart", "Elbert"},
			},
		},
		Locations: []models.Location{
			{DisplayName: "Atlanta, GA", GridID: "FFC", GridX: 57, GridY: 100},
			{DisplayName: "Athens, GA", GridID: "FFC", GridX: 75, GridY: 89},
			{DisplayName: "Dalton, GA", GridID: "FFC", GridX: 38, GridY: 140},
			{DisplayName: "Rome, GA", GridID: "FFC", GridX: 27, GridY: 114},
			{DisplayName: "Gainesville, GA", GridID: "FFC", GridX: 65, GridY: 108},
			{DisplayName: "Peachtree City, GA", GridID: "FFC", GridX: 56, GridY: 83},
		},

		PageSize:      4,
		ForecastHours: 4,

		AlertRefresh:      60 * time.Second,
		ConditionsRefresh: 10 * time.Minute,
		PageInterval:      8 * time.Second,
		RotationInterval:  8 * time.Second,
		ResumeDelay:       15 * time.Second,
		ClockInterval:     time.Second,
		HTTPTimeout:       30 * time.Second,

		ReferenceZone:      "America/New_York",
		UseGridpointValues: true,
		RadarStation:       "KFFC",
		SocialFeedURL:      "https://www.facebook.com/NorthGaWxCommand",

		View: ViewConfig{
			Badges:       []string{"tornado", "severeWarn", "severe", "flood", "heat", "cold"},
			Layout:       LayoutWide,
			CountyDetail: CountyDetailToggle,
			Footer:       "North Georgia Weather Dashboard",
		},
	}
}

// Location loads the reference time zone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.ReferenceZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Validate checks the configuration for values the dashboard cannot run with.
func (c *Config) Validate() error {
	if len(c.Offices) == 0 {
		return errors.New("at least one monitored office is required")
	}
	for i, o := range c.Offices {
		if o.SenderName == "" {
			return fmt.Errorf("office %d has no sender name", i)
		}
	}
	for _, l := range c.Locations {
		if l.GridID == "" {
			return fmt.Errorf("location %q has no grid id", l.DisplayName)
		}
	}
	if c.PageSize <= 0 {
		return errors.New("page size must be positive")
	}
	if c.ForecastHours <= 0 {
		return errors.New("forecast hours must be positive")
	}

	intervals := map[string]time.Duration{
		"alert refresh":      c.AlertRefresh,
		"conditions refresh": c.ConditionsRefresh,
		"page interval":      c.PageInterval,
		"rotation interval":  c.RotationInterval,
		"resume delay":       c.ResumeDelay,
		"clock interval":     c.ClockInterval,
		"http timeout":       c.HTTPTimeout,
	}
	for name, d := range intervals {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}

	if _, err := time.LoadLocation(c.ReferenceZone); err != nil {
		return fmt.Errorf("invalid reference zone %q: %w", c.ReferenceZone, err)
	}

	switch c.View.Layout {
	case LayoutWide, LayoutStacked:
	default:
		return fmt.Errorf("unknown layout %q", c.View.Layout)
	}
	switch c.View.CountyDetail {
	case CountyDetailToggle, CountyDetailAlways, CountyDetailNever:
	default:
		return fmt.Errorf("unknown county detail mode %q", c.View.CountyDetail)
	}

	return nil
}
