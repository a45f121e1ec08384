// Package alerts classifies and filters raw alert records for the monitored region.
// Everything here is pure: no I/O, no clock reads, no shared state.
package alerts

import (
	"time"

	"github.com/ngmaloney/wx-dashboard/internal/models"
)

// Classification is everything the dashboard derives from a single raw alert
type Classification struct {
	InRegion   bool
	IsActive   bool // active now or upcoming
	Categories []Category
	Style      StyleTag
}

// FilteredAlert is a raw alert that passed the region and time tests
type FilteredAlert struct {
	models.RawAlert
	Categories  []Category
	Style       StyleTag
	EffectiveAt time.Time // zero when the feed value did not parse
	ExpiresAt   time.Time
}

// Classify derives region membership, time membership, categories and style for
// one alert at time now.
func Classify(alert models.RawAlert, now time.Time, region *Region) Classification {
	return Classification{
		InRegion:   region != nil && region.Contains(alert.SenderName, alert.AreaDesc),
		IsActive:   isActiveOrUpcoming(alert.Effective, alert.Expires, now),
		Categories: Categorize(alert.Event),
		Style:      Style(alert.Event),
	}
}

// Filter keeps the in-region, active-or-upcoming alerts in feed order.
func Filter(raw []models.RawAlert, now time.Time, region *Region) []FilteredAlert {
	filtered := make([]FilteredAlert, 0)
	for _, a := range raw {
		c := Classify(a, now, region)
		if !c.InRegion || !c.IsActive {
			continue
		}
		effective, _ := parseTime(a.Effective)
		expires, _ := parseTime(a.Expires)
		filtered = append(filtered, FilteredAlert{
			RawAlert:    a,
			Categories:  c.Categories,
			Style:       c.Style,
			EffectiveAt: effective,
			ExpiresAt:   expires,
		})
	}
	return filtered
}

// isActiveOrUpcoming: effective <= now <= expires, or effective in the future.
// An effective time that does not parse counts as active.
func isActiveOrUpcoming(effective, expires string, now time.Time) bool {
	eff, ok := parseTime(effective)
	if !ok {
		return true
	}
	if eff.After(now) {
		return true
	}
	exp, ok := parseTime(expires)
	if !ok {
		return false
	}
	return !now.After(exp)
}

func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
